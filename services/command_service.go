package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// CommandResult is the outcome of executing one coach command.
type CommandResult struct {
	Kind    models.CommandKind `json:"kind,omitempty"`
	Outcome string             `json:"outcome"` // One line shown under the chat reply
	Applied bool               `json:"applied"`
}

// CommandService validates and executes commands embedded in coach replies.
type CommandService interface {
	Execute(userID string, raw string) (CommandResult, error)
}

type commandService struct {
	planRepo     repository.PlanRepository
	calendarRepo repository.CalendarRepository
	catalogRepo  repository.CatalogRepository
	matcher      *utils.Matcher
	clock        Clock
}

// NewCommandService creates a new instance of CommandService.
func NewCommandService(
	planRepo repository.PlanRepository,
	calendarRepo repository.CalendarRepository,
	catalogRepo repository.CatalogRepository,
	matcher *utils.Matcher,
	clock Clock,
) CommandService {
	if matcher == nil {
		matcher = utils.NewMatcher(utils.DefaultDiceThreshold, utils.DefaultContainmentRatio)
	}
	if clock == nil {
		clock = SystemClock()
	}
	return &commandService{
		planRepo:     planRepo,
		calendarRepo: calendarRepo,
		catalogRepo:  catalogRepo,
		matcher:      matcher,
		clock:        clock,
	}
}

// Execute runs one raw command. Failures never panic: the returned result always
// carries a user-facing outcome, and the error wraps one of ErrInvalidPayload,
// ErrUnknownCommand or ErrPersistence.
func (s *commandService) Execute(userID string, raw string) (CommandResult, error) {
	var cmd models.Command
	if err := json.Unmarshal([]byte(raw), &cmd); err != nil {
		log.Printf("WARN: [CommandService] Command for userID %s is not valid JSON: %v", userID, err)
		return failed("", "El comando recibido no es JSON válido."), fmt.Errorf("%w: %v", models.ErrInvalidPayload, err)
	}
	kind, ok := models.ParseCommandKind(string(cmd.Accion))
	if !ok {
		log.Printf("WARN: [CommandService] Unknown command %q for userID %s", cmd.Accion, userID)
		return failed(cmd.Accion, "Acción desconocida."), fmt.Errorf("%w: %q", models.ErrUnknownCommand, cmd.Accion)
	}
	log.Printf("INFO: [CommandService] Executing %s for userID %s", kind, userID)

	var (
		outcome string
		err     error
	)
	switch kind {
	case models.CommandUpdatePlan:
		outcome, err = s.updatePlan(userID, cmd.Datos)
	case models.CommandWeeklyException:
		outcome, err = s.weeklyException(userID, cmd.SemanaInicio, cmd.Datos)
	case models.CommandBlockDay:
		outcome, err = s.blockDay(userID, cmd.Datos)
	}
	if err != nil {
		log.Printf("ERROR: [CommandService] %s failed for userID %s: %v", kind, userID, err)
		return failed(kind, failureMessage(err)), err
	}
	return CommandResult{Kind: kind, Outcome: "✅ " + outcome, Applied: true}, nil
}

func failed(kind models.CommandKind, msg string) CommandResult {
	return CommandResult{Kind: kind, Outcome: "❌ " + msg}
}

func failureMessage(err error) string {
	switch {
	case errors.Is(err, models.ErrInvalidPayload):
		return "No pude aplicar el cambio: " + err.Error()
	case errors.Is(err, models.ErrPersistence):
		return "No pude guardar el cambio, inténtalo de nuevo."
	default:
		return "Error ejecutando acción: " + err.Error()
	}
}

func (s *commandService) catalogNames() ([]string, error) {
	names, err := s.catalogRepo.Names()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return names, nil
}

// updatePlan shallow-merges the payload days onto the latest permanent plan and inserts a new version.
func (s *commandService) updatePlan(userID string, datos json.RawMessage) (string, error) {
	catalog, err := s.catalogNames()
	if err != nil {
		return "", err
	}
	payload, err := utils.NormalizePlanPayload(datos, s.matcher, catalog)
	if err != nil {
		return "", err
	}
	current, err := s.planRepo.LatestPermanent(userID)
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	base, err := current.Week()
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	encoded, err := base.Merge(payload).Encode()
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	plan := &models.WeeklyPlan{
		UserID:      userID,
		Nombre:      "Plan modificado por el coach",
		DatosSemana: encoded,
	}
	if err := s.planRepo.CreatePlan(plan); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return "He actualizado tu plan semanal correctamente.", nil
}

// weeklyException inserts a temporary plan; the permanent plan is left untouched.
func (s *commandService) weeklyException(userID, weekStart string, datos json.RawMessage) (string, error) {
	start := utils.FormatDate(s.clock.Now())
	if weekStart != "" {
		valid, ok := utils.SanitizeISODate(weekStart)
		if !ok {
			return "", fmt.Errorf("%w: semana_inicio %q is not a YYYY-MM-DD date", models.ErrInvalidPayload, weekStart)
		}
		start = valid
	}

	catalog, err := s.catalogNames()
	if err != nil {
		return "", err
	}
	payload, err := utils.NormalizePlanPayload(datos, s.matcher, catalog)
	if err != nil {
		return "", err
	}
	encoded, err := payload.Encode()
	if err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	plan := &models.WeeklyPlan{
		UserID:      userID,
		Nombre:      fmt.Sprintf("Excepción semanal (%s)", start),
		DatosSemana: encoded,
		EsTemporal:  true,
		FechaInicio: start,
	}
	if err := s.planRepo.CreatePlan(plan); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return fmt.Sprintf("He ajustado la semana desde el %s. La próxima semana volverás a tu plan normal.", start), nil
}

// blockDay upserts a forced_rest action. It never writes a completed state.
func (s *commandService) blockDay(userID string, datos json.RawMessage) (string, error) {
	var payload struct {
		Fecha  string  `json:"fecha"`
		Date   string  `json:"date"`
		Motivo *string `json:"motivo"`
		Reason *string `json:"reason"`
	}
	if err := json.Unmarshal(datos, &payload); err != nil {
		return "", fmt.Errorf("%w: datos must be an object with fecha and motivo", models.ErrInvalidPayload)
	}
	raw := payload.Fecha
	if raw == "" {
		raw = payload.Date
	}
	fecha, ok := utils.SanitizeISODate(raw)
	if !ok {
		return "", fmt.Errorf("%w: fecha %q is not a YYYY-MM-DD date", models.ErrInvalidPayload, raw)
	}
	nota := ""
	switch {
	case payload.Motivo != nil:
		nota = *payload.Motivo
	case payload.Reason != nil:
		nota = *payload.Reason
	}

	action := &models.CalendarAction{UserID: userID, Fecha: fecha, Estado: models.CalendarForcedRest, Nota: nota}
	if err := s.calendarRepo.Upsert(action); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return fmt.Sprintf("He marcado el %s como descanso.", fecha), nil
}
