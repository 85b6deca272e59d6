package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"

	"golang.org/x/sync/errgroup"
)

// HistoryLookbackDays is how far back completed days are shown to the coach.
const HistoryLookbackDays = 28

// CoachService runs one coach conversation turn end to end.
type CoachService interface {
	SendMessage(ctx context.Context, userID, text string) (*models.CoachReply, error)
	LoadContext(ctx context.Context, userID string) (*models.CoachContext, error)
	History(userID string, limit int) ([]models.ChatMessage, error)
}

type coachService struct {
	profileRepo  repository.ProfileRepository
	calendarRepo repository.CalendarRepository
	catalogRepo  repository.CatalogRepository
	chatRepo     repository.ChatRepository
	plans        PlanService
	commands     CommandService
	llm          LLMClient
	clock        Clock
	historyLimit int
}

// CoachDeps groups the collaborators of the coach service.
type CoachDeps struct {
	ProfileRepo  repository.ProfileRepository
	CalendarRepo repository.CalendarRepository
	CatalogRepo  repository.CatalogRepository
	ChatRepo     repository.ChatRepository
	Plans        PlanService
	Commands     CommandService
	LLM          LLMClient
	Clock        Clock
	HistoryLimit int
}

// NewCoachService creates a new instance of CoachService.
func NewCoachService(d CoachDeps) CoachService {
	if d.Clock == nil {
		d.Clock = SystemClock()
	}
	if d.HistoryLimit <= 0 {
		d.HistoryLimit = 20
	}
	return &coachService{
		profileRepo:  d.ProfileRepo,
		calendarRepo: d.CalendarRepo,
		catalogRepo:  d.CatalogRepo,
		chatRepo:     d.ChatRepo,
		plans:        d.Plans,
		commands:     d.Commands,
		llm:          d.LLM,
		clock:        d.Clock,
		historyLimit: d.HistoryLimit,
	}
}

// LoadContext fetches profile, plan, recent history, catalog and today's status concurrently.
func (s *coachService) LoadContext(ctx context.Context, userID string) (*models.CoachContext, error) {
	if userID == "" {
		return nil, errors.New("userID cannot be empty")
	}
	now := s.clock.Now()
	out := &models.CoachContext{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		p, err := s.profileRepo.GetOrCreate(userID)
		out.Profile = p
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		active, err := s.plans.ActivePlan(userID, now)
		if err != nil {
			return err
		}
		out.Plan = &active.Week
		out.Permanent = active.Permanent
		out.Exception = active.Exception
		return nil
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		since := utils.FormatDate(now.AddDate(0, 0, -HistoryLookbackDays))
		history, err := s.calendarRepo.ListRange(userID, since, "", models.CalendarCompleted)
		out.History = history
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		names, err := s.catalogRepo.Names()
		out.Catalog = names
		return err
	})
	g.Go(func() error {
		if err := gctx.Err(); err != nil {
			return err
		}
		today, err := s.plans.ResolveDay(userID, now)
		out.Today = today
		return err
	})

	if err := g.Wait(); err != nil {
		log.Printf("ERROR: [CoachService] Failed to load context for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load coach context: %w", err)
	}
	if out.History == nil {
		out.History = []*models.CalendarAction{}
	}
	return out, nil
}

// SendMessage sends the user's text to the model, executes at most one embedded command,
// persists both turns and returns the cleaned reply with the reloaded context.
// Model and datastore failures are reported in the reply text, not as errors.
func (s *coachService) SendMessage(ctx context.Context, userID, text string) (*models.CoachReply, error) {
	text = strings.TrimSpace(text)
	if userID == "" || text == "" {
		return nil, fmt.Errorf("%w: user and message are required", models.ErrValidation)
	}

	coachCtx, err := s.LoadContext(ctx, userID)
	if err != nil {
		return &models.CoachReply{Reply: "⚠️ No pude cargar tu información: " + err.Error()}, nil
	}

	history, err := s.chatRepo.GetRecentMessages(userID, s.historyLimit)
	if err != nil {
		log.Printf("WARN: [CoachService] Proceeding without chat history for userID %s: %v", userID, err)
		history = nil
	}

	userMsg := &models.ChatMessage{UserID: userID, Role: models.RoleUser, Content: text, Timestamp: s.clock.Now()}
	s.saveMessage(userMsg)

	raw, err := s.llm.Complete(ctx, BuildCoachPrompt(coachCtx, s.clock.Now()), history, text)
	if err != nil {
		return &models.CoachReply{Reply: "⚠️ Error de conexión: " + err.Error(), Context: coachCtx}, nil
	}

	reply := &models.CoachReply{Reply: strings.TrimSpace(raw), Context: coachCtx}
	if span, found := utils.ExtractCommand(raw); found {
		result, execErr := s.commands.Execute(userID, span.JSON)
		if execErr != nil {
			log.Printf("WARN: [CoachService] Command in reply for userID %s was not applied: %v", userID, execErr)
		}
		reply.CommandKind = result.Kind
		reply.CommandOutcome = result.Outcome
		reply.CommandApplied = result.Applied
		reply.Reply = utils.CleanReply(raw, span, result.Outcome)

		// Reload even after a failed command so the client never keeps stale state.
		if reloaded, err := s.LoadContext(ctx, userID); err == nil {
			reply.Context = reloaded
		} else {
			log.Printf("WARN: [CoachService] Context reload failed for userID %s: %v", userID, err)
		}
	}

	s.saveMessage(&models.ChatMessage{UserID: userID, Role: models.RoleAssistant, Content: reply.Reply, Timestamp: s.clock.Now()})
	return reply, nil
}

func (s *coachService) History(userID string, limit int) ([]models.ChatMessage, error) {
	msgs, err := s.chatRepo.GetRecentMessages(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	return msgs, nil
}

func (s *coachService) saveMessage(msg *models.ChatMessage) {
	if err := s.chatRepo.SaveMessage(msg); err != nil {
		log.Printf("ERROR: [CoachService] Failed to persist %s message for userID %s: %v", msg.Role, msg.UserID, err)
	}
}
