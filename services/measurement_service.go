package services

import (
	"fmt"
	"math"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// MeasurementInput is a body-composition entry. Optional fields are nil when not measured.
type MeasurementInput struct {
	Fecha     string   `json:"fecha"`
	Peso      float64  `json:"peso"`
	GrasaPorc *float64 `json:"grasa_porc"`
	MusculoKg *float64 `json:"musculo_kg"`
}

// MeasurementService records and lists body measurements.
type MeasurementService interface {
	AddMeasurement(userID string, in MeasurementInput) (*models.Measurement, error)
	ListMeasurements(userID string, limit int) ([]*models.Measurement, error)
}

type measurementService struct {
	repo  repository.MeasurementRepository
	clock Clock
}

// NewMeasurementService creates a new instance of MeasurementService.
func NewMeasurementService(repo repository.MeasurementRepository, clock Clock) MeasurementService {
	if clock == nil {
		clock = SystemClock()
	}
	return &measurementService{repo: repo, clock: clock}
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func (s *measurementService) AddMeasurement(userID string, in MeasurementInput) (*models.Measurement, error) {
	if err := utils.WeightRange.Check(in.Peso); err != nil {
		return nil, err
	}
	m := &models.Measurement{UserID: userID, Fecha: s.clock.Now(), Peso: in.Peso}
	if in.Fecha != "" {
		fecha, err := utils.ParseDate(in.Fecha, m.Fecha.Location())
		if err != nil {
			return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
		}
		m.Fecha = fecha
	}
	if in.GrasaPorc != nil {
		if err := utils.BodyFatRange.Check(*in.GrasaPorc); err != nil {
			return nil, err
		}
		pct := *in.GrasaPorc
		kg := round2(in.Peso * pct / 100)
		m.GrasaPorc, m.GrasaKg = &pct, &kg
	}
	if in.MusculoKg != nil {
		if err := utils.MuscleRange.Check(*in.MusculoKg); err != nil {
			return nil, err
		}
		kg := *in.MusculoKg
		pct := round2(kg / in.Peso * 100)
		m.MusculoKg, m.MusculoPorc = &kg, &pct
	}
	if err := s.repo.Create(m); err != nil {
		return nil, fmt.Errorf("%w: save measurement: %v", models.ErrPersistence, err)
	}
	return m, nil
}

func (s *measurementService) ListMeasurements(userID string, limit int) ([]*models.Measurement, error) {
	list, err := s.repo.List(userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: list measurements: %v", models.ErrPersistence, err)
	}
	return list, nil
}
