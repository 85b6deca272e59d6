package services

import (
	"fmt"
	"strings"

	"github.com/samuelurones28/Proyecto/models"
	"github.com/samuelurones28/Proyecto/repository"
	"github.com/samuelurones28/Proyecto/utils"
)

// ProfileUpdate carries the profile fields a client wants to change. Nil fields are left as they are.
type ProfileUpdate struct {
	Nombre           *string   `json:"nombre"`
	Edad             *int      `json:"edad"`
	Altura           *int      `json:"altura"`
	Sexo             *string   `json:"sexo"`
	Objetivo         *string   `json:"objetivo"`
	NivelActividad   *string   `json:"nivel_actividad"`
	DiasNoDisponible *[]string `json:"dias_no_disponibles"`
	Lesiones         *string   `json:"lesiones"`
	MetaKcal         *float64  `json:"meta_kcal"`
	MetaProteinas    *float64  `json:"meta_proteinas"`
	MetaCarbos       *float64  `json:"meta_carbos"`
	MetaGrasas       *float64  `json:"meta_grasas"`
}

// ProfileService reads and updates user profiles.
type ProfileService interface {
	Get(userID string) (*models.Profile, error)
	Update(userID string, in ProfileUpdate) (*models.Profile, error)
}

type profileService struct {
	repo repository.ProfileRepository
}

// NewProfileService creates a new instance of ProfileService.
func NewProfileService(repo repository.ProfileRepository) ProfileService {
	return &profileService{repo: repo}
}

func (s *profileService) Get(userID string) (*models.Profile, error) {
	p, err := s.repo.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load profile: %v", models.ErrPersistence, err)
	}
	return p, nil
}

func (s *profileService) Update(userID string, in ProfileUpdate) (*models.Profile, error) {
	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	if err := applyProfileUpdate(p, in); err != nil {
		return nil, err
	}
	if err := s.repo.Save(p); err != nil {
		return nil, fmt.Errorf("%w: save profile: %v", models.ErrPersistence, err)
	}
	return p, nil
}

func applyProfileUpdate(p *models.Profile, in ProfileUpdate) error {
	if in.Nombre != nil {
		name, err := utils.ValidateText(*in.Nombre, 50)
		if err != nil {
			return err
		}
		p.Nombre = name
	}
	if in.Edad != nil {
		if err := utils.AgeRange.Check(float64(*in.Edad)); err != nil {
			return err
		}
		p.Edad = *in.Edad
	}
	if in.Altura != nil {
		if err := utils.HeightRange.Check(float64(*in.Altura)); err != nil {
			return err
		}
		p.Altura = *in.Altura
	}
	if in.Sexo != nil {
		p.Sexo = strings.TrimSpace(*in.Sexo)
	}
	if in.Objetivo != nil {
		goal := models.ParseGoal(*in.Objetivo)
		if _, ok := goalAdjustments[goal]; !ok {
			return fmt.Errorf("%w: unknown goal %q", models.ErrValidation, *in.Objetivo)
		}
		p.Objetivo = goal
	}
	if in.NivelActividad != nil {
		level := models.ParseActivityLevel(*in.NivelActividad)
		if _, ok := activityMultipliers[level]; !ok {
			return fmt.Errorf("%w: unknown activity level %q", models.ErrValidation, *in.NivelActividad)
		}
		p.NivelActividad = level
	}
	if in.DiasNoDisponible != nil {
		days := make([]string, 0, len(*in.DiasNoDisponible))
		for _, d := range *in.DiasNoDisponible {
			day := models.NormalizeWeekday(d)
			if day == "" {
				return fmt.Errorf("%w: unknown weekday %q", models.ErrValidation, d)
			}
			days = append(days, day)
		}
		p.DiasNoDisponible = strings.Join(days, ",")
	}
	if in.Lesiones != nil {
		p.Lesiones = strings.TrimSpace(*in.Lesiones)
	}
	if in.MetaKcal != nil {
		// Zero clears the manual override.
		if *in.MetaKcal != 0 {
			if err := utils.CaloriesRange.Check(*in.MetaKcal); err != nil {
				return err
			}
		}
		p.MetaKcal = *in.MetaKcal
	}
	for _, f := range []struct {
		in  *float64
		out *float64
	}{{in.MetaProteinas, &p.MetaProteinas}, {in.MetaCarbos, &p.MetaCarbos}, {in.MetaGrasas, &p.MetaGrasas}} {
		if f.in == nil {
			continue
		}
		if err := utils.MacroRange.Check(*f.in); err != nil {
			return err
		}
		*f.out = *f.in
	}
	return nil
}
