package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
)

// ProfileRepository reads and writes user profiles.
type ProfileRepository interface {
	GetOrCreate(userID string) (*models.Profile, error)
	Save(profile *models.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetOrCreate returns the user's profile, creating one with defaults on first access.
func (r *profileRepository) GetOrCreate(userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	var profile models.Profile
	err := r.db.Where("user_id = ?", userID).First(&profile).Error
	if err == nil {
		return &profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("ERROR: [ProfileRepository] Failed to fetch profile for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch profile for userID %s: %w", userID, err)
	}

	created := models.NewDefaultProfile(userID)
	if err := r.db.Create(created).Error; err != nil {
		log.Printf("ERROR: [ProfileRepository] Failed to create profile for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to create profile for userID %s: %w", userID, err)
	}
	log.Printf("INFO: [ProfileRepository] Created default profile for userID %s.", userID)
	return created, nil
}

// Save persists every profile field.
func (r *profileRepository) Save(profile *models.Profile) error {
	if profile == nil || profile.UserID == "" {
		return errors.New("profile requires a user ID")
	}
	if err := r.db.Save(profile).Error; err != nil {
		log.Printf("ERROR: [ProfileRepository] Failed to save profile for userID %s: %v", profile.UserID, err)
		return fmt.Errorf("failed to save profile for userID %s: %w", profile.UserID, err)
	}
	return nil
}
