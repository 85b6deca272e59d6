package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/samuelurones28/Proyecto/models"

	"gorm.io/gorm"
)

// ChatRepository persists coach conversation turns.
type ChatRepository interface {
	SaveMessage(message *models.ChatMessage) error
	GetRecentMessages(userID string, limit int) ([]models.ChatMessage, error)
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new instance of ChatRepository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// SaveMessage stores one message.
func (r *chatRepository) SaveMessage(message *models.ChatMessage) error {
	if message == nil || message.UserID == "" {
		return errors.New("message requires a user ID")
	}
	if err := r.db.Create(message).Error; err != nil {
		log.Printf("ERROR: [ChatRepository] Failed to save %s message for userID %s: %v", message.Role, message.UserID, err)
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	log.Printf("INFO: [ChatRepository] Saved message ID %d (%s) for userID %s: '%.30s...'", message.ID, message.Role, message.UserID, message.Content)
	return nil
}

// GetRecentMessages returns the last limit messages in chronological order.
func (r *chatRepository) GetRecentMessages(userID string, limit int) ([]models.ChatMessage, error) {
	var messages []models.ChatMessage
	q := r.db.Where("user_id = ?", userID).Order("timestamp desc, id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&messages).Error; err != nil {
		log.Printf("ERROR: [ChatRepository] Failed to load messages for userID %s: %v", userID, err)
		return nil, fmt.Errorf("failed to load chat history: %w", err)
	}
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}
