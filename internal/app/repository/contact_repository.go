package repository

import (
	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *model.ContactMessage) error
	FindAll(status *model.ContactStatus) ([]model.ContactMessage, error)
	FindByID(id uint) (*model.ContactMessage, error)
	UpdateStatus(id uint, status model.ContactStatus) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *model.ContactMessage) error {
	if err := r.db.Create(message).Error; err != nil {
		logger.Error("Failed to create contact message in database", err, map[string]interface{}{
			"email": message.Email,
		})
		return err
	}

	logger.Debug("Contact message created in database", map[string]interface{}{
		"message_id": message.ID,
	})
	return nil
}

func (r *contactRepository) FindAll(status *model.ContactStatus) ([]model.ContactMessage, error) {
	query := r.db.Model(&model.ContactMessage{})
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var messages []model.ContactMessage
	if err := query.Order("created_at DESC").Find(&messages).Error; err != nil {
		logger.Error("Failed to list contact messages", err, nil)
		return nil, err
	}
	return messages, nil
}

func (r *contactRepository) FindByID(id uint) (*model.ContactMessage, error) {
	var message model.ContactMessage
	if err := r.db.First(&message, id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *contactRepository) UpdateStatus(id uint, status model.ContactStatus) error {
	result := r.db.Model(&model.ContactMessage{}).Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		logger.Error("Failed to update contact message status", result.Error, map[string]interface{}{
			"message_id": id,
			"status":     status,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
