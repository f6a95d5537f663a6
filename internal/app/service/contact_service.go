package service

import (
	"errors"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/repository"
	"github.com/amorpet/amorpet-backend/internal/websocket"
	"github.com/amorpet/amorpet-backend/pkg/logger"
	"github.com/amorpet/amorpet-backend/pkg/mailer"
	"github.com/amorpet/amorpet-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrContactNotFound      = errors.New("contact message not found")
	ErrContactFields        = errors.New("name, email and message are required")
	ErrCaptchaFailed        = errors.New("captcha answer does not match")
	ErrInvalidContactStatus = errors.New("invalid contact status")
)

type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string

	CaptchaToken  string
	CaptchaAnswer int
}

type ContactService interface {
	NewCaptcha() (util.CaptchaChallenge, error)
	SubmitContact(input ContactInput) (*model.ContactMessage, error)
	ListContacts(status *model.ContactStatus) ([]model.ContactMessage, error)
	GetContactByID(id uint) (*model.ContactMessage, error)
	UpdateContactStatus(id uint, status model.ContactStatus) (*model.ContactMessage, error)
}

type contactService struct {
	contactRepo   repository.ContactRepository
	mail          mailer.Mailer
	hub           *websocket.Hub
	captchaSecret string
}

// NewContactService wires the contact relay. hub may be nil when the
// notification stream is disabled. captchaSecret signs the challenges the
// contact form must answer.
func NewContactService(contactRepo repository.ContactRepository, mail mailer.Mailer, hub *websocket.Hub, captchaSecret string) ContactService {
	return &contactService{
		contactRepo:   contactRepo,
		mail:          mail,
		hub:           hub,
		captchaSecret: captchaSecret,
	}
}

// NewCaptcha issues a signed challenge for the contact form.
func (s *contactService) NewCaptcha() (util.CaptchaChallenge, error) {
	return util.NewCaptchaChallenge(s.captchaSecret)
}

// SubmitContact verifies the captcha before touching the store, persists the
// message, then relays it by email and notifies connected admins. Relay and
// notification failures are logged but never surfaced to the visitor.
func (s *contactService) SubmitContact(input ContactInput) (*model.ContactMessage, error) {
	if !util.VerifyCaptcha(s.captchaSecret, input.CaptchaToken, input.CaptchaAnswer) {
		logger.Warn("Contact submission rejected by captcha", map[string]interface{}{
			"email": input.Email,
		})
		return nil, ErrCaptchaFailed
	}

	if input.Name == "" || input.Email == "" || input.Message == "" {
		return nil, ErrContactFields
	}

	message := &model.ContactMessage{
		Name:    input.Name,
		Email:   input.Email,
		Phone:   input.Phone,
		Subject: input.Subject,
		Message: input.Message,
		Status:  model.ContactPending,
	}

	if err := s.contactRepo.Create(message); err != nil {
		logger.Error("Failed to persist contact message", err, map[string]interface{}{
			"email": input.Email,
		})
		return nil, err
	}

	if err := s.mail.SendContactMessage(message.Name, message.Email, message.Phone, message.Subject, message.Message); err != nil {
		logger.Error("Contact email relay failed, message kept", err, map[string]interface{}{
			"contact_id": message.ID,
		})
	}

	if s.hub != nil {
		s.hub.Broadcast(websocket.Event{
			Type:    websocket.EventContactReceived,
			Payload: message,
		})
	}

	logger.Info("Contact message received", map[string]interface{}{
		"contact_id": message.ID,
		"subject":    message.Subject,
	})
	return message, nil
}

func (s *contactService) ListContacts(status *model.ContactStatus) ([]model.ContactMessage, error) {
	if status != nil && !validContactStatus(*status) {
		return nil, ErrInvalidContactStatus
	}
	return s.contactRepo.FindAll(status)
}

func (s *contactService) GetContactByID(id uint) (*model.ContactMessage, error) {
	message, err := s.contactRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}
	return message, nil
}

func (s *contactService) UpdateContactStatus(id uint, status model.ContactStatus) (*model.ContactMessage, error) {
	if !validContactStatus(status) {
		return nil, ErrInvalidContactStatus
	}

	if err := s.contactRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactNotFound
		}
		return nil, err
	}

	logger.Info("Contact status updated", map[string]interface{}{
		"contact_id": id,
		"status":     status,
	})
	return s.GetContactByID(id)
}

func validContactStatus(status model.ContactStatus) bool {
	switch status {
	case model.ContactPending, model.ContactInProgress, model.ContactResolved:
		return true
	}
	return false
}
