package controller

import (
	"errors"
	"net/http"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/service"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type ContactController struct {
	contactService service.ContactService
}

func NewContactController(contactService service.ContactService) *ContactController {
	return &ContactController{
		contactService: contactService,
	}
}

type SubmitContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message" binding:"required"`

	CaptchaToken  string `json:"captcha_token" binding:"required"`
	CaptchaAnswer int    `json:"captcha_answer" binding:"required"`
}

type UpdateContactStatusRequest struct {
	Status model.ContactStatus `json:"status" binding:"required"`
}

// GetCaptcha returns a fresh signed arithmetic challenge for the contact form
// GET /api/v1/contact/captcha
func (ctrl *ContactController) GetCaptcha(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	challenge, err := ctrl.contactService.NewCaptcha()
	if err != nil {
		log.Error("Failed to generate captcha", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"captcha": challenge,
	})
}

// SubmitContact receives a storefront contact-form submission
// POST /api/v1/contact
func (ctrl *ContactController) SubmitContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req SubmitContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid contact submission", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome, e-mail e mensagem são obrigatórios")
		return
	}

	message, err := ctrl.contactService.SubmitContact(service.ContactInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		Subject:       req.Subject,
		Message:       req.Message,
		CaptchaToken:  req.CaptchaToken,
		CaptchaAnswer: req.CaptchaAnswer,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCaptchaFailed):
			apperrors.BadRequest(c, apperrors.ValidationCaptchaFailed, "Resposta da verificação incorreta. Tente novamente")
		case errors.Is(err, service.ErrContactFields):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Nome, e-mail e mensagem são obrigatórios")
		default:
			log.Error("Failed to submit contact message", err, nil)
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Mensagem enviada com sucesso",
		"contact": gin.H{"id": message.ID},
	})
}

// ListContacts returns contact messages, optionally filtered by status
// GET /api/v1/admin/contacts?status=pending
func (ctrl *ContactController) ListContacts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var status *model.ContactStatus
	if statusStr := c.Query("status"); statusStr != "" {
		s := model.ContactStatus(statusStr)
		status = &s
	}

	contacts, err := ctrl.contactService.ListContacts(status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidContactStatus) {
			apperrors.BadRequest(c, apperrors.ContactInvalidStatus, "Status de contato inválido")
			return
		}
		log.Error("Failed to list contact messages", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contacts": contacts,
		"count":    len(contacts),
	})
}

// GetContact returns one contact message
// GET /api/v1/admin/contacts/:id
func (ctrl *ContactController) GetContact(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de contato inválido")
		return
	}

	contact, err := ctrl.contactService.GetContactByID(id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			apperrors.NotFound(c, apperrors.ContactNotFound, "Mensagem de contato não encontrada")
			return
		}
		log.Error("Failed to fetch contact message", err, map[string]interface{}{
			"contact_id": id,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contact": contact,
	})
}

// UpdateContactStatus moves a contact message through its workflow
// PATCH /api/v1/admin/contacts/:id/status
func (ctrl *ContactController) UpdateContactStatus(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, ok := parseIDParam(c, "id")
	if !ok {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "ID de contato inválido")
		return
	}

	var req UpdateContactStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ContactInvalidStatus, "Status de contato inválido")
		return
	}

	contact, err := ctrl.contactService.UpdateContactStatus(id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrContactNotFound):
			apperrors.NotFound(c, apperrors.ContactNotFound, "Mensagem de contato não encontrada")
		case errors.Is(err, service.ErrInvalidContactStatus):
			apperrors.BadRequest(c, apperrors.ContactInvalidStatus, "Status de contato inválido")
		default:
			log.Error("Failed to update contact status", err, map[string]interface{}{
				"contact_id": id,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"contact": contact,
	})
}
