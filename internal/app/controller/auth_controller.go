package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/amorpet/amorpet-backend/internal/app/model"
	"github.com/amorpet/amorpet-backend/internal/app/service"
	apperrors "github.com/amorpet/amorpet-backend/internal/errors"
	"github.com/amorpet/amorpet-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateAdminRequest struct {
	Email    string         `json:"email" binding:"required,email"`
	Password string         `json:"password" binding:"required,min=8"`
	Name     string         `json:"name" binding:"required"`
	Role     model.UserRole `json:"role"`
}

// Login authenticates a back-office user
// POST /api/v1/auth/login
func (ctrl *AuthController) Login(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "E-mail e senha são obrigatórios")
		return
	}

	user, tokens, err := ctrl.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			apperrors.RespondWithError(c, http.StatusUnauthorized, apperrors.AuthInvalidCredentials, "E-mail ou senha incorretos")
			return
		}
		log.Error("Login failed", err, map[string]interface{}{
			"email": req.Email,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":   user,
		"tokens": tokens,
	})
}

// Logout revokes the presented token
// POST /api/v1/auth/logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		apperrors.Unauthorized(c, "")
		return
	}

	if err := ctrl.authService.Logout(c.Request.Context(), parts[1]); err != nil {
		log.Error("Logout failed", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Sessão encerrada",
	})
}

// Me returns the authenticated user's profile
// GET /api/v1/auth/me
func (ctrl *AuthController) Me(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	userID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	user, err := ctrl.authService.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Usuário não encontrado")
			return
		}
		log.Error("Failed to fetch profile", err, map[string]interface{}{
			"user_id": userID,
		})
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

// CreateAdmin registers a new back-office account (super admin only)
// POST /api/v1/admin/users
func (ctrl *AuthController) CreateAdmin(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	creatorID, ok := middleware.GetUserID(c)
	if !ok {
		apperrors.Unauthorized(c, "")
		return
	}

	var req CreateAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Dados do usuário inválidos. A senha deve ter pelo menos 8 caracteres")
		return
	}

	user, err := ctrl.authService.CreateAdmin(creatorID, req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSuperAdminOnly):
			apperrors.RespondWithError(c, http.StatusForbidden, apperrors.AuthzSuperAdminOnly, "Apenas super administradores podem criar contas")
		case errors.Is(err, service.ErrEmailAlreadyExists):
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Este e-mail já está em uso")
		case errors.Is(err, service.ErrWeakPassword):
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "A senha deve ter pelo menos 8 caracteres")
		default:
			log.Error("Failed to create admin account", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.InternalError(c, "")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": user,
	})
}

// ListAdmins returns all back-office accounts (super admin only)
// GET /api/v1/admin/users
func (ctrl *AuthController) ListAdmins(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	users, err := ctrl.authService.ListAdmins()
	if err != nil {
		log.Error("Failed to list admin accounts", err, nil)
		apperrors.InternalError(c, "")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}
