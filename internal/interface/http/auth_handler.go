package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-lms-auth/internal/application"
	"github.com/oksasatya/go-lms-auth/internal/domain/entity"
	"github.com/oksasatya/go-lms-auth/pkg/helpers"
	"github.com/oksasatya/go-lms-auth/pkg/response"
	"github.com/oksasatya/go-lms-auth/pkg/validation"
)

type AuthHandler struct {
	Svc    *application.AccountService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AccountService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type signupRequest struct {
	Email    string `json:"email" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"omitempty,role"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Signup POST /api/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, validation.Summary(details, "invalid request"), details)
		return
	}

	in := application.SignupInput{Email: req.Email, Name: req.Name, Password: req.Password}
	if req.Role != "" {
		role, err := entity.ParseRole(req.Role)
		if err != nil {
			response.Error(c, http.StatusBadRequest, err.Error(), nil)
			return
		}
		in.Role = role
	}

	res, err := h.Svc.Signup(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err, http.StatusBadRequest)
		return
	}
	response.Success(c, http.StatusCreated, res, "account created", nil)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, validation.Summary(details, "invalid request"), details)
		return
	}

	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, http.StatusUnauthorized)
		return
	}
	response.Success(c, http.StatusOK, res, "login successful", nil)
}

// Refresh POST /api/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		details := validation.ToDetails(err)
		response.Error(c, http.StatusBadRequest, validation.Summary(details, "invalid request"), details)
		return
	}

	grant, err := h.Svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, helpers.ErrTokenInvalid) || errors.Is(err, helpers.ErrTokenExpired) {
			response.Error(c, http.StatusForbidden, "invalid or expired refresh token", nil)
			return
		}
		h.fail(c, err, http.StatusForbidden)
		return
	}
	response.Success(c, http.StatusOK, grant, "token refreshed", nil)
}

// fail maps account service errors to HTTP statuses. Store failures and unexpected errors are
// logged and reported as 500 without their cause; domain errors use status.
func (h *AuthHandler) fail(c *gin.Context, err error, status int) {
	switch {
	case errors.Is(err, application.ErrAccountExists),
		errors.Is(err, application.ErrInvalidCredentials),
		errors.Is(err, entity.ErrInvalidRole):
		response.Error(c, status, err.Error(), nil)
	case errors.Is(err, helpers.ErrTokenInvalid), errors.Is(err, helpers.ErrTokenExpired):
		response.Error(c, http.StatusForbidden, err.Error(), nil)
	default:
		if h.Logger != nil {
			h.Logger.WithError(err).WithFields(logrus.Fields{
				"path":       c.FullPath(),
				"request_id": c.GetString("request_id"),
			}).Error("account operation failed")
		}
		response.Error(c, http.StatusInternalServerError, "internal server error", nil)
	}
}
