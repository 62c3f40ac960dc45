package adaptor

import (
	"net"
	"net/http"

	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"go.uber.org/zap"
)

type AuthHandler struct {
	service usecase.AuthService
	log     *zap.Logger
}

func NewAuthHandler(service usecase.AuthService, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log.With(zap.String("handler", "auth")),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(h.log, w, err, "register")
		return
	}

	utils.ResponseCreated(w, "Registration successful", resp)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Login(r.Context(), &req, clientInfo(r))
	if err != nil {
		handleServiceError(h.log, w, err, "login")
		return
	}

	utils.ResponseSuccess(w, "Login successful", resp)
}

// Logout handles POST /api/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	raw, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}
	token, err := utils.ParseUUID(raw)
	if err != nil {
		utils.ResponseUnauthorized(w, "Invalid session token")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		handleServiceError(h.log, w, err, "logout")
		return
	}

	utils.ResponseSuccess(w, "Logout successful", nil)
}

// RequestPasswordReset handles POST /api/auth/password-reset
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordResetRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	message, err := h.service.RequestPasswordReset(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "request password reset")
		return
	}

	utils.ResponseSuccess(w, message, nil)
}

// ConfirmPasswordReset handles POST /api/auth/password-reset/confirm
func (h *AuthHandler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req request.PasswordResetConfirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.service.ConfirmPasswordReset(r.Context(), &req); err != nil {
		handleServiceError(h.log, w, err, "confirm password reset")
		return
	}

	utils.ResponseSuccess(w, "Password has been reset", nil)
}

func clientInfo(r *http.Request) usecase.ClientInfo {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	return usecase.ClientInfo{
		UserAgent: r.UserAgent(),
		IPAddress: ip,
	}
}
