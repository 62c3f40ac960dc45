package wire

import (
	"net/http"

	"univer-cinema/internal/adaptor"
)

func authRoutes(auth *adaptor.AuthHandler, user *adaptor.UserHandler) []route {
	return []route{
		{method: http.MethodPost, pattern: "/api/auth/register", access: Public, handler: auth.Register},
		{method: http.MethodPost, pattern: "/api/auth/login", access: Public, limited: true, handler: auth.Login},
		{method: http.MethodPost, pattern: "/api/auth/logout", access: Authenticated, handler: auth.Logout},
		{method: http.MethodPost, pattern: "/api/auth/password-reset", access: Public, limited: true, handler: auth.RequestPasswordReset},
		{method: http.MethodPost, pattern: "/api/auth/password-reset/confirm", access: Public, limited: true, handler: auth.ConfirmPasswordReset},

		{method: http.MethodGet, pattern: "/api/auth/me", access: Authenticated, handler: user.GetProfile},
		{method: http.MethodPut, pattern: "/api/auth/me", access: Authenticated, handler: user.UpdateProfile},
	}
}
