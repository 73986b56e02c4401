package adaptor

import (
	"net/http"
	"strings"

	"homeservice-dispatch/internal/usecase"
	"homeservice-dispatch/pkg/utils"

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

// Logout handles POST /api/technician/auth/logout (protected)
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := utils.GetTokenFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	if err := h.service.Logout(r.Context(), token); err != nil {
		if strings.Contains(err.Error(), "not found") {
			utils.ResponseNotFound(w, "Session not found or already revoked")
			return
		}
		h.log.Error("Failed to logout", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "Logged out successfully", nil)
}
