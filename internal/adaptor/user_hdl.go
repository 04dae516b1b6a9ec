package adaptor

import (
	"net/http"

	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// ListUsers handles GET /api/admin/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "Users retrieved successfully", users)
}

// Promote handles POST /api/admin/users/{id}/promote
func (h *UserHandler) Promote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user id")
	if !ok {
		return
	}

	user, err := h.service.Promote(r.Context(), requesterFrom(r), id)
	if err != nil {
		writeServiceError(w, h.log, err, "promote user")
		return
	}

	utils.ResponseSuccess(w, "User promoted to admin", user)
}

// Demote handles POST /api/admin/users/{id}/demote
func (h *UserHandler) Demote(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id", "user id")
	if !ok {
		return
	}

	user, err := h.service.Demote(r.Context(), requesterFrom(r), id)
	if err != nil {
		writeServiceError(w, h.log, err, "demote user")
		return
	}

	utils.ResponseSuccess(w, "User demoted", user)
}
