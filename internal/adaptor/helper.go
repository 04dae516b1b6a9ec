package adaptor

import (
	"encoding/json"
	"net/http"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/usecase"
	"cinema-reservation/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeServiceError answers a service failure with the status of its kind
// and the kind name as the envelope code. Internal failures are logged with
// their cause and answered with a generic message.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := usecase.KindOf(err)
	status := statusOf(kind)

	switch {
	case status >= http.StatusInternalServerError:
		log.Error("Failed to "+operation, zap.Error(err))
	case kind != usecase.KindNotFound && kind != usecase.KindUnauthorized:
		log.Warn(operation+" rejected", zap.Error(err), zap.Stringer("kind", kind))
	}

	utils.ResponseError(w, status, kind.String(), usecase.MessageOf(err), nil)
}

func statusOf(kind usecase.Kind) int {
	switch kind {
	case usecase.KindUnauthorized:
		return http.StatusUnauthorized
	case usecase.KindForbidden:
		return http.StatusForbidden
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindInvalidRequest:
		return http.StatusBadRequest
	case usecase.KindSeatConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// requesterFrom returns the caller placed in the context by the auth
// middleware, or nil for anonymous requests.
func requesterFrom(r *http.Request) *usecase.Requester {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		return nil
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return &usecase.Requester{UserID: userID, Role: entity.UserRole(role)}
}

// pathID parses the chi URL parameter name as a UUID and writes a 400 when it
// is malformed.
func pathID(w http.ResponseWriter, r *http.Request, name, field string) (uuid.UUID, bool) {
	id, err := utils.ParseUUID(chi.URLParam(r, name), field)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return uuid.Nil, false
	}
	return id, true
}

// decodeAndValidate reads a JSON body into dst and runs the struct validator.
// It writes the 400 response itself and reports whether the caller may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// queryDate parses ?date=YYYY-MM-DD, defaulting to the current UTC day
func queryDate(w http.ResponseWriter, r *http.Request, now time.Time) (time.Time, bool) {
	value := r.URL.Query().Get("date")
	if value == "" {
		start, _ := utils.DayBounds(now)
		return start, true
	}

	date, err := utils.ParseDate(value)
	if err != nil {
		utils.ResponseBadRequest(w, err.Error(), nil)
		return time.Time{}, false
	}
	return date, true
}
