package adaptor

import (
	"encoding/json"
	"net/http"

	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/apperror"
	"univer-cinema/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Movie    *MovieHandler
	Hall     *HallHandler
	Showtime *ShowtimeHandler
	Snack    *SnackHandler
	Booking  *BookingHandler
	Content  *ContentHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		User:     NewUserHandler(service.User, log),
		Movie:    NewMovieHandler(service.Movie, log),
		Hall:     NewHallHandler(service.Hall, log),
		Showtime: NewShowtimeHandler(service.Showtime, log),
		Snack:    NewSnackHandler(service.Snack, log),
		Booking:  NewBookingHandler(service.Booking, log),
		Content:  NewContentHandler(service.Content, log),
	}
}

// decodeJSON writes a 400 and returns false when the body is not valid JSON for dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}

// handleServiceError logs err at a level matching its kind and writes the response.
func handleServiceError(log *zap.Logger, w http.ResponseWriter, err error, operation string) {
	switch apperror.KindOf(err) {
	case apperror.KindInternal:
		log.Error(operation+" failed", zap.Error(err), zap.String("operation", operation))
	case apperror.KindConflict, apperror.KindUnauthorized, apperror.KindForbidden, apperror.KindInvalidToken:
		log.Warn(operation+" rejected", zap.Error(err), zap.String("operation", operation))
	default:
		log.Debug(operation+" rejected", zap.Error(err), zap.String("operation", operation))
	}

	utils.ResponseError(w, err)
}
