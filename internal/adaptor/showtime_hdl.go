package adaptor

import (
	"net/http"

	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ShowtimeHandler struct {
	service usecase.ShowtimeService
	log     *zap.Logger
}

func NewShowtimeHandler(service usecase.ShowtimeService, log *zap.Logger) *ShowtimeHandler {
	return &ShowtimeHandler{
		service: service,
		log:     log.With(zap.String("handler", "showtime")),
	}
}

// GetShowtimes handles GET /api/showtimes?movie=&hall=&date=YYYY-MM-DD&language=
func (h *ShowtimeHandler) GetShowtimes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	showtimes, err := h.service.ListShowtimes(r.Context(), &request.ShowtimeListQuery{
		MovieID:  q.Get("movie"),
		HallID:   q.Get("hall"),
		Date:     q.Get("date"),
		Language: q.Get("language"),
	})
	if err != nil {
		handleServiceError(h.log, w, err, "list showtimes")
		return
	}

	utils.ResponseSuccess(w, "success", showtimes)
}

func (h *ShowtimeHandler) GetShowtime(w http.ResponseWriter, r *http.Request) {
	showtime, err := h.service.GetShowtime(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get showtime")
		return
	}

	utils.ResponseSuccess(w, "success", showtime)
}

// GetSeats handles GET /api/showtimes/{id}/seats
func (h *ShowtimeHandler) GetSeats(w http.ResponseWriter, r *http.Request) {
	availability, err := h.service.GetAvailability(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get seat availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

func (h *ShowtimeHandler) CreateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.CreateShowtimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	showtime, err := h.service.CreateShowtime(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create showtime")
		return
	}

	utils.ResponseCreated(w, "Showtime created", showtime)
}

func (h *ShowtimeHandler) UpdateShowtime(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateShowtimeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	showtime, err := h.service.UpdateShowtime(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime updated", showtime)
}

func (h *ShowtimeHandler) DeleteShowtime(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteShowtime(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete showtime")
		return
	}

	utils.ResponseSuccess(w, "Showtime deleted", nil)
}
