package adaptor

import (
	"net/http"

	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type HallHandler struct {
	service usecase.HallService
	log     *zap.Logger
}

func NewHallHandler(service usecase.HallService, log *zap.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log.With(zap.String("handler", "hall")),
	}
}

func (h *HallHandler) GetHalls(w http.ResponseWriter, r *http.Request) {
	halls, err := h.service.ListHalls(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list halls")
		return
	}

	utils.ResponseSuccess(w, "success", halls)
}

func (h *HallHandler) GetHall(w http.ResponseWriter, r *http.Request) {
	hall, err := h.service.GetHall(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get hall")
		return
	}

	utils.ResponseSuccess(w, "success", hall)
}

func (h *HallHandler) CreateHall(w http.ResponseWriter, r *http.Request) {
	var req request.CreateHallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hall, err := h.service.CreateHall(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create hall")
		return
	}

	utils.ResponseCreated(w, "Hall created", hall)
}

func (h *HallHandler) UpdateHall(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateHallRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	hall, err := h.service.UpdateHall(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update hall")
		return
	}

	utils.ResponseSuccess(w, "Hall updated", hall)
}

func (h *HallHandler) DeleteHall(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteHall(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete hall")
		return
	}

	utils.ResponseSuccess(w, "Hall deleted", nil)
}
