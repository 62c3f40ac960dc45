package adaptor

import (
	"net/http"

	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type SnackHandler struct {
	service usecase.SnackService
	log     *zap.Logger
}

func NewSnackHandler(service usecase.SnackService, log *zap.Logger) *SnackHandler {
	return &SnackHandler{
		service: service,
		log:     log.With(zap.String("handler", "snack")),
	}
}

func (h *SnackHandler) GetSnacks(w http.ResponseWriter, r *http.Request) {
	snacks, err := h.service.ListSnacks(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list snacks")
		return
	}

	utils.ResponseSuccess(w, "success", snacks)
}

func (h *SnackHandler) GetSnack(w http.ResponseWriter, r *http.Request) {
	snack, err := h.service.GetSnack(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get snack")
		return
	}

	utils.ResponseSuccess(w, "success", snack)
}

func (h *SnackHandler) CreateSnack(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSnackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snack, err := h.service.CreateSnack(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create snack")
		return
	}

	utils.ResponseCreated(w, "Snack created", snack)
}

func (h *SnackHandler) UpdateSnack(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateSnackRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snack, err := h.service.UpdateSnack(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update snack")
		return
	}

	utils.ResponseSuccess(w, "Snack updated", snack)
}

func (h *SnackHandler) DeleteSnack(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteSnack(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete snack")
		return
	}

	utils.ResponseSuccess(w, "Snack deleted", nil)
}
