package adaptor

import (
	"net/http"

	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ContentHandler struct {
	service usecase.ContentService
	log     *zap.Logger
}

func NewContentHandler(service usecase.ContentService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		log:     log.With(zap.String("handler", "content")),
	}
}

// ==================== NEWS ====================

// GetNewsList handles GET /api/news, published items only
func (h *ContentHandler) GetNewsList(w http.ResponseWriter, r *http.Request) {
	news, err := h.service.ListNews(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list news")
		return
	}

	utils.ResponseSuccess(w, "success", news)
}

func (h *ContentHandler) GetNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.service.GetNews(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get news")
		return
	}

	utils.ResponseSuccess(w, "success", news)
}

func (h *ContentHandler) CreateNews(w http.ResponseWriter, r *http.Request) {
	var req request.CreateNewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	news, err := h.service.CreateNews(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create news")
		return
	}

	utils.ResponseCreated(w, "News created", news)
}

func (h *ContentHandler) UpdateNews(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateNewsRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	news, err := h.service.UpdateNews(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update news")
		return
	}

	utils.ResponseSuccess(w, "News updated", news)
}

func (h *ContentHandler) DeleteNews(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteNews(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete news")
		return
	}

	utils.ResponseSuccess(w, "News deleted", nil)
}

// ==================== GALLERY ====================

func (h *ContentHandler) GetGalleryList(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListGallery(r.Context())
	if err != nil {
		handleServiceError(h.log, w, err, "list gallery")
		return
	}

	utils.ResponseSuccess(w, "success", items)
}

func (h *ContentHandler) GetGallery(w http.ResponseWriter, r *http.Request) {
	item, err := h.service.GetGallery(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get gallery item")
		return
	}

	utils.ResponseSuccess(w, "success", item)
}

func (h *ContentHandler) CreateGallery(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGalleryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.CreateGallery(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create gallery item")
		return
	}

	utils.ResponseCreated(w, "Gallery item created", item)
}

func (h *ContentHandler) UpdateGallery(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateGalleryRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.service.UpdateGallery(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update gallery item")
		return
	}

	utils.ResponseSuccess(w, "Gallery item updated", item)
}

func (h *ContentHandler) DeleteGallery(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGallery(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete gallery item")
		return
	}

	utils.ResponseSuccess(w, "Gallery item deleted", nil)
}
