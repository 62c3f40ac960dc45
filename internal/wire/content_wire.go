package wire

import (
	"net/http"

	"univer-cinema/internal/adaptor"
)

func contentRoutes(h *adaptor.ContentHandler) []route {
	return []route{
		{method: http.MethodGet, pattern: "/api/news", access: Public, handler: h.GetNewsList},
		{method: http.MethodGet, pattern: "/api/news/{id}", access: Public, handler: h.GetNews},
		{method: http.MethodPost, pattern: "/api/news", access: Admin, handler: h.CreateNews},
		{method: http.MethodPut, pattern: "/api/news/{id}", access: Admin, handler: h.UpdateNews},
		{method: http.MethodDelete, pattern: "/api/news/{id}", access: Admin, handler: h.DeleteNews},

		{method: http.MethodGet, pattern: "/api/gallery", access: Public, handler: h.GetGalleryList},
		{method: http.MethodGet, pattern: "/api/gallery/{id}", access: Public, handler: h.GetGallery},
		{method: http.MethodPost, pattern: "/api/gallery", access: Admin, handler: h.CreateGallery},
		{method: http.MethodPut, pattern: "/api/gallery/{id}", access: Admin, handler: h.UpdateGallery},
		{method: http.MethodDelete, pattern: "/api/gallery/{id}", access: Admin, handler: h.DeleteGallery},
	}
}
