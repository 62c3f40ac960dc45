package wire

import (
	"net/http"

	"univer-cinema/internal/adaptor"
)

func movieRoutes(h *adaptor.MovieHandler) []route {
	return []route{
		{method: http.MethodGet, pattern: "/api/movies", access: Public, handler: h.GetMovies},
		// {id} also accepts the movie slug
		{method: http.MethodGet, pattern: "/api/movies/{id}", access: Public, handler: h.GetMovie},
		{method: http.MethodPost, pattern: "/api/movies", access: Admin, handler: h.CreateMovie},
		{method: http.MethodPut, pattern: "/api/movies/{id}", access: Admin, handler: h.UpdateMovie},
		{method: http.MethodDelete, pattern: "/api/movies/{id}", access: Admin, handler: h.DeleteMovie},
	}
}
