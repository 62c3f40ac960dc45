package wire

import (
	"net/http"

	"univer-cinema/internal/adaptor"
)

func catalogRoutes(hall *adaptor.HallHandler, showtime *adaptor.ShowtimeHandler, snack *adaptor.SnackHandler) []route {
	return []route{
		// halls
		{method: http.MethodGet, pattern: "/api/halls", access: Public, handler: hall.GetHalls},
		{method: http.MethodGet, pattern: "/api/halls/{id}", access: Public, handler: hall.GetHall},
		{method: http.MethodPost, pattern: "/api/halls", access: Admin, handler: hall.CreateHall},
		{method: http.MethodPut, pattern: "/api/halls/{id}", access: Admin, handler: hall.UpdateHall},
		{method: http.MethodDelete, pattern: "/api/halls/{id}", access: Admin, handler: hall.DeleteHall},

		// showtimes
		{method: http.MethodGet, pattern: "/api/showtimes", access: Public, handler: showtime.GetShowtimes},
		{method: http.MethodGet, pattern: "/api/showtimes/{id}", access: Public, handler: showtime.GetShowtime},
		{method: http.MethodGet, pattern: "/api/showtimes/{id}/seats", access: Public, handler: showtime.GetSeats},
		{method: http.MethodPost, pattern: "/api/showtimes", access: Admin, handler: showtime.CreateShowtime},
		{method: http.MethodPut, pattern: "/api/showtimes/{id}", access: Admin, handler: showtime.UpdateShowtime},
		{method: http.MethodDelete, pattern: "/api/showtimes/{id}", access: Admin, handler: showtime.DeleteShowtime},

		// snacks
		{method: http.MethodGet, pattern: "/api/snacks", access: Public, handler: snack.GetSnacks},
		{method: http.MethodGet, pattern: "/api/snacks/{id}", access: Public, handler: snack.GetSnack},
		{method: http.MethodPost, pattern: "/api/snacks", access: Admin, handler: snack.CreateSnack},
		{method: http.MethodPut, pattern: "/api/snacks/{id}", access: Admin, handler: snack.UpdateSnack},
		{method: http.MethodDelete, pattern: "/api/snacks/{id}", access: Admin, handler: snack.DeleteSnack},
	}
}
