package wire

import (
	"net/http"

	"univer-cinema/internal/adaptor"
)

// bookingRoutes only ever expose the caller's own bookings.
func bookingRoutes(h *adaptor.BookingHandler) []route {
	return []route{
		{method: http.MethodGet, pattern: "/api/bookings", access: Authenticated, handler: h.GetMyBookings},
		{method: http.MethodPost, pattern: "/api/bookings", access: Authenticated, handler: h.CreateBooking},
		{method: http.MethodGet, pattern: "/api/bookings/{id}", access: Authenticated, handler: h.GetMyBooking},
		{method: http.MethodPost, pattern: "/api/bookings/{id}/cancel", access: Authenticated, handler: h.CancelMyBooking},
		{method: http.MethodGet, pattern: "/api/bookings/{id}/qr", access: Authenticated, handler: h.GetBookingQR},
	}
}
