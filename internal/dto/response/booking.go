package response

import (
	"time"

	"univer-cinema/internal/data/entity"
)

type SnackOrderResponse struct {
	Snack    string `json:"snack"`
	NameKG   string `json:"name_kg"`
	NameRU   string `json:"name_ru"`
	Quantity int    `json:"quantity"`
	Subtotal string `json:"subtotal"`
}

type BookingResponse struct {
	ID               string               `json:"id"`
	Showtime         string               `json:"showtime"`
	MovieTitleKG     string               `json:"movie_title_kg"`
	MovieTitleRU     string               `json:"movie_title_ru"`
	HallName         string               `json:"hall_name"`
	ShowtimeDatetime time.Time            `json:"showtime_datetime"`
	Seats            []string             `json:"seats"`
	SnackOrders      []SnackOrderResponse `json:"snack_orders"`
	TicketTotal      string               `json:"ticket_total"`
	SnackTotal       string               `json:"snack_total"`
	GrandTotal       string               `json:"grand_total"`
	Status           entity.BookingStatus `json:"status"`
	CreatedAt        time.Time            `json:"created_at"`
}

func BookingToResponse(b *entity.BookingDetail) BookingResponse {
	orders := make([]SnackOrderResponse, 0, len(b.SnackOrders))
	for _, o := range b.SnackOrders {
		orders = append(orders, SnackOrderResponse{
			Snack:    o.SnackID.String(),
			NameKG:   o.NameKG,
			NameRU:   o.NameRU,
			Quantity: o.Quantity,
			Subtotal: money(o.Subtotal),
		})
	}

	return BookingResponse{
		ID:               b.ID.String(),
		Showtime:         b.ShowtimeID.String(),
		MovieTitleKG:     b.MovieTitleKG,
		MovieTitleRU:     b.MovieTitleRU,
		HallName:         b.HallName,
		ShowtimeDatetime: b.ShowtimeDatetime,
		Seats:            b.Seats,
		SnackOrders:      orders,
		TicketTotal:      money(b.TicketTotal),
		SnackTotal:       money(b.SnackTotal),
		GrandTotal:       money(b.GrandTotal),
		Status:           b.Status,
		CreatedAt:        b.CreatedAt,
	}
}
