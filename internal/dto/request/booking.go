package request

import "github.com/shopspring/decimal"

type SnackOrderLine struct {
	SnackID  string `json:"snack" validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0,max=100"`
}

type CreateBookingRequest struct {
	ShowtimeID  string           `json:"showtime" validate:"required,uuid"`
	Seats       []string         `json:"seats" validate:"required,min=1,dive,required,max=10"`
	SnackOrders []SnackOrderLine `json:"snack_orders" validate:"omitempty,dive"`
	// SnackTotal, when present, replaces the computed snack sum.
	SnackTotal *decimal.Decimal `json:"snack_total,omitempty"`
}
