package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Snack struct {
	BaseNoDelete
	NameKG    string          `db:"name_kg"`
	NameRU    string          `db:"name_ru"`
	Price     decimal.Decimal `db:"price"`
	Image     string          `db:"image"`
	Available bool            `db:"available"`
}

type SnackOrder struct {
	BaseSimple
	BookingID uuid.UUID       `db:"booking_id"`
	SnackID   uuid.UUID       `db:"snack_id"`
	Quantity  int             `db:"quantity"`
	Subtotal  decimal.Decimal `db:"subtotal"`
}

// SnackOrderDetail carries the snack names for display.
type SnackOrderDetail struct {
	SnackOrder
	NameKG string `db:"name_kg"`
	NameRU string `db:"name_ru"`
}
