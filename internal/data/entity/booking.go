package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// ClaimingStatuses are the statuses whose seats count as taken.
var ClaimingStatuses = []BookingStatus{BookingStatusPending, BookingStatusConfirmed}

type Booking struct {
	BaseNoDelete
	UserID      uuid.UUID       `db:"user_id"`
	ShowtimeID  uuid.UUID       `db:"showtime_id"`
	Seats       []string        `db:"seats"`
	SnackTotal  decimal.Decimal `db:"snack_total"`
	TicketTotal decimal.Decimal `db:"ticket_total"`
	GrandTotal  decimal.Decimal `db:"grand_total"`
	Status      BookingStatus   `db:"status"`
}

func (b *Booking) ClaimsSeats() bool {
	return b.Status == BookingStatusPending || b.Status == BookingStatusConfirmed
}

// BookingDetail is a booking with the showtime context shown to its owner.
type BookingDetail struct {
	Booking
	MovieTitleKG     string    `db:"movie_title_kg"`
	MovieTitleRU     string    `db:"movie_title_ru"`
	HallName         string    `db:"hall_name"`
	ShowtimeDatetime time.Time `db:"showtime_datetime"`
	SnackOrders      []*SnackOrderDetail
}
