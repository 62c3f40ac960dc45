package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/dto/response"
	"univer-cinema/pkg/apperror"
	"univer-cinema/pkg/events"
	"univer-cinema/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const qrSize = 256

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	ListMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetMyBooking(ctx context.Context, userID uuid.UUID, id string) (*response.BookingResponse, error)
	CancelMyBooking(ctx context.Context, userID uuid.UUID, id string) (*response.BookingResponse, error)
	// BookingQR renders the booking id as a PNG QR code.
	BookingQR(ctx context.Context, userID uuid.UUID, id string) ([]byte, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher events.Publisher
	now       func() time.Time
	log       *zap.Logger
}

func NewBookingService(repo *repository.Repository, deps Deps, log *zap.Logger) BookingService {
	return &bookingService{
		repo:      repo,
		publisher: deps.Publisher,
		now:       deps.Now,
		log:       log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// 1. Validate input
	if err := validate(req); err != nil {
		return nil, err
	}

	seats, dups := normalizeSeats(req.Seats)
	if len(dups) > 0 {
		return nil, apperror.ValidationField("seats", "Duplicate seats: "+strings.Join(dups, ", "))
	}
	if req.SnackTotal != nil {
		if err := checkAmount("snack_total", *req.SnackTotal); err != nil {
			return nil, err
		}
	}

	showtimeID := uuid.MustParse(req.ShowtimeID)
	now := s.now()
	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:     userID,
		ShowtimeID: showtimeID,
		Seats:      seats,
		Status:     entity.BookingStatusConfirmed,
	}

	// 2. Claim seats and persist under the showtime lock
	err := s.repo.Tx.WithinTx(ctx, func(tx *repository.Repository) error {
		showtime, err := tx.Showtime.LockByID(ctx, showtimeID)
		if err != nil {
			return fmt.Errorf("lock showtime: %w", err)
		}
		if showtime == nil {
			return apperror.NotFound("Showtime not found")
		}

		if err := s.checkSeats(ctx, tx, showtime, seats); err != nil {
			return err
		}

		// 3. Ticket total
		booking.TicketTotal = showtime.Price.Mul(decimal.NewFromInt(int64(len(seats))))
		if err := checkAmount("seats", booking.TicketTotal); err != nil {
			return err
		}

		// 4. Snack lines
		orders, snackTotal, err := s.priceSnacks(ctx, tx, booking.ID, req.SnackOrders, now)
		if err != nil {
			return err
		}
		if err := checkAmount("snack_orders", snackTotal); err != nil {
			return err
		}

		// 5. Caller-supplied snack total wins
		if req.SnackTotal != nil {
			if !req.SnackTotal.Equal(snackTotal) {
				s.log.Warn("Snack total differs from computed sum",
					zap.String("booking_id", booking.ID.String()),
					zap.String("supplied", req.SnackTotal.StringFixed(2)),
					zap.String("computed", snackTotal.StringFixed(2)))
			}
			snackTotal = *req.SnackTotal
		}
		booking.SnackTotal = snackTotal

		// 6. Grand total
		booking.GrandTotal = booking.TicketTotal.Add(booking.SnackTotal)
		if err := checkAmount("grand_total", booking.GrandTotal); err != nil {
			return err
		}

		// 7. Persist
		if err := tx.Booking.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		if len(orders) > 0 {
			if err := tx.SnackOrder.CreateBatch(ctx, orders); err != nil {
				return fmt.Errorf("create snack orders: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Strings("seats", seats),
		zap.String("grand_total", booking.GrandTotal.StringFixed(2)))

	// 8. Notify
	go s.publishCreated(booking)

	return s.loadBooking(ctx, booking.ID)
}

func (s *bookingService) ListMyBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.Limit()

	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	if err := s.attachSnackOrders(ctx, bookings...); err != nil {
		return nil, err
	}

	data := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		data = append(data, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(data, page, perPage, total), nil
}

func (s *bookingService) GetMyBooking(ctx context.Context, userID uuid.UUID, id string) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if err := s.attachSnackOrders(ctx, booking); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) CancelMyBooking(ctx context.Context, userID uuid.UUID, id string) (*response.BookingResponse, error) {
	booking, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	changed, err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled, entity.ClaimingStatuses...)
	if err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}
	if !changed {
		return nil, apperror.Conflict(fmt.Sprintf("Booking is %s and cannot be cancelled", booking.Status))
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()))

	return s.loadBooking(ctx, booking.ID)
}

func (s *bookingService) BookingQR(ctx context.Context, userID uuid.UUID, id string) ([]byte, error) {
	booking, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	png, err := utils.GenerateQRCode(booking.ID.String(), qrSize)
	if err != nil {
		return nil, fmt.Errorf("generate qr code: %w", err)
	}
	return png, nil
}

// ==================== HELPER METHODS ====================

// checkSeats rejects seats outside the hall layout or already held by another booking.
func (s *bookingService) checkSeats(ctx context.Context, tx *repository.Repository, showtime *entity.Showtime, seats []string) error {
	hall, err := tx.Hall.FindByID(ctx, showtime.HallID)
	if err != nil {
		return fmt.Errorf("find hall: %w", err)
	}
	if hall == nil {
		return apperror.NotFound("Hall not found")
	}

	layout, err := hall.Seats()
	if err != nil {
		return apperror.Internal("Hall layout is invalid", err)
	}
	inLayout := make(map[string]struct{}, len(layout))
	for _, seat := range layout {
		inLayout[seat] = struct{}{}
	}

	var unknown []string
	for _, seat := range seats {
		if _, ok := inLayout[seat]; !ok {
			unknown = append(unknown, seat)
		}
	}
	if len(unknown) > 0 {
		return apperror.Conflict("Seats do not exist in this hall: " + strings.Join(unknown, ", "))
	}

	claimed, err := tx.Booking.ClaimedSeats(ctx, showtime.ID)
	if err != nil {
		return fmt.Errorf("claimed seats: %w", err)
	}
	taken := make(map[string]struct{}, len(claimed))
	for _, seat := range claimed {
		taken[seat] = struct{}{}
	}

	var conflicts []string
	for _, seat := range seats {
		if _, ok := taken[seat]; ok {
			conflicts = append(conflicts, seat)
		}
	}
	if len(conflicts) > 0 {
		return apperror.Conflict("Seats already booked: " + strings.Join(conflicts, ", "))
	}
	return nil
}

func (s *bookingService) priceSnacks(ctx context.Context, tx *repository.Repository, bookingID uuid.UUID, lines []request.SnackOrderLine, now time.Time) ([]*entity.SnackOrder, decimal.Decimal, error) {
	total := decimal.Zero
	orders := make([]*entity.SnackOrder, 0, len(lines))

	for _, line := range lines {
		snack, err := tx.Snack.FindByID(ctx, uuid.MustParse(line.SnackID))
		if err != nil {
			return nil, total, fmt.Errorf("find snack: %w", err)
		}
		if snack == nil || !snack.Available {
			return nil, total, apperror.NotFound("Snack not found: " + line.SnackID)
		}

		subtotal := snack.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		total = total.Add(subtotal)

		orders = append(orders, &entity.SnackOrder{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: now,
			},
			BookingID: bookingID,
			SnackID:   snack.ID,
			Quantity:  line.Quantity,
			Subtotal:  subtotal,
		})
	}

	return orders, total, nil
}

func (s *bookingService) findOwned(ctx context.Context, userID uuid.UUID, id string) (*entity.BookingDetail, error) {
	bookingID, err := parseID(id, "Booking")
	if err != nil {
		return nil, err
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	// someone else's booking looks the same as a missing one
	if booking == nil || booking.UserID != userID {
		return nil, apperror.NotFound("Booking not found")
	}
	return booking, nil
}

func (s *bookingService) loadBooking(ctx context.Context, id uuid.UUID) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, apperror.NotFound("Booking not found")
	}

	if err := s.attachSnackOrders(ctx, booking); err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) attachSnackOrders(ctx context.Context, bookings ...*entity.BookingDetail) error {
	if len(bookings) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(bookings))
	for i, b := range bookings {
		ids[i] = b.ID
	}

	orders, err := s.repo.SnackOrder.FindByBookingIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("find snack orders: %w", err)
	}
	for _, b := range bookings {
		b.SnackOrders = orders[b.ID]
	}
	return nil
}

func (s *bookingService) publishCreated(booking *entity.Booking) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	event := events.BookingCreated{
		BookingID:  booking.ID.String(),
		UserID:     booking.UserID.String(),
		ShowtimeID: booking.ShowtimeID.String(),
		Seats:      booking.Seats,
		GrandTotal: booking.GrandTotal.StringFixed(2),
		CreatedAt:  booking.CreatedAt,
	}
	if err := s.publisher.PublishBookingCreated(ctx, event); err != nil {
		s.log.Error("Failed to publish booking event", zap.Error(err), zap.String("booking_id", event.BookingID))
	}
}

// normalizeSeats upper-cases seat ids and returns any that repeat.
func normalizeSeats(raw []string) ([]string, []string) {
	seen := make(map[string]bool, len(raw))
	seats := make([]string, 0, len(raw))
	var dups []string

	for _, seat := range raw {
		seat = strings.ToUpper(strings.TrimSpace(seat))
		if seen[seat] {
			dups = append(dups, seat)
			continue
		}
		seen[seat] = true
		seats = append(seats, seat)
	}

	return seats, dups
}
