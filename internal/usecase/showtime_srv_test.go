package usecase

import (
	"context"
	"reflect"
	"slices"
	"testing"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/dto/request"
	"univer-cinema/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func TestCreateShowtimeRejectsOverlap(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	movie := f.store.addMovie("Long Film", 150)
	hall := f.store.addHall("Hall 2", gridLayout, 12)
	otherHall := f.store.addHall("Hall 3", gridLayout, 12)
	start := testNow.Add(24 * time.Hour)
	f.store.addShowtime(movie, hall, start, "250")

	newShowtime := func(hallID uuid.UUID, at time.Time) *request.CreateShowtimeRequest {
		return &request.CreateShowtimeRequest{
			MovieID:  movie.ID.String(),
			HallID:   hallID.String(),
			Datetime: at,
			Language: "ru",
			Price:    decimal.NewFromInt(250),
		}
	}

	_, err := f.service.Showtime.CreateShowtime(ctx, newShowtime(hall.ID, start.Add(time.Hour)))
	if !apperror.Is(err, apperror.KindConflict) {
		t.Fatalf("overlapping showtime error = %v, want conflict", err)
	}

	// starts exactly when the first one ends
	if _, err := f.service.Showtime.CreateShowtime(ctx, newShowtime(hall.ID, start.Add(150*time.Minute))); err != nil {
		t.Fatalf("back-to-back showtime: %v", err)
	}

	if _, err := f.service.Showtime.CreateShowtime(ctx, newShowtime(otherHall.ID, start.Add(time.Hour))); err != nil {
		t.Fatalf("same time in another hall: %v", err)
	}
}

func TestUpdateShowtimeIgnoresItself(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	movie := f.store.addMovie("Film", 90)
	hall := f.store.addHall("Hall", gridLayout, 12)
	st := f.store.addShowtime(movie, hall, testNow.Add(24*time.Hour), "200")

	later := st.Datetime.Add(30 * time.Minute)
	resp, err := f.service.Showtime.UpdateShowtime(ctx, st.ID.String(), &request.UpdateShowtimeRequest{Datetime: &later})
	if err != nil {
		t.Fatalf("UpdateShowtime: %v", err)
	}
	if !resp.Datetime.Equal(later) {
		t.Fatalf("datetime = %v, want %v", resp.Datetime, later)
	}
}

func TestCreateShowtimeReferences(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	movie := f.store.addMovie("Film", 90)
	hall := f.store.addHall("Hall", gridLayout, 12)

	tests := []struct {
		name string
		req  *request.CreateShowtimeRequest
		want apperror.Kind
	}{
		{
			name: "unknown movie",
			req:  &request.CreateShowtimeRequest{MovieID: uuid.NewString(), HallID: hall.ID.String(), Datetime: testNow, Language: "kg"},
			want: apperror.KindNotFound,
		},
		{
			name: "unknown hall",
			req:  &request.CreateShowtimeRequest{MovieID: movie.ID.String(), HallID: uuid.NewString(), Datetime: testNow, Language: "kg"},
			want: apperror.KindNotFound,
		},
		{
			name: "negative price",
			req:  &request.CreateShowtimeRequest{MovieID: movie.ID.String(), HallID: hall.ID.String(), Datetime: testNow, Language: "kg", Price: decimal.NewFromInt(-1)},
			want: apperror.KindValidation,
		},
		{
			name: "unknown language",
			req:  &request.CreateShowtimeRequest{MovieID: movie.ID.String(), HallID: hall.ID.String(), Datetime: testNow, Language: "de"},
			want: apperror.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.service.Showtime.CreateShowtime(ctx, tt.req)
			if !apperror.Is(err, tt.want) {
				t.Fatalf("error = %v, want %s", err, tt.want)
			}
		})
	}
}

func TestListShowtimesFilters(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	movie := f.store.addMovie("Film", 90)
	other := f.store.addMovie("Other", 90)
	hall := f.store.addHall("Hall", gridLayout, 12)

	past := f.store.addShowtime(movie, hall, testNow.Add(-3*time.Hour), "200")
	tomorrow := f.store.addShowtime(movie, hall, testNow.Add(24*time.Hour), "200")
	later := f.store.addShowtime(other, hall, testNow.Add(72*time.Hour), "200")

	upcoming, err := f.service.Showtime.ListShowtimes(ctx, &request.ShowtimeListQuery{})
	if err != nil {
		t.Fatalf("ListShowtimes: %v", err)
	}
	if len(upcoming) != 2 || upcoming[0].ID != tomorrow.ID.String() || upcoming[1].ID != later.ID.String() {
		t.Fatalf("upcoming = %+v", upcoming)
	}

	today, err := f.service.Showtime.ListShowtimes(ctx, &request.ShowtimeListQuery{Date: testNow.Format("2006-01-02")})
	if err != nil {
		t.Fatalf("ListShowtimes by date: %v", err)
	}
	if len(today) != 1 || today[0].ID != past.ID.String() {
		t.Fatalf("today = %+v", today)
	}

	byMovie, err := f.service.Showtime.ListShowtimes(ctx, &request.ShowtimeListQuery{MovieID: other.ID.String()})
	if err != nil {
		t.Fatalf("ListShowtimes by movie: %v", err)
	}
	if len(byMovie) != 1 || byMovie[0].MovieTitleRU != "Other" {
		t.Fatalf("by movie = %+v", byMovie)
	}

	_, err = f.service.Showtime.ListShowtimes(ctx, &request.ShowtimeListQuery{Date: "10/03/2025"})
	if !apperror.Is(err, apperror.KindValidation) {
		t.Fatalf("bad date error = %v, want validation error", err)
	}
}

func TestGetAvailability(t *testing.T) {
	s := newBookingScene(t)
	ctx := context.Background()

	if err := s.book(t, "A1", "B2"); err != nil {
		t.Fatalf("book: %v", err)
	}

	got, err := s.service.Showtime.GetAvailability(ctx, s.showtime.ID.String())
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}
	if len(got.AllSeats) != 12 {
		t.Errorf("all seats = %d, want 12", len(got.AllSeats))
	}
	if len(got.BookedSeats) != 2 || got.BookedSeats[0] != "A1" || got.BookedSeats[1] != "B2" {
		t.Errorf("booked = %v, want [A1 B2]", got.BookedSeats)
	}
	if len(got.AvailableSeats) != 10 {
		t.Errorf("available = %d, want 10", len(got.AvailableSeats))
	}
	for _, seat := range got.AvailableSeats {
		if seat == "A1" || seat == "B2" {
			t.Errorf("booked seat %s listed as available", seat)
		}
	}

	if _, err := s.service.Showtime.GetAvailability(ctx, uuid.NewString()); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("unknown showtime error = %v, want not found", err)
	}
}

func TestGetAvailabilityCountsOnlyClaimingStatuses(t *testing.T) {
	s := newBookingScene(t)
	ctx := context.Background()

	s.store.addBooking(s.showtime, entity.BookingStatusPending, "A1", "A2")
	s.store.addBooking(s.showtime, entity.BookingStatusConfirmed, "C4")
	s.store.addBooking(s.showtime, entity.BookingStatusCancelled, "B1")
	s.store.addBooking(s.showtime, entity.BookingStatusCompleted, "B2")

	got, err := s.service.Showtime.GetAvailability(ctx, s.showtime.ID.String())
	if err != nil {
		t.Fatalf("GetAvailability: %v", err)
	}

	want := []string{"A1", "A2", "C4"}
	if !reflect.DeepEqual(got.BookedSeats, want) {
		t.Fatalf("booked = %v, want %v", got.BookedSeats, want)
	}
	if len(got.AvailableSeats) != 9 {
		t.Fatalf("available = %v, want 9 seats", got.AvailableSeats)
	}
	for _, seat := range []string{"B1", "B2"} {
		if !slices.Contains(got.AvailableSeats, seat) {
			t.Errorf("released seat %s not available", seat)
		}
	}
}
