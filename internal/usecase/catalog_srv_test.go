package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/dto/request"
	"univer-cinema/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func newMovieRequest(titleRU string) *request.CreateMovieRequest {
	return &request.CreateMovieRequest{
		TitleKG:     titleRU,
		TitleRU:     titleRU,
		Genre:       "sci_fi",
		Language:    "en",
		Duration:    136,
		ReleaseDate: "1999-03-31",
	}
}

func TestCreateMovieSlugs(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.service.Movie.CreateMovie(ctx, newMovieRequest("The Matrix"))
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	second, err := f.service.Movie.CreateMovie(ctx, newMovieRequest("The Matrix"))
	if err != nil {
		t.Fatalf("CreateMovie: %v", err)
	}
	if first.Slug != "the-matrix" || second.Slug != "the-matrix-2" {
		t.Fatalf("slugs = %q, %q", first.Slug, second.Slug)
	}

	got, err := f.service.Movie.GetMovie(ctx, "the-matrix-2")
	if err != nil {
		t.Fatalf("GetMovie by slug: %v", err)
	}
	if got.ID != second.ID {
		t.Fatalf("GetMovie by slug = %s, want %s", got.ID, second.ID)
	}

	// renaming regenerates the slug, other edits keep it
	duration := 140
	updated, err := f.service.Movie.UpdateMovie(ctx, first.ID, &request.UpdateMovieRequest{Duration: &duration})
	if err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}
	if updated.Slug != "the-matrix" {
		t.Fatalf("slug after duration change = %q", updated.Slug)
	}

	title := "Матрица"
	updated, err = f.service.Movie.UpdateMovie(ctx, first.ID, &request.UpdateMovieRequest{TitleRU: &title})
	if err != nil {
		t.Fatalf("UpdateMovie: %v", err)
	}
	if updated.Slug == "the-matrix" || updated.Slug == "" {
		t.Fatalf("slug after rename = %q", updated.Slug)
	}
}

func TestCreateMovieValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	req := newMovieRequest("Film")
	req.Genre = "western"
	_, err := f.service.Movie.CreateMovie(ctx, req)
	ae := requireKind(t, err, apperror.KindValidation)
	if !strings.Contains(ae.Fields["genre"], "sci_fi") {
		t.Fatalf("genre message = %q, want the allowed values", ae.Fields["genre"])
	}

	req = newMovieRequest("Film")
	req.ReleaseDate = "31.03.1999"
	_, err = f.service.Movie.CreateMovie(ctx, req)
	requireKind(t, err, apperror.KindValidation)

	_, err = f.service.Movie.ListMovies(ctx, &request.MovieListQuery{Language: "fr"})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.service.Movie.GetMovie(ctx, uuid.NewString())
	requireKind(t, err, apperror.KindNotFound)
}

func TestHallLayoutChecks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		layout   string
		capacity int
		wantErr  bool
	}{
		{"fits", `{"rows": 2, "seatsPerRow": 5}`, 10, false},
		{"exceeds capacity", `{"rows": 3, "seatsPerRow": 5}`, 10, true},
		{"duplicate seats", `{"seats": ["A1", "A1"]}`, 10, true},
		{"no seats", `{"seats": []}`, 10, true},
		{"unknown shape", `{"type": "imax"}`, 10, true},
		{"negative row count", `{"rows": [{"letter": "A", "count": -1}]}`, 10, true},
		{"grid far above capacity", `{"rows": 2000, "seatsPerRow": 2000}`, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.Hall.CreateHall(ctx, &request.CreateHallRequest{
				Name:     tt.name,
				Capacity: tt.capacity,
				Layout:   json.RawMessage(tt.layout),
			})
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("CreateHall: %v", err)
				}
				if resp.ID == "" {
					t.Fatal("hall without id")
				}
				return
			}
			ae := requireKind(t, err, apperror.KindValidation)
			if ae.Fields["layout"] == "" {
				t.Fatalf("fields = %v, want a layout error", ae.Fields)
			}
		})
	}
}

func TestUpdateHallRechecksCapacity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	hall := f.store.addHall("Hall", gridLayout, 12)

	capacity := 6
	_, err := f.service.Hall.UpdateHall(ctx, hall.ID.String(), &request.UpdateHallRequest{Capacity: &capacity})
	requireKind(t, err, apperror.KindValidation)
}

func TestSnacks(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	popcorn := f.store.addSnack("Popcorn", "50", true)
	nachos := f.store.addSnack("Nachos", "80", false)

	list, err := f.service.Snack.ListSnacks(ctx)
	if err != nil {
		t.Fatalf("ListSnacks: %v", err)
	}
	if len(list) != 1 || list[0].NameRU != "Popcorn" {
		t.Fatalf("snacks = %+v, want only available ones", list)
	}

	if _, err := f.service.Snack.GetSnack(ctx, popcorn.ID.String()); err != nil {
		t.Fatalf("GetSnack(available): %v", err)
	}
	_, err = f.service.Snack.GetSnack(ctx, nachos.ID.String())
	requireKind(t, err, apperror.KindNotFound)

	_, err = f.service.Snack.CreateSnack(ctx, &request.CreateSnackRequest{NameKG: "Cola", NameRU: "Cola", Price: decimal.NewFromInt(-5)})
	requireKind(t, err, apperror.KindValidation)

	_, err = f.service.Snack.CreateSnack(ctx, &request.CreateSnackRequest{NameKG: "Cola", NameRU: "Cola", Price: decimal.NewFromInt(100_000_000)})
	ae := requireKind(t, err, apperror.KindValidation)
	if ae.Fields["price"] == "" {
		t.Fatalf("fields = %v, want a price error", ae.Fields)
	}
}

func TestNewsVisibility(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	draft := false
	hidden, err := f.service.Content.CreateNews(ctx, &request.CreateNewsRequest{TitleKG: "Жаңылык", TitleRU: "Скоро", Published: &draft})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}
	shown, err := f.service.Content.CreateNews(ctx, &request.CreateNewsRequest{TitleKG: "Премьера", TitleRU: "Премьера"})
	if err != nil {
		t.Fatalf("CreateNews: %v", err)
	}

	list, err := f.service.Content.ListNews(ctx)
	if err != nil {
		t.Fatalf("ListNews: %v", err)
	}
	if len(list) != 1 || list[0].ID != shown.ID {
		t.Fatalf("news = %+v, want only the published item", list)
	}

	_, err = f.service.Content.GetNews(ctx, hidden.ID)
	requireKind(t, err, apperror.KindNotFound)

	publish := true
	if _, err := f.service.Content.UpdateNews(ctx, hidden.ID, &request.UpdateNewsRequest{Published: &publish}); err != nil {
		t.Fatalf("UpdateNews: %v", err)
	}
	if _, err := f.service.Content.GetNews(ctx, hidden.ID); err != nil {
		t.Fatalf("GetNews after publishing: %v", err)
	}
}

func TestCompleteFinishedBookings(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	movie := f.store.addMovie("Film", 120)
	hall := f.store.addHall("Hall", gridLayout, 12)
	over := f.store.addShowtime(movie, hall, testNow.Add(-3*time.Hour), "200")
	running := f.store.addShowtime(movie, hall, testNow.Add(-time.Hour), "200")

	done := f.store.addBooking(over, entity.BookingStatusConfirmed, "A1").ID
	cancelled := f.store.addBooking(over, entity.BookingStatusCancelled, "A2").ID
	current := f.store.addBooking(running, entity.BookingStatusPending, "A1").ID

	n, err := f.service.Maintenance.CompleteFinishedBookings(ctx)
	if err != nil {
		t.Fatalf("CompleteFinishedBookings: %v", err)
	}
	if n != 1 {
		t.Fatalf("completed = %d, want 1", n)
	}
	if got := f.store.bookings[done].Status; got != entity.BookingStatusCompleted {
		t.Errorf("finished booking status = %s", got)
	}
	if got := f.store.bookings[cancelled].Status; got != entity.BookingStatusCancelled {
		t.Errorf("cancelled booking status = %s", got)
	}
	if got := f.store.bookings[current].Status; got != entity.BookingStatusPending {
		t.Errorf("running booking status = %s", got)
	}
}

func TestPurgeStale(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	user := f.store.addUser("aibek", "aibek@example.kg", "s3cret-pass", entity.RoleCustomer)

	oldID, freshID := uuid.New(), uuid.New()
	f.store.resets[oldID] = entity.PasswordReset{
		BaseSimple: entity.BaseSimple{ID: oldID, CreatedAt: testNow.AddDate(0, 0, -10)},
		UserID:     user.ID,
		Token:      "old",
		ExpiresAt:  testNow.AddDate(0, 0, -9),
	}
	f.store.resets[freshID] = entity.PasswordReset{
		BaseSimple: entity.BaseSimple{ID: freshID, CreatedAt: testNow.Add(-2 * time.Hour)},
		UserID:     user.ID,
		Token:      "fresh",
		ExpiresAt:  testNow.Add(-time.Hour),
	}

	if err := f.service.Maintenance.PurgeStale(ctx); err != nil {
		t.Fatalf("PurgeStale: %v", err)
	}
	if _, ok := f.store.resets[oldID]; ok {
		t.Error("reset expired ten days ago was kept")
	}
	if _, ok := f.store.resets[freshID]; !ok {
		t.Error("reset expired an hour ago was purged")
	}
}
