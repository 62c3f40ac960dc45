package response

import (
	"encoding/json"
	"time"

	"univer-cinema/internal/data/entity"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type MovieResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	TitleKG     string    `json:"title_kg"`
	TitleRU     string    `json:"title_ru"`
	SynopsisKG  string    `json:"synopsis_kg"`
	SynopsisRU  string    `json:"synopsis_ru"`
	Trailer     *string   `json:"trailer"`
	Genre       string    `json:"genre"`
	Language    string    `json:"language"`
	Duration    int       `json:"duration"`
	Poster      string    `json:"poster"`
	ReleaseDate string    `json:"release_date"`
	IsShowing   bool      `json:"is_showing"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func MovieToResponse(m *entity.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID.String(),
		Slug:        m.Slug,
		TitleKG:     m.TitleKG,
		TitleRU:     m.TitleRU,
		SynopsisKG:  m.SynopsisKG,
		SynopsisRU:  m.SynopsisRU,
		Trailer:     m.Trailer,
		Genre:       string(m.Genre),
		Language:    string(m.Language),
		Duration:    m.Duration,
		Poster:      m.Poster,
		ReleaseDate: m.ReleaseDate.Format("2006-01-02"),
		IsShowing:   m.IsShowing,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

type HallResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Capacity  int             `json:"capacity"`
	Layout    json.RawMessage `json:"layout"`
	SeatCount int             `json:"seat_count"`
}

func HallToResponse(h *entity.Hall) HallResponse {
	resp := HallResponse{
		ID:       h.ID.String(),
		Name:     h.Name,
		Capacity: h.Capacity,
		Layout:   h.Layout,
	}
	if seats, err := h.Seats(); err == nil {
		resp.SeatCount = len(seats)
	}
	return resp
}

type ShowtimeResponse struct {
	ID           string    `json:"id"`
	Movie        string    `json:"movie"`
	MovieTitleKG string    `json:"movie_title_kg"`
	MovieTitleRU string    `json:"movie_title_ru"`
	Hall         string    `json:"hall"`
	HallName     string    `json:"hall_name"`
	Datetime     time.Time `json:"datetime"`
	EndsAt       time.Time `json:"ends_at"`
	Language     string    `json:"language"`
	Price        string    `json:"price"`
}

func ShowtimeToResponse(s *entity.ShowtimeDetail) ShowtimeResponse {
	return ShowtimeResponse{
		ID:           s.ID.String(),
		Movie:        s.MovieID.String(),
		MovieTitleKG: s.MovieTitleKG,
		MovieTitleRU: s.MovieTitleRU,
		Hall:         s.HallID.String(),
		HallName:     s.HallName,
		Datetime:     s.Datetime,
		EndsAt:       s.EndsAt(),
		Language:     string(s.Language),
		Price:        money(s.Price),
	}
}

type SnackResponse struct {
	ID        string `json:"id"`
	NameKG    string `json:"name_kg"`
	NameRU    string `json:"name_ru"`
	Price     string `json:"price"`
	Image     string `json:"image"`
	Available bool   `json:"available"`
}

func SnackToResponse(s *entity.Snack) SnackResponse {
	return SnackResponse{
		ID:        s.ID.String(),
		NameKG:    s.NameKG,
		NameRU:    s.NameRU,
		Price:     money(s.Price),
		Image:     s.Image,
		Available: s.Available,
	}
}

// SeatAvailabilityResponse lists claimed seats for a showtime next to its hall layout.
type SeatAvailabilityResponse struct {
	Showtime       ShowtimeResponse `json:"showtime"`
	HallLayout     json.RawMessage  `json:"hall_layout"`
	BookedSeats    []string         `json:"booked_seats"`
	AllSeats       []string         `json:"all_seats"`
	AvailableSeats []string         `json:"available_seats"`
}
