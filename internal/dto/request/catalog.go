package request

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type CreateMovieRequest struct {
	TitleKG     string  `json:"title_kg" validate:"required,max=255"`
	TitleRU     string  `json:"title_ru" validate:"required,max=255"`
	SynopsisKG  string  `json:"synopsis_kg"`
	SynopsisRU  string  `json:"synopsis_ru"`
	Trailer     *string `json:"trailer,omitempty" validate:"omitempty,url"`
	Genre       string  `json:"genre" validate:"required,genre"`
	Language    string  `json:"language" validate:"required,movie_lang"`
	Duration    int     `json:"duration" validate:"required,gt=0"`
	Poster      string  `json:"poster"`
	ReleaseDate string  `json:"release_date" validate:"required,datetime=2006-01-02"`
	IsShowing   *bool   `json:"is_showing,omitempty"`
}

type UpdateMovieRequest struct {
	TitleKG     *string `json:"title_kg,omitempty" validate:"omitempty,min=1,max=255"`
	TitleRU     *string `json:"title_ru,omitempty" validate:"omitempty,min=1,max=255"`
	SynopsisKG  *string `json:"synopsis_kg,omitempty"`
	SynopsisRU  *string `json:"synopsis_ru,omitempty"`
	Trailer     *string `json:"trailer,omitempty" validate:"omitempty,url"`
	Genre       *string `json:"genre,omitempty" validate:"omitempty,genre"`
	Language    *string `json:"language,omitempty" validate:"omitempty,movie_lang"`
	Duration    *int    `json:"duration,omitempty" validate:"omitempty,gt=0"`
	Poster      *string `json:"poster,omitempty"`
	ReleaseDate *string `json:"release_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsShowing   *bool   `json:"is_showing,omitempty"`
}

type MovieListQuery struct {
	Showing  bool
	Genre    string `validate:"omitempty,genre"`
	Language string `validate:"omitempty,movie_lang"`
	Search   string
}

type CreateHallRequest struct {
	Name     string          `json:"name" validate:"required,max=100"`
	Capacity int             `json:"capacity" validate:"required,gt=0"`
	Layout   json.RawMessage `json:"layout" validate:"required"`
}

type UpdateHallRequest struct {
	Name     *string         `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Capacity *int            `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Layout   json.RawMessage `json:"layout,omitempty"`
}

type CreateShowtimeRequest struct {
	MovieID  string          `json:"movie" validate:"required,uuid"`
	HallID   string          `json:"hall" validate:"required,uuid"`
	Datetime time.Time       `json:"datetime" validate:"required"`
	Language string          `json:"language" validate:"required,showtime_lang"`
	Price    decimal.Decimal `json:"price"`
}

type UpdateShowtimeRequest struct {
	MovieID  *string          `json:"movie,omitempty" validate:"omitempty,uuid"`
	HallID   *string          `json:"hall,omitempty" validate:"omitempty,uuid"`
	Datetime *time.Time       `json:"datetime,omitempty"`
	Language *string          `json:"language,omitempty" validate:"omitempty,showtime_lang"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type ShowtimeListQuery struct {
	MovieID  string `validate:"omitempty,uuid"`
	HallID   string `validate:"omitempty,uuid"`
	Date     string `validate:"omitempty,datetime=2006-01-02"`
	Language string `validate:"omitempty,showtime_lang"`
}

type CreateSnackRequest struct {
	NameKG    string          `json:"name_kg" validate:"required,max=100"`
	NameRU    string          `json:"name_ru" validate:"required,max=100"`
	Price     decimal.Decimal `json:"price"`
	Image     string          `json:"image"`
	Available *bool           `json:"available,omitempty"`
}

type UpdateSnackRequest struct {
	NameKG    *string          `json:"name_kg,omitempty" validate:"omitempty,min=1,max=100"`
	NameRU    *string          `json:"name_ru,omitempty" validate:"omitempty,min=1,max=100"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	Image     *string          `json:"image,omitempty"`
	Available *bool            `json:"available,omitempty"`
}
