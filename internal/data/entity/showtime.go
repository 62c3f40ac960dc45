package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ShowtimeLanguage string

const (
	ShowtimeLanguageKG       ShowtimeLanguage = "kg"
	ShowtimeLanguageRU       ShowtimeLanguage = "ru"
	ShowtimeLanguageEN       ShowtimeLanguage = "en"
	ShowtimeLanguageOriginal ShowtimeLanguage = "original"
)

var ShowtimeLanguages = []ShowtimeLanguage{
	ShowtimeLanguageKG, ShowtimeLanguageRU, ShowtimeLanguageEN, ShowtimeLanguageOriginal,
}

type Showtime struct {
	BaseNoDelete
	MovieID  uuid.UUID        `db:"movie_id"`
	HallID   uuid.UUID        `db:"hall_id"`
	Datetime time.Time        `db:"datetime"`
	Language ShowtimeLanguage `db:"language"`
	Price    decimal.Decimal  `db:"price"`
}

// ShowtimeDetail is a showtime joined with its movie and hall names.
type ShowtimeDetail struct {
	Showtime
	MovieTitleKG  string `db:"movie_title_kg"`
	MovieTitleRU  string `db:"movie_title_ru"`
	MovieDuration int    `db:"movie_duration"`
	HallName      string `db:"hall_name"`
}

// EndsAt is the end of the screening window.
func (s *ShowtimeDetail) EndsAt() time.Time {
	return s.Datetime.Add(time.Duration(s.MovieDuration) * time.Minute)
}

// ShowtimeFilter: From applies only when Date is nil.
type ShowtimeFilter struct {
	MovieID  *uuid.UUID
	HallID   *uuid.UUID
	Date     *time.Time
	Location *time.Location
	From     time.Time
	Language string
}
