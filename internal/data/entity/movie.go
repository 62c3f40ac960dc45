package entity

import (
	"time"
)

type Genre string

const (
	GenreAction      Genre = "action"
	GenreComedy      Genre = "comedy"
	GenreDrama       Genre = "drama"
	GenreHorror      Genre = "horror"
	GenreSciFi       Genre = "sci_fi"
	GenreFantasy     Genre = "fantasy"
	GenreRomance     Genre = "romance"
	GenreThriller    Genre = "thriller"
	GenreAnimation   Genre = "animation"
	GenreDocumentary Genre = "documentary"
)

var Genres = []Genre{
	GenreAction, GenreComedy, GenreDrama, GenreHorror, GenreSciFi,
	GenreFantasy, GenreRomance, GenreThriller, GenreAnimation, GenreDocumentary,
}

type MovieLanguage string

const (
	MovieLanguageKG    MovieLanguage = "kg"
	MovieLanguageRU    MovieLanguage = "ru"
	MovieLanguageEN    MovieLanguage = "en"
	MovieLanguageOther MovieLanguage = "other"
)

var MovieLanguages = []MovieLanguage{MovieLanguageKG, MovieLanguageRU, MovieLanguageEN, MovieLanguageOther}

type Movie struct {
	BaseNoDelete
	Slug        string        `db:"slug"`
	TitleKG     string        `db:"title_kg"`
	TitleRU     string        `db:"title_ru"`
	SynopsisKG  string        `db:"synopsis_kg"`
	SynopsisRU  string        `db:"synopsis_ru"`
	Trailer     *string       `db:"trailer"`
	Genre       Genre         `db:"genre"`
	Language    MovieLanguage `db:"language"`
	Duration    int           `db:"duration"`
	Poster      string        `db:"poster"`
	ReleaseDate time.Time     `db:"release_date"`
	IsShowing   bool          `db:"is_showing"`
}

// MovieFilter combines all set fields with AND.
type MovieFilter struct {
	Showing  bool
	Genre    string
	Language string
	Search   string
}
