package usecase

import (
	"errors"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/pkg/apperror"
	"univer-cinema/pkg/events"
	"univer-cinema/pkg/mailer"
	"univer-cinema/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxAmount is the largest value the NUMERIC(10,2) money columns hold.
var maxAmount = decimal.RequireFromString("99999999.99")

func init() {
	genres := make([]string, len(entity.Genres))
	for i, g := range entity.Genres {
		genres[i] = string(g)
	}
	utils.RegisterEnum("genre", genres...)

	movieLangs := make([]string, len(entity.MovieLanguages))
	for i, l := range entity.MovieLanguages {
		movieLangs[i] = string(l)
	}
	utils.RegisterEnum("movie_lang", movieLangs...)

	showtimeLangs := make([]string, len(entity.ShowtimeLanguages))
	for i, l := range entity.ShowtimeLanguages {
		showtimeLangs[i] = string(l)
	}
	utils.RegisterEnum("showtime_lang", showtimeLangs...)
}

type Service struct {
	Auth        AuthService
	User        UserService
	Movie       MovieService
	Hall        HallService
	Showtime    ShowtimeService
	Snack       SnackService
	Booking     BookingService
	Content     ContentService
	Maintenance MaintenanceService
}

// Deps are the outbound collaborators shared by the services.
type Deps struct {
	Mailer    mailer.Mailer
	Publisher events.Publisher
	// Now defaults to time.Now.
	Now func() time.Time
}

func NewService(repo *repository.Repository, config *utils.Config, deps Deps, log *zap.Logger) *Service {
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Service{
		Auth:        NewAuthService(repo, config, deps, log),
		User:        NewUserService(repo.User, log),
		Movie:       NewMovieService(repo, log),
		Hall:        NewHallService(repo, log),
		Showtime:    NewShowtimeService(repo, config, deps, log),
		Snack:       NewSnackService(repo.Snack, log),
		Booking:     NewBookingService(repo, deps, log),
		Content:     NewContentService(repo, log),
		Maintenance: NewMaintenanceService(repo, deps, log),
	}
}

// ==================== HELPERS ====================

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return apperror.Validation("Validation failed", errs)
	}
	return nil
}

// parseID treats a malformed id like an unknown one.
func parseID(id, what string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperror.NotFound(what + " not found")
	}
	return parsed, nil
}

// writeErr maps repository sentinel errors onto application errors.
func writeErr(err error, what string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return apperror.NotFound(what + " not found")
	case errors.Is(err, repository.ErrDuplicate):
		return apperror.Conflict(what + " already exists")
	default:
		return err
	}
}

// checkAmount keeps money values within 0..maxAmount.
func checkAmount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return apperror.ValidationField(field, "Must be at least 0")
	}
	if v.GreaterThan(maxAmount) {
		return apperror.ValidationField(field, "Must be at most "+maxAmount.StringFixed(2))
	}
	return nil
}
