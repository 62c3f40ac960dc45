package wire

import (
	"net/http"

	"univer-cinema/internal/adaptor"
	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/usecase"
	"univer-cinema/pkg/middleware"
	"univer-cinema/pkg/ratelimit"
	"univer-cinema/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP router and the services behind it.
type App struct {
	Router  *chi.Mux
	Service *usecase.Service
}

// Wiring builds services, handlers and routes.
func Wiring(
	repo *repository.Repository,
	config *utils.Config,
	deps usecase.Deps,
	limiter ratelimit.Limiter,
	logger *zap.Logger,
) *App {
	service := usecase.NewService(repo, config, deps, logger)
	handler := adaptor.NewHandler(service, logger)

	return &App{
		Router:  setupRouter(handler, repo.Session, config, limiter, logger),
		Service: service,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	sessions repository.SessionRepository,
	config *utils.Config,
	limiter ratelimit.Limiter,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS(config.App.CORSOrigins))

	guards := accessGuards{
		authenticated: []func(http.Handler) http.Handler{
			middleware.AuthSession(sessions, logger),
		},
		admin: []func(http.Handler) http.Handler{
			middleware.AuthSession(sessions, logger),
			middleware.RequireRole(string(entity.RoleAdmin), logger),
		},
		limited: middleware.RateLimit(limiter, logger),
	}

	var table []route
	table = append(table, authRoutes(handler.Auth, handler.User)...)
	table = append(table, movieRoutes(handler.Movie)...)
	table = append(table, catalogRoutes(handler.Hall, handler.Showtime, handler.Snack)...)
	table = append(table, bookingRoutes(handler.Booking)...)
	table = append(table, contentRoutes(handler.Content)...)
	mount(r, table, guards)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseNotFound(w, "Route not found")
	})

	return r
}
