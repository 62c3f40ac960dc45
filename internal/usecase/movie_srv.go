package usecase

import (
	"context"
	"fmt"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/internal/dto/request"
	"univer-cinema/internal/dto/response"
	"univer-cinema/pkg/apperror"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type MovieService interface {
	ListMovies(ctx context.Context, query *request.MovieListQuery) ([]response.MovieResponse, error)
	// GetMovie accepts either the movie id or its slug.
	GetMovie(ctx context.Context, idOrSlug string) (*response.MovieResponse, error)
	CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error)
	UpdateMovie(ctx context.Context, id string, req *request.UpdateMovieRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, id string) error
}

type movieService struct {
	movieRepo repository.MovieRepository
	log       *zap.Logger
}

func NewMovieService(repo *repository.Repository, log *zap.Logger) MovieService {
	return &movieService{
		movieRepo: repo.Movie,
		log:       log.With(zap.String("service", "movie")),
	}
}

func (s *movieService) ListMovies(ctx context.Context, query *request.MovieListQuery) ([]response.MovieResponse, error) {
	if err := validate(query); err != nil {
		return nil, err
	}

	movies, err := s.movieRepo.FindAll(ctx, entity.MovieFilter{
		Showing:  query.Showing,
		Genre:    query.Genre,
		Language: query.Language,
		Search:   query.Search,
	})
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	out := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		out = append(out, response.MovieToResponse(m))
	}
	return out, nil
}

func (s *movieService) GetMovie(ctx context.Context, idOrSlug string) (*response.MovieResponse, error) {
	var (
		movie *entity.Movie
		err   error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		movie, err = s.movieRepo.FindByID(ctx, id)
	} else {
		movie, err = s.movieRepo.FindBySlug(ctx, idOrSlug)
	}
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("Movie not found")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) CreateMovie(ctx context.Context, req *request.CreateMovieRequest) (*response.MovieResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}

	releaseDate, err := time.Parse(dateLayout, req.ReleaseDate)
	if err != nil {
		return nil, apperror.ValidationField("release_date", "Must match the format 2006-01-02")
	}

	now := time.Now()
	movie := &entity.Movie{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		TitleKG:     req.TitleKG,
		TitleRU:     req.TitleRU,
		SynopsisKG:  req.SynopsisKG,
		SynopsisRU:  req.SynopsisRU,
		Trailer:     req.Trailer,
		Genre:       entity.Genre(req.Genre),
		Language:    entity.MovieLanguage(req.Language),
		Duration:    req.Duration,
		Poster:      req.Poster,
		ReleaseDate: releaseDate,
		IsShowing:   true,
	}
	if req.IsShowing != nil {
		movie.IsShowing = *req.IsShowing
	}

	movie.Slug, err = s.uniqueSlug(ctx, movie)
	if err != nil {
		return nil, err
	}

	if err := s.movieRepo.Create(ctx, movie); err != nil {
		return nil, writeErr(err, "Movie")
	}

	s.log.Info("Movie created", zap.String("movie_id", movie.ID.String()), zap.String("slug", movie.Slug))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) UpdateMovie(ctx context.Context, id string, req *request.UpdateMovieRequest) (*response.MovieResponse, error) {
	movieID, err := parseID(id, "Movie")
	if err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := s.movieRepo.FindByID(ctx, movieID)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, apperror.NotFound("Movie not found")
	}

	titleChanged := req.TitleRU != nil && *req.TitleRU != movie.TitleRU

	if req.TitleKG != nil {
		movie.TitleKG = *req.TitleKG
	}
	if req.TitleRU != nil {
		movie.TitleRU = *req.TitleRU
	}
	if req.SynopsisKG != nil {
		movie.SynopsisKG = *req.SynopsisKG
	}
	if req.SynopsisRU != nil {
		movie.SynopsisRU = *req.SynopsisRU
	}
	if req.Trailer != nil {
		movie.Trailer = req.Trailer
		if *req.Trailer == "" {
			movie.Trailer = nil
		}
	}
	if req.Genre != nil {
		movie.Genre = entity.Genre(*req.Genre)
	}
	if req.Language != nil {
		movie.Language = entity.MovieLanguage(*req.Language)
	}
	if req.Duration != nil {
		movie.Duration = *req.Duration
	}
	if req.Poster != nil {
		movie.Poster = *req.Poster
	}
	if req.ReleaseDate != nil {
		releaseDate, err := time.Parse(dateLayout, *req.ReleaseDate)
		if err != nil {
			return nil, apperror.ValidationField("release_date", "Must match the format 2006-01-02")
		}
		movie.ReleaseDate = releaseDate
	}
	if req.IsShowing != nil {
		movie.IsShowing = *req.IsShowing
	}

	if titleChanged {
		movie.Slug, err = s.uniqueSlug(ctx, movie)
		if err != nil {
			return nil, err
		}
	}

	movie.UpdatedAt = time.Now()
	if err := s.movieRepo.Update(ctx, movie); err != nil {
		return nil, writeErr(err, "Movie")
	}

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieService) DeleteMovie(ctx context.Context, id string) error {
	movieID, err := parseID(id, "Movie")
	if err != nil {
		return err
	}

	if err := s.movieRepo.Delete(ctx, movieID); err != nil {
		return writeErr(err, "Movie")
	}

	s.log.Info("Movie deleted", zap.String("movie_id", id))
	return nil
}

// uniqueSlug slugifies the Russian title and appends -2, -3, ... until the slug is free.
func (s *movieService) uniqueSlug(ctx context.Context, movie *entity.Movie) (string, error) {
	base := slug.Make(movie.TitleRU)
	if base == "" {
		base = slug.Make(movie.TitleKG)
	}
	if base == "" {
		base = "movie"
	}

	candidate := base
	for i := 2; ; i++ {
		exists, err := s.movieRepo.SlugExists(ctx, candidate, movie.ID)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
