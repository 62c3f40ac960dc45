package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"univer-cinema/internal/data/entity"
	"univer-cinema/internal/data/repository"
	"univer-cinema/pkg/events"
	"univer-cinema/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// memStore is an in-memory stand-in for the Postgres repositories.
type memStore struct {
	mu   sync.Mutex
	txMu sync.Mutex
	now  func() time.Time

	users       map[uuid.UUID]entity.User
	sessions    map[uuid.UUID]entity.Session
	resets      map[uuid.UUID]entity.PasswordReset
	movies      map[uuid.UUID]entity.Movie
	halls       map[uuid.UUID]entity.Hall
	showtimes   map[uuid.UUID]entity.Showtime
	snacks      map[uuid.UUID]entity.Snack
	bookings    map[uuid.UUID]entity.Booking
	snackOrders []entity.SnackOrder
	news        map[uuid.UUID]entity.News
	gallery     map[uuid.UUID]entity.Gallery
}

func newMemStore() *memStore {
	return &memStore{
		now:       func() time.Time { return testNow },
		users:     map[uuid.UUID]entity.User{},
		sessions:  map[uuid.UUID]entity.Session{},
		resets:    map[uuid.UUID]entity.PasswordReset{},
		movies:    map[uuid.UUID]entity.Movie{},
		halls:     map[uuid.UUID]entity.Hall{},
		showtimes: map[uuid.UUID]entity.Showtime{},
		snacks:    map[uuid.UUID]entity.Snack{},
		bookings:  map[uuid.UUID]entity.Booking{},
		news:      map[uuid.UUID]entity.News{},
		gallery:   map[uuid.UUID]entity.Gallery{},
	}
}

func (m *memStore) repository() *repository.Repository {
	repo := &repository.Repository{
		User:          memUsers{m},
		Session:       memSessions{m},
		PasswordReset: memResets{m},
		Movie:         memMovies{m},
		Hall:          memHalls{m},
		Showtime:      memShowtimes{m},
		Snack:         memSnacks{m},
		Booking:       memBookings{m},
		SnackOrder:    memSnackOrders{m},
		News:          memNews{m},
		Gallery:       memGallery{m},
	}
	repo.Tx = memTx{store: m, repo: repo}
	return repo
}

// memTx serializes transactions, which is what the row locks give us in Postgres.
type memTx struct {
	store *memStore
	repo  *repository.Repository
}

func (t memTx) WithinTx(ctx context.Context, fn func(tx *repository.Repository) error) error {
	t.store.txMu.Lock()
	defer t.store.txMu.Unlock()
	return fn(t.repo)
}

// ==================== SEED HELPERS ====================

func (m *memStore) addMovie(title string, duration int) entity.Movie {
	m.mu.Lock()
	defer m.mu.Unlock()
	movie := entity.Movie{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Slug:         strings.ToLower(strings.ReplaceAll(title, " ", "-")),
		TitleKG:      title,
		TitleRU:      title,
		Genre:        entity.GenreDrama,
		Language:     entity.MovieLanguageRU,
		Duration:     duration,
		IsShowing:    true,
	}
	m.movies[movie.ID] = movie
	return movie
}

func (m *memStore) addHall(name, layout string, capacity int) entity.Hall {
	m.mu.Lock()
	defer m.mu.Unlock()
	hall := entity.Hall{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Name:         name,
		Capacity:     capacity,
		Layout:       []byte(layout),
	}
	m.halls[hall.ID] = hall
	return hall
}

func (m *memStore) addShowtime(movie entity.Movie, hall entity.Hall, at time.Time, price string) entity.Showtime {
	m.mu.Lock()
	defer m.mu.Unlock()
	st := entity.Showtime{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		MovieID:      movie.ID,
		HallID:       hall.ID,
		Datetime:     at,
		Language:     entity.ShowtimeLanguageRU,
		Price:        decimal.RequireFromString(price),
	}
	m.showtimes[st.ID] = st
	return st
}

func (m *memStore) addSnack(name, price string, available bool) entity.Snack {
	m.mu.Lock()
	defer m.mu.Unlock()
	snack := entity.Snack{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		NameKG:       name,
		NameRU:       name,
		Price:        decimal.RequireFromString(price),
		Available:    available,
	}
	m.snacks[snack.ID] = snack
	return snack
}

func (m *memStore) addUser(username, email, password string, role entity.UserRole) entity.User {
	hash, err := utils.HashPassword(password)
	if err != nil {
		panic(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	user := entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	m.users[user.ID] = user
	return user
}

func (m *memStore) addBooking(st entity.Showtime, status entity.BookingStatus, seats ...string) entity.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{ID: uuid.New(), CreatedAt: testNow, UpdatedAt: testNow},
		UserID:       uuid.New(),
		ShowtimeID:   st.ID,
		Seats:        seats,
		TicketTotal:  st.Price.Mul(decimal.NewFromInt(int64(len(seats)))),
		Status:       status,
	}
	b.GrandTotal = b.TicketTotal
	m.bookings[b.ID] = b
	return b
}

func (m *memStore) bookingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.bookings)
}

// ==================== USERS ====================

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Username, user.Username) || strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if u, ok := r.m.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, u := range r.m.users {
		if strings.EqualFold(u.Username, username) {
			return &u, nil
		}
	}
	return nil, nil
}

func (r memUsers) Update(_ context.Context, user *entity.User) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.users[user.ID] = *user
	return nil
}

func (r memUsers) UpdatePassword(_ context.Context, id uuid.UUID, hash string) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	u, ok := r.m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.PasswordHash = hash
	r.m.users[id] = u
	return nil
}

// ==================== SESSIONS ====================

type memSessions struct{ m *memStore }

func (r memSessions) Create(_ context.Context, s *entity.Session) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.sessions[s.Token] = *s
	return nil
}

func (r memSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.SessionUser, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[token]
	if !ok || s.RevokedAt != nil || !r.m.now().Before(s.ExpiresAt) {
		return nil, nil
	}
	u := r.m.users[s.UserID]
	return &entity.SessionUser{Session: s, Role: u.Role, IsActive: u.IsActive}, nil
}

func (r memSessions) Revoke(_ context.Context, token uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.sessions[token]
	if !ok {
		return repository.ErrNotFound
	}
	now := r.m.now()
	s.RevokedAt = &now
	r.m.sessions[token] = s
	return nil
}

func (r memSessions) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	now := r.m.now()
	for token, s := range r.m.sessions {
		if s.UserID == userID && s.RevokedAt == nil {
			s.RevokedAt = &now
			r.m.sessions[token] = s
		}
	}
	return nil
}

func (r memSessions) CleanExpiredSessions(_ context.Context) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	cutoff := r.m.now().Add(-StaleRetention)
	for token, s := range r.m.sessions {
		if s.ExpiresAt.Before(cutoff) {
			delete(r.m.sessions, token)
			n++
		}
	}
	return n, nil
}

// ==================== PASSWORD RESETS ====================

type memResets struct{ m *memStore }

func (r memResets) Create(_ context.Context, reset *entity.PasswordReset) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.resets[reset.ID] = *reset
	return nil
}

func (r memResets) FindByToken(_ context.Context, token string) (*entity.PasswordReset, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, p := range r.m.resets {
		if p.Token == token {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memResets) MarkUsed(_ context.Context, id uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	p, ok := r.m.resets[id]
	if !ok || !p.IsValid(r.m.now()) {
		return false, nil
	}
	p.Used = true
	r.m.resets[id] = p
	return true, nil
}

func (r memResets) DeleteExpiredBefore(_ context.Context, before time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for id, p := range r.m.resets {
		if p.ExpiresAt.Before(before) {
			delete(r.m.resets, id)
			n++
		}
	}
	return n, nil
}

// ==================== MOVIES ====================

type memMovies struct{ m *memStore }

func (r memMovies) Create(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, existing := range r.m.movies {
		if existing.Slug == movie.Slug {
			return repository.ErrDuplicate
		}
	}
	r.m.movies[movie.ID] = *movie
	return nil
}

func (r memMovies) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if movie, ok := r.m.movies[id]; ok {
		return &movie, nil
	}
	return nil, nil
}

func (r memMovies) FindBySlug(_ context.Context, slug string) (*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, movie := range r.m.movies {
		if movie.Slug == slug {
			return &movie, nil
		}
	}
	return nil, nil
}

func (r memMovies) FindAll(_ context.Context, f entity.MovieFilter) ([]*entity.Movie, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Movie
	search := strings.ToLower(f.Search)
	for _, movie := range r.m.movies {
		movie := movie
		if f.Showing && !movie.IsShowing {
			continue
		}
		if f.Genre != "" && string(movie.Genre) != f.Genre {
			continue
		}
		if f.Language != "" && string(movie.Language) != f.Language {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(movie.TitleKG), search) &&
			!strings.Contains(strings.ToLower(movie.TitleRU), search) {
			continue
		}
		out = append(out, &movie)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TitleRU < out[j].TitleRU })
	return out, nil
}

func (r memMovies) SlugExists(_ context.Context, slug string, exclude uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, movie := range r.m.movies {
		if movie.Slug == slug && id != exclude {
			return true, nil
		}
	}
	return false, nil
}

func (r memMovies) Update(_ context.Context, movie *entity.Movie) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.movies[movie.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.movies[movie.ID] = *movie
	return nil
}

func (r memMovies) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.movies[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.movies, id)
	return nil
}

// ==================== HALLS ====================

type memHalls struct{ m *memStore }

func (r memHalls) Create(_ context.Context, hall *entity.Hall) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.halls[hall.ID] = *hall
	return nil
}

func (r memHalls) FindByID(_ context.Context, id uuid.UUID) (*entity.Hall, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if hall, ok := r.m.halls[id]; ok {
		return &hall, nil
	}
	return nil, nil
}

func (r memHalls) LockByID(ctx context.Context, id uuid.UUID) (*entity.Hall, error) {
	return r.FindByID(ctx, id)
}

func (r memHalls) FindAll(_ context.Context) ([]*entity.Hall, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Hall
	for _, hall := range r.m.halls {
		hall := hall
		out = append(out, &hall)
	}
	return out, nil
}

func (r memHalls) Update(_ context.Context, hall *entity.Hall) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.halls[hall.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.halls[hall.ID] = *hall
	return nil
}

func (r memHalls) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.halls[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.halls, id)
	return nil
}

// ==================== SHOWTIMES ====================

type memShowtimes struct{ m *memStore }

// detail must be called with mu held.
func (r memShowtimes) detail(st entity.Showtime) *entity.ShowtimeDetail {
	movie := r.m.movies[st.MovieID]
	return &entity.ShowtimeDetail{
		Showtime:      st,
		MovieTitleKG:  movie.TitleKG,
		MovieTitleRU:  movie.TitleRU,
		MovieDuration: movie.Duration,
		HallName:      r.m.halls[st.HallID].Name,
	}
}

func (r memShowtimes) Create(_ context.Context, st *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.showtimes[st.ID] = *st
	return nil
}

func (r memShowtimes) FindByID(_ context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	st, ok := r.m.showtimes[id]
	if !ok {
		return nil, nil
	}
	return r.detail(st), nil
}

func (r memShowtimes) LockByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if st, ok := r.m.showtimes[id]; ok {
		return &st, nil
	}
	return nil, nil
}

func (r memShowtimes) FindAll(_ context.Context, f entity.ShowtimeFilter) ([]*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.ShowtimeDetail
	for _, st := range r.m.showtimes {
		if f.MovieID != nil && st.MovieID != *f.MovieID {
			continue
		}
		if f.HallID != nil && st.HallID != *f.HallID {
			continue
		}
		if f.Date != nil {
			start := *f.Date
			if st.Datetime.Before(start) || !st.Datetime.Before(start.AddDate(0, 0, 1)) {
				continue
			}
		} else if st.Datetime.Before(f.From) {
			continue
		}
		if f.Language != "" && string(st.Language) != f.Language {
			continue
		}
		out = append(out, r.detail(st))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Datetime.Before(out[j].Datetime) })
	return out, nil
}

func (r memShowtimes) HasOverlap(_ context.Context, hallID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for id, st := range r.m.showtimes {
		if st.HallID != hallID || (exclude != nil && id == *exclude) {
			continue
		}
		stEnd := st.Datetime.Add(time.Duration(r.m.movies[st.MovieID].Duration) * time.Minute)
		if st.Datetime.Before(end) && start.Before(stEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (r memShowtimes) Update(_ context.Context, st *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.showtimes[st.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.showtimes[st.ID] = *st
	return nil
}

func (r memShowtimes) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.showtimes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.showtimes, id)
	return nil
}

// ==================== SNACKS ====================

type memSnacks struct{ m *memStore }

func (r memSnacks) Create(_ context.Context, snack *entity.Snack) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.snacks[snack.ID] = *snack
	return nil
}

func (r memSnacks) FindByID(_ context.Context, id uuid.UUID) (*entity.Snack, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if snack, ok := r.m.snacks[id]; ok {
		return &snack, nil
	}
	return nil, nil
}

func (r memSnacks) FindAll(_ context.Context, availableOnly bool) ([]*entity.Snack, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Snack
	for _, snack := range r.m.snacks {
		snack := snack
		if availableOnly && !snack.Available {
			continue
		}
		out = append(out, &snack)
	}
	return out, nil
}

func (r memSnacks) Update(_ context.Context, snack *entity.Snack) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.snacks[snack.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.snacks[snack.ID] = *snack
	return nil
}

func (r memSnacks) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.snacks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.snacks, id)
	return nil
}

// ==================== BOOKINGS ====================

type memBookings struct{ m *memStore }

func (r memBookings) detail(b entity.Booking) *entity.BookingDetail {
	st := r.m.showtimes[b.ShowtimeID]
	movie := r.m.movies[st.MovieID]
	seats := append([]string(nil), b.Seats...)
	b.Seats = seats
	return &entity.BookingDetail{
		Booking:          b,
		MovieTitleKG:     movie.TitleKG,
		MovieTitleRU:     movie.TitleRU,
		HallName:         r.m.halls[st.HallID].Name,
		ShowtimeDatetime: st.Datetime,
	}
}

func (r memBookings) Create(_ context.Context, b *entity.Booking) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.bookings[b.ID] = *b
	return nil
}

func (r memBookings) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok {
		return nil, nil
	}
	return r.detail(b), nil
}

func (r memBookings) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var all []*entity.BookingDetail
	for _, b := range r.m.bookings {
		if b.UserID == userID {
			all = append(all, r.detail(b))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r memBookings) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for _, b := range r.m.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (r memBookings) ClaimedSeats(_ context.Context, showtimeID uuid.UUID) ([]string, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, b := range r.m.bookings {
		if b.ShowtimeID != showtimeID || !b.ClaimsSeats() {
			continue
		}
		for _, seat := range b.Seats {
			if !seen[seat] {
				seen[seat] = true
				out = append(out, seat)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r memBookings) UpdateStatus(_ context.Context, id uuid.UUID, status entity.BookingStatus, from ...entity.BookingStatus) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	b, ok := r.m.bookings[id]
	if !ok {
		return false, nil
	}
	allowed := len(from) == 0
	for _, f := range from {
		if b.Status == f {
			allowed = true
		}
	}
	if !allowed {
		return false, nil
	}
	b.Status = status
	r.m.bookings[id] = b
	return true, nil
}

func (r memBookings) CompleteFinished(_ context.Context, now time.Time) (int64, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var n int64
	for id, b := range r.m.bookings {
		if !b.ClaimsSeats() {
			continue
		}
		st := r.m.showtimes[b.ShowtimeID]
		end := st.Datetime.Add(time.Duration(r.m.movies[st.MovieID].Duration) * time.Minute)
		if end.Before(now) {
			b.Status = entity.BookingStatusCompleted
			r.m.bookings[id] = b
			n++
		}
	}
	return n, nil
}

// ==================== SNACK ORDERS ====================

type memSnackOrders struct{ m *memStore }

func (r memSnackOrders) CreateBatch(_ context.Context, orders []*entity.SnackOrder) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, o := range orders {
		r.m.snackOrders = append(r.m.snackOrders, *o)
	}
	return nil
}

func (r memSnackOrders) FindByBookingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]*entity.SnackOrderDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wanted := map[uuid.UUID]bool{}
	for _, id := range ids {
		wanted[id] = true
	}
	out := map[uuid.UUID][]*entity.SnackOrderDetail{}
	for _, o := range r.m.snackOrders {
		if !wanted[o.BookingID] {
			continue
		}
		snack := r.m.snacks[o.SnackID]
		out[o.BookingID] = append(out[o.BookingID], &entity.SnackOrderDetail{
			SnackOrder: o,
			NameKG:     snack.NameKG,
			NameRU:     snack.NameRU,
		})
	}
	return out, nil
}

// ==================== CONTENT ====================

type memNews struct{ m *memStore }

func (r memNews) Create(_ context.Context, n *entity.News) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.news[n.ID] = *n
	return nil
}

func (r memNews) FindByID(_ context.Context, id uuid.UUID) (*entity.News, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if n, ok := r.m.news[id]; ok {
		return &n, nil
	}
	return nil, nil
}

func (r memNews) FindAll(_ context.Context, publishedOnly bool) ([]*entity.News, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.News
	for _, n := range r.m.news {
		n := n
		if publishedOnly && !n.Published {
			continue
		}
		out = append(out, &n)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memNews) Update(_ context.Context, n *entity.News) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.news[n.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.news[n.ID] = *n
	return nil
}

func (r memNews) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.news[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.news, id)
	return nil
}

type memGallery struct{ m *memStore }

func (r memGallery) Create(_ context.Context, g *entity.Gallery) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.gallery[g.ID] = *g
	return nil
}

func (r memGallery) FindByID(_ context.Context, id uuid.UUID) (*entity.Gallery, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if g, ok := r.m.gallery[id]; ok {
		return &g, nil
	}
	return nil, nil
}

func (r memGallery) FindAll(_ context.Context) ([]*entity.Gallery, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var out []*entity.Gallery
	for _, g := range r.m.gallery {
		g := g
		out = append(out, &g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r memGallery) Update(_ context.Context, g *entity.Gallery) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.gallery[g.ID]; !ok {
		return repository.ErrNotFound
	}
	r.m.gallery[g.ID] = *g
	return nil
}

func (r memGallery) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.gallery[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.m.gallery, id)
	return nil
}

// ==================== OUTBOUND ====================

type sentMail struct {
	to, username, link string
}

type fakeMailer struct {
	sent chan sentMail
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan sentMail, 8)}
}

func (f *fakeMailer) SendPasswordReset(_ context.Context, to, username, link string) error {
	f.sent <- sentMail{to: to, username: username, link: link}
	return nil
}

type fakePublisher struct {
	published chan events.BookingCreated
}

func newFakePublisher() *fakePublisher {
	return &fakePublisher{published: make(chan events.BookingCreated, 64)}
}

func (f *fakePublisher) PublishBookingCreated(_ context.Context, e events.BookingCreated) error {
	f.published <- e
	return nil
}

func (f *fakePublisher) Close() error { return nil }

// ==================== FIXTURE ====================

type fixture struct {
	store     *memStore
	service   *Service
	mailer    *fakeMailer
	publisher *fakePublisher
}

func newFixture() *fixture {
	store := newMemStore()
	mail := newFakeMailer()
	pub := newFakePublisher()

	config := &utils.Config{
		App:     utils.AppConfig{Timezone: "UTC"},
		Session: utils.SessionConfig{ExpiryHours: 24},
		Reset:   utils.ResetConfig{ExpiryHours: 24, FrontendURL: "https://cinema.example/reset"},
	}

	service := NewService(store.repository(), config, Deps{
		Mailer:    mail,
		Publisher: pub,
		Now:       store.now,
	}, zap.NewNop())

	return &fixture{store: store, service: service, mailer: mail, publisher: pub}
}
