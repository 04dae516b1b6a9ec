package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/internal/events"

	"github.com/google/uuid"
)

// memoryStore backs the in-memory repositories used by the service tests.
// The ledger applies the same rule as reservation_seats_active_uq: at most
// one active link per (showtime, seat).
type memoryStore struct {
	mu           sync.Mutex
	movies       map[uuid.UUID]*entity.Movie
	auditoriums  map[uuid.UUID]*entity.Auditorium
	showtimes    map[uuid.UUID]*entity.Showtime
	seats        map[uuid.UUID]*entity.Seat
	reservations map[uuid.UUID]*entity.Reservation
	links        []*entity.ReservationSeat
	createCalls  int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		movies:       map[uuid.UUID]*entity.Movie{},
		auditoriums:  map[uuid.UUID]*entity.Auditorium{},
		showtimes:    map[uuid.UUID]*entity.Showtime{},
		seats:        map[uuid.UUID]*entity.Seat{},
		reservations: map[uuid.UUID]*entity.Reservation{},
	}
}

func (m *memoryStore) repository() *repository.Repository {
	return &repository.Repository{
		Showtime:    &memoryShowtimes{m},
		Seat:        &memorySeats{m},
		Reservation: &memoryLedger{m},
	}
}

func (m *memoryStore) addAuditorium(name string, rows []string, perRow int) (*entity.Auditorium, []*entity.Seat) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a := &entity.Auditorium{ID: uuid.New(), Name: name}
	m.auditoriums[a.ID] = a

	var seats []*entity.Seat
	for _, row := range rows {
		for n := 1; n <= perRow; n++ {
			seat := &entity.Seat{ID: uuid.New(), AuditoriumID: a.ID, RowLabel: row, SeatNumber: n}
			m.seats[seat.ID] = seat
			seats = append(seats, seat)
		}
	}
	return a, seats
}

func (m *memoryStore) addMovie(title string) *entity.Movie {
	m.mu.Lock()
	defer m.mu.Unlock()

	movie := &entity.Movie{Title: title, DurationMinutes: 120}
	movie.ID = uuid.New()
	m.movies[movie.ID] = movie
	return movie
}

func (m *memoryStore) addShowtime(movie *entity.Movie, auditorium *entity.Auditorium, start time.Time, priceCents int) *entity.Showtime {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := &entity.Showtime{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		MovieID:      movie.ID,
		AuditoriumID: auditorium.ID,
		StartTime:    start,
		EndTime:      start.Add(time.Duration(movie.DurationMinutes) * time.Minute),
		PriceCents:   priceCents,
	}
	m.showtimes[s.ID] = s
	return s
}

func (m *memoryStore) setPrice(showtimeID uuid.UUID, priceCents int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showtimes[showtimeID].PriceCents = priceCents
}

func (m *memoryStore) reservationCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.reservations)
}

// detail must be called with mu held
func (m *memoryStore) detail(s *entity.Showtime) *entity.ShowtimeDetail {
	d := &entity.ShowtimeDetail{Showtime: *s}
	if movie, ok := m.movies[s.MovieID]; ok {
		d.MovieTitle = movie.Title
	}
	if a, ok := m.auditoriums[s.AuditoriumID]; ok {
		d.AuditoriumName = a.Name
	}
	return d
}

func sortedDetails(details []*entity.ShowtimeDetail) []*entity.ShowtimeDetail {
	sort.Slice(details, func(i, j int) bool {
		if details[i].StartTime.Equal(details[j].StartTime) {
			return details[i].ID.String() < details[j].ID.String()
		}
		return details[i].StartTime.Before(details[j].StartTime)
	})
	return details
}

type memoryShowtimes struct{ m *memoryStore }

func (r *memoryShowtimes) Create(_ context.Context, s *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	cp := *s
	r.m.showtimes[s.ID] = &cp
	return nil
}

func (r *memoryShowtimes) Update(_ context.Context, s *entity.Showtime) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.showtimes[s.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *s
	r.m.showtimes[s.ID] = &cp
	return nil
}

func (r *memoryShowtimes) Delete(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if _, ok := r.m.showtimes[id]; !ok {
		return repository.ErrNotFound
	}
	for _, res := range r.m.reservations {
		if res.ShowtimeID == id {
			return repository.ErrInUse
		}
	}
	delete(r.m.showtimes, id)
	return nil
}

func (r *memoryShowtimes) FindByID(_ context.Context, id uuid.UUID) (*entity.Showtime, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.showtimes[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memoryShowtimes) FindDetailByID(_ context.Context, id uuid.UUID) (*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	s, ok := r.m.showtimes[id]
	if !ok {
		return nil, nil
	}
	return r.m.detail(s), nil
}

func (r *memoryShowtimes) FindDetails(_ context.Context) ([]*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	details := []*entity.ShowtimeDetail{}
	for _, s := range r.m.showtimes {
		details = append(details, r.m.detail(s))
	}
	return sortedDetails(details), nil
}

func (r *memoryShowtimes) FindDetailsByMovieBetween(_ context.Context, movieID uuid.UUID, from, to time.Time) ([]*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	details := []*entity.ShowtimeDetail{}
	for _, s := range r.m.showtimes {
		if s.MovieID == movieID && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			details = append(details, r.m.detail(s))
		}
	}
	return sortedDetails(details), nil
}

func (r *memoryShowtimes) FindDetailsByStartBetween(_ context.Context, from, to time.Time) ([]*entity.ShowtimeDetail, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	details := []*entity.ShowtimeDetail{}
	for _, s := range r.m.showtimes {
		if !s.StartTime.Before(from) && s.StartTime.Before(to) {
			details = append(details, r.m.detail(s))
		}
	}
	return sortedDetails(details), nil
}

func (r *memoryShowtimes) ExistsAuditoriumConflict(_ context.Context, auditoriumID, excludeID uuid.UUID, windowStart, windowEnd time.Time) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, s := range r.m.showtimes {
		if s.AuditoriumID == auditoriumID && s.ID != excludeID &&
			s.StartTime.Before(windowEnd) && s.EndTime.After(windowStart) {
			return true, nil
		}
	}
	return false, nil
}

type memorySeats struct{ m *memoryStore }

func sortedSeats(seats []*entity.Seat) []*entity.Seat {
	sort.Slice(seats, func(i, j int) bool {
		if seats[i].RowLabel == seats[j].RowLabel {
			return seats[i].SeatNumber < seats[j].SeatNumber
		}
		return seats[i].RowLabel < seats[j].RowLabel
	})
	return seats
}

func (r *memorySeats) FindByID(_ context.Context, id uuid.UUID) (*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seat, ok := r.m.seats[id]
	if !ok {
		return nil, nil
	}
	cp := *seat
	return &cp, nil
}

func (r *memorySeats) FindByIDs(_ context.Context, ids []uuid.UUID) ([]*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seats := []*entity.Seat{}
	for _, id := range ids {
		if seat, ok := r.m.seats[id]; ok {
			cp := *seat
			seats = append(seats, &cp)
		}
	}
	return sortedSeats(seats), nil
}

func (r *memorySeats) FindByAuditoriumID(_ context.Context, auditoriumID uuid.UUID) ([]*entity.Seat, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	seats := []*entity.Seat{}
	for _, seat := range r.m.seats {
		if seat.AuditoriumID == auditoriumID {
			cp := *seat
			seats = append(seats, &cp)
		}
	}
	return sortedSeats(seats), nil
}

func (r *memorySeats) CountByAuditoriumID(_ context.Context, auditoriumID uuid.UUID) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	count := 0
	for _, seat := range r.m.seats {
		if seat.AuditoriumID == auditoriumID {
			count++
		}
	}
	return count, nil
}

type memoryLedger struct{ m *memoryStore }

func (r *memoryLedger) CreateWithSeats(_ context.Context, res *entity.Reservation, seats []entity.ReservationSeat) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	r.m.createCalls++

	for _, want := range seats {
		for _, link := range r.m.links {
			if link.Active && link.ShowtimeID == want.ShowtimeID && link.ID.SeatID == want.ID.SeatID {
				return repository.ErrSeatTaken
			}
		}
	}

	cp := *res
	r.m.reservations[res.ID] = &cp
	for _, link := range seats {
		l := link
		r.m.links = append(r.m.links, &l)
	}
	return nil
}

func (r *memoryLedger) Cancel(_ context.Context, id uuid.UUID) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()

	res, ok := r.m.reservations[id]
	if !ok || res.Status != entity.ReservationStatusConfirmed {
		return repository.ErrAlreadyCancelled
	}
	res.Status = entity.ReservationStatusCancelled
	for _, link := range r.m.links {
		if link.ID.ReservationID == id {
			link.Active = false
		}
	}
	return nil
}

func (r *memoryLedger) FindByID(_ context.Context, id uuid.UUID) (*entity.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	res, ok := r.m.reservations[id]
	if !ok {
		return nil, nil
	}
	cp := *res
	return &cp, nil
}

func (r *memoryLedger) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	result := []*entity.Reservation{}
	for _, res := range r.m.reservations {
		if res.UserID == userID {
			cp := *res
			result = append(result, &cp)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID.String() > result[j].ID.String()
		}
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *memoryLedger) FindByShowtimeStartBetween(_ context.Context, from, to time.Time) ([]*entity.Reservation, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	result := []*entity.Reservation{}
	for _, res := range r.m.reservations {
		s, ok := r.m.showtimes[res.ShowtimeID]
		if ok && !s.StartTime.Before(from) && s.StartTime.Before(to) {
			cp := *res
			result = append(result, &cp)
		}
	}
	return result, nil
}

// sortSeatIDs orders ids by row label then seat number, like the SQL join
func (m *memoryStore) sortSeatIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := m.seats[ids[i]], m.seats[ids[j]]
		if a.RowLabel != b.RowLabel {
			return a.RowLabel < b.RowLabel
		}
		return a.SeatNumber < b.SeatNumber
	})
}

func (r *memoryLedger) FindSeatIDs(_ context.Context, reservationID uuid.UUID) ([]uuid.UUID, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ids := []uuid.UUID{}
	for _, link := range r.m.links {
		if link.ID.ReservationID == reservationID {
			ids = append(ids, link.ID.SeatID)
		}
	}
	r.m.sortSeatIDs(ids)
	return ids, nil
}

func (r *memoryLedger) FindSeatIDsByReservationIDs(_ context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID][]uuid.UUID, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	wanted := make(map[uuid.UUID]bool, len(reservationIDs))
	for _, id := range reservationIDs {
		wanted[id] = true
	}
	result := map[uuid.UUID][]uuid.UUID{}
	for _, link := range r.m.links {
		if wanted[link.ID.ReservationID] {
			result[link.ID.ReservationID] = append(result[link.ID.ReservationID], link.ID.SeatID)
		}
	}
	for _, ids := range result {
		r.m.sortSeatIDs(ids)
	}
	return result, nil
}

func (r *memoryLedger) FindBookedSeatIDs(_ context.Context, showtimeID uuid.UUID) ([]uuid.UUID, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	ids := []uuid.UUID{}
	for _, link := range r.m.links {
		if link.Active && link.ShowtimeID == showtimeID {
			ids = append(ids, link.ID.SeatID)
		}
	}
	return ids, nil
}

func (r *memoryLedger) CountSeatsByStatus(_ context.Context, showtimeID uuid.UUID, status entity.ReservationStatus) (int, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	count := 0
	for _, link := range r.m.links {
		if link.ShowtimeID != showtimeID {
			continue
		}
		if res, ok := r.m.reservations[link.ID.ReservationID]; ok && res.Status == status {
			count++
		}
	}
	return count, nil
}

// recordingPublisher keeps every event it is given
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.ReservationEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, event events.ReservationEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, len(p.events))
	for i, e := range p.events {
		types[i] = e.Type
	}
	return types
}

var errBrokerDown = errors.New("broker down")
