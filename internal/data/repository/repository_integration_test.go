package repository_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/internal/data/repository"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
)

var seededAuditoriumID = uuid.MustParse("b7e2d9a4-5c3f-4e11-8d20-000000000001")

var (
	postgresOnce      sync.Once
	postgresContainer testcontainers.Container
	postgresURL       string
	postgresErr       error
)

func TestMain(m *testing.M) {
	code := m.Run()
	if postgresContainer != nil {
		_ = postgresContainer.Terminate(context.Background())
	}
	os.Exit(code)
}

// databaseURL returns POSTGRES_URL when set. Otherwise it starts one
// postgres container shared by every test in the package, skipping when no
// container runtime is reachable.
func databaseURL(t *testing.T) string {
	t.Helper()

	if dbURL := os.Getenv("POSTGRES_URL"); dbURL != "" {
		return dbURL
	}
	if testing.Short() {
		t.Skip("Skipping Postgres integration test in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)

	postgresOnce.Do(func() {
		postgresContainer, postgresURL, postgresErr = startPostgresContainer(context.Background())
	})
	require.NoError(t, postgresErr)
	return postgresURL
}

func startPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "cinema",
				"POSTGRES_PASSWORD": "cinema",
				"POSTGRES_DB":       "cinema_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, "", fmt.Errorf("start postgres container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return container, "", fmt.Errorf("postgres container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return container, "", fmt.Errorf("postgres container port: %w", err)
	}

	dbURL := fmt.Sprintf("postgres://cinema:cinema@%s:%s/cinema_test?sslmode=disable", host, port.Port())
	return container, dbURL, nil
}

type fixture struct {
	repo     *repository.Repository
	user     *entity.User
	showtime *entity.Showtime
	seats    []*entity.Seat
}

// setup connects to the test database, migrates and inserts a user, a movie and a
// future showtime in the seeded auditorium.
func setup(t *testing.T) *fixture {
	t.Helper()

	dbURL := databaseURL(t)

	log := zap.NewNop()
	require.NoError(t, database.Migrate(dbURL, log))

	ctx := context.Background()
	db, err := database.Connect(ctx, dbURL, 20)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	repo := repository.NewRepository(db, log)

	now := time.Now().UTC().Truncate(time.Microsecond)
	user := &entity.User{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now},
		Name:         "Integration",
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "x",
		Role:         entity.RoleUser,
	}
	require.NoError(t, repo.User.Create(ctx, user))

	movie := &entity.Movie{
		BaseWithUpdate:  entity.BaseWithUpdate{Base: entity.Base{ID: uuid.New(), CreatedAt: now}, UpdatedAt: now},
		Title:           "Integration " + uuid.NewString()[:8],
		DurationMinutes: 100,
	}
	require.NoError(t, repo.Movie.Create(ctx, movie, nil))

	// far future slot unique per run so auditorium conflicts are irrelevant here
	start := now.Add(time.Duration(24*365+int(uuid.New().ID()%10000)) * time.Hour)
	showtime := &entity.Showtime{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now},
		MovieID:      movie.ID,
		AuditoriumID: seededAuditoriumID,
		StartTime:    start,
		EndTime:      start.Add(100 * time.Minute),
		PriceCents:   1500,
	}
	require.NoError(t, repo.Showtime.Create(ctx, showtime))

	seats, err := repo.Seat.FindByAuditoriumID(ctx, seededAuditoriumID)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(seats), 3)

	return &fixture{repo: repo, user: user, showtime: showtime, seats: seats}
}

func (f *fixture) newReservation(seats ...*entity.Seat) (*entity.Reservation, []entity.ReservationSeat) {
	total, _ := entity.TotalAmount(f.showtime.PriceCents, len(seats))
	res := &entity.Reservation{
		Base:             entity.Base{ID: uuid.New(), CreatedAt: time.Now().UTC()},
		UserID:           f.user.ID,
		ShowtimeID:       f.showtime.ID,
		Status:           entity.ReservationStatusConfirmed,
		TotalAmountCents: total,
	}
	return res, entity.NewReservationSeats(res, seats)
}

func TestReservationRepository_ConcurrentCreateOneWinner(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	seat := f.seats[0]

	const attempts = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		conflict int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, links := f.newReservation(seat)
			err := f.repo.Reservation.CreateWithSeats(ctx, res, links)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				winners++
			case assert.ErrorIs(t, err, repository.ErrSeatTaken):
				conflict++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
	assert.Equal(t, attempts-1, conflict)

	booked, err := f.repo.Reservation.FindBookedSeatIDs(ctx, f.showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{seat.ID}, booked)

	mine, err := f.repo.Reservation.FindByUserID(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)
}

func TestReservationRepository_ConflictRollsBackWholeReservation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	first, links := f.newReservation(f.seats[0])
	require.NoError(t, f.repo.Reservation.CreateWithSeats(ctx, first, links))

	second, links := f.newReservation(f.seats[1], f.seats[0])
	err := f.repo.Reservation.CreateWithSeats(ctx, second, links)
	require.ErrorIs(t, err, repository.ErrSeatTaken)

	found, err := f.repo.Reservation.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	booked, err := f.repo.Reservation.FindBookedSeatIDs(ctx, f.showtime.ID)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{f.seats[0].ID}, booked)
}

func TestReservationRepository_CancelReleasesSeats(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, links := f.newReservation(f.seats[0], f.seats[1])
	require.NoError(t, f.repo.Reservation.CreateWithSeats(ctx, res, links))

	require.NoError(t, f.repo.Reservation.Cancel(ctx, res.ID))
	assert.ErrorIs(t, f.repo.Reservation.Cancel(ctx, res.ID), repository.ErrAlreadyCancelled)

	cancelled, err := f.repo.Reservation.FindByID(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ReservationStatusCancelled, cancelled.Status)
	assert.Equal(t, 3000, cancelled.TotalAmountCents)

	booked, err := f.repo.Reservation.FindBookedSeatIDs(ctx, f.showtime.ID)
	require.NoError(t, err)
	assert.Empty(t, booked)

	count, err := f.repo.Reservation.CountSeatsByStatus(ctx, f.showtime.ID, entity.ReservationStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	again, links := f.newReservation(f.seats[0])
	require.NoError(t, f.repo.Reservation.CreateWithSeats(ctx, again, links))

	seatIDs, err := f.repo.Reservation.FindSeatIDs(ctx, res.ID)
	require.NoError(t, err)
	assert.Len(t, seatIDs, 2)
}

func TestShowtimeRepository_ExistsAuditoriumConflict(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	windowStart, windowEnd := f.showtime.BufferedWindow()

	exists, err := f.repo.Showtime.ExistsAuditoriumConflict(ctx, seededAuditoriumID, uuid.Nil, windowStart, windowEnd)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = f.repo.Showtime.ExistsAuditoriumConflict(ctx, seededAuditoriumID, f.showtime.ID, windowStart, windowEnd)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestReservationRepository_SeatIDsInSeatOrder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	res, links := f.newReservation(f.seats[2], f.seats[0], f.seats[1])
	require.NoError(t, f.repo.Reservation.CreateWithSeats(ctx, res, links))

	want := []uuid.UUID{f.seats[0].ID, f.seats[1].ID, f.seats[2].ID}

	seatIDs, err := f.repo.Reservation.FindSeatIDs(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, want, seatIDs)

	byReservation, err := f.repo.Reservation.FindSeatIDsByReservationIDs(ctx, []uuid.UUID{res.ID})
	require.NoError(t, err)
	assert.Equal(t, want, byReservation[res.ID])
}
