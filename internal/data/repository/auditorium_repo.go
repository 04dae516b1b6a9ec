package repository

import (
	"context"
	"fmt"

	"cinema-reservation/internal/data/entity"
	"cinema-reservation/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuditoriumRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error)
	FindAll(ctx context.Context) ([]*entity.Auditorium, error)
}

type auditoriumRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAuditoriumRepository(db database.PgxIface, log *zap.Logger) AuditoriumRepository {
	return &auditoriumRepository{
		db:  db,
		log: log.With(zap.String("repository", "auditorium")),
	}
}

func (r *auditoriumRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Auditorium, error) {
	query := `SELECT id, name FROM auditoriums WHERE id = $1`

	var auditorium entity.Auditorium
	err := r.db.QueryRow(ctx, query, id).Scan(&auditorium.ID, &auditorium.Name)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find auditorium by ID",
			zap.Error(err),
			zap.String("auditorium_id", id.String()),
		)
		return nil, fmt.Errorf("find auditorium by id: %w", err)
	}

	return &auditorium, nil
}

func (r *auditoriumRepository) FindAll(ctx context.Context) ([]*entity.Auditorium, error) {
	query := `SELECT id, name FROM auditoriums ORDER BY name`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list auditoriums", zap.Error(err))
		return nil, fmt.Errorf("list auditoriums: %w", err)
	}
	defer rows.Close()

	auditoriums := []*entity.Auditorium{}
	for rows.Next() {
		var auditorium entity.Auditorium
		if err := rows.Scan(&auditorium.ID, &auditorium.Name); err != nil {
			r.log.Error("Failed to scan auditorium row", zap.Error(err))
			return nil, fmt.Errorf("scan auditorium row: %w", err)
		}
		auditoriums = append(auditoriums, &auditorium)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate auditorium rows: %w", err)
	}

	return auditoriums, nil
}
