package repository

import (
	"context"
	"fmt"
	"time"

	"stayflow/internal/domain/models"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
)

type AvailabilityRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewAvailabilityRepository(db *pgxpool.Pool) *AvailabilityRepo {
	return &AvailabilityRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// UpsertAvailability writes a batch of room/date cells, overwriting existing ones.
func (r *AvailabilityRepo) UpsertAvailability(ctx context.Context, rows []models.RoomAvailability) error {
	const op = "repository.availability_repository.UpsertAvailability"

	if len(rows) == 0 {
		return nil
	}

	builder := r.sb.Insert("room_availability").
		Columns("room_id", "date", "allotment", "price_cents", "closed")

	for _, row := range rows {
		builder = builder.Values(row.RoomID, row.Date, row.Allotment, row.PriceCents, row.Closed)
	}

	query, args, err := builder.
		Suffix("ON CONFLICT (room_id, date) DO UPDATE SET allotment = EXCLUDED.allotment, price_cents = EXCLUDED.price_cents, closed = EXCLUDED.closed").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (r *AvailabilityRepo) GetAvailability(ctx context.Context, roomID uuid.UUID, from, to time.Time) ([]models.RoomAvailability, error) {
	const op = "repository.availability_repository.GetAvailability"

	sql, args, err := r.sb.Select("room_id", "date", "allotment", "price_cents", "closed").
		From("room_availability").
		Where(sq.Eq{"room_id": roomID}).
		Where(sq.GtOrEq{"date": from}).
		Where(sq.LtOrEq{"date": to}).
		OrderBy("date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var result []models.RoomAvailability
	for rows.Next() {
		var row models.RoomAvailability
		if err := rows.Scan(&row.RoomID, &row.Date, &row.Allotment, &row.PriceCents, &row.Closed); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
