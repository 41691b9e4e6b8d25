package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"stayflow/internal/domain/models"
	"stayflow/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type ReservationRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewReservationRepository(db *pgxpool.Pool) *ReservationRepo {
	return &ReservationRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *ReservationRepo) SaveReservation(ctx context.Context, res models.Reservation) (uuid.UUID, error) {
	const op = "repository.reservation_repository.SaveReservation"

	query, args, err := r.sb.Insert("reservations").
		Columns(
			"property_id",
			"room_id",
			"channel_id",
			"status",
			"check_in",
			"check_out",
			"total_cents",
			"currency",
			"notes",
		).
		Values(
			res.PropertyID,
			res.RoomID,
			res.ChannelID,
			res.Status,
			res.CheckIn,
			res.CheckOut,
			res.TotalCents,
			res.Currency,
			res.Notes,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *ReservationRepo) GetReservationById(ctx context.Context, id uuid.UUID) (models.Reservation, error) {
	const op = "repository.reservation_repository.GetReservationById"

	sql, args, err := r.sb.Select(
		"id", "property_id", "room_id", "channel_id", "status", "check_in", "check_out",
		"total_cents", "currency", "notes", "created_at", "updated_at",
	).From("reservations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Reservation{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var res models.Reservation
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&res.ID, &res.PropertyID, &res.RoomID, &res.ChannelID, &res.Status,
		&res.CheckIn, &res.CheckOut, &res.TotalCents, &res.Currency, &res.Notes,
		&res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Reservation{}, fmt.Errorf("%s: %w", op, storage.ErrReservationNotFound)
		}
		return models.Reservation{}, fmt.Errorf("%s: %w", op, err)
	}

	return res, nil
}

func (r *ReservationRepo) UpdateReservationStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "repository.reservation_repository.UpdateReservationStatus"

	query, args, err := r.sb.Update("reservations").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrReservationNotFound)
	}

	return nil
}

func (r *ReservationRepo) ListReservations(ctx context.Context, filter models.ReservationFilter) ([]models.Reservation, error) {
	const op = "repository.reservation_repository.ListReservations"

	builder := r.sb.Select(
		"id", "property_id", "room_id", "channel_id", "status", "check_in", "check_out",
		"total_cents", "currency", "notes", "created_at", "updated_at",
	).From("reservations")

	if filter.PropertyID != uuid.Nil {
		builder = builder.Where(sq.Eq{"property_id": filter.PropertyID})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}
	if !filter.From.IsZero() {
		builder = builder.Where(sq.GtOrEq{"check_in": filter.From})
	}
	if !filter.To.IsZero() {
		builder = builder.Where(sq.LtOrEq{"check_out": filter.To})
	}

	sql, args, err := builder.OrderBy("check_in").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var reservations []models.Reservation
	for rows.Next() {
		var res models.Reservation
		if err := rows.Scan(
			&res.ID, &res.PropertyID, &res.RoomID, &res.ChannelID, &res.Status,
			&res.CheckIn, &res.CheckOut, &res.TotalCents, &res.Currency, &res.Notes,
			&res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *ReservationRepo) AddGuest(ctx context.Context, g models.Guest) (uuid.UUID, error) {
	const op = "repository.reservation_repository.AddGuest"

	query, args, err := r.sb.Insert("guests").
		Columns(
			"reservation_id",
			"first_name",
			"last_name",
			"email",
			"phone",
			"document_id",
		).
		Values(
			g.ReservationID,
			g.FirstName,
			g.LastName,
			g.Email,
			g.Phone,
			g.DocumentID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *ReservationRepo) ListGuests(ctx context.Context, reservationID uuid.UUID) ([]models.Guest, error) {
	const op = "repository.reservation_repository.ListGuests"

	sql, args, err := r.sb.Select(
		"id", "reservation_id", "first_name", "last_name", "email", "phone", "document_id",
	).From("guests").Where(sq.Eq{"reservation_id": reservationID}).OrderBy("last_name", "first_name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var guests []models.Guest
	for rows.Next() {
		var g models.Guest
		if err := rows.Scan(
			&g.ID, &g.ReservationID, &g.FirstName, &g.LastName, &g.Email, &g.Phone, &g.DocumentID,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		guests = append(guests, g)
	}

	return guests, rows.Err()
}

func (r *ReservationRepo) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	const op = "repository.reservation_repository.DeleteGuest"

	query, args, err := r.sb.Delete("guests").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrGuestNotFound)
	}

	return nil
}
