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

type PaymentRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPaymentRepository(db *pgxpool.Pool) *PaymentRepo {
	return &PaymentRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PaymentRepo) SavePayment(ctx context.Context, p models.Payment) (uuid.UUID, error) {
	const op = "repository.payment_repository.SavePayment"

	query, args, err := r.sb.Insert("payments").
		Columns(
			"reservation_id",
			"amount_cents",
			"currency",
			"method",
			"status",
			"paid_at",
		).
		Values(
			p.ReservationID,
			p.AmountCents,
			p.Currency,
			p.Method,
			p.Status,
			p.PaidAt,
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

func (r *PaymentRepo) GetPaymentById(ctx context.Context, id uuid.UUID) (models.Payment, error) {
	const op = "repository.payment_repository.GetPaymentById"

	sql, args, err := r.sb.Select(
		"id", "reservation_id", "amount_cents", "currency", "method", "status", "paid_at", "created_at",
	).From("payments").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Payment{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var p models.Payment
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.ReservationID, &p.AmountCents, &p.Currency, &p.Method, &p.Status, &p.PaidAt, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Payment{}, fmt.Errorf("%s: %w", op, storage.ErrPaymentNotFound)
		}
		return models.Payment{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *PaymentRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) error {
	const op = "repository.payment_repository.UpdatePaymentStatus"

	builder := r.sb.Update("payments").Set("status", status).Where(sq.Eq{"id": id})
	if status == models.PaymentStatusCaptured {
		builder = builder.Set("paid_at", time.Now().UTC())
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPaymentNotFound)
	}

	return nil
}

func (r *PaymentRepo) ListPayments(ctx context.Context, reservationID uuid.UUID) ([]models.Payment, error) {
	const op = "repository.payment_repository.ListPayments"

	sql, args, err := r.sb.Select(
		"id", "reservation_id", "amount_cents", "currency", "method", "status", "paid_at", "created_at",
	).From("payments").Where(sq.Eq{"reservation_id": reservationID}).OrderBy("created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(
			&p.ID, &p.ReservationID, &p.AmountCents, &p.Currency, &p.Method, &p.Status, &p.PaidAt, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		payments = append(payments, p)
	}

	return payments, rows.Err()
}
