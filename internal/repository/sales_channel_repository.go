package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stayflow/internal/domain/models"
	"stayflow/internal/storage"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type SalesChannelRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewSalesChannelRepository(db *pgxpool.Pool) *SalesChannelRepo {
	return &SalesChannelRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *SalesChannelRepo) SaveChannel(ctx context.Context, c models.SalesChannel) (uuid.UUID, error) {
	const op = "repository.sales_channel_repository.SaveChannel"

	query, args, err := r.sb.Insert("sales_channels").
		Columns(
			"tenant_id",
			"name",
			"code",
			"commission_percent",
			"active",
		).
		Values(
			c.TenantID,
			c.Name,
			c.Code,
			c.CommissionPercent,
			c.Active,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var id uuid.UUID
	err = r.db.QueryRow(ctx, query, args...).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return uuid.Nil, fmt.Errorf("%s: %w", op, storage.ErrChannelCodeTaken)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (r *SalesChannelRepo) UpdateChannel(ctx context.Context, c models.SalesChannel) error {
	const op = "repository.sales_channel_repository.UpdateChannel"

	query, args, err := r.sb.Update("sales_channels").
		Set("name", c.Name).
		Set("commission_percent", c.CommissionPercent).
		Set("active", c.Active).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrChannelNotFound)
	}

	return nil
}

func (r *SalesChannelRepo) GetChannelById(ctx context.Context, id uuid.UUID) (models.SalesChannel, error) {
	const op = "repository.sales_channel_repository.GetChannelById"

	sql, args, err := r.sb.Select(
		"id", "tenant_id", "name", "code", "commission_percent", "active", "created_at", "updated_at",
	).From("sales_channels").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.SalesChannel{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var c models.SalesChannel
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Code, &c.CommissionPercent, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.SalesChannel{}, fmt.Errorf("%s: %w", op, storage.ErrChannelNotFound)
		}
		return models.SalesChannel{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (r *SalesChannelRepo) ListChannels(ctx context.Context, tenantID uuid.UUID) ([]models.SalesChannel, error) {
	const op = "repository.sales_channel_repository.ListChannels"

	sql, args, err := r.sb.Select(
		"id", "tenant_id", "name", "code", "commission_percent", "active", "created_at", "updated_at",
	).From("sales_channels").Where(sq.Eq{"tenant_id": tenantID}).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var channels []models.SalesChannel
	for rows.Next() {
		var c models.SalesChannel
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Code, &c.CommissionPercent, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		channels = append(channels, c)
	}

	return channels, rows.Err()
}

func (r *SalesChannelRepo) DeleteChannel(ctx context.Context, id uuid.UUID) error {
	const op = "repository.sales_channel_repository.DeleteChannel"

	query, args, err := r.sb.Delete("sales_channels").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrChannelNotFound)
	}

	return nil
}
