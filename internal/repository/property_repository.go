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

type PropertyRepo struct {
	db *pgxpool.Pool
	sb sq.StatementBuilderType
}

func NewPropertyRepository(db *pgxpool.Pool) *PropertyRepo {
	return &PropertyRepo{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *PropertyRepo) SaveProperty(ctx context.Context, p models.Property) (uuid.UUID, error) {
	const op = "repository.property_repository.SaveProperty"

	query, args, err := r.sb.Insert("properties").
		Columns(
			"tenant_id",
			"name",
			"address",
			"city",
			"country",
			"timezone",
			"stars",
		).
		Values(
			p.TenantID,
			p.Name,
			p.Address,
			p.City,
			p.Country,
			p.Timezone,
			p.Stars,
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

func (r *PropertyRepo) UpdateProperty(ctx context.Context, p models.Property) error {
	const op = "repository.property_repository.UpdateProperty"

	query, args, err := r.sb.Update("properties").
		Set("name", p.Name).
		Set("address", p.Address).
		Set("city", p.City).
		Set("country", p.Country).
		Set("timezone", p.Timezone).
		Set("stars", p.Stars).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPropertyNotFound)
	}

	return nil
}

func (r *PropertyRepo) GetPropertyById(ctx context.Context, id uuid.UUID) (models.Property, error) {
	const op = "repository.property_repository.GetPropertyById"

	sql, args, err := r.sb.Select(
		"id", "tenant_id", "name", "address", "city", "country", "timezone", "stars", "created_at", "updated_at",
	).From("properties").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Property{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var p models.Property
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.TenantID, &p.Name, &p.Address, &p.City, &p.Country, &p.Timezone, &p.Stars, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Property{}, fmt.Errorf("%s: %w", op, storage.ErrPropertyNotFound)
		}
		return models.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	return p, nil
}

func (r *PropertyRepo) ListProperties(ctx context.Context, tenantID uuid.UUID) ([]models.Property, error) {
	const op = "repository.property_repository.ListProperties"

	sql, args, err := r.sb.Select(
		"id", "tenant_id", "name", "address", "city", "country", "timezone", "stars", "created_at", "updated_at",
	).From("properties").Where(sq.Eq{"tenant_id": tenantID}).OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(
			&p.ID, &p.TenantID, &p.Name, &p.Address, &p.City, &p.Country, &p.Timezone, &p.Stars, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

func (r *PropertyRepo) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	const op = "repository.property_repository.DeleteProperty"

	query, args, err := r.sb.Delete("properties").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrPropertyNotFound)
	}

	return nil
}

func (r *PropertyRepo) SaveRoom(ctx context.Context, room models.Room) (uuid.UUID, error) {
	const op = "repository.property_repository.SaveRoom"

	query, args, err := r.sb.Insert("rooms").
		Columns(
			"property_id",
			"number",
			"type",
			"capacity",
			"base_price_cents",
			"description",
		).
		Values(
			room.PropertyID,
			room.Number,
			room.Type,
			room.Capacity,
			room.BasePriceCents,
			room.Description,
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

func (r *PropertyRepo) UpdateRoom(ctx context.Context, room models.Room) error {
	const op = "repository.property_repository.UpdateRoom"

	query, args, err := r.sb.Update("rooms").
		Set("number", room.Number).
		Set("type", room.Type).
		Set("capacity", room.Capacity).
		Set("base_price_cents", room.BasePriceCents).
		Set("description", room.Description).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": room.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrRoomNotFound)
	}

	return nil
}

func (r *PropertyRepo) GetRoomById(ctx context.Context, id uuid.UUID) (models.Room, error) {
	const op = "repository.property_repository.GetRoomById"

	sql, args, err := r.sb.Select(
		"id", "property_id", "number", "type", "capacity", "base_price_cents", "description", "created_at", "updated_at",
	).From("rooms").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return models.Room{}, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	var room models.Room
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&room.ID, &room.PropertyID, &room.Number, &room.Type, &room.Capacity,
		&room.BasePriceCents, &room.Description, &room.CreatedAt, &room.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Room{}, fmt.Errorf("%s: %w", op, storage.ErrRoomNotFound)
		}
		return models.Room{}, fmt.Errorf("%s: %w", op, err)
	}

	return room, nil
}

func (r *PropertyRepo) ListRooms(ctx context.Context, propertyID uuid.UUID) ([]models.Room, error) {
	const op = "repository.property_repository.ListRooms"

	sql, args, err := r.sb.Select(
		"id", "property_id", "number", "type", "capacity", "base_price_cents", "description", "created_at", "updated_at",
	).From("rooms").Where(sq.Eq{"property_id": propertyID}).OrderBy("number").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(
			&room.ID, &room.PropertyID, &room.Number, &room.Type, &room.Capacity,
			&room.BasePriceCents, &room.Description, &room.CreatedAt, &room.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		rooms = append(rooms, room)
	}

	return rooms, rows.Err()
}

func (r *PropertyRepo) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	const op = "repository.property_repository.DeleteRoom"

	query, args, err := r.sb.Delete("rooms").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%s: can't build sql: %w", op, err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrRoomNotFound)
	}

	return nil
}
