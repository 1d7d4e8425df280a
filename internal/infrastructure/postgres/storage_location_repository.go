package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

var _ repository.StorageLocationRepository = (*StorageLocationRepo)(nil)

// StorageLocationRepo implementación de StorageLocationRepository sobre PostgreSQL.
type StorageLocationRepo struct {
	q Querier
}

// NewStorageLocationRepository construye el adaptador de depósitos. Pasar pool o tx (Querier).
func NewStorageLocationRepository(q Querier) *StorageLocationRepo {
	return &StorageLocationRepo{q: q}
}

// Create persiste un depósito nuevo.
func (r *StorageLocationRepo) Create(location *entity.StorageLocation) error {
	query := `
		INSERT INTO storage_locations (name, is_active)
		VALUES ($1, true)
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query, location.Name).
		Scan(&location.ID, &location.CreatedAt, &location.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create storage location: %w", err)
	}
	location.IsActive = true
	return nil
}

// GetByID obtiene un depósito por id; nil si no existe.
func (r *StorageLocationRepo) GetByID(id int64) (*entity.StorageLocation, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM storage_locations WHERE id = $1`
	var loc entity.StorageLocation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&loc.ID, &loc.Name, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get storage location: %w", err)
	}
	return &loc, nil
}

// List lista depósitos paginados.
func (r *StorageLocationRepo) List(limit, offset int) ([]*entity.StorageLocation, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM storage_locations ORDER BY name ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list storage locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var loc entity.StorageLocation
		if err := rows.Scan(&loc.ID, &loc.Name, &loc.IsActive, &loc.CreatedAt, &loc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan storage location: %w", err)
		}
		list = append(list, &loc)
	}
	return list, rows.Err()
}
