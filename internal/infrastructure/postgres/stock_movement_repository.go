package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Append-only: no hay UPDATE ni DELETE.
// A diferencia de inventory_records, aquí lote y vencimiento van como NULL
// reales: no hay constraint de unicidad que los necesite.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

const movementColumns = `id, product_id, batch_code, expiry_date, from_location_id, to_location_id,
		quantity, reason, description, reference_type, reference_id, occurred_at, COALESCE(created_by, '')`

// Create persiste un movimiento. Inmutable a partir de aquí.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, batch_code, expiry_date, from_location_id, to_location_id,
			quantity, reason, description, reference_type, reference_id, occurred_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NULLIF($13, ''))`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Batch.BatchCode, movement.Batch.ExpiryDate,
		movement.FromLocationID, movement.ToLocationID, movement.Quantity, string(movement.Reason),
		movement.Description, movement.Reference.Type, movement.Reference.ID,
		movement.OccurredAt, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto en un rango de fechas.
func (r *StockMovementRepo) ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE product_id = $1`
	args := []any{productID}
	return r.list(query, args, from, to, limit, offset)
}

// ListByLocation lista movimientos que tocaron un depósito (origen o destino).
func (r *StockMovementRepo) ListByLocation(locationID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM stock_movements WHERE (from_location_id = $1 OR to_location_id = $1)`
	args := []any{locationID}
	return r.list(query, args, from, to, limit, offset)
}

// LastMovementAt devuelve el occurred_at más reciente que tocó la clave, o nil.
func (r *StockMovementRepo) LastMovementAt(productID, locationID int64, key entity.BatchKey) (*time.Time, error) {
	query := `
		SELECT MAX(occurred_at)
		FROM stock_movements
		WHERE product_id = $1 AND (from_location_id = $2 OR to_location_id = $2)
		  AND batch_code IS NOT DISTINCT FROM $3
		  AND expiry_date IS NOT DISTINCT FROM $4`
	var lastAt *time.Time
	err := r.q.QueryRow(context.Background(), query,
		productID, locationID, key.BatchCode, key.ExpiryDate).Scan(&lastAt)
	if err != nil {
		return nil, fmt.Errorf("last movement at: %w", err)
	}
	return lastAt, nil
}

func (r *StockMovementRepo) list(query string, args []any, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	pos := len(args) + 1
	if from != nil {
		query += fmt.Sprintf(" AND occurred_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND occurred_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY occurred_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

func scanMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var reason string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Batch.BatchCode, &m.Batch.ExpiryDate,
			&m.FromLocationID, &m.ToLocationID, &m.Quantity, &reason, &m.Description,
			&m.Reference.Type, &m.Reference.ID, &m.OccurredAt, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		m.Reason = entity.MovementReason(reason)
		list = append(list, &m)
	}
	return list, rows.Err()
}
