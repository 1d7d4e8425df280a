package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

var _ repository.StockSnapshotRepository = (*StockSnapshotRepo)(nil)

// StockSnapshotRepo implementación de la materialización de reportes sobre
// PostgreSQL. Usa la misma codificación sentinela que inventory_records para
// conservar la unicidad de la clave compuesta.
type StockSnapshotRepo struct {
	q Querier
}

// NewStockSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSnapshotRepository(q Querier) *StockSnapshotRepo {
	return &StockSnapshotRepo{q: q}
}

// DeleteScope borra las filas del alcance a reconstruir.
func (r *StockSnapshotRepo) DeleteScope(productID, locationID *int64) error {
	query := `DELETE FROM stock_snapshots WHERE 1=1`
	args := []any{}
	pos := 1
	if productID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, *productID)
		pos++
	}
	if locationID != nil {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, *locationID)
	}
	if _, err := r.q.Exec(context.Background(), query, args...); err != nil {
		return fmt.Errorf("delete snapshot scope: %w", err)
	}
	return nil
}

// Upsert inserta o reemplaza la fila de la clave compuesta.
func (r *StockSnapshotRepo) Upsert(snapshot *entity.StockSnapshot) error {
	batchCode, expiryDate := encodeBatchKey(snapshot.Batch)
	query := `
		INSERT INTO stock_snapshots (product_id, location_id, batch_code, expiry_date, quantity, last_movement_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, location_id, batch_code, expiry_date)
		DO UPDATE SET quantity = EXCLUDED.quantity,
		              last_movement_at = EXCLUDED.last_movement_at,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		snapshot.ProductID, snapshot.LocationID, batchCode, expiryDate,
		snapshot.Quantity, snapshot.LastMovementAt, snapshot.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// List devuelve filas materializadas con filtros opcionales (consumo de reportes).
func (r *StockSnapshotRepo) List(productID, locationID *int64) ([]*entity.StockSnapshot, error) {
	query := `
		SELECT id, product_id, location_id, batch_code, expiry_date, quantity, last_movement_at, updated_at
		FROM stock_snapshots WHERE 1=1`
	args := []any{}
	pos := 1
	if productID != nil {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, *productID)
		pos++
	}
	if locationID != nil {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, *locationID)
	}
	query += " ORDER BY product_id ASC, location_id ASC, expiry_date ASC, batch_code ASC"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockSnapshot
	for rows.Next() {
		var s entity.StockSnapshot
		var batchCode string
		var expiryDate time.Time
		if err := rows.Scan(&s.ID, &s.ProductID, &s.LocationID, &batchCode, &expiryDate,
			&s.Quantity, &s.LastMovementAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.Batch = decodeBatchKey(batchCode, expiryDate)
		list = append(list, &s)
	}
	return list, rows.Err()
}
