package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

var _ repository.InventoryRecordRepository = (*InventoryRecordRepo)(nil)

// InventoryRecordRepo implementación del Batch Inventory Store sobre
// PostgreSQL (usable con pool o tx). El orden FEFO se resuelve en SQL: la
// sentinela de vencimiento (9999-12-31) ordena "sin vencimiento" al final.
type InventoryRecordRepo struct {
	q Querier
}

// NewInventoryRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRecordRepository(q Querier) *InventoryRecordRepo {
	return &InventoryRecordRepo{q: q}
}

const recordColumns = `id, product_id, location_id, batch_code, expiry_date, quantity, created_at, updated_at, COALESCE(updated_by, '')`

// ListForUpdate devuelve los registros del producto en el depósito en orden
// FEFO, bloqueando las filas con SELECT FOR UPDATE para toda la transacción.
func (r *InventoryRecordRepo) ListForUpdate(productID, locationID int64) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records
		WHERE product_id = $1 AND location_id = $2
		ORDER BY expiry_date ASC, batch_code ASC
		FOR UPDATE`
	rows, err := r.q.Query(context.Background(), query, productID, locationID)
	if err != nil {
		return nil, fmt.Errorf("list records for update: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// GetForUpdate bloquea y devuelve el registro exacto de la clave compuesta;
// nil si no existe.
func (r *InventoryRecordRepo) GetForUpdate(productID, locationID int64, key entity.BatchKey) (*entity.InventoryRecord, error) {
	batchCode, expiryDate := encodeBatchKey(key)
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records
		WHERE product_id = $1 AND location_id = $2 AND batch_code = $3 AND expiry_date = $4
		FOR UPDATE`
	rec, err := scanRecordRow(r.q.QueryRow(context.Background(), query, productID, locationID, batchCode, expiryDate))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get record for update: %w", err)
	}
	return rec, nil
}

// Increment crea o consolida el registro de la clave compuesta sumando delta.
func (r *InventoryRecordRepo) Increment(productID, locationID int64, key entity.BatchKey, delta int, actorID string) (*entity.InventoryRecord, error) {
	if delta <= 0 {
		return nil, domain.ErrInvalidOperation
	}
	batchCode, expiryDate := encodeBatchKey(key)
	query := `
		INSERT INTO inventory_records (product_id, location_id, batch_code, expiry_date, quantity, updated_by)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''))
		ON CONFLICT (product_id, location_id, batch_code, expiry_date)
		DO UPDATE SET quantity = inventory_records.quantity + EXCLUDED.quantity,
		              updated_by = EXCLUDED.updated_by, updated_at = now()
		RETURNING ` + recordColumns
	rec, err := scanRecordRow(r.q.QueryRow(context.Background(), query,
		productID, locationID, batchCode, expiryDate, delta, actorID))
	if err != nil {
		return nil, fmt.Errorf("increment record: %w", err)
	}
	return rec, nil
}

// Decrement resta delta con guarda quantity >= delta; InsufficientStockError
// si el resultado sería negativo. La fila que queda en 0 se elimina.
func (r *InventoryRecordRepo) Decrement(productID, locationID int64, key entity.BatchKey, delta int, actorID string) error {
	if delta <= 0 {
		return domain.ErrInvalidOperation
	}
	batchCode, expiryDate := encodeBatchKey(key)
	ctx := context.Background()
	tag, err := r.q.Exec(ctx, `
		UPDATE inventory_records
		SET quantity = quantity - $5, updated_by = NULLIF($6, ''), updated_at = now()
		WHERE product_id = $1 AND location_id = $2 AND batch_code = $3 AND expiry_date = $4
		  AND quantity >= $5`,
		productID, locationID, batchCode, expiryDate, delta, actorID)
	if err != nil {
		return fmt.Errorf("decrement record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		available := 0
		err := r.q.QueryRow(ctx, `
			SELECT COALESCE(SUM(quantity), 0) FROM inventory_records
			WHERE product_id = $1 AND location_id = $2 AND batch_code = $3 AND expiry_date = $4`,
			productID, locationID, batchCode, expiryDate).Scan(&available)
		if err != nil {
			return fmt.Errorf("decrement record (stock check): %w", err)
		}
		return &domain.InsufficientStockError{Available: available, Requested: delta}
	}
	_, err = r.q.Exec(ctx, `
		DELETE FROM inventory_records
		WHERE product_id = $1 AND location_id = $2 AND batch_code = $3 AND expiry_date = $4
		  AND quantity = 0`,
		productID, locationID, batchCode, expiryDate)
	if err != nil {
		return fmt.Errorf("delete empty record: %w", err)
	}
	return nil
}

// List devuelve los registros del producto (filtro opcional por depósito) en
// orden FEFO, sin bloqueo.
func (r *InventoryRecordRepo) List(productID int64, locationID *int64) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records
		WHERE product_id = $1`
	args := []any{productID}
	if locationID != nil {
		query += " AND location_id = $2"
		args = append(args, *locationID)
	}
	query += " ORDER BY location_id ASC, expiry_date ASC, batch_code ASC"
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// ListScope devuelve registros con ambos filtros opcionales (reconstrucción de snapshot).
func (r *InventoryRecordRepo) ListScope(productID, locationID *int64) ([]*entity.InventoryRecord, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM inventory_records WHERE 1=1`
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
		return nil, fmt.Errorf("list records scope: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// TotalStock suma las cantidades del producto, opcionalmente por depósito.
func (r *InventoryRecordRepo) TotalStock(productID int64, locationID *int64) (int, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM inventory_records WHERE product_id = $1`
	args := []any{productID}
	if locationID != nil {
		query += " AND location_id = $2"
		args = append(args, *locationID)
	}
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(s rowScanner) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	var batchCode string
	var expiryDate time.Time
	if err := s.Scan(&rec.ID, &rec.ProductID, &rec.LocationID, &batchCode, &expiryDate,
		&rec.Quantity, &rec.CreatedAt, &rec.UpdatedAt, &rec.UpdatedBy); err != nil {
		return nil, err
	}
	rec.Batch = decodeBatchKey(batchCode, expiryDate)
	return &rec, nil
}

func scanRecordRow(row pgx.Row) (*entity.InventoryRecord, error) {
	return scanRecord(row)
}

func scanRecords(rows pgx.Rows) ([]*entity.InventoryRecord, error) {
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
