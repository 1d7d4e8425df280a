package repository

import "github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"

// InventoryRecordRepository define el puerto del Batch Inventory Store:
// la tabla de estado actual por (producto, depósito, lote, vencimiento).
// Increment y Decrement solo son válidos dentro de la transacción de una
// operación (repos atados a la tx vía TxRunner); el store no expone commit.
type InventoryRecordRepository interface {
	// ListForUpdate devuelve los registros del producto en el depósito en
	// orden FEFO (vencimiento ascendente, sin vencimiento al final, desempate
	// por lote) bloqueando las filas con SELECT FOR UPDATE.
	ListForUpdate(productID, locationID int64) ([]*entity.InventoryRecord, error)

	// GetForUpdate bloquea y devuelve el registro exacto de la clave compuesta.
	// Devuelve nil (sin error) si no existe.
	GetForUpdate(productID, locationID int64, key entity.BatchKey) (*entity.InventoryRecord, error)

	// Increment crea el registro si no existe o suma delta (> 0) al existente,
	// consolidando por la clave compuesta.
	Increment(productID, locationID int64, key entity.BatchKey, delta int, actorID string) (*entity.InventoryRecord, error)

	// Decrement resta delta (> 0) con guarda quantity >= delta; si el resultado
	// sería negativo devuelve InsufficientStockError sin mutar. Si el registro
	// queda en 0 se elimina (nunca persisten filas en cero).
	Decrement(productID, locationID int64, key entity.BatchKey, delta int, actorID string) error

	// List devuelve los registros del producto (filtro opcional por depósito)
	// en orden FEFO, sin bloqueo. Superficie de consulta de solo lectura.
	List(productID int64, locationID *int64) ([]*entity.InventoryRecord, error)

	// ListScope devuelve registros con ambos filtros opcionales; lo usa la
	// reconstrucción de snapshot para recorrer el alcance pedido.
	ListScope(productID, locationID *int64) ([]*entity.InventoryRecord, error)

	// TotalStock suma las cantidades del producto, opcionalmente por depósito.
	TotalStock(productID int64, locationID *int64) (int, error)
}
