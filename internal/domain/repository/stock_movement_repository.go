package repository

import (
	"time"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos
// (append-only). Create es la única escritura: los movimientos jamás se
// actualizan ni se eliminan.
type StockMovementRepository interface {
	Create(movement *entity.StockMovement) error
	ListByProduct(productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	ListByLocation(locationID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
	// LastMovementAt devuelve el occurred_at más reciente que tocó la clave
	// (producto, depósito, lote, vencimiento), o nil si no hay movimientos.
	LastMovementAt(productID, locationID int64, key entity.BatchKey) (*time.Time, error)
}
