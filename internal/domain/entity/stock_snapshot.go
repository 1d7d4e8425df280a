package entity

import "time"

// StockSnapshot es la materialización desnormalizada de stock actual para
// reportes. Se reconstruye bajo demanda desde InventoryRecord + StockMovement;
// no es autoritativa y las operaciones nunca la consultan.
type StockSnapshot struct {
	ID             int64
	ProductID      int64
	LocationID     int64
	Batch          BatchKey
	Quantity       int
	LastMovementAt *time.Time
	UpdatedAt      time.Time
}
