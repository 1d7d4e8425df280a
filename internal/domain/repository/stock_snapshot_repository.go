package repository

import "github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"

// StockSnapshotRepository define el puerto de la materialización para
// reportes. Solo la reconstrucción escribe aquí; las operaciones de
// inventario nunca la leen.
type StockSnapshotRepository interface {
	// DeleteScope borra las filas del alcance a reconstruir (filtros opcionales).
	DeleteScope(productID, locationID *int64) error
	Upsert(snapshot *entity.StockSnapshot) error
	List(productID, locationID *int64) ([]*entity.StockSnapshot, error)
}
