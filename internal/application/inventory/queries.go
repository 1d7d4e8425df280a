package inventory

import (
	"context"
	"time"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

// StockQueryUseCase superficie de consulta de solo lectura sobre el stock y
// el libro de movimientos. La usan los callers (ej. creación de líneas de
// venta) para pre-chequear stock antes de emitir una operación mutante; el
// chequeo definitivo sigue siendo el de la operación, bajo lock.
type StockQueryUseCase struct {
	recordRepo   repository.InventoryRecordRepository
	movementRepo repository.StockMovementRepository
	snapshotRepo repository.StockSnapshotRepository
	productRepo  repository.ProductRepository
	locationRepo repository.StorageLocationRepository
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	recordRepo repository.InventoryRecordRepository,
	movementRepo repository.StockMovementRepository,
	snapshotRepo repository.StockSnapshotRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.StorageLocationRepository,
) *StockQueryUseCase {
	return &StockQueryUseCase{
		recordRepo:   recordRepo,
		movementRepo: movementRepo,
		snapshotRepo: snapshotRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
	}
}

// Available devuelve los registros del producto en el depósito en orden FEFO
// (vencimiento ascendente, sin vencimiento al final).
func (uc *StockQueryUseCase) Available(ctx context.Context, productID, locationID int64) ([]*entity.InventoryRecord, error) {
	if err := uc.resolve(productID, &locationID); err != nil {
		return nil, err
	}
	return uc.recordRepo.List(productID, &locationID)
}

// TotalStock suma el stock del producto; locationID nil = todos los depósitos.
func (uc *StockQueryUseCase) TotalStock(ctx context.Context, productID int64, locationID *int64) (int, error) {
	if err := uc.resolve(productID, locationID); err != nil {
		return 0, err
	}
	return uc.recordRepo.TotalStock(productID, locationID)
}

// MovementsByLocation lista los movimientos que tocaron un depósito, como
// origen o como destino.
func (uc *StockQueryUseCase) MovementsByLocation(ctx context.Context, locationID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	location, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrInvalidReference
	}
	return uc.movementRepo.ListByLocation(locationID, from, to, limit, offset)
}

// Snapshots devuelve la materialización de reportes con filtros opcionales.
// Lectura eventualmente consistente: refleja la última reconstrucción, no
// necesariamente el estado autoritativo del store.
func (uc *StockQueryUseCase) Snapshots(ctx context.Context, productID, locationID *int64) ([]*entity.StockSnapshot, error) {
	return uc.snapshotRepo.List(productID, locationID)
}

// MovementsByProduct lista el libro de movimientos de un producto (auditoría).
func (uc *StockQueryUseCase) MovementsByProduct(ctx context.Context, productID int64, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.movementRepo.ListByProduct(productID, from, to, limit, offset)
}

func (uc *StockQueryUseCase) resolve(productID int64, locationID *int64) error {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrInvalidReference
	}
	if locationID != nil {
		location, err := uc.locationRepo.GetByID(*locationID)
		if err != nil {
			return err
		}
		if location == nil {
			return domain.ErrInvalidReference
		}
	}
	return nil
}
