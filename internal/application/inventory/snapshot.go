package inventory

import (
	"context"
	"time"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

// SnapshotRebuildUseCase reconstruye la materialización StockSnapshot a partir
// del estado actual del store y del libro de movimientos. Es una salida de
// reportes: eventualmente consistente, nunca leída por las operaciones. La
// cadencia de reconstrucción es una decisión de política del integrador.
type SnapshotRebuildUseCase struct {
	txRunner TxRunner
}

// NewSnapshotRebuildUseCase construye el caso de uso.
func NewSnapshotRebuildUseCase(txRunner TxRunner) *SnapshotRebuildUseCase {
	return &SnapshotRebuildUseCase{txRunner: txRunner}
}

// RebuildResult métricas de una reconstrucción.
type RebuildResult struct {
	Rows      int
	RebuiltAt time.Time
}

// Rebuild borra el alcance pedido (filtros opcionales por producto y depósito)
// y lo repuebla desde InventoryRecord, fijando last_movement_at al occurred_at
// más reciente observado en el libro para cada clave. Corre en su propia
// transacción, separada de cualquier operación de inventario.
func (uc *SnapshotRebuildUseCase) Rebuild(ctx context.Context, productID, locationID *int64) (*RebuildResult, error) {
	now := time.Now()
	var rows int
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		snapshotRepo repository.StockSnapshotRepository,
	) error {
		if err := snapshotRepo.DeleteScope(productID, locationID); err != nil {
			return err
		}
		records, err := recordRepo.ListScope(productID, locationID)
		if err != nil {
			return err
		}
		for _, rec := range records {
			lastAt, err := movementRepo.LastMovementAt(rec.ProductID, rec.LocationID, rec.Batch)
			if err != nil {
				return err
			}
			snap := &entity.StockSnapshot{
				ProductID:      rec.ProductID,
				LocationID:     rec.LocationID,
				Batch:          rec.Batch,
				Quantity:       rec.Quantity,
				LastMovementAt: lastAt,
				UpdatedAt:      now,
			}
			if err := snapshotRepo.Upsert(snap); err != nil {
				return err
			}
		}
		rows = len(records)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &RebuildResult{Rows: rows, RebuiltAt: now}, nil
}
