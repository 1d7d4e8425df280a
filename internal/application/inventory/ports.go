package inventory

import (
	"context"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza Commit si fn retorna nil y Rollback
// en cualquier otra salida: todos los tramos de una operación se confirman
// juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		snapshotRepo repository.StockSnapshotRepository,
	) error) error
}

// MovementNotifier publica movimientos ya confirmados hacia consumidores de
// reportes/notificaciones. Best effort fuera de la transacción: un fallo de
// publicación no revierte la operación.
type MovementNotifier interface {
	PublishMovements(ctx context.Context, movements []*entity.StockMovement) error
}
