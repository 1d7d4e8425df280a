package inventory

import (
	"context"
	"time"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	invdomain "github.com/guille-nat/Api-Compras-sub000/internal/domain/inventory"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

// StockOperationsUseCase ejecuta las operaciones que afectan stock
// (entrada por compra, salida por venta, transferencia, devolución y ajuste)
// de forma transaccional, con bloqueo de filas (SELECT FOR UPDATE) y
// Commit/Rollback todo-o-nada. Es el único productor de StockMovement.
type StockOperationsUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.StorageLocationRepository
	notifier     MovementNotifier // opcional; nil = sin publicación
}

// NewStockOperationsUseCase construye el caso de uso. notifier puede ser nil.
func NewStockOperationsUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.StorageLocationRepository,
	notifier MovementNotifier,
) *StockOperationsUseCase {
	return &StockOperationsUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		notifier:     notifier,
	}
}

// OperationResult resume una operación confirmada.
// Moved es la cantidad total movida; MovementsCount la cantidad de tramos de
// lote tocados (un movimiento por tramo).
type OperationResult struct {
	Moved          int
	MovementsCount int
	Movements      []*entity.StockMovement
}

// ReceiptInput entrada de stock asociada a una compra a proveedores.
// BatchCode y ExpiryDate son opcionales e independientes.
type ReceiptInput struct {
	ProductID    int64
	ToLocationID int64
	Quantity     int
	BatchCode    *string
	ExpiryDate   *time.Time
	Description  string
	Reference    entity.Reference
	ActorID      string
}

// ExitSaleInput salida de stock por venta; consume en orden FEFO.
type ExitSaleInput struct {
	ProductID      int64
	FromLocationID int64
	Quantity       int
	Description    string
	Reference      entity.Reference
	ActorID        string
}

// TransferInput traslado entre depósitos; consume del origen en orden FEFO y
// consolida en destino por la clave (producto, depósito, lote, vencimiento).
type TransferInput struct {
	ProductID      int64
	FromLocationID int64
	ToLocationID   int64
	Quantity       int
	Description    string
	Reference      entity.Reference
	ActorID        string
}

// ReturnInput reingreso de stock por devolución; normalmente revierte una
// salida por venta previa. BatchCode y ExpiryDate se informan juntos o ninguno.
type ReturnInput struct {
	ProductID    int64
	ToLocationID int64
	Quantity     int
	BatchCode    *string
	ExpiryDate   *time.Time
	Description  string
	Reference    entity.Reference
	ActorID      string
}

// AdjustInput ajuste manual sobre un tramo de lote exacto. Delta positivo
// agrega stock, negativo quita (con la misma guarda de no-sobregiro).
// BatchCode y ExpiryDate se informan juntos o ninguno.
type AdjustInput struct {
	ProductID   int64
	LocationID  int64
	Delta       int
	BatchCode   *string
	ExpiryDate  *time.Time
	Description string
	Reference   entity.Reference
	ActorID     string
}

// Receipt registra una ENTRADA de inventario: crea o consolida el registro en
// destino y deja un movimiento RECEIPT (origen nil).
func (uc *StockOperationsUseCase) Receipt(ctx context.Context, in ReceiptInput) (*OperationResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidOperation
	}
	key := entity.BatchKey{BatchCode: entity.NormalizeBatchCode(in.BatchCode), ExpiryDate: in.ExpiryDate}
	if err := uc.resolveProduct(in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.resolveLocation(in.ToLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ProductID:    in.ProductID,
		Batch:        key,
		ToLocationID: &in.ToLocationID,
		Quantity:     in.Quantity,
		Reason:       entity.ReasonReceipt,
		Description:  in.Description,
		Reference:    in.Reference,
		OccurredAt:   now,
		CreatedBy:    in.ActorID,
	}
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.StockSnapshotRepository,
	) error {
		if _, err := recordRepo.Increment(in.ProductID, in.ToLocationID, key, in.Quantity, in.ActorID); err != nil {
			return err
		}
		return movementRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	res := &OperationResult{Moved: in.Quantity, MovementsCount: 1, Movements: []*entity.StockMovement{mov}}
	uc.notify(ctx, res)
	return res, nil
}

// ExitSale registra una SALIDA por venta. Bloquea los registros del origen,
// calcula el plan FEFO y lo aplica; un movimiento EXIT_SALE por tramo
// consumido. Si el stock total no cubre lo pedido no se muta nada.
func (uc *StockOperationsUseCase) ExitSale(ctx context.Context, in ExitSaleInput) (*OperationResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidOperation
	}
	if err := uc.resolveProduct(in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.resolveLocation(in.FromLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	var res OperationResult
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.StockSnapshotRepository,
	) error {
		rows, err := recordRepo.ListForUpdate(in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		plan, err := invdomain.Allocate(toBatchStocks(rows), in.Quantity)
		if err != nil {
			return err
		}
		for _, seg := range plan {
			if err := recordRepo.Decrement(in.ProductID, in.FromLocationID, seg.Key, seg.Take, in.ActorID); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ProductID:      in.ProductID,
				Batch:          seg.Key,
				FromLocationID: &in.FromLocationID,
				Quantity:       seg.Take,
				Reason:         entity.ReasonExitSale,
				Description:    in.Description,
				Reference:      in.Reference,
				OccurredAt:     now,
				CreatedBy:      in.ActorID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
			res.Movements = append(res.Movements, mov)
		}
		res.Moved = in.Quantity
		res.MovementsCount = len(plan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, &res)
	return &res, nil
}

// Transfer traslada stock entre depósitos distintos. Consume del origen en
// orden FEFO y consolida en destino por la clave compuesta; un movimiento
// TRANSFER por tramo. Todo dentro de la misma transacción.
func (uc *StockOperationsUseCase) Transfer(ctx context.Context, in TransferInput) (*OperationResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidOperation
	}
	if in.FromLocationID == in.ToLocationID {
		return nil, domain.ErrInvalidOperation
	}
	if err := uc.resolveProduct(in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.resolveLocation(in.FromLocationID); err != nil {
		return nil, err
	}
	if err := uc.resolveLocation(in.ToLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	var res OperationResult
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.StockSnapshotRepository,
	) error {
		rows, err := recordRepo.ListForUpdate(in.ProductID, in.FromLocationID)
		if err != nil {
			return err
		}
		plan, err := invdomain.Allocate(toBatchStocks(rows), in.Quantity)
		if err != nil {
			return err
		}
		for _, seg := range plan {
			if err := recordRepo.Decrement(in.ProductID, in.FromLocationID, seg.Key, seg.Take, in.ActorID); err != nil {
				return err
			}
			if _, err := recordRepo.Increment(in.ProductID, in.ToLocationID, seg.Key, seg.Take, in.ActorID); err != nil {
				return err
			}
			mov := &entity.StockMovement{
				ProductID:      in.ProductID,
				Batch:          seg.Key,
				FromLocationID: &in.FromLocationID,
				ToLocationID:   &in.ToLocationID,
				Quantity:       seg.Take,
				Reason:         entity.ReasonTransfer,
				Description:    in.Description,
				Reference:      in.Reference,
				OccurredAt:     now,
				CreatedBy:      in.ActorID,
			}
			if err := movementRepo.Create(mov); err != nil {
				return err
			}
			res.Movements = append(res.Movements, mov)
		}
		res.Moved = in.Quantity
		res.MovementsCount = len(plan)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.notify(ctx, &res)
	return &res, nil
}

// Return registra un reingreso por devolución (motivo RETURN), simétrico a
// Receipt. Lote y vencimiento deben informarse juntos o no informarse.
func (uc *StockOperationsUseCase) Return(ctx context.Context, in ReturnInput) (*OperationResult, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidOperation
	}
	key := entity.BatchKey{BatchCode: entity.NormalizeBatchCode(in.BatchCode), ExpiryDate: in.ExpiryDate}
	if (key.BatchCode == nil) != (key.ExpiryDate == nil) {
		return nil, domain.ErrInvalidOperation
	}
	if err := uc.resolveProduct(in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.resolveLocation(in.ToLocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ProductID:    in.ProductID,
		Batch:        key,
		ToLocationID: &in.ToLocationID,
		Quantity:     in.Quantity,
		Reason:       entity.ReasonReturn,
		Description:  in.Description,
		Reference:    in.Reference,
		OccurredAt:   now,
		CreatedBy:    in.ActorID,
	}
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.StockSnapshotRepository,
	) error {
		if _, err := recordRepo.Increment(in.ProductID, in.ToLocationID, key, in.Quantity, in.ActorID); err != nil {
			return err
		}
		return movementRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	res := &OperationResult{Moved: in.Quantity, MovementsCount: 1, Movements: []*entity.StockMovement{mov}}
	uc.notify(ctx, res)
	return res, nil
}

// Adjust aplica un ajuste manual sobre el tramo de lote exacto indicado.
// Delta > 0 agrega; delta < 0 quita sin permitir sobregiro. Deja un único
// movimiento ADJUSTMENT.
func (uc *StockOperationsUseCase) Adjust(ctx context.Context, in AdjustInput) (*OperationResult, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidOperation
	}
	key := entity.BatchKey{BatchCode: entity.NormalizeBatchCode(in.BatchCode), ExpiryDate: in.ExpiryDate}
	if (key.BatchCode == nil) != (key.ExpiryDate == nil) {
		return nil, domain.ErrInvalidOperation
	}
	if err := uc.resolveProduct(in.ProductID); err != nil {
		return nil, err
	}
	if err := uc.resolveLocation(in.LocationID); err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.StockMovement{
		ProductID:   in.ProductID,
		Batch:       key,
		Reason:      entity.ReasonAdjustment,
		Description: in.Description,
		Reference:   in.Reference,
		OccurredAt:  now,
		CreatedBy:   in.ActorID,
	}
	err := uc.txRunner.Run(ctx, func(
		recordRepo repository.InventoryRecordRepository,
		movementRepo repository.StockMovementRepository,
		_ repository.StockSnapshotRepository,
	) error {
		if in.Delta > 0 {
			if _, err := recordRepo.Increment(in.ProductID, in.LocationID, key, in.Delta, in.ActorID); err != nil {
				return err
			}
			mov.ToLocationID = &in.LocationID
			mov.Quantity = in.Delta
		} else {
			rec, err := recordRepo.GetForUpdate(in.ProductID, in.LocationID, key)
			if err != nil {
				return err
			}
			if rec == nil {
				return domain.ErrNotFound
			}
			if err := recordRepo.Decrement(in.ProductID, in.LocationID, key, -in.Delta, in.ActorID); err != nil {
				return err
			}
			mov.FromLocationID = &in.LocationID
			mov.Quantity = -in.Delta
		}
		return movementRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	res := &OperationResult{Moved: mov.Quantity, MovementsCount: 1, Movements: []*entity.StockMovement{mov}}
	uc.notify(ctx, res)
	return res, nil
}

// resolveProduct valida que el producto exista (colaborador de resolución de identidad).
func (uc *StockOperationsUseCase) resolveProduct(id int64) error {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrInvalidReference
	}
	return nil
}

// resolveLocation valida que el depósito exista.
func (uc *StockOperationsUseCase) resolveLocation(id int64) error {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrInvalidReference
	}
	return nil
}

// notify publica los movimientos confirmados. Best effort: el error se descarta
// porque la operación ya fue confirmada.
func (uc *StockOperationsUseCase) notify(ctx context.Context, res *OperationResult) {
	if uc.notifier == nil || len(res.Movements) == 0 {
		return
	}
	_ = uc.notifier.PublishMovements(ctx, res.Movements)
}

// toBatchStocks proyecta registros bloqueados a la entrada del asignador FEFO.
func toBatchStocks(rows []*entity.InventoryRecord) []invdomain.BatchStock {
	out := make([]invdomain.BatchStock, 0, len(rows))
	for _, r := range rows {
		out = append(out, invdomain.BatchStock{Key: r.Batch, Quantity: r.Quantity})
	}
	return out
}
