package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/guille-nat/Api-Compras-sub000/internal/application/dto"
	"github.com/guille-nat/Api-Compras-sub000/internal/application/inventory"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
)

// InventoryHandler maneja las peticiones HTTP del motor de inventario (protegido).
type InventoryHandler struct {
	ops      *inventory.StockOperationsUseCase
	queries  *inventory.StockQueryUseCase
	snapshot *inventory.SnapshotRebuildUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ops *inventory.StockOperationsUseCase,
	queries *inventory.StockQueryUseCase,
	snapshot *inventory.SnapshotRebuildUseCase,
) *InventoryHandler {
	return &InventoryHandler{ops: ops, queries: queries, snapshot: snapshot}
}

// PurchaseEntry registra una entrada por compra.
// POST /api/inventory/purchase-entry
func (h *InventoryHandler) PurchaseEntry(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ops.Receipt(c.Context(), inventory.ReceiptInput{
		ProductID:    in.ProductID,
		ToLocationID: in.ToLocationID,
		Quantity:     in.Quantity,
		BatchCode:    in.BatchCode,
		ExpiryDate:   in.ExpiryDate,
		Description:  in.Description,
		Reference:    entity.Reference{Type: in.ReferenceTyp, ID: in.ReferenceID},
		ActorID:      GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(res))
}

// ExitSale registra una salida por venta (consumo FEFO).
// POST /api/inventory/exit-sale
func (h *InventoryHandler) ExitSale(c *fiber.Ctx) error {
	var in dto.ExitSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ops.ExitSale(c.Context(), inventory.ExitSaleInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		Quantity:       in.Quantity,
		Description:    in.Description,
		Reference:      entity.Reference{Type: in.ReferenceTyp, ID: in.ReferenceID},
		ActorID:        GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(res))
}

// Transfer traslada stock entre depósitos.
// POST /api/inventory/transfer
func (h *InventoryHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ops.Transfer(c.Context(), inventory.TransferInput{
		ProductID:      in.ProductID,
		FromLocationID: in.FromLocationID,
		ToLocationID:   in.ToLocationID,
		Quantity:       in.Quantity,
		Description:    in.Description,
		Reference:      entity.Reference{Type: in.ReferenceTyp, ID: in.ReferenceID},
		ActorID:        GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(res))
}

// ReturnEntry registra un reingreso por devolución.
// POST /api/inventory/return-entry
func (h *InventoryHandler) ReturnEntry(c *fiber.Ctx) error {
	var in dto.ReturnRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ops.Return(c.Context(), inventory.ReturnInput{
		ProductID:    in.ProductID,
		ToLocationID: in.ToLocationID,
		Quantity:     in.Quantity,
		BatchCode:    in.BatchCode,
		ExpiryDate:   in.ExpiryDate,
		Description:  in.Description,
		Reference:    entity.Reference{Type: in.ReferenceTyp, ID: in.ReferenceID},
		ActorID:      GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(res))
}

// Adjustment aplica un ajuste manual con delta con signo.
// POST /api/inventory/adjustment
func (h *InventoryHandler) Adjustment(c *fiber.Ctx) error {
	var in dto.AdjustRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	res, err := h.ops.Adjust(c.Context(), inventory.AdjustInput{
		ProductID:   in.ProductID,
		LocationID:  in.LocationID,
		Delta:       in.Delta,
		BatchCode:   in.BatchCode,
		ExpiryDate:  in.ExpiryDate,
		Description: in.Description,
		Reference:   entity.Reference{Type: in.ReferenceTyp, ID: in.ReferenceID},
		ActorID:     GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toOperationResponse(res))
}

// Records lista la disponibilidad FEFO de un producto en un depósito.
// GET /api/inventory/records?product_id=&location_id=
func (h *InventoryHandler) Records(c *fiber.Ctx) error {
	productID := c.QueryInt("product_id")
	locationID := c.QueryInt("location_id")
	if productID <= 0 || locationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y location_id son obligatorios"})
	}
	records, err := h.queries.Available(c.Context(), int64(productID), int64(locationID))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.InventoryRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, dto.InventoryRecordDTO{
			ProductID:  rec.ProductID,
			LocationID: rec.LocationID,
			BatchCode:  rec.Batch.BatchCode,
			ExpiryDate: rec.Batch.ExpiryDate,
			Quantity:   rec.Quantity,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "records": out})
}

// TotalStock suma el stock de un producto (depósito opcional).
// GET /api/inventory/stock/total?product_id=&location_id=
func (h *InventoryHandler) TotalStock(c *fiber.Ctx) error {
	productID := c.QueryInt("product_id")
	if productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es obligatorio"})
	}
	var locationID *int64
	if v := c.QueryInt("location_id"); v > 0 {
		id := int64(v)
		locationID = &id
	}
	total, err := h.queries.TotalStock(c.Context(), int64(productID), locationID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"product_id": productID, "total": total})
}

// Movements lista el libro de movimientos de un producto.
// GET /api/inventory/movements?product_id=&limit=&offset=
func (h *InventoryHandler) Movements(c *fiber.Ctx) error {
	productID := c.QueryInt("product_id")
	if productID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id es obligatorio"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.queries.MovementsByProduct(c.Context(), int64(productID), nil, nil, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// MovementsByLocation lista los movimientos que tocaron un depósito.
// GET /api/inventory/movements/by-location?location_id=&limit=&offset=
func (h *InventoryHandler) MovementsByLocation(c *fiber.Ctx) error {
	locationID := c.QueryInt("location_id")
	if locationID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location_id es obligatorio"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	movements, err := h.queries.MovementsByLocation(c.Context(), int64(locationID), nil, nil, page.Limit, page.Offset)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, toMovementDTO(m))
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}

// Snapshots lista la materialización de reportes (última reconstrucción).
// GET /api/inventory/snapshot?product_id=&location_id=
func (h *InventoryHandler) Snapshots(c *fiber.Ctx) error {
	var productID, locationID *int64
	if v := c.QueryInt("product_id"); v > 0 {
		id := int64(v)
		productID = &id
	}
	if v := c.QueryInt("location_id"); v > 0 {
		id := int64(v)
		locationID = &id
	}
	snaps, err := h.queries.Snapshots(c.Context(), productID, locationID)
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.SnapshotDTO, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, dto.SnapshotDTO{
			ProductID:      snap.ProductID,
			LocationID:     snap.LocationID,
			BatchCode:      snap.Batch.BatchCode,
			ExpiryDate:     snap.Batch.ExpiryDate,
			Quantity:       snap.Quantity,
			LastMovementAt: snap.LastMovementAt,
			UpdatedAt:      snap.UpdatedAt,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "snapshots": out})
}

// RebuildSnapshot reconstruye la materialización de reportes.
// POST /api/inventory/snapshot/rebuild?product_id=&location_id=
func (h *InventoryHandler) RebuildSnapshot(c *fiber.Ctx) error {
	var productID, locationID *int64
	if v := c.QueryInt("product_id"); v > 0 {
		id := int64(v)
		productID = &id
	}
	if v := c.QueryInt("location_id"); v > 0 {
		id := int64(v)
		locationID = &id
	}
	res, err := h.snapshot.Rebuild(c.Context(), productID, locationID)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"rows": res.Rows, "rebuilt_at": res.RebuiltAt.Format(time.RFC3339)})
}

// mapDomainError traduce errores de dominio a respuestas HTTP.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidOperation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_OPERATION", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidReference):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "INVALID_REFERENCE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONCURRENCY_CONFLICT", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func toMovementDTO(m *entity.StockMovement) dto.MovementDTO {
	return dto.MovementDTO{
		ID:             m.ID,
		ProductID:      m.ProductID,
		BatchCode:      m.Batch.BatchCode,
		ExpiryDate:     m.Batch.ExpiryDate,
		FromLocationID: m.FromLocationID,
		ToLocationID:   m.ToLocationID,
		Quantity:       m.Quantity,
		Reason:         string(m.Reason),
		Description:    m.Description,
		ReferenceTyp:   m.Reference.Type,
		ReferenceID:    m.Reference.ID,
		OccurredAt:     m.OccurredAt,
		CreatedBy:      m.CreatedBy,
	}
}

func toOperationResponse(res *inventory.OperationResult) dto.OperationResponse {
	out := dto.OperationResponse{
		Moved:          res.Moved,
		MovementsCount: res.MovementsCount,
		Movements:      make([]dto.MovementDTO, 0, len(res.Movements)),
	}
	for _, m := range res.Movements {
		out.Movements = append(out.Movements, toMovementDTO(m))
	}
	return out
}
