package entity

import "time"

// MovementReason es la taxonomía cerrada de motivos de movimiento.
// Inventory Operations es el único productor; los consumidores deben
// hacer switch exhaustivo sobre estos valores.
type MovementReason string

const (
	ReasonReceipt    MovementReason = "RECEIPT"
	ReasonExitSale   MovementReason = "EXIT_SALE"
	ReasonTransfer   MovementReason = "TRANSFER"
	ReasonReturn     MovementReason = "RETURN"
	ReasonAdjustment MovementReason = "ADJUSTMENT"
)

// IsValid indica si el motivo pertenece a la taxonomía.
func (r MovementReason) IsValid() bool {
	switch r {
	case ReasonReceipt, ReasonExitSale, ReasonTransfer, ReasonReturn, ReasonAdjustment:
		return true
	}
	return false
}

// Tipos de referencia sugeridos para el documento de negocio que origina el movimiento.
// Se almacenan tal cual los envía el caller.
const (
	RefTypePurchase = "PURCHASE"
	RefTypePayment  = "PAYMENT"
	RefTypeManual   = "MANUAL"
	RefTypeSale     = "SALE"
)

// Reference apunta al documento de negocio que causó el movimiento
// (compra, venta, ajuste manual). Opaco para este núcleo.
type Reference struct {
	Type string
	ID   int64
}

// StockMovement es un registro inmutable del libro de movimientos: un tramo
// de lote efectivamente mutado por una operación. Se crea una sola vez dentro
// de la transacción de la operación y nunca se actualiza ni borra.
type StockMovement struct {
	ID             string
	ProductID      int64
	Batch          BatchKey
	FromLocationID *int64
	ToLocationID   *int64
	Quantity       int
	Reason         MovementReason
	Description    string
	Reference      Reference
	OccurredAt     time.Time
	CreatedBy      string
}
