package dto

import "time"

// ReceiptRequest body para POST /api/inventory/purchase-entry.
// batch_code y expiry_date son opcionales.
type ReceiptRequest struct {
	ProductID    int64      `json:"product_id"`
	ToLocationID int64      `json:"to_location_id"`
	Quantity     int        `json:"quantity"`
	BatchCode    *string    `json:"batch_code,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Description  string     `json:"description,omitempty"`
	ReferenceTyp string     `json:"reference_type,omitempty"`
	ReferenceID  int64      `json:"reference_id,omitempty"`
}

// ExitSaleRequest body para POST /api/inventory/exit-sale.
type ExitSaleRequest struct {
	ProductID      int64  `json:"product_id"`
	FromLocationID int64  `json:"from_location_id"`
	Quantity       int    `json:"quantity"`
	Description    string `json:"description,omitempty"`
	ReferenceTyp   string `json:"reference_type,omitempty"`
	ReferenceID    int64  `json:"reference_id,omitempty"`
}

// TransferRequest body para POST /api/inventory/transfer.
type TransferRequest struct {
	ProductID      int64  `json:"product_id"`
	FromLocationID int64  `json:"from_location_id"`
	ToLocationID   int64  `json:"to_location_id"`
	Quantity       int    `json:"quantity"`
	Description    string `json:"description,omitempty"`
	ReferenceTyp   string `json:"reference_type,omitempty"`
	ReferenceID    int64  `json:"reference_id,omitempty"`
}

// ReturnRequest body para POST /api/inventory/return-entry.
// batch_code y expiry_date se informan juntos o ninguno.
type ReturnRequest struct {
	ProductID    int64      `json:"product_id"`
	ToLocationID int64      `json:"to_location_id"`
	Quantity     int        `json:"quantity"`
	BatchCode    *string    `json:"batch_code,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Description  string     `json:"description,omitempty"`
	ReferenceTyp string     `json:"reference_type,omitempty"`
	ReferenceID  int64      `json:"reference_id,omitempty"`
}

// AdjustRequest body para POST /api/inventory/adjustment.
// delta con signo: positivo agrega, negativo quita.
type AdjustRequest struct {
	ProductID    int64      `json:"product_id"`
	LocationID   int64      `json:"location_id"`
	Delta        int        `json:"delta"`
	BatchCode    *string    `json:"batch_code,omitempty"`
	ExpiryDate   *time.Time `json:"expiry_date,omitempty"`
	Description  string     `json:"description,omitempty"`
	ReferenceTyp string     `json:"reference_type,omitempty"`
	ReferenceID  int64      `json:"reference_id,omitempty"`
}

// MovementDTO representación de un movimiento en respuestas.
type MovementDTO struct {
	ID             string     `json:"id"`
	ProductID      int64      `json:"product_id"`
	BatchCode      *string    `json:"batch_code,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	FromLocationID *int64     `json:"from_location_id,omitempty"`
	ToLocationID   *int64     `json:"to_location_id,omitempty"`
	Quantity       int        `json:"quantity"`
	Reason         string     `json:"reason"`
	Description    string     `json:"description,omitempty"`
	ReferenceTyp   string     `json:"reference_type,omitempty"`
	ReferenceID    int64      `json:"reference_id,omitempty"`
	OccurredAt     time.Time  `json:"occurred_at"`
	CreatedBy      string     `json:"created_by,omitempty"`
}

// OperationResponse resultado de una operación de inventario confirmada.
type OperationResponse struct {
	Moved          int           `json:"moved"`
	MovementsCount int           `json:"movements_count"`
	Movements      []MovementDTO `json:"movements"`
}

// SnapshotDTO fila materializada de reportes.
type SnapshotDTO struct {
	ProductID      int64      `json:"product_id"`
	LocationID     int64      `json:"location_id"`
	BatchCode      *string    `json:"batch_code,omitempty"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	Quantity       int        `json:"quantity"`
	LastMovementAt *time.Time `json:"last_movement_at,omitempty"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// InventoryRecordDTO registro de stock en respuestas de consulta.
type InventoryRecordDTO struct {
	ProductID  int64      `json:"product_id"`
	LocationID int64      `json:"location_id"`
	BatchCode  *string    `json:"batch_code,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	Quantity   int        `json:"quantity"`
}
