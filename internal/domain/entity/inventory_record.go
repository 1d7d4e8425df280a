package entity

import (
	"strings"
	"time"
)

// BatchKey identifica el tramo de lote de un registro de inventario.
// BatchCode nil significa "sin lote"; ExpiryDate nil significa "no vence".
// La codificación con sentinelas (string literal y fecha lejana) es un detalle
// del adaptador de persistencia, no de este tipo.
type BatchKey struct {
	BatchCode  *string
	ExpiryDate *time.Time
}

// Equal compara dos claves de lote campo a campo.
func (k BatchKey) Equal(other BatchKey) bool {
	if (k.BatchCode == nil) != (other.BatchCode == nil) {
		return false
	}
	if k.BatchCode != nil && *k.BatchCode != *other.BatchCode {
		return false
	}
	if (k.ExpiryDate == nil) != (other.ExpiryDate == nil) {
		return false
	}
	if k.ExpiryDate != nil && !k.ExpiryDate.Equal(*other.ExpiryDate) {
		return false
	}
	return true
}

// NormalizeBatchCode limpia un código de lote: trim + mayúsculas.
// Cadena vacía (o solo espacios) equivale a "sin lote" y devuelve nil.
func NormalizeBatchCode(code *string) *string {
	if code == nil {
		return nil
	}
	norm := strings.ToUpper(strings.TrimSpace(*code))
	if norm == "" {
		return nil
	}
	return &norm
}

// InventoryRecord representa la cantidad actual de un producto en un depósito,
// por lote y fecha de vencimiento. La combinación
// (product, location, batch_code, expiry_date) es única.
// Un registro nunca persiste con cantidad 0: se elimina.
type InventoryRecord struct {
	ID         int64
	ProductID  int64
	LocationID int64
	Batch      BatchKey
	Quantity   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
	UpdatedBy  string
}
