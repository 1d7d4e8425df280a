package inventory

import (
	"sort"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
)

// BatchStock es la disponibilidad de un tramo de lote en el origen.
type BatchStock struct {
	Key      entity.BatchKey
	Quantity int
}

// Allocation es un tramo del plan: cuánto tomar de cada lote.
type Allocation struct {
	Key  entity.BatchKey
	Take int
}

// Allocate calcula el plan de consumo FEFO (first-expired, first-out) sobre la
// lista de disponibilidad, que debe venir ordenada por vencimiento ascendente
// (sin vencimiento al final). Servicio de dominio puro: sin efectos, testeable
// con listas sintéticas.
//
// Recorre los lotes tomando min(cantidad, restante) hasta cubrir lo pedido.
// Si la lista se agota con restante > 0 devuelve InsufficientStockError y
// ningún plan parcial.
func Allocate(available []BatchStock, requested int) ([]Allocation, error) {
	if requested <= 0 {
		return nil, domain.ErrInvalidOperation
	}

	remaining := requested
	plan := make([]Allocation, 0, len(available))
	for _, batch := range available {
		if remaining == 0 {
			break
		}
		if batch.Quantity <= 0 {
			continue
		}
		take := batch.Quantity
		if take > remaining {
			take = remaining
		}
		plan = append(plan, Allocation{Key: batch.Key, Take: take})
		remaining -= take
	}
	if remaining > 0 {
		return nil, &domain.InsufficientStockError{
			Available: requested - remaining,
			Requested: requested,
		}
	}
	return plan, nil
}

// TotalAvailable suma la disponibilidad de todos los tramos.
func TotalAvailable(available []BatchStock) int {
	total := 0
	for _, b := range available {
		total += b.Quantity
	}
	return total
}

// SortFEFO ordena in place por vencimiento ascendente; los tramos sin
// vencimiento van al final (vida útil infinita). Desempate por código de lote
// ascendente, con "sin lote" al final, para que el plan sea determinista.
// El adaptador SQL produce este mismo orden con ORDER BY; este helper sirve
// para fuentes en memoria.
func SortFEFO(batches []BatchStock) {
	sort.SliceStable(batches, func(i, j int) bool {
		return lessFEFO(batches[i].Key, batches[j].Key)
	})
}

func lessFEFO(a, b entity.BatchKey) bool {
	switch {
	case a.ExpiryDate == nil && b.ExpiryDate != nil:
		return false
	case a.ExpiryDate != nil && b.ExpiryDate == nil:
		return true
	case a.ExpiryDate != nil && b.ExpiryDate != nil:
		if !a.ExpiryDate.Equal(*b.ExpiryDate) {
			return a.ExpiryDate.Before(*b.ExpiryDate)
		}
	}
	switch {
	case a.BatchCode == nil && b.BatchCode != nil:
		return false
	case a.BatchCode != nil && b.BatchCode == nil:
		return true
	case a.BatchCode != nil && b.BatchCode != nil:
		return *a.BatchCode < *b.BatchCode
	}
	return false
}
