package postgres

import (
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
)

// Sentinelas de la clave compuesta en inventory_records y stock_snapshots:
// la unicidad relacional con NULL no funciona, así que "sin lote" y "no vence"
// se codifican con estos valores al escribir y se decodifican al leer.
// Detalle del adaptador: el dominio solo ve opcionales verdaderos.
const sentinelBatchCode = "__NULL__"

var sentinelExpiryDate = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

// encodeBatchKey codifica la clave para columnas NOT NULL con sentinela.
func encodeBatchKey(key entity.BatchKey) (batchCode string, expiryDate time.Time) {
	batchCode = sentinelBatchCode
	if key.BatchCode != nil {
		batchCode = *key.BatchCode
	}
	expiryDate = sentinelExpiryDate
	if key.ExpiryDate != nil {
		expiryDate = *key.ExpiryDate
	}
	return batchCode, expiryDate
}

// decodeBatchKey invierte encodeBatchKey.
func decodeBatchKey(batchCode string, expiryDate time.Time) entity.BatchKey {
	var key entity.BatchKey
	if batchCode != sentinelBatchCode {
		code := batchCode
		key.BatchCode = &code
	}
	if !expiryDate.Equal(sentinelExpiryDate) {
		d := expiryDate
		key.ExpiryDate = &d
	}
	return key
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isSerializationFailure detecta fallas de serialización o deadlock
// (40001, 40P01): otra operación intervino entre el plan y el commit.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
