package entity

import "time"

// StorageLocation depósito o ubicación de almacenamiento.
type StorageLocation struct {
	ID        int64
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
