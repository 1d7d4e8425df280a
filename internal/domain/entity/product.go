package entity

import "time"

// Product identidad mínima de producto. La resolución de identidad es un
// colaborador externo del motor de inventario: aquí solo se necesita que el
// id exista y esté activo.
type Product struct {
	ID        int64
	Code      string
	Name      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
