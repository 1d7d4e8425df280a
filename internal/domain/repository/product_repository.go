package repository

import "github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos (DIP).
// Para el motor de inventario actúa como colaborador de resolución de
// identidad: GetByID devuelve nil si el id no resuelve.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id int64) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
}
