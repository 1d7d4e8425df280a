package repository

import "github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"

// StorageLocationRepository define el puerto de persistencia para depósitos.
type StorageLocationRepository interface {
	Create(location *entity.StorageLocation) error
	GetByID(id int64) (*entity.StorageLocation, error)
	List(limit, offset int) ([]*entity.StorageLocation, error)
}
