package usecase

import (
	"strings"
	"time"

	"github.com/guille-nat/Api-Compras-sub000/internal/application/dto"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/entity"
	"github.com/guille-nat/Api-Compras-sub000/internal/domain/repository"
)

// StorageLocationUseCase casos de uso CRUD para depósitos.
type StorageLocationUseCase struct {
	repo repository.StorageLocationRepository
}

// NewStorageLocationUseCase construye el caso de uso.
func NewStorageLocationUseCase(repo repository.StorageLocationRepository) *StorageLocationUseCase {
	return &StorageLocationUseCase{repo: repo}
}

// Create crea un depósito activo.
func (uc *StorageLocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidOperation
	}
	now := time.Now()
	location := &entity.StorageLocation{
		Name:      name,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene un depósito por ID. Devuelve nil si no existe.
func (uc *StorageLocationUseCase) GetByID(id int64) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	return toLocationResponse(location), nil
}

// List lista depósitos con paginación.
func (uc *StorageLocationUseCase) List(limit, offset int) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

func toLocationResponse(l *entity.StorageLocation) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		IsActive:  l.IsActive,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
