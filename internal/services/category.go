package services

import (
	"context"

	"github.com/aarondl/null/v8"

	"gearguard/internal/authz"
	"gearguard/internal/dto"
	"gearguard/internal/entities"
	"gearguard/internal/repositories"
)

type CategoryServiceInterface interface {
	Create(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error)
	List(ctx context.Context) ([]entities.EquipmentCategory, error)
	Update(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*entities.EquipmentCategory, error)
	Delete(ctx context.Context, id uint64) error
}

type CategoryService struct {
	categoryRepo repositories.CategoryRepositoryInterface
	userRepo     repositories.UserRepositoryInterface
}

func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
) CategoryServiceInterface {
	return &CategoryService{categoryRepo: categoryRepo, userRepo: userRepo}
}

func (s *CategoryService) Create(ctx context.Context, payload dto.CreateCategoryDTO) (*entities.EquipmentCategory, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageCategories); err != nil {
		return nil, err
	}
	return s.categoryRepo.Create(ctx, payload.Name, payload.Company,
		null.Uint64FromPtr(payload.ResponsibleUserID))
}

func (s *CategoryService) List(ctx context.Context) ([]entities.EquipmentCategory, error) {
	if _, err := loadActor(ctx, s.userRepo); err != nil {
		return nil, err
	}
	return s.categoryRepo.ListAll(ctx)
}

func (s *CategoryService) Update(ctx context.Context, id uint64, payload dto.UpdateCategoryDTO) (*entities.EquipmentCategory, error) {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return nil, err
	}
	if err := requireCapability(actor, authz.ManageCategories); err != nil {
		return nil, err
	}

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.categoryRepo.Update(ctx, id, payload.Name, payload.Company,
		null.Uint64FromPtr(payload.ResponsibleUserID))
}

func (s *CategoryService) Delete(ctx context.Context, id uint64) error {
	actor, err := loadActor(ctx, s.userRepo)
	if err != nil {
		return err
	}
	if err := requireCapability(actor, authz.ManageCategories); err != nil {
		return err
	}
	return s.categoryRepo.Delete(ctx, id)
}
