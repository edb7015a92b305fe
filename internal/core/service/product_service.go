package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rl1809/grocery-shop/internal/core/domain"
	"github.com/rl1809/grocery-shop/internal/port"
)

// ErrNotOwner rejects product updates by an admin other than the creator.
var ErrNotOwner = errors.New("not the owner of this product")

type ProductService struct {
	products port.ProductRepository
	logger   *zap.Logger
}

func NewProductService(products port.ProductRepository, logger *zap.Logger) *ProductService {
	return &ProductService{products: products, logger: logger}
}

func (s *ProductService) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if _, err := s.products.CreateProduct(ctx, product); err != nil {
		s.logger.Error("failed to create product", zap.Error(err))
		return nil, fmt.Errorf("create product: %w", err)
	}
	return product, nil
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.GetProduct(ctx, id)
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.ListProducts(ctx)
}

func (s *ProductService) ListByAdmin(ctx context.Context, adminID int64) ([]domain.Product, error) {
	return s.products.ListProductsByAdmin(ctx, adminID)
}

// Update applies the non-zero fields of patch to the product. Only the admin
// who created the product may update it.
func (s *ProductService) Update(ctx context.Context, actorID, id int64, patch *domain.Product) (*domain.Product, error) {
	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.CreatedBy != actorID {
		return nil, ErrNotOwner
	}

	if patch.Name != "" {
		existing.Name = patch.Name
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.Price > 0 {
		existing.Price = patch.Price
	}
	if patch.ImageURL != "" {
		existing.ImageURL = patch.ImageURL
	}

	if err := s.products.UpdateProduct(ctx, existing); err != nil {
		s.logger.Error("failed to update product", zap.Int64("product_id", id), zap.Error(err))
		return nil, fmt.Errorf("update product: %w", err)
	}
	return existing, nil
}

func (s *ProductService) Delete(ctx context.Context, actorID, id int64) error {
	existing, err := s.products.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != actorID {
		return ErrNotOwner
	}
	return s.products.DeleteProduct(ctx, id)
}
