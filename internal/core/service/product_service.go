package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/myapp/catalog-api/internal/core/domain"
	"github.com/myapp/catalog-api/internal/core/ports"
)

const resourceProduct = "product"

// ProductService enforces the product invariants: the last product cannot be
// deleted and a category reference must name an existing category.
type ProductService struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	audit      ports.AuditRecorder
	logger     zerolog.Logger
}

func NewProductService(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *ProductService {
	if audit == nil {
		audit = NopAuditRecorder{}
	}
	return &ProductService{
		products:   products,
		categories: categories,
		audit:      audit,
		logger:     logger,
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *ProductService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx)
}

func (s *ProductService) CategoryOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	return s.categories.Options(ctx)
}

func (s *ProductService) Create(ctx context.Context, in ports.ProductInput) (*domain.Product, error) {
	title, description, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	created, err := s.products.Create(ctx, title, description, in.CategoryID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, resourceProduct, domain.AuditCreate, created.ID)
	s.logger.Info().Int64("product_id", created.ID).Msg("product created")
	return created, nil
}

func (s *ProductService) Update(ctx context.Context, id int64, in ports.ProductInput) (*domain.Product, error) {
	title, description, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}

	updated, err := s.products.Update(ctx, id, title, description, in.CategoryID)
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, resourceProduct, domain.AuditUpdate, updated.ID)
	return updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id int64) (*domain.Product, error) {
	if _, err := s.products.FindByID(ctx, id); err != nil {
		return nil, err
	}
	if err := s.checkFloor(ctx); err != nil {
		return nil, err
	}

	deleted, err := s.products.DeleteGuarded(ctx, id)
	if errors.Is(err, domain.ErrProductNotFound) {
		if _, ferr := s.products.FindByID(ctx, id); ferr != nil {
			return nil, ferr
		}
		if cerr := s.checkFloor(ctx); cerr != nil {
			return nil, cerr
		}
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, resourceProduct, domain.AuditDelete, deleted.ID)
	s.logger.Info().Int64("product_id", deleted.ID).Msg("product deleted")
	return deleted, nil
}

func (s *ProductService) checkFloor(ctx context.Context) error {
	total, err := s.products.Count(ctx)
	if err != nil {
		return err
	}
	if total <= 1 {
		return domain.ErrLastProduct
	}
	return nil
}

func (s *ProductService) validate(ctx context.Context, in ports.ProductInput) (string, string, error) {
	title := strings.TrimSpace(in.Title)
	description := strings.TrimSpace(in.Description)
	if title == "" {
		return "", "", domain.InvalidInput("title is required")
	}
	if description == "" {
		return "", "", domain.InvalidInput("description is required")
	}

	if in.CategoryID != nil {
		exists, err := s.categories.Exists(ctx, *in.CategoryID)
		if err != nil {
			return "", "", err
		}
		if !exists {
			return "", "", domain.ErrUnknownCategory
		}
	}
	return title, description, nil
}
