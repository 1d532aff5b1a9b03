package usecase

import (
	"context"
	"fmt"

	"fleet-rental/internal/data/repository"
	"fleet-rental/internal/dto/request"
	"fleet-rental/internal/dto/response"
	"fleet-rental/internal/rental"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error)
	Capacity(ctx context.Context, productID string, companyID uuid.UUID) (*response.CapacityResponse, error)
}

type productService struct {
	repo     *repository.Repository
	capacity CapacityService
	log      *zap.Logger
}

func NewProductService(repo *repository.Repository, capacity CapacityService, log *zap.Logger) ProductService {
	return &productService{
		repo:     repo,
		capacity: capacity,
		log:      log.With(zap.String("service", "product")),
	}
}

func (s *productService) List(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.ProductResponse], error) {
	products, err := s.repo.Product.FindTracked(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list products", zap.Error(err))
		return nil, fmt.Errorf("list products: %w", err)
	}

	total, err := s.repo.Product.CountTracked(ctx)
	if err != nil {
		return nil, fmt.Errorf("count products: %w", err)
	}

	items := make([]response.ProductResponse, len(products))
	for i, product := range products {
		items[i] = response.ProductToResponse(product)
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total), nil
}

func (s *productService) Capacity(ctx context.Context, productID string, companyID uuid.UUID) (*response.CapacityResponse, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return nil, fmt.Errorf("invalid product ID format %s: %w", productID, err)
	}

	product, err := s.repo.Product.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	if product == nil {
		return nil, rental.ErrNotFound
	}

	capacity, err := s.capacity.Resolve(ctx, id, companyID)
	if err != nil {
		return nil, err
	}

	return &response.CapacityResponse{
		ProductID:     product.ID.String(),
		FleetCapacity: capacity,
	}, nil
}
