package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/repository"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	topProductsLimit    = 3
	reviewWriteAttempts = 3
)

type ProductServiceImpl struct {
	repo     repository.ProductRepository
	pageSize int
}

func CreateProductService(repo repository.ProductRepository, config *config.Config) ProductService {
	return &ProductServiceImpl{repo: repo, pageSize: config.PageSize}
}

func (s *ProductServiceImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (resp dto.ProductListResponse, err error) {
	filter.Keyword = strings.TrimSpace(filter.Keyword)
	filter.Normalize(s.pageSize)

	products, err := s.repo.GetProducts(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.repo.CountProducts(ctx, filter)
	if err != nil {
		return
	}

	if products == nil {
		products = []domain.Product{}
	}

	meta := pkgdto.CreatePaginationMetadata(count, filter.Page, filter.Limit)
	resp = dto.ProductListResponse{
		Products: products,
		Page:     meta.Page,
		Pages:    meta.Pages,
		Total:    count,
	}

	return
}

func (s *ProductServiceImpl) GetTopProducts(ctx context.Context) (resp []domain.Product, err error) {
	return s.repo.GetTopProducts(ctx, topProductsLimit)
}

func (s *ProductServiceImpl) GetProductByID(ctx context.Context, id string) (resp domain.Product, err error) {
	return s.repo.GetProductByID(ctx, id)
}

func (s *ProductServiceImpl) CreateSampleProduct(ctx context.Context, user domain.User) (resp domain.Product, err error) {
	product := domain.Product{
		User:         user.ID,
		Name:         "Sample name",
		Image:        "/images/sample.jpg",
		Brand:        domain.DefaultBrand,
		Category:     domain.DefaultCategory,
		Description:  "Sample description",
		Condition:    domain.ConditionExcellent,
		Price:        0,
		CountInStock: 0,
		ModelName:    "Pixel 9",
		Storage:      "128GB",
		Color:        "Obsidian",
	}
	product.Normalize()

	product.ID, err = s.repo.AddProduct(ctx, product)
	if err != nil {
		return
	}

	return product, nil
}

func (s *ProductServiceImpl) UpdateProduct(ctx context.Context, req dto.ProductRequest) (resp domain.Product, err error) {
	product, err := s.repo.GetProductByID(ctx, req.ID)
	if err != nil {
		return
	}

	product.Name = req.Name
	product.Price = req.Price
	product.Image = req.Image
	product.Brand = req.Brand
	product.Category = req.Category
	product.Description = req.Description
	product.CountInStock = req.CountInStock
	product.ModelName = req.ModelName
	product.Storage = req.Storage
	product.Color = req.Color
	product.Condition = strings.ToUpper(req.Condition)
	product.Normalize()

	if !product.Validate() {
		return resp, errs.ErrInvalidProduct
	}

	if err = s.repo.UpdateProduct(ctx, product); err != nil {
		return
	}

	return product, nil
}

func (s *ProductServiceImpl) DeleteProduct(ctx context.Context, id string) (err error) {
	product, err := s.repo.GetProductByID(ctx, id)
	if err != nil {
		return
	}

	return s.repo.DeleteProduct(ctx, product.ID)
}

// AddReview folds the new rating into the existing aggregate, which for
// seeded products includes reviews that are not stored individually. The
// write is conditional on numReviews, so a concurrent review forces a
// re-read instead of being lost from the aggregate.
func (s *ProductServiceImpl) AddReview(ctx context.Context, user domain.User, req dto.ReviewRequest) (err error) {
	req.Comment = strings.TrimSpace(req.Comment)
	if req.Rating < 1 || req.Rating > 5 || req.Comment == "" {
		return errs.ErrInvalidReview
	}

	now := time.Now()
	review := domain.Review{
		ID:        primitive.NewObjectID(),
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		User:      user.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for attempt := 0; attempt < reviewWriteAttempts; attempt++ {
		product, err := s.repo.GetProductByID(ctx, req.ProductID)
		if err != nil {
			return err
		}

		if product.HasReviewFrom(user.ID) {
			return errs.ErrProductAlreadyReviewed
		}

		rating, numReviews := AggregateRating(product.Rating, product.NumReviews, req.Rating)

		err = s.repo.AddReview(ctx, product.ID, review, product.NumReviews, rating, numReviews)
		if !errors.Is(err, errs.ErrConflict) {
			return err
		}

		log.Ctx(ctx).Debug().Str("component", "AddReview").Str("product_id", product.ID.Hex()).Int("attempt", attempt+1).Msg("review count changed, retrying")
	}

	return errs.ErrConflict
}

func AggregateRating(current float64, count int, rating int) (float64, int) {
	if count < 0 {
		count = 0
	}

	total := decimal.NewFromFloat(current).Mul(decimal.NewFromInt(int64(count))).Add(decimal.NewFromInt(int64(rating)))
	newCount := count + 1

	return total.Div(decimal.NewFromInt(int64(newCount))).Round(2).InexactFloat64(), newCount
}
