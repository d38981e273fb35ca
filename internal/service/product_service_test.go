package service

import (
	"context"
	"testing"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAggregateRating(t *testing.T) {
	rating, count := AggregateRating(0, 0, 4)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 1, count)

	rating, count = AggregateRating(4.5, 10, 1)
	assert.Equal(t, 4.18, rating)
	assert.Equal(t, 11, count)

	rating, count = AggregateRating(5, 2, 4)
	assert.Equal(t, 4.67, rating)
	assert.Equal(t, 3, count)
}

func TestGetProducts(t *testing.T) {
	products := GenerateCatalog(primitive.NewObjectID(), fixedRand())
	repo := newFakeProductRepo()
	_, err := repo.AddProducts(context.Background(), products)
	require.NoError(t, err)

	svc := CreateProductService(repo, testConfig())

	resp, err := svc.GetProducts(context.Background(), pkgdto.Filter{Keyword: "pixel 6a"})
	require.NoError(t, err)
	assert.Equal(t, int64(9), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 1, resp.Pages)
	assert.Len(t, resp.Products, 9)

	resp, err = svc.GetProducts(context.Background(), pkgdto.Filter{Page: 2, ModelName: "Pixel 9 Pro XL"})
	require.NoError(t, err)
	assert.Equal(t, int64(24), resp.Total)
	assert.Equal(t, 2, resp.Pages)
	assert.Len(t, resp.Products, 12)

	resp, err = svc.GetProducts(context.Background(), pkgdto.Filter{Limit: 5000, Condition: "C"})
	require.NoError(t, err)
	assert.Len(t, resp.Products, 12)

	resp, err = svc.GetProducts(context.Background(), pkgdto.Filter{Keyword: "nothing matches"})
	require.NoError(t, err)
	assert.NotNil(t, resp.Products)
	assert.Equal(t, 0, resp.Pages)
}

func TestProductAdminOperations(t *testing.T) {
	ctx := context.Background()
	admin := domain.User{ID: primitive.NewObjectID(), IsAdmin: true}
	repo := newFakeProductRepo()
	svc := CreateProductService(repo, testConfig())

	sample, err := svc.CreateSampleProduct(ctx, admin)
	require.NoError(t, err)
	assert.Equal(t, "Sample name", sample.Name)
	assert.Equal(t, "Pixel 9", sample.ModelName)
	assert.Equal(t, domain.ConditionDescription("A"), sample.ConditionDescription)
	assert.Equal(t, admin.ID, sample.User)

	req := dto.ProductRequest{
		ID:           sample.ID.Hex(),
		Name:         "GrapheneOS Pixel 8a 128GB Aloe - Fair",
		Price:        349,
		Image:        "/images/pixel-8a-aloe.jpg",
		Description:  "Refurbished",
		CountInStock: 2,
		ModelName:    "Pixel 8a",
		Storage:      "128GB",
		Color:        "Aloe",
		Condition:    "c",
	}
	updated, err := svc.UpdateProduct(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "C", updated.Condition)
	assert.Equal(t, domain.ConditionDescription("C"), updated.ConditionDescription)
	assert.Equal(t, domain.DefaultBrand, updated.Brand)

	req.Storage = "2TB"
	_, err = svc.UpdateProduct(ctx, req)
	assert.ErrorIs(t, err, errs.ErrInvalidProduct)

	req.Storage = "128GB"
	req.Condition = "D"
	_, err = svc.UpdateProduct(ctx, req)
	assert.ErrorIs(t, err, errs.ErrInvalidProduct)

	require.NoError(t, svc.DeleteProduct(ctx, sample.ID.Hex()))
	_, err = svc.GetProductByID(ctx, sample.ID.Hex())
	assert.ErrorIs(t, err, errs.ErrProductNotFound)
}

func TestAddReview(t *testing.T) {
	ctx := context.Background()
	product := domain.Product{ID: primitive.NewObjectID(), Name: "Pixel", Rating: 4.5, NumReviews: 10}
	repo := newFakeProductRepo(product)
	svc := CreateProductService(repo, testConfig())
	reviewer := domain.User{ID: primitive.NewObjectID(), Name: "Reviewer"}

	err := svc.AddReview(ctx, reviewer, dto.ReviewRequest{ProductID: product.ID.Hex(), Rating: 6, Comment: "great"})
	assert.ErrorIs(t, err, errs.ErrInvalidReview)

	err = svc.AddReview(ctx, reviewer, dto.ReviewRequest{ProductID: product.ID.Hex(), Rating: 5, Comment: "  "})
	assert.ErrorIs(t, err, errs.ErrInvalidReview)

	err = svc.AddReview(ctx, reviewer, dto.ReviewRequest{ProductID: product.ID.Hex(), Rating: 1, Comment: "screen cracked"})
	require.NoError(t, err)

	stored, err := repo.GetProductByID(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 11, stored.NumReviews)
	assert.Equal(t, 4.18, stored.Rating)
	require.Len(t, stored.Reviews, 1)
	assert.Equal(t, "Reviewer", stored.Reviews[0].Name)

	err = svc.AddReview(ctx, reviewer, dto.ReviewRequest{ProductID: product.ID.Hex(), Rating: 5, Comment: "again"})
	assert.ErrorIs(t, err, errs.ErrProductAlreadyReviewed)
}

func TestAddReviewRecomputesAfterConcurrentReview(t *testing.T) {
	ctx := context.Background()
	product := domain.Product{ID: primitive.NewObjectID(), Name: "Pixel", Rating: 4.5, NumReviews: 10}
	repo := newFakeProductRepo(product)
	repo.concurrentReviews = []domain.Review{{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Rating: 5, Comment: "mint"}}
	svc := CreateProductService(repo, testConfig())
	reviewer := domain.User{ID: primitive.NewObjectID(), Name: "Reviewer"}

	err := svc.AddReview(ctx, reviewer, dto.ReviewRequest{ProductID: product.ID.Hex(), Rating: 1, Comment: "screen cracked"})
	require.NoError(t, err)

	stored, err := repo.GetProductByID(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, 2, repo.reviewWrites)
	assert.Equal(t, 12, stored.NumReviews)
	assert.Equal(t, 4.25, stored.Rating)
	assert.Len(t, stored.Reviews, 2)
	assert.True(t, stored.HasReviewFrom(reviewer.ID))
}

func TestAddReviewGivesUpUnderSustainedContention(t *testing.T) {
	ctx := context.Background()
	product := domain.Product{ID: primitive.NewObjectID(), Name: "Pixel", Rating: 4.5, NumReviews: 10}
	repo := newFakeProductRepo(product)
	for i := 0; i < reviewWriteAttempts; i++ {
		repo.concurrentReviews = append(repo.concurrentReviews, domain.Review{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), Rating: 4, Comment: "fine"})
	}
	svc := CreateProductService(repo, testConfig())
	reviewer := domain.User{ID: primitive.NewObjectID(), Name: "Reviewer"}

	err := svc.AddReview(ctx, reviewer, dto.ReviewRequest{ProductID: product.ID.Hex(), Rating: 5, Comment: "great"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	stored, err := repo.GetProductByID(ctx, product.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, reviewWriteAttempts, repo.reviewWrites)
	assert.Equal(t, 10+reviewWriteAttempts, stored.NumReviews)
	assert.False(t, stored.HasReviewFrom(reviewer.ID))
}

func TestGetTopProducts(t *testing.T) {
	repo := newFakeProductRepo(
		domain.Product{ID: primitive.NewObjectID(), Rating: 4.1},
		domain.Product{ID: primitive.NewObjectID(), Rating: 4.9},
		domain.Product{ID: primitive.NewObjectID(), Rating: 4.5},
		domain.Product{ID: primitive.NewObjectID(), Rating: 4.7},
	)
	svc := CreateProductService(repo, testConfig())

	top, err := svc.GetTopProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []float64{4.9, 4.7, 4.5}, []float64{top[0].Rating, top[1].Rating, top[2].Rating})
}
