package repository

import (
	"context"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	EnsureIndexes(ctx context.Context) (err error)
	AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error)
	// GetUserByEmail returns a zero-value user and no error when nothing matches.
	GetUserByEmail(ctx context.Context, email string) (data domain.User, err error)
	GetUserByID(ctx context.Context, id string) (data domain.User, err error)
	GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) (data []domain.User, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (data []domain.User, err error)
	CountUsers(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	UpdateUser(ctx context.Context, data domain.User) (err error)
	DeleteUser(ctx context.Context, id primitive.ObjectID) (err error)
}

type ProductRepository interface {
	EnsureIndexes(ctx context.Context) (err error)
	AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error)
	AddProducts(ctx context.Context, data []domain.Product) (inserted int, err error)
	GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error)
	CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	GetTopProducts(ctx context.Context, limit int64) (data []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (data domain.Product, err error)
	UpdateProduct(ctx context.Context, data domain.Product) (err error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error)
	DeleteAllProducts(ctx context.Context) (deleted int64, err error)
	AddReview(ctx context.Context, productID primitive.ObjectID, review domain.Review, seenNumReviews int, rating float64, numReviews int) (err error)
	SetStockByModelCondition(ctx context.Context, modelName string, condition string, count int) (matched int64, err error)
	ReserveStock(ctx context.Context, productID primitive.ObjectID, qty int) (err error)
	ReleaseStock(ctx context.Context, productID primitive.ObjectID, qty int) (err error)
	GetModelSummary(ctx context.Context) (data []domain.ModelSummary, err error)
	GetConditionSummary(ctx context.Context) (data []domain.ConditionSummary, err error)
}

type OrderRepository interface {
	AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error)
	GetOrderByID(ctx context.Context, id string) (data domain.Order, err error)
	GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) (data []domain.Order, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error)
	CountOrders(ctx context.Context, filter pkgdto.Filter) (count int64, err error)
	MarkOrderPaid(ctx context.Context, id primitive.ObjectID, result domain.PaymentResult, paidAt time.Time) (err error)
	MarkOrderDelivered(ctx context.Context, id primitive.ObjectID, deliveredAt time.Time) (err error)
}
