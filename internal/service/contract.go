package service

import (
	"context"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
)

type UserService interface {
	Register(ctx context.Context, req dto.UserRequest) (resp dto.LoginResponse, err error)
	Login(ctx context.Context, req dto.UserRequest) (resp dto.LoginResponse, err error)
	GetProfile(ctx context.Context, user domain.User) (resp dto.UserResponse, err error)
	UpdateProfile(ctx context.Context, user domain.User, req dto.UserRequest) (resp dto.LoginResponse, err error)
	GetUsers(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
	GetUserByID(ctx context.Context, id string) (resp dto.UserResponse, err error)
	UpdateUser(ctx context.Context, req dto.AdminUserUpdateRequest) (resp dto.UserResponse, err error)
	DeleteUser(ctx context.Context, id string) (err error)
}

type ProductService interface {
	GetProducts(ctx context.Context, filter pkgdto.Filter) (resp dto.ProductListResponse, err error)
	GetTopProducts(ctx context.Context) (resp []domain.Product, err error)
	GetProductByID(ctx context.Context, id string) (resp domain.Product, err error)
	CreateSampleProduct(ctx context.Context, user domain.User) (resp domain.Product, err error)
	UpdateProduct(ctx context.Context, req dto.ProductRequest) (resp domain.Product, err error)
	DeleteProduct(ctx context.Context, id string) (err error)
	AddReview(ctx context.Context, user domain.User, req dto.ReviewRequest) (err error)
}

type OrderService interface {
	AddOrder(ctx context.Context, user domain.User, req dto.OrderRequest) (resp domain.Order, err error)
	GetOrderByID(ctx context.Context, user domain.User, id string) (resp dto.OrderResponse, err error)
	PayOrder(ctx context.Context, user domain.User, req dto.PayOrderRequest) (resp domain.Order, err error)
	DeliverOrder(ctx context.Context, id string) (resp domain.Order, err error)
	GetMyOrders(ctx context.Context, user domain.User) (resp []domain.Order, err error)
	GetOrders(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error)
}

type InventoryService interface {
	SyncInventory(ctx context.Context) (resp dto.InventorySyncResult, err error)
	RunScheduledSync()
	GetInventoryStatus(ctx context.Context) (resp []dto.InventoryRecord, err error)
}

type SeedService interface {
	SeedCatalog(ctx context.Context) (resp dto.SeedResult, err error)
	ClearCatalog(ctx context.Context) (resp dto.ClearResult, err error)
	GetSeedStatus(ctx context.Context) (resp dto.SeedStatus, err error)
}

// EventPublisher is satisfied by the kafka event publisher.
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, key string, data interface{}) error
}

// PaymentVerifier looks a payment up at the processor that took it.
type PaymentVerifier interface {
	GetPaymentDetails(ctx context.Context, paymentID string) (dto.PaymentDetails, error)
}

type InventoryFeed interface {
	FetchInventory(ctx context.Context) ([]dto.InventoryRecord, error)
}

type ReceiptSender interface {
	SendOrderReceipt(ctx context.Context, order domain.Order, recipient domain.User) error
}
