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
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const receiptTimeout = 30 * time.Second

type OrderServiceImpl struct {
	orderRepo        repository.OrderRepository
	productRepo      repository.ProductRepository
	userRepo         repository.UserRepository
	verifiers        map[string]PaymentVerifier
	publisher        EventPublisher
	mailer           ReceiptSender
	pageSize         int
	midtransCurrency string
	now              func() time.Time
	background       func(func())
}

// CreateOrderService takes one verifier per payment method. The PayPal
// verifier also serves orders with an unrecognised method.
func CreateOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository, verifiers map[string]PaymentVerifier, publisher EventPublisher, mailer ReceiptSender, config *config.Config) OrderService {
	midtransCurrency := config.MidtransConfig.Currency
	if midtransCurrency == "" {
		midtransCurrency = domain.CurrencyIDR
	}

	return &OrderServiceImpl{
		orderRepo:        orderRepo,
		productRepo:      productRepo,
		userRepo:         userRepo,
		verifiers:        verifiers,
		publisher:        publisher,
		mailer:           mailer,
		pageSize:         config.PageSize,
		midtransCurrency: midtransCurrency,
		now:              time.Now,
		background:       func(f func()) { go f() },
	}
}

type reservation struct {
	productID primitive.ObjectID
	qty       int
}

func (s *OrderServiceImpl) AddOrder(ctx context.Context, user domain.User, req dto.OrderRequest) (resp domain.Order, err error) {
	if len(req.OrderItems) == 0 {
		return resp, errs.ErrNoOrderItems
	}

	items := make([]domain.OrderItem, 0, len(req.OrderItems))
	for _, itemReq := range req.OrderItems {
		if itemReq.Qty < 1 {
			return resp, errs.ErrClient
		}

		product, err := s.productRepo.GetProductByID(ctx, itemReq.Product)
		if err != nil {
			return resp, err
		}

		items = append(items, domain.OrderItem{
			Name:      product.Name,
			Qty:       itemReq.Qty,
			Image:     product.Image,
			Price:     product.Price,
			Condition: product.Condition,
			Product:   product.ID,
		})
	}

	reserved, err := s.reserveStock(ctx, items)
	if err != nil {
		return resp, err
	}

	paymentMethod := strings.TrimSpace(req.PaymentMethod)
	if paymentMethod == "" {
		paymentMethod = domain.PaymentMethodPayPal
	}

	prices := CalculatePrices(items)
	order := domain.Order{
		User:            user.ID,
		OrderItems:      items,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   paymentMethod,
		ItemsPrice:      prices.ItemsPrice,
		ShippingPrice:   prices.ShippingPrice,
		TaxPrice:        prices.TaxPrice,
		TotalPrice:      prices.TotalPrice,
		CurrencyCode:    s.currencyFor(paymentMethod),
	}

	order.ID, err = s.orderRepo.AddOrder(ctx, order)
	if err != nil {
		s.releaseStock(ctx, reserved)
		return resp, err
	}

	s.publish(ctx, dto.EventOrderCreated, order)

	return order, nil
}

// reserveStock takes every line or none of them.
func (s *OrderServiceImpl) reserveStock(ctx context.Context, items []domain.OrderItem) ([]reservation, error) {
	reserved := make([]reservation, 0, len(items))
	for _, item := range items {
		if err := s.productRepo.ReserveStock(ctx, item.Product, item.Qty); err != nil {
			s.releaseStock(ctx, reserved)
			return nil, err
		}
		reserved = append(reserved, reservation{productID: item.Product, qty: item.Qty})
	}

	return reserved, nil
}

func (s *OrderServiceImpl) releaseStock(ctx context.Context, reserved []reservation) {
	for _, r := range reserved {
		if err := s.productRepo.ReleaseStock(ctx, r.productID, r.qty); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "releaseStock").Str("product_id", r.productID.Hex()).Int("qty", r.qty).Msg("")
		}
	}
}

func (s *OrderServiceImpl) GetOrderByID(ctx context.Context, user domain.User, id string) (resp dto.OrderResponse, err error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	if !canAccessOrder(user, order) {
		return resp, errs.ErrForbidden
	}

	resp.Order = order

	owner, err := s.userRepo.GetUserByID(ctx, order.User.Hex())
	if err != nil {
		if errors.Is(err, errs.ErrAccountNotFound) {
			return resp, nil
		}
		return resp, err
	}

	resp.UserDetail = &dto.OrderUser{ID: owner.ID.Hex(), Name: owner.Name, Email: owner.Email}

	return resp, nil
}

func (s *OrderServiceImpl) PayOrder(ctx context.Context, user domain.User, req dto.PayOrderRequest) (resp domain.Order, err error) {
	paymentID := strings.TrimSpace(req.ProcessorID())
	if paymentID == "" {
		return resp, errs.ErrClient
	}

	order, err := s.orderRepo.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return
	}

	if !canAccessOrder(user, order) {
		return resp, errs.ErrForbidden
	}

	if order.IsPaid {
		return resp, errs.ErrOrderAlreadyPaid
	}

	verifier := s.verifierFor(order.PaymentMethod)
	if verifier == nil {
		log.Ctx(ctx).Error().Str("component", "PayOrder").Str("payment_method", order.PaymentMethod).Msg("no verifier configured")
		return resp, errs.ErrPaymentProcessor
	}

	details, err := verifier.GetPaymentDetails(ctx, paymentID)
	if errors.Is(err, errs.ErrPaymentNotFound) {
		log.Ctx(ctx).Warn().Err(err).Str("component", "PayOrder").Str("order_id", order.ID.Hex()).Msg("payment unknown to processor")
		return resp, errs.ErrPaymentVerificationFailed
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "PayOrder").Str("order_id", order.ID.Hex()).Msg("payment lookup failed")
		return resp, errs.ErrPaymentProcessor
	}

	if !VerifyPayment(order, details) {
		log.Ctx(ctx).Warn().
			Str("component", "PayOrder").
			Str("order_id", order.ID.Hex()).
			Str("processor_status", details.Status).
			Str("processor_amount", details.Amount).
			Str("processor_currency", details.CurrencyCode).
			Float64("order_total", order.TotalPrice).
			Msg("payment verification failed")
		return resp, errs.ErrPaymentVerificationFailed
	}

	result := domain.PaymentResult{
		ID:           details.ID,
		Status:       details.Status,
		UpdateTime:   details.UpdateTime,
		EmailAddress: details.EmailAddress,
	}
	paidAt := s.now()

	if err = s.orderRepo.MarkOrderPaid(ctx, order.ID, result, paidAt); err != nil {
		return
	}

	order.IsPaid = true
	order.PaidAt = &paidAt
	order.PaymentResult = &result

	s.publish(ctx, dto.EventOrderPaid, order)
	s.sendReceipt(ctx, order)

	return order, nil
}

func (s *OrderServiceImpl) DeliverOrder(ctx context.Context, id string) (resp domain.Order, err error) {
	order, err := s.orderRepo.GetOrderByID(ctx, id)
	if err != nil {
		return
	}

	deliveredAt := s.now()
	if err = s.orderRepo.MarkOrderDelivered(ctx, order.ID, deliveredAt); err != nil {
		return
	}

	order.IsDelivered = true
	order.DeliveredAt = &deliveredAt

	s.publish(ctx, dto.EventOrderDelivered, order)

	return order, nil
}

func (s *OrderServiceImpl) GetMyOrders(ctx context.Context, user domain.User) (resp []domain.Order, err error) {
	resp, err = s.orderRepo.GetOrdersByUser(ctx, user.ID)
	if err != nil {
		return
	}

	if resp == nil {
		resp = []domain.Order{}
	}

	return
}

func (s *OrderServiceImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (resp pkgdto.PaginationResponse, err error) {
	filter.Normalize(s.pageSize)

	orders, err := s.orderRepo.GetOrders(ctx, filter)
	if err != nil {
		return
	}

	count, err := s.orderRepo.CountOrders(ctx, filter)
	if err != nil {
		return
	}

	owners := map[primitive.ObjectID]domain.User{}
	if len(orders) > 0 {
		ids := make([]primitive.ObjectID, 0, len(orders))
		for _, order := range orders {
			ids = append(ids, order.User)
		}

		users, err := s.userRepo.GetUsersByIDs(ctx, ids)
		if err != nil {
			return resp, err
		}
		for _, u := range users {
			owners[u.ID] = u
		}
	}

	records := make([]dto.OrderResponse, 0, len(orders))
	for _, order := range orders {
		record := dto.OrderResponse{Order: order}
		if owner, ok := owners[order.User]; ok {
			record.UserDetail = &dto.OrderUser{ID: owner.ID.Hex(), Name: owner.Name, Email: owner.Email}
		}
		records = append(records, record)
	}

	resp.Records = records
	resp.Metadata = pkgdto.CreatePaginationMetadata(count, filter.Page, filter.Limit)

	return
}

func (s *OrderServiceImpl) verifierFor(paymentMethod string) PaymentVerifier {
	for method, verifier := range s.verifiers {
		if strings.EqualFold(method, paymentMethod) {
			return verifier
		}
	}

	if strings.EqualFold(paymentMethod, domain.PaymentMethodMidtrans) {
		return nil
	}

	return s.verifiers[domain.PaymentMethodPayPal]
}

// currencyFor picks the currency the processor behind paymentMethod settles in.
func (s *OrderServiceImpl) currencyFor(paymentMethod string) string {
	if strings.EqualFold(paymentMethod, domain.PaymentMethodMidtrans) {
		return s.midtransCurrency
	}

	return domain.CurrencyGBP
}

func (s *OrderServiceImpl) publish(ctx context.Context, eventType string, order domain.Order) {
	if s.publisher == nil {
		return
	}

	err := s.publisher.Publish(ctx, eventType, order.ID.Hex(), dto.OrderEvent{
		OrderID:    order.ID.Hex(),
		UserID:     order.User.Hex(),
		TotalPrice: order.TotalPrice,
		Currency:   order.CurrencyCode,
		ItemCount:  len(order.OrderItems),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishOrderEvent").Str("event_type", eventType).Msg("")
	}
}

// sendReceipt mails the buyer in the background. The payment is already
// recorded, so the request does not wait on SMTP.
func (s *OrderServiceImpl) sendReceipt(ctx context.Context, order domain.Order) {
	if s.mailer == nil {
		return
	}

	detached := context.WithoutCancel(ctx)
	s.background(func() {
		ctx, cancel := context.WithTimeout(detached, receiptTimeout)
		defer cancel()

		owner, err := s.userRepo.GetUserByID(ctx, order.User.Hex())
		if err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "sendReceipt").Msg("")
			return
		}

		if err := s.mailer.SendOrderReceipt(ctx, order, owner); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("component", "sendReceipt").Str("order_id", order.ID.Hex()).Msg("")
		}
	})
}

func canAccessOrder(user domain.User, order domain.Order) bool {
	return user.IsAdmin || order.User == user.ID
}
