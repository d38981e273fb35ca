package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/config"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	"github.com/alimikegami/refurbished-store/storefront-service/internal/dto"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func init() {
	PasswordHashCost = 4
}

var errStore = errors.New("store unavailable")

func testConfig() *config.Config {
	return &config.Config{
		PageSize: 12,
		JWTConfig: config.JWTConfig{
			JWTSecret:   "test-secret",
			ExpiryHours: 1,
		},
		SeedConfig: config.SeedConfig{
			Secret:        "seed-secret",
			AdminPassword: "securepassword123",
		},
	}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[primitive.ObjectID]domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *fakeUserRepo) AddUser(ctx context.Context, data domain.User) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data.ID = primitive.NewObjectID()
	r.users[data.ID] = data
	return data.ID, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return domain.User{}, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, errs.ErrAccountNotFound
	}
	u, ok := r.users[oid]
	if !ok {
		return domain.User{}, errs.ErrAccountNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) GetUsersByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) GetUsers(ctx context.Context, filter pkgdto.Filter) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return page(out, filter), nil
}

func (r *fakeUserRepo) CountUsers(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, data domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[data.ID]; !ok {
		return errs.ErrAccountNotFound
	}
	r.users[data.ID] = data
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type stockWrite struct {
	Model     string
	Condition string
	Count     int
}

type fakeProductRepo struct {
	mu            sync.Mutex
	products      map[primitive.ObjectID]domain.Product
	batches       [][]domain.Product
	stockWrites   []stockWrite
	failStockFor  string
	failAddOnCall int
	addCalls      int
	// each AddReview call first lands one of these, as another request would
	concurrentReviews []domain.Review
	reviewWrites      int
}

func newFakeProductRepo(products ...domain.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[primitive.ObjectID]domain.Product{}}
	for _, p := range products {
		r.products[p.ID] = p
	}
	return r
}

func (r *fakeProductRepo) EnsureIndexes(ctx context.Context) error { return nil }

func (r *fakeProductRepo) AddProduct(ctx context.Context, data domain.Product) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	data.ID = primitive.NewObjectID()
	r.products[data.ID] = data
	return data.ID, nil
}

func (r *fakeProductRepo) AddProducts(ctx context.Context, data []domain.Product) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.addCalls++
	if r.failAddOnCall != 0 && r.addCalls == r.failAddOnCall {
		return 0, errStore
	}
	batch := make([]domain.Product, len(data))
	copy(batch, data)
	r.batches = append(r.batches, batch)
	for _, p := range data {
		p.ID = primitive.NewObjectID()
		r.products[p.ID] = p
	}
	return len(data), nil
}

func (r *fakeProductRepo) all() []domain.Product {
	out := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return out
}

func (r *fakeProductRepo) matching(filter pkgdto.Filter) []domain.Product {
	var out []domain.Product
	for _, p := range r.all() {
		if filter.Keyword != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Keyword)) {
			continue
		}
		if filter.Condition != "" && p.Condition != filter.Condition {
			continue
		}
		if filter.ModelName != "" && p.ModelName != filter.ModelName {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r *fakeProductRepo) GetProducts(ctx context.Context, filter pkgdto.Filter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return page(r.matching(filter), filter), nil
}

func (r *fakeProductRepo) CountProducts(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(filter))), nil
}

func (r *fakeProductRepo) GetTopProducts(ctx context.Context, limit int64) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.all()
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeProductRepo) GetProductByID(ctx context.Context, id string) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Product{}, errs.ErrProductNotFound
	}
	p, ok := r.products[oid]
	if !ok {
		return domain.Product{}, errs.ErrProductNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) UpdateProduct(ctx context.Context, data domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[data.ID]; !ok {
		return errs.ErrProductNotFound
	}
	r.products[data.ID] = data
	return nil
}

func (r *fakeProductRepo) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) DeleteAllProducts(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.products))
	r.products = map[primitive.ObjectID]domain.Product{}
	return n, nil
}

func (r *fakeProductRepo) AddReview(ctx context.Context, productID primitive.ObjectID, review domain.Review, seenNumReviews int, rating float64, numReviews int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reviewWrites++
	p, ok := r.products[productID]
	if !ok {
		return errs.ErrProductNotFound
	}
	if len(r.concurrentReviews) > 0 {
		other := r.concurrentReviews[0]
		r.concurrentReviews = r.concurrentReviews[1:]
		p.Reviews = append(p.Reviews, other)
		p.Rating, p.NumReviews = AggregateRating(p.Rating, p.NumReviews, other.Rating)
		r.products[productID] = p
	}
	if p.NumReviews != seenNumReviews || p.HasReviewFrom(review.User) {
		return errs.ErrConflict
	}
	p.Reviews = append(p.Reviews, review)
	p.Rating = rating
	p.NumReviews = numReviews
	r.products[productID] = p
	return nil
}

func (r *fakeProductRepo) SetStockByModelCondition(ctx context.Context, modelName string, condition string, count int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failStockFor != "" && r.failStockFor == modelName+"/"+condition {
		return 0, errStore
	}
	r.stockWrites = append(r.stockWrites, stockWrite{Model: modelName, Condition: condition, Count: count})
	var matched int64
	for id, p := range r.products {
		if p.ModelName == modelName && p.Condition == condition {
			p.CountInStock = count
			r.products[id] = p
			matched++
		}
	}
	return matched, nil
}

func (r *fakeProductRepo) ReserveStock(ctx context.Context, productID primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok || p.CountInStock < qty {
		return errs.ErrInsufficientStock
	}
	p.CountInStock -= qty
	r.products[productID] = p
	return nil
}

func (r *fakeProductRepo) ReleaseStock(ctx context.Context, productID primitive.ObjectID, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return errs.ErrProductNotFound
	}
	p.CountInStock += qty
	r.products[productID] = p
	return nil
}

func (r *fakeProductRepo) GetModelSummary(ctx context.Context) ([]domain.ModelSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range r.products {
		counts[p.ModelName]++
	}
	var out []domain.ModelSummary
	for m, c := range counts {
		out = append(out, domain.ModelSummary{ModelName: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ModelName < out[j].ModelName })
	return out, nil
}

func (r *fakeProductRepo) GetConditionSummary(ctx context.Context) ([]domain.ConditionSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := map[string]int64{}
	for _, p := range r.products {
		counts[p.Condition]++
	}
	var out []domain.ConditionSummary
	for c, n := range counts {
		out = append(out, domain.ConditionSummary{Condition: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Condition < out[j].Condition })
	return out, nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[primitive.ObjectID]domain.Order
	addErr error
}

func newFakeOrderRepo(orders ...domain.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[primitive.ObjectID]domain.Order{}}
	for _, o := range orders {
		r.orders[o.ID] = o
	}
	return r
}

func (r *fakeOrderRepo) AddOrder(ctx context.Context, data domain.Order) (primitive.ObjectID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.addErr != nil {
		return primitive.NilObjectID, r.addErr
	}
	data.ID = primitive.NewObjectID()
	r.orders[data.ID] = data
	return data.ID, nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, id string) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Order{}, errs.ErrOrderNotFound
	}
	o, ok := r.orders[oid]
	if !ok {
		return domain.Order{}, errs.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for _, o := range r.orders {
		if o.User == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetOrders(ctx context.Context, filter pkgdto.Filter) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, 0, len(r.orders))
	for _, o := range r.orders {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID.Hex() < out[j].ID.Hex() })
	return page(out, filter), nil
}

func (r *fakeOrderRepo) CountOrders(ctx context.Context, filter pkgdto.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *fakeOrderRepo) MarkOrderPaid(ctx context.Context, id primitive.ObjectID, result domain.PaymentResult, paidAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return errs.ErrOrderNotFound
	}
	if o.IsPaid {
		return errs.ErrOrderAlreadyPaid
	}
	o.IsPaid = true
	o.PaidAt = &paidAt
	o.PaymentResult = &result
	r.orders[id] = o
	return nil
}

func (r *fakeOrderRepo) MarkOrderDelivered(ctx context.Context, id primitive.ObjectID, deliveredAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return errs.ErrOrderNotFound
	}
	o.IsDelivered = true
	o.DeliveredAt = &deliveredAt
	r.orders[id] = o
	return nil
}

func page[T any](items []T, filter pkgdto.Filter) []T {
	if filter.Limit == 0 || filter.Page == 0 {
		return items
	}
	start := int(filter.Skip())
	if start >= len(items) {
		return []T{}
	}
	end := min(start+filter.Limit, len(items))
	return items[start:end]
}

type publishedEvent struct {
	EventType string
	Key       string
	Data      interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(ctx context.Context, eventType string, key string, data interface{}) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{EventType: eventType, Key: key, Data: data})
	return nil
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

type fakeVerifier struct {
	details dto.PaymentDetails
	err     error
	calls   int
}

func (v *fakeVerifier) GetPaymentDetails(ctx context.Context, paymentID string) (dto.PaymentDetails, error) {
	v.calls++
	if v.err != nil {
		return dto.PaymentDetails{}, v.err
	}
	d := v.details
	d.ID = paymentID
	return d, nil
}

type fakeFeed struct {
	records []dto.InventoryRecord
	err     error
}

func (f *fakeFeed) FetchInventory(ctx context.Context) ([]dto.InventoryRecord, error) {
	return f.records, f.err
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []domain.Order
	release chan struct{}
}

func (m *fakeMailer) SendOrderReceipt(ctx context.Context, order domain.Order, recipient domain.User) error {
	if m.release != nil {
		select {
		case <-m.release:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, order)
	return nil
}

func (m *fakeMailer) sentOrders() []domain.Order {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Order(nil), m.sent...)
}
