package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alimikegami/refurbished-store/storefront-service/internal/domain"
	pkgdto "github.com/alimikegami/refurbished-store/storefront-service/pkg/dto"
	"github.com/alimikegami/refurbished-store/storefront-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ordersCollection = "orders"

type MongoDBOrderRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBOrderRepository(db *mongo.Database) OrderRepository {
	return &MongoDBOrderRepositoryImpl{db: db}
}

func (r *MongoDBOrderRepositoryImpl) AddOrder(ctx context.Context, data domain.Order) (id primitive.ObjectID, err error) {
	now := time.Now()
	data.CreatedAt = now
	data.UpdatedAt = now

	result, err := r.db.Collection(ordersCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddOrder").Msg("")
		return id, errs.ErrInternalServer
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrderByID(ctx context.Context, id string) (data domain.Order, err error) {
	orderID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return data, errs.ErrOrderNotFound
	}

	err = r.db.Collection(ordersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: orderID}}).Decode(&data)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return data, errs.ErrOrderNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrderByID").Msg("")
		return data, errs.ErrInternalServer
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrdersByUser(ctx context.Context, userID primitive.ObjectID) (data []domain.Order, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, bson.D{{Key: "user", Value: userID}}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrdersByUser").Msg("")
		return nil, errs.ErrInternalServer
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrdersByUser").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) GetOrders(ctx context.Context, filter pkgdto.Filter) (data []domain.Order, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(filter.Skip()).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.db.Collection(ordersCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, errs.ErrInternalServer
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetOrders").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *MongoDBOrderRepositoryImpl) CountOrders(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	count, err = r.db.Collection(ordersCollection).CountDocuments(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountOrders").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

// MarkOrderPaid only matches unpaid orders, so a concurrent second payment
// cannot overwrite the first payment result.
func (r *MongoDBOrderRepositoryImpl) MarkOrderPaid(ctx context.Context, id primitive.ObjectID, result domain.PaymentResult, paidAt time.Time) (err error) {
	filter := bson.D{{Key: "_id", Value: id}, {Key: "isPaid", Value: false}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isPaid", Value: true},
		{Key: "paidAt", Value: paidAt},
		{Key: "paymentResult", Value: result},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	res, err := r.db.Collection(ordersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkOrderPaid").Msg("")
		return errs.ErrInternalServer
	}

	if res.MatchedCount == 0 {
		return errs.ErrOrderAlreadyPaid
	}

	return nil
}

func (r *MongoDBOrderRepositoryImpl) MarkOrderDelivered(ctx context.Context, id primitive.ObjectID, deliveredAt time.Time) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "isDelivered", Value: true},
		{Key: "deliveredAt", Value: deliveredAt},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	res, err := r.db.Collection(ordersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "MarkOrderDelivered").Msg("")
		return errs.ErrInternalServer
	}

	if res.MatchedCount == 0 {
		return errs.ErrOrderNotFound
	}

	return nil
}
