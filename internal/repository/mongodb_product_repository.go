package repository

import (
	"context"
	"errors"
	"regexp"
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

const productsCollection = "products"

type MongoDBProductRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewMongoDBProductRepository(db *mongo.Database) ProductRepository {
	return &MongoDBProductRepositoryImpl{db: db}
}

func (r *MongoDBProductRepositoryImpl) EnsureIndexes(ctx context.Context) (err error) {
	_, err = r.db.Collection(productsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "modelName", Value: 1}, {Key: "condition", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}}},
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "EnsureProductIndexes").Msg("")
	}

	return
}

func (r *MongoDBProductRepositoryImpl) AddProduct(ctx context.Context, data domain.Product) (id primitive.ObjectID, err error) {
	stampProduct(&data)

	result, err := r.db.Collection(productsCollection).InsertOne(ctx, data)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProduct").Msg("")
		return id, errs.ErrInternalServer
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

func (r *MongoDBProductRepositoryImpl) AddProducts(ctx context.Context, data []domain.Product) (inserted int, err error) {
	docs := make([]interface{}, len(data))
	for i := range data {
		stampProduct(&data[i])
		docs[i] = data[i]
	}

	result, err := r.db.Collection(productsCollection).InsertMany(ctx, docs)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddProducts").Msg("")
		if result != nil {
			inserted = len(result.InsertedIDs)
		}
		return inserted, errs.ErrInternalServer
	}

	return len(result.InsertedIDs), nil
}

func (r *MongoDBProductRepositoryImpl) GetProducts(ctx context.Context, filter pkgdto.Filter) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "modelName", Value: 1}, {Key: "price", Value: -1}, {Key: "_id", Value: 1}})
	if filter.Limit != 0 && filter.Page != 0 {
		opts = opts.SetSkip(filter.Skip()).SetLimit(int64(filter.Limit))
	}

	cursor, err := r.db.Collection(productsCollection).Find(ctx, productFilter(filter), opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) CountProducts(ctx context.Context, filter pkgdto.Filter) (count int64, err error) {
	count, err = r.db.Collection(productsCollection).CountDocuments(ctx, productFilter(filter))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "CountProducts").Msg("")
		return 0, errs.ErrInternalServer
	}

	return
}

func (r *MongoDBProductRepositoryImpl) GetTopProducts(ctx context.Context, limit int64) (data []domain.Product, err error) {
	opts := options.Find().SetSort(bson.D{{Key: "rating", Value: -1}}).SetLimit(limit)

	cursor, err := r.db.Collection(productsCollection).Find(ctx, bson.D{}, opts)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTopProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetTopProducts").Msg("")
		return nil, errs.ErrInternalServer
	}

	return data, nil
}

func (r *MongoDBProductRepositoryImpl) GetProductByID(ctx context.Context, id string) (product domain.Product, err error) {
	productID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return product, errs.ErrProductNotFound
	}

	filter := bson.D{{Key: "_id", Value: productID}}

	err = r.db.Collection(productsCollection).FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return product, errs.ErrProductNotFound
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "GetProductByID").Msg("")
		return product, errs.ErrInternalServer
	}

	return product, nil
}

func (r *MongoDBProductRepositoryImpl) UpdateProduct(ctx context.Context, data domain.Product) (err error) {
	data.Normalize()
	filter := bson.D{{Key: "_id", Value: data.ID}}

	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: data.Name},
		{Key: "price", Value: data.Price},
		{Key: "image", Value: data.Image},
		{Key: "brand", Value: data.Brand},
		{Key: "category", Value: data.Category},
		{Key: "description", Value: data.Description},
		{Key: "countInStock", Value: data.CountInStock},
		{Key: "modelName", Value: data.ModelName},
		{Key: "storage", Value: data.Storage},
		{Key: "color", Value: data.Color},
		{Key: "condition", Value: data.Condition},
		{Key: "conditionDescription", Value: data.ConditionDescription},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateProduct").Msg("Failed to update product")
		return errs.ErrInternalServer
	}

	if result.MatchedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteProduct(ctx context.Context, id primitive.ObjectID) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}

	result, err := r.db.Collection(productsCollection).DeleteOne(ctx, filter)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteProduct").Msg("")
		return errs.ErrInternalServer
	}

	if result.DeletedCount == 0 {
		return errs.ErrProductNotFound
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) DeleteAllProducts(ctx context.Context) (deleted int64, err error) {
	result, err := r.db.Collection(productsCollection).DeleteMany(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "DeleteAllProducts").Msg("")
		return 0, errs.ErrInternalServer
	}

	return result.DeletedCount, nil
}

// AddReview refuses a second review by the same user at the query level. The
// aggregate is only written if numReviews still equals seenNumReviews;
// otherwise another review landed first and the caller must recompute.
func (r *MongoDBProductRepositoryImpl) AddReview(ctx context.Context, productID primitive.ObjectID, review domain.Review, seenNumReviews int, rating float64, numReviews int) (err error) {
	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "numReviews", Value: seenNumReviews},
		{Key: "reviews.user", Value: bson.D{{Key: "$ne", Value: review.User}}},
	}
	update := bson.D{
		{Key: "$push", Value: bson.D{{Key: "reviews", Value: review}}},
		{Key: "$set", Value: bson.D{
			{Key: "rating", Value: rating},
			{Key: "numReviews", Value: numReviews},
			{Key: "updatedAt", Value: time.Now()},
		}},
	}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AddReview").Msg("")
		return errs.ErrInternalServer
	}

	if result.MatchedCount == 0 {
		return errs.ErrConflict
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) SetStockByModelCondition(ctx context.Context, modelName string, condition string, count int) (matched int64, err error) {
	filter := bson.D{{Key: "modelName", Value: modelName}, {Key: "condition", Value: condition}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "countInStock", Value: count},
		{Key: "updatedAt", Value: time.Now()},
	}}}

	result, err := r.db.Collection(productsCollection).UpdateMany(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "SetStockByModelCondition").Msg("Failed to update stock")
		return 0, errs.ErrInternalServer
	}

	return result.MatchedCount, nil
}

// ReserveStock decrements only when enough units remain.
func (r *MongoDBProductRepositoryImpl) ReserveStock(ctx context.Context, productID primitive.ObjectID, qty int) (err error) {
	filter := bson.D{
		{Key: "_id", Value: productID},
		{Key: "countInStock", Value: bson.D{{Key: "$gte", Value: qty}}},
	}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "countInStock", Value: -qty}}}}

	result, err := r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReserveStock").Msg("")
		return errs.ErrInternalServer
	}

	if result.MatchedCount == 0 {
		return errs.ErrInsufficientStock
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) ReleaseStock(ctx context.Context, productID primitive.ObjectID, qty int) (err error) {
	filter := bson.D{{Key: "_id", Value: productID}}
	update := bson.D{{Key: "$inc", Value: bson.D{{Key: "countInStock", Value: qty}}}}

	_, err = r.db.Collection(productsCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "ReleaseStock").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func (r *MongoDBProductRepositoryImpl) GetModelSummary(ctx context.Context) (data []domain.ModelSummary, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$modelName"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "avgPrice", Value: bson.D{{Key: "$avg", Value: "$price"}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	err = r.aggregate(ctx, pipeline, &data)
	return
}

func (r *MongoDBProductRepositoryImpl) GetConditionSummary(ctx context.Context) (data []domain.ConditionSummary, err error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$condition"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	err = r.aggregate(ctx, pipeline, &data)
	return
}

func (r *MongoDBProductRepositoryImpl) aggregate(ctx context.Context, pipeline mongo.Pipeline, out interface{}) error {
	cursor, err := r.db.Collection(productsCollection).Aggregate(ctx, pipeline)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AggregateProducts").Msg("")
		return errs.ErrInternalServer
	}

	if err = cursor.All(ctx, out); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AggregateProducts").Msg("")
		return errs.ErrInternalServer
	}

	return nil
}

func stampProduct(p *domain.Product) {
	p.Normalize()
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
}

func productFilter(filter pkgdto.Filter) bson.D {
	query := bson.D{}
	if filter.Keyword != "" {
		query = append(query, bson.E{Key: "name", Value: primitive.Regex{Pattern: regexp.QuoteMeta(filter.Keyword), Options: "i"}})
	}
	if filter.Condition != "" {
		query = append(query, bson.E{Key: "condition", Value: filter.Condition})
	}
	if filter.ModelName != "" {
		query = append(query, bson.E{Key: "modelName", Value: filter.ModelName})
	}

	return query
}
