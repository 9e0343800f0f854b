package emergency

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	Update(ctx context.Context, alert *Alert) error
	FindActiveByUser(ctx context.Context, userID primitive.ObjectID) (*Alert, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*Alert, error)
	FindActiveUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*Alert, error)
}

type alertRepository struct {
	collection *mongo.Collection
}

func NewAlertRepository(collection *mongo.Collection) AlertRepository {
	_ = EnsureAlertIndexes(context.Background(), collection)
	return &alertRepository{
		collection: collection,
	}
}

func (r *alertRepository) Create(ctx context.Context, alert *Alert) error {

	_, err := r.collection.InsertOne(ctx, alert)
	if err != nil {
		return err
	}

	return nil
}

func (r *alertRepository) Update(ctx context.Context, alert *Alert) error {

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": alert.ID}, bson.M{"$set": alert})
	if err != nil {
		return err
	}

	return nil
}

func (r *alertRepository) FindActiveByUser(ctx context.Context, userID primitive.ObjectID) (*Alert, error) {

	var alert Alert

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "is_active": true}, opts).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &alert, nil
}

func (r *alertRepository) FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*Alert, error) {

	var alert Alert

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&alert)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &alert, nil
}

func (r *alertRepository) FindActiveUpdatedBefore(ctx context.Context, cutoff time.Time) ([]*Alert, error) {

	var alerts []*Alert

	filter := bson.M{
		"is_active": true,
		"updated_at": bson.M{
			"$lt": cutoff,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &alerts)
	if err != nil {
		return nil, err
	}

	return alerts, nil
}

func EnsureAlertIndexes(ctx context.Context, coll *mongo.Collection) error {

	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("by_user_active_created"),
		},
		{
			Keys: bson.D{
				{Key: "is_active", Value: 1},
				{Key: "updated_at", Value: 1},
			},
			Options: options.Index().SetName("by_active_updated"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
