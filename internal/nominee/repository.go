package nominee

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type NomineeRepository interface {
	Create(ctx context.Context, nominee *Nominee) error
	FindAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*Nominee, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*Nominee, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type nomineeRepository struct {
	collection *mongo.Collection
}

func NewNomineeRepository(collection *mongo.Collection) NomineeRepository {
	_ = EnsureNomineeIndexes(context.Background(), collection)
	return &nomineeRepository{
		collection: collection,
	}
}

func (r *nomineeRepository) Create(ctx context.Context, nominee *Nominee) error {

	_, err := r.collection.InsertOne(ctx, nominee)
	if err != nil {
		return err
	}

	return nil
}

func (r *nomineeRepository) FindAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*Nominee, error) {

	var nominees []*Nominee

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &nominees)
	if err != nil {
		return nil, err
	}

	return nominees, nil
}

func (r *nomineeRepository) FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*Nominee, error) {

	var nominee Nominee

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&nominee)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &nominee, nil
}

func (r *nomineeRepository) Delete(ctx context.Context, id primitive.ObjectID) error {

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}

	return nil
}

func EnsureNomineeIndexes(ctx context.Context, coll *mongo.Collection) error {

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("by_user"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
