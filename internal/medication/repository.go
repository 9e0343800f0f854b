package medication

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MedicationRepository interface {
	Create(ctx context.Context, med *Medication) error
	FindAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*Medication, error)
	FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*Medication, error)
}

type LogRepository interface {
	FindByDate(ctx context.Context, medicationID primitive.ObjectID, date string) (*MedicationLog, error)
	FindRangeByUser(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]*MedicationLog, error)
	Create(ctx context.Context, log *MedicationLog) error
	Update(ctx context.Context, log *MedicationLog) error
}

type medicationRepository struct {
	collection *mongo.Collection
}

func NewMedicationRepository(collection *mongo.Collection) MedicationRepository {
	_ = EnsureMedicationIndexes(context.Background(), collection)
	return &medicationRepository{
		collection: collection,
	}
}

func (r *medicationRepository) Create(ctx context.Context, med *Medication) error {

	_, err := r.collection.InsertOne(ctx, med)
	if err != nil {
		return err
	}

	return nil
}

func (r *medicationRepository) FindAllByUser(ctx context.Context, userID primitive.ObjectID) ([]*Medication, error) {

	var meds []*Medication

	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &meds)
	if err != nil {
		return nil, err
	}

	return meds, nil
}

func (r *medicationRepository) FindByIDAndUser(ctx context.Context, id, userID primitive.ObjectID) (*Medication, error) {

	var med Medication

	err := r.collection.FindOne(ctx, bson.M{"_id": id, "user_id": userID}).Decode(&med)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &med, nil
}

func EnsureMedicationIndexes(ctx context.Context, coll *mongo.Collection) error {

	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("by_user"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

type logRepository struct {
	collection *mongo.Collection
}

func NewLogRepository(collection *mongo.Collection) LogRepository {
	_ = EnsureLogIndexes(context.Background(), collection)
	return &logRepository{
		collection: collection,
	}
}

func (r *logRepository) FindByDate(ctx context.Context, medicationID primitive.ObjectID, date string) (*MedicationLog, error) {

	var log MedicationLog

	err := r.collection.FindOne(ctx, bson.M{"medication_id": medicationID, "date": date}).Decode(&log)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	return &log, nil
}

func (r *logRepository) FindRangeByUser(ctx context.Context, userID primitive.ObjectID, startDate, endDate string) ([]*MedicationLog, error) {

	var logs []*MedicationLog

	filter := bson.M{
		"user_id": userID,
		"date": bson.M{
			"$gte": startDate,
			"$lte": endDate,
		},
	}

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	err = cursor.All(ctx, &logs)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *logRepository) Create(ctx context.Context, log *MedicationLog) error {

	_, err := r.collection.InsertOne(ctx, log)
	if err != nil {
		return err
	}

	return nil
}

func (r *logRepository) Update(ctx context.Context, log *MedicationLog) error {

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": log.ID}, bson.M{"$set": log})
	if err != nil {
		return err
	}

	return nil
}

func EnsureLogIndexes(ctx context.Context, coll *mongo.Collection) error {

	models := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "medication_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("by_medication_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "date", Value: 1},
			},
			Options: options.Index().SetName("by_user_date"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}
