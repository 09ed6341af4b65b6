package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"wanderwise/internal/models/trip_models"
	"wanderwise/pkg/utils"
)

const SavedPlansCollection = "saved_plans"

type savedPlanDocument struct {
	ID                            string                      `bson:"_id"`
	UserID                        string                      `bson:"userId"`
	Timestamp                     int64                       `bson:"timestamp"`
	SuggestedCity                 *trip_models.CitySuggestion `bson:"suggestedCity,omitempty"`
	ItineraryData                 *trip_models.Itinerary      `bson:"itineraryData,omitempty"`
	FinalDestinationCityToDisplay string                      `bson:"finalDestinationCityToDisplay,omitempty"`
	UploadedImageFileName         string                      `bson:"uploadedImageFileName,omitempty"`
}

type MongoSavedPlanRepository struct {
	coll *mongo.Collection
}

func NewMongoSavedPlanRepository(db *mongo.Database) SavedPlanRepositoryInterface {
	return &MongoSavedPlanRepository{coll: db.Collection(SavedPlansCollection)}
}

// EnsureIndexes creates the per-user, newest-first listing index.
func (r *MongoSavedPlanRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "timestamp", Value: -1}},
	})
	return err
}

func (r *MongoSavedPlanRepository) Create(ctx context.Context, plan *trip_models.SavedPlan) error {
	doc := savedPlanDocument{
		ID:                            uuid.NewString(),
		UserID:                        plan.UserID,
		Timestamp:                     plan.Timestamp,
		SuggestedCity:                 plan.SuggestedCity,
		ItineraryData:                 plan.ItineraryData,
		FinalDestinationCityToDisplay: plan.FinalDestinationCityToDisplay,
		UploadedImageFileName:         plan.UploadedImageFileName,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return err
	}
	plan.ID = doc.ID
	return nil
}

func (r *MongoSavedPlanRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]trip_models.SavedPlan, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := r.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []savedPlanDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	plans := make([]trip_models.SavedPlan, 0, len(docs))
	for _, doc := range docs {
		plans = append(plans, doc.toSavedPlan())
	}
	return plans, nil
}

func (r *MongoSavedPlanRepository) FindByID(ctx context.Context, userID, planID string) (*trip_models.SavedPlan, error) {
	var doc savedPlanDocument
	err := r.coll.FindOne(ctx, bson.M{"_id": planID, "userId": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, utils.ErrPlanNotFound
		}
		return nil, err
	}
	plan := doc.toSavedPlan()
	return &plan, nil
}

func (r *MongoSavedPlanRepository) Delete(ctx context.Context, userID, planID string) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": planID, "userId": userID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return utils.ErrPlanNotFound
	}
	return nil
}

func (d savedPlanDocument) toSavedPlan() trip_models.SavedPlan {
	return trip_models.SavedPlan{
		ID:        d.ID,
		UserID:    d.UserID,
		Timestamp: d.Timestamp,
		TripPlanResult: trip_models.TripPlanResult{
			SuggestedCity:                 d.SuggestedCity,
			ItineraryData:                 d.ItineraryData,
			FinalDestinationCityToDisplay: d.FinalDestinationCityToDisplay,
			UploadedImageFileName:         d.UploadedImageFileName,
		},
	}
}
