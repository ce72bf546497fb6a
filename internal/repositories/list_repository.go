package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/onlyfilms/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListRepository defines the interface for film-list data operations,
// including the list-created activity event stream.
type ListRepository interface {
	CreateList(ctx context.Context, list *models.FilmList) error
	GetListByID(ctx context.Context, id string) (*models.FilmList, error)
	GetListsByProfile(ctx context.Context, profileID uint, includePrivate bool) ([]models.FilmList, error)
	AddFilm(ctx context.Context, id string, profileID uint, tmdbID int) error
	DeleteList(ctx context.Context, id string, profileID uint) error
	FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error)
}

// MongoListRepository implements ListRepository for MongoDB
type MongoListRepository struct {
	collection *mongo.Collection
}

// NewMongoListRepository creates a new MongoListRepository
func NewMongoListRepository(db *mongo.Database) *MongoListRepository {
	return &MongoListRepository{collection: db.Collection("film_lists")}
}

// CreateList creates a new film list document
func (r *MongoListRepository) CreateList(ctx context.Context, list *models.FilmList) error {
	list.ID = primitive.NewObjectID()
	list.CreatedAt = time.Now()
	list.UpdatedAt = list.CreatedAt
	if list.FilmTmdbIDs == nil {
		list.FilmTmdbIDs = []int{}
	}
	_, err := r.collection.InsertOne(ctx, list)
	return err
}

// GetListByID retrieves a list by its hex id
func (r *MongoListRepository) GetListByID(ctx context.Context, id string) (*models.FilmList, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("invalid list ID format: %w", err)
	}

	var list models.FilmList
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// GetListsByProfile retrieves a profile's lists, optionally including
// private ones (owner only).
func (r *MongoListRepository) GetListsByProfile(ctx context.Context, profileID uint, includePrivate bool) ([]models.FilmList, error) {
	filter := bson.M{"profile_id": profileID}
	if !includePrivate {
		filter["public"] = true
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []models.FilmList
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

// AddFilm appends a film to a list owned by profileID, skipping duplicates.
func (r *MongoListRepository) AddFilm(ctx context.Context, id string, profileID uint, tmdbID int) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid list ID format: %w", err)
	}

	res, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": objID, "profile_id": profileID},
		bson.M{
			"$addToSet": bson.M{"film_tmdb_ids": tmdbID},
			"$set":      bson.M{"updated_at": time.Now()},
		},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// DeleteList removes a list owned by profileID.
func (r *MongoListRepository) DeleteList(ctx context.Context, id string, profileID uint) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("invalid list ID format: %w", err)
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID, "profile_id": profileID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FeedEvents returns the newest list-created events, ordered created_at DESC
// then _id ASC. Only public lists surface in feeds. Actor enrichment happens
// in the aggregator since profiles live in Postgres.
func (r *MongoListRepository) FeedEvents(ctx context.Context, profileIDs []uint, fetch int) ([]models.ActivityEvent, error) {
	filter := bson.M{"public": true}
	if profileIDs != nil {
		filter["profile_id"] = bson.M{"$in": profileIDs}
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(fetch))
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var lists []models.FilmList
	if err = cursor.All(ctx, &lists); err != nil {
		return nil, err
	}

	events := make([]models.ActivityEvent, 0, len(lists))
	for _, list := range lists {
		events = append(events, models.ActivityEvent{
			Kind:      models.EventKindList,
			ID:        list.ID.Hex(),
			ProfileID: list.ProfileID,
			Timestamp: list.CreatedAt,
			List: &models.ListActivity{
				ListID:   list.ID.Hex(),
				ListName: list.Name,
			},
		})
	}
	return events, nil
}
