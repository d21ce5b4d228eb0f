package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/princinho/sahoinsure/insurance"
	"github.com/princinho/sahoinsure/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type QuoteFilter struct {
	Status   models.QuoteStatus
	Category insurance.Category
	Skip     int64
	Limit    int64
}

// QuoteStore persists submitted quote requests.
type QuoteStore interface {
	Submit(ctx context.Context, quote *models.Quote) (*models.Quote, error)
	Get(ctx context.Context, id string) (*models.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]models.Quote, int64, error)
	UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) error
	AddNote(ctx context.Context, id string, note models.QuoteNote) error
}

type MongoQuoteStore struct {
	col *mongo.Collection
}

func NewQuoteStore(db *mongo.Database) *MongoQuoteStore {
	return &MongoQuoteStore{col: db.Collection(QuotesCollection)}
}

func (s *MongoQuoteStore) Submit(ctx context.Context, quote *models.Quote) (*models.Quote, error) {
	stored := *quote
	stored.ID = bson.NewObjectID()
	if stored.Status == "" {
		stored.Status = models.QuoteStatusPending
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	stored.UpdatedAt = stored.CreatedAt

	if _, err := s.col.InsertOne(ctx, stored); err != nil {
		return nil, fmt.Errorf("insert quote: %w", err)
	}
	return &stored, nil
}

func (s *MongoQuoteStore) Get(ctx context.Context, id string) (*models.Quote, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var q models.Quote
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&q); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find quote: %w", err)
	}
	return &q, nil
}

func (s *MongoQuoteStore) List(ctx context.Context, f QuoteFilter) ([]models.Quote, int64, error) {
	filter := quoteFilter(f)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if f.Skip > 0 {
		opts.SetSkip(f.Skip)
	}
	if f.Limit > 0 {
		opts.SetLimit(f.Limit)
	}

	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find quotes: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.Quote, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, fmt.Errorf("decode quotes: %w", err)
	}

	total, err := s.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count quotes: %w", err)
	}
	return items, total, nil
}

func (s *MongoQuoteStore) UpdateStatus(ctx context.Context, id string, status models.QuoteStatus) error {
	return s.update(ctx, id, bson.M{
		"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()},
	})
}

func (s *MongoQuoteStore) AddNote(ctx context.Context, id string, note models.QuoteNote) error {
	return s.update(ctx, id, bson.M{
		"$push": bson.M{"notes": note},
		"$set":  bson.M{"updatedAt": time.Now().UTC()},
	})
}

func (s *MongoQuoteStore) update(ctx context.Context, id string, update bson.M) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateByID(ctx, oid, update)
	if err != nil {
		return fmt.Errorf("update quote: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func quoteFilter(f QuoteFilter) bson.M {
	filter := bson.M{}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	return filter
}
