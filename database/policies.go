package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/princinho/sahoinsure/models"
	"github.com/princinho/sahoinsure/utils"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// PolicyStore persists policies created from accepted quotes.
type PolicyStore interface {
	Create(ctx context.Context, policy *models.Policy) (*models.Policy, error)
	Get(ctx context.Context, id string) (*models.Policy, error)
	List(ctx context.Context) ([]models.Policy, error)
	Delete(ctx context.Context, id string) error
	AttachDocument(ctx context.Context, id string, doc models.PolicyDocument) error
}

type MongoPolicyStore struct {
	col *mongo.Collection
}

func NewPolicyStore(db *mongo.Database) *MongoPolicyStore {
	return &MongoPolicyStore{col: db.Collection(PoliciesCollection)}
}

func (s *MongoPolicyStore) Create(ctx context.Context, policy *models.Policy) (*models.Policy, error) {
	stored := *policy
	stored.ID = bson.NewObjectID()
	if _, err := s.col.InsertOne(ctx, stored); err != nil {
		if utils.IsDuplicateKey(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert policy: %w", err)
	}
	return &stored, nil
}

func (s *MongoPolicyStore) Get(ctx context.Context, id string) (*models.Policy, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	var p models.Policy
	if err := s.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find policy: %w", err)
	}
	return &p, nil
}

func (s *MongoPolicyStore) List(ctx context.Context) ([]models.Policy, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find policies: %w", err)
	}
	defer cursor.Close(ctx)

	items := make([]models.Policy, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("decode policies: %w", err)
	}
	return items, nil
}

func (s *MongoPolicyStore) Delete(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete policy: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoPolicyStore) AttachDocument(ctx context.Context, id string, doc models.PolicyDocument) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.col.UpdateByID(ctx, oid, bson.M{
		"$set": bson.M{"document": doc, "updatedAt": time.Now().UTC()},
	})
	if err != nil {
		return fmt.Errorf("attach document: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
