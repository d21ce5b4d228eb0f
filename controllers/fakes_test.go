package controllers

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/princinho/sahoinsure/database"
	"github.com/princinho/sahoinsure/models"
	"go.mongodb.org/mongo-driver/v2/bson"
)

var testNow = time.Date(2025, 6, 15, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

func init() {
	gin.SetMode(gin.TestMode)
}

func lookupID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, database.ErrInvalidID
	}
	return oid, nil
}

type memQuoteStore struct {
	mu        sync.Mutex
	quotes    []models.Quote
	submitErr error
}

func (s *memQuoteStore) Submit(_ context.Context, q *models.Quote) (*models.Quote, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *q
	stored.ID = bson.NewObjectID()
	s.quotes = append(s.quotes, stored)
	return &stored, nil
}

func (s *memQuoteStore) find(id string) (*models.Quote, error) {
	oid, err := lookupID(id)
	if err != nil {
		return nil, err
	}
	for i := range s.quotes {
		if s.quotes[i].ID == oid {
			return &s.quotes[i], nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *memQuoteStore) Get(_ context.Context, id string) (*models.Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := s.find(id)
	if err != nil {
		return nil, err
	}
	cp := *q
	return &cp, nil
}

func (s *memQuoteStore) List(_ context.Context, f database.QuoteFilter) ([]models.Quote, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var matched []models.Quote
	for _, q := range s.quotes {
		if f.Status != "" && q.Status != f.Status {
			continue
		}
		if f.Category != "" && q.Category != f.Category {
			continue
		}
		matched = append(matched, q)
	}
	total := int64(len(matched))
	if f.Skip >= total {
		return []models.Quote{}, total, nil
	}
	matched = matched[f.Skip:]
	if f.Limit > 0 && int64(len(matched)) > f.Limit {
		matched = matched[:f.Limit]
	}
	return matched, total, nil
}

func (s *memQuoteStore) UpdateStatus(_ context.Context, id string, status models.QuoteStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := s.find(id)
	if err != nil {
		return err
	}
	q.Status = status
	return nil
}

func (s *memQuoteStore) AddNote(_ context.Context, id string, note models.QuoteNote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, err := s.find(id)
	if err != nil {
		return err
	}
	q.Notes = append(q.Notes, note)
	return nil
}

type memPolicyStore struct {
	mu       sync.Mutex
	policies []models.Policy
}

func (s *memPolicyStore) Create(_ context.Context, p *models.Policy) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.policies {
		if existing.PolicyNumber == p.PolicyNumber {
			return nil, database.ErrDuplicate
		}
	}
	stored := *p
	stored.ID = bson.NewObjectID()
	s.policies = append(s.policies, stored)
	return &stored, nil
}

func (s *memPolicyStore) index(id string) (int, error) {
	oid, err := lookupID(id)
	if err != nil {
		return -1, err
	}
	for i := range s.policies {
		if s.policies[i].ID == oid {
			return i, nil
		}
	}
	return -1, database.ErrNotFound
}

func (s *memPolicyStore) Get(_ context.Context, id string) (*models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return nil, err
	}
	cp := s.policies[i]
	return &cp, nil
}

func (s *memPolicyStore) List(context.Context) ([]models.Policy, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Policy{}, s.policies...), nil
}

func (s *memPolicyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.policies = append(s.policies[:i], s.policies[i+1:]...)
	return nil
}

func (s *memPolicyStore) AttachDocument(_ context.Context, id string, doc models.PolicyDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.policies[i].Document = &doc
	return nil
}

type memUserStore struct {
	users map[string]models.User
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	u, ok := s.users[email]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &u, nil
}

func (s *memUserStore) UpsertAdmin(context.Context, string, string) (bool, error) {
	return false, errors.New("not supported")
}

type memObjectStore struct {
	objects map[string][]byte
	deleted []string
}

func newMemObjectStore() *memObjectStore {
	return &memObjectStore{objects: map[string][]byte{}}
}

func (m *memObjectStore) Put(_ context.Context, name, _ string, body io.Reader) (string, error) {
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	m.objects[name] = b
	return "https://files.example.com/" + name, nil
}

func (m *memObjectStore) Delete(_ context.Context, names ...string) error {
	for _, n := range names {
		delete(m.objects, n)
		m.deleted = append(m.deleted, n)
	}
	return nil
}
