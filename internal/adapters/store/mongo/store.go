// Package mongo implements the quotation store on MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/jsamuelsen/quotation-service/internal/domain"
)

// Config holds connection settings for the store.
type Config struct {
	URI            string
	Database       string
	Collection     string
	ConnectTimeout time.Duration
}

// document is the BSON shape of a stored quotation. Field names are the
// camelCase keys already present in deployed collections.
type document struct {
	ID                primitive.ObjectID `bson:"_id"`
	ClientName        string             `bson:"clientName"`
	CompanyName       string             `bson:"companyName"`
	EventDate         time.Time          `bson:"eventDate"`
	StartTime         string             `bson:"startTime"`
	EndTime           string             `bson:"endTime"`
	NumberOfGuests    int                `bson:"numberOfGuests"`
	ServicesRequested []string           `bson:"servicesRequested"`
	CreatedAt         time.Time          `bson:"createdAt"`
}

var (
	byEventDate = bson.D{
		{Key: "eventDate", Value: 1},
		{Key: "_id", Value: 1},
	}
	byCreatedDate = bson.D{
		{Key: "createdAt", Value: -1},
		{Key: "_id", Value: -1},
	}
)

// Store is a QuotationStore backed by a single MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	now        func() time.Time
}

// Connect dials MongoDB, verifies the connection with a ping and returns a
// store over cfg.Database/cfg.Collection.
func Connect(ctx context.Context, cfg Config) (*Store, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("pinging mongodb: %w", err)
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
		now:        time.Now,
	}, nil
}

// NewFromCollection wraps an existing collection. The caller owns the client.
func NewFromCollection(coll *mongo.Collection) *Store {
	return &Store{
		collection: coll,
		now:        time.Now,
	}
}

// EnsureIndexes creates the indexes backing the two list orderings.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: byEventDate, Options: options.Index().SetName("eventDate_asc")},
		{Keys: byCreatedDate, Options: options.Index().SetName("createdAt_desc")},
	})
	if err != nil {
		return domain.NewPersistenceError("create indexes", err)
	}

	return nil
}

// Create inserts q with a new ObjectID and the current time, truncated to
// the millisecond precision BSON dates carry.
func (s *Store) Create(ctx context.Context, q *domain.Quotation) (*domain.Quotation, error) {
	doc := fromDomain(q)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = s.now().UTC().Truncate(time.Millisecond)

	if _, err := s.collection.InsertOne(ctx, doc); err != nil {
		return nil, domain.NewPersistenceError("insert", err)
	}

	return doc.toDomain(), nil
}

// ListByEventDate returns all quotations by event date ascending.
func (s *Store) ListByEventDate(ctx context.Context) ([]*domain.Quotation, error) {
	return s.find(ctx, byEventDate)
}

// ListByCreatedDate returns all quotations by creation time descending.
func (s *Store) ListByCreatedDate(ctx context.Context) ([]*domain.Quotation, error) {
	return s.find(ctx, byCreatedDate)
}

func (s *Store) find(ctx context.Context, sort bson.D) ([]*domain.Quotation, error) {
	cursor, err := s.collection.Find(ctx, bson.D{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, domain.NewPersistenceError("find", err)
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, domain.NewPersistenceError("decode", err)
	}

	out := make([]*domain.Quotation, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}

	return out, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return "mongodb"
}

// Check implements ports.HealthChecker by pinging the primary.
func (s *Store) Check(ctx context.Context) error {
	client := s.client
	if client == nil {
		client = s.collection.Database().Client()
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return domain.NewUnavailableError(s.Name(), err.Error())
	}

	return nil
}

// Close disconnects the client opened by Connect. It is a no-op for stores
// built with NewFromCollection.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}

	if err := s.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnecting from mongodb: %w", err)
	}

	return nil
}

func fromDomain(q *domain.Quotation) document {
	return document{
		ClientName:        q.ClientName,
		CompanyName:       q.CompanyName,
		EventDate:         q.EventDate.UTC().Truncate(time.Millisecond),
		StartTime:         q.StartTime,
		EndTime:           q.EndTime,
		NumberOfGuests:    q.NumberOfGuests,
		ServicesRequested: append([]string{}, q.ServicesRequested...),
	}
}

func (d *document) toDomain() *domain.Quotation {
	services := d.ServicesRequested
	if services == nil {
		services = []string{}
	}

	return &domain.Quotation{
		ID:                d.ID.Hex(),
		ClientName:        d.ClientName,
		CompanyName:       d.CompanyName,
		EventDate:         d.EventDate.UTC(),
		StartTime:         d.StartTime,
		EndTime:           d.EndTime,
		NumberOfGuests:    d.NumberOfGuests,
		ServicesRequested: services,
		CreatedAt:         d.CreatedAt.UTC(),
	}
}
