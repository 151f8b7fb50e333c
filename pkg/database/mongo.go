// Package database owns the two persistence handles of the catalog: the
// MongoDB client holding the brand/sub-brand/model collections, and a small
// relational store for admin accounts.
//
// Both are opened once at boot by internal/server and passed to the layers
// that need them; nothing in this package is reachable as hidden global
// state.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tintandorange-gh/tno-catalog-distributor/config"
)

// Collection names. Kept lowercase-plural to match the data seeded by earlier
// deployments of the catalog.
const (
	BrandCollection    = "brands"
	SubBrandCollection = "subbrands"
	ModelCollection    = "models"
)

// Mongo wraps the process-wide MongoDB client and the catalog database.
type Mongo struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// ConnectMongo opens the catalog database and verifies the connection.
func ConnectMongo(ctx context.Context) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("database: connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping mongo: %w", err)
	}

	return &Mongo{
		Client: client,
		DB:     client.Database(config.MongoDatabase()),
	}, nil
}

// Brands returns the brand collection.
func (m *Mongo) Brands() *mongo.Collection { return m.DB.Collection(BrandCollection) }

// SubBrands returns the sub-brand collection.
func (m *Mongo) SubBrands() *mongo.Collection { return m.DB.Collection(SubBrandCollection) }

// Models returns the model collection.
func (m *Mongo) Models() *mongo.Collection { return m.DB.Collection(ModelCollection) }

// EnsureIndexes creates the uniqueness backstops the store relies on under
// concurrent writes: brand name globally unique, sub-brand name unique per
// brand, model name unique per sub-brand, plus slug lookup indexes.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	type spec struct {
		col    *mongo.Collection
		keys   bson.D
		unique bool
	}

	specs := []spec{
		{m.Brands(), bson.D{{Key: "name", Value: 1}}, true},
		{m.Brands(), bson.D{{Key: "slug", Value: 1}}, false},
		{m.SubBrands(), bson.D{{Key: "name", Value: 1}, {Key: "brandId", Value: 1}}, true},
		{m.SubBrands(), bson.D{{Key: "brandId", Value: 1}}, false},
		{m.SubBrands(), bson.D{{Key: "slug", Value: 1}}, false},
		{m.Models(), bson.D{{Key: "name", Value: 1}, {Key: "subBrandId", Value: 1}}, true},
		{m.Models(), bson.D{{Key: "subBrandId", Value: 1}}, false},
		{m.Models(), bson.D{{Key: "slug", Value: 1}}, false},
	}

	for _, s := range specs {
		model := mongo.IndexModel{Keys: s.keys}
		if s.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("database: index %s: %w", s.col.Name(), err)
		}
	}
	return nil
}

// WithTransaction runs fn inside a multi-document transaction when the
// deployment supports one (replica set or mongos). On standalone servers the
// transaction machinery is unavailable; fn then runs without one and the
// caller's delete ordering is the only consistency guarantee. Operators
// running standalone should expect a small orphan window if the process dies
// mid-cascade.
func (m *Mongo) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.Client.StartSession()
	if err != nil {
		return fn(ctx)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	if err != nil && transactionsUnsupported(err) {
		return fn(ctx)
	}
	return err
}

func transactionsUnsupported(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) && cmdErr.Code == 20 { // IllegalOperation
		return strings.Contains(cmdErr.Message, "Transaction")
	}
	return false
}

// Disconnect closes the client. Used by CLI commands; the server holds the
// connection for its whole lifetime.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
