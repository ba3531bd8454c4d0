// Package database owns the MongoDB connection. A Store is built once at
// process start, handed to whatever needs it, and closed on shutdown.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Orders            = "orders"
	Payments          = "payments"
	Incomes           = "incomes"
	MaterialPurchases = "materialpurchases"
	Salaries          = "salaries"
	Users             = "users"
	AppLogs           = "app_logs"
)

var ErrNotConnected = errors.New("database: not connected")

// Store is the data-access context shared by repositories.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, verifies the connection and selects database name.
func Connect(ctx context.Context, uri, name string) (*Store, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetMinPoolSize(2).
		SetMaxConnIdleTime(2 * time.Minute).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &Store{client: client, db: client.Database(name)}, nil
}

// Collection returns the named collection, or nil on an unconnected store.
func (s *Store) Collection(name string) *mongo.Collection {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Collection(name)
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	if s == nil || s.client == nil {
		return ErrNotConnected
	}
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}
