package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Indexes lists the secondary indexes each collection needs.
func Indexes() map[string][]mongo.IndexModel {
	asc := func(field string) mongo.IndexModel { return mongo.IndexModel{Keys: bson.D{{Key: field, Value: 1}}} }
	desc := func(field string) mongo.IndexModel { return mongo.IndexModel{Keys: bson.D{{Key: field, Value: -1}}} }

	return map[string][]mongo.IndexModel{
		Orders: {
			asc("user"),
			asc("customerContact"),
			desc("orderDate"),
		},
		Payments: {
			desc("paymentDate"),
			asc("customerName"),
			asc("user"),
			asc("relatedOrder"),
		},
		Incomes: {
			desc("incomeDate"),
			asc("incomeType"),
			asc("user"),
		},
		MaterialPurchases: {
			desc("purchaseDate"),
			asc("supplierName"),
			asc("user"),
		},
		Salaries: {
			desc("paymentDate"),
			asc("employeeName"),
			asc("user"),
			{Keys: bson.D{{Key: "month", Value: 1}, {Key: "year", Value: 1}}},
		},
		Users: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}
}

// EnsureIndexes creates every index from Indexes. It is idempotent.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	for name, models := range Indexes() {
		if _, err := s.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("database: indexes on %s: %w", name, err)
		}
	}
	return nil
}
