package repository

import (
	"context"
	"fmt"

	"github.com/umalmyha/crm/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	customersCollection = "customers"
	addressesCollection = "addresses"
)

// EnsureMongoIndexes creates indexes customer lookups by address rely on, existing indexes are kept
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(customersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "address.id", Value: 1}},
		Options: options.Index().SetName("customers_address_id_idx"),
	})
	if err != nil {
		return fmt.Errorf("failed to create customers indexes - %w", err)
	}
	return nil
}

var customerSortKeys = map[string]string{
	"addressId": "address.id",
	"birthday":  "birthday",
	"createdAt": "createdAt",
	"email":     "email",
	"firstName": "firstName",
	"id":        "_id",
	"lastName":  "lastName",
	"phone":     "phone",
	"updatedAt": "updatedAt",
}

var addressSortKeys = map[string]string{
	"address_1": "address_1",
	"address_2": "address_2",
	"city":      "city",
	"createdAt": "createdAt",
	"id":        "_id",
	"state":     "state",
	"updatedAt": "updatedAt",
	"zip":       "zip",
}

// findOptions converts sort directives and pagination to mongo find options
func findOptions(entity string, fields []model.OrderField, sortable map[string]string, skip, take int) (*options.FindOptions, error) {
	opts := options.Find()

	if len(fields) > 0 {
		sort := bson.D{}
		for _, f := range fields {
			key, ok := sortable[f.Field]
			if !ok {
				return nil, &model.UnknownFieldErr{Entity: entity, Field: f.Field}
			}

			direction := 1
			if f.Order == model.SortOrderDesc {
				direction = -1
			}
			sort = append(sort, bson.E{Key: key, Value: direction})
		}
		opts.SetSort(sort)
	}

	if skip > 0 {
		opts.SetSkip(int64(skip))
	}

	if take > 0 {
		opts.SetLimit(int64(take))
	}

	return opts, nil
}
