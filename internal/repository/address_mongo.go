package repository

import (
	"context"
	"errors"

	"github.com/umalmyha/crm/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoAddressRepository struct {
	coll      *mongo.Collection
	customers *mongo.Collection
}

func NewMongoAddressRepository(db *mongo.Database) AddressRepository {
	return &mongoAddressRepository{
		coll:      db.Collection(addressesCollection),
		customers: db.Collection(customersCollection),
	}
}

func (r *mongoAddressRepository) FindMany(ctx context.Context, args model.AddressFindManyArgs) ([]*model.Address, error) {
	filter := addressFilter(args.Where)

	opts, err := findOptions("Address", args.OrderFields(), addressSortKeys, args.Skip, args.Take)
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	addresses := make([]*model.Address, 0)
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func (r *mongoAddressRepository) FindByID(ctx context.Context, id string) (*model.Address, error) {
	var a model.Address
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *mongoAddressRepository) Create(ctx context.Context, a *model.Address) error {
	_, err := r.coll.InsertOne(ctx, a)
	return err
}

func (r *mongoAddressRepository) Update(ctx context.Context, a *model.Address) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": a.ID}, a)
	return err
}

// DeleteByID removes address and detaches customers which referenced it
func (r *mongoAddressRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}

	_, err := r.customers.UpdateMany(ctx, bson.M{"address.id": id}, bson.M{"$unset": bson.M{"address": ""}})
	return err
}

func addressFilter(w model.AddressWhereInput) bson.D {
	filter := bson.D{}
	if w.ID != nil {
		filter = append(filter, bson.E{Key: "_id", Value: *w.ID})
	}
	if w.Address1 != nil {
		filter = append(filter, bson.E{Key: "address_1", Value: *w.Address1})
	}
	if w.Address2 != nil {
		filter = append(filter, bson.E{Key: "address_2", Value: *w.Address2})
	}
	if w.City != nil {
		filter = append(filter, bson.E{Key: "city", Value: *w.City})
	}
	if w.State != nil {
		filter = append(filter, bson.E{Key: "state", Value: *w.State})
	}
	if w.Zip != nil {
		filter = append(filter, bson.E{Key: "zip", Value: *w.Zip})
	}
	return filter
}
