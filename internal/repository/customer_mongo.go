package repository

import (
	"context"
	"errors"

	"github.com/umalmyha/crm/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type mongoCustomerRepository struct {
	coll *mongo.Collection
}

func NewMongoCustomerRepository(db *mongo.Database) CustomerRepository {
	return &mongoCustomerRepository{coll: db.Collection(customersCollection)}
}

func (r *mongoCustomerRepository) FindMany(ctx context.Context, args model.CustomerFindManyArgs) ([]*model.Customer, error) {
	filter := customerFilter(args.Where)

	opts, err := findOptions("Customer", args.OrderFields(), customerSortKeys, args.Skip, args.Take)
	if err != nil {
		return nil, err
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	customers := make([]*model.Customer, 0)
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *mongoCustomerRepository) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *mongoCustomerRepository) Create(ctx context.Context, c *model.Customer) error {
	_, err := r.coll.InsertOne(ctx, c)
	return err
}

func (r *mongoCustomerRepository) Update(ctx context.Context, c *model.Customer) error {
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	return err
}

func (r *mongoCustomerRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

func customerFilter(w model.CustomerWhereInput) bson.D {
	filter := bson.D{}
	if w.ID != nil {
		filter = append(filter, bson.E{Key: "_id", Value: *w.ID})
	}
	if w.FirstName != nil {
		filter = append(filter, bson.E{Key: "firstName", Value: *w.FirstName})
	}
	if w.LastName != nil {
		filter = append(filter, bson.E{Key: "lastName", Value: *w.LastName})
	}
	if w.Email != nil {
		filter = append(filter, bson.E{Key: "email", Value: *w.Email})
	}
	if w.Phone != nil {
		filter = append(filter, bson.E{Key: "phone", Value: *w.Phone})
	}
	if w.Birthday != nil {
		filter = append(filter, bson.E{Key: "birthday", Value: *w.Birthday})
	}
	if w.Address != nil {
		filter = append(filter, bson.E{Key: "address.id", Value: w.Address.ID})
	}
	return filter
}
