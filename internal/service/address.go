package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/event"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

type AddressService interface {
	Create(context.Context, model.AddressCreateInput) (*model.Address, error)
	FindMany(context.Context, model.AddressFindManyArgs) ([]*model.Address, error)
	FindOne(context.Context, model.WhereUniqueInput) (*model.Address, error)
	Update(context.Context, model.WhereUniqueInput, model.AddressUpdateInput) (*model.Address, error)
	Delete(context.Context, model.WhereUniqueInput) (*model.Address, error)
	FindCustomers(context.Context, model.WhereUniqueInput, model.CustomerFindManyArgs) ([]*model.Customer, error)
}

type addressService struct {
	addressRps    repository.AddressRepository
	customerRps   repository.CustomerRepository
	addressCache  cache.AddressCache
	customerCache cache.CustomerCache
	transactor    transactor.Transactor
	publisher     event.Publisher
	logger        logrus.FieldLogger
}

func NewAddressService(
	addressRps repository.AddressRepository,
	customerRps repository.CustomerRepository,
	addressCache cache.AddressCache,
	customerCache cache.CustomerCache,
	trx transactor.Transactor,
	publisher event.Publisher,
	logger logrus.FieldLogger,
) AddressService {
	return &addressService{
		addressRps:    addressRps,
		customerRps:   customerRps,
		addressCache:  addressCache,
		customerCache: customerCache,
		transactor:    trx,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *addressService) Create(ctx context.Context, in model.AddressCreateInput) (*model.Address, error) {
	now := timestamp()
	a := &model.Address{
		ID:        uuid.NewString(),
		Address1:  in.Address1,
		Address2:  in.Address2,
		City:      in.City,
		State:     in.State,
		Zip:       in.Zip,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.addressRps.Create(ctx, a); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, event.New(event.AddressCreated, a.ID, a, now))
	return a, nil
}

func (s *addressService) FindMany(ctx context.Context, args model.AddressFindManyArgs) ([]*model.Address, error) {
	return s.addressRps.FindMany(ctx, args)
}

func (s *addressService) FindOne(ctx context.Context, where model.WhereUniqueInput) (*model.Address, error) {
	a, err := s.addressCache.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if a != nil {
		return a, nil
	}

	a, err = s.addressRps.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if a == nil {
		return nil, nil
	}

	if err := s.addressCache.Cache(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *addressService) Update(ctx context.Context, where model.WhereUniqueInput, upd model.AddressUpdateInput) (*model.Address, error) {
	existing, err := s.addressRps.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, nil
	}

	now := timestamp()
	a := existing.MergePatch(upd)
	a.UpdatedAt = now

	if err := s.addressRps.Update(ctx, &a); err != nil {
		return nil, err
	}

	if err := s.addressCache.EvictByID(ctx, a.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, event.New(event.AddressUpdated, a.ID, &a, now))
	return &a, nil
}

// Delete removes address, cached copies of it and of detached customers are evicted once removal is committed
func (s *addressService) Delete(ctx context.Context, where model.WhereUniqueInput) (*model.Address, error) {
	var deleted *model.Address
	var attached []*model.Customer
	err := s.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		a, err := s.addressRps.FindByID(ctx, where.ID)
		if err != nil || a == nil {
			return err
		}

		attached, err = s.customerRps.FindMany(ctx, model.CustomerFindManyArgs{
			Where: model.CustomerWhereInput{Address: &model.WhereUniqueInput{ID: a.ID}},
		})
		if err != nil {
			return err
		}

		if err := s.addressRps.DeleteByID(ctx, a.ID); err != nil {
			return err
		}

		deleted = a
		return nil
	})
	if err != nil || deleted == nil {
		return nil, err
	}

	for _, c := range attached {
		if err := s.customerCache.EvictByID(ctx, c.ID); err != nil {
			return nil, err
		}
	}

	if err := s.addressCache.EvictByID(ctx, deleted.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, event.New(event.AddressDeleted, deleted.ID, deleted, timestamp()))
	return deleted, nil
}

func (s *addressService) FindCustomers(ctx context.Context, where model.WhereUniqueInput, args model.CustomerFindManyArgs) ([]*model.Customer, error) {
	a, err := s.FindOne(ctx, where)
	if err != nil {
		return nil, err
	}

	if a == nil {
		return nil, errors.NewEntryNotFoundErr(where)
	}

	args.Where.Address = &model.WhereUniqueInput{ID: a.ID}
	return s.customerRps.FindMany(ctx, args)
}
