package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/crm/internal/cache"
	"github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/event"
	"github.com/umalmyha/crm/internal/model"
	"github.com/umalmyha/crm/internal/repository"
)

type CustomerService interface {
	Create(context.Context, model.CustomerCreateInput) (*model.Customer, error)
	FindMany(context.Context, model.CustomerFindManyArgs) ([]*model.Customer, error)
	FindOne(context.Context, model.WhereUniqueInput) (*model.Customer, error)
	Update(context.Context, model.WhereUniqueInput, model.CustomerUpdateInput) (*model.Customer, error)
	Delete(context.Context, model.WhereUniqueInput) (*model.Customer, error)
}

type customerService struct {
	customerRps   repository.CustomerRepository
	addressRps    repository.AddressRepository
	customerCache cache.CustomerCache
	publisher     event.Publisher
	logger        logrus.FieldLogger
}

func NewCustomerService(
	customerRps repository.CustomerRepository,
	addressRps repository.AddressRepository,
	customerCache cache.CustomerCache,
	publisher event.Publisher,
	logger logrus.FieldLogger,
) CustomerService {
	return &customerService{
		customerRps:   customerRps,
		addressRps:    addressRps,
		customerCache: customerCache,
		publisher:     publisher,
		logger:        logger,
	}
}

func (s *customerService) Create(ctx context.Context, in model.CustomerCreateInput) (*model.Customer, error) {
	if in.Address != nil {
		if err := s.ensureAddress(ctx, *in.Address); err != nil {
			return nil, err
		}
	}

	now := timestamp()
	c := &model.Customer{
		ID:        uuid.NewString(),
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		Birthday:  storedTime(in.Birthday),
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.customerRps.Create(ctx, c); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, event.New(event.CustomerCreated, c.ID, c, now))
	return c, nil
}

func (s *customerService) FindMany(ctx context.Context, args model.CustomerFindManyArgs) ([]*model.Customer, error) {
	return s.customerRps.FindMany(ctx, args)
}

func (s *customerService) FindOne(ctx context.Context, where model.WhereUniqueInput) (*model.Customer, error) {
	c, err := s.customerCache.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if c != nil {
		return c, nil
	}

	c, err = s.customerRps.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, nil
	}

	if err := s.customerCache.Cache(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *customerService) Update(ctx context.Context, where model.WhereUniqueInput, upd model.CustomerUpdateInput) (*model.Customer, error) {
	existing, err := s.customerRps.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		return nil, nil
	}

	if upd.Address.Set && !upd.Address.Null {
		if err := s.ensureAddress(ctx, upd.Address.Value); err != nil {
			return nil, err
		}
	}

	now := timestamp()
	c := existing.MergePatch(upd)
	c.Birthday = storedTime(c.Birthday)
	c.UpdatedAt = now

	if err := s.customerRps.Update(ctx, &c); err != nil {
		return nil, err
	}

	// evicted after write, otherwise concurrent read could cache stale row again
	if err := s.customerCache.EvictByID(ctx, c.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, event.New(event.CustomerUpdated, c.ID, &c, now))
	return &c, nil
}

func (s *customerService) Delete(ctx context.Context, where model.WhereUniqueInput) (*model.Customer, error) {
	c, err := s.customerRps.FindByID(ctx, where.ID)
	if err != nil {
		return nil, err
	}

	if c == nil {
		return nil, nil
	}

	if err := s.customerRps.DeleteByID(ctx, c.ID); err != nil {
		return nil, err
	}

	if err := s.customerCache.EvictByID(ctx, c.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.publisher, s.logger, event.New(event.CustomerDeleted, c.ID, c, timestamp()))
	return c, nil
}

// ensureAddress fails with EntryNotFoundErr if referenced address doesn't exist
func (s *customerService) ensureAddress(ctx context.Context, ref model.WhereUniqueInput) error {
	a, err := s.addressRps.FindByID(ctx, ref.ID)
	if err != nil {
		return err
	}

	if a == nil {
		return errors.NewEntryNotFoundErr(ref)
	}
	return nil
}

// timestamp is current time in UTC with precision supported by all storages
func timestamp() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// storedTime converts client time to UTC with the same precision as timestamp
func storedTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	stored := t.UTC().Truncate(time.Millisecond)
	return &stored
}

// publish delivers event, failure is logged since entity change is already persisted
func publish(ctx context.Context, p event.Publisher, logger logrus.FieldLogger, e event.Event) {
	if err := p.Publish(ctx, e); err != nil {
		logger.WithFields(logrus.Fields{"type": e.Type, "id": e.ID}).Warnf("failed to publish event - %v", err)
	}
}
