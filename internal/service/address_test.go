package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	cacheMocks "github.com/umalmyha/crm/internal/cache/mocks"
	appErrors "github.com/umalmyha/crm/internal/errors"
	"github.com/umalmyha/crm/internal/event"
	eventMocks "github.com/umalmyha/crm/internal/event/mocks"
	"github.com/umalmyha/crm/internal/model"
	rpsMocks "github.com/umalmyha/crm/internal/repository/mocks"
	"github.com/umalmyha/crm/pkg/db/transactor"
)

type addressServiceTestSuite struct {
	suite.Suite
	addressSvc        AddressService
	addressRpsMock    *rpsMocks.AddressRepository
	customerRpsMock   *rpsMocks.CustomerRepository
	addressCacheMock  *cacheMocks.AddressCache
	customerCacheMock *cacheMocks.CustomerCache
	publisherMock     *eventMocks.Publisher
	ctx               context.Context
	address           *model.Address
}

func (s *addressServiceTestSuite) SetupSuite() {
	city := "Minsk"
	zip := 220000
	now := time.Date(2022, time.August, 10, 12, 0, 0, 0, time.UTC)

	s.ctx = context.Background()
	s.address = &model.Address{
		ID:        "5f3dc0a2-88d5-4d45-9f3d-2c63e5f6c8a0",
		City:      &city,
		Zip:       &zip,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (s *addressServiceTestSuite) SetupTest() {
	t := s.T()
	logger, _ := test.NewNullLogger()

	s.addressRpsMock = rpsMocks.NewAddressRepository(t)
	s.customerRpsMock = rpsMocks.NewCustomerRepository(t)
	s.addressCacheMock = cacheMocks.NewAddressCache(t)
	s.customerCacheMock = cacheMocks.NewCustomerCache(t)
	s.publisherMock = eventMocks.NewPublisher(t)
	s.addressSvc = NewAddressService(
		s.addressRpsMock,
		s.customerRpsMock,
		s.addressCacheMock,
		s.customerCacheMock,
		transactor.Passthrough,
		s.publisherMock,
		logger,
	)
}

func (s *addressServiceTestSuite) TestCreateSuccessfully() {
	city := "Grodno"

	s.addressRpsMock.On("Create", s.ctx, mock.AnythingOfType("*model.Address")).Return(nil).Once()
	s.publisherMock.On("Publish", s.ctx, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.AddressCreated
	})).Return(nil).Once()

	s.T().Log("address must be created")
	{
		a, err := s.addressSvc.Create(s.ctx, model.AddressCreateInput{City: &city})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().NotEmpty(a.ID, "id must be assigned")
		s.Assert().Equal("Grodno", *a.City)
		s.Assert().Equal(a.CreatedAt, a.UpdatedAt)
	}
}

func (s *addressServiceTestSuite) TestCreateFailed() {
	s.addressRpsMock.On("Create", s.ctx, mock.AnythingOfType("*model.Address")).Return(errors.New("db is down")).Once()

	s.T().Log("repository failure must be raised up and no event published")
	{
		_, err := s.addressSvc.Create(s.ctx, model.AddressCreateInput{})
		s.Assert().Error(err)
		s.publisherMock.AssertNotCalled(s.T(), "Publish", s.ctx, mock.AnythingOfType("event.Event"))
	}
}

func (s *addressServiceTestSuite) TestFindOneCached() {
	s.addressCacheMock.On("FindByID", s.ctx, s.address.ID).Return(nil, nil).Once()
	s.addressRpsMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Once()
	s.addressCacheMock.On("Cache", s.ctx, s.address).Return(nil).Once()

	s.T().Log("address is not in cache, found in primary datasource and cached")
	{
		a, err := s.addressSvc.FindOne(s.ctx, model.WhereUniqueInput{ID: s.address.ID})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(s.address, a)
	}
}

func (s *addressServiceTestSuite) TestUpdateClearsField() {
	s.addressRpsMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Once()
	s.addressRpsMock.On("Update", s.ctx, mock.MatchedBy(func(a *model.Address) bool {
		return a.City == nil && *a.Zip == 220000
	})).Return(nil).Once()
	s.addressCacheMock.On("EvictByID", s.ctx, s.address.ID).Return(nil).Once()
	s.publisherMock.On("Publish", s.ctx, mock.AnythingOfType("event.Event")).Return(nil).Once()

	s.T().Log("null clears city and zip stays untouched")
	{
		a, err := s.addressSvc.Update(s.ctx, model.WhereUniqueInput{ID: s.address.ID}, model.AddressUpdateInput{
			City: model.Null[string](),
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(a.City)
		s.Assert().NotNil(s.address.City, "stored address must not be mutated")
	}
}

func (s *addressServiceTestSuite) TestDeleteDetachesCustomers() {
	attached := []*model.Customer{{ID: "c1"}, {ID: "c2"}}

	s.addressRpsMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Once()
	s.customerRpsMock.On("FindMany", s.ctx, model.CustomerFindManyArgs{
		Where: model.CustomerWhereInput{Address: &model.WhereUniqueInput{ID: s.address.ID}},
	}).Return(attached, nil).Once()
	s.addressRpsMock.On("DeleteByID", s.ctx, s.address.ID).Return(nil).Once()
	s.customerCacheMock.On("EvictByID", s.ctx, "c1").Return(nil).Once()
	s.customerCacheMock.On("EvictByID", s.ctx, "c2").Return(nil).Once()
	s.addressCacheMock.On("EvictByID", s.ctx, s.address.ID).Return(nil).Once()
	s.publisherMock.On("Publish", s.ctx, mock.MatchedBy(func(e event.Event) bool {
		return e.Type == event.AddressDeleted && e.ID == s.address.ID
	})).Return(nil).Once()

	s.T().Log("address deleted and cached copies of attached customers evicted")
	{
		a, err := s.addressSvc.Delete(s.ctx, model.WhereUniqueInput{ID: s.address.ID})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(s.address, a)
	}
}

func (s *addressServiceTestSuite) TestUpdateEvictsAfterConcurrentRead() {
	var calls []string

	s.addressRpsMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Twice()
	s.addressCacheMock.On("FindByID", s.ctx, s.address.ID).Return(nil, nil).Once()
	s.addressCacheMock.On("Cache", s.ctx, s.address).Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "cache")
	}).Once()
	s.addressRpsMock.On("Update", s.ctx, mock.AnythingOfType("*model.Address")).Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "update")
		_, err := s.addressSvc.FindOne(s.ctx, model.WhereUniqueInput{ID: s.address.ID})
		s.Require().NoError(err)
	}).Once()
	s.addressCacheMock.On("EvictByID", s.ctx, s.address.ID).Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "evict")
	}).Once()
	s.publisherMock.On("Publish", s.ctx, mock.AnythingOfType("event.Event")).Return(nil).Once()

	s.T().Log("stale copy cached by read during update must be evicted")
	{
		_, err := s.addressSvc.Update(s.ctx, model.WhereUniqueInput{ID: s.address.ID}, model.AddressUpdateInput{
			City: model.Value("Brest"),
		})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal([]string{"update", "cache", "evict"}, calls)
	}
}

func (s *addressServiceTestSuite) TestDeleteEvictsAfterCommit() {
	var calls []string
	trx := transactor.Func(func(ctx context.Context, txFunc func(context.Context) error) error {
		if err := txFunc(ctx); err != nil {
			return err
		}
		calls = append(calls, "commit")
		return nil
	})
	logger, _ := test.NewNullLogger()
	svc := NewAddressService(s.addressRpsMock, s.customerRpsMock, s.addressCacheMock, s.customerCacheMock, trx, s.publisherMock, logger)
	attached := []*model.Customer{{ID: "c1"}}

	s.addressRpsMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Once()
	s.customerRpsMock.On("FindMany", s.ctx, mock.AnythingOfType("model.CustomerFindManyArgs")).Return(attached, nil).Once()
	s.addressRpsMock.On("DeleteByID", s.ctx, s.address.ID).Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "delete")
	}).Once()
	s.customerCacheMock.On("EvictByID", s.ctx, "c1").Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "evict c1")
	}).Once()
	s.addressCacheMock.On("EvictByID", s.ctx, s.address.ID).Return(nil).Run(func(mock.Arguments) {
		calls = append(calls, "evict address")
	}).Once()
	s.publisherMock.On("Publish", s.ctx, mock.AnythingOfType("event.Event")).Return(nil).Once()

	s.T().Log("cached copies are evicted only after transaction is committed")
	{
		_, err := svc.Delete(s.ctx, model.WhereUniqueInput{ID: s.address.ID})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal([]string{"delete", "commit", "evict c1", "evict address"}, calls)
	}
}

func (s *addressServiceTestSuite) TestDeleteRolledBack() {
	s.addressRpsMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Once()
	s.customerRpsMock.On("FindMany", s.ctx, mock.AnythingOfType("model.CustomerFindManyArgs")).Return([]*model.Customer{{ID: "c1"}}, nil).Once()
	s.addressRpsMock.On("DeleteByID", s.ctx, s.address.ID).Return(errors.New("db err")).Once()

	s.T().Log("nothing is evicted or published when delete failed")
	{
		_, err := s.addressSvc.Delete(s.ctx, model.WhereUniqueInput{ID: s.address.ID})
		s.Assert().Error(err)
		s.customerCacheMock.AssertNotCalled(s.T(), "EvictByID", s.ctx, "c1")
		s.addressCacheMock.AssertNotCalled(s.T(), "EvictByID", s.ctx, s.address.ID)
		s.publisherMock.AssertNotCalled(s.T(), "Publish", s.ctx, mock.AnythingOfType("event.Event"))
	}
}

func (s *addressServiceTestSuite) TestDeleteMissing() {
	s.addressRpsMock.On("FindByID", s.ctx, "missing").Return(nil, nil).Once()

	s.T().Log("delete of missing address yields nothing")
	{
		a, err := s.addressSvc.Delete(s.ctx, model.WhereUniqueInput{ID: "missing"})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Nil(a)
	}
}

func (s *addressServiceTestSuite) TestFindCustomersOfMissingAddress() {
	s.addressCacheMock.On("FindByID", s.ctx, "missing").Return(nil, nil).Once()
	s.addressRpsMock.On("FindByID", s.ctx, "missing").Return(nil, nil).Once()

	s.T().Log("customers of non-existing address can't be listed")
	{
		_, err := s.addressSvc.FindCustomers(s.ctx, model.WhereUniqueInput{ID: "missing"}, model.CustomerFindManyArgs{})
		var notFoundErr *appErrors.EntryNotFoundErr
		s.Assert().ErrorAs(err, &notFoundErr, "error must be not found error")
	}
}

func (s *addressServiceTestSuite) TestFindCustomers() {
	customers := []*model.Customer{{ID: "c1"}}

	s.addressCacheMock.On("FindByID", s.ctx, s.address.ID).Return(s.address, nil).Once()
	s.customerRpsMock.On("FindMany", s.ctx, model.CustomerFindManyArgs{
		Where: model.CustomerWhereInput{Address: &model.WhereUniqueInput{ID: s.address.ID}},
		Take:  5,
	}).Return(customers, nil).Once()

	s.T().Log("customers are filtered by address")
	{
		found, err := s.addressSvc.FindCustomers(s.ctx, model.WhereUniqueInput{ID: s.address.ID}, model.CustomerFindManyArgs{Take: 5})
		s.Assert().NoError(err, "no error must be raised")
		s.Assert().Equal(customers, found)
	}
}

// start address service test suite
func TestAddressServiceTestSuite(t *testing.T) {
	suite.Run(t, new(addressServiceTestSuite))
}
