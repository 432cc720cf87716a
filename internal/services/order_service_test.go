package services

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*models.Order, error) {
	args := m.Called(ctx, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Order), args.Error(1)
}

func (m *MockOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) CancelStalePending(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockProductRepository) List(ctx context.Context, limit, offset int) ([]*models.Product, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type OrderServiceTestSuite struct {
	suite.Suite
	orderRepo   *MockOrderRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	service     OrderService
	userID      uuid.UUID
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.orderRepo = &MockOrderRepository{}
	suite.productRepo = &MockProductRepository{}
	suite.userRepo = &MockUserRepository{}
	suite.service = NewOrderService(suite.orderRepo, suite.productRepo, suite.userRepo, nil)
	suite.userID = uuid.New()
}

func (suite *OrderServiceTestSuite) TearDownTest() {
	suite.orderRepo.AssertExpectations(suite.T())
	suite.productRepo.AssertExpectations(suite.T())
	suite.userRepo.AssertExpectations(suite.T())
}

func TestOrderServiceTestSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}

func (suite *OrderServiceTestSuite) activeUser() *models.User {
	return &models.User{ID: suite.userID, Email: "a@x.com", IsActive: true}
}

func (suite *OrderServiceTestSuite) TestCreate_TotalsPricesAndStartsPending() {
	ctx := context.Background()
	p1 := &models.Product{ID: uuid.New(), Name: "One", Price: 9.99, InStock: true}
	p2 := &models.Product{ID: uuid.New(), Name: "Two", Price: 20.01, InStock: true}

	suite.userRepo.On("GetByID", ctx, suite.userID).Return(suite.activeUser(), nil)
	suite.productRepo.On("GetByID", ctx, p1.ID).Return(p1, nil)
	suite.productRepo.On("GetByID", ctx, p2.ID).Return(p2, nil)
	suite.orderRepo.On("Create", ctx, mock.AnythingOfType("*models.Order")).Return(nil)

	order, err := suite.service.Create(ctx, suite.userID, []uuid.UUID{p1.ID, p2.ID})
	suite.Require().NoError(err)

	assert.Equal(suite.T(), suite.userID, order.UserID)
	assert.InDelta(suite.T(), 30.0, order.TotalPrice, 0.001)
	assert.Equal(suite.T(), models.OrderStatusPending, order.Status)
}

func (suite *OrderServiceTestSuite) TestCreate_UnknownUser() {
	ctx := context.Background()
	suite.userRepo.On("GetByID", ctx, suite.userID).Return(nil, nil)

	order, err := suite.service.Create(ctx, suite.userID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(suite.T(), err, ErrInvalidOrderUser)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreate_InactiveUser() {
	ctx := context.Background()
	user := suite.activeUser()
	user.IsActive = false
	suite.userRepo.On("GetByID", ctx, suite.userID).Return(user, nil)

	order, err := suite.service.Create(ctx, suite.userID, []uuid.UUID{uuid.New()})
	assert.ErrorIs(suite.T(), err, ErrInvalidOrderUser)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreate_OutOfStockProduct() {
	ctx := context.Background()
	product := &models.Product{ID: uuid.New(), Name: "Gone", Price: 5, InStock: false}

	suite.userRepo.On("GetByID", ctx, suite.userID).Return(suite.activeUser(), nil)
	suite.productRepo.On("GetByID", ctx, product.ID).Return(product, nil)

	order, err := suite.service.Create(ctx, suite.userID, []uuid.UUID{product.ID})
	assert.ErrorIs(suite.T(), err, ErrProductUnavailable)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestCreate_EmptyProductList() {
	ctx := context.Background()

	order, err := suite.service.Create(ctx, suite.userID, nil)
	assert.ErrorIs(suite.T(), err, ErrProductUnavailable)
	assert.Nil(suite.T(), order)
}

func (suite *OrderServiceTestSuite) TestListByUser_Paginates() {
	ctx := context.Background()
	orders := []*models.Order{
		{ID: uuid.New(), UserID: suite.userID},
		{ID: uuid.New(), UserID: suite.userID},
	}

	suite.orderRepo.On("ListByUser", ctx, suite.userID, 10, 0).Return(orders, nil)
	suite.orderRepo.On("CountByUser", ctx, suite.userID).Return(int64(12), nil)

	page, err := suite.service.ListByUser(ctx, suite.userID, 1, 10)
	suite.Require().NoError(err)
	assert.Len(suite.T(), page.Items, 2)
	assert.Equal(suite.T(), int64(12), page.Total)
	assert.Equal(suite.T(), int64(2), page.TotalPages)
}

func (suite *OrderServiceTestSuite) TestCancelStale() {
	ctx := context.Background()
	suite.orderRepo.On("CancelStalePending", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil)

	cancelled, err := suite.service.CancelStale(ctx, 24*time.Hour)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), int64(3), cancelled)
}
