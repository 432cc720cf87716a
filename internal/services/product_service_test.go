package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockMinioService struct {
	mock.Mock
}

func (m *MockMinioService) UploadImage(ctx context.Context, bucketName, objectName, contentType string, reader io.Reader, objectSize int64) error {
	args := m.Called(ctx, bucketName, objectName, contentType, reader, objectSize)
	return args.Error(0)
}

func (m *MockMinioService) GetPresignedURL(ctx context.Context, bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockMinioService) DeleteImage(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockMinioService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type ProductServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockProductRepository
	mockMinio *MockMinioService
	service   ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockRepo = &MockProductRepository{}
	suite.mockMinio = &MockMinioService{}
	suite.service = NewProductService(suite.mockRepo, suite.mockMinio)
}

func (suite *ProductServiceTestSuite) TearDownTest() {
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockMinio.AssertExpectations(suite.T())
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

func (suite *ProductServiceTestSuite) TestCreate_RequiresName() {
	err := suite.service.Create(context.Background(), &models.Product{Price: 10})
	assert.Error(suite.T(), err)
	suite.mockRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *ProductServiceTestSuite) TestCreate_RejectsNegativePrice() {
	err := suite.service.Create(context.Background(), &models.Product{Name: "Mug", Price: -1})
	assert.Error(suite.T(), err)
}

func (suite *ProductServiceTestSuite) TestDelete_RemovesStoredImage() {
	ctx := context.Background()
	productID := uuid.New()
	objectName := "products/" + productID.String()
	product := &models.Product{ID: productID, Name: "Mug", ImageObject: &objectName}

	suite.mockRepo.On("GetByID", ctx, productID).Return(product, nil)
	suite.mockRepo.On("Delete", ctx, productID).Return(true, nil)
	suite.mockMinio.On("DeleteImage", ctx, ProductImageBucket, objectName).Return(nil)

	deleted, err := suite.service.Delete(ctx, productID)
	suite.Require().NoError(err)
	assert.True(suite.T(), deleted)
}

func (suite *ProductServiceTestSuite) TestDelete_MissingProduct() {
	ctx := context.Background()
	productID := uuid.New()

	suite.mockRepo.On("GetByID", ctx, productID).Return(nil, nil)

	deleted, err := suite.service.Delete(ctx, productID)
	suite.Require().NoError(err)
	assert.False(suite.T(), deleted)
}

func (suite *ProductServiceTestSuite) TestUploadImage_RecordsObjectName() {
	ctx := context.Background()
	productID := uuid.New()
	product := &models.Product{ID: productID, Name: "Mug", InStock: true}
	body := strings.NewReader("image-bytes")

	suite.mockRepo.On("GetByID", ctx, productID).Return(product, nil)
	suite.mockMinio.On("UploadImage", ctx, ProductImageBucket, "products/"+productID.String(),
		"image/png", body, int64(11)).Return(nil)
	suite.mockRepo.On("Update", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.ImageObject != nil && *p.ImageObject == "products/"+productID.String()
	})).Return(nil)

	err := suite.service.UploadImage(ctx, productID, "image/png", body, 11)
	suite.Require().NoError(err)
}

func (suite *ProductServiceTestSuite) TestImageURL_Presigns() {
	ctx := context.Background()
	productID := uuid.New()
	objectName := "products/" + productID.String()
	product := &models.Product{ID: productID, Name: "Mug", ImageObject: &objectName}

	suite.mockRepo.On("GetByID", ctx, productID).Return(product, nil)
	suite.mockMinio.On("GetPresignedURL", ctx, ProductImageBucket, objectName, imageURLExpiry).
		Return("https://minio.local/presigned", nil)

	url, err := suite.service.ImageURL(ctx, productID)
	suite.Require().NoError(err)
	assert.Equal(suite.T(), "https://minio.local/presigned", url)
}

func (suite *ProductServiceTestSuite) TestImageURL_NoImage() {
	ctx := context.Background()
	productID := uuid.New()
	product := &models.Product{ID: productID, Name: "Mug"}

	suite.mockRepo.On("GetByID", ctx, productID).Return(product, nil)

	_, err := suite.service.ImageURL(ctx, productID)
	assert.Error(suite.T(), err)
}
