package repositories

import (
	"context"
	"testing"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type UserRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    UserRepository
	userID  uuid.UUID
	context context.Context
}

func (suite *UserRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewUserRepo(mock)
	suite.userID = uuid.New()
	suite.context = context.Background()
}

func (suite *UserRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestUserRepoTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepoTestSuite))
}

func (suite *UserRepoTestSuite) TestCreate_Success() {
	user := &models.User{
		Email:        "a@x.com",
		PasswordHash: "$2a$10$fakehash",
		FullName:     "A",
		IsActive:     true,
	}
	now := time.Now()

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1`).
		WithArgs(user.Email).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), user.Email, user.PasswordHash, user.FullName, true, false).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	err := suite.repo.Create(suite.context, user)
	assert.NoError(suite.T(), err)
	assert.NotEqual(suite.T(), uuid.Nil, user.ID)
	assert.Equal(suite.T(), now, user.CreatedAt)
}

func (suite *UserRepoTestSuite) TestCreate_EmailTaken() {
	user := &models.User{Email: "a@x.com", PasswordHash: "h", FullName: "A", IsActive: true}

	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1`).
		WithArgs(user.Email).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))

	err := suite.repo.Create(suite.context, user)
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *UserRepoTestSuite) TestCreate_ConcurrentDuplicateMapsToEmailTaken() {
	user := &models.User{Email: "a@x.com", PasswordHash: "h", FullName: "A", IsActive: true}

	// The advisory COUNT sees no row, but a concurrent insert wins the race
	// and the INSERT trips the unique index.
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users WHERE email = \$1`).
		WithArgs(user.Email).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(pgxmock.AnyArg(), user.Email, user.PasswordHash, user.FullName, true, false).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := suite.repo.Create(suite.context, user)
	assert.ErrorIs(suite.T(), err, ErrEmailTaken)
}

func (suite *UserRepoTestSuite) TestGetByEmail_Found() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT id, email, password_hash, full_name, is_active, is_superuser, created_at, updated_at\s+FROM users\s+WHERE email = \$1`).
		WithArgs("a@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "full_name", "is_active", "is_superuser", "created_at", "updated_at"}).
			AddRow(suite.userID, "a@x.com", "$2a$10$fakehash", "A", true, false, now, now))

	user, err := suite.repo.GetByEmail(suite.context, "a@x.com")
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), user)
	assert.Equal(suite.T(), suite.userID, user.ID)
	assert.True(suite.T(), user.IsActive)
}

func (suite *UserRepoTestSuite) TestGetByEmail_NotFoundIsNotAnError() {
	suite.mock.ExpectQuery(`SELECT id, email, password_hash, full_name, is_active, is_superuser, created_at, updated_at\s+FROM users\s+WHERE email = \$1`).
		WithArgs("ghost@x.com").
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "full_name", "is_active", "is_superuser", "created_at", "updated_at"}))

	user, err := suite.repo.GetByEmail(suite.context, "ghost@x.com")
	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), user)
}

func (suite *UserRepoTestSuite) TestDelete_ReportsWhetherRowExisted() {
	suite.mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(suite.userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := suite.repo.Delete(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)

	suite.mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(suite.userID).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	deleted, err = suite.repo.Delete(suite.context, suite.userID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func (suite *UserRepoTestSuite) TestList_Pagination() {
	now := time.Now()
	suite.mock.ExpectQuery(`SELECT id, email, password_hash, full_name, is_active, is_superuser, created_at, updated_at\s+FROM users\s+ORDER BY created_at DESC\s+LIMIT \$1 OFFSET \$2`).
		WithArgs(10, 0).
		WillReturnRows(pgxmock.NewRows([]string{"id", "email", "password_hash", "full_name", "is_active", "is_superuser", "created_at", "updated_at"}).
			AddRow(uuid.New(), "a@x.com", "h", "A", true, false, now, now).
			AddRow(uuid.New(), "b@x.com", "h", "B", true, false, now, now))

	users, err := suite.repo.List(suite.context, 10, 0)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), users, 2)
}

func (suite *UserRepoTestSuite) TestCount() {
	suite.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM users`).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(42)))

	total, err := suite.repo.Count(suite.context)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(42), total)
}
