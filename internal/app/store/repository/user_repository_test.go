package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"storepulse/internal/app/store/entity"
)

type UserRepositoryTestSuite struct {
	suite.Suite
	db    *gorm.DB
	mock  sqlmock.Sqlmock
	repo  UserRepository
	sqlDB *sql.DB
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryTestSuite))
}

func (s *UserRepositoryTestSuite) SetupTest() {
	var err error
	s.sqlDB, s.mock, err = sqlmock.New()
	require.NoError(s.T(), err)

	dialector := postgres.New(postgres.Config{
		Conn:       s.sqlDB,
		DriverName: "postgres",
	})

	s.db, err = gorm.Open(dialector, &gorm.Config{TranslateError: true})
	require.NoError(s.T(), err)

	s.repo = NewUserRepository(s.db)
}

func (s *UserRepositoryTestSuite) TearDownTest() {
	s.sqlDB.Close()
}

func (s *UserRepositoryTestSuite) TestCreate_Success() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	s.mock.ExpectCommit()

	user := &entity.User{
		Email:     "alex@example.com",
		FirstName: "Alex",
		LastName:  "Smith",
		Password:  "hash",
		IsActive:  true,
	}

	err := s.repo.Create(context.Background(), user)

	s.NoError(err)
	s.Equal(uint(1), user.ID)
	s.NoError(s.mock.ExpectationsWereMet())
}

func (s *UserRepositoryTestSuite) TestCreate_DuplicateEmail() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "users"`)).
		WillReturnError(gorm.ErrDuplicatedKey)
	s.mock.ExpectRollback()

	user := &entity.User{Email: "taken@example.com", Password: "hash"}

	err := s.repo.Create(context.Background(), user)

	s.ErrorIs(err, ErrDuplicateKey)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_Success() {
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "first_name", "last_name", "password", "is_active", "created_at", "updated_at"}).
		AddRow(3, "alex@example.com", "Alex", "Smith", "hash", true, now, now)

	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("alex@example.com", 1).
		WillReturnRows(rows)

	user, err := s.repo.GetByEmail(context.Background(), "alex@example.com")

	s.NoError(err)
	s.Equal(uint(3), user.ID)
	s.True(user.IsActive)
}

func (s *UserRepositoryTestSuite) TestGetByEmail_NotFound() {
	s.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1`)).
		WithArgs("nobody@example.com", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := s.repo.GetByEmail(context.Background(), "nobody@example.com")

	s.ErrorIs(err, ErrUserNotFound)
	s.Nil(user)
}

func (s *UserRepositoryTestSuite) TestDelete_NotFound() {
	s.mock.ExpectBegin()
	s.mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "users" WHERE id = $1`)).
		WithArgs(44).
		WillReturnResult(sqlmock.NewResult(0, 0))
	s.mock.ExpectCommit()

	err := s.repo.Delete(context.Background(), 44)

	s.ErrorIs(err, ErrUserNotFound)
}
