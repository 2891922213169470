package gormstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/taskforge/scheduler/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type UserStoreTestSuite struct {
	suite.Suite
	db    *gorm.DB
	store *UserStore
}

func (s *UserStoreTestSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	s.Require().NoError(err)
	s.Require().NoError(Migrate(db))
	s.db = db
	s.store = NewUserStore(db)
}

func (s *UserStoreTestSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func TestUserStoreTestSuite(t *testing.T) {
	suite.Run(t, new(UserStoreTestSuite))
}

func (s *UserStoreTestSuite) TestCreate_AssignsIDWhenUnset() {
	user := &models.User{Username: "alice", PasswordHash: "hashed", SchedulingZone: "UTC"}
	require.NoError(s.T(), s.store.Create(context.Background(), user))
	assert.False(s.T(), user.ID.IsNil())
}

func (s *UserStoreTestSuite) TestCreate_RejectsDuplicateUsername() {
	require.NoError(s.T(), s.store.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "h1"}))
	err := s.store.Create(context.Background(), &models.User{Username: "alice", PasswordHash: "h2"})
	s.Error(err)
}

func (s *UserStoreTestSuite) TestFindByUsername_ReturnsMatchingUser() {
	user := &models.User{Username: "bob", PasswordHash: "hashed"}
	require.NoError(s.T(), s.store.Create(context.Background(), user))

	found, err := s.store.FindByUsername(context.Background(), "bob")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), user.ID, found.ID)
}

func (s *UserStoreTestSuite) TestFindByUsername_MissingReturnsNotFound() {
	_, err := s.store.FindByUsername(context.Background(), "nobody")
	s.Error(err)
}

func (s *UserStoreTestSuite) TestUpdate_PersistsSchedulingZoneChange() {
	user := &models.User{Username: "carol", PasswordHash: "hashed", SchedulingZone: "UTC"}
	require.NoError(s.T(), s.store.Create(context.Background(), user))

	user.SchedulingZone = "America/New_York"
	require.NoError(s.T(), s.store.Update(context.Background(), user))

	found, err := s.store.FindByID(context.Background(), user.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), "America/New_York", found.SchedulingZone)
}
