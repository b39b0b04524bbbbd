package partnerrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/partnerrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/partner"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of the aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// PartnerRepositoryIntegrationTestSuite provides integration tests for the
// partner repository using a PostgreSQL container.
type PartnerRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *partnerrepo.GormPartnerRepository
	tracker    *MockAggregateTracker
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&partnerrepo.PartnerDTO{}))
}

func (suite *PartnerRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE partners").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = partnerrepo.NewGormPartnerRepository(suite.db, suite.tracker)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *PartnerRepositoryIntegrationTestSuite) createTestPartner(name string) *partner.Partner {
	aggregate, err := partner.NewPartner(kernel.NewUUID(), kernel.NewUUID(), name)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestAdd_ValidPartner_Success() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("Ravi Kumar")
	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner).Once()

	err := suite.repository.Add(ctx, testPartner)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&partnerrepo.PartnerDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_ExistingPartner_ReturnsPartner() {
	ctx := context.Background()

	original := suite.createTestPartner("Ravi Kumar")
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), retrieved.ID())
	suite.Equal(original.UserID(), retrieved.UserID())
	suite.Equal("Ravi Kumar", retrieved.Name())
	suite.True(retrieved.IsAvailable())
	suite.True(retrieved.IsActive())
	suite.InDelta(5.0, retrieved.Rating(), 0.001)
	suite.Equal(0, retrieved.TotalRatings())
	suite.Equal(0, retrieved.TotalDeliveries())
	suite.True(retrieved.TotalEarnings().IsZero())
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGet_NonExistentPartner_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_StatsAndFlags_RoundTrip() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("Ravi Kumar")
	suite.tracker.On("TrackAggregate", testPartner.ID(), testPartner)
	suite.Require().NoError(suite.repository.Add(ctx, testPartner))

	earnings, err := kernel.NewMoneyFromFloat(123.45)
	suite.Require().NoError(err)

	suite.Require().NoError(testPartner.ApplyRating(4))
	suite.Require().NoError(testPartner.RecordDelivery(earnings))
	testPartner.SetAvailability(false)

	suite.Require().NoError(suite.repository.Update(ctx, testPartner))

	retrieved, err := suite.repository.Get(ctx, testPartner.ID())
	suite.Require().NoError(err)

	suite.False(retrieved.IsAvailable())
	suite.InDelta(4.0, retrieved.Rating(), 0.001)
	suite.Equal(1, retrieved.TotalRatings())
	suite.Equal(1, retrieved.TotalDeliveries())
	suite.True(retrieved.TotalEarnings().IsEqual(earnings))
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestUpdate_NonExistentPartner_ReturnsNotFoundError() {
	ctx := context.Background()

	testPartner := suite.createTestPartner("Ravi Kumar")

	err := suite.repository.Update(ctx, testPartner)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *PartnerRepositoryIntegrationTestSuite) TestGetAllEligible_FiltersByFlagsAndRating() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	eligible := suite.createTestPartner("Ravi Kumar")
	suite.Require().NoError(suite.repository.Add(ctx, eligible))

	unavailable := suite.createTestPartner("Anita Desai")
	unavailable.SetAvailability(false)
	suite.Require().NoError(suite.repository.Add(ctx, unavailable))

	inactive := suite.createTestPartner("Vikram Singh")
	inactive.SetActive(false)
	suite.Require().NoError(suite.repository.Add(ctx, inactive))

	lowRated := suite.createTestPartner("Priya Sharma")
	suite.Require().NoError(lowRated.ApplyRating(2))
	suite.Require().NoError(suite.repository.Add(ctx, lowRated))

	found, err := suite.repository.GetAllEligible(ctx, 3.5)
	suite.Require().NoError(err)

	suite.Require().Len(found, 1)
	suite.Equal(eligible.ID(), found[0].ID())
}

func TestPartnerRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PartnerRepositoryIntegrationTestSuite))
}
