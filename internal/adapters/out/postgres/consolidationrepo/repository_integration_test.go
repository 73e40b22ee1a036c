package consolidationrepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/consolidationrepo"
	"freight/internal/core/domain/model/consolidation"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the repository's tracker dependency in isolation tests.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type ConsolidationRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *consolidationrepo.GormConsolidationRepository
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&consolidationrepo.ConsolidationDTO{},
		&consolidationrepo.ConsolidationParcelDTO{},
		&consolidationrepo.ConsolidationEventDTO{},
	)
	suite.Require().NoError(err)

	suite.repo = consolidationrepo.NewGormConsolidationRepository(db, noopTracker{})
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE consolidations, consolidation_parcels, consolidation_events").Error
	suite.Require().NoError(err)
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) newConsolidation(parcelCount int) *consolidation.Consolidation {
	parcelIDs := make([]kernel.UUID, 0, parcelCount)
	for range parcelCount {
		parcelIDs = append(parcelIDs, kernel.NewUUID())
	}

	weight, err := kernel.NewWeight(42.5)
	suite.Require().NoError(err)

	cons, err := consolidation.NewConsolidation(
		kernel.NewUUID(),
		"CONS-"+kernel.NewUUID().String()[:8],
		kernel.NewUUID(),
		kernel.NewUUID(),
		parcelIDs,
		weight,
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return cons
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsMembership() {
	ctx := context.Background()
	cons := suite.newConsolidation(3)

	err := suite.repo.Add(ctx, cons)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, cons.ID())
	suite.Require().NoError(err)

	suite.Equal(cons.Code(), restored.Code())
	suite.Equal(consolidation.StatusOpen, restored.Status())
	suite.Equal(1, restored.Version())
	suite.InDelta(42.5, restored.TotalWeight().Pounds(), 0.001)
	suite.ElementsMatch(cons.ParcelIDs(), restored.ParcelIDs())
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repo.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	cons := suite.newConsolidation(1)

	err := suite.repo.Add(ctx, cons)
	suite.Require().NoError(err)

	err = cons.ApplyLabel(consolidation.LabelInTransit)
	suite.Require().NoError(err)
	suite.Equal(2, cons.Version())

	err = suite.repo.Update(ctx, cons)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Equal(consolidation.StatusInTransit, restored.Status())
	suite.Equal(2, restored.Version())
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	cons := suite.newConsolidation(1)

	err := suite.repo.Add(ctx, cons)
	suite.Require().NoError(err)

	// Two copies of the same aggregate race to persist version 2.
	first, err := suite.repo.Get(ctx, cons.ID())
	suite.Require().NoError(err)
	second, err := suite.repo.Get(ctx, cons.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(first.ApplyLabel(consolidation.LabelInTransit))
	suite.Require().NoError(suite.repo.Update(ctx, first))

	suite.Require().NoError(second.ApplyLabel(consolidation.LabelAtCustoms))
	err = suite.repo.Update(ctx, second)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	restored, err := suite.repo.Get(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Equal(consolidation.StatusInTransit, restored.Status(), "loser must not overwrite the winner")
}

func (suite *ConsolidationRepositoryIntegrationTestSuite) TestEvents_OrderedAndRawTextPreserved() {
	ctx := context.Background()
	cons := suite.newConsolidation(1)

	err := suite.repo.Add(ctx, cons)
	suite.Require().NoError(err)

	base := time.Now().UTC().Truncate(time.Second)

	later, err := consolidation.NewEvent(
		kernel.NewUUID(), cons.ID(), consolidation.LabelAtCustoms,
		"Tegucigalpa", "", consolidation.NotifyPolicy{Email: true}, "ops", base.Add(time.Hour))
	suite.Require().NoError(err)

	earlier, err := consolidation.RestoreEvent(
		kernel.NewUUID(), cons.ID(), consolidation.LabelInTransit, "  in TRANSIT ",
		"", "left MIA", consolidation.NotifyPolicy{}, "ops", base)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.AddEvent(ctx, later))
	suite.Require().NoError(suite.repo.AddEvent(ctx, earlier))

	events, err := suite.repo.GetEvents(ctx, cons.ID())
	suite.Require().NoError(err)
	suite.Require().Len(events, 2)

	suite.Equal(consolidation.LabelInTransit, events[0].Label())
	suite.Equal("  in TRANSIT ", events[0].LabelText(), "raw operator text survives the round trip")
	suite.Equal("left MIA", events[0].Comment())

	suite.Equal(consolidation.LabelAtCustoms, events[1].Label())
	suite.Equal("Tegucigalpa", events[1].City())
	suite.True(events[1].Notify().Email)
}

func TestConsolidationRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ConsolidationRepositoryIntegrationTestSuite))
}
