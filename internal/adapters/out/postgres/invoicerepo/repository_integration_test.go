package invoicerepo_test

import (
	"context"
	"testing"
	"time"

	"freight/internal/adapters/out/postgres/invoicerepo"
	"freight/internal/core/domain/model/billing"
	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type InvoiceRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	repo      *invoicerepo.GormInvoiceRepository
}

func (suite *InvoiceRepositoryIntegrationTestSuite) SetupSuite() {
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

	err = db.AutoMigrate(&invoicerepo.InvoiceDTO{}, &invoicerepo.InvoiceLineDTO{})
	suite.Require().NoError(err)

	suite.repo = invoicerepo.NewGormInvoiceRepository(db, noopTracker{})
}

func (suite *InvoiceRepositoryIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE invoices, invoice_lines").Error
	suite.Require().NoError(err)
}

func (suite *InvoiceRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *InvoiceRepositoryIntegrationTestSuite) newBatchInvoice(
	consolidationID, clientID kernel.UUID,
) *billing.Invoice {
	line, err := billing.NewLineItem("Air freight 12.50 lb (CONS-1)", 1, 31.25)
	suite.Require().NoError(err)

	invoiceID := kernel.NewUUID()
	inv, err := billing.NewInvoice(
		invoiceID,
		"INV-20260901-"+invoiceID.String()[:8],
		&clientID,
		"",
		"",
		&consolidationID,
		[]billing.LineItem{line},
		"USD",
		time.Now().UTC(),
	)
	suite.Require().NoError(err)
	return inv
}

func (suite *InvoiceRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripsLines() {
	ctx := context.Background()
	consolidationID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	inv := suite.newBatchInvoice(consolidationID, clientID)
	err := suite.repo.Add(ctx, inv)
	suite.Require().NoError(err)

	restored, err := suite.repo.Get(ctx, inv.ID())
	suite.Require().NoError(err)

	suite.Equal(inv.Number(), restored.Number())
	suite.Equal(billing.InvoicePending, restored.Status())
	suite.Require().NotNil(restored.Client())
	suite.True(restored.Client().IsEqual(clientID))
	suite.Require().Len(restored.Lines(), 1)
	suite.InDelta(31.25, restored.Total(), 0.001)
	suite.InDelta(restored.Subtotal(), restored.Total(), 0.001)
}

func (suite *InvoiceRepositoryIntegrationTestSuite) TestAdd_DuplicateConsolidationAndClient() {
	ctx := context.Background()
	consolidationID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	err := suite.repo.Add(ctx, suite.newBatchInvoice(consolidationID, clientID))
	suite.Require().NoError(err)

	err = suite.repo.Add(ctx, suite.newBatchInvoice(consolidationID, clientID))
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)
}

func (suite *InvoiceRepositoryIntegrationTestSuite) TestAdd_VoidedInvoiceFreesTheSlot() {
	ctx := context.Background()
	consolidationID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	first := suite.newBatchInvoice(consolidationID, clientID)
	suite.Require().NoError(suite.repo.Add(ctx, first))

	suite.Require().NoError(first.Void())
	suite.Require().NoError(suite.repo.Update(ctx, first))

	exists, err := suite.repo.ExistsForConsolidationAndClient(ctx, consolidationID, clientID)
	suite.Require().NoError(err)
	suite.False(exists, "voided invoices do not count as billed")

	err = suite.repo.Add(ctx, suite.newBatchInvoice(consolidationID, clientID))
	suite.Require().NoError(err, "reissuing after a void must pass the unique index")
}

func (suite *InvoiceRepositoryIntegrationTestSuite) TestExistsForConsolidationAndClient() {
	ctx := context.Background()
	consolidationID := kernel.NewUUID()
	clientID := kernel.NewUUID()

	exists, err := suite.repo.ExistsForConsolidationAndClient(ctx, consolidationID, clientID)
	suite.Require().NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repo.Add(ctx, suite.newBatchInvoice(consolidationID, clientID)))

	exists, err = suite.repo.ExistsForConsolidationAndClient(ctx, consolidationID, clientID)
	suite.Require().NoError(err)
	suite.True(exists)

	// A different client on the same consolidation is still unbilled.
	exists, err = suite.repo.ExistsForConsolidationAndClient(ctx, consolidationID, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.False(exists)
}

func (suite *InvoiceRepositoryIntegrationTestSuite) TestUpdate_PersistsPayment() {
	ctx := context.Background()
	inv := suite.newBatchInvoice(kernel.NewUUID(), kernel.NewUUID())

	suite.Require().NoError(suite.repo.Add(ctx, inv))
	suite.Require().NoError(inv.RegisterPayment())
	suite.Require().NoError(suite.repo.Update(ctx, inv))

	restored, err := suite.repo.Get(ctx, inv.ID())
	suite.Require().NoError(err)
	suite.Equal(billing.InvoiceVerified, restored.Status())
}

func TestInvoiceRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(InvoiceRepositoryIntegrationTestSuite))
}
