package main

import (
	"fmt"
	"log/slog"
	"os"

	"freight/cmd"
	"freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/consolidationrepo"
	"freight/internal/adapters/out/postgres/invoicerepo"
	"freight/internal/adapters/out/postgres/notificationrepo"
	"freight/internal/adapters/out/postgres/parcelrepo"
	"freight/internal/adapters/out/postgres/tariffrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:             goDotEnvVariable("HTTP_PORT"),
		DBHost:               goDotEnvVariable("DB_HOST"),
		DBPort:               goDotEnvVariable("DB_PORT"),
		DBUser:               goDotEnvVariable("DB_USER"),
		DBPassword:           goDotEnvVariable("DB_PASSWORD"),
		DBName:               goDotEnvVariable("DB_NAME"),
		DBSslMode:            goDotEnvVariable("DB_SSLMODE"),
		BillingCurrency:      goDotEnvVariable("BILLING_CURRENCY"),
		NotificationCronSpec: goDotEnvVariable("NOTIFICATION_CRON_SPEC"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustOpenDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	return db
}

func mustMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&parcelrepo.ParcelDTO{},
		&parcelrepo.ParcelEventDTO{},
		&consolidationrepo.ConsolidationDTO{},
		&consolidationrepo.ConsolidationParcelDTO{},
		&consolidationrepo.ConsolidationEventDTO{},
		&tariffrepo.TariffTierDTO{},
		&invoicerepo.InvoiceDTO{},
		&invoicerepo.InvoiceLineDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := http.NewServer(
		app.CreateCreateConsolidationCommandHandler(),
		app.CreateAdvanceConsolidationStatusCommandHandler(),
		app.CreateGenerateBulkInvoicesCommandHandler(),
		app.CreateResolveTariffQueryHandler(),
		app.CreateGetConsolidationHistoryQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)
	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
