package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"reconcile/cmd"
	httpin "reconcile/internal/adapters/in/http"
	"reconcile/internal/adapters/out/postgres/dispatchrepo"
	"reconcile/internal/adapters/out/postgres/sessionrepo"
)

func main() {
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:         goDotEnvVariable("HTTP_PORT"),
		DBHost:           goDotEnvVariable("DB_HOST"),
		DBPort:           goDotEnvVariable("DB_PORT"),
		DBUser:           goDotEnvVariable("DB_USER"),
		DBPassword:       goDotEnvVariable("DB_PASSWORD"),
		DBName:           goDotEnvVariable("DB_NAME"),
		DBSslMode:        goDotEnvVariable("DB_SSLMODE"),
		ValidationAPIURL: goDotEnvVariable("VALIDATION_API_URL"),
		DispatchAPIURL:   goDotEnvVariable("DISPATCH_API_URL"),
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

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = db.AutoMigrate(
		&sessionrepo.SessionDTO{},
		&sessionrepo.CandidateDTO{},
		&dispatchrepo.RecordDTO{},
	); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	return db
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	server := httpin.NewServer(
		app.CreateOpenSessionCommandHandler(),
		app.CreateIngestScanCommandHandler(),
		app.CreateValidateCodesCommandHandler(),
		app.CreateSaveScanBufferCommandHandler(),
		app.CreateSetCrewCommandHandler(),
		app.CreateUpdateCandidateCommandHandler(),
		app.CreateRemoveCandidateCommandHandler(),
		app.CreateFinalizeSessionCommandHandler(),
		app.CreateResetSessionCommandHandler(),
		app.CreateRevalidateOfflineCommandHandler(),
		app.CreateGetActiveSessionQueryHandler(),
		app.CreateGetDispatchRecordQueryHandler(),
		app.CreateGetDispatchRecordsQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
