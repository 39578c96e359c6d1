package main

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/db"
	"github.com/SmdhMdep/iot-status-api/pkg/fleet"
	statusHttp "github.com/SmdhMdep/iot-status-api/pkg/http"
	"github.com/SmdhMdep/iot-status-api/pkg/keycloak"
	"github.com/SmdhMdep/iot-status-api/pkg/ledger"
	"github.com/SmdhMdep/iot-status-api/pkg/preview"
	"github.com/SmdhMdep/iot-status-api/pkg/repo"
	"github.com/SmdhMdep/iot-status-api/pkg/schemaregistry"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	offline := os.Getenv(common.EnvKeyStatusAPIMode) == "offline"

	var dbInstance *db.DB
	statusDbType := os.Getenv(common.EnvKeyStatusDBType)
	entities := ledger.OfflineEntities()
	entities = append(entities, fleet.OfflineEntities()...)
	entities = append(entities, schemaregistry.OfflineEntities()...)
	switch statusDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector(), entities...)
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector(), entities...)
	default:
		log.Fatal("Unknown STATUS_DB_TYPE: " + statusDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyStatusHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyStatusDefaultRate), 64); err != nil {
		log.Fatal("Invalid STATUS_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyStatusDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid STATUS_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	logger := common.GetLogger()

	keycloakClient := keycloak.NewClient()

	var previews repo.PreviewProvider
	if !offline {
		objects, err := preview.NewMinioStore()
		if err != nil {
			log.Fatalf("failed to create stream data store: %v", err)
		}
		previews = preview.NewProvider(preview.NewPackageAPIClient(), objects)
	}

	deviceRepo := repo.New(repo.Deps{
		Ledger:   ledger.NewStore(ledger.NewSQLClient(dbInstance)),
		Fleet:    fleet.NewStore(fleet.NewSQLClient(dbInstance)),
		Schemas:  schemaregistry.NewStore(schemaregistry.NewSQLClient(dbInstance)),
		Previews: previews,
		Groups:   keycloakClient,
	})

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":8080"
	}

	logger.Info("Starting HTTP server on "+httpHostPort,
		zap.Float64("default_rate", defaultRate),
		zap.Int64("default_burst", defaultBurst),
		zap.Bool("offline", offline))

	server := statusHttp.RestfulServer{
		Server:           gin.Default(),
		Repo:             deviceRepo,
		Tokens:           keycloakClient,
		RateLimiterStore: statusHttp.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
		Offline:          offline,
	}
	server.Setup()

	if err := server.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
