package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"liyu1981.xyz/pet-feeder-service/pkg/common"
	"liyu1981.xyz/pet-feeder-service/pkg/db"
	"liyu1981.xyz/pet-feeder-service/pkg/feeder"
	feederHttp "liyu1981.xyz/pet-feeder-service/pkg/http"
	"liyu1981.xyz/pet-feeder-service/pkg/notify"
	"liyu1981.xyz/pet-feeder-service/pkg/remote"
)

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v, should be a duration like 5m or 3s", key, err)
	}
	return d
}

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	var dbInstance *db.DB
	feederDbType := os.Getenv(common.EnvKeyFeederDBType)
	switch feederDbType {
	case "file":
		dbInstance = db.GetInstance(db.UseSqliteDialector())
	case "memory":
		dbInstance = db.GetInstance(db.UseMemorySqliteDialector())
	default:
		log.Fatal("Unknown FEEDER_DB_TYPE: " + feederDbType)
	}

	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyFeederHttpHostPort))

	var defaultRate float64
	var defaultBurst int64

	if defaultRate, err = strconv.ParseFloat(os.Getenv(common.EnvKeyFeederDefaultRate), 64); err != nil {
		log.Fatal("Invalid FEEDER_DEFAULT_RATE, or not set in .env, should be a float64 value")
	}

	if defaultBurst, err = strconv.ParseInt(os.Getenv(common.EnvKeyFeederDefaultBurst), 10, 64); err != nil {
		log.Fatal("Invalid FEEDER_DEFAULT_BURST, or not set in .env, should be an int value")
	}

	graceWindow := envDuration(common.EnvKeyFeederGraceWindow, 3*time.Second)
	watchdogTimeout := envDuration(common.EnvKeyFeederWatchdogTimeout, feeder.DefaultWatchdogTimeout)

	logger := common.GetLogger()

	var stream remote.Stream
	streamType := os.Getenv(common.EnvKeyFeederStreamType)
	switch streamType {
	case "mqtt":
		broker := strings.TrimSpace(os.Getenv(common.EnvKeyFeederMqttBroker))
		if broker == "" {
			log.Fatal("FEEDER_STREAM_TYPE is mqtt but FEEDER_MQTT_BROKER is not set")
		}
		stream, err = remote.NewMqttStream(broker, "pet-feeder-service-"+uuid.NewString())
		if err != nil {
			log.Fatalf("failed to connect remote stream: %v", err)
		}
	case "memory":
		stream = remote.NewMemoryStream()
	default:
		log.Fatal("Unknown FEEDER_STREAM_TYPE: " + streamType)
	}
	defer stream.Close()

	var notifier notify.Notifier = notify.LogNotifier{}
	if webhookURL := strings.TrimSpace(os.Getenv(common.EnvKeyFeederWebhookURL)); webhookURL != "" {
		notifier, err = notify.NewWebhookNotifier(webhookURL)
		if err != nil {
			log.Fatalf("failed to create webhook notifier: %v", err)
		}
		logger.Info("Notifications go to webhook: " + webhookURL)
	}

	feederCore := feeder.Feeder{
		Db:       *dbInstance,
		Notifier: notifier,
		Remote:   stream,
	}
	feederCore.Triggers = feeder.NewTriggerScheduler(
		feeder.NewSystemWakeTimer(),
		feederCore.HandleFeedingDue,
	)
	feederCore.WithServices(feeder.ServiceOpts{
		Schedule: feederCore.GetISchedule(),
		Alert:    feederCore.GetIAlert(),
		Feed:     feederCore.GetIFeed(),
	})

	engine := feeder.NewThresholdEngine(&feederCore, graceWindow)
	monitor := feeder.NewErrorMonitor(&feederCore)
	watchdog := feeder.NewWatchdog(monitor, watchdogTimeout, time.Now())

	if err := feeder.BindStreams(stream, engine, monitor, watchdog, time.Now); err != nil {
		log.Fatalf("failed to bind remote streams: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go watchdog.Run(ctx, watchdogTimeout/4)

	if err := feederCore.RearmAll(); err != nil {
		log.Fatalf("failed to arm stored schedules: %v", err)
	}
	logger.Info("Stored schedules armed",
		zap.Int("count", feederCore.Triggers.ArmedCount()))

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":1080"
	}

	logger.Info("Starting HTTP server on port " + httpHostPort)
	rs := &feederHttp.RestfulServer{
		Server:           gin.Default(),
		Feeder:           &feederCore,
		RateLimiterStore: feeder.NewRateLimiterStore(rate.Limit(defaultRate), int(defaultBurst)),
	}
	rs.Setup()

	logger.Info("http server created with:",
		zap.String("default_limiter",
			fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", defaultRate, defaultBurst)))

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
