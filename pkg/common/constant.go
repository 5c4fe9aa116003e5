package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFeederDBType string = "FEEDER_DB_TYPE"
	EnvKeyFeederDbPath string = "FEEDER_DB_PATH"

	EnvKeyFeederHttpHostPort string = "FEEDER_HTTP_HOST_PORT"

	EnvKeyFeederStreamType string = "FEEDER_STREAM_TYPE"
	EnvKeyFeederMqttBroker string = "FEEDER_MQTT_BROKER"
	EnvKeyFeederWebhookURL string = "FEEDER_WEBHOOK_URL"

	EnvKeyFeederWatchdogTimeout string = "FEEDER_WATCHDOG_TIMEOUT"
	EnvKeyFeederGraceWindow     string = "FEEDER_GRACE_WINDOW"

	EnvKeyFeederDefaultRate  string = "FEEDER_DEFAULT_RATE"
	EnvKeyFeederDefaultBurst string = "FEEDER_DEFAULT_BURST"

	LoggerNameFeederCore    string = "feeder_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerNameRemoteStream  string = "remote_stream"
	LoggerNameNotify        string = "notify"

	LoggerFieldFeederCategory string = "category"

	LoggerCategorySchedule  string = "schedule"
	LoggerCategoryTrigger   string = "trigger"
	LoggerCategoryThreshold string = "threshold"
	LoggerCategoryErrorChan string = "errorchan"
	LoggerCategoryWatchdog  string = "watchdog"
)
