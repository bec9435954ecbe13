package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultGatewayName       = "emigateway"
	DefaultSalesGatewayName  = "salesgateway"
	DefaultMaterializedTopic = "emi-materialized-view-updates"
	DefaultConsumerGroup     = "ms-user-management_mbe_user-management"
)

type Config struct {
	AppEnv                string        `json:"app_env"`
	ServerPort            int           `json:"server_port"`
	JWTPublicKey          string        `json:"-"`
	JWKSURL               string        `json:"jwks_url"`
	JWTIssuer             string        `json:"jwt_issuer"`
	DefaultRateLimit      int           `json:"default_rate_limit"`
	GlobalRateLimit       int           `json:"global_rate_limit"`
	RequestTimeout        time.Duration `json:"request_timeout"`
	GatewayName           string        `json:"gateway_name"`
	SalesGatewayName      string        `json:"sales_gateway_name"`
	MaterializedViewTopic string        `json:"materialized_view_topic"`
	ConsumerGroup         string        `json:"consumer_group"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per business
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	// keys coming from a single-line env var keep their newlines escaped
	publicKey := strings.ReplaceAll(os.Getenv("JWT_PUBLIC_KEY"), `\n`, "\n")

	return &Config{
		AppEnv:                getEnvWithDefault("APP_ENV", "development"),
		ServerPort:            serverPort,
		JWTPublicKey:          publicKey,
		JWKSURL:               os.Getenv("JWT_JWKS_URL"),
		JWTIssuer:             os.Getenv("JWT_ISSUER"),
		DefaultRateLimit:      defaultRateLimit,
		GlobalRateLimit:       globalRateLimit,
		RequestTimeout:        getEnvDurationWithDefault("GATEWAY_REQUEST_TIMEOUT", 2*time.Second),
		GatewayName:           getEnvWithDefault("GATEWAY_NAME", DefaultGatewayName),
		SalesGatewayName:      getEnvWithDefault("SALES_GATEWAY_NAME", DefaultSalesGatewayName),
		MaterializedViewTopic: getEnvWithDefault("MATERIALIZED_VIEW_TOPIC", DefaultMaterializedTopic),
		ConsumerGroup:         getEnvWithDefault("EVENT_CONSUMER_GROUP", DefaultConsumerGroup),
	}, nil
}
