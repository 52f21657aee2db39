package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	DynamoDB DynamoDBConfig
	Tax      TaxConfig
	Payments PaymentsConfig
	Kafka    KafkaConfig
}

type ServerConfig struct {
	Port int
}

// DynamoDBConfig holds the connection settings and table names.
//
// Local DynamoDB does not validate credentials, but the AWS SDK requires them,
// hence the "local" defaults.
type DynamoDBConfig struct {
	Region           string
	Endpoint         string
	AccessKeyID      string
	SecretAccessKey  string
	EstimatesTable   string
	AuditTable       string
	SettingsTable    string
	TechniciansTable string
	PaymentsTable    string
}

type TaxConfig struct {
	// DefaultPolicy is used when the settings table has no tax_applies_to entry.
	DefaultPolicy string
}

type PaymentsConfig struct {
	MercadoPagoAccessToken string
	MockMode               bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnvInt("SERVER_PORT", 8080),
		},
		DynamoDB: DynamoDBConfig{
			Region:           getEnvString("AWS_REGION", "us-east-1"),
			Endpoint:         os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:      getEnvString("AWS_ACCESS_KEY_ID", "local"),
			SecretAccessKey:  getEnvString("AWS_SECRET_ACCESS_KEY", "local"),
			EstimatesTable:   getEnvString("ESTIMATES_TABLE", "estimates"),
			AuditTable:       getEnvString("AUDIT_EVENTS_TABLE", "audit_events"),
			SettingsTable:    getEnvString("SETTINGS_TABLE", "settings"),
			TechniciansTable: getEnvString("TECHNICIANS_TABLE", "technicians"),
			PaymentsTable:    getEnvString("PAYMENTS_TABLE", "payments"),
		},
		Tax: TaxConfig{
			DefaultPolicy: getEnvString("TAX_APPLIES_TO", "parts_labor"),
		},
		Payments: PaymentsConfig{
			MercadoPagoAccessToken: os.Getenv("MERCADOPAGO_ACCESS_TOKEN"),
			MockMode:               getEnvBool("PAYMENT_GATEWAY_MOCK") || getEnvBool("MERCADOPAGO_MOCK"),
		},
		Kafka: KafkaConfig{
			Brokers: getEnvList("KAFKA_BROKERS"),
			Topic:   getEnvString("KAFKA_ESTIMATE_EVENTS_TOPIC", "estimate-events"),
		},
	}
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}

func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
