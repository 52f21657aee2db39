package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"SERVER_PORT", "ESTIMATES_TABLE", "TAX_APPLIES_TO", "KAFKA_BROKERS", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Server.Port != 8080 {
		t.Fatalf("expected port 8080, got %d", cfg.Server.Port)
	}
	if cfg.DynamoDB.EstimatesTable != "estimates" || cfg.DynamoDB.AuditTable != "audit_events" {
		t.Fatalf("unexpected tables: %+v", cfg.DynamoDB)
	}
	if cfg.Tax.DefaultPolicy != "parts_labor" {
		t.Fatalf("unexpected default tax policy: %q", cfg.Tax.DefaultPolicy)
	}
	if cfg.Kafka.Enabled() {
		t.Fatalf("kafka should be disabled without brokers")
	}
	if cfg.Payments.MockMode {
		t.Fatalf("mock mode should be off by default")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("TAX_APPLIES_TO", "parts_only")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("MERCADOPAGO_MOCK", " Yes ")

	cfg := Load()
	if cfg.Server.Port != 9090 {
		t.Fatalf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.Tax.DefaultPolicy != "parts_only" {
		t.Fatalf("unexpected tax policy: %q", cfg.Tax.DefaultPolicy)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if !cfg.Payments.MockMode {
		t.Fatalf("expected mock mode on")
	}
}

func TestLoad_InvalidPortFallsBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "http")
	if got := Load().Server.Port; got != 8080 {
		t.Fatalf("expected fallback port 8080, got %d", got)
	}
}
