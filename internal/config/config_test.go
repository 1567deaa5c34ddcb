package config

import (
	"reflect"
	"testing"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("SLACK_SIGNING_SECRET", "signing-secret")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("SECRET_KEY", "secret-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %s, want json", cfg.LogFormat)
	}
	if cfg.TodoChannel != "general" {
		t.Errorf("TodoChannel = %s, want general", cfg.TodoChannel)
	}
	if cfg.DBName != "slackbridge" {
		t.Errorf("DBName = %s, want slackbridge", cfg.DBName)
	}
	if cfg.MongoTransactions {
		t.Error("MongoTransactions should default to false")
	}
	if !cfg.DevMode() {
		t.Error("DevMode() should be true without SLACK_TOKEN")
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("Addr() = %s, want :8080", cfg.Addr())
	}
}

func TestLoad_CustomValues(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SLACK_TOKEN", "xoxb-test")
	t.Setenv("SLACK_TODO_CHANNEL", "todos")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("MONGODB_TRANSACTIONS", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.SlackToken != "xoxb-test" {
		t.Errorf("SlackToken = %s, want xoxb-test", cfg.SlackToken)
	}
	if cfg.DevMode() {
		t.Error("DevMode() should be false when SLACK_TOKEN is set")
	}
	if cfg.TodoChannel != "todos" {
		t.Errorf("TodoChannel = %s, want todos", cfg.TodoChannel)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", cfg.LogLevel)
	}
	if !cfg.MongoTransactions {
		t.Error("MongoTransactions should be true")
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required env vars, got nil")
	}
}

func TestConfig_Origins(t *testing.T) {
	testCases := []struct {
		name  string
		value string
		want  []string
		creds bool
	}{
		{name: "wildcard", value: "*", want: []string{"*"}},
		{name: "list with spaces", value: "https://a.example, https://b.example", want: []string{"https://a.example", "https://b.example"}, creds: true},
		{name: "empty falls back to wildcard", value: " , ", want: []string{"*"}},
		{name: "wildcard inside a list", value: "https://a.example,*", want: []string{"https://a.example", "*"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Config{AllowedOrigins: tc.value}
			if got := cfg.Origins(); !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("Origins() = %v, want %v", got, tc.want)
			}
			if got := cfg.CORSCredentials(); got != tc.creds {
				t.Fatalf("CORSCredentials() = %v, want %v", got, tc.creds)
			}
		})
	}
}

func TestLoadSlack_IgnoresServerSettings(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("SECRET_KEY", "")
	t.Setenv("SLACK_TOKEN", "xoxb-cli")

	cfg, err := LoadSlack()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.SlackToken != "xoxb-cli" {
		t.Errorf("SlackToken = %s, want xoxb-cli", cfg.SlackToken)
	}
	if cfg.DevMode() {
		t.Error("DevMode() should be false with SLACK_TOKEN set")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", cfg.LogLevel)
	}
}
