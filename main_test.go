package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/config"
	"storefront/internal/events"
	"storefront/internal/logging"
	"storefront/internal/services"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	v := viper.New()
	v.Set("JWT_SECRET", "test_jwt_secret")
	v.Set("DB_DRIVER", "memory")
	v.Set("SEED_ON_START", true)
	cfg, err := config.FromViper(v)
	require.NoError(t, err)
	return cfg
}

func TestBuild_MemoryStoreSeedsAdmin(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	a, err := build(ctx, cfg, logging.Discard())
	require.NoError(t, err)
	defer a.close(ctx, logging.Discard())

	assert.Nil(t, a.consumer)

	body := `{"email":"` + services.SeedAdminEmail + `","password":"` + services.SeedAdminPassword + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, true, user["isAdmin"])

	req = httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	resp, err = a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	var categories []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&categories))
	assert.Len(t, categories, 4)
}

func TestOpenBroker_DefaultsToNop(t *testing.T) {
	a := &application{}
	publisher, err := openBroker(testConfig(t), logging.Discard(), a)
	require.NoError(t, err)
	assert.Equal(t, events.Nop{}, publisher)
	assert.Nil(t, a.consumer)
	assert.Empty(t, a.closers)
}

func TestOpenBroker_KafkaRegistersConsumer(t *testing.T) {
	cfg := testConfig(t)
	cfg.EventsBroker = "kafka"
	cfg.KafkaBrokers = []string{"localhost:9092"}

	a := &application{}
	publisher, err := openBroker(cfg, logging.Discard(), a)
	require.NoError(t, err)
	assert.IsType(t, &events.Kafka{}, publisher)
	assert.IsType(t, &events.KafkaConsumer{}, a.consumer)
	assert.Len(t, a.closers, 2)
	for _, c := range a.closers {
		assert.NoError(t, c())
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t)
	cfg.AppPort = "127.0.0.1:0"
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, run(ctx, cfg, logging.Discard()))
}
