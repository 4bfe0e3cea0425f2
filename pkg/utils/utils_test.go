package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{StorageDriver: StorageDriverPostgres},
		Database: DatabaseConfig{Name: "ranch", User: "ranch", MaxConns: 10},
		Reserve: ReserveConfig{
			MaxAttempts:    5,
			InitialBackoff: 20 * time.Millisecond,
			MaxBackoff:     500 * time.Millisecond,
			Timeout:        10 * time.Second,
		},
	}
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.App.StorageDriver = "sqlite" }},
		{"postgres without database", func(c *Config) { c.Database.Name = "" }},
		{"too few connections", func(c *Config) { c.Database.MaxConns = 1 }},
		{"no attempts", func(c *Config) { c.Reserve.MaxAttempts = 0 }},
		{"max backoff below initial", func(c *Config) { c.Reserve.MaxBackoff = time.Millisecond }},
		{"no timeout", func(c *Config) { c.Reserve.Timeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	t.Run("memory driver needs no database", func(t *testing.T) {
		c := validConfig()
		c.App.StorageDriver = StorageDriverMemory
		c.Database = DatabaseConfig{}
		assert.NoError(t, c.Validate())
	})
}

func TestValidateStruct_UsesJSONNames(t *testing.T) {
	type payload struct {
		Dates     []string `json:"dates" validate:"required,min=1,unique,dive,datetime=2006-01-02"`
		PartySize int      `json:"party_size" validate:"min=1,max=500"`
	}

	errs := ValidateStruct(payload{Dates: []string{"2026-10-16", "2026-10-16"}, PartySize: 0})

	assert.Equal(t, "Must not contain duplicates", errs["dates"])
	assert.Equal(t, "Must be at least 1", errs["party_size"])

	errs = ValidateStruct(payload{Dates: []string{"16/10/2026"}, PartySize: 2})
	assert.Equal(t, "Must be a date in YYYY-MM-DD format", errs["dates[0]"])

	assert.Nil(t, ValidateStruct(payload{Dates: []string{"2026-10-16"}, PartySize: 2}))
}

func TestGenerateOrderCode(t *testing.T) {
	code := GenerateOrderCode(time.Date(2026, 10, 16, 7, 30, 5, 0, time.UTC))
	assert.Regexp(t, regexp.MustCompile(`^HUNT-20261016-073005-\d{4}$`), code)
}

func TestParseInt(t *testing.T) {
	assert.Equal(t, 3, ParseInt("3", 1))
	assert.Equal(t, 1, ParseInt("", 1))
	assert.Equal(t, 1, ParseInt("abc", 1))
	assert.Equal(t, 10, ParseInt("-2", 10))
}

func TestResponseServiceUnavailable(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseServiceUnavailable(rec, "busy", 2, map[string]string{"reason": "contention"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))

	var body Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Status)
	assert.Equal(t, "busy", body.Message)
}

func TestCustomerContext(t *testing.T) {
	_, ok := GetCustomerIDFromContext(SetCustomerContext(httptest.NewRequest(http.MethodGet, "/", nil).Context(), ""))
	assert.False(t, ok)

	id, ok := GetCustomerIDFromContext(SetCustomerContext(httptest.NewRequest(http.MethodGet, "/", nil).Context(), "cust-7"))
	assert.True(t, ok)
	assert.Equal(t, "cust-7", id)
}
