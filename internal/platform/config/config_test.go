// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modonevolutio/modon/internal/platform/config"
	"github.com/modonevolutio/modon/internal/platform/middleware"
)

// The server hands the loaded config straight to the origin guard.
var _ middleware.CSRFGuardConfig = (*config.Config)(nil)

func TestConfig_OriginAllowList(t *testing.T) {
	t.Run("splits_and_trims", func(t *testing.T) {
		cfg := &config.Config{
			AllowedOrigins: "https://modonevolutio.com, https://www.modonevolutio.com ,",
		}

		assert.Equal(t, []string{
			"https://modonevolutio.com",
			"https://www.modonevolutio.com",
		}, cfg.OriginAllowList())
	})

	t.Run("empty_value_yields_nil", func(t *testing.T) {
		cfg := &config.Config{}

		assert.Nil(t, cfg.OriginAllowList())
	})
}

func TestConfig_EnvironmentModes(t *testing.T) {
	dev := &config.Config{Environment: "development"}
	prod := &config.Config{Environment: "production"}

	assert.True(t, dev.IsDevelopment())
	assert.False(t, dev.IsProduction())
	assert.True(t, prod.IsProduction())
	assert.False(t, prod.IsDevelopment())
}
