package app

import (
	"path/filepath"
	"testing"

	"github.com/anthanhphan/icon-layout-configurator/internal/images/config"
	"github.com/anthanhphan/icon-layout-configurator/pkg/idgen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClock(t *testing.T) {
	cfg := config.DefaultConfig()

	clock, client := newClock(cfg.Clock)
	assert.IsType(t, &idgen.SystemClock{}, clock)
	assert.Nil(t, client)

	cfg.Clock.Source = config.ClockRedis
	clock, client = newClock(cfg.Clock)
	require.NotNil(t, client)
	defer client.Close()
	assert.IsType(t, &idgen.RedisClock{}, clock)
}

func TestNew_ExplicitConfigMissing(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
