package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/routekit/pkg/config"
)

type serverConfig struct {
	Addr         string        `env:"TEST_HTTP_ADDR" envDefault:":8080"`
	TaskSlots    int           `env:"TEST_TASK_SLOTS" envDefault:"10"`
	TaskDuration time.Duration `env:"TEST_TASK_DURATION" envDefault:"2s"`
}

func TestLoadDefaults(t *testing.T) {
	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 10, cfg.TaskSlots)
	assert.Equal(t, 2*time.Second, cfg.TaskDuration)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TEST_HTTP_ADDR", ":9090")
	t.Setenv("TEST_TASK_SLOTS", "25")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 25, cfg.TaskSlots)
	assert.Equal(t, 2*time.Second, cfg.TaskDuration, "unset variables keep defaults")
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("TEST_TASK_SLOTS", "not-a-number")

	var cfg serverConfig
	err := config.Load(&cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}

func TestLoadNilPointer(t *testing.T) {
	err := config.Load[serverConfig](nil)
	assert.ErrorIs(t, err, config.ErrNilPointer)
}

func TestMustLoadPanicsOnError(t *testing.T) {
	t.Setenv("TEST_TASK_SLOTS", "nope")

	assert.Panics(t, func() {
		var cfg serverConfig
		config.MustLoad(&cfg)
	})
}
