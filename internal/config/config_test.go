package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// Empty values count as unset for envconfig defaults; this shields the
	// test from whatever the developer has exported.
	for _, key := range []string{"TRICOUNT_URL", "USER_NAME", "LOGLEVEL", "HEADLESS", "PROBE_TIMEOUT", "STEP_BUDGET"} {
		t.Setenv(key, "")
	}

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", conf.LogLevel)
	assert.True(t, conf.Headless)
	assert.Equal(t, 5*time.Second, conf.ProbeTimeout)
	assert.Equal(t, 10, conf.StepBudget)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRICOUNT_URL", "https://tricount.example/group/abc")
	t.Setenv("USER_NAME", "alice")
	t.Setenv("LOGLEVEL", "debug")
	t.Setenv("PROBE_TIMEOUT", "2s")

	conf, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://tricount.example/group/abc", conf.URL)
	assert.Equal(t, "alice", conf.Username)
	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, 2*time.Second, conf.ProbeTimeout)
}
