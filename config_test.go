package efflux

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigurationCreation(t *testing.T) {
	conf := NewConfigurationFromEnv([]string{
		"FAKE_VAR=1",
		"mapred_job_id=123",
	})

	_, ok := conf.Get("FAKE_VAR")
	require.False(t, ok)

	v, ok := conf.Get("mapred_job_id")
	require.True(t, ok)
	require.Equal(t, "123", v)
}

func TestConfigurationRetrievalShimming(t *testing.T) {
	conf := NewConfigurationFromEnv([]string{"mapred_job_id=123"})

	v, ok := conf.Get("mapred.job.id")
	require.True(t, ok)
	require.Equal(t, "123", v)

	v, ok = conf.Get("mapred_job_id")
	require.True(t, ok)
	require.Equal(t, "123", v)
}

func TestConfigurationInsertionShimming(t *testing.T) {
	conf := NewConfigurationFromEnv(nil)
	conf.Insert("mapred.job.id", "123")

	v, ok := conf.Get("mapred_job_id")
	require.True(t, ok)
	require.Equal(t, "123", v)
}

func TestConfigurationDefaults(t *testing.T) {
	conf := NewConfigurationFromEnv(nil)

	require.Equal(t, "fallback", conf.GetDefault("missing.key", "fallback"))

	conf.Insert("present.key", "set")
	require.Equal(t, "set", conf.GetDefault("present.key", "fallback"))
}

func TestConfigurationTaskID(t *testing.T) {
	conf := NewConfigurationFromEnv([]string{"mapreduce_task_attempt_id=attempt_001"})
	require.Equal(t, "attempt_001", conf.TaskID())

	local := NewConfigurationFromEnv(nil)
	require.True(t, strings.HasPrefix(local.TaskID(), "local_"))
}
