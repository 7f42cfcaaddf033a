package efflux

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapDelimitersCreation(t *testing.T) {
	conf := NewConfigurationFromEnv([]string{
		"mapreduce_task_ismap=true",
		"stream_map_input_field_separator=:",
		"stream_map_output_field_separator=|",
	})

	delim := NewDelimiters(conf)
	require.Equal(t, ":", delim.Input())
	require.Equal(t, "|", delim.Output())
}

func TestReduceDelimitersCreation(t *testing.T) {
	conf := NewConfigurationFromEnv([]string{
		"mapreduce_task_ismap=false",
		"stream_reduce_input_field_separator=:",
		"stream_reduce_output_field_separator=|",
	})

	delim := NewDelimiters(conf)
	require.Equal(t, ":", delim.Input())
	require.Equal(t, "|", delim.Output())
}

func TestDelimiterDefaults(t *testing.T) {
	delim := NewDelimiters(NewConfigurationFromEnv(nil))
	require.Equal(t, "\t", delim.Input())
	require.Equal(t, "\t", delim.Output())
}
