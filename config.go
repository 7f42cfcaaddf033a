package efflux

import (
	"os"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// Configuration represents the Hadoop job configuration. The streaming jar
// hands properties down through the environment with dots replaced by
// underscores, so lookups shim dotted property names onto that form.
type Configuration struct {
	values map[string]string
}

// NewConfiguration builds a Configuration from the process environment.
func NewConfiguration() *Configuration {
	return NewConfigurationFromEnv(os.Environ())
}

// NewConfigurationFromEnv builds a Configuration from "key=value" pairs.
func NewConfigurationFromEnv(pairs []string) *Configuration {
	conf := &Configuration{values: make(map[string]string)}
	for _, pair := range pairs {
		key, val, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		// hadoop never hands down uppercased keys
		if strings.IndexFunc(key, unicode.IsUpper) >= 0 {
			continue
		}
		conf.Insert(key, val)
	}
	return conf
}

// Get retrieves a configuration value.
func (c *Configuration) Get(key string) (string, bool) {
	v, ok := c.values[shimKey(key)]
	return v, ok
}

// GetDefault retrieves a configuration value, falling back to def.
func (c *Configuration) GetDefault(key, def string) string {
	if v, ok := c.Get(key); ok {
		return v
	}
	return def
}

// Insert stores a key/value pair.
func (c *Configuration) Insert(key, val string) {
	c.values[shimKey(key)] = val
}

// TaskID returns the task attempt identifier assigned by the orchestrator,
// or a locally generated one when running outside Hadoop.
func (c *Configuration) TaskID() string {
	if v, ok := c.Get("mapreduce.task.attempt.id"); ok {
		return v
	}
	return "local_" + uuid.NewString()
}

func (c *Configuration) clone() *Configuration {
	out := &Configuration{values: make(map[string]string, len(c.values))}
	for k, v := range c.values {
		out.values[k] = v
	}
	return out
}

func shimKey(key string) string {
	return strings.ReplaceAll(key, ".", "_")
}
