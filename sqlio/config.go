package sqlio

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var identifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ConnConfig defines MySQL connection parameters.
type ConnConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	Params   map[string]string
}

// DSN renders the go-sql-driver connection string.
func (c ConnConfig) DSN() string {
	host := c.Host
	if host == "" {
		host = "127.0.0.1"
	}
	port := c.Port
	if port == 0 {
		port = 3306
	}
	params := map[string]string{
		"parseTime": "true",
		"charset":   "utf8mb4",
	}
	for k, v := range c.Params {
		params[k] = v
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, params[k]))
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?%s",
		c.User,
		c.Password,
		host,
		port,
		c.Database,
		strings.Join(parts, "&"),
	)
}

// SourceConfig configures the export of a table into streaming job input.
type SourceConfig struct {
	Table     string
	KeyColumn string
	ValColumn string
	Where     string
}

func (c *SourceConfig) WithDefaults() {
	if c.KeyColumn == "" {
		c.KeyColumn = "record_key"
	}
	if c.ValColumn == "" {
		c.ValColumn = "record_value"
	}
	if c.Where == "" {
		c.Where = "1=1"
	}
}

// SinkConfig configures the import of reducer output into a table.
type SinkConfig struct {
	Table     string
	KeyColumn string
	ValColumn string
	BatchSize int
	Replace   bool
}

func (c *SinkConfig) WithDefaults() {
	if c.KeyColumn == "" {
		c.KeyColumn = "record_key"
	}
	if c.ValColumn == "" {
		c.ValColumn = "record_value"
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 2000
	}
}

func quoteIdentifier(s string) (string, error) {
	if !identifierRe.MatchString(s) {
		return "", fmt.Errorf("invalid identifier: %s", s)
	}
	return "`" + s + "`", nil
}

func asString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
