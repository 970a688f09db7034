// internal/config/config.go
package config

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Default returns a configuration with every default applied
func Default() *Config {
	config := &Config{}
	applyDefaults(config)
	return config
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("configuration filename cannot be empty")
	}

	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	return LoadFromBytes(data)
}

// LoadFromBytes loads configuration from YAML bytes
func LoadFromBytes(data []byte) (*Config, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("configuration data cannot be empty")
	}

	expandedData := expandEnvironmentVariables(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML configuration: %w", err)
	}

	applyDefaults(&config)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadFromReader loads configuration from an io.Reader
func LoadFromReader(reader io.Reader) (*Config, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader cannot be nil")
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from reader: %w", err)
	}

	return LoadFromBytes(data)
}

// SaveToWriter writes configuration as YAML
func SaveToWriter(config *Config, writer io.Writer) error {
	if config == nil {
		return fmt.Errorf("configuration cannot be nil")
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration to YAML: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}
	return nil
}

var envDefaultPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*):-([^}]*)\}`)

// expandEnvironmentVariables substitutes ${VAR} and ${VAR:-default}
func expandEnvironmentVariables(content string) string {
	content = envDefaultPattern.ReplaceAllStringFunc(content, func(m string) string {
		parts := envDefaultPattern.FindStringSubmatch(m)
		if v, ok := os.LookupEnv(parts[1]); ok && v != "" {
			return v
		}
		return parts[2]
	})
	return os.ExpandEnv(content)
}

func applyDefaults(config *Config) {
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}

	if config.Client.Timeout == 0 {
		config.Client.Timeout = 30 * time.Second
	}
	if config.Client.RetryDelay == 0 {
		config.Client.RetryDelay = time.Second
	}

	if config.Browser.Headless == nil {
		headless := true
		config.Browser.Headless = &headless
	}
	if config.Browser.Timeout == 0 {
		config.Browser.Timeout = 60 * time.Second
	}

	if config.Crawl.Concurrency == 0 {
		config.Crawl.Concurrency = 2
	}

	if config.Output.Format == "" {
		config.Output.Format = FormatJSON
	}
	if config.Output.Database != nil {
		if config.Output.Database.Table == "" {
			config.Output.Database.Table = "titles"
		}
		if config.Output.Database.Database == "" {
			config.Output.Database.Database = "weblist"
		}
		if config.Output.Database.Collection == "" {
			config.Output.Database.Collection = config.Output.Database.Table
		}
	}

	if config.Server.Address == "" {
		config.Server.Address = ":8080"
	}
	if config.Server.MetricsPath == "" {
		config.Server.MetricsPath = "/metrics"
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = 30 * time.Second
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = 10 * time.Minute
	}
	if config.Server.MaxUpload == 0 {
		config.Server.MaxUpload = 256 << 20
	}
}
