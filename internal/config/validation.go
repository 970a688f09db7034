// internal/config/validation.go
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/moreffnest/weblist-parsers/internal/utils"
)

// ValidationError describes one invalid setting
type ValidationError struct {
	Field   string
	Message string
}

func (ve ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ve.Field, ve.Message)
}

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the configuration and reports every problem found
func (c *Config) Validate() error {
	var problems []ValidationError

	if _, err := utils.ParseLogLevel(c.LogLevel); err != nil {
		problems = append(problems, ValidationError{"log_level", err.Error()})
	}

	if c.Client.Timeout < 0 {
		problems = append(problems, ValidationError{"client.timeout", "cannot be negative"})
	}
	if c.Client.RetryAttempts < 0 {
		problems = append(problems, ValidationError{"client.retry_attempts", "cannot be negative"})
	}
	if c.Client.MaxBodyBytes < 0 {
		problems = append(problems, ValidationError{"client.max_body_bytes", "cannot be negative"})
	}

	if c.Crawl.MaxPages < 0 {
		problems = append(problems, ValidationError{"crawl.max_pages", "cannot be negative"})
	}
	if c.Crawl.Concurrency < 0 {
		problems = append(problems, ValidationError{"crawl.concurrency", "cannot be negative"})
	}

	if !contains(ValidOutputFormats(), c.Output.Format) {
		problems = append(problems, ValidationError{"output.format",
			fmt.Sprintf("unsupported format %q (valid: %s)", c.Output.Format, strings.Join(ValidOutputFormats(), ", "))})
	}
	if IsDatabaseFormat(c.Output.Format) {
		switch {
		case c.Output.Database == nil:
			problems = append(problems, ValidationError{"output.database", "required for database formats"})
		case c.Output.Database.DSN == "":
			problems = append(problems, ValidationError{"output.database.dsn", "cannot be empty"})
		case !tableNamePattern.MatchString(c.Output.Database.Table):
			problems = append(problems, ValidationError{"output.database.table",
				fmt.Sprintf("invalid table name %q", c.Output.Database.Table)})
		}
	}

	if len(problems) == 0 {
		return nil
	}

	msgs := make([]string, len(problems))
	for i, p := range problems {
		msgs[i] = p.Error()
	}
	return fmt.Errorf("configuration validation failed: %s", strings.Join(msgs, "; "))
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
