// internal/errors/service.go
package errors

import (
	"fmt"
	"strings"
)

// Service turns errors into CLI output and process exit codes
type Service struct {
	messageHandler *MessageHandler
}

// MessageHandler converts technical errors to user-friendly messages
type MessageHandler struct {
	showTechnical bool
}

// NewService creates an error presentation service
func NewService() *Service {
	return &Service{
		messageHandler: &MessageHandler{showTechnical: false},
	}
}

// WithVerbose enables technical error details
func (s *Service) WithVerbose(verbose bool) *Service {
	s.messageHandler.showTechnical = verbose
	return s
}

// GetUserFriendlyError converts technical errors to user-friendly messages
func (s *Service) GetUserFriendlyError(err error) (title, message string, suggestions []string) {
	if err == nil {
		return "", "", nil
	}

	switch CodeOf(err) {
	case CodeInvalidListType:
		return "Unsupported Site",
			"The URL does not belong to a supported list site.",
			[]string{
				"Supported sites: IMDb, Kinopoisk, MyAnimeList, Letterboxd, Shikimori, Trakt, Goodreads",
				"YouTube history must be parsed with the history command",
			}
	case CodeInvalidListPage:
		return "List Page Unavailable",
			"The list page could not be fetched or did not have the expected structure.",
			[]string{
				"Check if the URL opens in a browser",
				"Make sure the list is public",
				"The website structure might have changed",
			}
	case CodeInvalidFileExtension:
		return "Unsupported File",
			"The history file must have an .html or .json extension.",
			[]string{
				"Use the watch-history file from your data export as-is",
			}
	}

	errStr := strings.ToLower(err.Error())

	if strings.Contains(errStr, "yaml") {
		return "Configuration Error",
			"The configuration file has invalid YAML syntax.",
			[]string{
				"Check YAML indentation (use spaces, not tabs)",
				"Ensure proper quoting of string values",
			}
	}

	if strings.Contains(errStr, "json") {
		return "Invalid JSON",
			"A JSON document could not be read.",
			[]string{
				"Check that the file was produced by this tool or by the site's export",
			}
	}

	return "Unexpected Error",
		"An unexpected error occurred during the operation.",
		[]string{
			"Try running the command again",
			"Run with -v for technical details",
		}
}

// GetExitCode returns appropriate exit code for error
func (s *Service) GetExitCode(err error) int {
	if err == nil {
		return 0
	}

	switch CodeOf(err) {
	case CodeInvalidListType:
		return 2
	case CodeInvalidListPage:
		return 3
	case CodeInvalidFileExtension:
		return 4
	default:
		return 1
	}
}

// FormatErrorForCLI formats error for command-line display
func (s *Service) FormatErrorForCLI(err error) string {
	title, message, suggestions := s.GetUserFriendlyError(err)

	output := fmt.Sprintf("Error: %s\n%s\n", title, message)

	if s.messageHandler.showTechnical {
		output += fmt.Sprintf("\nTechnical details: %s\n", err.Error())
	}

	if len(suggestions) > 0 {
		output += "\nSuggestions:\n"
		for _, suggestion := range suggestions {
			output += fmt.Sprintf("  - %s\n", suggestion)
		}
	}

	return output
}
