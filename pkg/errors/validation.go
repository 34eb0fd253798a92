package errors

import (
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// ScenarioExtensions lists the file extensions accepted for scenario files.
var ScenarioExtensions = []string{".toml", ".yaml", ".yml"}

// ValidateScenarioPath validates a scenario file path before it is opened.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 1024 characters
//   - No null bytes or control characters
//   - Extension must be one of ScenarioExtensions
func ValidateScenarioPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "scenario path cannot be empty")
	}

	const maxPathLength = 1024
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(ScenarioExtensions, ext) {
		return New(ErrCodeInvalidFormat, "unsupported scenario extension %q (want one of %s)",
			ext, strings.Join(ScenarioExtensions, ", "))
	}

	return nil
}

// branchNameRegex matches branch names usable as report keys and file stems.
var branchNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateBranchName validates the name of a scenario branch.
func ValidateBranchName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidScenario, "branch name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidScenario, "branch name too long (max 64 characters)")
	}
	if !branchNameRegex.MatchString(name) {
		return New(ErrCodeInvalidScenario, "invalid branch name: %q", name)
	}
	return nil
}

// ValidateFormat reports ErrCodeInvalidFormat unless format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return New(ErrCodeInvalidFormat, "invalid format %q (want one of %s)", format, strings.Join(allowed, ", "))
}
