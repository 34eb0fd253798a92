package errors

import (
	"strings"
	"testing"
)

func TestValidateScenarioPath(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode Code
	}{
		{"toml", "scenarios/chain.toml", ""},
		{"yaml", "chain.yaml", ""},
		{"yml upper case", "CHAIN.YML", ""},
		{"absolute", "/tmp/plan.toml", ""},

		{"empty", "", ErrCodeInvalidPath},
		{"too long", strings.Repeat("a", 1100) + ".toml", ErrCodeInvalidPath},
		{"null byte", "foo\x00.toml", ErrCodeInvalidPath},
		{"newline", "foo\n.toml", ErrCodeInvalidPath},
		{"json", "plan.json", ErrCodeInvalidFormat},
		{"no extension", "plan", ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenarioPath(tt.input)
			if tt.wantCode == "" {
				if err != nil {
					t.Errorf("ValidateScenarioPath(%q) error = %v, want nil", tt.input, err)
				}
				return
			}
			if !Is(err, tt.wantCode) {
				t.Errorf("ValidateScenarioPath(%q) error = %v, want code %s", tt.input, err, tt.wantCode)
			}
		})
	}
}

func TestValidateBranchName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "left", false},
		{"with dash", "refine-a", false},
		{"with dot and digits", "v1.2_b", false},

		{"empty", "", true},
		{"too long", strings.Repeat("b", 65), true},
		{"leading dash", "-x", true},
		{"space", "a b", true},
		{"slash", "a/b", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBranchName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateBranchName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidScenario) {
				t.Errorf("ValidateBranchName(%q) code = %s, want %s", tt.input, GetCode(err), ErrCodeInvalidScenario)
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("json", "text", "json"); err != nil {
		t.Errorf("ValidateFormat(json) = %v", err)
	}
	err := ValidateFormat("xml", "text", "json")
	if !Is(err, ErrCodeInvalidFormat) {
		t.Fatalf("ValidateFormat(xml) = %v, want %s", err, ErrCodeInvalidFormat)
	}
	if !strings.Contains(err.Error(), "text, json") {
		t.Errorf("error %q should list the allowed formats", err.Error())
	}
}
