package scenario

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/porder/pkg/errors"
	"github.com/matzehuels/porder/pkg/ordering"
)

func TestLoad_TOMLAndYAMLAgree(t *testing.T) {
	fromTOML, err := Load(filepath.Join("testdata", "refine.toml"))
	require.NoError(t, err)
	fromYAML, err := Load(filepath.Join("testdata", "refine.yaml"))
	require.NoError(t, err)

	assert.Equal(t, fromTOML, fromYAML)

	assert.Equal(t, "refine", fromTOML.Name)
	assert.Equal(t, []ordering.StepID{1, 5, 9}, fromTOML.Steps)
	assert.Equal(t, ordering.Bounds{Start: 0, Goal: 100}, fromTOML.Bounds())
	require.Len(t, fromTOML.Ops, 4)
	assert.False(t, fromTOML.Ops[3].Expected())
	assert.True(t, fromTOML.Ops[2].Expected())

	split, ok := fromTOML.Branch("split")
	require.True(t, ok)
	assert.Equal(t, []ordering.StepID{6, 7}, split.Ops[0].Inserted)

	_, ok = fromTOML.Branch("missing")
	assert.False(t, ok)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing file", filepath.Join("testdata", "nope.toml"), errors.ErrCodeFileNotFound},
		{"bad extension", filepath.Join("testdata", "refine.json"), errors.ErrCodeInvalidFormat},
		{"empty path", "", errors.ErrCodeInvalidPath},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v, want code %s", err, tt.code)
		})
	}
}

func TestLoad_DefaultsNameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.yaml")
	writeFile(t, path, "ops:\n  - {op: order, before: 1, after: 2}\n")

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "chain", sc.Name)
	assert.Equal(t, ordering.DefaultBounds(), sc.Bounds())
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	t.Run("toml", func(t *testing.T) {
		_, err := Parse([]byte("name = \"x\"\ncolour = 3\n"), FormatTOML)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidScenario))
		assert.Contains(t, err.Error(), "colour")
	})
	t.Run("yaml", func(t *testing.T) {
		_, err := Parse([]byte("name: x\ncolour: 3\n"), FormatYAML)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrCodeInvalidScenario))
	})
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte("name = "), FormatTOML)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidScenario))

	_, err = Parse([]byte("ops: [}"), FormatYAML)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidScenario))

	_, err = Parse(nil, Format("json"))
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupported))
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"a.toml", FormatTOML, false},
		{"a.TOML", FormatTOML, false},
		{"dir/a.yaml", FormatYAML, false},
		{"a.yml", FormatYAML, false},
		{"a.json", "", true},
	}
	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if tt.wantErr {
			assert.Error(t, err, tt.path)
			continue
		}
		require.NoError(t, err, tt.path)
		assert.Equal(t, tt.want, got, tt.path)
	}
}
