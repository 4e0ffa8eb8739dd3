package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSources_Resolve(t *testing.T) {
	tests := []struct {
		name    string
		sources Sources
		env     map[string]string
		want    []string
	}{
		{
			name:    "DefaultsOnly",
			sources: Sources{Defaults: []string{"a", "b"}},
			want:    []string{"a", "b"},
		},
		{
			name:    "CustomOverridesDefaults",
			sources: Sources{Defaults: []string{"a"}, Custom: []string{"x", "y"}},
			want:    []string{"x", "y"},
		},
		{
			name:    "CustomWithDefaultPlaceholder",
			sources: Sources{Defaults: []string{"a", "b"}, Custom: []string{DefaultToken, "x"}},
			want:    []string{"a", "b", "x"},
		},
		{
			name:    "EnvUnionsWithDefaults",
			sources: Sources{Defaults: []string{"a"}, EnvVar: "PK_TEST_SOURCES"},
			env:     map[string]string{"PK_TEST_SOURCES": "x, y"},
			want:    []string{"a", "x", "y"},
		},
		{
			name: "EnvReplacesDefaultsWhenOptedOut",
			sources: Sources{
				Defaults:        []string{"a"},
				EnvVar:          "PK_TEST_SOURCES",
				ReplaceDefaults: true,
			},
			env:  map[string]string{"PK_TEST_SOURCES": "x"},
			want: []string{"x"},
		},
		{
			name:    "EnvWithDefaultPlaceholderDeduplicates",
			sources: Sources{Defaults: []string{"a"}, EnvVar: "PK_TEST_SOURCES"},
			env:     map[string]string{"PK_TEST_SOURCES": "DEFAULT,x"},
			want:    []string{"a", "x"},
		},
		{
			name:    "EmptyEnvFallsBackToDefaults",
			sources: Sources{Defaults: []string{"a"}, EnvVar: "PK_TEST_SOURCES"},
			env:     map[string]string{"PK_TEST_SOURCES": ""},
			want:    []string{"a"},
		},
		{
			name:    "CustomBeatsEnv",
			sources: Sources{Defaults: []string{"a"}, EnvVar: "PK_TEST_SOURCES", Custom: []string{"c"}},
			env:     map[string]string{"PK_TEST_SOURCES": "x"},
			want:    []string{"c"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}
			assert.Equal(t, tt.want, tt.sources.Resolve())
		})
	}
}

func TestSources_Fingerprint_ChangesWithNewSource(t *testing.T) {
	base := Sources{Defaults: []string{"a"}}
	extended := Sources{Defaults: []string{"a"}, Custom: []string{DefaultToken, "b"}}

	assert.NotEqual(t, base.Fingerprint(), extended.Fingerprint())
}
