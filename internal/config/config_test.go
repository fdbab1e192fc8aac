package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_CreatesDefaultOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, "es", cfg.Locale)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoad_NormalizesAndReadsSources(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yml := `
listen: ":9000"
timezone: "UTC"
week_start: "friday"
locale: "en"
sources:
  - name: Team
    kind: ICS
    url: https://example.com/team.ics
  - id: personal
    kind: google
    calendar_id: primary
  - kind: api
    url: http://localhost:3001
`
	require.NoError(t, os.WriteFile(path, []byte(yml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Listen)
	assert.Equal(t, "monday", cfg.WeekStart)
	assert.Equal(t, "en", cfg.Locale)
	assert.Equal(t, time.Monday, cfg.FirstWeekday())
	assert.Equal(t, time.UTC, cfg.Location())

	require.Len(t, cfg.Sources, 3)
	assert.Equal(t, "Team", cfg.Sources[0].ID)
	assert.Equal(t, KindICS, cfg.Sources[0].Kind)
	assert.Equal(t, "personal", cfg.Sources[1].ID)
	assert.Equal(t, "http://localhost:3001", cfg.Sources[2].ID)
	assert.Equal(t, 12, cfg.MonthsAhead)
	assert.Equal(t, 5000, cfg.MaxOccurrencesPerEvent)
}

func TestLoad_ReadsGoogleCredentialsFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("timezone: UTC\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(`GOOGLE_CREDENTIALS={"type":"service_account"}`+"\n"), 0o600))

	t.Setenv("GOOGLE_CREDENTIALS", "")
	require.NoError(t, os.Unsetenv("GOOGLE_CREDENTIALS"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, `{"type":"service_account"}`, cfg.GoogleCredentials)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		sources []SourceConfig
		wantErr string
	}{
		{
			name:    "google without calendar",
			sources: []SourceConfig{{ID: "g", Kind: KindGoogle}},
			wantErr: "needs calendar_id",
		},
		{
			name:    "ics without url",
			sources: []SourceConfig{{ID: "i", Kind: KindICS}},
			wantErr: "ics source needs url",
		},
		{
			name:    "unknown kind",
			sources: []SourceConfig{{ID: "x", Kind: "caldav", URL: "http://x"}},
			wantErr: `unknown kind "caldav"`,
		},
		{
			name: "duplicate ids",
			sources: []SourceConfig{
				{ID: "a", Kind: KindICS, URL: "http://a"},
				{ID: "a", Kind: KindAPI, URL: "http://b"},
			},
			wantErr: `duplicate id "a"`,
		},
		{
			name:    "valid",
			sources: []SourceConfig{{ID: "a", Kind: KindICS, URL: "http://a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Timezone = "UTC"
			cfg.Sources = tt.sources
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_BadTimezone(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())
	assert.Equal(t, time.Local, cfg.Location())
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := DefaultConfig()
	cfg.Timezone = "UTC"
	cfg.Sources = []SourceConfig{{ID: "team", Name: "Team", Kind: KindICS, URL: "https://example.com/a.ics"}}
	cfg.GoogleCredentials = "secret"
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "secret")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Sources, loaded.Sources)
}
