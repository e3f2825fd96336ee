package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/config"
)

type fakeDatabase struct {
	latest    *models.AuditReport
	latestErr error
	saveErr   error

	savedReports []*models.AuditReport
	savedEvents  []models.ReorderEvent
}

func (f *fakeDatabase) SaveAuditReport(_ context.Context, report *models.AuditReport) error {
	f.savedReports = append(f.savedReports, report)
	return f.saveErr
}

func (f *fakeDatabase) GetLatestAuditReport(context.Context, string) (*models.AuditReport, error) {
	return f.latest, f.latestErr
}

func (f *fakeDatabase) SaveReorderEvents(_ context.Context, events []models.ReorderEvent) error {
	f.savedEvents = append(f.savedEvents, events...)
	return f.saveErr
}

func (f *fakeDatabase) Close(context.Context) error {
	return nil
}

func (f *fakeDatabase) Ping(context.Context) error {
	return nil
}

const appManifest = `{
  "_meta": {"title": "constellation"},
  "country": {
    "seeds": [{"filename": "a.json", "artist": "A", "name": "Song A"}],
    "subgenres": {
      "outlaw country": {
        "seeds": [
          {"filename": "a.json", "artist": "A again", "name": "Dup"},
          {"filename": "ryan-bingham_southside-of-heaven.json", "artist": "Ryan Bingham", "name": "Southside of Heaven"},
          {"filename": "b.json", "artist": "B", "name": "Song B"}
        ]
      }
    }
  },
  "_version": 1
}`

func newTestConfig(t *testing.T, doc string, profiles ...string) *config.Config {
	t.Helper()
	dir := t.TempDir()

	manifestPath := filepath.Join(dir, "genre_constellation_manifest.json")
	require.NoError(t, os.WriteFile(manifestPath, []byte(doc), 0o644))

	profilesDir := filepath.Join(dir, "profiles")
	require.NoError(t, os.Mkdir(profilesDir, 0o755))
	for _, p := range profiles {
		require.NoError(t, os.WriteFile(filepath.Join(profilesDir, p), []byte("{}"), 0o644))
	}

	return &config.Config{
		ManifestPath: manifestPath,
		ProfilesDir:  profilesDir,
	}
}

func decodeFile(t *testing.T, path string) any {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var v any
	require.NoError(t, json.Unmarshal(data, &v))
	return v
}

func TestRunAudit(t *testing.T) {
	cfg := newTestConfig(t, appManifest, "a.json", "ryan-bingham_southside-of-heaven.json")

	var out bytes.Buffer
	report, err := RunAudit(context.Background(), testLogger(), cfg, nil, &out)
	require.NoError(t, err)

	assert.Equal(t, 4, report.TotalSeeds)
	assert.Equal(t, 3, report.UniqueSeeds)
	assert.Equal(t, cfg.ManifestPath, report.ManifestPath)
	assert.Equal(t, "Missing profiles: 1\n  b.json\n    B - Song B\n", out.String())
}

func TestRunAuditLoadFailure(t *testing.T) {
	cfg := newTestConfig(t, `{"country": [`)

	var out bytes.Buffer
	_, err := RunAudit(context.Background(), testLogger(), cfg, nil, &out)
	require.Error(t, err)
	assert.Empty(t, out.String())
}

func TestRunAuditWithDatabase(t *testing.T) {
	cfg := newTestConfig(t, appManifest, "a.json")
	database := &fakeDatabase{
		latest: &models.AuditReport{
			Missing: []models.MissingProfile{{Filename: "b.json"}, {Filename: "old.json"}},
		},
	}

	var out bytes.Buffer
	report, err := RunAudit(context.Background(), testLogger(), cfg, database, &out)
	require.NoError(t, err)

	require.Len(t, database.savedReports, 1)
	assert.Same(t, report, database.savedReports[0])
	assert.Contains(t, out.String(), "Since last audit: 1 newly missing, 1 resolved\n")
	assert.Contains(t, out.String(), "  + ryan-bingham_southside-of-heaven.json\n")
	assert.Contains(t, out.String(), "  - old.json\n")
}

func TestRunAuditDatabaseErrorsAreNotFatal(t *testing.T) {
	cfg := newTestConfig(t, appManifest)
	database := &fakeDatabase{latestErr: errors.New("timeout"), saveErr: errors.New("timeout")}

	var out bytes.Buffer
	report, err := RunAudit(context.Background(), testLogger(), cfg, database, &out)
	require.NoError(t, err)
	assert.Len(t, report.Missing, 3)
	assert.NotContains(t, out.String(), "Since last audit")
}

func TestRunReorderWritesManifest(t *testing.T) {
	cfg := newTestConfig(t, appManifest)
	cfg.Backup = true
	database := &fakeDatabase{}

	targets := []Target{
		{Path: []string{"country", "outlaw country"}, Filename: "ryan-bingham_southside-of-heaven.json"},
	}

	var out bytes.Buffer
	adjustments, err := RunReorder(context.Background(), testLogger(), cfg, database, targets, &out)
	require.NoError(t, err)
	require.Len(t, adjustments, 1)

	assert.Equal(t,
		"country > outlaw country: first seed is now ryan-bingham_southside-of-heaven.json (was at index 1)\n",
		out.String(),
	)

	saved := decodeFile(t, cfg.ManifestPath).(map[string]any)
	outlaw := saved["country"].(map[string]any)["subgenres"].(map[string]any)["outlaw country"].(map[string]any)
	seeds := outlaw["seeds"].([]any)
	require.Len(t, seeds, 3)
	assert.Equal(t, "ryan-bingham_southside-of-heaven.json", seeds[0].(map[string]any)["filename"])
	assert.Equal(t, "a.json", seeds[1].(map[string]any)["filename"])
	assert.Equal(t, "b.json", seeds[2].(map[string]any)["filename"])

	backup, err := os.ReadFile(cfg.ManifestPath + ".bak")
	require.NoError(t, err)
	assert.Equal(t, appManifest, string(backup))

	require.Len(t, database.savedEvents, 1)
	assert.Equal(t, []string{"country", "outlaw country"}, database.savedEvents[0].Path)
	assert.Equal(t, 1, database.savedEvents[0].PreviousIndex)
	assert.Equal(t, "a.json", database.savedEvents[0].PreviousFirst)
}

func TestRunReorderNoTargetsRoundTrips(t *testing.T) {
	cfg := newTestConfig(t, appManifest)
	before := decodeFile(t, cfg.ManifestPath)

	var out bytes.Buffer
	adjustments, err := RunReorder(context.Background(), testLogger(), cfg, nil, nil, &out)
	require.NoError(t, err)
	assert.Empty(t, adjustments)

	if diff := cmp.Diff(before, decodeFile(t, cfg.ManifestPath)); diff != "" {
		t.Fatalf("no-op reorder changed the manifest (-want +got):\n%s", diff)
	}
}

func TestRunReorderDryRun(t *testing.T) {
	cfg := newTestConfig(t, appManifest)
	cfg.DryRun = true

	targets := []Target{
		{Path: []string{"country", "outlaw country"}, Filename: "b.json"},
	}

	var out bytes.Buffer
	_, err := RunReorder(context.Background(), testLogger(), cfg, nil, targets, &out)
	require.NoError(t, err)

	got, err := os.ReadFile(cfg.ManifestPath)
	require.NoError(t, err)
	assert.Equal(t, appManifest, string(got))
	assert.Contains(t, out.String(), "first seed is now b.json")
}

func TestRunReorderFailureLeavesManifestUntouched(t *testing.T) {
	tests := []struct {
		name    string
		targets []Target
		wantErr error
	}{
		{
			name: "seed not found",
			targets: []Target{
				{Path: []string{"country", "outlaw country"}, Filename: "b.json"},
				{Path: []string{"country", "outlaw country"}, Filename: "missing.json"},
			},
			wantErr: ErrSeedNotFound,
		},
		{
			name: "path not found",
			targets: []Target{
				{Path: []string{"country", "bro country"}, Filename: "a.json"},
			},
			wantErr: ErrPathNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := newTestConfig(t, appManifest)
			database := &fakeDatabase{}

			var out bytes.Buffer
			_, err := RunReorder(context.Background(), testLogger(), cfg, database, tt.targets, &out)
			require.ErrorIs(t, err, tt.wantErr)

			got, err := os.ReadFile(cfg.ManifestPath)
			require.NoError(t, err)
			assert.Equal(t, appManifest, string(got))
			assert.Empty(t, out.String())
			assert.Empty(t, database.savedEvents)
		})
	}
}

func TestCompareAudits(t *testing.T) {
	previous := &models.AuditReport{Missing: []models.MissingProfile{{Filename: "a"}, {Filename: "b"}}}
	current := &models.AuditReport{Missing: []models.MissingProfile{{Filename: "b"}, {Filename: "c"}, {Filename: "d"}}}

	changes := CompareAudits(previous, current)
	assert.Equal(t, []models.MissingProfile{{Filename: "c"}, {Filename: "d"}}, changes.NewlyMissing)
	assert.Equal(t, []models.MissingProfile{{Filename: "a"}}, changes.Resolved)

	same := CompareAudits(current, current)
	assert.Empty(t, same.NewlyMissing)
	assert.Empty(t, same.Resolved)
}
