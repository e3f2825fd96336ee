package service

import (
	"encoding/json"
	"testing"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"go.uber.org/zap"
)

func mustManifest(t *testing.T, doc string) *models.Manifest {
	t.Helper()
	m := new(models.Manifest)
	if err := json.Unmarshal([]byte(doc), m); err != nil {
		t.Fatalf("failed to parse test manifest: %v", err)
	}
	return m
}

func filenames(seeds []models.Seed) []string {
	names := make([]string, 0, len(seeds))
	for _, seed := range seeds {
		names = append(names, seed.Filename)
	}
	return names
}

func seedsOf(names ...string) []models.Seed {
	seeds := make([]models.Seed, 0, len(names))
	for _, name := range names {
		seeds = append(seeds, models.Seed{Filename: name})
	}
	return seeds
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}
