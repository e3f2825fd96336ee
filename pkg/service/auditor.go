package service

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"go.uber.org/zap"
)

type Auditor struct {
	profilesDir string
	stat        func(name string) (fs.FileInfo, error)
	log         *zap.Logger
}

func NewAuditor(profilesDir string, log *zap.Logger) *Auditor {
	return &Auditor{
		profilesDir: profilesDir,
		stat:        os.Stat,
		log:         log,
	}
}

// Audit checks that every seed has a profile file. Seeds sharing a filename
// are checked once, using the first one seen.
func (a *Auditor) Audit(seeds []models.Seed) *models.AuditReport {
	report := &models.AuditReport{
		ProfilesDir: a.profilesDir,
		TotalSeeds:  len(seeds),
		Missing:     make([]models.MissingProfile, 0),
		Unchecked:   make([]models.UncheckedProfile, 0),
	}

	for _, seed := range UniqueSeeds(seeds) {
		report.UniqueSeeds++

		path := filepath.Join(a.profilesDir, seed.Filename)
		info, err := a.stat(path)
		switch {
		case err == nil && !info.IsDir():
			continue
		case err == nil || errors.Is(err, fs.ErrNotExist):
			report.Missing = append(report.Missing, models.MissingProfile{
				Filename: seed.Filename,
				Artist:   seed.Artist,
				Name:     seed.Name,
			})
		default:
			a.log.Warn("failed to check profile file", zap.String("path", path), zap.Error(err))
			report.Unchecked = append(report.Unchecked, models.UncheckedProfile{
				Filename: seed.Filename,
				Artist:   seed.Artist,
				Name:     seed.Name,
				Error:    err.Error(),
			})
		}
	}

	a.log.Info("audited profiles",
		zap.Int("total_seeds", report.TotalSeeds),
		zap.Int("unique_seeds", report.UniqueSeeds),
		zap.Int("missing", len(report.Missing)),
		zap.Int("unchecked", len(report.Unchecked)),
	)

	return report
}

// UniqueSeeds drops seeds whose filename was already seen, keeping order.
func UniqueSeeds(seeds []models.Seed) []models.Seed {
	seen := make(map[string]struct{}, len(seeds))
	unique := make([]models.Seed, 0, len(seeds))
	for _, seed := range seeds {
		if _, ok := seen[seed.Filename]; ok {
			continue
		}
		seen[seed.Filename] = struct{}{}
		unique = append(unique, seed)
	}
	return unique
}
