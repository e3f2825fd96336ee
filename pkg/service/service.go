package service

import (
	"context"
	"fmt"
	"io"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/config"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/db"
	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/pkg/manifest"
	"go.uber.org/zap"
)

// RunAudit loads the manifest, checks every seed's profile file and prints
// the report to w. database may be nil.
func RunAudit(ctx context.Context, log *zap.Logger, cfg *config.Config, database db.Database, w io.Writer) (*models.AuditReport, error) {
	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	seeds := CollectManifestSeeds(m)
	log.Info("collected seeds", zap.Int("count", len(seeds)), zap.Int("categories", len(m.Categories())))

	report := NewAuditor(cfg.ProfilesDir, log).Audit(seeds)
	report.ManifestPath = cfg.ManifestPath

	if err := WriteAuditReport(w, report); err != nil {
		return nil, fmt.Errorf("failed to write report: %w", err)
	}

	if database == nil {
		return report, nil
	}

	previous, err := database.GetLatestAuditReport(ctx, cfg.ManifestPath)
	if err != nil {
		log.Error("failed to load previous audit report", zap.Error(err))
	} else if previous != nil {
		if err := WriteAuditChanges(w, CompareAudits(previous, report)); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}

	if err := database.SaveAuditReport(ctx, report); err != nil {
		log.Error("failed to save audit report", zap.Error(err))
	}

	return report, nil
}

// RunReorder features every target seed and rewrites the manifest unless
// cfg.DryRun is set. Nothing is written when any target fails.
func RunReorder(ctx context.Context, log *zap.Logger, cfg *config.Config, database db.Database, targets []Target, w io.Writer) ([]Adjustment, error) {
	m, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return nil, err
	}

	adjustments, err := NewReorderer(log).Reorder(m, targets)
	if err != nil {
		return nil, err
	}

	if cfg.DryRun {
		log.Info("dry run, manifest not written", zap.String("path", cfg.ManifestPath))
	} else {
		if cfg.Backup {
			backupPath, err := manifest.Backup(cfg.ManifestPath)
			if err != nil {
				return nil, err
			}
			log.Info("backed up manifest", zap.String("path", backupPath))
		}

		if err := manifest.Save(cfg.ManifestPath, m); err != nil {
			return nil, err
		}
		log.Info("wrote manifest", zap.String("path", cfg.ManifestPath))
	}

	if err := WriteAdjustments(w, adjustments); err != nil {
		return nil, fmt.Errorf("failed to write adjustments: %w", err)
	}

	if database != nil {
		events := make([]models.ReorderEvent, 0, len(adjustments))
		for _, adj := range adjustments {
			events = append(events, models.ReorderEvent{
				ManifestPath:  cfg.ManifestPath,
				Path:          adj.Target.Path,
				Filename:      adj.Target.Filename,
				PreviousIndex: adj.PreviousIndex,
				PreviousFirst: adj.PreviousFirst,
				DryRun:        cfg.DryRun,
			})
		}
		if err := database.SaveReorderEvents(ctx, events); err != nil {
			log.Error("failed to save reorder events", zap.Error(err))
		}
	}

	return adjustments, nil
}
