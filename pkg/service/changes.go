package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
)

// AuditChanges is the difference between two audits of the same manifest.
type AuditChanges struct {
	NewlyMissing []models.MissingProfile
	Resolved     []models.MissingProfile
}

// CompareAudits lists profiles missing now but not before, and profiles
// missing before but not anymore. Both keep report order.
func CompareAudits(previous, current *models.AuditReport) AuditChanges {
	before := make(map[string]struct{}, len(previous.Missing))
	for _, m := range previous.Missing {
		before[m.Filename] = struct{}{}
	}
	now := make(map[string]struct{}, len(current.Missing))
	for _, m := range current.Missing {
		now[m.Filename] = struct{}{}
	}

	changes := AuditChanges{
		NewlyMissing: make([]models.MissingProfile, 0),
		Resolved:     make([]models.MissingProfile, 0),
	}
	for _, m := range current.Missing {
		if _, ok := before[m.Filename]; !ok {
			changes.NewlyMissing = append(changes.NewlyMissing, m)
		}
	}
	for _, m := range previous.Missing {
		if _, ok := now[m.Filename]; !ok {
			changes.Resolved = append(changes.Resolved, m)
		}
	}
	return changes
}

func WriteAuditChanges(w io.Writer, changes AuditChanges) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\nSince last audit: %d newly missing, %d resolved\n", len(changes.NewlyMissing), len(changes.Resolved))
	for _, m := range changes.NewlyMissing {
		fmt.Fprintf(&b, "  + %s\n", m.Filename)
	}
	for _, m := range changes.Resolved {
		fmt.Fprintf(&b, "  - %s\n", m.Filename)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
