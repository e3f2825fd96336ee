package service

import (
	"fmt"
	"io"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
)

// WriteAuditReport prints the missing profiles in the order they were found.
func WriteAuditReport(w io.Writer, report *models.AuditReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Missing profiles: %d\n", len(report.Missing))
	for _, missing := range report.Missing {
		fmt.Fprintf(&b, "  %s\n", missing.Filename)
		fmt.Fprintf(&b, "    %s - %s\n", missing.Artist, missing.Name)
	}

	if len(report.Unchecked) > 0 {
		fmt.Fprintf(&b, "\nCould not check: %d\n", len(report.Unchecked))
		for _, unchecked := range report.Unchecked {
			fmt.Fprintf(&b, "  %s\n", unchecked.Filename)
			fmt.Fprintf(&b, "    %s - %s\n", unchecked.Artist, unchecked.Name)
			fmt.Fprintf(&b, "    error: %s\n", unchecked.Error)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteAdjustments prints one confirmation line per reordered node.
func WriteAdjustments(w io.Writer, adjustments []Adjustment) error {
	var b strings.Builder
	for _, adj := range adjustments {
		if adj.PreviousIndex == 0 {
			fmt.Fprintf(&b, "%s: %s already first\n", adj.Target, adj.First)
			continue
		}
		fmt.Fprintf(&b, "%s: first seed is now %s (was at index %d)\n", adj.Target, adj.First, adj.PreviousIndex)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
