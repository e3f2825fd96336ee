package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"
	"go.uber.org/zap"
)

var (
	ErrEmptyPath    = errors.New("empty genre path")
	ErrPathNotFound = errors.New("genre path not found")
	ErrSeedNotFound = errors.New("seed not found")
)

// Target names a seed to feature. Path starts with a top-level category and
// continues through subgenre names.
type Target struct {
	Path     []string
	Filename string
}

func (t Target) String() string {
	return strings.Join(t.Path, " > ")
}

// Adjustment describes one applied Target.
type Adjustment struct {
	Target        Target
	PreviousIndex int
	PreviousFirst string
	First         string
}

type Reorderer struct {
	log *zap.Logger
}

func NewReorderer(log *zap.Logger) *Reorderer {
	return &Reorderer{log: log}
}

// Reorder applies targets in order and stops at the first failure. On error
// the manifest may be partly modified and must not be written.
func (r *Reorderer) Reorder(m *models.Manifest, targets []Target) ([]Adjustment, error) {
	adjustments := make([]Adjustment, 0, len(targets))
	for _, target := range targets {
		node, err := ResolveNode(m, target.Path)
		if err != nil {
			return nil, err
		}

		previousFirst := ""
		if len(node.Seeds) > 0 {
			previousFirst = node.Seeds[0].Filename
		}

		seeds, index, err := PromoteSeed(node.Seeds, target.Filename)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		node.Seeds = seeds

		r.log.Info("promoted seed",
			zap.String("genre", target.String()),
			zap.String("filename", target.Filename),
			zap.Int("previous_index", index),
		)

		adjustments = append(adjustments, Adjustment{
			Target:        target,
			PreviousIndex: index,
			PreviousFirst: previousFirst,
			First:         seeds[0].Filename,
		})
	}
	return adjustments, nil
}

// ResolveNode follows path from the manifest root to a genre node.
func ResolveNode(m *models.Manifest, path []string) (*models.GenreNode, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}

	node, ok := m.Category(path[0])
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrPathNotFound, path[0])
	}

	for i, name := range path[1:] {
		child, ok := node.Subgenres.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: subgenre %q under %s", ErrPathNotFound, name, strings.Join(path[:i+1], " > "))
		}
		node = child
	}
	return node, nil
}

// PromoteSeed moves the first seed named filename to the front and keeps the
// order of the rest. It returns a new slice and the seed's previous index.
func PromoteSeed(seeds []models.Seed, filename string) ([]models.Seed, int, error) {
	index := -1
	for i, seed := range seeds {
		if seed.Filename == filename {
			index = i
			break
		}
	}
	if index < 0 {
		return nil, -1, fmt.Errorf("%w: %s", ErrSeedNotFound, filename)
	}

	promoted := make([]models.Seed, 0, len(seeds))
	promoted = append(promoted, seeds[index])
	promoted = append(promoted, seeds[:index]...)
	promoted = append(promoted, seeds[index+1:]...)
	return promoted, index, nil
}
