package service

import "github.com/supperdoggy/SmartHomeServer/harmoniq-maestro/genre-constellation/models"

// CollectSeeds flattens every seed under node: its own seeds first, then each
// subgenre in document order.
func CollectSeeds(node *models.GenreNode) []models.Seed {
	if node == nil {
		return nil
	}

	seeds := append([]models.Seed(nil), node.Seeds...)
	for _, name := range node.Subgenres.Names() {
		child, _ := node.Subgenres.Get(name)
		seeds = append(seeds, CollectSeeds(child)...)
	}
	return seeds
}

// CollectManifestSeeds runs CollectSeeds over every top-level category.
func CollectManifestSeeds(m *models.Manifest) []models.Seed {
	seeds := make([]models.Seed, 0)
	for _, category := range m.Categories() {
		node, _ := m.Category(category)
		seeds = append(seeds, CollectSeeds(node)...)
	}
	return seeds
}
