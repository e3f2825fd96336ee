package models

import (
	"encoding/json"
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

const (
	seedsKey     = "seeds"
	subgenresKey = "subgenres"
)

// GenreNode is one genre or subgenre. Seeds[0] is the featured seed.
type GenreNode struct {
	Seeds     []Seed
	Subgenres Genres

	raw Object
}

func (n *GenreNode) UnmarshalJSON(data []byte) error {
	if err := n.raw.UnmarshalJSON(data); err != nil {
		return err
	}
	if n.raw.IsNull() {
		return ErrNotAnObject
	}

	n.Seeds = nil
	if raw, ok := n.raw.Get(seedsKey); ok {
		if err := json.Unmarshal(raw, &n.Seeds); err != nil {
			return fmt.Errorf("failed to decode seeds: %w", err)
		}
	}

	n.Subgenres = Genres{}
	if raw, ok := n.raw.Get(subgenresKey); ok {
		if err := json.Unmarshal(raw, &n.Subgenres); err != nil {
			return fmt.Errorf("failed to decode subgenres: %w", err)
		}
	}
	return nil
}

func (n GenreNode) MarshalJSON() ([]byte, error) {
	out := n.raw.clone()
	out.null = false

	if out.Has(seedsKey) || len(n.Seeds) > 0 {
		if err := out.SetValue(seedsKey, n.Seeds); err != nil {
			return nil, err
		}
	}
	if out.Has(subgenresKey) || n.Subgenres.Len() > 0 {
		if err := out.SetValue(subgenresKey, n.Subgenres); err != nil {
			return nil, err
		}
	}
	return out.MarshalJSON()
}

// Genres maps genre names to nodes and iterates in document order.
type Genres struct {
	nodes *orderedmap.OrderedMap[string, *GenreNode]
	null  bool
}

func (g *Genres) UnmarshalJSON(data []byte) error {
	g.nodes = orderedmap.New[string, *GenreNode]()
	g.null = false

	null, err := checkObject(data)
	if err != nil {
		return err
	}
	if null {
		g.null = true
		return nil
	}

	// each value goes through GenreNode.UnmarshalJSON, except null
	if err := g.nodes.UnmarshalJSON(data); err != nil {
		return err
	}
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Value == nil {
			return fmt.Errorf("genre %q: %w", pair.Key, ErrNotAnObject)
		}
	}
	return nil
}

func (g Genres) MarshalJSON() ([]byte, error) {
	if g.null && g.Len() == 0 {
		return []byte("null"), nil
	}

	var out Object
	for _, name := range g.Names() {
		node, _ := g.Get(name)
		if err := out.SetValue(name, node); err != nil {
			return nil, err
		}
	}
	return out.MarshalJSON()
}

// Names returns the genre names in document order.
func (g *Genres) Names() []string {
	names := make([]string, 0, g.Len())
	if g.nodes == nil {
		return names
	}
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	return names
}

func (g *Genres) Get(name string) (*GenreNode, bool) {
	if g.nodes == nil {
		return nil, false
	}
	return g.nodes.Get(name)
}

func (g *Genres) Len() int {
	if g.nodes == nil {
		return 0
	}
	return g.nodes.Len()
}

// Add appends a genre, or replaces the node of an existing one in place.
func (g *Genres) Add(name string, node *GenreNode) {
	if g.nodes == nil {
		g.nodes = orderedmap.New[string, *GenreNode]()
	}
	g.nodes.Set(name, node)
	g.null = false
}
