// Package levels holds the static campaign catalog. The catalog is embedded
// YAML decoded once at init; it is read-only and shared by all sessions.
package levels

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-platformer/internal/core"
)

//go:embed catalog.yaml
var catalogYAML []byte

// EnemyKind selects an enemy's patrol speed. Names shown to the player are a
// rendering concern.
type EnemyKind int

const (
	EnemyFast EnemyKind = iota
	EnemySlow
)

// String returns the catalog spelling of the kind.
func (k EnemyKind) String() string {
	switch k {
	case EnemyFast:
		return "fast"
	case EnemySlow:
		return "slow"
	default:
		return "unknown"
	}
}

// UnmarshalYAML decodes "fast" or "slow".
func (k *EnemyKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	switch s {
	case "fast":
		*k = EnemyFast
	case "slow":
		*k = EnemySlow
	default:
		return fmt.Errorf("line %d: unknown enemy kind %q", value.Line, s)
	}
	return nil
}

// MarshalYAML encodes the kind by name.
func (k EnemyKind) MarshalYAML() (any, error) {
	return k.String(), nil
}

// Point is a world-space position.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// EnemySpawn places one enemy.
type EnemySpawn struct {
	X    float64   `yaml:"x"`
	Y    float64   `yaml:"y"`
	Kind EnemyKind `yaml:"kind"`
}

// Definition is one immutable level.
type Definition struct {
	ID          int          `yaml:"id"`
	Name        string       `yaml:"name"`
	Background  string       `yaml:"background"`
	PlayerStart Point        `yaml:"player_start"`
	Goal        Point        `yaml:"goal"` // reached when player X > Goal.X and Y < Goal.Y
	Platforms   []core.Rect  `yaml:"platforms"`
	Enemies     []EnemySpawn `yaml:"enemies"`
	Coins       []Point      `yaml:"coins"`
}

// Clone returns a deep copy so callers can never alias catalog slices.
func (d Definition) Clone() Definition {
	c := d
	c.Platforms = append([]core.Rect(nil), d.Platforms...)
	c.Enemies = append([]EnemySpawn(nil), d.Enemies...)
	c.Coins = append([]Point(nil), d.Coins...)
	return c
}

type catalogFile struct {
	Levels []Definition `yaml:"levels"`
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) ([]Definition, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("levels: parse catalog: %w", err)
	}
	if err := Validate(f.Levels); err != nil {
		return nil, err
	}
	return f.Levels, nil
}

// Validate checks catalog invariants: at least one level, ids dense from 1
// in catalog order, names present and positive platform sizes.
func Validate(defs []Definition) error {
	if len(defs) == 0 {
		return fmt.Errorf("levels: catalog is empty")
	}
	for i, d := range defs {
		if d.ID != i+1 {
			return fmt.Errorf("levels: level at position %d has id %d, want %d", i, d.ID, i+1)
		}
		if d.Name == "" {
			return fmt.Errorf("levels: level %d has no name", d.ID)
		}
		for j, p := range d.Platforms {
			if !p.Valid() {
				return fmt.Errorf("levels: level %d platform %d has non-positive size %vx%v", d.ID, j, p.W, p.H)
			}
		}
	}
	return nil
}

var catalog []Definition

func init() {
	defs, err := Parse(catalogYAML)
	if err != nil {
		panic(err)
	}
	catalog = defs
}

// Count returns the number of levels.
func Count() int {
	return len(catalog)
}

// Get returns a copy of the level with the given id.
func Get(id int) (Definition, bool) {
	if id < 1 || id > len(catalog) {
		return Definition{}, false
	}
	return catalog[id-1].Clone(), true
}

// All returns copies of every level in unlock order.
func All() []Definition {
	out := make([]Definition, len(catalog))
	for i, d := range catalog {
		out[i] = d.Clone()
	}
	return out
}
