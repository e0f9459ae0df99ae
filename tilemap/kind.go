package tilemap

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/tileworld/core"
)

// KindID indexes a Kind inside its Registry
type KindID uint16

// Footprint is the W×H cell size of a multi-tile kind
type Footprint struct {
	W, H int
}

// Multi reports whether the footprint spans more than one cell
func (f Footprint) Multi() bool {
	return f.W*f.H > 1
}

// Kind is the static descriptor of a tile kind, never mutated at runtime
type Kind struct {
	ID           KindID
	Name         string
	Color        core.RGB
	HasColor     bool // false: the kind never appears in decoded maps
	Glyph        rune
	Placeable    bool      // tiles may be placed over this kind
	Walkable     bool      // informational; movement ignores tiles
	DestroyTicks int       // ticks to remove; 0 = indestructible
	Footprint    Footprint // zero or 1×1 = single cell
	Substitute   KindID    // placed instead of the default placeable kind
	HasSubst     bool
}

// Destructible reports whether the kind has a destroy timer
func (k *Kind) Destructible() bool {
	return k.DestroyTicks > 0
}

// KindDef describes one kind in a RegistryConfig
type KindDef struct {
	Name         string
	Color        *core.RGB
	Glyph        rune
	Placeable    bool
	Walkable     bool
	DestroyTicks int
	Footprint    Footprint
	Substitute   string
}

// RegistryConfig is the full tile-kind table plus the roles some kinds play
type RegistryConfig struct {
	Kinds            []KindDef
	Default          string   // background/free kind
	DefaultPlaceable string   // placed by the player unless a substitute applies
	Package          string   // kind a delivered package turns into
	StartColor       core.RGB // player spawn marker, never stored in the grid
}

// ErrInvalidRegistry is returned for inconsistent kind tables
var ErrInvalidRegistry = errors.New("invalid tile registry")

// Registry holds the tile kinds in table order; color lookup is first match in that order
type Registry struct {
	kinds            []Kind
	byName           map[string]KindID
	defaultKind      KindID
	defaultPlaceable KindID
	packageKind      KindID
	startColor       core.RGB
}

// NewRegistry validates a RegistryConfig and resolves all name references
func NewRegistry(cfg RegistryConfig) (*Registry, error) {
	if len(cfg.Kinds) == 0 {
		return nil, fmt.Errorf("%w: no kinds", ErrInvalidRegistry)
	}

	r := &Registry{
		kinds:      make([]Kind, 0, len(cfg.Kinds)),
		byName:     make(map[string]KindID, len(cfg.Kinds)),
		startColor: cfg.StartColor,
	}

	for i, def := range cfg.Kinds {
		if def.Name == "" {
			return nil, fmt.Errorf("%w: kind #%d has no name", ErrInvalidRegistry, i)
		}
		if _, dup := r.byName[def.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate kind %q", ErrInvalidRegistry, def.Name)
		}
		if def.Footprint.W < 0 || def.Footprint.H < 0 {
			return nil, fmt.Errorf("%w: kind %q has negative footprint", ErrInvalidRegistry, def.Name)
		}
		k := Kind{
			ID:           KindID(i),
			Name:         def.Name,
			Glyph:        def.Glyph,
			Placeable:    def.Placeable,
			Walkable:     def.Walkable,
			DestroyTicks: def.DestroyTicks,
			Footprint:    def.Footprint,
		}
		if k.Footprint.W == 0 || k.Footprint.H == 0 {
			k.Footprint = Footprint{W: 1, H: 1}
		}
		if def.Color != nil {
			if *def.Color == cfg.StartColor {
				return nil, fmt.Errorf("%w: kind %q uses the start color", ErrInvalidRegistry, def.Name)
			}
			k.Color = *def.Color
			k.HasColor = true
		}
		r.byName[def.Name] = k.ID
		r.kinds = append(r.kinds, k)
	}

	// Substitutions reference kinds by name, resolved once all kinds exist
	for i, def := range cfg.Kinds {
		if def.Substitute == "" {
			continue
		}
		id, ok := r.byName[def.Substitute]
		if !ok {
			return nil, fmt.Errorf("%w: kind %q substitutes unknown kind %q", ErrInvalidRegistry, def.Name, def.Substitute)
		}
		r.kinds[i].Substitute = id
		r.kinds[i].HasSubst = true
	}

	var err error
	if r.defaultKind, err = r.role("default", cfg.Default); err != nil {
		return nil, err
	}
	if r.kinds[r.defaultKind].Footprint.Multi() {
		return nil, fmt.Errorf("%w: default kind %q cannot be multi-tile", ErrInvalidRegistry, cfg.Default)
	}
	if r.defaultPlaceable, err = r.role("default placeable", cfg.DefaultPlaceable); err != nil {
		return nil, err
	}
	if r.packageKind, err = r.role("package", cfg.Package); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Registry) role(role, name string) (KindID, error) {
	id, ok := r.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s kind %q not registered", ErrInvalidRegistry, role, name)
	}
	return id, nil
}

// Kind returns the descriptor for id; ids come from this registry so out of range is a bug
func (r *Registry) Kind(id KindID) *Kind {
	return &r.kinds[id]
}

// Lookup finds a kind by name
func (r *Registry) Lookup(name string) (KindID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// MatchColor returns the first kind in table order whose color code equals c
func (r *Registry) MatchColor(c core.RGB) (KindID, bool) {
	for i := range r.kinds {
		if r.kinds[i].HasColor && r.kinds[i].Color == c {
			return r.kinds[i].ID, true
		}
	}
	return 0, false
}

// Len returns the number of kinds
func (r *Registry) Len() int { return len(r.kinds) }

func (r *Registry) Default() KindID          { return r.defaultKind }
func (r *Registry) DefaultPlaceable() KindID { return r.defaultPlaceable }
func (r *Registry) Package() KindID          { return r.packageKind }
func (r *Registry) StartColor() core.RGB     { return r.startColor }

// PlacementFor returns the kind the player places over a cell of kind target
// ok is false when target is not placeable
func (r *Registry) PlacementFor(target KindID) (KindID, bool) {
	k := r.Kind(target)
	if !k.Placeable {
		return 0, false
	}
	if k.HasSubst {
		return k.Substitute, true
	}
	return r.defaultPlaceable, true
}
