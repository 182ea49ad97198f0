// Package attribute implements the extensible-attribute engine shared by
// account and tax-year records: a closed catalog of attribute classes per
// owner kind, a per-owner attribute set with soft-deletable slots, a
// requirement policy deciding which classes must, may, or must not exist for
// a given owner, and a validator that applies presence, semantic, and
// relational checks in a single accumulating pass.
package attribute

// ValueKind classifies the payload an attribute class carries.
//
// Invariant: every class in a catalog declares exactly one kind, and a stored
// value's kind always matches its class declaration. The Set enforces this on
// write, so kind disagreement on read indicates catalog drift, not user data.
type ValueKind int

const (
	KindShortText ValueKind = iota
	KindLongText
	KindDecimal
	KindAccountRef
	KindCategoryRef
	KindBlob
)

func (k ValueKind) String() string {
	switch k {
	case KindShortText:
		return "short_text"
	case KindLongText:
		return "long_text"
	case KindDecimal:
		return "decimal"
	case KindAccountRef:
		return "account_ref"
	case KindCategoryRef:
		return "category_ref"
	case KindBlob:
		return "blob"
	default:
		return "unknown"
	}
}

// Spec is the static declaration of one attribute class.
type Spec struct {
	Name string
	Kind ValueKind
	// MaxLen bounds text and blob payloads in bytes; zero means unbounded.
	MaxLen int
}

// CatalogEntry pairs a class with its spec when building a catalog.
type CatalogEntry[C comparable] struct {
	Class C
	Spec  Spec
}

// Catalog is the closed, ordered set of attribute classes for one owner
// kind. Catalogs are fixed at init time and safe for concurrent reads.
type Catalog[C comparable] struct {
	order  []C
	specs  map[C]Spec
	byName map[string]C
}

// NewCatalog builds a catalog from ordered entries. Class order is the
// validation walk order.
func NewCatalog[C comparable](entries ...CatalogEntry[C]) *Catalog[C] {
	c := &Catalog[C]{
		order:  make([]C, 0, len(entries)),
		specs:  make(map[C]Spec, len(entries)),
		byName: make(map[string]C, len(entries)),
	}
	for _, e := range entries {
		if _, dup := c.specs[e.Class]; dup {
			continue
		}
		c.order = append(c.order, e.Class)
		c.specs[e.Class] = e.Spec
		c.byName[e.Spec.Name] = e.Class
	}
	return c
}

// Spec returns the declaration for class, or ok=false when the class is not
// part of this catalog.
func (c *Catalog[C]) Spec(class C) (Spec, bool) {
	s, ok := c.specs[class]
	return s, ok
}

// Contains reports whether class belongs to this catalog.
func (c *Catalog[C]) Contains(class C) bool {
	_, ok := c.specs[class]
	return ok
}

// ByName resolves a class from its wire name.
func (c *Catalog[C]) ByName(name string) (C, bool) {
	class, ok := c.byName[name]
	return class, ok
}

// Classes returns the catalog's classes in declaration order. The returned
// slice is a copy.
func (c *Catalog[C]) Classes() []C {
	out := make([]C, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of classes in the catalog.
func (c *Catalog[C]) Len() int {
	return len(c.order)
}
