// Package catalog holds the ordered, read-only set of recognizers that the
// scanner runs against input text.
package catalog

import (
	"fmt"
	"sync"

	"github.com/praetorian-inc/rxbuilder/pkg/types"
)

var (
	// builtin holds the built-in catalog loaded once per process
	builtin    *Catalog
	builtinErr error
	builtinOne sync.Once
)

// Catalog is an ordered, immutable sequence of recognizers.
// Order is definition order and only serves as the final tie-break.
type Catalog struct {
	recognizers []*types.Recognizer
	byID        map[string]*types.Recognizer
}

// New validates recognizers and builds a catalog from copies of them,
// assigning each its catalog index. Any invalid entry fails the whole
// catalog with an error wrapping types.ErrConfig.
func New(recognizers []*types.Recognizer) (*Catalog, error) {
	if len(recognizers) == 0 {
		return nil, fmt.Errorf("%w: no recognizers provided", types.ErrConfig)
	}

	c := &Catalog{
		recognizers: make([]*types.Recognizer, 0, len(recognizers)),
		byID:        make(map[string]*types.Recognizer, len(recognizers)),
	}

	for i, r := range recognizers {
		if err := ValidateRecognizer(r); err != nil {
			return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
		}
		if _, dup := c.byID[r.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate recognizer ID: %s", types.ErrConfig, r.ID)
		}

		owned := *r
		owned.Index = i
		c.recognizers = append(c.recognizers, &owned)
		c.byID[owned.ID] = &owned
	}

	return c, nil
}

// Builtin returns the catalog of embedded recognizers, loading it on first use.
func Builtin() (*Catalog, error) {
	builtinOne.Do(func() {
		recognizers, err := NewLoader().LoadBuiltin()
		if err != nil {
			builtinErr = fmt.Errorf("%w: loading builtin recognizers: %v", types.ErrConfig, err)
			return
		}
		builtin, builtinErr = New(recognizers)
	})
	return builtin, builtinErr
}

// Load builds a catalog from a YAML recognizers file.
func Load(path string) (*Catalog, error) {
	recognizers, err := NewLoader().LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	return New(recognizers)
}

// Len returns the number of recognizers.
func (c *Catalog) Len() int {
	return len(c.recognizers)
}

// At returns the recognizer at catalog index i.
func (c *Catalog) At(i int) *types.Recognizer {
	return c.recognizers[i]
}

// All returns the recognizers in catalog order.
// The returned slice is a copy; the recognizers themselves must not be modified.
func (c *Catalog) All() []*types.Recognizer {
	out := make([]*types.Recognizer, len(c.recognizers))
	copy(out, c.recognizers)
	return out
}

// ByID looks up a recognizer by ID.
func (c *Catalog) ByID(id string) (*types.Recognizer, bool) {
	r, ok := c.byID[id]
	return r, ok
}

// Filter returns a new catalog restricted by cfg. Indexes are reassigned in
// the surviving order.
func (c *Catalog) Filter(cfg FilterConfig) (*Catalog, error) {
	filtered, err := Filter(c.All(), cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrConfig, err)
	}
	return New(filtered)
}
