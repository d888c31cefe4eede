package filter

import "larder/internal/off"

// View caches the derived product sequence between renders. The result is
// recomputed only when the input collection identity or the configuration
// version changed. Plain dirty-checking, no hashing.
type View struct {
	lastHead    *off.Product
	lastLen     int
	lastVersion uint64
	valid       bool
	cached      []off.Product
}

// Apply returns the derived sequence for products under cfg, reusing the
// cached result when neither input has changed since the last call.
func (v *View) Apply(products []off.Product, cfg *Config) []off.Product {
	var head *off.Product
	if len(products) > 0 {
		head = &products[0]
	}
	if v.valid && head == v.lastHead && len(products) == v.lastLen && cfg.version == v.lastVersion {
		return v.cached
	}

	v.cached = Apply(products, cfg)
	v.lastHead = head
	v.lastLen = len(products)
	v.lastVersion = cfg.version
	v.valid = true
	return v.cached
}

// Invalidate forces the next Apply to recompute.
func (v *View) Invalidate() {
	v.valid = false
}
