package catalog

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/tessro/paradium/internal/core"
)

// Fingerprint hashes the catalog contents, order included.
func Fingerprint(c *core.Catalog) (uint64, error) {
	return hashstructure.Hash(c.Stations(), hashstructure.FormatV2, nil)
}

// Equal reports whether two catalogs hold the same stations in the same order.
func Equal(a, b *core.Catalog) bool {
	ha, err := Fingerprint(a)
	if err != nil {
		return false
	}
	hb, err := Fingerprint(b)
	if err != nil {
		return false
	}
	return ha == hb
}
