// Package catalog manages signal catalog snapshots: the embedded
// default, the atomically swapped current snapshot, and acquisition
// from the remote signals service.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hemant18-09/DOCai/internal/model"
)

//go:embed default.yaml
var defaultYAML []byte

var (
	defaultOnce sync.Once
	defaultCat  *model.Catalog
)

// Default returns the embedded signal catalog. If the embedded file
// fails to parse the result is an empty catalog: screening degrades to
// "no signals detected" instead of refusing to start.
func Default() *model.Catalog {
	defaultOnce.Do(func() {
		var c model.Catalog
		if err := yaml.Unmarshal(defaultYAML, &c); err != nil {
			fmt.Fprintf(os.Stderr, "catalog: embedded default invalid: %v\n", err)
			defaultCat = model.EmptyCatalog()
			return
		}
		defaultCat = &c
	})
	return defaultCat
}

// Load reads a catalog from a YAML file, for deployments that ship
// their own signal lists.
func Load(path string) (*model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var c model.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	return &c, nil
}
