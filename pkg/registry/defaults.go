package registry

import (
	_ "embed"
	"encoding/json"
	"sync"
)

//go:embed models.json
var modelsJSON []byte

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the singleton registry built from the embedded catalog.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		var models []ModelInfo
		if err := json.Unmarshal(modelsJSON, &models); err != nil {
			// The catalog is embedded at build time; failing to parse it is
			// a build defect, not a runtime condition.
			panic("registry: invalid embedded model catalog: " + err.Error())
		}
		defaultRegistry = New(models)
	})
	return defaultRegistry
}
