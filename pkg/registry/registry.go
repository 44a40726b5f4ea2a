// Package registry enumerates the Gemini model identifiers the resolver
// recognizes and the default model constants used when no candidate survives.
// The registry is an ordered allow-list: membership is the sole criterion for
// static validity, and a registry never changes after construction.
package registry

// Default model identifiers. These are the hard-coded fallbacks the
// surrounding tooling passes into the resolver.
const (
	// DefaultModel is the general-purpose default.
	DefaultModel = "gemini-2.5-pro"
	// DefaultFlashModel is the fast default.
	DefaultFlashModel = "gemini-2.5-flash"
	// DefaultFlashLiteModel is the lightweight fast default.
	DefaultFlashLiteModel = "gemini-2.5-flash-lite"
	// DefaultEmbeddingModel is the default embedding model.
	DefaultEmbeddingModel = "gemini-embedding-001"
)

// ModelInfo describes one supported model.
type ModelInfo struct {
	Name            string `json:"name"`
	DisplayName     string `json:"display_name,omitempty"`
	ContextWindow   int    `json:"context_window,omitempty"`
	MaxOutputTokens int    `json:"max_output_tokens,omitempty"`
	Embedding       bool   `json:"embedding,omitempty"`
}

// Registry is an immutable, ordered set of supported model identifiers.
type Registry struct {
	models []ModelInfo
	index  map[string]int
}

// New builds a registry from an ordered model list. A later duplicate of an
// already registered name is ignored.
func New(models []ModelInfo) *Registry {
	r := &Registry{
		models: make([]ModelInfo, 0, len(models)),
		index:  make(map[string]int, len(models)),
	}
	for _, m := range models {
		if _, exists := r.index[m.Name]; exists {
			continue
		}
		r.index[m.Name] = len(r.models)
		r.models = append(r.models, m)
	}
	return r
}

// IsSupported reports whether name is a non-empty member of the registry.
func (r *Registry) IsSupported(name string) bool {
	if name == "" {
		return false
	}
	_, ok := r.index[name]
	return ok
}

// Models returns the supported model names in registry order. The returned
// slice is a copy; mutating it does not affect the registry.
func (r *Registry) Models() []string {
	names := make([]string, len(r.models))
	for i, m := range r.models {
		names[i] = m.Name
	}
	return names
}

// Entries returns the full catalog in registry order. The returned slice
// is a copy; mutating it does not affect the registry.
func (r *Registry) Entries() []ModelInfo {
	entries := make([]ModelInfo, len(r.models))
	copy(entries, r.models)
	return entries
}

// Lookup returns the catalog entry for name.
func (r *Registry) Lookup(name string) (ModelInfo, bool) {
	i, ok := r.index[name]
	if !ok {
		return ModelInfo{}, false
	}
	return r.models[i], true
}

// Len returns the number of supported models.
func (r *Registry) Len() int {
	return len(r.models)
}
