package resolver

import (
	"fmt"
	"strings"

	"github.com/cecil-the-coder/model-resolver/pkg/registry"
	"github.com/cecil-the-coder/model-resolver/pkg/types"
)

// SelectModel resolves a model name without any I/O. Candidates are taken
// in priority order; the first one the registry supports wins immediately
// and later sources are not consulted. A candidate that is present but
// unsupported is logged and skipped. When every source is empty or
// rejected the defaultModel is used verbatim, without validation.
//
// The returned Resolution always carries a final "Using model" log line,
// and HadFailure reports whether at least one candidate was rejected.
// SelectModel never fails.
func SelectModel(reg *registry.Registry, c Candidates, defaultModel string) types.Resolution {
	var res types.Resolution

	for _, src := range candidateSources {
		value := strings.TrimSpace(c.valueFor(src.source))
		if value == "" {
			continue
		}
		if reg.IsSupported(value) {
			res.Model = value
			break
		}
		res.Logs = append(res.Logs, fmt.Sprintf("Loading %s %q failed, not a valid model name.", src.label, value))
		res.HadFailure = true
	}

	if res.Model == "" {
		res.Model = defaultModel
	}
	res.Logs = append(res.Logs, "Using model "+res.Model)
	return res
}
