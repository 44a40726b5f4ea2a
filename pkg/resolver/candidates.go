package resolver

import (
	"strings"

	"github.com/cecil-the-coder/model-resolver/pkg/types"
)

// Source labels as they appear in log lines. The selection path names the
// concrete mechanism that carried the value, the verification path names
// where the user would go to fix it.
const (
	cliFlagLabel  = "--model"
	settingsLabel = "settings.json"
	envVarLabel   = "GEMINI_MODEL"

	cliHint      = "model name"
	settingsHint = "settings.json"
	envHint      = "environment variable"
)

// Candidates holds the optional model names supplied by each source. An
// empty or all-whitespace value means the source supplied nothing.
type Candidates struct {
	CLI      string
	Settings string
	Env      string
}

// Present returns the candidates that actually carry a value, trimmed, in
// priority order.
func (c Candidates) Present() []types.Candidate {
	var present []types.Candidate
	for _, src := range candidateSources {
		if value := strings.TrimSpace(c.valueFor(src.source)); value != "" {
			present = append(present, types.Candidate{Source: src.source, Value: value})
		}
	}
	return present
}

func (c Candidates) valueFor(source types.ModelSource) string {
	switch source {
	case types.SourceCLI:
		return c.CLI
	case types.SourceSettings:
		return c.Settings
	case types.SourceEnv:
		return c.Env
	}
	return ""
}

// candidateSource pairs a provenance with the wording its log lines use.
type candidateSource struct {
	source types.ModelSource
	label  string
	hint   string
}

// candidateSources is the fixed priority order every resolution walks.
var candidateSources = [...]candidateSource{
	{source: types.SourceCLI, label: cliFlagLabel, hint: cliHint},
	{source: types.SourceSettings, label: settingsLabel, hint: settingsHint},
	{source: types.SourceEnv, label: envVarLabel, hint: envHint},
}
