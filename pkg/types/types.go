// Package types defines the core types shared across the model resolver.
// It includes candidate sources, resolution results, and the probe error
// taxonomy used to classify failed model verification attempts.
package types

// ModelSource identifies where a candidate model name came from.
type ModelSource string

const (
	// SourceCLI is a model name passed on the command line.
	SourceCLI ModelSource = "cli"
	// SourceSettings is a model name persisted in the settings file.
	SourceSettings ModelSource = "settings"
	// SourceEnv is a model name taken from the environment.
	SourceEnv ModelSource = "env"
	// SourceDefault is the hard-coded fallback model.
	SourceDefault ModelSource = "default"
)

// Candidate is one caller-supplied model name together with its provenance.
type Candidate struct {
	Source ModelSource
	Value  string
}

// Resolution is the outcome of a static model selection. Logs holds the
// human-readable decision trail in order; the last entry always names the
// chosen model. HadFailure reports whether any candidate was rejected,
// independent of whether a later candidate or the default was chosen.
type Resolution struct {
	Model      string
	Logs       []string
	HadFailure bool
}

// ProbeAttempt records the outcome of a single existence probe.
type ProbeAttempt struct {
	Source    ModelSource
	Model     string
	Confirmed bool
	// Reason classifies the failure; empty when Confirmed is true.
	Reason ErrorCode
}

// VerifyResult is the outcome of a dynamic model verification. Logs holds
// one not-found line per rejected candidate, followed by the fallback line
// when no candidate was confirmed. Attempts records every probe issued, in
// order, for callers that want finer diagnostics than the log text.
type VerifyResult struct {
	Model    string
	Logs     []string
	Attempts []ProbeAttempt
}
