// Package resolver picks the model identifier a CLI session should use.
// Two independent strategies are provided: SelectModel validates candidates
// against the static registry allow-list, and Verifier confirms candidates
// against the live service with minimal existence probes. Both walk the same
// fixed priority order: command line, settings file, environment, then the
// hard-coded default.
package resolver
