package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/cecil-the-coder/model-resolver/internal/ui"
	"github.com/cecil-the-coder/model-resolver/pkg/config"
	"github.com/cecil-the-coder/model-resolver/pkg/probe"
	"github.com/cecil-the-coder/model-resolver/pkg/registry"
	"github.com/cecil-the-coder/model-resolver/pkg/resolver"
)

// version vars injected via ldflags at build time
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// options holds the parsed CLI flags.
type options struct {
	model        string
	settingsPath string
	defaultModel string
	verify       bool
	provider     string
	probeTimeout time.Duration
	baseURL      string
	list         bool
	verbose      bool
}

func main() {
	// A local .env can carry API keys during development.
	_ = godotenv.Load()

	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "modelresolve",
		Short: "Resolve which model a Gemini CLI session should use",
		Long: "modelresolve walks the model sources in priority order (--model flag,\n" +
			"settings file, GEMINI_MODEL environment variable) and reports the model a\n" +
			"session would use. With --verify, candidates are confirmed against the\n" +
			"live API instead of the static catalog.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), opts)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.Flags()
	flags.StringVarP(&opts.model, "model", "m", "", "model name to use for this session")
	flags.StringVar(&opts.settingsPath, "settings", "", "settings file path (default ~/.gemini/settings.json)")
	flags.StringVar(&opts.defaultModel, "default", registry.DefaultModel, "fallback model when no candidate resolves")
	flags.BoolVar(&opts.verify, "verify", false, "confirm candidates against the live API")
	flags.StringVar(&opts.provider, "provider", "gemini", "probe provider in verify mode (gemini or openai)")
	flags.DurationVar(&opts.probeTimeout, "probe-timeout", resolver.DefaultProbeTimeout, "per-candidate probe deadline in verify mode")
	flags.StringVar(&opts.baseURL, "base-url", "", "override the provider API endpoint")
	flags.BoolVar(&opts.list, "list", false, "print the supported model catalog and exit")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug output")

	if err := rootCmd.Execute(); err != nil {
		ui.Error(err.Error())
		os.Exit(1)
	}
}

func run(ctx context.Context, opts *options) error {
	ui.SetVerbose(opts.verbose)

	reg := registry.Default()
	if opts.list {
		return listModels(reg)
	}

	settingsPath := opts.settingsPath
	if settingsPath == "" {
		var err error
		settingsPath, err = config.DefaultPath()
		if err != nil {
			return err
		}
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	ui.Debug(fmt.Sprintf("settings file: %s (model=%q)", settingsPath, settings.Model))

	candidates := resolver.Candidates{
		CLI:      opts.model,
		Settings: settings.Model,
		Env:      config.ModelFromEnv(),
	}
	for _, cand := range candidates.Present() {
		ui.Debug(fmt.Sprintf("candidate via %s: %s", cand.Source, cand.Value))
	}

	if opts.verify {
		return runVerify(ctx, opts, candidates)
	}

	res := resolver.SelectModel(reg, candidates, opts.defaultModel)
	// Every line before the final one reports a rejected candidate.
	for _, line := range res.Logs[:len(res.Logs)-1] {
		ui.Warn(line)
	}
	ui.Success(res.Logs[len(res.Logs)-1])
	return nil
}

func runVerify(ctx context.Context, opts *options, candidates resolver.Candidates) error {
	client, err := newProbeClient(opts)
	if err != nil {
		return err
	}

	verifier := resolver.NewVerifier(client, resolver.VerifierConfig{ProbeTimeout: opts.probeTimeout})
	start := time.Now()
	result := verifier.Verify(ctx, candidates, opts.defaultModel)
	elapsed := time.Since(start)

	for _, line := range result.Logs {
		ui.Warn(line)
	}
	for _, attempt := range result.Attempts {
		if attempt.Confirmed {
			ui.Debug(fmt.Sprintf("probe %s via %s: confirmed", attempt.Model, attempt.Source))
		} else {
			ui.Debug(fmt.Sprintf("probe %s via %s: %s", attempt.Model, attempt.Source, attempt.Reason))
		}
	}
	ui.Success(fmt.Sprintf("Using model %s (verified in %s)", result.Model, ui.FormatElapsed(elapsed)))
	return nil
}

func newProbeClient(opts *options) (probe.Client, error) {
	baseURL := opts.baseURL

	switch opts.provider {
	case "gemini":
		apiKey := os.Getenv(config.EnvAPIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("verify mode needs %s to be set", config.EnvAPIKey)
		}
		if baseURL == "" {
			baseURL = os.Getenv(config.EnvBaseURL)
		}
		return probe.NewGeminiClient(probe.GeminiConfig{APIKey: apiKey, BaseURL: baseURL}), nil
	case "openai":
		apiKey := os.Getenv(config.EnvOpenAIAPIKey)
		if apiKey == "" {
			return nil, fmt.Errorf("verify mode needs %s to be set", config.EnvOpenAIAPIKey)
		}
		return probe.NewOpenAIClient(probe.OpenAIConfig{APIKey: apiKey, BaseURL: baseURL}), nil
	default:
		return nil, fmt.Errorf("unknown provider %q (want gemini or openai)", opts.provider)
	}
}

func listModels(reg *registry.Registry) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISPLAY NAME\tCONTEXT\tNOTES")
	for _, m := range reg.Entries() {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", m.Name, m.DisplayName, m.ContextWindow, modelNotes(m))
	}
	return w.Flush()
}

func modelNotes(m registry.ModelInfo) string {
	var notes []string
	switch m.Name {
	case registry.DefaultModel:
		notes = append(notes, "default")
	case registry.DefaultFlashModel:
		notes = append(notes, "default fast")
	case registry.DefaultFlashLiteModel:
		notes = append(notes, "default fast-lite")
	case registry.DefaultEmbeddingModel:
		notes = append(notes, "default embedding")
	}
	if m.Embedding && m.Name != registry.DefaultEmbeddingModel {
		notes = append(notes, "embedding")
	}
	return strings.Join(notes, ", ")
}
