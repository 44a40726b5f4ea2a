// Package config loads the user-facing inputs that feed model resolution:
// the settings file and the process environment.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables honoured by the resolver and its clients.
const (
	EnvModel   = "GEMINI_MODEL"
	EnvAPIKey  = "GEMINI_API_KEY"
	EnvBaseURL = "GEMINI_BASE_URL"

	// EnvOpenAIAPIKey authenticates the OpenAI-compatible probe client.
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

const (
	userDirName      = ".gemini"
	settingsFileName = "settings.json"
)

// Settings mirrors the model-related fields of the CLI settings file.
// Unknown fields are ignored so the resolver can share a file with the
// wider tool.
type Settings struct {
	Model          string `json:"model,omitempty" yaml:"model,omitempty"`
	EmbeddingModel string `json:"embeddingModel,omitempty" yaml:"embeddingModel,omitempty"`
}

// DefaultPath returns the conventional settings location under the user's
// home directory.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, userDirName, settingsFileName), nil
}

// Load reads settings from path. JSON and YAML are both accepted, chosen
// by file extension. A missing file is not an error: it loads as empty
// settings, the same as a user who never wrote one.
func Load(path string) (Settings, error) {
	var s Settings
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("reading settings %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing settings %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("parsing settings %s: %w", path, err)
		}
	}
	return s, nil
}

// ModelFromEnv returns the model name supplied through the environment,
// untrimmed. Presence handling belongs to the resolver.
func ModelFromEnv() string {
	return os.Getenv(EnvModel)
}
