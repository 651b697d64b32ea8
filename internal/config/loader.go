package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, an optional file, and
// environment variables. Order of precedence (low -> high):
//  1. defaults (Default())
//  2. file (YAML) if AILIT_CONFIG is set
//  3. env (prefix AILIT_)
func Load() (*Config, error) {
	cfg := *Default()

	k := koanf.New(".")

	if path := os.Getenv("AILIT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	// Environment variables: AILIT_LOG_LEVEL, AILIT_DB_PATH, ...
	// Double underscore descends into nested sections, so
	// AILIT_LLM__OPENAI__API_KEY maps to llm.openai.api_key while
	// single underscores stay part of the key.
	envProvider := env.Provider("AILIT_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "AILIT_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	fillAPIKeysFromEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fillAPIKeysFromEnv honors the conventional provider key variables when
// the layered sources left a key empty.
func fillAPIKeysFromEnv(cfg *Config) {
	if cfg.LLM.OpenAI.APIKey == "" {
		cfg.LLM.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	if cfg.LLM.Anthropic.APIKey == "" {
		cfg.LLM.Anthropic.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if cfg.LLM.Gemini.APIKey == "" {
		cfg.LLM.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}
}
