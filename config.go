package jsonfix

import (
	"fmt"
	"strings"

	"charm.land/jsonfix/jsonrepair"
	"charm.land/jsonfix/strict"
)

// EnvPrefix prefixes the environment variables read by LoadConfig.
const EnvPrefix = "JSONFIX_"

// Config is the user-facing configuration of the checker.
type Config struct {
	Engine   string `json:"engine"`
	Fallback bool   `json:"fallback"`
	MaxDepth int    `json:"max_depth"`
	LogLevel string `json:"log_level"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Engine:   strict.EngineStdlib,
		MaxDepth: jsonrepair.DefaultMaxDepth,
		LogLevel: "info",
	}
}

// DecodeConfig decodes values over DefaultConfig. Unknown keys are errors.
func DecodeConfig(values map[string]any) (Config, error) {
	cfg := DefaultConfig()
	if err := ParseOptions(values, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// LoadConfig decodes the JSONFIX_* entries of environ, given in the
// "KEY=value" form of os.Environ. JSONFIX_MAX_DEPTH sets max_depth.
func LoadConfig(environ []string) (Config, error) {
	values := map[string]any{}
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) {
			continue
		}
		values[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}
	return DecodeConfig(values)
}

// Options converts the configuration into options for Check and Repair.
func (c Config) Options() ([]Option, error) {
	engine, err := strict.EngineByName(c.Engine)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", err, c.Engine)
	}
	return []Option{
		WithEngine(engine),
		WithFallback(c.Fallback),
		WithMaxDepth(c.MaxDepth),
	}, nil
}
