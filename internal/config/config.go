// Package config loads the small policy/tuning surface the engine's
// callers may consult before invoking expensive operations — the engine
// package itself never reads this, per spec: reduction cost is bounded
// only by a caller-chosen policy threshold, never by an internal
// timeout. Structure and env-override mechanics are adapted from the
// teacher's internal/config/config.go and loader.go, trimmed to the
// handful of fields this engine actually needs.
package config

// EngineConfig holds the reduction-cost policy a caller may enforce
// before calling Reduce on an expression with many variables: 2^n work
// for n synthetic variables grows fast, so a batch caller typically
// checks len(expr.Variables()) against MaxReduceVariables first.
type EngineConfig struct {
	// MaxReduceVariables is the caller-enforced ceiling on
	// len(Expression.Variables()) before Reduce is attempted. Zero means
	// unbounded. The engine does not read this field itself.
	MaxReduceVariables int `yaml:"max_reduce_variables" env:"LOGEXPR_MAX_REDUCE_VARIABLES"`
}

// CacheConfig sizes the process-wide by_string/by_tokens caches.
type CacheConfig struct {
	Shards int `yaml:"shards" env:"LOGEXPR_CACHE_SHARDS"`
}

// OutputConfig controls the diagnostic command's rendering.
type OutputConfig struct {
	Color bool `yaml:"color" env:"LOGEXPR_COLOR"`
}

// Config is the top-level configuration document, loadable from YAML and
// then overridden field-by-field from environment variables, the same
// two-stage load the teacher's Manager performs.
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Cache  CacheConfig  `yaml:"cache"`
	Output OutputConfig `yaml:"output"`
}

// Default returns the engine's baseline configuration: no reduction
// ceiling, 16 cache shards, color output enabled.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{MaxReduceVariables: 0},
		Cache:  CacheConfig{Shards: 16},
		Output: OutputConfig{Color: true},
	}
}
