package retrieval

import (
	"os"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// GeneralConfig carries cross-cutting flags (spec §6).
type GeneralConfig struct {
	Verbose bool `mapstructure:"verbose" yaml:"verbose"`
}

// EmbeddingConfig selects whether/which embedding provider backs the vector
// pipeline (spec §6).
type EmbeddingConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Provider string `mapstructure:"provider" yaml:"provider"`
}

// InferenceConfig selects the LLM provider backing the intent pipeline.
type InferenceConfig struct {
	Provider string `mapstructure:"provider" yaml:"provider"`
}

// DatasourceConfig is the connection and threshold configuration for one
// named backend (spec §3).
type DatasourceConfig struct {
	Name                string         `mapstructure:"name" yaml:"name" validate:"required"`
	Driver              string         `mapstructure:"driver" yaml:"driver" validate:"required"`
	ConnectionParams    map[string]any `mapstructure:"connection_params" yaml:"connection_params"`
	Collection          string         `mapstructure:"collection" yaml:"collection"`
	ConfidenceThreshold float32        `mapstructure:"confidence_threshold" yaml:"confidence_threshold" validate:"gte=0,lte=1"`
	RelevanceThreshold  float32        `mapstructure:"relevance_threshold" yaml:"relevance_threshold" validate:"gte=0,lte=1"`
	MaxResults          int            `mapstructure:"max_results" yaml:"max_results" validate:"gte=0"`
	ReturnResults       int            `mapstructure:"return_results" yaml:"return_results" validate:"gte=0"`
	AutoCreateCollection bool          `mapstructure:"auto_create_collection" yaml:"auto_create_collection"`
}

// Validate checks the struct tags above via go-playground/validator, the
// same library the teacher uses for its vectorstore provider configs.
func (c *DatasourceConfig) Validate() error {
	return validate.Struct(c)
}

// AdapterEntry describes one adapter registration loaded from config
// (spec §4.1 LoadFromConfig): {type, datasource, adapter, implementation}.
type AdapterEntry struct {
	Type           string         `mapstructure:"type" yaml:"type"`
	Datasource     string         `mapstructure:"datasource" yaml:"datasource"`
	Adapter        string         `mapstructure:"adapter" yaml:"adapter"`
	Implementation string         `mapstructure:"implementation" yaml:"implementation"`
	Enabled        bool           `mapstructure:"enabled" yaml:"enabled"`
	Config         map[string]any `mapstructure:"config" yaml:"config"`
}

// Valid reports whether the entry carries all fields LoadFromConfig requires.
func (e AdapterEntry) Valid() bool {
	return e.Type != "" && e.Datasource != "" && e.Adapter != "" && e.Implementation != ""
}

// Config is the read-only, per-request configuration bundle (spec §3).
// Once constructed it is never mutated by the core.
type Config struct {
	General       GeneralConfig
	Embedding     EmbeddingConfig
	Inference     InferenceConfig
	Datasources   map[string]DatasourceConfig
	Adapters      []AdapterEntry
	AdapterConfig map[string]any
	MessagesCollectionNotFound string
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// ResolveEnv substitutes every `${VAR_NAME}` occurrence in s with the
// environment variable's value, pull-time, returning the names of the
// variables that were not set so the caller can warn (spec §6). Missing variables are left
// as empty string substitutions, matching the source's "default substituted"
// behavior.
func ResolveEnv(s string) (resolved string, missing []string) {
	resolved = envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		if v, ok := os.LookupEnv(name); ok {
			return v
		}
		missing = append(missing, name)
		return ""
	})
	return resolved, missing
}

// secretKeyPattern matches connection-param keys that should be masked in logs.
var secretKeyPattern = regexp.MustCompile(`(?i)(password|secret|token|api_key|apikey)`)

// MaskSecrets returns a shallow copy of params with secret-looking values
// replaced by "***", for safe structured logging.
func MaskSecrets(params map[string]any) map[string]any {
	masked := make(map[string]any, len(params))
	for k, v := range params {
		if secretKeyPattern.MatchString(k) {
			masked[k] = "***"
			continue
		}
		masked[k] = v
	}
	return masked
}

// TitleCase converts a snake_case identifier into a display-friendly Title Case string.
func TitleCase(s string) string {
	parts := strings.Split(s, "_")
	for i, p := range parts {
		if p == "" {
			continue
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, " ")
}
