// Package config loads and validates awsmcp configuration.
//
// Configuration is resolved in three layers, later layers winning:
//  1. built-in defaults
//  2. YAML config file (.awsmcp.yaml in the working directory by default)
//  3. AWSMCP_* environment variables
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the config file looked up when none is given.
const DefaultConfigFile = ".awsmcp.yaml"

// Config represents the complete awsmcp configuration.
type Config struct {
	Version   int             `yaml:"version"`
	Knowledge KnowledgeConfig `yaml:"knowledge"`
	AWS       AWSConfig       `yaml:"aws"`
	Server    ServerConfig    `yaml:"server"`
}

// KnowledgeConfig configures the document knowledge base and its sync engine.
type KnowledgeConfig struct {
	// Enabled turns the document search feature on. When false, neither
	// sync nor the document tools are available.
	Enabled bool `yaml:"enabled"`

	// SourceDir is the directory tree of source documents to sync from.
	SourceDir string `yaml:"source_dir"`

	// DataDir holds the index file and persisted vector store
	// (default: <source_dir>/.awsmcp).
	DataDir string `yaml:"data_dir"`

	// Extensions is the allow-list of file extensions to ingest
	// (default: [".pdf"]).
	Extensions []string `yaml:"extensions"`

	// ChunkPreset names a predefined (chunk_size, overlap) pair.
	// Ignored when ChunkSize is set explicitly.
	ChunkPreset string `yaml:"chunk_preset"`

	// ChunkSize and ChunkOverlap override the preset when both are set.
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`

	// Rules is an ordered list of classification rules. Empty means the
	// built-in rule set.
	Rules []RuleConfig `yaml:"rules"`
}

// RuleConfig is one classification rule in the config file.
// First matching rule wins; see internal/classify.
type RuleConfig struct {
	// PathKeywords match against lowercased path segments.
	PathKeywords []string `yaml:"path_keywords"`
	// NameKeywords match against the lowercased filename.
	NameKeywords []string `yaml:"name_keywords"`
	Category     string   `yaml:"category"`
	DocType      string   `yaml:"doc_type"`
	Tags         []string `yaml:"tags"`
}

// AWSConfig configures the AWS tool wrappers.
type AWSConfig struct {
	// Region is the default region for SDK calls (empty: SDK default chain).
	Region string `yaml:"region"`
	// Profile is the shared-config profile name (empty: SDK default chain).
	Profile string `yaml:"profile"`
}

// ServerConfig configures the MCP server process.
type ServerConfig struct {
	// LogLevel is the minimum log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level"`
	// LogFile is the log file path (empty: default ~/.awsmcp/logs/server.log).
	LogFile string `yaml:"log_file"`
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{
		Version: 1,
		Knowledge: KnowledgeConfig{
			Enabled:     false,
			SourceDir:   "data_source",
			Extensions:  []string{".pdf"},
			ChunkPreset: "technical_manual",
		},
		Server: ServerConfig{
			LogLevel: "info",
		},
	}
}

// Load reads configuration from path, falling back to defaults when the file
// does not exist. Environment variables override file values.
func Load(path string) (*Config, error) {
	cfg := NewConfig()

	if path == "" {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No config file is fine; defaults + env apply.
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.applyDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv applies AWSMCP_* environment variable overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("AWSMCP_SOURCE_DIR"); v != "" {
		c.Knowledge.SourceDir = v
	}
	if v := os.Getenv("AWSMCP_DATA_DIR"); v != "" {
		c.Knowledge.DataDir = v
	}
	if v := os.Getenv("AWSMCP_KNOWLEDGE_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Knowledge.Enabled = b
		}
	}
	if v := os.Getenv("AWSMCP_CHUNK_PRESET"); v != "" {
		c.Knowledge.ChunkPreset = v
	}
	if v := os.Getenv("AWSMCP_AWS_REGION"); v != "" {
		c.AWS.Region = v
	}
	if v := os.Getenv("AWSMCP_LOG_LEVEL"); v != "" {
		c.Server.LogLevel = v
	}
}

// applyDerived fills in values computed from others.
func (c *Config) applyDerived() {
	if c.Knowledge.DataDir == "" {
		c.Knowledge.DataDir = filepath.Join(c.Knowledge.SourceDir, ".awsmcp")
	}
	if len(c.Knowledge.Extensions) == 0 {
		c.Knowledge.Extensions = []string{".pdf"}
	}
}

// Validate checks the configuration for consistency.
// Chunk geometry is validated here so a bad pair fails at startup,
// not per file.
func (c *Config) Validate() error {
	if c.Knowledge.ChunkSize < 0 || c.Knowledge.ChunkOverlap < 0 {
		return fmt.Errorf("chunk_size and chunk_overlap must be non-negative")
	}
	if c.Knowledge.ChunkSize > 0 && c.Knowledge.ChunkOverlap >= c.Knowledge.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be smaller than chunk_size (%d)",
			c.Knowledge.ChunkOverlap, c.Knowledge.ChunkSize)
	}
	for i, r := range c.Knowledge.Rules {
		if r.Category == "" || r.DocType == "" {
			return fmt.Errorf("rule %d: category and doc_type are required", i)
		}
		if len(r.PathKeywords) == 0 && len(r.NameKeywords) == 0 {
			return fmt.Errorf("rule %d: at least one of path_keywords or name_keywords is required", i)
		}
	}
	switch c.Server.LogLevel {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log_level: %s", c.Server.LogLevel)
	}
	return nil
}

// IndexPath returns the path of the persisted sync index.
func (c *Config) IndexPath() string {
	return filepath.Join(c.Knowledge.DataDir, "vector_store_index.json")
}

// VectorStorePath returns the path of the persisted vector store.
func (c *Config) VectorStorePath() string {
	return filepath.Join(c.Knowledge.DataDir, "vectors.gob")
}

// Save writes the configuration to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
