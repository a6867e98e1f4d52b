package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DefaultBranch    string   `mapstructure:"default_branch" yaml:"default_branch"`
	OutputDir        string   `mapstructure:"output_dir" yaml:"output_dir"`
	ScratchDir       string   `mapstructure:"scratch_dir" yaml:"scratch_dir"`
	ExcludeDirs      []string `mapstructure:"exclude_dirs" yaml:"exclude_dirs"`
	DescriptionLimit int      `mapstructure:"description_limit" yaml:"description_limit"`

	// HTTP/clone timeouts
	HTTPTimeoutSec  int `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	CloneTimeoutSec int `mapstructure:"clone_timeout_sec" yaml:"clone_timeout_sec"`
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.llmstxt/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".llmstxt")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("LLMSTXT")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("default_branch", "main")
	v.SetDefault("output_dir", ".")
	v.SetDefault("scratch_dir", "")
	v.SetDefault("exclude_dirs", []string{".git", ".github", "node_modules"})
	v.SetDefault("description_limit", 200)
	v.SetDefault("http_timeout_sec", 10)
	v.SetDefault("clone_timeout_sec", 120)

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".llmstxt")
		_ = os.MkdirAll(dir, 0o755)
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	// Resolve scratch_dir default: the OS temp dir.
	if c.ScratchDir == "" {
		c.ScratchDir = os.TempDir()
	}
	return &c, nil
}
