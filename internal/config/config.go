// Package config resolves taskscan settings from defaults, JSONC config
// files and command line overrides.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	ProjectsDir string `json:"projects_dir"`
	Output      string `json:"output"`
	Format      string `json:"format,omitempty"`
	Index       string `json:"index,omitempty"` // SQLite index path; empty disables the index
	Verbose     bool   `json:"verbose,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd   string `json:"-"` // Absolute working directory, also the root task file paths are relative to
	ProjectsDirAbs string `json:"-"`
	OutputAbs      string `json:"-"`
	IndexAbs       string `json:"-"` // Empty when no index is configured

	// Sources tracks which config files were loaded (for diagnostics)
	Sources Sources `json:"-"`
}

// Sources tracks which config files were loaded.
type Sources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		ProjectsDir: "projects",
		Output:      filepath.Join("state", "backlog.yaml"),
	}
}

// FileName is the project config file looked up in the working directory.
const FileName = ".taskscan.json"

// globalPath returns $XDG_CONFIG_HOME/taskscan/config.json if set,
// otherwise ~/.config/taskscan/config.json, or "" without a home directory.
func globalPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "taskscan", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "taskscan", "config.json")
	}

	return ""
}

// LoadInput holds the inputs for [Load].
type LoadInput struct {
	WorkDirOverride     string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath          string            // -c/--config flag value
	ProjectsDirOverride string            // --projects flag value; empty means no override
	OutputOverride      string            // --output flag value; empty means no override
	FormatOverride      string            // --format flag value; empty means no override
	IndexOverride       string            // --index flag value; empty means no override
	Verbose             bool              // --verbose flag
	Env                 map[string]string // environment variables
}

// Load loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/taskscan/config.json or $XDG_CONFIG_HOME/taskscan/config.json)
// 3. Project config file at default location (.taskscan.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func Load(input LoadInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
	}

	cfg := Default()

	globalCfg, globalFile, err := loadGlobal(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalFile
	cfg = merge(cfg, globalCfg)

	projectCfg, projectFile, err := loadProject(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectFile
	cfg = merge(cfg, projectCfg)

	cfg = merge(cfg, Config{
		ProjectsDir: input.ProjectsDirOverride,
		Output:      input.OutputOverride,
		Format:      input.FormatOverride,
		Index:       input.IndexOverride,
		Verbose:     input.Verbose,
	})

	if err := validate(cfg); err != nil {
		return Config{}, err
	}

	cfg.EffectiveCwd = workDir
	cfg.ProjectsDirAbs = resolve(workDir, cfg.ProjectsDir)
	cfg.OutputAbs = resolve(workDir, cfg.Output)

	if cfg.Index != "" {
		cfg.IndexAbs = resolve(workDir, cfg.Index)
	}

	return cfg, nil
}

func resolve(workDir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(workDir, path)
}

// loadGlobal loads the global user config file if it exists.
// Returns the config, the path if loaded, and any error.
func loadGlobal(env map[string]string) (Config, string, error) {
	path := globalPath(env)
	if path == "" {
		return Config{}, "", nil
	}

	cfg, loaded, err := loadFile(path, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadProject loads the project config file (.taskscan.json) or an explicit
// config file. Returns the config, the path if loaded, and any error.
func loadProject(workDir, configPath string) (Config, string, error) {
	path := filepath.Join(workDir, FileName)
	mustExist := false

	if configPath != "" {
		path = resolve(workDir, configPath)
		mustExist = true

		if _, err := os.Stat(path); err != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	cfg, loaded, err := loadFile(path, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return cfg, path, nil
}

// loadFile loads a config file. If mustExist is false, a missing file
// returns a zero config and loaded=false.
func loadFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return Config{}, false, nil
		}

		if mustExist {
			return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
		}

		return Config{}, false, nil
	}

	cfg, err := parse(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	return cfg, true, nil
}

func parse(data []byte) (Config, error) {
	// Standardize JSONC to JSON
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	if err := json.Unmarshal(standardized, &cfg); err != nil {
		return Config{}, fmt.Errorf("invalid JSON: %w", err)
	}

	// Fields explicitly set to "" are errors, not "use the default".
	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	if explicitlyEmpty(raw, "projects_dir") {
		return Config{}, ErrProjectsDirEmpty
	}

	if explicitlyEmpty(raw, "output") {
		return Config{}, ErrOutputEmpty
	}

	return cfg, nil
}

func explicitlyEmpty(raw map[string]any, key string) bool {
	val, exists := raw[key]
	if !exists {
		return false
	}

	str, ok := val.(string)

	return ok && str == ""
}

func merge(base, overlay Config) Config {
	if overlay.ProjectsDir != "" {
		base.ProjectsDir = overlay.ProjectsDir
	}

	if overlay.Output != "" {
		base.Output = overlay.Output
	}

	if overlay.Format != "" {
		base.Format = overlay.Format
	}

	if overlay.Index != "" {
		base.Index = overlay.Index
	}

	if overlay.Verbose {
		base.Verbose = true
	}

	return base
}

func validate(cfg Config) error {
	if cfg.ProjectsDir == "" {
		return ErrProjectsDirEmpty
	}

	if cfg.Output == "" {
		return ErrOutputEmpty
	}

	return nil
}
