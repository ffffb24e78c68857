// Package policy loads prodboard configuration and guards the paths it may read.
package policy

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/jaakkos/prodboard/internal/domain"
)

// DefaultEditors is the editor roster the charts bucket by when none is configured.
var DefaultEditors = []string{"Ramon", "Duno", "Freddy", "Chris", "Thais/Maddison"}

// DefaultChartColors is the pie slice palette, one colour per default editor.
var DefaultChartColors = []string{"#4fc3f7", "#ff9800", "#9c27b0", "#4caf50", "#e91e63"}

// GlobalStateDir returns the default global state directory (~/.config/prodboard).
func GlobalStateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".config", "prodboard")
}

// GlobalStateFile returns the default global state file path.
func GlobalStateFile() string {
	return filepath.Join(GlobalStateDir(), "state.sqlite")
}

// WatchConfig controls reloading of the data file when it changes on disk.
type WatchConfig struct {
	Enabled             bool `yaml:"enabled"`
	PollIntervalSeconds int  `yaml:"poll_interval_seconds"` // fallback poll (default 10)
	DebounceMs          int  `yaml:"debounce_ms"`           // coalesce bursts of writes (default 200)
}

// Config holds prodboard configuration.
type Config struct {
	WorkspaceRoot string   `yaml:"workspace_root"`
	DataFile      string   `yaml:"data_file"`
	StateFile     string   `yaml:"state_file"`
	LogFile       string   `yaml:"log_file"`
	HTTPPort      int      `yaml:"http_port"`
	EnabledTools  []string `yaml:"enabled_tools"`

	UrgentThreshold int      `yaml:"urgent_threshold"`
	MissingMode     string   `yaml:"missing_mode"` // input (default) or derived
	TotalsScope     string   `yaml:"totals_scope"` // all (default) or filtered
	Editors         []string `yaml:"editors"`
	ChartColors     []string `yaml:"chart_colors"`

	Watch *WatchConfig `yaml:"watch"`
}

// DefaultConfig returns the built-in defaults: data/data.json, port 8080, the default roster and palette.
func DefaultConfig() *Config {
	return &Config{
		DataFile:        filepath.Join("data", "data.json"),
		HTTPPort:        8080,
		EnabledTools:    []string{"*"},
		UrgentThreshold: 3,
		MissingMode:     string(domain.MissingFromInput),
		TotalsScope:     string(domain.ScopeAll),
		Editors:         append([]string(nil), DefaultEditors...),
		ChartColors:     append([]string(nil), DefaultChartColors...),
		Watch:           DefaultWatch(),
	}
}

// DefaultWatch returns the watcher defaults (enabled, 10s poll, 200ms debounce).
func DefaultWatch() *WatchConfig {
	return &WatchConfig{Enabled: true, PollIntervalSeconds: 10, DebounceMs: 200}
}

// LoadConfig loads configuration from a YAML file. Unset keys keep their defaults.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Watch == nil {
		cfg.Watch = DefaultWatch()
	}
	if cfg.WorkspaceRoot == "" {
		if abs, err := filepath.Abs(filepath.Dir(path)); err == nil {
			cfg.WorkspaceRoot = abs
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the board cannot interpret.
func (c *Config) Validate() error {
	switch domain.MissingMode(c.MissingMode) {
	case domain.MissingFromInput, domain.MissingDerived:
	default:
		return fmt.Errorf("config: missing_mode must be %q or %q, got %q", domain.MissingFromInput, domain.MissingDerived, c.MissingMode)
	}
	switch domain.TotalsScope(c.TotalsScope) {
	case domain.ScopeAll, domain.ScopeFiltered:
	default:
		return fmt.Errorf("config: totals_scope must be %q or %q, got %q", domain.ScopeAll, domain.ScopeFiltered, c.TotalsScope)
	}
	if c.UrgentThreshold < 0 {
		return fmt.Errorf("config: urgent_threshold must be >= 0, got %d", c.UrgentThreshold)
	}
	if c.HTTPPort < 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("config: http_port out of range: %d", c.HTTPPort)
	}
	return nil
}

// Policy gives read access to configuration and owns the mutable data file path.
type Policy struct {
	config *Config
	mu     sync.RWMutex // protects DataFile and WorkspaceRoot
}

// New creates a policy over cfg.
func New(cfg *Config) *Policy {
	if cfg.Watch == nil {
		cfg.Watch = DefaultWatch()
	}
	return &Policy{config: cfg}
}

// WorkspaceRoot returns the directory relative paths resolve against.
func (p *Policy) WorkspaceRoot() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.config.WorkspaceRoot
}

// SetWorkspaceRoot changes the directory relative paths resolve against.
func (p *Policy) SetWorkspaceRoot(root string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config.WorkspaceRoot = root
}

// DataFile returns the absolute path of the account data file.
func (p *Policy) DataFile() string {
	p.mu.RLock()
	df := p.config.DataFile
	wsRoot := p.config.WorkspaceRoot
	p.mu.RUnlock()

	if df == "" || filepath.IsAbs(df) {
		return df
	}
	return filepath.Join(wsRoot, df)
}

// SetDataFile switches the data file after checking it lies inside the workspace.
func (p *Policy) SetDataFile(path string) (string, error) {
	abs, err := p.ValidatePath(path)
	if err != nil {
		return "", err
	}
	p.mu.Lock()
	p.config.DataFile = abs
	p.mu.Unlock()
	return abs, nil
}

// StateFile returns the configured state file path.
// If unset, defaults to the global state file (~/.config/prodboard/state.sqlite).
func (p *Policy) StateFile() string {
	p.mu.RLock()
	sf := p.config.StateFile
	wsRoot := p.config.WorkspaceRoot
	p.mu.RUnlock()

	if sf == "" {
		return GlobalStateFile()
	}
	if filepath.IsAbs(sf) {
		return sf
	}
	return filepath.Join(wsRoot, sf)
}

// LogFile returns the configured log file path.
// If unset, defaults to ~/.config/prodboard/prodboard.log.
// Set to "none" or "off" to disable file logging entirely.
func (p *Policy) LogFile() string {
	p.mu.RLock()
	lf := p.config.LogFile
	p.mu.RUnlock()

	if lf == "" {
		return filepath.Join(GlobalStateDir(), "prodboard.log")
	}
	return lf
}

// HTTPPort returns the dashboard listen port (0 picks a free port).
func (p *Policy) HTTPPort() int {
	return p.config.HTTPPort
}

// ValidatePath checks if a path is within the workspace
func (p *Policy) ValidatePath(path string) (string, error) {
	p.mu.RLock()
	wsRoot := p.config.WorkspaceRoot
	p.mu.RUnlock()

	if !filepath.IsAbs(path) {
		path = filepath.Join(wsRoot, path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	if wsRoot == "" {
		return absPath, nil
	}

	relPath, err := filepath.Rel(wsRoot, absPath)
	if err != nil {
		return "", fmt.Errorf("relative path: %w", err)
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside workspace", path)
	}

	return absPath, nil
}

// IsToolEnabled checks if a tool is enabled
func (p *Policy) IsToolEnabled(name string) bool {
	for _, t := range p.config.EnabledTools {
		if t == "*" || t == name {
			return true
		}
	}
	return false
}

// UrgentThreshold returns the missing count at which an account becomes urgent.
func (p *Policy) UrgentThreshold() int {
	return p.config.UrgentThreshold
}

// MissingMode returns how missing counts are obtained.
func (p *Policy) MissingMode() domain.MissingMode {
	if p.config.MissingMode == "" {
		return domain.MissingFromInput
	}
	return domain.MissingMode(p.config.MissingMode)
}

// TotalsScope returns which records feed the summary cards and charts.
func (p *Policy) TotalsScope() domain.TotalsScope {
	if p.config.TotalsScope == "" {
		return domain.ScopeAll
	}
	return domain.TotalsScope(p.config.TotalsScope)
}

// Editors returns the chart roster. Never empty unless explicitly configured as [].
func (p *Policy) Editors() []string {
	if p.config.Editors == nil {
		return append([]string(nil), DefaultEditors...)
	}
	return append([]string(nil), p.config.Editors...)
}

// ChartColors returns the pie slice palette.
func (p *Policy) ChartColors() []string {
	if len(p.config.ChartColors) == 0 {
		return append([]string(nil), DefaultChartColors...)
	}
	return append([]string(nil), p.config.ChartColors...)
}

// Watch returns the data file watcher settings. Never nil.
func (p *Policy) Watch() *WatchConfig {
	return p.config.Watch
}
