package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaakkos/prodboard/internal/app"
	"github.com/jaakkos/prodboard/internal/policy"
	"github.com/jaakkos/prodboard/internal/repository"
)

// configEnv names the environment variable consulted when --config is not given.
const configEnv = "PRODBOARD_CONFIG"

const logPrefix = "[prodboard] "

// env is the wired application shared by the subcommands.
type env struct {
	cfg       *policy.Config
	pol       *policy.Policy
	stateFile string
	logger    *log.Logger
	repo      app.DatasetRepository
	svc       *app.BoardService
}

// setupLogger creates a logger that writes to a log file and optionally stderr.
// When stderr is a terminal (interactive use), logs go to both stderr and the file.
// When stderr is redirected, logs go only to the file.
func setupLogger(logFilePath string) *log.Logger {
	var writers []io.Writer

	stderrIsTerminal := false
	if info, err := os.Stderr.Stat(); err == nil {
		stderrIsTerminal = (info.Mode() & os.ModeCharDevice) != 0
	}

	hasLogFile := false
	lower := strings.ToLower(logFilePath)
	if lower != "none" && lower != "off" && logFilePath != "" {
		if err := os.MkdirAll(filepath.Dir(logFilePath), 0o755); err == nil {
			f, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err == nil {
				writers = append(writers, f)
				hasLogFile = true
			} else {
				fmt.Fprintf(os.Stderr, "%sWarning: cannot open log file %s: %v\n", logPrefix, logFilePath, err)
			}
		} else {
			fmt.Fprintf(os.Stderr, "%sWarning: cannot create log dir %s: %v\n", logPrefix, filepath.Dir(logFilePath), err)
		}
	}

	// Add stderr if it's a terminal, or if there's no log file (always need at least one output).
	if stderrIsTerminal || !hasLogFile {
		writers = append(writers, os.Stderr)
	}

	return log.New(io.MultiWriter(writers...), logPrefix, log.LstdFlags|log.Lshortfile)
}

// loadConfig loads configuration from path, $PRODBOARD_CONFIG, or defaults.
// An explicitly named config that cannot be loaded is an error.
func loadConfig(path string) (*policy.Config, error) {
	if path == "" {
		path = os.Getenv(configEnv)
	}
	if path == "" {
		cfg := policy.DefaultConfig()
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		cfg.WorkspaceRoot = cwd
		return cfg, nil
	}
	cfg, err := policy.LoadConfig(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// openEnv loads config from the command's flags and opens the store.
func openEnv(cmd *cobra.Command) (*env, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}
	pol := policy.New(cfg)
	stateFile := pol.StateFile()

	if dataFile, _ := cmd.Flags().GetString("data"); dataFile != "" {
		abs, err := filepath.Abs(dataFile)
		if err != nil {
			return nil, fmt.Errorf("data file: %w", err)
		}
		// An explicit --data path may live outside the workspace.
		pol.SetWorkspaceRoot("")
		if _, err := pol.SetDataFile(abs); err != nil {
			return nil, err
		}
	}

	logger := setupLogger(pol.LogFile())
	repo, err := repository.NewDatasetRepository(stateFile)
	if err != nil {
		return nil, fmt.Errorf("dataset repository: %w", err)
	}
	return &env{
		cfg:       cfg,
		pol:       pol,
		stateFile: stateFile,
		logger:    logger,
		repo:      repo,
		svc:       app.NewBoardService(repo, pol, logger),
	}, nil
}

// watcher builds the data file watcher from the watch config, or nil when disabled.
func (e *env) watcher() *app.DataWatcher {
	w := e.pol.Watch()
	if w == nil || !w.Enabled {
		return nil
	}
	return app.NewDataWatcher(e.pol.DataFile, e.svc, e.logger,
		app.WithWatchPollInterval(time.Duration(w.PollIntervalSeconds)*time.Second),
		app.WithDebounce(time.Duration(w.DebounceMs)*time.Millisecond),
	)
}

// reload loads the data file, logging rather than failing; stored data keeps serving.
func (e *env) reload() {
	if _, err := e.svc.Reload(); err != nil {
		e.logger.Printf("Warning: initial load failed: %v", err)
	}
}

func (e *env) close() {
	if c, ok := e.repo.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			e.logger.Printf("Warning: close dataset repository: %v", err)
		}
	}
}
