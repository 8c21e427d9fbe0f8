package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/aretw0/flowgrid/internal/logging"
)

// RunOptions contains the configuration shared by the CLI commands.
type RunOptions struct {
	// RepoPath is the Loam repository holding object metadata. It is only
	// read when the definition carries no inline objects.
	RepoPath string

	// Definition is the grid definition file (YAML or JSON).
	Definition string

	// GridID names the session. A named session is persisted and resumed.
	GridID string

	// Fresh discards a stored session before starting.
	Fresh bool

	// StoreDir is where file-backed sessions live.
	StoreDir string

	// RedisURL switches persistence to Redis (redis://host:port/db).
	RedisURL string
	TTL      time.Duration

	// Location is the IANA zone used to format date-times.
	Location string

	// EncryptionKey seals stored grids with AES-256-GCM (base64, 32 bytes).
	// FallbackKeys open grids sealed before a key rotation.
	EncryptionKey string
	FallbackKeys  []string

	// MaskFields are regular expressions; matching record fields are masked
	// in stored grids.
	MaskFields []string

	// HooksFile binds engine actions to local commands (see process.LoadHooks).
	HooksFile string

	JSON     bool
	Headless bool
	Debug    bool
	LogLevel string
}

// Keys are only read from the environment so they stay out of shell history.
const (
	EnvEncryptionKey = "FLOWGRID_ENCRYPTION_KEY"
	EnvFallbackKeys  = "FLOWGRID_FALLBACK_KEYS"
)

// KeysFromEnv returns the active key and the comma separated fallback keys.
func KeysFromEnv() (string, []string) {
	var fallback []string
	for _, k := range strings.Split(os.Getenv(EnvFallbackKeys), ",") {
		if k = strings.TrimSpace(k); k != "" {
			fallback = append(fallback, k)
		}
	}
	return strings.TrimSpace(os.Getenv(EnvEncryptionKey)), fallback
}

// createLogger builds the CLI logger. Debug wins over an explicit level.
func createLogger(opts RunOptions) *slog.Logger {
	if opts.Debug {
		return logging.New(slog.LevelDebug)
	}
	level := slog.LevelWarn
	if opts.LogLevel != "" {
		if l, err := logging.ParseLevel(opts.LogLevel); err == nil {
			level = l
		}
	}
	return logging.New(level)
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid location %q: %w", name, err)
	}
	return loc, nil
}

func printSystemMessage(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "[System] "+format+"\n", args...)
}
