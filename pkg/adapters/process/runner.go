package process

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/flowgrid/internal/logging"
	"github.com/aretw0/flowgrid/pkg/domain"
	"github.com/aretw0/flowgrid/pkg/ports"
)

// EnvPrefix prefixes every variable passed to a hook.
const EnvPrefix = "FLOWGRID_"

// ErrNotRegistered is returned for action types without a hook.
var ErrNotRegistered = errors.New("no hook registered for action")

// Runner dispatches engine action requests to local processes.
// Only registered commands run; the request itself never becomes argv.
type Runner struct {
	registry map[string]RegisteredProcess
	baseDir  string
	timeout  time.Duration
	stdout   io.Writer
	logger   *slog.Logger
}

// RegisteredProcess is an allowed command execution.
type RegisteredProcess struct {
	Command string
	Args    []string
	Env     map[string]string
}

// RunnerOption configures the runner.
type RunnerOption func(*Runner)

// WithHooks populates the allow-list from a loaded config.
func WithHooks(hooks []HookConfig) RunnerOption {
	return func(r *Runner) {
		for _, h := range hooks {
			r.registry[h.Action] = RegisteredProcess{Command: h.Command, Args: h.Args, Env: h.Environment}
		}
	}
}

// WithBaseDir sets the working directory for executed processes.
func WithBaseDir(dir string) RunnerOption {
	return func(r *Runner) {
		r.baseDir = dir
	}
}

// WithTimeout bounds each hook execution. Zero means no limit beyond ctx.
func WithTimeout(d time.Duration) RunnerOption {
	return func(r *Runner) {
		r.timeout = d
	}
}

// WithStdout forwards hook output. By default it is logged at debug level.
func WithStdout(w io.Writer) RunnerOption {
	return func(r *Runner) {
		r.stdout = w
	}
}

// WithLogger sets the runner logger.
func WithLogger(logger *slog.Logger) RunnerOption {
	return func(r *Runner) {
		r.logger = logger
	}
}

// NewRunner creates a new process runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{
		registry: make(map[string]RegisteredProcess),
		timeout:  30 * time.Second,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logging.NewNop()
	}
	return r
}

// Register adds a trusted command for an action type.
func (r *Runner) Register(action string, command string, args ...string) {
	r.registry[action] = RegisteredProcess{Command: command, Args: args}
}

// Actions returns the action types with a hook, sorted.
func (r *Runner) Actions() []string {
	actions := make([]string, 0, len(r.registry))
	for a := range r.registry {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	return actions
}

// Dispatch runs the hook registered for the request type. The request is
// passed through the environment: FLOWGRID_ACTION holds the type,
// FLOWGRID_PAYLOAD the JSON payload and each top-level payload key is also
// exported on its own (record_id becomes FLOWGRID_RECORD_ID).
func (r *Runner) Dispatch(ctx context.Context, req domain.ActionRequest) error {
	proc, ok := r.registry[req.Type]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotRegistered, req.Type)
	}

	env, err := requestEnv(req)
	if err != nil {
		return err
	}
	for k, v := range proc.Env {
		env = append(env, k+"="+v)
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, proc.Command, proc.Args...)
	cmd.Dir = r.baseDir
	// Children that inherit the pipes must not outlive a cancelled hook.
	cmd.WaitDelay = time.Second
	cmd.Env = append(cmd.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("hook %s failed: %w: %s", req.Type, err, strings.TrimSpace(stderr.String()))
	}
	r.logger.Debug("hook executed", "action", req.Type, "command", proc.Command, "duration", time.Since(start))

	if r.stdout != nil {
		_, err := r.stdout.Write(stdout.Bytes())
		return err
	}
	if out := strings.TrimSpace(stdout.String()); out != "" {
		r.logger.Debug("hook output", "action", req.Type, "output", out)
	}
	return nil
}

func requestEnv(req domain.ActionRequest) ([]string, error) {
	payload, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s payload: %w", req.Type, err)
	}
	env := []string{
		EnvPrefix + "ACTION=" + req.Type,
		EnvPrefix + "PAYLOAD=" + string(payload),
	}

	var fields map[string]any
	if json.Unmarshal(payload, &fields) != nil {
		return env, nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		var val string
		switch v := fields[k].(type) {
		case nil:
		case string:
			val = v
		case float64, bool:
			val = fmt.Sprint(v)
		default:
			raw, _ := json.Marshal(v)
			val = string(raw)
		}
		env = append(env, EnvPrefix+envKey(k)+"="+val)
	}
	return env, nil
}

func envKey(k string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r - 'a' + 'A'
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, k)
}

var _ ports.ActionDispatcher = (*Runner)(nil)
