package process

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// HookConfig binds an engine action type to an external command.
type HookConfig struct {
	Action      string            `yaml:"action" json:"action"`
	Command     string            `yaml:"command" json:"command"`
	Args        []string          `yaml:"args" json:"args"`
	Environment map[string]string `yaml:"env" json:"env"`
	Description string            `yaml:"description" json:"description"`
}

// ConfigFile represents the structure of hooks.yaml.
type ConfigFile struct {
	Hooks []HookConfig `yaml:"hooks" json:"hooks"`
}

// LoadHooks reads a hooks file (YAML or JSON). Hooks without an action or a
// command are rejected; a later hook for the same action replaces the earlier.
func LoadHooks(path string) ([]HookConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read hooks config: %w", err)
	}

	var cfg ConfigFile
	if strings.ToLower(filepath.Ext(path)) == ".json" {
		err = json.Unmarshal(data, &cfg)
	} else {
		err = yaml.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	index := make(map[string]int, len(cfg.Hooks))
	hooks := make([]HookConfig, 0, len(cfg.Hooks))
	for i, h := range cfg.Hooks {
		h.Action = strings.ToUpper(strings.TrimSpace(h.Action))
		if h.Action == "" || h.Command == "" {
			return nil, fmt.Errorf("hook #%d: action and command are required", i+1)
		}
		if at, dup := index[h.Action]; dup {
			hooks[at] = h
			continue
		}
		index[h.Action] = len(hooks)
		hooks = append(hooks, h)
	}
	return hooks, nil
}
