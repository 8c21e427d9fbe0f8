package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aretw0/flowgrid/pkg/domain"
)

var (
	// DefaultMaxInputSize bounds a single cell value or search term, in bytes.
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize overrides DefaultMaxInputSize.
	EnvMaxInputSize = "FLOWGRID_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// InputPolicy is the cleaning applied to free text typed by a user.
type InputPolicy struct {
	MaxSize int
}

// PolicyFromEnv returns the policy in effect, honouring EnvMaxInputSize.
func PolicyFromEnv() InputPolicy {
	p := InputPolicy{MaxSize: DefaultMaxInputSize}
	raw := os.Getenv(EnvMaxInputSize)
	if raw == "" {
		return p
	}
	if n, err := strconv.Atoi(raw); err == nil && n > 0 {
		p.MaxSize = n
	}
	return p
}

// Clean rejects oversized or malformed text and drops control characters,
// keeping newlines, tabs and carriage returns. Oversized text is never truncated.
func (p InputPolicy) Clean(s string) (string, error) {
	if p.MaxSize > 0 && len(s) > p.MaxSize {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(s), p.MaxSize)
	}
	if !utf8.ValidString(s) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(s, unwanted) < 0 {
		return s, nil
	}
	return strings.Map(func(r rune) rune {
		if unwanted(r) {
			return -1
		}
		return r
	}, s), nil
}

// SanitizeInput cleans s with the policy from the environment.
func SanitizeInput(s string) (string, error) {
	return PolicyFromEnv().Clean(s)
}

// SanitizeEvent cleans the free-text parts of an event: the search term and
// string cell values. Identifiers are left alone since unknown ids are no-ops.
func SanitizeEvent(ev domain.Event) (domain.Event, error) {
	p := PolicyFromEnv()
	if ev.Term != "" {
		term, err := p.Clean(ev.Term)
		if err != nil {
			return ev, fmt.Errorf("search term: %w", err)
		}
		ev.Term = term
	}
	if s, ok := ev.Value.(string); ok {
		v, err := p.Clean(s)
		if err != nil {
			return ev, fmt.Errorf("value: %w", err)
		}
		ev.Value = v
	}
	return ev, nil
}

func unwanted(r rune) bool {
	switch r {
	case '\n', '\t', '\r':
		return false
	}
	return unicode.IsControl(r)
}
