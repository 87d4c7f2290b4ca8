package theme

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// MediaQuery is a read-only OS preference such as prefers-color-scheme.
type MediaQuery interface {
	Matches() bool
	// Subscribe registers fn for change notifications. fn must not be
	// invoked from inside Subscribe.
	Subscribe(fn func(matches bool)) (cancel func())
}

// Signal is a settable MediaQuery. Set notifies subscribers synchronously.
type Signal struct {
	mu     sync.Mutex
	value  bool
	nextID int
	subs   map[int]func(bool)
}

// NewSignal returns a Signal with the given initial value.
func NewSignal(initial bool) *Signal {
	return &Signal{value: initial, subs: make(map[int]func(bool))}
}

func (s *Signal) Matches() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set changes the value and fires a change event when it differs.
func (s *Signal) Set(value bool) {
	s.mu.Lock()
	if s.value == value {
		s.mu.Unlock()
		return
	}
	s.value = value
	subs := make([]func(bool), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(value)
	}
}

func (s *Signal) Subscribe(fn func(bool)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of active subscriptions.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// TerminalPrefersDark seeds a Signal from the terminal's background color.
func TerminalPrefersDark() *Signal {
	return NewSignal(lipgloss.HasDarkBackground())
}

// Environment variables consulted for the reduced motion preference.
var reducedMotionEnv = []string{"FOLIO_REDUCED_MOTION", "REDUCE_MOTION"}

// EnvReducedMotion seeds a Signal from FOLIO_REDUCED_MOTION or REDUCE_MOTION.
func EnvReducedMotion() *Signal {
	return NewSignal(reducedMotionFromEnv(os.Getenv))
}

func reducedMotionFromEnv(getenv func(string) string) bool {
	for _, key := range reducedMotionEnv {
		value := strings.ToLower(strings.TrimSpace(getenv(key)))
		if value == "" {
			continue
		}
		if value == "reduce" {
			return true
		}
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return false
}
