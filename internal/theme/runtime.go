// Package theme holds the theme runtime: the active light/dark/system
// choice, the effective theme derived from it, and the reduced motion flag.
// State is reflected onto an injected Sink and persisted to a Storage.
package theme

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"github.com/folio-dev/folio/internal/logging"
	"github.com/folio-dev/folio/internal/models"
)

// Defaults applied by New.
const (
	DefaultStorageKey = "theme"
	AttributeClass    = "class"
)

// Options configure a Runtime.
type Options struct {
	// DefaultTheme is adopted when storage holds no valid choice.
	// Default: system.
	DefaultTheme models.ThemeChoice

	// StorageKey is the storage key for the explicit choice. Default: "theme".
	StorageKey string

	// Attribute is "class" to toggle light/dark classes, or a name for a
	// data-<name> attribute. Default: "class".
	Attribute string

	// EnableSystem lets the system choice follow the OS. When false, system
	// resolves to light.
	EnableSystem bool

	// DisableTransitionOnChange wraps each application in a no-transitions class.
	DisableTransitionOnChange bool
}

// DefaultOptions returns the options used by the site.
func DefaultOptions() Options {
	return Options{
		DefaultTheme: models.ThemeSystem,
		StorageKey:   DefaultStorageKey,
		Attribute:    AttributeClass,
		EnableSystem: true,
	}
}

// Deps are the collaborators a Runtime reads from and writes to.
// Nil fields get in-memory defaults.
type Deps struct {
	Storage       Storage
	Sink          Sink
	PrefersDark   MediaQuery
	ReducedMotion MediaQuery
	Logger        *zerolog.Logger
}

// State is a snapshot of the runtime.
type State struct {
	Theme                models.ThemeChoice    `json:"theme"`
	EffectiveTheme       models.EffectiveTheme `json:"effective_theme"`
	PrefersReducedMotion bool                  `json:"prefers_reduced_motion"`
}

// Resolve derives the effective theme from a choice and the OS preference.
func Resolve(choice models.ThemeChoice, prefersDark bool) models.EffectiveTheme {
	switch choice {
	case models.ThemeDark:
		return models.EffectiveDark
	case models.ThemeSystem:
		if prefersDark {
			return models.EffectiveDark
		}
		return models.EffectiveLight
	default:
		return models.EffectiveLight
	}
}

// Runtime owns the theme state for one display surface.
type Runtime struct {
	opts          Options
	storage       Storage
	sink          Sink
	prefersDark   MediaQuery
	reducedMotion MediaQuery
	logger        zerolog.Logger

	mu           sync.Mutex
	started      bool
	choice       models.ThemeChoice
	effective    models.EffectiveTheme
	reduced      bool
	cancelDark   func()
	cancelMotion func()

	subsMu sync.Mutex
	nextID int
	subs   map[int]func(State)
}

// New builds a Runtime. Call Start to load the stored choice and apply it.
func New(opts Options, deps Deps) *Runtime {
	if !opts.DefaultTheme.Valid() {
		opts.DefaultTheme = models.ThemeSystem
	}
	if opts.StorageKey == "" {
		opts.StorageKey = DefaultStorageKey
	}
	if opts.Attribute == "" {
		opts.Attribute = AttributeClass
	}
	if deps.Storage == nil {
		deps.Storage = NewMemoryStorage()
	}
	if deps.Sink == nil {
		deps.Sink = NewRoot()
	}
	if deps.PrefersDark == nil {
		deps.PrefersDark = NewSignal(false)
	}
	if deps.ReducedMotion == nil {
		deps.ReducedMotion = NewSignal(false)
	}
	logger := logging.Component("theme")
	if deps.Logger != nil {
		logger = *deps.Logger
	}

	return &Runtime{
		opts:          opts,
		storage:       deps.Storage,
		sink:          deps.Sink,
		prefersDark:   deps.PrefersDark,
		reducedMotion: deps.ReducedMotion,
		logger:        logger,
		choice:        opts.DefaultTheme,
		effective:     models.EffectiveLight,
		subs:          make(map[int]func(State)),
	}
}

// Start adopts the stored choice (or the default), reads the reduced motion
// preference, subscribes to OS changes and applies the result. It is a no-op
// after the first call.
func (r *Runtime) Start() {
	r.mu.Lock()
	if r.started {
		r.mu.Unlock()
		return
	}
	r.started = true

	r.choice = r.opts.DefaultTheme
	if stored, ok := r.storage.Get(r.opts.StorageKey); ok {
		if choice, err := models.ParseThemeChoice(stored); err == nil {
			r.choice = choice
		} else {
			r.logger.Warn().Str("stored", stored).Msg("ignoring invalid stored theme")
		}
	}

	r.reduced = r.reducedMotion.Matches()
	r.cancelMotion = r.reducedMotion.Subscribe(r.onReducedMotion)
	r.applyLocked(r.prefersDark.Matches())
	state := r.stateLocked()
	r.mu.Unlock()

	r.logger.Debug().
		Str("theme", string(state.Theme)).
		Str("effective", string(state.EffectiveTheme)).
		Bool("reduced_motion", state.PrefersReducedMotion).
		Msg("theme runtime started")
	r.notify(state)
}

// SetTheme persists and applies an explicit choice. A storage failure is
// logged and the in-memory state still changes.
func (r *Runtime) SetTheme(choice models.ThemeChoice) error {
	if !choice.Valid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidThemeChoice, string(choice))
	}

	r.mu.Lock()
	if err := r.storage.Set(r.opts.StorageKey, string(choice)); err != nil {
		r.logger.Warn().Err(err).Str("theme", string(choice)).Msg("failed to persist theme; continuing in memory")
	}
	before := r.stateLocked()
	r.choice = choice
	r.applyLocked(r.prefersDark.Matches())
	after := r.stateLocked()
	r.mu.Unlock()

	r.logger.Debug().
		Str("from", string(before.Theme)).
		Str("to", string(after.Theme)).
		Str("effective", string(after.EffectiveTheme)).
		Msg("theme set")
	if before != after {
		r.notify(after)
	}
	return nil
}

// Toggle advances light → dark → system → light and returns the new choice.
// System is skipped when EnableSystem is off.
func (r *Runtime) Toggle() models.ThemeChoice {
	next := r.Theme().Next()
	if next == models.ThemeSystem && !r.opts.EnableSystem {
		next = next.Next()
	}
	_ = r.SetTheme(next)
	return next
}

// Theme returns the active choice.
func (r *Runtime) Theme() models.ThemeChoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.choice
}

// EffectiveTheme returns the applied light or dark theme.
func (r *Runtime) EffectiveTheme() models.EffectiveTheme {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.effective
}

// PrefersReducedMotion mirrors the OS reduced motion preference.
func (r *Runtime) PrefersReducedMotion() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.reduced
}

// State returns a snapshot.
func (r *Runtime) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stateLocked()
}

// Options returns the options in effect after defaults.
func (r *Runtime) Options() Options {
	return r.opts
}

// Subscribe registers fn to run after every state change, outside the
// runtime lock, on the goroutine that caused the change. Subscribers run in
// registration order.
func (r *Runtime) Subscribe(fn func(State)) (cancel func()) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()
	id := r.nextID
	r.nextID++
	r.subs[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			r.subsMu.Lock()
			delete(r.subs, id)
			r.subsMu.Unlock()
		})
	}
}

// Close cancels OS preference subscriptions.
func (r *Runtime) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancelDark != nil {
		r.cancelDark()
		r.cancelDark = nil
	}
	if r.cancelMotion != nil {
		r.cancelMotion()
		r.cancelMotion = nil
	}
}

func (r *Runtime) onPrefersDark(matches bool) {
	r.mu.Lock()
	if r.choice != models.ThemeSystem || r.cancelDark == nil {
		r.mu.Unlock()
		return
	}
	before := r.stateLocked()
	r.applyLocked(matches)
	after := r.stateLocked()
	r.mu.Unlock()

	if before != after {
		r.logger.Debug().Str("effective", string(after.EffectiveTheme)).Msg("system color scheme changed")
		r.notify(after)
	}
}

func (r *Runtime) onReducedMotion(matches bool) {
	r.mu.Lock()
	if r.reduced == matches {
		r.mu.Unlock()
		return
	}
	r.reduced = matches
	r.applyMotionLocked()
	state := r.stateLocked()
	r.mu.Unlock()

	r.notify(state)
}

// applyLocked recomputes the effective theme, writes it to the sink and
// arms the prefers-dark subscription only while the choice is system.
func (r *Runtime) applyLocked(prefersDark bool) {
	followSystem := r.choice == models.ThemeSystem && r.opts.EnableSystem
	if !followSystem {
		prefersDark = false
	}
	r.effective = Resolve(r.choice, prefersDark)

	if r.opts.DisableTransitionOnChange {
		r.sink.AddClass(ClassNoTransitions)
		defer r.sink.RemoveClass(ClassNoTransitions)
	}

	r.sink.RemoveClass(ClassLight)
	r.sink.RemoveClass(ClassDark)
	if r.opts.Attribute == AttributeClass {
		r.sink.AddClass(string(r.effective))
	} else {
		attr := "data-" + r.opts.Attribute
		r.sink.RemoveAttribute(attr)
		r.sink.SetAttribute(attr, string(r.effective))
	}
	r.applyMotionLocked()

	switch {
	case followSystem && r.cancelDark == nil:
		r.cancelDark = r.prefersDark.Subscribe(r.onPrefersDark)
	case !followSystem && r.cancelDark != nil:
		r.cancelDark()
		r.cancelDark = nil
	}
}

func (r *Runtime) applyMotionLocked() {
	if r.reduced {
		r.sink.AddClass(ClassReduceMotion)
	} else {
		r.sink.RemoveClass(ClassReduceMotion)
	}
}

func (r *Runtime) stateLocked() State {
	return State{
		Theme:                r.choice,
		EffectiveTheme:       r.effective,
		PrefersReducedMotion: r.reduced,
	}
}

func (r *Runtime) notify(state State) {
	r.subsMu.Lock()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]func(State), 0, len(ids))
	for _, id := range ids {
		subs = append(subs, r.subs[id])
	}
	r.subsMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
