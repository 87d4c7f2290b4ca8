package theme

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/folio-dev/folio/internal/models"
)

// fakeQuery lets tests change the OS value without firing a change event.
type fakeQuery struct {
	mu    sync.Mutex
	value bool
	subs  map[int]func(bool)
	next  int
}

func newFakeQuery(value bool) *fakeQuery {
	return &fakeQuery{value: value, subs: make(map[int]func(bool))}
}

func (q *fakeQuery) Matches() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.value
}

func (q *fakeQuery) Subscribe(fn func(bool)) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.next
	q.next++
	q.subs[id] = fn
	return func() {
		q.mu.Lock()
		delete(q.subs, id)
		q.mu.Unlock()
	}
}

func (q *fakeQuery) setSilently(value bool) {
	q.mu.Lock()
	q.value = value
	q.mu.Unlock()
}

func (q *fakeQuery) fire() {
	q.mu.Lock()
	value := q.value
	subs := make([]func(bool), 0, len(q.subs))
	for _, fn := range q.subs {
		subs = append(subs, fn)
	}
	q.mu.Unlock()
	for _, fn := range subs {
		fn(value)
	}
}

func (q *fakeQuery) subscribers() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.subs)
}

type failingStorage struct{}

func (failingStorage) Get(string) (string, bool) { return "", false }
func (failingStorage) Set(string, string) error  { return errors.New("quota exceeded") }

func newTestRuntime(t *testing.T, opts Options, deps Deps) *Runtime {
	t.Helper()
	logger := zerolog.Nop()
	deps.Logger = &logger
	rt := New(opts, deps)
	t.Cleanup(rt.Close)
	return rt
}

func TestStartWithDefaultLight(t *testing.T) {
	storage := NewMemoryStorage()
	root := NewRoot()
	opts := DefaultOptions()
	opts.DefaultTheme = models.ThemeLight

	rt := newTestRuntime(t, opts, Deps{Storage: storage, Sink: root})
	rt.Start()

	assert.Equal(t, models.ThemeLight, rt.Theme())
	assert.Equal(t, models.EffectiveLight, rt.EffectiveTheme())
	assert.True(t, root.HasClass("light"))
	assert.False(t, root.HasClass("dark"))
}

func TestSetThemeDarkUpdatesStorageAndRoot(t *testing.T) {
	storage := NewMemoryStorage()
	root := NewRoot()
	opts := DefaultOptions()
	opts.DefaultTheme = models.ThemeLight

	rt := newTestRuntime(t, opts, Deps{Storage: storage, Sink: root})
	rt.Start()

	require.NoError(t, rt.SetTheme(models.ThemeDark))

	stored, ok := storage.Get("theme")
	require.True(t, ok)
	assert.Equal(t, "dark", stored)
	assert.True(t, root.HasClass("dark"))
	assert.False(t, root.HasClass("light"))
	assert.Equal(t, models.EffectiveDark, rt.EffectiveTheme())
}

func TestSetThemeRejectsUnknownChoice(t *testing.T) {
	storage := NewMemoryStorage()
	rt := newTestRuntime(t, DefaultOptions(), Deps{Storage: storage})
	rt.Start()

	err := rt.SetTheme(models.ThemeChoice("sepia"))
	require.ErrorIs(t, err, models.ErrInvalidThemeChoice)
	assert.Equal(t, models.ThemeSystem, rt.Theme())
	_, ok := storage.Get("theme")
	assert.False(t, ok, "invalid choice must not be persisted")
}

func TestStoredChoiceWinsOverDefault(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set("site-theme", "dark"))
	opts := DefaultOptions()
	opts.DefaultTheme = models.ThemeLight
	opts.StorageKey = "site-theme"

	rt := newTestRuntime(t, opts, Deps{Storage: storage})
	rt.Start()

	assert.Equal(t, models.ThemeDark, rt.Theme())
}

func TestInvalidStoredChoiceFallsBackToDefault(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set("theme", "purple"))
	opts := DefaultOptions()
	opts.DefaultTheme = models.ThemeLight

	rt := newTestRuntime(t, opts, Deps{Storage: storage})
	rt.Start()

	assert.Equal(t, models.ThemeLight, rt.Theme())
}

func TestStorageFailureIsDegradedMode(t *testing.T) {
	root := NewRoot()
	rt := newTestRuntime(t, DefaultOptions(), Deps{Storage: failingStorage{}, Sink: root})
	rt.Start()

	require.NoError(t, rt.SetTheme(models.ThemeDark))
	assert.Equal(t, models.ThemeDark, rt.Theme())
	assert.True(t, root.HasClass("dark"))
}

func TestStoredDarkIgnoresOSThenFollowsSystemOnEvents(t *testing.T) {
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set("theme", "dark"))
	prefersDark := newFakeQuery(false)
	root := NewRoot()

	rt := newTestRuntime(t, DefaultOptions(), Deps{Storage: storage, Sink: root, PrefersDark: prefersDark})
	rt.Start()

	assert.Equal(t, models.EffectiveDark, rt.EffectiveTheme(), "explicit dark ignores OS light")
	assert.Equal(t, 0, prefersDark.subscribers(), "no OS subscription outside system")

	prefersDark.setSilently(true)
	require.NoError(t, rt.SetTheme(models.ThemeSystem))
	assert.Equal(t, models.EffectiveDark, rt.EffectiveTheme())
	assert.Equal(t, 1, prefersDark.subscribers())

	// The OS flips but no change event has fired yet.
	prefersDark.setSilently(false)
	assert.Equal(t, models.EffectiveDark, rt.EffectiveTheme())
	assert.True(t, root.HasClass("dark"))

	prefersDark.fire()
	assert.Equal(t, models.EffectiveLight, rt.EffectiveTheme())
	assert.True(t, root.HasClass("light"))
	assert.False(t, root.HasClass("dark"))
}

func TestLeavingSystemCancelsOSSubscription(t *testing.T) {
	prefersDark := NewSignal(true)
	rt := newTestRuntime(t, DefaultOptions(), Deps{PrefersDark: prefersDark})
	rt.Start()

	assert.Equal(t, models.EffectiveDark, rt.EffectiveTheme())
	assert.Equal(t, 1, prefersDark.Subscribers())

	require.NoError(t, rt.SetTheme(models.ThemeLight))
	assert.Equal(t, 0, prefersDark.Subscribers())

	prefersDark.Set(false)
	prefersDark.Set(true)
	assert.Equal(t, models.EffectiveLight, rt.EffectiveTheme())
}

func TestEnableSystemFalseResolvesSystemToLight(t *testing.T) {
	prefersDark := NewSignal(true)
	opts := DefaultOptions()
	opts.EnableSystem = false

	rt := newTestRuntime(t, opts, Deps{PrefersDark: prefersDark})
	rt.Start()

	assert.Equal(t, models.ThemeSystem, rt.Theme())
	assert.Equal(t, models.EffectiveLight, rt.EffectiveTheme())
	assert.Equal(t, 0, prefersDark.Subscribers())
}

func TestDataAttributeMode(t *testing.T) {
	root := NewRoot()
	opts := DefaultOptions()
	opts.Attribute = "theme"
	opts.DefaultTheme = models.ThemeDark

	rt := newTestRuntime(t, opts, Deps{Sink: root})
	rt.Start()

	value, ok := root.Attribute("data-theme")
	require.True(t, ok)
	assert.Equal(t, "dark", value)
	assert.False(t, root.HasClass("dark"))

	require.NoError(t, rt.SetTheme(models.ThemeLight))
	value, _ = root.Attribute("data-theme")
	assert.Equal(t, "light", value)
}

func TestReducedMotionClass(t *testing.T) {
	root := NewRoot()
	motion := NewSignal(true)

	rt := newTestRuntime(t, DefaultOptions(), Deps{Sink: root, ReducedMotion: motion})
	rt.Start()

	assert.True(t, rt.PrefersReducedMotion())
	assert.True(t, root.HasClass(ClassReduceMotion))

	motion.Set(false)
	assert.False(t, rt.PrefersReducedMotion())
	assert.False(t, root.HasClass(ClassReduceMotion))
}

func TestDisableTransitionOnChange(t *testing.T) {
	root := NewRoot()
	opts := DefaultOptions()
	opts.DisableTransitionOnChange = true

	rt := newTestRuntime(t, opts, Deps{Sink: root})
	rt.Start()
	require.NoError(t, rt.SetTheme(models.ThemeDark))

	assert.False(t, root.HasClass(ClassNoTransitions), "transitions re-enabled after apply")
	history := root.History()
	assert.Contains(t, history, "+"+ClassNoTransitions)
	assert.Contains(t, history, "-"+ClassNoTransitions)
}

func TestSubscribeNotifiesOnEffectiveChange(t *testing.T) {
	prefersDark := NewSignal(false)
	rt := newTestRuntime(t, DefaultOptions(), Deps{PrefersDark: prefersDark})

	var seen []models.EffectiveTheme
	cancel := rt.Subscribe(func(s State) {
		seen = append(seen, s.EffectiveTheme)
	})

	rt.Start()
	prefersDark.Set(true)
	require.NoError(t, rt.SetTheme(models.ThemeLight))
	require.NoError(t, rt.SetTheme(models.ThemeLight))

	cancel()
	require.NoError(t, rt.SetTheme(models.ThemeDark))

	assert.Equal(t, []models.EffectiveTheme{
		models.EffectiveLight,
		models.EffectiveDark,
		models.EffectiveLight,
	}, seen)
}

func TestSubscribersRunInRegistrationOrder(t *testing.T) {
	rt := newTestRuntime(t, DefaultOptions(), Deps{})

	var order []int
	for i := 0; i < 5; i++ {
		i := i
		rt.Subscribe(func(State) { order = append(order, i) })
	}
	require.NoError(t, rt.SetTheme(models.ThemeDark))

	assert.Equal(t, []int{0, 1, 2, 3, 4}, order)
}

func TestToggleCycles(t *testing.T) {
	opts := DefaultOptions()
	opts.DefaultTheme = models.ThemeLight
	rt := newTestRuntime(t, opts, Deps{})
	rt.Start()

	assert.Equal(t, models.ThemeDark, rt.Toggle())
	assert.Equal(t, models.ThemeSystem, rt.Toggle())
	assert.Equal(t, models.ThemeLight, rt.Toggle())
}

func TestToggleSkipsSystemWhenDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.EnableSystem = false
	rt := newTestRuntime(t, opts, Deps{})
	rt.Start()
	require.Equal(t, models.ThemeSystem, rt.Theme())

	assert.Equal(t, models.ThemeLight, rt.Toggle())
	assert.Equal(t, models.ThemeDark, rt.Toggle())
	assert.Equal(t, models.ThemeLight, rt.Toggle(), "dark wraps to light")
}

func TestFileStoragePersistsAcrossRuntimes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "storage.json")

	first := newTestRuntime(t, DefaultOptions(), Deps{Storage: NewFileStorage(path)})
	first.Start()
	require.NoError(t, first.SetTheme(models.ThemeDark))

	second := newTestRuntime(t, DefaultOptions(), Deps{Storage: NewFileStorage(path)})
	second.Start()
	assert.Equal(t, models.ThemeDark, second.Theme())
}

func TestFromContext(t *testing.T) {
	_, err := FromContext(context.Background())
	require.ErrorIs(t, err, ErrContextMissing)

	rt := newTestRuntime(t, DefaultOptions(), Deps{})
	ctx := WithRuntime(context.Background(), rt)
	got, err := FromContext(ctx)
	require.NoError(t, err)
	assert.Same(t, rt, got)

	assert.Panics(t, func() {
		MustFromContext(context.Background())
	})
}

func TestResolveIsPure(t *testing.T) {
	assert.Equal(t, models.EffectiveLight, Resolve(models.ThemeLight, true))
	assert.Equal(t, models.EffectiveDark, Resolve(models.ThemeDark, false))
	assert.Equal(t, models.EffectiveDark, Resolve(models.ThemeSystem, true))
	assert.Equal(t, models.EffectiveLight, Resolve(models.ThemeSystem, false))
}

func TestReducedMotionFromEnv(t *testing.T) {
	env := map[string]string{"REDUCE_MOTION": "reduce"}
	assert.True(t, reducedMotionFromEnv(func(k string) string { return env[k] }))

	env = map[string]string{"FOLIO_REDUCED_MOTION": "false", "REDUCE_MOTION": "1"}
	assert.False(t, reducedMotionFromEnv(func(k string) string { return env[k] }))

	assert.False(t, reducedMotionFromEnv(func(string) string { return "" }))
}
