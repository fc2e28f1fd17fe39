package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"taskpalette/services/task"
)

// fakeClock captures the close-reset callback so tests fire it by hand.
type fakeClock struct {
	delay    time.Duration
	callback func()
}

func (f *fakeClock) afterFunc(d time.Duration, fn func()) *time.Timer {
	f.delay = d
	f.callback = fn
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	return timer
}

func newTestPalette(t *testing.T, clock *fakeClock) *Palette {
	t.Helper()
	cache := newTestCache(t, true)
	require.NoError(t, cache.Refresh(context.Background()))
	opts := []PaletteOption{}
	if clock != nil {
		opts = append(opts, WithAfterFunc(clock.afterFunc))
	}
	return NewPalette(cache, opts...)
}

func TestPaletteStartsClosed(t *testing.T) {
	p := newTestPalette(t, nil)
	require.Equal(t, PageClosed, p.Page())
}

func TestPaletteOpenAndToggle(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	require.Equal(t, PageMain, p.Page())

	// Open while open is a no-op.
	p.Open()
	require.Equal(t, PageMain, p.Page())

	p.Toggle()
	require.Equal(t, PageClosed, p.Page())
	p.Toggle()
	require.Equal(t, PageMain, p.Page())
}

func TestPaletteSelectTaskNavigatesToView(t *testing.T) {
	p := newTestPalette(t, nil)

	// Ignored while closed.
	p.SelectTask("1")
	require.Equal(t, PageClosed, p.Page())
	require.Empty(t, p.SelectedID())

	p.Open()
	p.SelectTask("1")
	require.Equal(t, PageView, p.Page())
	require.Equal(t, "1", p.SelectedID())
}

func TestPaletteCancelFallsBackThenCloses(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.SelectTask("1")

	p.Cancel()
	require.Equal(t, PageMain, p.Page())
	require.Empty(t, p.SelectedID())

	p.Cancel()
	require.Equal(t, PageClosed, p.Page())
}

func TestPaletteQueryOnlyOnMain(t *testing.T) {
	p := newTestPalette(t, nil)

	p.SetQuery("ignored while closed")
	require.Empty(t, p.Query())

	p.Open()
	p.SetQuery("news")
	require.Equal(t, "news", p.Query())
}

func TestPaletteCreateWithTitlePrefills(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.SetQuery("Deploy Website")
	p.CreateWithTitle("Deploy Website")

	require.Equal(t, PageCreate, p.Page())
	require.Equal(t, "Deploy Website", p.PrefilledTitle())
	require.Empty(t, p.Query())

	p.Back()
	require.Equal(t, PageMain, p.Page())
	require.Empty(t, p.PrefilledTitle())
}

func TestPaletteStartCreateBlankForm(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.SetQuery("leftover")
	p.StartCreate()

	require.Equal(t, PageCreate, p.Page())
	require.Empty(t, p.PrefilledTitle())
	require.Empty(t, p.Query())
}

func TestPaletteCloseResetsAfterDelay(t *testing.T) {
	clock := &fakeClock{}
	p := newTestPalette(t, clock)

	p.Open()
	p.SetQuery("news")
	p.SelectTask("1")
	p.Close()

	require.Equal(t, PageClosed, p.Page())
	require.Equal(t, 200*time.Millisecond, clock.delay)

	// State survives until the timer fires.
	require.Equal(t, "1", p.SelectedID())

	clock.callback()
	require.Empty(t, p.Query())
	require.Empty(t, p.SelectedID())
	require.Empty(t, p.PrefilledTitle())
}

func TestPaletteReopenBeforeResetClearsImmediately(t *testing.T) {
	clock := &fakeClock{}
	p := newTestPalette(t, clock)

	p.Open()
	p.SetQuery("news")
	p.Close()

	// Reopen before the scheduled reset: fresh state right away.
	p.Open()
	require.Equal(t, PageMain, p.Page())
	require.Empty(t, p.Query())

	p.SetQuery("new text")
	// A stale timer firing now must not wipe the open palette.
	clock.callback()
	require.Equal(t, "new text", p.Query())
}

func TestPaletteSubmitCreateReturnsToMain(t *testing.T) {
	p := newTestPalette(t, nil)
	ctx := context.Background()

	p.Open()
	p.StartCreate()

	created, err := p.SubmitCreate(ctx, task.CreateInput{Title: "From Palette", TriggerType: task.Manual})
	require.NoError(t, err)
	require.Equal(t, "From Palette", created.Title)
	require.Equal(t, PageMain, p.Page())
	require.False(t, p.IsCreating())

	// The cache picked it up at the head.
	require.Equal(t, created.ID, p.cache.Tasks()[0].ID)
}

func TestPaletteSubmitCreateFailureStaysOnCreate(t *testing.T) {
	p := newTestPalette(t, nil)
	ctx := context.Background()

	p.Open()
	p.StartCreate()

	_, err := p.SubmitCreate(ctx, task.CreateInput{Title: " ", TriggerType: task.Manual})
	require.Error(t, err)
	require.Equal(t, PageCreate, p.Page())
	require.False(t, p.IsCreating())
}

func TestPaletteSubmitCreateGatesReentry(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.StartCreate()
	p.isCreating = true

	_, err := p.SubmitCreate(context.Background(), task.CreateInput{Title: "X", TriggerType: task.Manual})
	require.ErrorIs(t, err, ErrInFlight)
}

func TestPaletteDeleteSelectedReturnsToMain(t *testing.T) {
	p := newTestPalette(t, nil)
	ctx := context.Background()

	p.Open()
	p.SelectTask("1")

	require.NoError(t, p.DeleteSelected(ctx))
	require.Equal(t, PageMain, p.Page())
	require.Empty(t, p.SelectedID())
	require.False(t, p.IsDeleting())

	for _, cached := range p.cache.Tasks() {
		require.NotEqual(t, "1", cached.ID)
	}
}

func TestPaletteDeleteFailureStaysOnView(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.SelectTask("missing")

	require.Error(t, p.DeleteSelected(context.Background()))
	require.Equal(t, PageView, p.Page())
	require.False(t, p.IsDeleting())
}

func TestPaletteRunSelectedStaysOnView(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.SelectTask("2")

	res, err := p.RunSelected(context.Background())
	require.NoError(t, err)
	require.True(t, res.Success)
	require.Equal(t, PageView, p.Page())
	require.False(t, p.IsRunning())

	for _, cached := range p.cache.Tasks() {
		if cached.ID == "2" {
			require.Equal(t, 1, cached.RunCount)
			require.NotNil(t, cached.LastRun)
		}
	}
}

func TestPaletteRunGatesReentry(t *testing.T) {
	p := newTestPalette(t, nil)

	p.Open()
	p.SelectTask("2")
	p.isRunning = true

	_, err := p.RunSelected(context.Background())
	require.ErrorIs(t, err, ErrInFlight)
}
