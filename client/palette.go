package client

import (
	"context"
	"errors"
	"sync"
	"time"

	"taskpalette/services/task"
)

// Page is the palette's current view.
type Page string

const (
	PageClosed Page = "closed"
	PageMain   Page = "main"
	PageCreate Page = "create"
	PageView   Page = "view"
)

// ErrInFlight is returned when a mutation is requested while the same kind
// of mutation is still outstanding. The flags exist to stop duplicate
// submission, not to order operations.
var ErrInFlight = errors.New("operation already in flight")

// Palette is the navigation state machine over the task cache. It owns the
// transient UI state (query text, prefilled title, selection) and the
// in-flight mutation gates; all data work is delegated to the Cache.
type Palette struct {
	mu    sync.Mutex
	cache *Cache

	page           Page
	query          string
	prefilledTitle string
	selectedID     string

	isCreating bool
	isDeleting bool
	isRunning  bool

	resetDelay time.Duration
	afterFunc  func(time.Duration, func()) *time.Timer
	resetTimer *time.Timer
}

type PaletteOption func(*Palette)

// WithResetDelay overrides how long transient state survives after close.
// The delay exists so an exit animation has something to render.
func WithResetDelay(d time.Duration) PaletteOption {
	return func(p *Palette) { p.resetDelay = d }
}

// WithAfterFunc injects the timer constructor. Tests use this to fire the
// close reset deterministically.
func WithAfterFunc(f func(time.Duration, func()) *time.Timer) PaletteOption {
	return func(p *Palette) { p.afterFunc = f }
}

func NewPalette(cache *Cache, opts ...PaletteOption) *Palette {
	p := &Palette{
		cache:      cache,
		page:       PageClosed,
		resetDelay: 200 * time.Millisecond,
		afterFunc:  time.AfterFunc,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Palette) Page() Page {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

func (p *Palette) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

func (p *Palette) PrefilledTitle() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.prefilledTitle
}

func (p *Palette) SelectedID() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selectedID
}

// Open shows the palette on the main page. Any reset still pending from a
// previous close is applied immediately so no stale timer wipes fresh state.
func (p *Palette) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page != PageClosed {
		return
	}
	p.stopResetLocked()
	p.resetTransientLocked()
	p.page = PageMain
}

// Close hides the palette and schedules the transient-state reset.
func (p *Palette) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closeLocked()
}

// Toggle is the global shortcut: open when closed, close when open.
func (p *Palette) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page == PageClosed {
		p.stopResetLocked()
		p.resetTransientLocked()
		p.page = PageMain
		return
	}
	p.closeLocked()
}

// Cancel is the escape key: sub-pages fall back to main, main closes.
func (p *Palette) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.page {
	case PageCreate, PageView:
		p.backLocked()
	case PageMain:
		p.closeLocked()
	}
}

// SetQuery records the live search text on the main page.
func (p *Palette) SetQuery(q string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page == PageMain {
		p.query = q
	}
}

// SelectTask navigates main → view for an existing task.
func (p *Palette) SelectTask(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page != PageMain {
		return
	}
	p.selectedID = id
	p.page = PageView
}

// StartCreate navigates main → create with a blank form.
func (p *Palette) StartCreate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page != PageMain {
		return
	}
	p.query = ""
	p.prefilledTitle = ""
	p.page = PageCreate
}

// CreateWithTitle navigates main → create with the query the user typed as
// the prefilled title (the "no results, create it" shortcut).
func (p *Palette) CreateWithTitle(title string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page != PageMain {
		return
	}
	p.prefilledTitle = title
	p.query = ""
	p.page = PageCreate
}

// Back returns from a sub-page to main, dropping sub-page state.
func (p *Palette) Back() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.page == PageCreate || p.page == PageView {
		p.backLocked()
	}
}

// IsCreating reports whether a create round trip is outstanding.
func (p *Palette) IsCreating() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isCreating
}

func (p *Palette) IsDeleting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isDeleting
}

func (p *Palette) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isRunning
}

// SubmitCreate sends the new task through the cache. Success navigates back
// to main; failure stays on the create page with the error for the caller.
func (p *Palette) SubmitCreate(ctx context.Context, input task.CreateInput) (task.Task, error) {
	p.mu.Lock()
	if p.isCreating {
		p.mu.Unlock()
		return task.Task{}, ErrInFlight
	}
	p.isCreating = true
	p.mu.Unlock()

	created, err := p.cache.Create(ctx, input)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.isCreating = false
	if err != nil {
		return task.Task{}, err
	}
	if p.page == PageCreate {
		p.backLocked()
	}
	return created, nil
}

// DeleteSelected deletes the task shown on the view page and navigates back
// to main on success.
func (p *Palette) DeleteSelected(ctx context.Context) error {
	p.mu.Lock()
	if p.isDeleting {
		p.mu.Unlock()
		return ErrInFlight
	}
	id := p.selectedID
	p.isDeleting = true
	p.mu.Unlock()

	err := p.cache.Delete(ctx, id)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.isDeleting = false
	if err != nil {
		return err
	}
	if p.page == PageView {
		p.backLocked()
	}
	return nil
}

// RunSelected runs the task shown on the view page. The page does not
// change; the cache entry is replaced with the server's updated task.
func (p *Palette) RunSelected(ctx context.Context) (task.RunResult, error) {
	p.mu.Lock()
	if p.isRunning {
		p.mu.Unlock()
		return task.RunResult{}, ErrInFlight
	}
	id := p.selectedID
	p.isRunning = true
	p.mu.Unlock()

	res, err := p.cache.Run(ctx, id)

	p.mu.Lock()
	p.isRunning = false
	p.mu.Unlock()
	return res, err
}

func (p *Palette) backLocked() {
	p.page = PageMain
	p.prefilledTitle = ""
	p.selectedID = ""
}

func (p *Palette) closeLocked() {
	if p.page == PageClosed {
		return
	}
	p.page = PageClosed
	p.stopResetLocked()
	p.resetTimer = p.afterFunc(p.resetDelay, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		if p.page == PageClosed {
			p.resetTransientLocked()
		}
	})
}

func (p *Palette) stopResetLocked() {
	if p.resetTimer != nil {
		p.resetTimer.Stop()
		p.resetTimer = nil
	}
}

func (p *Palette) resetTransientLocked() {
	p.query = ""
	p.prefilledTitle = ""
	p.selectedID = ""
}
