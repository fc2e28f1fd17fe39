package client

import (
	"context"
	"sync"

	"taskpalette/services/task"
)

// Cache is the client-held copy of the task collection. The server owns the
// canonical list; the cache reconciles after every round trip with one rule:
// replace on success, untouched on failure. Errors are recorded for display
// AND returned, so callers can react per action.
//
// Two calls racing on the same id are not ordered; the last response to
// arrive wins in the cache.
type Cache struct {
	mu    sync.RWMutex
	api   *TasksAPI
	store *LocalStore

	tasks   []task.Task
	loading bool
	lastErr error
}

type CacheOption func(*Cache)

// WithLocalStore mirrors every successful reconciliation to a durable local
// store, and primes the cache from it before the first fetch.
func WithLocalStore(store *LocalStore) CacheOption {
	return func(c *Cache) { c.store = store }
}

func NewCache(api *TasksAPI, opts ...CacheOption) *Cache {
	c := &Cache{api: api, tasks: []task.Task{}}
	for _, opt := range opts {
		opt(c)
	}
	if c.store != nil {
		if tasks, err := c.store.Load(); err == nil {
			c.tasks = tasks
		}
	}
	return c
}

// Tasks returns a copy of the cached list.
func (c *Cache) Tasks() []task.Task {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]task.Task, len(c.tasks))
	copy(out, c.tasks)
	return out
}

func (c *Cache) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the last recorded failure, nil after a successful operation.
func (c *Cache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Refresh fetches the full list and replaces the cache. On failure the
// previous cache stays untouched.
func (c *Cache) Refresh(ctx context.Context) error {
	return c.fetch(ctx, "")
}

// Search fetches the filtered list; the cache itself becomes the filtered
// set, it is not a separate view.
func (c *Cache) Search(ctx context.Context, query string) error {
	return c.fetch(ctx, query)
}

func (c *Cache) fetch(ctx context.Context, query string) error {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	tasks, err := c.api.GetTasks(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		c.lastErr = err
		return err
	}
	if tasks == nil {
		tasks = []task.Task{}
	}
	c.tasks = tasks
	c.lastErr = nil
	c.mirrorLocked()
	return nil
}

// Create calls through and prepends the server's task on success.
func (c *Cache) Create(ctx context.Context, input task.CreateInput) (task.Task, error) {
	created, err := c.api.CreateTask(ctx, input)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return task.Task{}, err
	}
	c.tasks = append([]task.Task{created}, c.tasks...)
	c.lastErr = nil
	c.mirrorLocked()
	return created, nil
}

// Update calls through and replaces the cache entry with the server's
// authoritative task. No local merge: server-computed fields must not drift.
func (c *Cache) Update(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	updated, err := c.api.UpdateTask(ctx, id, patch)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return task.Task{}, err
	}
	c.replaceLocked(updated)
	c.lastErr = nil
	c.mirrorLocked()
	return updated, nil
}

// Delete calls through and removes the entry on success.
func (c *Cache) Delete(ctx context.Context, id string) error {
	err := c.api.DeleteTask(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	kept := c.tasks[:0]
	for _, t := range c.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	c.tasks = kept
	c.lastErr = nil
	c.mirrorLocked()
	return nil
}

// Run calls through and replaces the cache entry with the returned task.
func (c *Cache) Run(ctx context.Context, id string) (task.RunResult, error) {
	res, err := c.api.RunTask(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return task.RunResult{}, err
	}
	if res.Task != nil {
		c.replaceLocked(*res.Task)
	}
	c.lastErr = nil
	c.mirrorLocked()
	return res, nil
}

func (c *Cache) replaceLocked(t task.Task) {
	for i := range c.tasks {
		if c.tasks[i].ID == t.ID {
			c.tasks[i] = t
			return
		}
	}
}

func (c *Cache) mirrorLocked() {
	if c.store == nil {
		return
	}
	_ = c.store.Save(c.tasks)
}
