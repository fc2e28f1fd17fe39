package task

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"taskpalette/pkg/errutil"
	"taskpalette/pkg/latency"
)

// Service owns every mutation of the task store. The store is never touched
// except through these operations, and each one is atomic: readers racing a
// mutation see either the old or the new sequence, never a partial one.
type Service struct {
	db    *gorm.DB
	node  *snowflake.Node
	delay latency.Policy
}

type Params struct {
	fx.In
	DB    *gorm.DB
	Node  *snowflake.Node
	Delay latency.Policy
}

func NewService(p Params) *Service {
	return &Service{
		db:    p.DB,
		node:  p.Node,
		delay: p.Delay,
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}

// List returns every task newest-first. A non-empty query narrows the result
// to tasks whose title or description contains it, case-insensitively.
func (s *Service) List(ctx context.Context, query string) ([]*Task, error) {
	if err := s.delay.Wait(ctx, latency.OpList); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	tasks := make([]*Task, 0)
	if err := q.Find(&tasks).Error; err != nil {
		zap.L().Error("failed to list tasks", zap.Error(err), zap.String("query", query))
		return nil, errutil.Internal("failed to list tasks", errutil.WithErr(err))
	}

	return tasks, nil
}

// Get returns the task with the given id.
func (s *Service) Get(ctx context.Context, id string) (*Task, error) {
	if err := s.delay.Wait(ctx, latency.OpGet); err != nil {
		return nil, err
	}

	var t Task
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errutil.NotFound("Task not found")
		}
		zap.L().Error("failed to get task", zap.Error(err), zap.String("task_id", id))
		return nil, errutil.Internal("failed to get task", errutil.WithErr(err))
	}

	return &t, nil
}

// Create validates the input, assigns identity and timestamps, and inserts
// the task. The store lists newest-first, so a fresh task is the head.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errutil.ValidationFailed("title must not be empty")
	}
	if input.TriggerType.String() == "" {
		return nil, errutil.ValidationFailed("triggerType must be manual or automatic")
	}
	if err := validateInputs(input.Inputs); err != nil {
		return nil, err
	}

	if err := s.delay.Wait(ctx, latency.OpCreate); err != nil {
		return nil, err
	}

	now := nowMillis()
	t := &Task{
		ID:          s.node.Generate().String(),
		Title:       title,
		Description: input.Description,
		TriggerType: input.TriggerType,
		Inputs:      emptyIfNil(input.Inputs),
		Files:       emptyIfNil(input.Files),
		Apps:        emptyIfNil(input.Apps),
		CreatedAt:   now,
		UpdatedAt:   now,
		RunCount:    0,
	}

	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		zap.L().Error("failed to create task", zap.Error(err), zap.String("title", title))
		return nil, errutil.Internal("failed to create task", errutil.WithErr(err))
	}

	zap.L().Info("task created", zap.String("task_id", t.ID), zap.String("title", t.Title))
	return t, nil
}

// Update merges the patch onto the stored task and stamps updatedAt. The
// returned task is the authoritative merged record.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Task, error) {
	if err := patch.validate(); err != nil {
		return nil, err
	}

	if err := s.delay.Wait(ctx, latency.OpUpdate); err != nil {
		return nil, err
	}

	var t Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}

		patch.apply(&t)
		t.UpdatedAt = nextStamp(t.UpdatedAt)

		return tx.Save(&t).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errutil.NotFound("Task not found")
		}
		zap.L().Error("failed to update task", zap.Error(err), zap.String("task_id", id))
		return nil, errutil.Internal("failed to update task", errutil.WithErr(err))
	}

	return &t, nil
}

// Delete removes the task. A repeat delete of the same id reports NotFound
// again: deletion is deliberately not idempotent at the data layer.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.delay.Wait(ctx, latency.OpDelete); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Delete(&Task{}, "id = ?", id)
	if res.Error != nil {
		zap.L().Error("failed to delete task", zap.Error(res.Error), zap.String("task_id", id))
		return errutil.Internal("failed to delete task", errutil.WithErr(res.Error))
	}
	if res.RowsAffected == 0 {
		return errutil.NotFound("Task not found")
	}

	zap.L().Info("task deleted", zap.String("task_id", id))
	return nil
}

// Run records a simulated execution: lastRun and updatedAt move to now and
// runCount increments by one. No external work happens.
func (s *Service) Run(ctx context.Context, id string) (*RunResult, error) {
	if err := s.delay.Wait(ctx, latency.OpRun); err != nil {
		return nil, err
	}

	var t Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&t, "id = ?", id).Error; err != nil {
			return err
		}

		now := nextStamp(t.UpdatedAt)
		t.LastRun = &now
		t.RunCount++
		t.UpdatedAt = now

		return tx.Save(&t).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errutil.NotFound("Task not found")
		}
		zap.L().Error("failed to run task", zap.Error(err), zap.String("task_id", id))
		return nil, errutil.Internal("failed to run task", errutil.WithErr(err))
	}

	zap.L().Info("task run recorded", zap.String("task_id", t.ID), zap.Int("run_count", t.RunCount))
	return &RunResult{
		Success: true,
		Task:    &t,
		Message: "Task executed successfully",
	}, nil
}

// nextStamp keeps updatedAt strictly increasing even when two mutations land
// inside the same millisecond.
func nextStamp(prev int64) int64 {
	now := nowMillis()
	if now <= prev {
		return prev + 1
	}
	return now
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
