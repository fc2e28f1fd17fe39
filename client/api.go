// Package client is the palette-side of the task API: a typed HTTP client,
// a synchronized cache of the task collection, and the command palette's
// navigation state machine.
package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"

	"taskpalette/services/task"
)

// TasksAPI is a thin typed wrapper over the task resource.
type TasksAPI struct {
	http *resty.Client
}

func NewTasksAPI(baseURL string) *TasksAPI {
	return &TasksAPI{
		http: resty.New().SetBaseURL(baseURL),
	}
}

type apiError struct {
	Message string `json:"error"`
}

// GetTasks fetches the full list, or the server-filtered list when query is
// non-empty.
func (a *TasksAPI) GetTasks(ctx context.Context, query string) ([]task.Task, error) {
	var out []task.Task
	req := a.http.R().SetContext(ctx).SetResult(&out).SetError(&apiError{})
	if query != "" {
		req.SetQueryParam("q", query)
	}
	resp, err := req.Get("/tasks")
	if err := check(resp, err, "fetch"); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *TasksAPI) GetTask(ctx context.Context, id string) (task.Task, error) {
	var out task.Task
	resp, err := a.http.R().SetContext(ctx).SetResult(&out).SetError(&apiError{}).
		Get("/tasks/" + id)
	if err := check(resp, err, "fetch"); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

func (a *TasksAPI) CreateTask(ctx context.Context, input task.CreateInput) (task.Task, error) {
	var out task.Task
	resp, err := a.http.R().SetContext(ctx).SetBody(input).SetResult(&out).SetError(&apiError{}).
		Post("/tasks")
	if err := check(resp, err, "create"); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

func (a *TasksAPI) UpdateTask(ctx context.Context, id string, patch task.Patch) (task.Task, error) {
	var out task.Task
	resp, err := a.http.R().SetContext(ctx).SetBody(patch).SetResult(&out).SetError(&apiError{}).
		Patch("/tasks/" + id)
	if err := check(resp, err, "update"); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

func (a *TasksAPI) DeleteTask(ctx context.Context, id string) error {
	resp, err := a.http.R().SetContext(ctx).SetError(&apiError{}).
		Delete("/tasks/" + id)
	return check(resp, err, "delete")
}

func (a *TasksAPI) RunTask(ctx context.Context, id string) (task.RunResult, error) {
	var out task.RunResult
	resp, err := a.http.R().SetContext(ctx).SetResult(&out).SetError(&apiError{}).
		Post("/tasks/" + id + "/run")
	if err := check(resp, err, "run"); err != nil {
		return task.RunResult{}, err
	}
	return out, nil
}

// check normalises transport and HTTP-level failures into one error per
// operation: the server's message when it sent one, a generic
// "failed to <verb> task" otherwise.
func check(resp *resty.Response, err error, verb string) error {
	if err != nil {
		return fmt.Errorf("failed to %s task: %w", verb, err)
	}
	if resp.IsError() {
		if e, ok := resp.Error().(*apiError); ok && e.Message != "" {
			return fmt.Errorf("failed to %s task: %s", verb, e.Message)
		}
		return fmt.Errorf("failed to %s task", verb)
	}
	return nil
}
