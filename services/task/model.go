package task

import (
	"gorm.io/datatypes"
)

// TriggerType says whether a task runs on explicit user action or on an
// external schedule. Scheduling itself is out of scope; the value is
// descriptive metadata.
type TriggerType string

var (
	Manual    TriggerType = "manual"
	Automatic TriggerType = "automatic"
)

func (t TriggerType) String() string {
	switch t {
	case Manual, Automatic:
		return string(t)
	default:
		return ""
	}
}

// Input is a named parameter a task is invoked with.
type Input struct {
	Name         string `json:"name"`
	DefaultValue string `json:"defaultValue"`
}

// File is attachment metadata. No binary content is stored.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// Task is the central entity: an automation definition with metadata,
// trigger type and run history. Timestamps are epoch milliseconds to match
// the wire shape clients persist.
type Task struct {
	ID          string                      `gorm:"column:id;primaryKey" json:"id"`
	Title       string                      `gorm:"column:title" json:"title"`
	Description string                      `gorm:"column:description" json:"description"`
	TriggerType TriggerType                 `gorm:"column:trigger_type" json:"triggerType"`
	Inputs      datatypes.JSONSlice[Input]  `gorm:"column:inputs" json:"inputs"`
	Files       datatypes.JSONSlice[File]   `gorm:"column:files" json:"files"`
	Apps        datatypes.JSONSlice[string] `gorm:"column:apps" json:"apps"`
	CreatedAt   int64                       `gorm:"column:created_at;autoCreateTime:false" json:"createdAt"`
	UpdatedAt   int64                       `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
	LastRun     *int64                      `gorm:"column:last_run" json:"lastRun,omitempty"`
	RunCount    int                         `gorm:"column:run_count" json:"runCount"`
}

func (Task) TableName() string {
	return "tasks"
}

// CreateInput carries the client-supplied fields of a new task. The service
// assigns identity, timestamps and run history.
type CreateInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	TriggerType TriggerType `json:"triggerType"`
	Inputs      []Input     `json:"inputs"`
	Files       []File      `json:"files"`
	Apps        []string    `json:"apps"`
}

// RunResult is what Run returns alongside the updated task.
type RunResult struct {
	Success bool   `json:"success"`
	Task    *Task  `json:"task"`
	Message string `json:"message"`
}
