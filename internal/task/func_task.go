package task

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// FuncTask adapts a plain function to the Task interface. It is the common
// case for persistence tasks, which close over the snapshot they write.
type FuncTask struct {
	id       uuid.UUID
	taskType string
	fn       func(ctx context.Context) error
}

// NewFuncTask creates a task with a fresh ID that runs fn when executed.
func NewFuncTask(taskType string, fn func(ctx context.Context) error) *FuncTask {
	return &FuncTask{
		id:       uuid.New(),
		taskType: taskType,
		fn:       fn,
	}
}

// Ensure FuncTask implements Task interface
var _ Task = (*FuncTask)(nil)

// ID implements Task.ID
func (t *FuncTask) ID() uuid.UUID { return t.id }

// Type implements Task.Type
func (t *FuncTask) Type() string { return t.taskType }

// Execute implements Task.Execute
func (t *FuncTask) Execute(ctx context.Context) error {
	if t.fn == nil {
		return errors.New("task has no function to execute")
	}
	return t.fn(ctx)
}
