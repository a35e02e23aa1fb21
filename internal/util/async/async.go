package async

import (
	"context"
	"fmt"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes multiple tasks in parallel and returns the first error encountered.
// All tasks are started concurrently, and the function waits for all to complete,
// so callers get a join barrier for free.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "workers", Func: resolveWorkers},
//	    {Name: "storage", Func: resolveStorage},
//	}
//	if err := RunParallel(ctx, tasks); err != nil {
//	    return err
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	type result struct {
		name string
		err  error
	}

	resultChan := make(chan result, len(tasks))

	// Start all tasks
	for _, task := range tasks {
		task := task
		go func() {
			err := task.Func(ctx)
			resultChan <- result{name: task.Name, err: err}
		}()
	}

	// Wait for all tasks to complete and collect first error
	var firstError error
	for i := 0; i < len(tasks); i++ {
		res := <-resultChan
		if res.err != nil && firstError == nil {
			firstError = fmt.Errorf("failed to resolve %s: %w", res.name, res.err)
		}
	}

	return firstError
}
