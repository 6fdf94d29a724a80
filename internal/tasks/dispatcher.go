package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/mikestefanello/backlite"
)

// Handle identifies one enqueued file-import task.
type Handle struct {
	TaskID string `json:"task_id"`
	Path   string `json:"path"`
}

// Dispatcher turns file paths into queued import tasks. Submission is
// non-blocking: it returns as soon as the task is durably enqueued,
// long before the file is actually ingested. Tasks are independent of
// each other; one file's fatal error never cancels another's task.
type Dispatcher struct {
	client *Client
}

// NewDispatcher creates a dispatcher enqueueing onto the given client.
func NewDispatcher(client *Client) *Dispatcher {
	return &Dispatcher{client: client}
}

// Submit enqueues an import task for one file.
func (d *Dispatcher) Submit(path string) (Handle, error) {
	ids, err := d.client.Add(ImportFileTask{Path: path}).Save()
	if err != nil {
		return Handle{}, fmt.Errorf("failed to enqueue import for %s: %w", path, err)
	}
	return Handle{TaskID: ids[0], Path: path}, nil
}

// SubmitMany enqueues one import task per path, returning a handle for
// each successfully queued file. A path that fails to enqueue does not
// prevent the remaining paths from being submitted; the joined error
// reports every enqueue failure.
func (d *Dispatcher) SubmitMany(paths []string) ([]Handle, error) {
	handles := make([]Handle, 0, len(paths))
	var errs []error
	for _, path := range paths {
		handle, err := d.Submit(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		handles = append(handles, handle)
	}
	return handles, errors.Join(errs...)
}

// Status reports the queue-level state of a submitted task.
func (d *Dispatcher) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return d.client.Status(ctx, taskID)
}
