// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package jobs

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"k8s.io/klog/v2"
)

// Job dispatches a batch of tasks to a set of parallel workers and
// waits for all of them to finish
type Job[T any] struct {
	// ID names the job in log messages
	ID string
	// MaxWorkers is the maximum number of workers processing a batch of tasks in parallel
	MaxWorkers int
	// MinWorkers is the minimum number of workers processing a batch of tasks in parallel
	MinWorkers int
	// Worker processes the tasks
	Worker Worker[T]
	// FailFast controls the behavior of this Job upon errors. If set to true, it will quit
	// further processing upon the first error that occurs. For fault tolerant applications
	// use false.
	FailFast bool
}

// Worker processes a single task
type Worker[T any] interface {
	// Work processes the task within the given context.
	Work(ctx context.Context, task T) error
}

// The WorkerFunc type is an adapter to allow the use of
// ordinary functions as Workers.
type WorkerFunc[T any] func(ctx context.Context, task T) error

// Work calls f(ctx, task).
func (f WorkerFunc[T]) Work(ctx context.Context, task T) error {
	return f(ctx, task)
}

// feeds tasks to the returned channel until all are sent or ctx is done
func (j *Job[T]) allocate(ctx context.Context, tasks []T) (<-chan T, <-chan error) {
	taskCh := make(chan T)
	errCh := make(chan error, 1)
	go func() {
		defer close(taskCh)
		defer close(errCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
	}()
	return taskCh, errCh
}

// processes tasks until the task channel is closed or ctx is done. A fail
// fast worker quits on its first error.
func (j *Job[T]) process(ctx context.Context, taskCh <-chan T) <-chan error {
	errCh := make(chan error)
	go func() {
		defer close(errCh)
		for {
			select {
			case task, ok := <-taskCh:
				if !ok {
					return
				}
				if err := j.Worker.Work(ctx, task); err != nil {
					select {
					case errCh <- err:
					case <-ctx.Done():
						return
					}
					if j.FailFast {
						return
					}
				}
			case <-ctx.Done():
				return
			}
		}
	}()
	return errCh
}

// Dispatch spawns workers processing the supplied tasks in parallel. With
// FailFast the first error cancels the remaining work and is returned,
// otherwise all errors are collected and returned together.
func (j *Job[T]) Dispatch(ctx context.Context, tasks []T) error {
	if j.MaxWorkers < j.MinWorkers {
		return fmt.Errorf("job %s: maxWorkers < minWorkers: %d < %d", j.ID, j.MaxWorkers, j.MinWorkers)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(tasks) == 0 {
		return nil
	}
	workersCount := len(tasks)
	if workersCount > j.MaxWorkers {
		workersCount = j.MaxWorkers
	}
	if workersCount < j.MinWorkers {
		workersCount = j.MinWorkers
	}
	if workersCount < 1 {
		return fmt.Errorf("job %s: no workers to process %d tasks", j.ID, len(tasks))
	}
	klog.V(6).Infof("job %s: dispatching %d tasks to %d workers", j.ID, len(tasks), workersCount)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	taskCh, errc := j.allocate(ctx, tasks)
	errcList := []<-chan error{errc}
	for i := 0; i < workersCount; i++ {
		errcList = append(errcList, j.process(ctx, taskCh))
	}
	return waitForPipeline(j.FailFast, cancel, errcList...)
}

// merges asynchronously produced errors from multiple error channels into a single channel
func mergeErrors(channels ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	errCh := make(chan error, len(channels))
	output := func(ch <-chan error) {
		defer wg.Done()
		for err := range ch {
			errCh <- err
		}
	}
	wg.Add(len(channels))
	for _, ch := range channels {
		go output(ch)
	}
	go func() {
		wg.Wait()
		close(errCh)
	}()
	return errCh
}

// waitForPipeline drains all error channels. With failFast the first
// error cancels the pipeline and is returned once the workers are gone.
func waitForPipeline(failFast bool, cancel context.CancelFunc, errChs ...<-chan error) error {
	var (
		errs  *multierror.Error
		first error
	)
	for err := range mergeErrors(errChs...) {
		if err == nil {
			continue
		}
		if failFast {
			if first == nil {
				first = err
				cancel()
			}
			continue
		}
		errs = multierror.Append(errs, err)
	}
	if failFast {
		return first
	}
	return errs.ErrorOrNil()
}
