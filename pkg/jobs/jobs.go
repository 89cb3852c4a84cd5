// Package jobs registers the background jobs run by the scheduler.
package jobs

import (
	"context"
	"sort"
	"sync"
)

// Job is a job that can be registered with the scheduler.
type Job struct {
	ID     int
	Name   string
	Runner Runner
}

// Runner is a job runner. An empty Spec disables the job.
type Runner interface {
	Spec(context.Context) string
	Func(context.Context) func()
}

var (
	mtx  sync.Mutex
	jobs = make(map[string]*Job)
)

// Register registers a job.
func Register(name string, runner Runner) {
	mtx.Lock()
	defer mtx.Unlock()
	jobs[name] = &Job{Name: name, Runner: runner}
}

// List returns the registered jobs ordered by name.
func List() []*Job {
	mtx.Lock()
	defer mtx.Unlock()
	list := make([]*Job, 0, len(jobs))
	for _, j := range jobs {
		list = append(list, j)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return list
}
