package analysis

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/FocuswithJustin/ParatextStat/internal/logging"
)

// ProjectTask names one project to analyze.
type ProjectTask struct {
	Name string
	Dir  string
}

// Pool fans project analysis out across a fixed number of workers.
type Pool struct {
	analyzer *Analyzer
	workers  int
}

// NewPool returns a pool of the given size. Sizes below one fall back to
// GOMAXPROCS.
func NewPool(analyzer *Analyzer, workers int) *Pool {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{analyzer: analyzer, workers: workers}
}

// Run analyzes every task and streams results on the returned channel.
// The channel is closed once all tasks are done or the context is
// canceled. A panicking worker converts the panic into an Error result
// for its task and keeps serving.
func (p *Pool) Run(ctx context.Context, tasks []ProjectTask) <-chan *ProjectResult {
	taskCh := make(chan ProjectTask)
	results := make(chan *ProjectResult, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				results <- p.runOne(ctx, task)
			}
		}()
	}

	logging.PoolEvent("started", p.workers, len(tasks))

	go func() {
		defer close(taskCh)
		for _, task := range tasks {
			select {
			case taskCh <- task:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
		logging.PoolEvent("finished", p.workers, 0)
	}()

	return results
}

func (p *Pool) runOne(ctx context.Context, task ProjectTask) (result *ProjectResult) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("worker panic", "project", task.Name, "panic", fmt.Sprint(r))
			result = &ProjectResult{
				Name:   task.Name,
				Path:   task.Dir,
				Status: StatusError,
				Messages: []string{
					fmt.Sprintf("internal error: %v", r),
				},
				Acc: NewAccumulators(),
			}
		}
	}()
	return p.analyzer.AnalyzeProject(ctx, task.Name, task.Dir)
}
