package worker

import "sync"

// Job is a fire-and-forget unit of background work, such as sending a
// welcome email after registration.
type Job func()

// Pool runs jobs on a fixed set of goroutines.
type Pool interface {
	Submit(Job)
	Stop()
}

type pool struct {
	queue chan Job
	wg    sync.WaitGroup
}

// NewPool starts n workers; n <= 0 falls back to a single worker.
func NewPool(n int) Pool {
	if n <= 0 {
		n = 1
	}
	p := &pool{queue: make(chan Job, n)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.work()
	}
	return p
}

func (p *pool) work() {
	defer p.wg.Done()
	for job := range p.queue {
		if job != nil {
			job()
		}
	}
}

// Submit blocks once every worker is busy and the queue is full.
func (p *pool) Submit(j Job) {
	p.queue <- j
}

// Stop lets queued jobs finish, then waits for the workers to exit.
func (p *pool) Stop() {
	close(p.queue)
	p.wg.Wait()
}
