// Package workerpool runs background work on a fixed set of goroutines.
//
// The API server uses one pool for two jobs: writing the payments derived
// from order writes when linkage runs asynchronously, and fanning out the
// four stats queries behind the financial summary.
//
//	pool := workerpool.New(8, 0)
//	defer pool.Shutdown()
//
//	if err := pool.Submit(job); err != nil {
//	    job() // full or closed: run it on the caller's goroutine
//	}
package workerpool

import (
	"errors"
	"sync"

	"github.com/shashiranjanraj/boutique/pkg/logger"
)

// ErrPoolFull is returned by Submit when every worker is busy and the queue
// is at capacity.
var ErrPoolFull = errors.New("workerpool: pool is full")

// ErrPoolClosed is returned once Shutdown has started.
var ErrPoolClosed = errors.New("workerpool: pool is closed")

// Pool is a bounded goroutine pool.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan func()
	wg     sync.WaitGroup
	once   sync.Once
	stop   chan struct{}
}

// New starts size workers over a queue of the given depth. A queue <= 0
// means twice the worker count.
func New(size, queue int) *Pool {
	if size <= 0 {
		size = 1
	}
	if queue <= 0 {
		queue = size * 2
	}

	p := &Pool{
		tasks: make(chan func(), queue),
		stop:  make(chan struct{}),
	}
	for i := 0; i < size; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Submit enqueues task without blocking.
func (p *Pool) Submit(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	default:
		return ErrPoolFull
	}
}

// SubmitWait blocks until task is queued or Shutdown starts.
func (p *Pool) SubmitWait(task func()) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	select {
	case p.tasks <- task:
		return nil
	case <-p.stop:
		return ErrPoolClosed
	}
}

// Shutdown stops accepting tasks, runs what is already queued and waits for
// the workers to exit. It is safe to call more than once.
func (p *Pool) Shutdown() {
	p.once.Do(func() {
		close(p.stop)
		p.mu.Lock()
		p.closed = true
		close(p.tasks)
		p.mu.Unlock()
		p.wg.Wait()
	})
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		run(task)
	}
}

// run keeps a panicking task from taking its worker down.
func run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("workerpool: task panicked", "panic", r)
		}
	}()
	task()
}
