package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// NonCritical runs best-effort calls off the caller's path. A call that fails,
// panics or cannot be queued is logged and dropped; the caller never learns of it.
type NonCritical interface {
	Start(ctx context.Context)
	Stop()
	Shutdown(timeout time.Duration) bool
	Fire(name string, call func(ctx context.Context) error)
}

type nonCriticalJob struct {
	id   string
	name string
	call func(ctx context.Context) error
}

type nonCriticalPool struct {
	jobQueue    chan nonCriticalJob
	concurrency int
	wg          sync.WaitGroup
	stopChan    chan struct{}
	stopOnce    sync.Once
	cancel      context.CancelFunc
}

func NewNonCriticalPool(concurrency, queueSize int) NonCritical {
	if concurrency <= 0 {
		concurrency = 1
	}
	if queueSize <= 0 {
		queueSize = concurrency
	}

	return &nonCriticalPool{
		jobQueue:    make(chan nonCriticalJob, queueSize),
		concurrency: concurrency,
		stopChan:    make(chan struct{}),
	}
}

// Start implements NonCritical.
func (p *nonCriticalPool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.process(ctx, i+1)
	}
}

// Stop implements NonCritical. Calls already queued still run before Stop returns.
func (p *nonCriticalPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})
	p.wg.Wait()
	p.release()
}

// Shutdown implements NonCritical. It stops accepting calls and waits up to
// timeout for queued ones; past that it cancels the calls still running and
// returns false without waiting for them.
func (p *nonCriticalPool) Shutdown(timeout time.Duration) bool {
	p.stopOnce.Do(func() {
		close(p.stopChan)
	})

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.release()
		return true
	case <-time.After(timeout):
		p.release()
		log.Printf("⚠️  Telemetry drain exceeded %s, abandoning in-flight calls", timeout)
		return false
	}
}

func (p *nonCriticalPool) release() {
	if p.cancel != nil {
		p.cancel()
	}
}

// Fire implements NonCritical. It never blocks.
func (p *nonCriticalPool) Fire(name string, call func(ctx context.Context) error) {
	job := nonCriticalJob{id: uuid.NewString(), name: name, call: call}

	select {
	case <-p.stopChan:
		log.Printf("⚠️  Telemetry stopped, dropping %s (%s)", name, job.id)
		return
	default:
	}

	select {
	case p.jobQueue <- job:
	default:
		log.Printf("⚠️  Telemetry queue full, dropping %s (%s)", name, job.id)
	}
}

func (p *nonCriticalPool) process(ctx context.Context, workerID int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			p.run(ctx, workerID, job)
		case <-p.stopChan:
			for {
				select {
				case job := <-p.jobQueue:
					p.run(ctx, workerID, job)
				default:
					return
				}
			}
		}
	}
}

func (p *nonCriticalPool) run(ctx context.Context, workerID int, job nonCriticalJob) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("⚠️  Telemetry #%d: %s panicked: %v", workerID, job.name, r)
		}
	}()

	if err := job.call(ctx); err != nil {
		log.Printf("⚠️  Telemetry #%d: %s failed: %v", workerID, job.name, err)
	}
}
