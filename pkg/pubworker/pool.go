// Package pubworker runs post publications on a fixed pool of workers.
// Jobs are sharded by post ID so two firings of the same post never run
// concurrently, while unrelated posts publish in parallel.
package pubworker

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one publication to execute. Handler does the full publish and
// persistence work; the pool only provides ordering and concurrency.
type Job struct {
	PostID  uint
	Handler func(ctx context.Context) error
}

type Pool struct {
	workers   int
	queues    []chan Job
	wg        sync.WaitGroup
	startOnce sync.Once
	stopOnce  sync.Once
	stopped   atomic.Bool

	submitted atomic.Uint64
	succeeded atomic.Uint64
	failed    atomic.Uint64
	dropped   atomic.Uint64
}

type Stats struct {
	Submitted uint64
	Succeeded uint64
	Failed    uint64
	Dropped   uint64
}

func NewPool(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 1 {
		queueSize = 16
	}
	queues := make([]chan Job, workers)
	for i := range queues {
		queues[i] = make(chan Job, queueSize)
	}
	return &Pool{workers: workers, queues: queues}
}

// Start launches the workers. The context cancels in-flight handlers;
// queued jobs still drain after cancellation so nothing is silently lost.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for i := 0; i < p.workers; i++ {
			p.wg.Add(1)
			go p.run(ctx, i)
		}
		logrus.Infof("[PUBWORKER] started %d workers", p.workers)
	})
}

// Submit enqueues a job on the shard owned by its post ID. A full or
// stopped shard drops the job; the dispatcher picks the post up again on
// its next poll. The recover covers a submit racing Stop between the flag
// check and the send.
func (p *Pool) Submit(job Job) bool {
	if p.stopped.Load() {
		p.dropped.Add(1)
		return false
	}

	queue := p.queues[int(job.PostID)%p.workers]
	sent := func() (ok bool) {
		defer func() {
			if r := recover(); r != nil {
				ok = false
			}
		}()
		select {
		case queue <- job:
			return true
		default:
			return false
		}
	}()

	if sent {
		p.submitted.Add(1)
		return true
	}
	p.dropped.Add(1)
	logrus.Warnf("[PUBWORKER] queue full (or stopped), dropping publication of post %d", job.PostID)
	return false
}

// Stop closes the queues and waits for the workers to drain them.
func (p *Pool) Stop() {
	p.stopOnce.Do(func() {
		p.stopped.Store(true)
		for _, queue := range p.queues {
			close(queue)
		}
	})
	p.wg.Wait()
	logrus.Info("[PUBWORKER] stopped")
}

func (p *Pool) Stats() Stats {
	return Stats{
		Submitted: p.submitted.Load(),
		Succeeded: p.succeeded.Load(),
		Failed:    p.failed.Load(),
		Dropped:   p.dropped.Load(),
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	for job := range p.queues[id] {
		started := time.Now()
		if err := job.Handler(ctx); err != nil {
			p.failed.Add(1)
			logrus.Errorf("[PUBWORKER] post %d failed after %s: %v", job.PostID, time.Since(started).Round(time.Millisecond), err)
			continue
		}
		p.succeeded.Add(1)
		logrus.Debugf("[PUBWORKER] post %d done in %s", job.PostID, time.Since(started).Round(time.Millisecond))
	}
}
