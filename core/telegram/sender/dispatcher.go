// Package sender delivers outbound Telegram messages asynchronously
// through a bounded worker pool with transient-error retries.
package sender

import (
	"context"
	"strings"
	"sync"
	"time"

	tele "gopkg.in/telebot.v4"

	"tutorbot/core/logger"
	"tutorbot/core/telegram/netutil"
)

// Job is a single outbound message.
type Job struct {
	Ctx  context.Context
	To   tele.Recipient
	What interface{}
	Opts []interface{}

	attempt int
}

// Options configures the dispatcher pool.
type Options struct {
	Workers    int
	QueueSize  int
	MaxRetries int
	Backoff    time.Duration
}

// Dispatcher fans outbound sends across a worker pool.
type Dispatcher struct {
	bot   *tele.Bot
	token string
	jobs  chan Job
	wg    sync.WaitGroup
	opts  Options

	mu     sync.Mutex
	closed bool
}

// New builds a dispatcher. Workers defaults to 2, queue to 256.
func New(bot *tele.Bot, token string, opts Options) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 2
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.Backoff <= 0 {
		opts.Backoff = 500 * time.Millisecond
	}
	d := &Dispatcher{
		bot:   bot,
		token: token,
		jobs:  make(chan Job, opts.QueueSize),
		opts:  opts,
	}
	for i := 0; i < opts.Workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Enqueue schedules a job for delivery. Falls back to a synchronous send
// when the queue is full so messages are never silently dropped.
func (d *Dispatcher) Enqueue(job Job) {
	d.mu.Lock()
	closed := d.closed
	d.mu.Unlock()
	if closed {
		d.deliver(job)
		return
	}
	select {
	case d.jobs <- job:
	default:
		logger.TG.Warn("sender.queue_full", "queue", d.opts.QueueSize)
		d.deliver(job)
	}
}

// Shutdown stops workers after draining the queue.
func (d *Dispatcher) Shutdown() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.jobs)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for job := range d.jobs {
		d.deliver(job)
	}
}

func (d *Dispatcher) deliver(job Job) {
	started := time.Now()
	var err error
	for job.attempt = 0; job.attempt <= d.opts.MaxRetries; job.attempt++ {
		if job.attempt > 0 {
			time.Sleep(time.Duration(job.attempt) * d.opts.Backoff)
		}
		_, err = d.bot.Send(job.To, job.What, job.Opts...)
		if err == nil {
			break
		}
		if !netutil.ShouldRetry(err) {
			break
		}
	}
	ctx := job.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err != nil {
		logger.TG.Error("send.failed",
			"rid", logger.RIDFrom(ctx),
			"to", job.To.Recipient(),
			"attempts", job.attempt+1,
			"error", d.redact(err.Error()),
		)
		return
	}
	if logger.ShouldSampleDebug() {
		logger.TG.Debug("send.ok",
			"rid", logger.RIDFrom(ctx),
			"to", job.To.Recipient(),
			"duration_ms", logger.RoundMS(time.Since(started)),
		)
	}
}

// redact strips the bot token from API error strings before logging.
func (d *Dispatcher) redact(s string) string {
	if d.token == "" {
		return s
	}
	return strings.ReplaceAll(s, d.token, "***")
}
