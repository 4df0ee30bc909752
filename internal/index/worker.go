package index

import (
	"context"
	"errors"
	"io/fs"
	"sync"
	"sync/atomic"
	"time"

	"github.com/solidcat/solidcat/internal/catalog"
	"github.com/solidcat/solidcat/internal/logger"
	"github.com/solidcat/solidcat/internal/validate"
)

var log = logger.ForComponent("indexer")

type WorkerConfig struct {
	WorkerCount  int
	MaxQueueSize int
	RateLimit    int
}

func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		WorkerCount:  2,
		MaxQueueSize: 1000,
		RateLimit:    100,
	}
}

type WorkerStats struct {
	Scanned   int64
	Failed    int64
	Skipped   int64
	IsRunning bool
	StartedAt time.Time
	LastScan  time.Time
}

// ScanWorker drains scan jobs and refreshes the store: load, validate,
// upsert. Documents whose content hash is unchanged are skipped.
type ScanWorker struct {
	store  *Store
	loader *catalog.Loader
	root   string
	config WorkerConfig

	highQueue   chan ScanJob
	normalQueue chan ScanJob
	lowQueue    chan ScanJob

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	notify chan struct{}

	rateLimiter *time.Ticker

	scanned int64
	failed  int64
	skipped int64

	statsMu   sync.RWMutex
	isRunning bool
	startedAt time.Time
	lastScan  time.Time
}

func NewScanWorker(store *Store, loader *catalog.Loader, root string, config WorkerConfig) *ScanWorker {
	ctx, cancel := context.WithCancel(context.Background())

	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultWorkerConfig().WorkerCount
	}
	if config.MaxQueueSize <= 0 {
		config.MaxQueueSize = DefaultWorkerConfig().MaxQueueSize
	}

	return &ScanWorker{
		store:       store,
		loader:      loader,
		root:        root,
		config:      config,
		highQueue:   make(chan ScanJob, 100),
		normalQueue: make(chan ScanJob, config.MaxQueueSize),
		lowQueue:    make(chan ScanJob, config.MaxQueueSize),
		ctx:         ctx,
		cancel:      cancel,
		notify:      make(chan struct{}, 1),
	}
}

// Notify signals after each scan that changed the store, so watch mode
// can refresh its report once a batch drains. The channel never blocks
// the workers.
func (w *ScanWorker) Notify() <-chan struct{} {
	return w.notify
}

func (w *ScanWorker) Start() {
	w.statsMu.Lock()
	if w.isRunning {
		w.statsMu.Unlock()
		return
	}
	w.isRunning = true
	w.startedAt = time.Now()
	w.statsMu.Unlock()

	if w.config.RateLimit > 0 {
		w.rateLimiter = time.NewTicker(time.Second / time.Duration(w.config.RateLimit))
	}

	for i := 0; i < w.config.WorkerCount; i++ {
		w.wg.Add(1)
		go w.run()
	}

	log.Info("scan worker started", "workers", w.config.WorkerCount)
}

func (w *ScanWorker) Stop() {
	w.statsMu.Lock()
	if !w.isRunning {
		w.statsMu.Unlock()
		return
	}
	w.isRunning = false
	w.statsMu.Unlock()

	w.cancel()
	w.wg.Wait()

	if w.rateLimiter != nil {
		w.rateLimiter.Stop()
	}

	log.Info("scan worker stopped")
}

// Enqueue adds a job to the matching priority queue, dropping it when
// the queue is full.
func (w *ScanWorker) Enqueue(job ScanJob) bool {
	var queue chan ScanJob
	switch job.Priority {
	case PriorityHigh:
		queue = w.highQueue
	case PriorityLow:
		queue = w.lowQueue
	default:
		queue = w.normalQueue
	}

	select {
	case queue <- job:
		return true
	default:
		log.Warn("scan queue full, dropping job", "path", job.Path)
		return false
	}
}

func (w *ScanWorker) Stats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()

	return WorkerStats{
		Scanned:   atomic.LoadInt64(&w.scanned),
		Failed:    atomic.LoadInt64(&w.failed),
		Skipped:   atomic.LoadInt64(&w.skipped),
		IsRunning: w.isRunning,
		StartedAt: w.startedAt,
		LastScan:  w.lastScan,
	}
}

func (w *ScanWorker) run() {
	defer w.wg.Done()

	for {
		job, ok := w.nextJob()
		if !ok {
			return
		}

		if w.rateLimiter != nil {
			select {
			case <-w.rateLimiter.C:
			case <-w.ctx.Done():
				return
			}
		}

		w.process(job)
	}
}

// nextJob prefers higher priority queues when multiple have work.
func (w *ScanWorker) nextJob() (ScanJob, bool) {
	select {
	case job := <-w.highQueue:
		return job, true
	case <-w.ctx.Done():
		return ScanJob{}, false
	default:
	}

	select {
	case job := <-w.highQueue:
		return job, true
	case job := <-w.normalQueue:
		return job, true
	case job := <-w.lowQueue:
		return job, true
	case <-w.ctx.Done():
		return ScanJob{}, false
	}
}

func (w *ScanWorker) process(job ScanJob) {
	doc, recognized, err := w.loader.LoadFile(w.root, job.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if err := w.store.DeleteByPath(job.Path); err != nil {
				log.Warn("failed to drop deleted document", "path", job.Path, "error", err)
			}
			atomic.AddInt64(&w.scanned, 1)
			w.touch()
			return
		}
		log.Warn("scan failed", "path", job.Path, "error", err)
		atomic.AddInt64(&w.failed, 1)
		return
	}

	if !recognized {
		atomic.AddInt64(&w.skipped, 1)
		return
	}

	if prev, err := w.store.GetByPath(job.Path); err == nil && prev != nil {
		if prev.ContentHash == doc.ContentHash && prev.Status != StatusError {
			atomic.AddInt64(&w.skipped, 1)
			return
		}
	}

	result := validate.Document(*doc)
	status := StatusPass
	if !result.Pass {
		status = StatusFail
	}

	rec := &Record{
		Path:        doc.Path,
		Principle:   doc.Principle.String(),
		Title:       doc.Title,
		ContentHash: doc.ContentHash,
		Encoding:    doc.Encoding,
		Status:      status,
		Missing:     validate.MissingNames(result),
		ValidatedAt: time.Now().UTC(),
	}

	if _, err := w.store.Upsert(rec); err != nil {
		log.Warn("failed to store document", "path", job.Path, "error", err)
		atomic.AddInt64(&w.failed, 1)
		return
	}

	atomic.AddInt64(&w.scanned, 1)
	w.touch()
	log.Debug("document scanned", "path", job.Path, "status", status)
}

func (w *ScanWorker) touch() {
	w.statsMu.Lock()
	w.lastScan = time.Now()
	w.statsMu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}
