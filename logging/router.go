package logging

import (
	"context"
	"fmt"
	"log"
	"os"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

const (
	routerEventsMetricKey  = "logging_events_total"
	routerDroppedMetricKey = "logging_events_dropped_total"

	defaultQueueSize = 512
	minSinkBacklog   = 32
	maxSinkBacklog   = 1024
)

// Router fans published events out to the enabled sinks on background
// workers. Publish never blocks; events are dropped when the queue is full.
type Router struct {
	cfg      Config
	queue    chan Event
	workers  []*sinkWorker
	clock    Clock
	fallback *log.Logger
	metrics  *Metrics
	stop     context.CancelFunc
	stopped  <-chan struct{}
	closed   atomic.Bool
	fields   map[string]any
	wg       sync.WaitGroup

	published atomic.Uint64
	dropped   atomic.Uint64
	nextWarn  atomic.Int64

	categoryMu sync.Mutex
	byCategory map[string]uint64
}

// RouterStats is the router's view for diagnostics.
type RouterStats struct {
	EventsTotal  uint64            `json:"eventsTotal"`
	DroppedTotal uint64            `json:"droppedTotal"`
	ByCategory   map[string]uint64 `json:"byCategory,omitempty"`
}

// NewRouter attaches every sink named in cfg.EnabledSinks. A sink that is
// enabled but not supplied is a configuration error.
func NewRouter(cfg Config, clock Clock, fallback *log.Logger, available map[string]Sink) (*Router, error) {
	if clock == nil {
		clock = SystemClock{}
	}
	if fallback == nil {
		fallback = log.New(os.Stderr, "[logging] ", log.LstdFlags)
	}
	queueSize := cfg.BufferSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	backlog := min(max(queueSize, minSinkBacklog), maxSinkBacklog)

	names := append([]string(nil), cfg.EnabledSinks...)
	sort.Strings(names)
	names = compactNames(names)

	workers := make([]*sinkWorker, 0, len(names))
	for _, name := range names {
		sink, ok := available[name]
		if !ok || sink == nil {
			return nil, fmt.Errorf("logging sink %q enabled but not configured", name)
		}
		workers = append(workers, &sinkWorker{
			name:       name,
			sink:       sink,
			categories: cfg.categoriesFor(name),
			events:     make(chan Event, backlog),
			fallback:   fallback,
		})
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		cfg:        cfg,
		queue:      make(chan Event, queueSize),
		workers:    workers,
		clock:      clock,
		fallback:   fallback,
		stop:       cancel,
		stopped:    ctx.Done(),
		fields:     cfg.CloneFields(),
		byCategory: make(map[string]uint64),
	}
	r.start()
	return r, nil
}

func compactNames(sorted []string) []string {
	out := sorted[:0]
	for i, name := range sorted {
		if i > 0 && sorted[i-1] == name {
			continue
		}
		out = append(out, name)
	}
	return out
}

// AttachMetrics mirrors router counters into m.
func (r *Router) AttachMetrics(m *Metrics) {
	if r == nil {
		return
	}
	r.metrics = m
}

func (r *Router) start() {
	for _, worker := range r.workers {
		r.wg.Add(1)
		go func(w *sinkWorker) {
			defer r.wg.Done()
			w.run()
		}(worker)
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer func() {
			for _, worker := range r.workers {
				close(worker.events)
			}
		}()
		for {
			select {
			case event := <-r.queue:
				r.dispatch(event)
			case <-r.stopped:
				for {
					select {
					case event := <-r.queue:
						r.dispatch(event)
					default:
						return
					}
				}
			}
		}
	}()
}

func (r *Router) dispatch(event Event) {
	if event.Severity < r.cfg.MinimumSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	event = mergeFields(event, r.fields)

	r.published.Add(1)
	r.metrics.Add(routerEventsMetricKey, 1)
	if event.Category != "" {
		r.categoryMu.Lock()
		r.byCategory[event.Category]++
		r.categoryMu.Unlock()
	}
	for _, worker := range r.workers {
		if worker.accepts(event.Category) {
			worker.enqueue(event)
		}
	}
}

func (r *Router) Publish(ctx context.Context, event Event) {
	if r == nil || event.Type == "" || r.closed.Load() {
		return
	}
	select {
	case r.queue <- event:
	default:
		r.drop(event)
	}
}

func (r *Router) drop(event Event) {
	r.dropped.Add(1)
	r.metrics.Add(routerDroppedMetricKey, 1)
	interval := r.cfg.DropWarnInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	now := r.clock.Now().UnixNano()
	next := r.nextWarn.Load()
	if now < next {
		return
	}
	if r.nextWarn.CompareAndSwap(next, now+interval.Nanoseconds()) {
		r.fallback.Printf("dropping %s event type=%s tick=%d", event.Category, event.Type, event.Tick)
	}
}

// Close stops accepting events, flushes queued ones through the sinks and
// closes every sink.
func (r *Router) Close(ctx context.Context) error {
	if r == nil || !r.closed.CompareAndSwap(false, true) {
		return nil
	}
	r.stop()
	flushed := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(flushed)
	}()
	select {
	case <-flushed:
	case <-ctx.Done():
		return ctx.Err()
	}
	var firstErr error
	for _, worker := range r.workers {
		if err := worker.sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close sink %s: %w", worker.name, err)
		}
	}
	return firstErr
}

func (r *Router) Stats() RouterStats {
	if r == nil {
		return RouterStats{}
	}
	stats := RouterStats{
		EventsTotal:  r.published.Load(),
		DroppedTotal: r.dropped.Load(),
	}
	r.categoryMu.Lock()
	if len(r.byCategory) > 0 {
		stats.ByCategory = make(map[string]uint64, len(r.byCategory))
		for category, count := range r.byCategory {
			stats.ByCategory[category] = count
		}
	}
	r.categoryMu.Unlock()
	return stats
}

func (r *Router) Sink(name string) Sink {
	if r == nil {
		return nil
	}
	for _, worker := range r.workers {
		if worker.name == name {
			return worker.sink
		}
	}
	return nil
}

type sinkWorker struct {
	name       string
	sink       Sink
	categories map[string]bool
	events     chan Event
	fallback   *log.Logger
	failures   int
	nextRetry  time.Time
}

func (w *sinkWorker) accepts(category string) bool {
	return w.categories == nil || w.categories[category]
}

func (w *sinkWorker) enqueue(event Event) {
	select {
	case w.events <- cloneEvent(event):
	default:
		w.fallback.Printf("sink %s backlog full, dropping %s", w.name, event.Type)
	}
}

func (w *sinkWorker) run() {
	for event := range w.events {
		if !w.nextRetry.IsZero() {
			if wait := time.Until(w.nextRetry); wait > 0 {
				time.Sleep(wait)
			}
		}
		if err := w.sink.Write(event); err != nil {
			w.failures++
			delay := time.Duration(1<<min(w.failures, 5)) * 100 * time.Millisecond
			w.nextRetry = time.Now().Add(delay)
			w.fallback.Printf("sink %s failed: %v (retry in %s)", w.name, err, delay)
			continue
		}
		w.failures = 0
		w.nextRetry = time.Time{}
	}
}
