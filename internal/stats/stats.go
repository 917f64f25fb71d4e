package stats

import (
	"expvar"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
)

const varsName = "go-clubs-stats"

type StatsProvider interface {
	Incr(name string)
	Decr(name string)
	RegisterMetric(name string)
	Run()
}

// StatsUpdater applies counter updates on a single goroutine. Updates
// sent after Stop are discarded.
type StatsUpdater struct {
	vars       *expvar.Map
	updateChan chan metricDelta
	// mu guards stopped and the close of updateChan.
	mu      sync.RWMutex
	stopped bool
}

type metricDelta struct {
	name  string
	delta int64
}

func (su *StatsUpdater) serveVars(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	io.WriteString(w, su.vars.String())
}

var publishOnce sync.Once

// NewStatsUpdater creates a new stats updater instance and serves its
// metrics at GET /debug/vars on r. The first updater is also published
// to the process-wide expvar registry.
func NewStatsUpdater(r chi.Router) *StatsUpdater {
	su := &StatsUpdater{
		updateChan: make(chan metricDelta, 512),
		vars:       new(expvar.Map).Init(),
	}
	publishOnce.Do(func() {
		expvar.Publish(varsName, su.vars)
	})

	r.Get("/debug/vars", su.serveVars)
	su.initializeMetrics()

	return su
}

func (su *StatsUpdater) initializeMetrics() {
	startTime := time.Now()
	su.vars.Set("Uptime", expvar.Func(func() any {
		return time.Since(startTime).Milliseconds()
	}))
}

func (su *StatsUpdater) updateMetrics() {
	for upd := range su.updateChan {
		su.vars.Add(upd.name, upd.delta)
	}
}

func (su *StatsUpdater) send(name string, delta int64) {
	su.mu.RLock()
	defer su.mu.RUnlock()

	if su.stopped {
		return
	}
	su.updateChan <- metricDelta{name: name, delta: delta}
}

func (su *StatsUpdater) Incr(name string) {
	su.send(name, 1)
}

func (su *StatsUpdater) Decr(name string) {
	su.send(name, -1)
}

func (su *StatsUpdater) RegisterMetric(name string) {
	su.vars.Set(name, new(expvar.Int))
}

func (su *StatsUpdater) Run() {
	go su.updateMetrics()
}

// Stop ends the update loop. It is safe to call more than once and
// concurrently with Incr and Decr.
func (su *StatsUpdater) Stop() {
	su.mu.Lock()
	defer su.mu.Unlock()

	if !su.stopped {
		su.stopped = true
		close(su.updateChan)
	}
}
