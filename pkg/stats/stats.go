package stats

import (
	"bufio"
	"io"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var (
	// PublishedEvents counts the events delivered to subscribers, by topic.
	PublishedEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletcore",
		Subsystem: "pubsub",
		Name:      "published_events_total",
		Help:      "Number of events delivered to subscribers.",
	}, []string{"topic"})

	// DroppedEvents counts the events dropped because a subscriber buffer was
	// full, by topic.
	DroppedEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletcore",
		Subsystem: "pubsub",
		Name:      "dropped_events_total",
		Help:      "Number of events dropped for slow subscribers.",
	}, []string{"topic"})

	// SyncSourceChanges counts selected sync source changes, by blockchain.
	SyncSourceChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletcore",
		Subsystem: "evm",
		Name:      "sync_source_changes_total",
		Help:      "Number of selected sync source changes.",
	}, []string{"blockchain"})

	// PersistenceFailures counts storage write failures, by repository.
	PersistenceFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletcore",
		Subsystem: "storage",
		Name:      "write_failures_total",
		Help:      "Number of failed storage writes.",
	}, []string{"repository"})
)

func init() {
	prometheus.MustRegister(
		PublishedEvents, DroppedEvents, SyncSourceChanges, PersistenceFailures,
	)
}

// DumpPrometheusDefaults writes the default Prometheus metrics to w.
func DumpPrometheusDefaults(w io.Writer) error {
	writer := bufio.NewWriter(w)

	metricFamily, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, v := range metricFamily {
		if _, err := writer.WriteString(v.String() + "\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

// PrintNumOfRoutines prints number of go routines currently running
func PrintNumOfRoutines() {
	log.Debugf("Num of go routines: %v", runtime.NumGoroutine())
}
