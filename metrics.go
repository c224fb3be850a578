package geolink

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement it to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordAdd is called after each AddRasters/AddVectors operation.
	// kind is "rasters" or "vectors"; added/skipped count integrated and
	// skipped rows.
	RecordAdd(kind string, added, skipped int, duration time.Duration, err error)

	// RecordDrop is called after each DropRasters/DropVectors operation.
	RecordDrop(kind string, count int, duration time.Duration, err error)

	// RecordSave is called after each Save operation.
	RecordSave(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordAdd(string, int, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordDrop(string, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordSave(time.Duration, error)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	AddCount      atomic.Int64
	AddedRows     atomic.Int64
	SkippedRows   atomic.Int64
	AddErrors     atomic.Int64
	DropCount     atomic.Int64
	DroppedRows   atomic.Int64
	DropErrors    atomic.Int64
	SaveCount     atomic.Int64
	SaveErrors    atomic.Int64
	SaveTotalNano atomic.Int64
}

// RecordAdd implements MetricsCollector.
func (b *BasicMetricsCollector) RecordAdd(_ string, added, skipped int, _ time.Duration, err error) {
	b.AddCount.Add(1)
	b.AddedRows.Add(int64(added))
	b.SkippedRows.Add(int64(skipped))
	if err != nil {
		b.AddErrors.Add(1)
	}
}

// RecordDrop implements MetricsCollector.
func (b *BasicMetricsCollector) RecordDrop(_ string, count int, _ time.Duration, err error) {
	b.DropCount.Add(1)
	b.DroppedRows.Add(int64(count))
	if err != nil {
		b.DropErrors.Add(1)
	}
}

// RecordSave implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSave(duration time.Duration, err error) {
	b.SaveCount.Add(1)
	b.SaveTotalNano.Add(duration.Nanoseconds())
	if err != nil {
		b.SaveErrors.Add(1)
	}
}
