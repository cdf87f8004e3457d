package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector provides simple built-in metrics collection with no external dependencies
type Collector struct {
	conversionMetrics *ConversionMetrics
	operationCounters map[string]*int64
	mu                sync.RWMutex
	startTime         time.Time
}

// ConversionMetrics tracks conversion volume and outcomes
type ConversionMetrics struct {
	// Conversions
	Conversions      int64 `json:"conversions"`
	ConversionErrors int64 `json:"conversion_errors"`
	Warnings         int64 `json:"warnings"`
	Elements         int64 `json:"elements"`

	// Volume
	InputBytes  int64 `json:"input_bytes"`
	OutputBytes int64 `json:"output_bytes"`

	// Live connections
	ActiveConnections     int64 `json:"active_connections"`
	MaxActiveConnections  int64 `json:"max_active_connections"`
	TotalConvertDuration  int64 `json:"total_convert_duration_ns"`
	SlowestConvertElapsed int64 `json:"slowest_convert_ns"`

	// Uptime
	StartTime time.Time     `json:"start_time"`
	Uptime    time.Duration `json:"uptime"`
}

// NewCollector creates a new metrics collector
func NewCollector() *Collector {
	return &Collector{
		conversionMetrics: &ConversionMetrics{
			StartTime: time.Now(),
		},
		operationCounters: make(map[string]*int64),
		startTime:         time.Now(),
	}
}

// RecordConversion records a successful conversion
func (c *Collector) RecordConversion(inputBytes, outputBytes, elements, warnings int, elapsed time.Duration) {
	m := c.conversionMetrics
	atomic.AddInt64(&m.Conversions, 1)
	atomic.AddInt64(&m.InputBytes, int64(inputBytes))
	atomic.AddInt64(&m.OutputBytes, int64(outputBytes))
	atomic.AddInt64(&m.Elements, int64(elements))
	atomic.AddInt64(&m.Warnings, int64(warnings))
	atomic.AddInt64(&m.TotalConvertDuration, int64(elapsed))

	for {
		slowest := atomic.LoadInt64(&m.SlowestConvertElapsed)
		if int64(elapsed) <= slowest {
			break
		}
		if atomic.CompareAndSwapInt64(&m.SlowestConvertElapsed, slowest, int64(elapsed)) {
			break
		}
	}
}

// RecordConversionError records a conversion that failed to parse
func (c *Collector) RecordConversionError(inputBytes int) {
	atomic.AddInt64(&c.conversionMetrics.ConversionErrors, 1)
	atomic.AddInt64(&c.conversionMetrics.InputBytes, int64(inputBytes))
}

// ConnectionOpened records a new live connection
func (c *Collector) ConnectionOpened() {
	current := atomic.AddInt64(&c.conversionMetrics.ActiveConnections, 1)

	// Update max concurrent if needed
	for {
		max := atomic.LoadInt64(&c.conversionMetrics.MaxActiveConnections)
		if current <= max {
			break
		}
		if atomic.CompareAndSwapInt64(&c.conversionMetrics.MaxActiveConnections, max, current) {
			break
		}
	}
}

// ConnectionClosed records a closed live connection
func (c *Collector) ConnectionClosed() {
	atomic.AddInt64(&c.conversionMetrics.ActiveConnections, -1)
}

// IncrementCustomCounter increments a custom named counter
func (c *Collector) IncrementCustomCounter(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, exists := c.operationCounters[name]; exists {
		atomic.AddInt64(counter, 1)
	} else {
		var newCounter int64 = 1
		c.operationCounters[name] = &newCounter
	}
}

// GetMetrics returns a snapshot of the current metrics
func (c *Collector) GetMetrics() ConversionMetrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	m := c.conversionMetrics
	return ConversionMetrics{
		Conversions:           atomic.LoadInt64(&m.Conversions),
		ConversionErrors:      atomic.LoadInt64(&m.ConversionErrors),
		Warnings:              atomic.LoadInt64(&m.Warnings),
		Elements:              atomic.LoadInt64(&m.Elements),
		InputBytes:            atomic.LoadInt64(&m.InputBytes),
		OutputBytes:           atomic.LoadInt64(&m.OutputBytes),
		ActiveConnections:     atomic.LoadInt64(&m.ActiveConnections),
		MaxActiveConnections:  atomic.LoadInt64(&m.MaxActiveConnections),
		TotalConvertDuration:  atomic.LoadInt64(&m.TotalConvertDuration),
		SlowestConvertElapsed: atomic.LoadInt64(&m.SlowestConvertElapsed),
		StartTime:             m.StartTime,
		Uptime:                time.Since(c.startTime),
	}
}

// GetCustomCounters returns all custom counters
func (c *Collector) GetCustomCounters() map[string]int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make(map[string]int64)
	for name, counter := range c.operationCounters {
		result[name] = atomic.LoadInt64(counter)
	}
	return result
}

// Reset resets all metrics to zero
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := c.conversionMetrics
	atomic.StoreInt64(&m.Conversions, 0)
	atomic.StoreInt64(&m.ConversionErrors, 0)
	atomic.StoreInt64(&m.Warnings, 0)
	atomic.StoreInt64(&m.Elements, 0)
	atomic.StoreInt64(&m.InputBytes, 0)
	atomic.StoreInt64(&m.OutputBytes, 0)
	atomic.StoreInt64(&m.MaxActiveConnections, atomic.LoadInt64(&m.ActiveConnections))
	atomic.StoreInt64(&m.TotalConvertDuration, 0)
	atomic.StoreInt64(&m.SlowestConvertElapsed, 0)

	c.operationCounters = make(map[string]*int64)

	c.startTime = time.Now()
	m.StartTime = c.startTime
}

// GetErrorRate returns the percentage of conversions that failed
func (c *Collector) GetErrorRate() float64 {
	converted := atomic.LoadInt64(&c.conversionMetrics.Conversions)
	errors := atomic.LoadInt64(&c.conversionMetrics.ConversionErrors)

	if converted+errors == 0 {
		return 0.0
	}

	return float64(errors) / float64(converted+errors) * 100.0
}

// GetAverageDuration returns the mean time spent per successful conversion
func (c *Collector) GetAverageDuration() time.Duration {
	converted := atomic.LoadInt64(&c.conversionMetrics.Conversions)
	if converted == 0 {
		return 0
	}
	return time.Duration(atomic.LoadInt64(&c.conversionMetrics.TotalConvertDuration) / converted)
}
