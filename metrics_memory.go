package mqttwire

import (
	"cmp"
	"maps"
	"slices"
	"strings"
	"sync"
)

// MemoryMetrics keeps codec metrics in process memory. It backs the
// mqttdump -stats summary and is safe for concurrent use.
type MemoryMetrics struct {
	mu         sync.RWMutex
	counters   map[string]*memoryCounter
	histograms map[string]*memoryHistogram
}

// NewMemoryMetrics returns an empty collector.
func NewMemoryMetrics() *MemoryMetrics {
	return &MemoryMetrics{
		counters:   make(map[string]*memoryCounter),
		histograms: make(map[string]*memoryHistogram),
	}
}

// labelsKey identifies a series by name and label set, independent of map
// iteration order.
func labelsKey(name string, labels MetricLabels) string {
	var b strings.Builder
	b.WriteString(name)
	for _, k := range slices.Sorted(maps.Keys(labels)) {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
	}
	return b.String()
}

// Counter returns the counter for name and labels, creating it on first use.
func (m *MemoryMetrics) Counter(name string, labels MetricLabels) Counter {
	key := labelsKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[key]
	if !ok {
		c = &memoryCounter{name: name, labels: maps.Clone(labels)}
		m.counters[key] = c
	}
	return c
}

// Histogram returns the histogram for name and labels, creating it on first use.
func (m *MemoryMetrics) Histogram(name string, labels MetricLabels) Histogram {
	key := labelsKey(name, labels)

	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.histograms[key]
	if !ok {
		h = &memoryHistogram{name: name, labels: maps.Clone(labels)}
		m.histograms[key] = h
	}
	return h
}

// GetCounter returns an existing counter, or nil.
func (m *MemoryMetrics) GetCounter(name string, labels MetricLabels) Counter {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if c, ok := m.counters[labelsKey(name, labels)]; ok {
		return c
	}
	return nil
}

// GetHistogram returns an existing histogram, or nil.
func (m *MemoryMetrics) GetHistogram(name string, labels MetricLabels) Histogram {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if h, ok := m.histograms[labelsKey(name, labels)]; ok {
		return h
	}
	return nil
}

// CounterSample is the value of one counter series.
type CounterSample struct {
	Name   string
	Labels MetricLabels
	Value  float64
}

// HistogramSample is the state of one histogram series.
type HistogramSample struct {
	Name   string
	Labels MetricLabels
	Count  uint64
	Sum    float64
}

// Snapshot is a point-in-time copy of every series, ordered by name and
// then by labels.
type Snapshot struct {
	Counters   []CounterSample
	Histograms []HistogramSample
}

// Snapshot copies the current value of every series.
func (m *MemoryMetrics) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var s Snapshot
	for _, key := range slices.Sorted(maps.Keys(m.counters)) {
		c := m.counters[key]
		s.Counters = append(s.Counters, CounterSample{Name: c.name, Labels: maps.Clone(c.labels), Value: c.Value()})
	}
	for _, key := range slices.Sorted(maps.Keys(m.histograms)) {
		h := m.histograms[key]
		count, sum := h.load()
		s.Histograms = append(s.Histograms, HistogramSample{Name: h.name, Labels: maps.Clone(h.labels), Count: count, Sum: sum})
	}
	return s
}

// Total sums every counter series called name.
func (s Snapshot) Total(name string) float64 {
	var total float64
	for _, c := range s.Counters {
		if c.Name == name {
			total += c.Value
		}
	}
	return total
}

// SumBy sums the counter series called name, grouped by the value of label.
// Series without the label are grouped under "".
func (s Snapshot) SumBy(name, label string) map[string]float64 {
	out := make(map[string]float64)
	for _, c := range s.Counters {
		if c.Name == name {
			out[c.Labels[label]] += c.Value
		}
	}
	return out
}

// Histogram returns the series called name with exactly labels.
func (s Snapshot) Histogram(name string, labels MetricLabels) (HistogramSample, bool) {
	key := labelsKey(name, labels)
	i, ok := slices.BinarySearchFunc(s.Histograms, key, func(h HistogramSample, k string) int {
		return cmp.Compare(labelsKey(h.Name, h.Labels), k)
	})
	if !ok {
		return HistogramSample{}, false
	}
	return s.Histograms[i], true
}

type memoryCounter struct {
	name   string
	labels MetricLabels

	mu    sync.Mutex
	value float64
}

func (c *memoryCounter) Inc() { c.Add(1) }

func (c *memoryCounter) Add(delta float64) {
	c.mu.Lock()
	c.value += delta
	c.mu.Unlock()
}

func (c *memoryCounter) Value() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

type memoryHistogram struct {
	name   string
	labels MetricLabels

	mu    sync.Mutex
	count uint64
	sum   float64
}

func (h *memoryHistogram) Observe(value float64) {
	h.mu.Lock()
	h.count++
	h.sum += value
	h.mu.Unlock()
}

func (h *memoryHistogram) load() (uint64, float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.count, h.sum
}

func (h *memoryHistogram) Count() uint64 {
	count, _ := h.load()
	return count
}

func (h *memoryHistogram) Sum() float64 {
	_, sum := h.load()
	return sum
}
