package mqttwire

import (
	"strconv"
)

// MetricLabels represents key-value pairs for metric labels.
type MetricLabels map[string]string

// Metrics defines the interface for collecting metrics.
type Metrics interface {
	// Counter returns a counter metric.
	Counter(name string, labels MetricLabels) Counter

	// Histogram returns a histogram metric.
	Histogram(name string, labels MetricLabels) Histogram
}

// Counter is a monotonically increasing counter.
type Counter interface {
	// Inc increments the counter by 1.
	Inc()

	// Add adds the given value to the counter.
	Add(delta float64)

	// Value returns the current value.
	Value() float64
}

// Histogram tracks the distribution of values.
type Histogram interface {
	// Observe records a value.
	Observe(value float64)

	// Count returns the number of observations.
	Count() uint64

	// Sum returns the sum of all observations.
	Sum() float64
}

// NoOpMetrics is a no-op implementation of Metrics.
type NoOpMetrics struct{}

// Counter returns a no-op counter.
func (n *NoOpMetrics) Counter(_ string, _ MetricLabels) Counter {
	return &noOpCounter{}
}

// Histogram returns a no-op histogram.
func (n *NoOpMetrics) Histogram(_ string, _ MetricLabels) Histogram {
	return &noOpHistogram{}
}

type noOpCounter struct{}

func (n *noOpCounter) Inc()           {}
func (n *noOpCounter) Add(_ float64)  {}
func (n *noOpCounter) Value() float64 { return 0 }

type noOpHistogram struct{}

func (n *noOpHistogram) Observe(_ float64) {}
func (n *noOpHistogram) Count() uint64     { return 0 }
func (n *noOpHistogram) Sum() float64      { return 0 }

// Standard metric names for the codec.
const (
	// MetricPacketsDecoded is the total number of packets decoded.
	MetricPacketsDecoded = "mqtt_packets_decoded_total"

	// MetricPacketsEncoded is the total number of packets encoded.
	MetricPacketsEncoded = "mqtt_packets_encoded_total"

	// MetricBytesDecoded is the total number of bytes consumed by decoding.
	MetricBytesDecoded = "mqtt_bytes_decoded_total"

	// MetricBytesEncoded is the total number of bytes produced by encoding.
	MetricBytesEncoded = "mqtt_bytes_encoded_total"

	// MetricDecodeErrors is the total number of failed decodes.
	MetricDecodeErrors = "mqtt_decode_errors_total"

	// MetricEncodeErrors is the total number of failed encodes.
	MetricEncodeErrors = "mqtt_encode_errors_total"

	// MetricPacketSize is the encoded size distribution of packets.
	MetricPacketSize = "mqtt_packet_size_bytes"
)

// Standard metric labels.
const (
	// LabelPacketType is the packet type label.
	LabelPacketType = "packet_type"

	// LabelQoS is the QoS level label.
	LabelQoS = "qos"

	// LabelDirection is "in" for decoded and "out" for encoded packets.
	LabelDirection = "direction"
)

// CodecMetrics provides convenience methods for codec metrics.
type CodecMetrics struct {
	metrics Metrics
}

// NewCodecMetrics creates a new CodecMetrics instance. A nil m records nothing.
func NewCodecMetrics(m Metrics) *CodecMetrics {
	if m == nil {
		m = &NoOpMetrics{}
	}
	return &CodecMetrics{metrics: m}
}

func packetLabels(p Packet) MetricLabels {
	labels := MetricLabels{LabelPacketType: p.Type().String()}
	if p.Type() == PacketPUBLISH {
		labels[LabelQoS] = strconv.Itoa(int(p.Header().QoS))
	}
	return labels
}

// PacketDecoded records a decoded packet of n bytes.
func (c *CodecMetrics) PacketDecoded(p Packet, n int) {
	c.metrics.Counter(MetricPacketsDecoded, packetLabels(p)).Inc()
	c.metrics.Counter(MetricBytesDecoded, nil).Add(float64(n))
	c.metrics.Histogram(MetricPacketSize, MetricLabels{LabelDirection: "in"}).Observe(float64(n))
}

// PacketEncoded records an encoded packet of n bytes.
func (c *CodecMetrics) PacketEncoded(p Packet, n int) {
	c.metrics.Counter(MetricPacketsEncoded, packetLabels(p)).Inc()
	c.metrics.Counter(MetricBytesEncoded, nil).Add(float64(n))
	c.metrics.Histogram(MetricPacketSize, MetricLabels{LabelDirection: "out"}).Observe(float64(n))
}

// DecodeFailed records a failed decode.
func (c *CodecMetrics) DecodeFailed() {
	c.metrics.Counter(MetricDecodeErrors, nil).Inc()
}

// EncodeFailed records a failed encode.
func (c *CodecMetrics) EncodeFailed() {
	c.metrics.Counter(MetricEncodeErrors, nil).Inc()
}
