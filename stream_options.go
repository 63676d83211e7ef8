package mqttwire

// StreamOption configures a Decoder or an Encoder.
type StreamOption func(*streamConfig)

type streamConfig struct {
	maxPacketSize uint32
	strictFlags   bool
	logger        Logger
	metrics       *CodecMetrics
}

func defaultStreamConfig() *streamConfig {
	return &streamConfig{
		maxPacketSize: 256 * 1024, // 256KB
		logger:        NewNoOpLogger(),
		metrics:       NewCodecMetrics(nil),
	}
}

func newStreamConfig(opts []StreamOption) *streamConfig {
	c := defaultStreamConfig()
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithMaxPacketSize limits the size of packets read or written.
// Zero removes the limit.
func WithMaxPacketSize(size uint32) StreamOption {
	return func(c *streamConfig) {
		c.maxPacketSize = size
	}
}

// WithStrictFlags enables DecodeOptions.StrictFlags for decoding.
func WithStrictFlags(strict bool) StreamOption {
	return func(c *streamConfig) {
		c.strictFlags = strict
	}
}

// WithLogger sets the logger.
func WithLogger(logger Logger) StreamOption {
	return func(c *streamConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m Metrics) StreamOption {
	return func(c *streamConfig) {
		c.metrics = NewCodecMetrics(m)
	}
}
