package mqttwire

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncoderDecoderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	enc := NewEncoder(&buf)

	for _, p := range samplePackets() {
		require.NoError(t, enc.Encode(p))
	}

	dec := NewDecoder(&buf)
	var offset int64
	for _, want := range samplePackets() {
		size, err := EncodedSize(want)
		require.NoError(t, err)

		got, err := dec.Decode()
		require.NoError(t, err)
		assert.Equal(t, want, got)

		offset += int64(size)
		assert.Equal(t, offset, dec.Offset())
	}

	_, err := dec.Decode()
	assert.ErrorIs(t, err, io.EOF)
}

func TestDecoderTruncatedStream(t *testing.T) {
	data, err := Encode(&PublishPacket{Topic: "t", Payload: []byte("payload")})
	require.NoError(t, err)

	dec := NewDecoder(bytes.NewReader(data[:len(data)-1]))
	_, err = dec.Decode()
	assert.ErrorIs(t, err, ErrTruncated)
	assert.False(t, errors.Is(err, io.EOF))
}

func TestDecoderMaxPacketSize(t *testing.T) {
	data, err := Encode(&PublishPacket{Topic: "t", Payload: make([]byte, 1000)})
	require.NoError(t, err)

	dec := NewDecoder(bytes.NewReader(data), WithMaxPacketSize(100))
	_, err = dec.Decode()
	assert.ErrorIs(t, err, ErrPacketTooLarge)

	dec = NewDecoder(bytes.NewReader(data), WithMaxPacketSize(0))
	_, err = dec.Decode()
	assert.NoError(t, err)
}

func TestDecoderStrictFlags(t *testing.T) {
	// SUBSCRIBE with a zero flag nibble.
	data := []byte{0x80, 0x06, 0x00, 0x01, 0x00, 0x01, 'a', 0x00}

	_, err := NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)

	_, err = NewDecoder(bytes.NewReader(data), WithStrictFlags(true)).Decode()
	assert.ErrorIs(t, err, ErrInvalidFlags)
}

func TestDecoderMetricsAndLogging(t *testing.T) {
	var stream bytes.Buffer
	enc := NewEncoder(&stream)
	require.NoError(t, enc.Encode(&PublishPacket{Topic: "a", Payload: []byte("x")}))
	require.NoError(t, enc.Encode(&PingreqPacket{}))
	stream.Write([]byte{0x00, 0x00})

	var logs bytes.Buffer
	metrics := NewMemoryMetrics()
	dec := NewDecoder(&stream,
		WithLogger(NewLogrusLogger(&logs, LogLevelDebug)),
		WithMetrics(metrics),
	)

	_, err := dec.Decode()
	require.NoError(t, err)
	_, err = dec.Decode()
	require.NoError(t, err)
	_, err = dec.Decode()
	require.ErrorIs(t, err, ErrInvalidPacketType)

	published := metrics.GetCounter(MetricPacketsDecoded, MetricLabels{LabelPacketType: "PUBLISH", LabelQoS: "0"})
	require.NotNil(t, published)
	assert.Equal(t, float64(1), published.Value())
	assert.Equal(t, float64(8), metrics.GetCounter(MetricBytesDecoded, nil).Value())
	assert.Equal(t, float64(1), metrics.GetCounter(MetricDecodeErrors, nil).Value())

	out := logs.String()
	assert.Contains(t, out, `msg="packet decoded"`)
	assert.Contains(t, out, "packet_type=PUBLISH")
	assert.Contains(t, out, `msg="packet decode failed"`)
	assert.Contains(t, out, "offset=8")
}

func TestEncoderErrors(t *testing.T) {
	var buf bytes.Buffer
	var logs bytes.Buffer
	metrics := NewMemoryMetrics()

	enc := NewEncoder(&buf,
		WithMaxPacketSize(10),
		WithLogger(NewLogrusLogger(&logs, LogLevelWarn)),
		WithMetrics(metrics),
	)

	err := enc.Encode(&PublishPacket{Topic: "t", Payload: make([]byte, 20)})
	assert.ErrorIs(t, err, ErrPacketTooLarge)

	err = enc.Encode(&SubscribePacket{PacketID: 1})
	assert.ErrorIs(t, err, ErrMalformedPacket)

	assert.Zero(t, buf.Len())
	assert.Equal(t, float64(2), metrics.GetCounter(MetricEncodeErrors, nil).Value())
	assert.Contains(t, logs.String(), `msg="packet encode failed"`)
}

func TestEncoderMetrics(t *testing.T) {
	metrics := NewMemoryMetrics()
	enc := NewEncoder(io.Discard, WithMetrics(metrics))

	require.NoError(t, enc.Encode(&AckPacket{FixedHeader: FixedHeader{PacketType: PacketPUBACK}, PacketID: 1}))

	c := metrics.GetCounter(MetricPacketsEncoded, MetricLabels{LabelPacketType: "PUBACK"})
	require.NotNil(t, c)
	assert.Equal(t, float64(1), c.Value())
	assert.Equal(t, float64(4), metrics.GetCounter(MetricBytesEncoded, nil).Value())
}

func TestWithLoggerNil(t *testing.T) {
	cfg := newStreamConfig([]StreamOption{WithLogger(nil)})
	assert.NotNil(t, cfg.logger)
}

func TestPacketFields(t *testing.T) {
	qos0 := packetFields(&PublishPacket{Topic: "t"}, 3, 5)
	assert.Equal(t, LogFields{
		LogFieldPacketType: "PUBLISH",
		LogFieldBytes:      5,
		LogFieldOffset:     int64(3),
		LogFieldQoS:        QoS0,
	}, qos0)

	ack := packetFields(&AckPacket{FixedHeader: FixedHeader{PacketType: PacketPUBACK}, PacketID: 9}, -1, 4)
	assert.Equal(t, LogFields{
		LogFieldPacketType: "PUBACK",
		LogFieldBytes:      4,
		LogFieldPacketID:   uint16(9),
	}, ack)
}
