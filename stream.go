package mqttwire

import (
	"bufio"
	"errors"
	"io"
)

// Decoder reads consecutive packets from a byte stream.
//
// The remaining-length framing depends on the exact stream offset, so a
// Decoder must be used by one goroutine at a time.
type Decoder struct {
	r      *bufio.Reader
	cfg    *streamConfig
	offset int64
}

// NewDecoder returns a decoder reading from r.
func NewDecoder(r io.Reader, opts ...StreamOption) *Decoder {
	return &Decoder{
		r:   bufio.NewReader(r),
		cfg: newStreamConfig(opts),
	}
}

// Offset returns the number of bytes consumed so far.
func (d *Decoder) Offset() int64 {
	return d.offset
}

// Decode reads the next packet. It returns io.EOF when the stream ends
// cleanly on a packet boundary.
func (d *Decoder) Decode() (Packet, error) {
	start := d.offset
	pkt, n, err := readPacket(d.r, d.cfg.maxPacketSize, DecodeOptions{StrictFlags: d.cfg.strictFlags})
	d.offset += int64(n)

	if err != nil {
		if errors.Is(err, io.EOF) && n == 0 {
			return nil, io.EOF
		}
		d.cfg.metrics.DecodeFailed()
		d.cfg.logger.Warn("packet decode failed", LogFields{
			LogFieldOffset: start,
			LogFieldBytes:  n,
			LogFieldError:  err.Error(),
		})
		return nil, err
	}

	d.cfg.metrics.PacketDecoded(pkt, n)
	d.cfg.logger.Debug("packet decoded", packetFields(pkt, start, n))

	return pkt, nil
}

// Encoder writes packets to a byte stream.
type Encoder struct {
	w   io.Writer
	cfg *streamConfig
}

// NewEncoder returns an encoder writing to w.
func NewEncoder(w io.Writer, opts ...StreamOption) *Encoder {
	return &Encoder{
		w:   w,
		cfg: newStreamConfig(opts),
	}
}

// Encode writes p as a single Write call.
func (e *Encoder) Encode(p Packet) error {
	n, err := WritePacket(e.w, p, e.cfg.maxPacketSize)
	if err != nil {
		e.cfg.metrics.EncodeFailed()
		e.cfg.logger.Warn("packet encode failed", LogFields{
			LogFieldBytes: n,
			LogFieldError: err.Error(),
		})
		return err
	}

	e.cfg.metrics.PacketEncoded(p, n)
	e.cfg.logger.Debug("packet encoded", packetFields(p, -1, n))

	return nil
}

func packetFields(p Packet, offset int64, n int) LogFields {
	fields := LogFields{
		LogFieldPacketType: p.Type().String(),
		LogFieldBytes:      n,
	}
	if offset >= 0 {
		fields[LogFieldOffset] = offset
	}
	if id, ok := p.(PacketWithID); ok {
		if p.Type() != PacketPUBLISH || p.Header().QoS > QoS0 {
			fields[LogFieldPacketID] = id.GetPacketID()
		}
	}
	if p.Type() == PacketPUBLISH {
		fields[LogFieldQoS] = p.Header().QoS
	}
	return fields
}
