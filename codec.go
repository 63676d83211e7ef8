package mqttwire

import (
	"errors"
	"fmt"
	"io"
)

// DecodeOptions tunes packet decoding.
type DecodeOptions struct {
	// StrictFlags rejects fixed headers whose flag nibble differs from the
	// value MQTT 3.1.1 reserves for the packet type, and PUBLISH packets
	// with DUP set at QoS 0.
	StrictFlags bool
}

// Decode reconstructs a packet from its variable header and payload.
// The fixed header byte and the remaining length have already been read by
// the caller; buf starts at the variable header and must hold at least
// remainingLength bytes. Exactly remainingLength bytes are consumed.
//
// The returned packet owns copies of every variable-length field, so buf may
// be reused once Decode returns.
func Decode(h FixedHeader, remainingLength uint32, buf []byte) (Packet, error) {
	return DecodeWith(h, remainingLength, buf, DecodeOptions{})
}

// DecodeWith is Decode with explicit options.
func DecodeWith(h FixedHeader, remainingLength uint32, buf []byte, opts DecodeOptions) (Packet, error) {
	pkt, err := newPacket(h)
	if err != nil {
		return nil, decodeError(h.PacketType, err)
	}

	if h.QoS > QoS2 {
		return nil, decodeError(h.PacketType, ErrInvalidQoS)
	}
	if opts.StrictFlags {
		if err := h.ValidateFlags(); err != nil {
			return nil, decodeError(h.PacketType, err)
		}
	}

	if remainingLength > MaxRemainingLength {
		return nil, decodeError(h.PacketType, ErrMalformedLength)
	}
	if uint64(len(buf)) < uint64(remainingLength) {
		return nil, decodeError(h.PacketType, ErrTruncated)
	}

	r := newReader(buf[:remainingLength])
	if err := pkt.decodeBody(r); err != nil {
		return nil, decodeError(h.PacketType, err)
	}
	if r.remaining() != 0 {
		return nil, decodeError(h.PacketType, ErrMalformedPacket)
	}

	return pkt, nil
}

// Unpack decodes one complete packet from the start of buf, fixed header
// included. It returns the packet and the number of bytes consumed.
func Unpack(buf []byte) (Packet, int, error) {
	return UnpackWith(buf, DecodeOptions{})
}

// UnpackWith is Unpack with explicit options.
func UnpackWith(buf []byte, opts DecodeOptions) (Packet, int, error) {
	if len(buf) == 0 {
		return nil, 0, ErrTruncated
	}

	h, err := ParseFixedHeader(buf[0])
	if err != nil {
		return nil, 0, decodeError(h.PacketType, err)
	}

	length, n, err := DecodeRemainingLength(buf[1:])
	if err != nil {
		return nil, 0, decodeError(h.PacketType, err)
	}

	pkt, err := DecodeWith(h, length, buf[1+n:], opts)
	if err != nil {
		return nil, 0, err
	}

	return pkt, 1 + n + int(length), nil
}

// prepare validates p and returns its header and remaining length.
func prepare(p Packet) (FixedHeader, int, error) {
	if p == nil {
		return FixedHeader{}, 0, ErrInvalidPacketType
	}
	if err := p.Validate(); err != nil {
		return FixedHeader{}, 0, encodeError(p.Type(), err)
	}

	body := p.size()
	if body > MaxRemainingLength {
		return FixedHeader{}, 0, encodeError(p.Type(), ErrMalformedLength)
	}

	return p.Header(), body, nil
}

// put writes the fixed header, remaining length and body of p into dst,
// which holds exactly the encoded size.
func put(dst []byte, h FixedHeader, body int, p Packet) {
	dst[0] = h.Byte()
	n, _ := EncodeRemainingLength(dst[1:], uint32(body))

	w := writer{buf: dst, pos: 1 + n}
	p.encodeBody(&w)
}

// EncodedSize returns the number of bytes Encode would produce for p.
func EncodedSize(p Packet) (int, error) {
	_, body, err := prepare(p)
	if err != nil {
		return 0, err
	}
	return 1 + RemainingLengthSize(uint32(body)) + body, nil
}

// Encode serializes p into a newly allocated buffer sized exactly to the
// packet: header byte, remaining length, variable header, payload.
// The packet is not modified; the caller owns the returned buffer.
//
// Decoding the result yields p in canonical form, which can differ from p
// itself: an empty CONNECT protocol name and level come back as the
// defaults, empty byte slices come back nil, and fields the flags or QoS
// keep off the wire come back zero. Encoding the canonical form gives the
// same bytes.
func Encode(p Packet) ([]byte, error) {
	h, body, err := prepare(p)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 1+RemainingLengthSize(uint32(body))+body)
	put(buf, h, body, p)
	return buf, nil
}

// AppendPacket appends the encoding of p to dst.
func AppendPacket(dst []byte, p Packet) ([]byte, error) {
	h, body, err := prepare(p)
	if err != nil {
		return dst, err
	}

	total := 1 + RemainingLengthSize(uint32(body)) + body
	start := len(dst)
	dst = grow(dst, total)
	put(dst[start:], h, body, p)
	return dst, nil
}

func grow(b []byte, n int) []byte {
	if cap(b)-len(b) < n {
		nb := make([]byte, len(b), len(b)+n)
		copy(nb, b)
		b = nb
	}
	return b[:len(b)+n]
}

// ReadPacket reads a complete MQTT packet from the reader.
// If maxSize is greater than 0, packets whose remaining length exceeds
// maxSize return ErrPacketTooLarge before the body is allocated.
//
// A clean end of stream before the first header byte returns io.EOF.
func ReadPacket(r io.Reader, maxSize uint32) (Packet, int, error) {
	return readPacket(r, maxSize, DecodeOptions{})
}

func readPacket(r io.Reader, maxSize uint32, opts DecodeOptions) (Packet, int, error) {
	br, ok := r.(io.ByteReader)
	if !ok {
		br = &singleByteReader{r: r}
	}

	first, err := br.ReadByte()
	if err != nil {
		return nil, 0, err
	}
	n := 1

	h, err := ParseFixedHeader(first)
	if err != nil {
		return nil, n, decodeError(h.PacketType, err)
	}

	length, ln, err := readRemainingLength(br)
	n += ln
	if err != nil {
		return nil, n, decodeError(h.PacketType, err)
	}

	if maxSize > 0 && length > maxSize {
		return nil, n, decodeError(h.PacketType, ErrPacketTooLarge)
	}

	body := make([]byte, length)
	if length > 0 {
		rn, err := io.ReadFull(r, body)
		n += rn
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, n, decodeError(h.PacketType, fmt.Errorf("%w: %w", ErrTruncated, io.ErrUnexpectedEOF))
			}
			return nil, n, err
		}
	}

	pkt, err := DecodeWith(h, length, body, opts)
	if err != nil {
		return nil, n, err
	}

	return pkt, n, nil
}

// WritePacket writes a complete MQTT packet to the writer.
// If maxSize is greater than 0, packets larger than maxSize return
// ErrPacketTooLarge and nothing is written.
func WritePacket(w io.Writer, p Packet, maxSize uint32) (int, error) {
	h, body, err := prepare(p)
	if err != nil {
		return 0, err
	}

	total := 1 + RemainingLengthSize(uint32(body)) + body
	if maxSize > 0 && uint32(total) > maxSize {
		return 0, encodeError(p.Type(), ErrPacketTooLarge)
	}

	buf := getBuffer(total)
	defer putBuffer(buf)

	put(*buf, h, body, p)
	return w.Write(*buf)
}

// singleByteReader adapts an io.Reader to io.ByteReader without reading
// ahead, so the body can still be read from the underlying reader.
type singleByteReader struct {
	r   io.Reader
	buf [1]byte
}

func (s *singleByteReader) ReadByte() (byte, error) {
	if _, err := io.ReadFull(s.r, s.buf[:]); err != nil {
		return 0, err
	}
	return s.buf[0], nil
}
