package mqttwire

import (
	"encoding/binary"
)

const maxUint16 = 65535

// reader is a cursor over a byte slice holding the variable header and
// payload of a single packet. Every read advances pos and fails with
// ErrTruncated instead of reading past the end of buf.
type reader struct {
	buf []byte
	pos int
}

func newReader(buf []byte) *reader {
	return &reader{buf: buf}
}

// remaining returns the number of unread bytes.
func (r *reader) remaining() int {
	return len(r.buf) - r.pos
}

func (r *reader) need(n int) error {
	if n < 0 || r.remaining() < n {
		return ErrTruncated
	}
	return nil
}

func (r *reader) readUint8() (byte, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) readUint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) readUint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

// readBytes copies the next n bytes into a newly allocated slice.
func (r *reader) readBytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.pos:r.pos+n])
	r.pos += n
	return out, nil
}

// readBinary reads a 2-byte length prefix followed by that many bytes.
// A zero length yields a nil slice and no allocation.
func (r *reader) readBinary() ([]byte, int, error) {
	length, err := r.readUint16()
	if err != nil {
		return nil, 0, err
	}
	if length == 0 {
		return nil, 0, nil
	}
	data, err := r.readBytes(int(length))
	if err != nil {
		return nil, 0, err
	}
	return data, int(length), nil
}

// readString is readBinary for textual fields.
func (r *reader) readString() (string, int, error) {
	length, err := r.readUint16()
	if err != nil {
		return "", 0, err
	}
	if length == 0 {
		return "", 0, nil
	}
	if err := r.need(int(length)); err != nil {
		return "", 0, err
	}
	s := string(r.buf[r.pos : r.pos+int(length)])
	r.pos += int(length)
	return s, int(length), nil
}

// writer writes at pos into a buffer sized by the caller beforehand.
// Sizes are computed by Packet.size, so writes never grow buf.
type writer struct {
	buf []byte
	pos int
}

func (w *writer) writeUint8(v byte) {
	w.buf[w.pos] = v
	w.pos++
}

func (w *writer) writeUint16(v uint16) {
	binary.BigEndian.PutUint16(w.buf[w.pos:], v)
	w.pos += 2
}

func (w *writer) writeUint32(v uint32) {
	binary.BigEndian.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

func (w *writer) writeBytes(p []byte) {
	w.pos += copy(w.buf[w.pos:], p)
}

func (w *writer) writeBinary(p []byte) {
	w.writeUint16(uint16(len(p)))
	w.writeBytes(p)
}

func (w *writer) writeString(s string) {
	w.writeUint16(uint16(len(s)))
	w.pos += copy(w.buf[w.pos:], s)
}

// prefixedSize returns the on-wire size of a length-prefixed field.
func prefixedSize(n int) int {
	return 2 + n
}

func checkPrefixed(n int) error {
	if n > maxUint16 {
		return ErrStringTooLong
	}
	return nil
}
