package mqttwire

import (
	"errors"
	"fmt"
)

// Codec errors. Decode and encode wrap them with the packet type, so match
// with errors.Is.
var (
	ErrTruncated         = errors.New("mqttwire: buffer truncated")
	ErrMalformedLength   = errors.New("mqttwire: malformed remaining length")
	ErrInvalidPacketType = errors.New("mqttwire: invalid packet type")
	ErrInvalidQoS        = errors.New("mqttwire: invalid QoS level")
	ErrAllocationFailure = errors.New("mqttwire: allocation failure")

	ErrMalformedPacket   = errors.New("mqttwire: malformed packet")
	ErrInvalidFlags      = errors.New("mqttwire: invalid fixed header flags")
	ErrStringTooLong     = errors.New("mqttwire: field exceeds 65535 bytes")
	ErrPacketIDRequired  = errors.New("mqttwire: packet identifier required")
	ErrProtocolName      = errors.New("mqttwire: unsupported protocol name or level")
)

// ErrPacketTooLarge is returned when a packet exceeds the configured maximum
// size. It matches ErrAllocationFailure.
var ErrPacketTooLarge = fmt.Errorf("%w: packet exceeds maximum size", ErrAllocationFailure)

// ErrInvalidReturnCode is returned for a SUBACK return code outside 0x00,
// 0x01, 0x02 and 0x80. It matches ErrInvalidQoS.
var ErrInvalidReturnCode = fmt.Errorf("%w: invalid return code", ErrInvalidQoS)

func decodeError(t PacketType, err error) error {
	return fmt.Errorf("decode %s: %w", t, err)
}

func encodeError(t PacketType, err error) error {
	return fmt.Errorf("encode %s: %w", t, err)
}
