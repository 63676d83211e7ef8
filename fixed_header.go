package mqttwire

// PacketType represents an MQTT control packet type.
type PacketType byte

// MQTT 3.1.1 control packet types.
const (
	PacketCONNECT     PacketType = 1
	PacketCONNACK     PacketType = 2
	PacketPUBLISH     PacketType = 3
	PacketPUBACK      PacketType = 4
	PacketPUBREC      PacketType = 5
	PacketPUBREL      PacketType = 6
	PacketPUBCOMP     PacketType = 7
	PacketSUBSCRIBE   PacketType = 8
	PacketSUBACK      PacketType = 9
	PacketUNSUBSCRIBE PacketType = 10
	PacketUNSUBACK    PacketType = 11
	PacketPINGREQ     PacketType = 12
	PacketPINGRESP    PacketType = 13
	PacketDISCONNECT  PacketType = 14
)

// String returns the string representation of the packet type.
func (p PacketType) String() string {
	switch p {
	case PacketCONNECT:
		return "CONNECT"
	case PacketCONNACK:
		return "CONNACK"
	case PacketPUBLISH:
		return "PUBLISH"
	case PacketPUBACK:
		return "PUBACK"
	case PacketPUBREC:
		return "PUBREC"
	case PacketPUBREL:
		return "PUBREL"
	case PacketPUBCOMP:
		return "PUBCOMP"
	case PacketSUBSCRIBE:
		return "SUBSCRIBE"
	case PacketSUBACK:
		return "SUBACK"
	case PacketUNSUBSCRIBE:
		return "UNSUBSCRIBE"
	case PacketUNSUBACK:
		return "UNSUBACK"
	case PacketPINGREQ:
		return "PINGREQ"
	case PacketPINGRESP:
		return "PINGRESP"
	case PacketDISCONNECT:
		return "DISCONNECT"
	default:
		return "UNKNOWN"
	}
}

// Valid returns true if the packet type is valid.
func (p PacketType) Valid() bool {
	return p >= PacketCONNECT && p <= PacketDISCONNECT
}

// Fixed header byte layout.
const (
	headerTypeShift = 4
	headerFlagsMask = 0x0F
	headerDUPBit    = 0x08
	headerQoSMask   = 0x06
	headerQoSShift  = 1
	headerRetainBit = 0x01
)

// QoS levels.
const (
	QoS0 byte = 0 // at most once
	QoS1 byte = 1 // at least once
	QoS2 byte = 2 // exactly once
)

// FixedHeader is the first byte of every MQTT control packet.
// The remaining length that follows it on the wire is not part of the
// struct: it is consumed by decode and recomputed by encode.
type FixedHeader struct {
	PacketType PacketType
	DUP        bool
	QoS        byte
	Retain     bool
}

// ParseFixedHeader splits a header byte into its bit fields.
func ParseFixedHeader(b byte) (FixedHeader, error) {
	h := FixedHeader{
		PacketType: PacketType(b >> headerTypeShift),
		DUP:        b&headerDUPBit != 0,
		QoS:        (b & headerQoSMask) >> headerQoSShift,
		Retain:     b&headerRetainBit != 0,
	}

	if !h.PacketType.Valid() {
		return h, ErrInvalidPacketType
	}
	if h.QoS > QoS2 {
		return h, ErrInvalidQoS
	}

	return h, nil
}

// Byte packs the header into its wire representation.
func (h FixedHeader) Byte() byte {
	b := byte(h.PacketType)<<headerTypeShift | (h.QoS<<headerQoSShift)&headerQoSMask
	if h.DUP {
		b |= headerDUPBit
	}
	if h.Retain {
		b |= headerRetainBit
	}
	return b
}

// Flags returns the low nibble of the header byte.
func (h FixedHeader) Flags() byte {
	return h.Byte() & headerFlagsMask
}

// Type returns the packet type.
func (h FixedHeader) Type() PacketType {
	return h.PacketType
}

// withType fills in t and its reserved flags when the header was left zero.
func (h FixedHeader) withType(t PacketType) FixedHeader {
	if h.PacketType != 0 {
		return h
	}
	if h == (FixedHeader{}) {
		return defaultHeader(t)
	}
	h.PacketType = t
	return h
}

// validate checks the header against the type the packet variant expects.
func (h FixedHeader) validate(want ...PacketType) error {
	if !h.PacketType.Valid() {
		return ErrInvalidPacketType
	}
	ok := false
	for _, t := range want {
		if h.PacketType == t {
			ok = true
			break
		}
	}
	if !ok {
		return ErrInvalidPacketType
	}
	if h.QoS > QoS2 {
		return ErrInvalidQoS
	}
	return nil
}

// requiredFlags returns the flag nibble MQTT 3.1.1 reserves for t.
// PUBLISH carries variable flags and reports ok=false.
func requiredFlags(t PacketType) (flags byte, ok bool) {
	switch t {
	case PacketPUBLISH:
		return 0, false
	case PacketPUBREL, PacketSUBSCRIBE, PacketUNSUBSCRIBE:
		return 0x02, true
	default:
		return 0x00, true
	}
}

// ValidateFlags reports whether the flag nibble matches MQTT 3.1.1 rules.
func (h FixedHeader) ValidateFlags() error {
	if !h.PacketType.Valid() {
		return ErrInvalidPacketType
	}

	if want, ok := requiredFlags(h.PacketType); ok {
		if h.Flags() != want {
			return ErrInvalidFlags
		}
		return nil
	}

	if h.QoS > QoS2 {
		return ErrInvalidQoS
	}
	if h.DUP && h.QoS == QoS0 {
		return ErrInvalidFlags
	}
	return nil
}

// NewHeader returns the bare fixed header described by the header byte b.
func NewHeader(b byte) (FixedHeader, error) {
	return ParseFixedHeader(b)
}

// defaultHeader returns the header for t with its reserved flags set.
func defaultHeader(t PacketType) FixedHeader {
	h := FixedHeader{PacketType: t}
	if flags, ok := requiredFlags(t); ok && flags == 0x02 {
		h.QoS = QoS1
	}
	return h
}
