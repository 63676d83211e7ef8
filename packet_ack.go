package mqttwire

// AckPacket is the shared shape of PUBACK, PUBREC, PUBREL, PUBCOMP and
// UNSUBACK: a fixed header and a packet identifier. The header's type
// tells them apart.
type AckPacket struct {
	FixedHeader

	PacketID uint16
}

var ackTypes = []PacketType{PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP, PacketUNSUBACK}

// IsAck reports whether t has the AckPacket shape.
func IsAck(t PacketType) bool {
	switch t {
	case PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP, PacketUNSUBACK:
		return true
	default:
		return false
	}
}

// Type returns the packet type carried in the header.
func (p *AckPacket) Type() PacketType { return p.PacketType }

// Header returns the fixed header.
func (p *AckPacket) Header() FixedHeader { return p.FixedHeader }

// GetPacketID returns the packet identifier.
func (p *AckPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *AckPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *AckPacket) size() int { return 2 }

func (p *AckPacket) encodeBody(w *writer) {
	w.writeUint16(p.PacketID)
}

func (p *AckPacket) decodeBody(r *reader) error {
	var err error
	p.PacketID, err = r.readUint16()
	return err
}

// Validate validates the packet contents.
func (p *AckPacket) Validate() error {
	if err := p.FixedHeader.validate(ackTypes...); err != nil {
		return err
	}
	return checkPacketID(p.PacketID)
}
