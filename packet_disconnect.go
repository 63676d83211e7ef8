package mqttwire

// DisconnectPacket represents an MQTT DISCONNECT packet.
type DisconnectPacket struct {
	FixedHeader
}

// Type returns the packet type.
func (p *DisconnectPacket) Type() PacketType { return PacketDISCONNECT }

// Header returns the fixed header.
func (p *DisconnectPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketDISCONNECT) }

func (p *DisconnectPacket) size() int { return 0 }

func (p *DisconnectPacket) encodeBody(_ *writer) {}

func (p *DisconnectPacket) decodeBody(_ *reader) error { return nil }

// Validate validates the packet contents.
func (p *DisconnectPacket) Validate() error { return p.Header().validate(PacketDISCONNECT) }
