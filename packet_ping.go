package mqttwire

// PingreqPacket represents an MQTT PINGREQ packet.
type PingreqPacket struct {
	FixedHeader
}

// Type returns the packet type.
func (p *PingreqPacket) Type() PacketType { return PacketPINGREQ }

// Header returns the fixed header.
func (p *PingreqPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketPINGREQ) }

func (p *PingreqPacket) size() int { return 0 }

func (p *PingreqPacket) encodeBody(_ *writer) {}

func (p *PingreqPacket) decodeBody(_ *reader) error { return nil }

// Validate validates the packet contents.
func (p *PingreqPacket) Validate() error { return p.Header().validate(PacketPINGREQ) }

// PingrespPacket represents an MQTT PINGRESP packet.
type PingrespPacket struct {
	FixedHeader
}

// Type returns the packet type.
func (p *PingrespPacket) Type() PacketType { return PacketPINGRESP }

// Header returns the fixed header.
func (p *PingrespPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketPINGRESP) }

func (p *PingrespPacket) size() int { return 0 }

func (p *PingrespPacket) encodeBody(_ *writer) {}

func (p *PingrespPacket) decodeBody(_ *reader) error { return nil }

// Validate validates the packet contents.
func (p *PingrespPacket) Validate() error { return p.Header().validate(PacketPINGRESP) }
