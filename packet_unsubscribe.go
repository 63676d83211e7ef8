package mqttwire

// UnsubscribePacket represents an MQTT UNSUBSCRIBE packet.
type UnsubscribePacket struct {
	FixedHeader

	PacketID uint16
	Topics   []string
}

// Type returns the packet type.
func (p *UnsubscribePacket) Type() PacketType { return PacketUNSUBSCRIBE }

// Header returns the fixed header.
func (p *UnsubscribePacket) Header() FixedHeader {
	return p.FixedHeader.withType(PacketUNSUBSCRIBE)
}

// GetPacketID returns the packet identifier.
func (p *UnsubscribePacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *UnsubscribePacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *UnsubscribePacket) size() int {
	n := 2
	for _, t := range p.Topics {
		n += prefixedSize(len(t))
	}
	return n
}

func (p *UnsubscribePacket) encodeBody(w *writer) {
	w.writeUint16(p.PacketID)
	for _, t := range p.Topics {
		w.writeString(t)
	}
}

func (p *UnsubscribePacket) decodeBody(r *reader) error {
	var err error
	if p.PacketID, err = r.readUint16(); err != nil {
		return err
	}

	p.Topics = nil
	for r.remaining() > 0 {
		topic, _, err := r.readString()
		if err != nil {
			return err
		}
		p.Topics = append(p.Topics, topic)
	}

	if len(p.Topics) == 0 {
		return ErrMalformedPacket
	}
	return nil
}

// Validate validates the packet contents.
func (p *UnsubscribePacket) Validate() error {
	if err := p.Header().validate(PacketUNSUBSCRIBE); err != nil {
		return err
	}
	if err := checkPacketID(p.PacketID); err != nil {
		return err
	}
	if len(p.Topics) == 0 {
		return ErrMalformedPacket
	}
	for _, t := range p.Topics {
		if err := checkPrefixed(len(t)); err != nil {
			return err
		}
	}
	return nil
}
