package mqttwire

// PublishPacket represents an MQTT PUBLISH packet. DUP, QoS and Retain live
// in the embedded FixedHeader.
type PublishPacket struct {
	FixedHeader

	// PacketID is on the wire only for QoS 1 and 2.
	PacketID uint16

	Topic string

	// Payload length is implicit: remaining length minus the variable header.
	// An empty payload decodes as nil.
	Payload []byte
}

// Type returns the packet type.
func (p *PublishPacket) Type() PacketType { return PacketPUBLISH }

// Header returns the fixed header.
func (p *PublishPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketPUBLISH) }

// GetPacketID returns the packet identifier.
func (p *PublishPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *PublishPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *PublishPacket) size() int {
	n := prefixedSize(len(p.Topic))
	if p.QoS > QoS0 {
		n += 2
	}
	return n + len(p.Payload)
}

func (p *PublishPacket) encodeBody(w *writer) {
	w.writeString(p.Topic)
	if p.QoS > QoS0 {
		w.writeUint16(p.PacketID)
	}
	w.writeBytes(p.Payload)
}

func (p *PublishPacket) decodeBody(r *reader) error {
	if p.QoS > QoS2 {
		return ErrInvalidQoS
	}

	var err error
	if p.Topic, _, err = r.readString(); err != nil {
		return err
	}

	if p.QoS > QoS0 {
		if p.PacketID, err = r.readUint16(); err != nil {
			return err
		}
	}

	if n := r.remaining(); n > 0 {
		if p.Payload, err = r.readBytes(n); err != nil {
			return err
		}
	}

	return nil
}

// Validate validates the packet contents.
func (p *PublishPacket) Validate() error {
	if err := p.Header().validate(PacketPUBLISH); err != nil {
		return err
	}
	if err := checkPrefixed(len(p.Topic)); err != nil {
		return err
	}
	if p.QoS > QoS0 {
		return checkPacketID(p.PacketID)
	}
	return nil
}
