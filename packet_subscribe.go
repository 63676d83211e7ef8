package mqttwire

// Subscription is a (topic filter, requested QoS) tuple of a SUBSCRIBE.
type Subscription struct {
	Topic string
	QoS   byte
}

// SubscribePacket represents an MQTT SUBSCRIBE packet.
type SubscribePacket struct {
	FixedHeader

	PacketID      uint16
	Subscriptions []Subscription
}

// Type returns the packet type.
func (p *SubscribePacket) Type() PacketType { return PacketSUBSCRIBE }

// Header returns the fixed header.
func (p *SubscribePacket) Header() FixedHeader { return p.FixedHeader.withType(PacketSUBSCRIBE) }

// GetPacketID returns the packet identifier.
func (p *SubscribePacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *SubscribePacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *SubscribePacket) size() int {
	n := 2
	for _, s := range p.Subscriptions {
		n += prefixedSize(len(s.Topic)) + 1
	}
	return n
}

func (p *SubscribePacket) encodeBody(w *writer) {
	w.writeUint16(p.PacketID)
	for _, s := range p.Subscriptions {
		w.writeString(s.Topic)
		w.writeUint8(s.QoS)
	}
}

func (p *SubscribePacket) decodeBody(r *reader) error {
	var err error
	if p.PacketID, err = r.readUint16(); err != nil {
		return err
	}

	// The tuple count is implicit: read until the packet is consumed.
	p.Subscriptions = nil
	for r.remaining() > 0 {
		var s Subscription
		if s.Topic, _, err = r.readString(); err != nil {
			return err
		}
		if s.QoS, err = r.readUint8(); err != nil {
			return err
		}
		if s.QoS > QoS2 {
			return ErrInvalidQoS
		}
		p.Subscriptions = append(p.Subscriptions, s)
	}

	if len(p.Subscriptions) == 0 {
		return ErrMalformedPacket
	}
	return nil
}

// Validate validates the packet contents.
func (p *SubscribePacket) Validate() error {
	if err := p.Header().validate(PacketSUBSCRIBE); err != nil {
		return err
	}
	if err := checkPacketID(p.PacketID); err != nil {
		return err
	}
	if len(p.Subscriptions) == 0 {
		return ErrMalformedPacket
	}
	for _, s := range p.Subscriptions {
		if err := checkPrefixed(len(s.Topic)); err != nil {
			return err
		}
		if s.QoS > QoS2 {
			return ErrInvalidQoS
		}
	}
	return nil
}
