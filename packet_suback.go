package mqttwire

// SubackPacket represents an MQTT SUBACK packet: one return code per
// subscription of the SUBSCRIBE it acknowledges, in the same order.
type SubackPacket struct {
	FixedHeader

	PacketID    uint16
	ReturnCodes []SubackCode
}

// Type returns the packet type.
func (p *SubackPacket) Type() PacketType { return PacketSUBACK }

// Header returns the fixed header.
func (p *SubackPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketSUBACK) }

// GetPacketID returns the packet identifier.
func (p *SubackPacket) GetPacketID() uint16 { return p.PacketID }

// SetPacketID sets the packet identifier.
func (p *SubackPacket) SetPacketID(id uint16) { p.PacketID = id }

func (p *SubackPacket) size() int { return 2 + len(p.ReturnCodes) }

func (p *SubackPacket) encodeBody(w *writer) {
	w.writeUint16(p.PacketID)
	for _, rc := range p.ReturnCodes {
		w.writeUint8(byte(rc))
	}
}

func (p *SubackPacket) decodeBody(r *reader) error {
	var err error
	if p.PacketID, err = r.readUint16(); err != nil {
		return err
	}

	n := r.remaining()
	if n == 0 {
		return ErrMalformedPacket
	}

	p.ReturnCodes = make([]SubackCode, 0, n)
	for r.remaining() > 0 {
		b, err := r.readUint8()
		if err != nil {
			return err
		}
		rc := SubackCode(b)
		if !rc.Valid() {
			return ErrInvalidReturnCode
		}
		p.ReturnCodes = append(p.ReturnCodes, rc)
	}
	return nil
}

// Validate validates the packet contents.
func (p *SubackPacket) Validate() error {
	if err := p.Header().validate(PacketSUBACK); err != nil {
		return err
	}
	if err := checkPacketID(p.PacketID); err != nil {
		return err
	}
	if len(p.ReturnCodes) == 0 {
		return ErrMalformedPacket
	}
	for _, rc := range p.ReturnCodes {
		if !rc.Valid() {
			return ErrInvalidReturnCode
		}
	}
	return nil
}
