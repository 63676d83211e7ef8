package mqttwire

const connackFlagSessionPresent = 0x01

// ConnackFlags is the CONNACK acknowledge flags byte: bit 0 is session
// present, bits 7-1 are reserved.
type ConnackFlags byte

// SessionPresent returns the session present bit.
func (f ConnackFlags) SessionPresent() bool {
	return f&connackFlagSessionPresent != 0
}

// Reserved returns bits 7-1.
func (f ConnackFlags) Reserved() byte {
	return byte(f) &^ connackFlagSessionPresent
}

// ConnackPacket represents an MQTT CONNACK packet.
type ConnackPacket struct {
	FixedHeader

	Flags      ConnackFlags
	ReturnCode ConnackCode
}

// Type returns the packet type.
func (p *ConnackPacket) Type() PacketType { return PacketCONNACK }

// Header returns the fixed header.
func (p *ConnackPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketCONNACK) }

// SessionPresent reports whether the server resumed a stored session.
func (p *ConnackPacket) SessionPresent() bool { return p.Flags.SessionPresent() }

func (p *ConnackPacket) size() int { return 2 }

func (p *ConnackPacket) encodeBody(w *writer) {
	w.writeUint8(byte(p.Flags))
	w.writeUint8(byte(p.ReturnCode))
}

func (p *ConnackPacket) decodeBody(r *reader) error {
	flags, err := r.readUint8()
	if err != nil {
		return err
	}
	rc, err := r.readUint8()
	if err != nil {
		return err
	}

	p.Flags = ConnackFlags(flags)
	p.ReturnCode = ConnackCode(rc)
	return nil
}

// Validate validates the packet contents.
func (p *ConnackPacket) Validate() error {
	if err := p.Header().validate(PacketCONNACK); err != nil {
		return err
	}
	// A refused connection never resumes a session.
	if !p.ReturnCode.Accepted() && p.Flags.SessionPresent() {
		return ErrMalformedPacket
	}
	return nil
}
