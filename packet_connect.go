package mqttwire

// CONNECT protocol names.
const (
	ProtocolNameMQTT   = "MQTT"   // protocol level 4 (MQTT 3.1.1)
	ProtocolNameMQIsdp = "MQIsdp" // protocol level 3 (MQTT 3.1)

	ProtocolLevel311 byte = 4
	ProtocolLevel31  byte = 3
)

// Connect flag bit positions.
const (
	connectFlagReserved   = 0x01
	connectFlagClean      = 0x02
	connectFlagWill       = 0x04
	connectFlagWillQoS    = 0x18
	connectFlagWillQoSPos = 3
	connectFlagWillRetain = 0x20
	connectFlagPassword   = 0x40
	connectFlagUsername   = 0x80
)

// ConnectFlags is the CONNECT variable header flags byte.
type ConnectFlags byte

func (f ConnectFlags) has(bit byte) bool { return byte(f)&bit != 0 }

func (f *ConnectFlags) set(bit byte, on bool) {
	if on {
		*f |= ConnectFlags(bit)
	} else {
		*f &^= ConnectFlags(bit)
	}
}

// Reserved returns the reserved bit, which must be zero on the wire.
func (f ConnectFlags) Reserved() bool { return f.has(connectFlagReserved) }

// CleanSession returns the clean session bit.
func (f ConnectFlags) CleanSession() bool { return f.has(connectFlagClean) }

// Will returns the will flag.
func (f ConnectFlags) Will() bool { return f.has(connectFlagWill) }

// WillQoS returns the two will QoS bits.
func (f ConnectFlags) WillQoS() byte {
	return (byte(f) & connectFlagWillQoS) >> connectFlagWillQoSPos
}

// WillRetain returns the will retain bit.
func (f ConnectFlags) WillRetain() bool { return f.has(connectFlagWillRetain) }

// Password returns the password flag.
func (f ConnectFlags) Password() bool { return f.has(connectFlagPassword) }

// Username returns the username flag.
func (f ConnectFlags) Username() bool { return f.has(connectFlagUsername) }

// SetCleanSession sets the clean session bit.
func (f *ConnectFlags) SetCleanSession(on bool) { f.set(connectFlagClean, on) }

// SetWill sets the will flag.
func (f *ConnectFlags) SetWill(on bool) { f.set(connectFlagWill, on) }

// SetWillQoS sets the will QoS bits.
func (f *ConnectFlags) SetWillQoS(qos byte) {
	*f = ConnectFlags(byte(*f)&^connectFlagWillQoS | (qos<<connectFlagWillQoSPos)&connectFlagWillQoS)
}

// SetWillRetain sets the will retain bit.
func (f *ConnectFlags) SetWillRetain(on bool) { f.set(connectFlagWillRetain, on) }

// SetPassword sets the password flag.
func (f *ConnectFlags) SetPassword(on bool) { f.set(connectFlagPassword, on) }

// SetUsername sets the username flag.
func (f *ConnectFlags) SetUsername(on bool) { f.set(connectFlagUsername, on) }

// ConnectPacket represents an MQTT CONNECT packet.
//
// Flags decides which optional payload fields are on the wire: WillTopic and
// WillMessage iff Will, Username iff Username, Password iff Password. Fields
// whose flag is clear are ignored on encode and left empty on decode.
type ConnectPacket struct {
	FixedHeader

	// ProtocolName defaults to "MQTT" when empty. The default is written
	// on encode, so a decoded packet always carries the name.
	ProtocolName string

	// ProtocolLevel defaults to 4 when zero, or 3 for "MQIsdp".
	ProtocolLevel byte

	Flags     ConnectFlags
	KeepAlive uint16 // seconds
	ClientID  string

	WillTopic   string
	WillMessage []byte
	Username    string
	Password    []byte
}

// Type returns the packet type.
func (p *ConnectPacket) Type() PacketType { return PacketCONNECT }

// Header returns the fixed header.
func (p *ConnectPacket) Header() FixedHeader { return p.FixedHeader.withType(PacketCONNECT) }

func (p *ConnectPacket) protocol() (string, byte) {
	name, level := p.ProtocolName, p.ProtocolLevel
	if name == "" {
		name = ProtocolNameMQTT
	}
	if level == 0 {
		if name == ProtocolNameMQIsdp {
			level = ProtocolLevel31
		} else {
			level = ProtocolLevel311
		}
	}
	return name, level
}

func (p *ConnectPacket) size() int {
	name, _ := p.protocol()

	n := prefixedSize(len(name)) + 1 + 1 + 2 // name, level, flags, keep alive
	n += prefixedSize(len(p.ClientID))
	if p.Flags.Will() {
		n += prefixedSize(len(p.WillTopic))
		n += prefixedSize(len(p.WillMessage))
	}
	if p.Flags.Username() {
		n += prefixedSize(len(p.Username))
	}
	if p.Flags.Password() {
		n += prefixedSize(len(p.Password))
	}
	return n
}

func (p *ConnectPacket) encodeBody(w *writer) {
	name, level := p.protocol()

	w.writeString(name)
	w.writeUint8(level)
	w.writeUint8(byte(p.Flags))
	w.writeUint16(p.KeepAlive)

	w.writeString(p.ClientID)
	if p.Flags.Will() {
		w.writeString(p.WillTopic)
		w.writeBinary(p.WillMessage)
	}
	if p.Flags.Username() {
		w.writeString(p.Username)
	}
	if p.Flags.Password() {
		w.writeBinary(p.Password)
	}
}

func (p *ConnectPacket) decodeBody(r *reader) error {
	var err error

	if p.ProtocolName, _, err = r.readString(); err != nil {
		return err
	}
	if p.ProtocolLevel, err = r.readUint8(); err != nil {
		return err
	}
	if !supportedProtocol(p.ProtocolName, p.ProtocolLevel) {
		return ErrProtocolName
	}

	flags, err := r.readUint8()
	if err != nil {
		return err
	}
	p.Flags = ConnectFlags(flags)
	if err := p.Flags.validate(); err != nil {
		return err
	}

	if p.KeepAlive, err = r.readUint16(); err != nil {
		return err
	}

	if p.ClientID, _, err = r.readString(); err != nil {
		return err
	}

	if p.Flags.Will() {
		if p.WillTopic, _, err = r.readString(); err != nil {
			return err
		}
		if p.WillMessage, _, err = r.readBinary(); err != nil {
			return err
		}
	}

	if p.Flags.Username() {
		if p.Username, _, err = r.readString(); err != nil {
			return err
		}
	}

	if p.Flags.Password() {
		if p.Password, _, err = r.readBinary(); err != nil {
			return err
		}
	}

	return nil
}

func (f ConnectFlags) validate() error {
	if f.Reserved() {
		return ErrMalformedPacket
	}
	if f.WillQoS() > QoS2 {
		return ErrInvalidQoS
	}
	if !f.Will() && (f.WillQoS() != 0 || f.WillRetain()) {
		return ErrMalformedPacket
	}
	return nil
}

func supportedProtocol(name string, level byte) bool {
	switch name {
	case ProtocolNameMQTT:
		return level == ProtocolLevel311
	case ProtocolNameMQIsdp:
		return level == ProtocolLevel31
	default:
		return false
	}
}

// Validate validates the packet contents.
func (p *ConnectPacket) Validate() error {
	if err := p.Header().validate(PacketCONNECT); err != nil {
		return err
	}
	if name, level := p.protocol(); !supportedProtocol(name, level) {
		return ErrProtocolName
	}
	if err := p.Flags.validate(); err != nil {
		return err
	}

	for _, n := range []int{len(p.ClientID), len(p.WillTopic), len(p.WillMessage), len(p.Username), len(p.Password)} {
		if err := checkPrefixed(n); err != nil {
			return err
		}
	}

	return nil
}
