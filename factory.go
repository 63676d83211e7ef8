package mqttwire

// Stub header bytes for replies. PUBREL carries the 0x2 flag nibble MQTT
// 3.1.1 requires.
const (
	ConnackByte    byte = 0x20
	PublishByte    byte = 0x30
	PubackByte     byte = 0x40
	PubrecByte     byte = 0x50
	PubrelByte     byte = 0x62
	PubcompByte    byte = 0x70
	SubackByte     byte = 0x90
	UnsubackByte   byte = 0xB0
	PingreqByte    byte = 0xC0
	PingrespByte   byte = 0xD0
	DisconnectByte byte = 0xE0
)

func headerOf(b byte, want PacketType) (FixedHeader, error) {
	h, err := ParseFixedHeader(b)
	if err != nil {
		return h, err
	}
	if h.PacketType != want {
		return h, ErrInvalidPacketType
	}
	return h, nil
}

// NewHeaderPacket returns a header-only packet (PINGREQ, PINGRESP or
// DISCONNECT) for the header byte b.
func NewHeaderPacket(b byte) (Packet, error) {
	h, err := ParseFixedHeader(b)
	if err != nil {
		return nil, err
	}

	switch h.PacketType {
	case PacketPINGREQ:
		return &PingreqPacket{FixedHeader: h}, nil
	case PacketPINGRESP:
		return &PingrespPacket{FixedHeader: h}, nil
	case PacketDISCONNECT:
		return &DisconnectPacket{FixedHeader: h}, nil
	default:
		return nil, ErrInvalidPacketType
	}
}

// NewAck returns a PUBACK, PUBREC, PUBREL, PUBCOMP or UNSUBACK, selected by
// the header byte b.
func NewAck(b byte, packetID uint16) (*AckPacket, error) {
	h, err := ParseFixedHeader(b)
	if err != nil {
		return nil, err
	}
	if !IsAck(h.PacketType) {
		return nil, ErrInvalidPacketType
	}
	return &AckPacket{FixedHeader: h, PacketID: packetID}, nil
}

// NewConnack returns a CONNACK.
func NewConnack(b byte, sessionPresent bool, rc ConnackCode) (*ConnackPacket, error) {
	h, err := headerOf(b, PacketCONNACK)
	if err != nil {
		return nil, err
	}

	p := &ConnackPacket{FixedHeader: h, ReturnCode: rc}
	if sessionPresent {
		p.Flags = connackFlagSessionPresent
	}
	return p, nil
}

// NewSuback returns a SUBACK. The packet takes ownership of rcs; the caller
// must not modify it afterwards.
func NewSuback(b byte, packetID uint16, rcs []SubackCode) (*SubackPacket, error) {
	h, err := headerOf(b, PacketSUBACK)
	if err != nil {
		return nil, err
	}
	return &SubackPacket{FixedHeader: h, PacketID: packetID, ReturnCodes: rcs}, nil
}

// NewPublish returns a PUBLISH. DUP, QoS and Retain come from the header
// byte b. The packet takes ownership of payload; the caller must not modify
// it afterwards.
func NewPublish(b byte, packetID uint16, topic string, payload []byte) (*PublishPacket, error) {
	h, err := headerOf(b, PacketPUBLISH)
	if err != nil {
		return nil, err
	}
	return &PublishPacket{FixedHeader: h, PacketID: packetID, Topic: topic, Payload: payload}, nil
}

// Release drops every variable-length field p owns so the packet keeps no
// buffer alive. The scalar fields and header are left in place. Header-only
// and ack packets own nothing and are left untouched.
//
// A released packet must not be encoded again.
func Release(p Packet) {
	switch pkt := p.(type) {
	case *ConnectPacket:
		pkt.ProtocolName = ""
		pkt.ClientID = ""
		pkt.WillTopic = ""
		pkt.WillMessage = nil
		pkt.Username = ""
		pkt.Password = nil
	case *PublishPacket:
		pkt.Topic = ""
		pkt.Payload = nil
	case *SubscribePacket:
		pkt.Subscriptions = nil
	case *SubackPacket:
		pkt.ReturnCodes = nil
	case *UnsubscribePacket:
		pkt.Topics = nil
	case *ConnackPacket, *AckPacket, *PingreqPacket, *PingrespPacket, *DisconnectPacket, nil:
	}
}
