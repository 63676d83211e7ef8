package mqttwire

// Packet is implemented by the fourteen MQTT 3.1.1 control packets.
// The set is closed: the unexported methods keep other packages from adding
// variants, so a type switch over the concrete types is exhaustive.
type Packet interface {
	// Type returns the packet type.
	Type() PacketType

	// Header returns the fixed header the packet encodes with.
	Header() FixedHeader

	// Validate validates the packet contents.
	Validate() error

	// size returns the remaining length: variable header plus payload.
	size() int

	// encodeBody writes the variable header and payload.
	encodeBody(w *writer)

	// decodeBody reads the variable header and payload. The reader holds
	// exactly the remaining length of the packet.
	decodeBody(r *reader) error
}

// PacketWithID is implemented by packets that have a packet identifier.
type PacketWithID interface {
	Packet

	// GetPacketID returns the packet identifier.
	GetPacketID() uint16

	// SetPacketID sets the packet identifier.
	SetPacketID(id uint16)
}

// newPacket returns an empty packet of the variant selected by h.
func newPacket(h FixedHeader) (Packet, error) {
	switch h.PacketType {
	case PacketCONNECT:
		return &ConnectPacket{FixedHeader: h}, nil
	case PacketCONNACK:
		return &ConnackPacket{FixedHeader: h}, nil
	case PacketPUBLISH:
		return &PublishPacket{FixedHeader: h}, nil
	case PacketPUBACK, PacketPUBREC, PacketPUBREL, PacketPUBCOMP, PacketUNSUBACK:
		return &AckPacket{FixedHeader: h}, nil
	case PacketSUBSCRIBE:
		return &SubscribePacket{FixedHeader: h}, nil
	case PacketSUBACK:
		return &SubackPacket{FixedHeader: h}, nil
	case PacketUNSUBSCRIBE:
		return &UnsubscribePacket{FixedHeader: h}, nil
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

// checkPacketID rejects the zero packet identifier MQTT reserves.
func checkPacketID(id uint16) error {
	if id == 0 {
		return ErrPacketIDRequired
	}
	return nil
}
