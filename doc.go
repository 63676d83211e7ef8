// Package mqttwire is a wire-format codec for MQTT 3.1.1 control packets.
//
// It turns raw bytes into typed packets and back, and nothing else: sockets,
// sessions, QoS retry state, topic matching and authentication belong to the
// caller.
//
// # Packets
//
// Every packet type has its own struct embedding FixedHeader:
//
//   - ConnectPacket, ConnackPacket: connection establishment
//   - PublishPacket: message delivery
//   - AckPacket: PUBACK, PUBREC, PUBREL, PUBCOMP and UNSUBACK
//   - SubscribePacket, SubackPacket: topic subscription
//   - UnsubscribePacket: topic unsubscription
//   - PingreqPacket, PingrespPacket: keep-alive
//   - DisconnectPacket: connection termination
//
// The Packet interface is closed, so a type switch over these types is
// exhaustive.
//
// # Buffers
//
// Decode takes a parsed header, the remaining length and the bytes that
// follow the fixed header. Unpack does the whole packet:
//
//	pkt, n, err := mqttwire.Unpack(buf)
//
// Encode allocates a buffer sized exactly to the packet:
//
//	pub, _ := mqttwire.NewPublish(mqttwire.PublishByte|0x02, 7, "sensors/t1", payload)
//	out, err := mqttwire.Encode(pub)
//
// Decoded packets own copies of all their variable-length fields; encoding
// never modifies the packet.
//
// # Streams
//
// ReadPacket and WritePacket frame packets on an io.Reader or io.Writer.
// Decoder and Encoder add size limits, logging and metrics:
//
//	dec := mqttwire.NewDecoder(conn,
//	    mqttwire.WithMaxPacketSize(64*1024),
//	    mqttwire.WithLogger(mqttwire.NewLogrusLogger(os.Stderr, mqttwire.LogLevelDebug)),
//	)
//	for {
//	    pkt, err := dec.Decode()
//	    ...
//	}
//
// # Errors
//
// Every failure wraps a sentinel such as ErrTruncated, ErrMalformedLength,
// ErrInvalidPacketType or ErrInvalidQoS. Match them with errors.Is. No
// partially decoded packet is ever returned.
package mqttwire
