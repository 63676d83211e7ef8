package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/vitalvas/mqttwire"
	"github.com/vmihailenco/msgpack/v5"
)

type subscriptionRecord struct {
	Topic string `msgpack:"topic"`
	QoS   byte   `msgpack:"qos"`
}

// record is the decoded form of one packet, as written by -format msgpack.
type record struct {
	Offset int64  `msgpack:"offset"`
	Type   string `msgpack:"type"`
	Header byte   `msgpack:"header"`
	DUP    bool   `msgpack:"dup,omitempty"`
	QoS    byte   `msgpack:"qos,omitempty"`
	Retain bool   `msgpack:"retain,omitempty"`

	PacketID uint16 `msgpack:"packet_id,omitempty"`
	Topic    string `msgpack:"topic,omitempty"`
	Payload  []byte `msgpack:"payload,omitempty"`

	ClientID     string `msgpack:"client_id,omitempty"`
	Protocol     string `msgpack:"protocol,omitempty"`
	KeepAlive    uint16 `msgpack:"keep_alive,omitempty"`
	CleanSession bool   `msgpack:"clean_session,omitempty"`
	WillTopic    string `msgpack:"will_topic,omitempty"`
	WillMessage  []byte `msgpack:"will_message,omitempty"`
	Username     string `msgpack:"username,omitempty"`
	HasPassword  bool   `msgpack:"has_password,omitempty"`

	SessionPresent bool   `msgpack:"session_present,omitempty"`
	ReturnCode     byte   `msgpack:"return_code,omitempty"`
	ReturnCodes    []byte `msgpack:"return_codes,omitempty"`

	Subscriptions []subscriptionRecord `msgpack:"subscriptions,omitempty"`
	Topics        []string             `msgpack:"topics,omitempty"`
}

func newRecord(offset int64, p mqttwire.Packet) record {
	h := p.Header()
	rec := record{
		Offset: offset,
		Type:   p.Type().String(),
		Header: h.Byte(),
		DUP:    h.DUP,
		QoS:    h.QoS,
		Retain: h.Retain,
	}

	switch pkt := p.(type) {
	case *mqttwire.ConnectPacket:
		rec.ClientID = pkt.ClientID
		rec.Protocol = fmt.Sprintf("%s/%d", pkt.ProtocolName, pkt.ProtocolLevel)
		rec.KeepAlive = pkt.KeepAlive
		rec.CleanSession = pkt.Flags.CleanSession()
		rec.WillTopic = pkt.WillTopic
		rec.WillMessage = pkt.WillMessage
		rec.Username = pkt.Username
		rec.HasPassword = pkt.Flags.Password()
	case *mqttwire.ConnackPacket:
		rec.SessionPresent = pkt.SessionPresent()
		rec.ReturnCode = byte(pkt.ReturnCode)
	case *mqttwire.PublishPacket:
		rec.PacketID = pkt.PacketID
		rec.Topic = pkt.Topic
		rec.Payload = pkt.Payload
	case *mqttwire.AckPacket:
		rec.PacketID = pkt.PacketID
	case *mqttwire.SubscribePacket:
		rec.PacketID = pkt.PacketID
		for _, s := range pkt.Subscriptions {
			rec.Subscriptions = append(rec.Subscriptions, subscriptionRecord{Topic: s.Topic, QoS: s.QoS})
		}
	case *mqttwire.SubackPacket:
		rec.PacketID = pkt.PacketID
		for _, rc := range pkt.ReturnCodes {
			rec.ReturnCodes = append(rec.ReturnCodes, byte(rc))
		}
	case *mqttwire.UnsubscribePacket:
		rec.PacketID = pkt.PacketID
		rec.Topics = pkt.Topics
	case *mqttwire.PingreqPacket, *mqttwire.PingrespPacket, *mqttwire.DisconnectPacket:
	}

	return rec
}

func (r record) text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%08d %-11s hdr=0x%02x", r.Offset, r.Type, r.Header)

	if r.Type == mqttwire.PacketPUBLISH.String() {
		fmt.Fprintf(&b, " dup=%t qos=%d retain=%t", r.DUP, r.QoS, r.Retain)
	}
	if r.PacketID != 0 {
		fmt.Fprintf(&b, " id=%d", r.PacketID)
	}
	if r.Type == mqttwire.PacketCONNECT.String() {
		fmt.Fprintf(&b, " proto=%s client=%q keepalive=%d clean=%t", r.Protocol, r.ClientID, r.KeepAlive, r.CleanSession)
	}
	if r.WillTopic != "" {
		fmt.Fprintf(&b, " will=%q(%d bytes)", r.WillTopic, len(r.WillMessage))
	}
	if r.Username != "" {
		fmt.Fprintf(&b, " user=%q", r.Username)
	}
	if r.HasPassword {
		b.WriteString(" password=***")
	}
	if r.Type == mqttwire.PacketCONNACK.String() {
		fmt.Fprintf(&b, " session_present=%t rc=%d", r.SessionPresent, r.ReturnCode)
	}
	if r.Topic != "" {
		fmt.Fprintf(&b, " topic=%q payload=%d bytes", r.Topic, len(r.Payload))
	}
	for _, s := range r.Subscriptions {
		fmt.Fprintf(&b, " sub=%q/%d", s.Topic, s.QoS)
	}
	for _, t := range r.Topics {
		fmt.Fprintf(&b, " unsub=%q", t)
	}
	if len(r.ReturnCodes) > 0 {
		fmt.Fprintf(&b, " rcs=%v", r.ReturnCodes)
	}

	return b.String()
}

// decodeHex turns a hex dump into bytes, ignoring whitespace and an
// optional 0x prefix per token.
func decodeHex(data []byte) ([]byte, error) {
	fields := strings.Fields(string(data))
	for i, f := range fields {
		fields[i] = strings.TrimPrefix(strings.TrimPrefix(f, "0x"), "0X")
	}
	return hex.DecodeString(strings.Join(fields, ""))
}

type dumper struct {
	cfg     dumpConfig
	logger  mqttwire.Logger
	out     io.Writer
	enc     *msgpack.Encoder
	metrics *mqttwire.MemoryMetrics
}

func newDumper(cfg dumpConfig, logger mqttwire.Logger, out io.Writer) *dumper {
	d := &dumper{cfg: cfg, logger: logger, out: out}
	if cfg.Format == formatMsgpack {
		d.enc = msgpack.NewEncoder(out)
	}
	if cfg.Stats {
		d.metrics = mqttwire.NewMemoryMetrics()
	}
	return d
}

// run decodes every packet of in and writes one record per packet.
// It returns the number of packets written.
func (d *dumper) run(in io.Reader) (int, error) {
	if d.cfg.Hex {
		data, err := io.ReadAll(in)
		if err != nil {
			return 0, err
		}
		raw, err := decodeHex(data)
		if err != nil {
			return 0, fmt.Errorf("decode hex input: %w", err)
		}
		in = bytes.NewReader(raw)
	}

	opts := []mqttwire.StreamOption{
		mqttwire.WithMaxPacketSize(d.cfg.MaxPacketSize),
		mqttwire.WithStrictFlags(d.cfg.StrictFlags),
		mqttwire.WithLogger(d.logger),
	}
	if d.metrics != nil {
		opts = append(opts, mqttwire.WithMetrics(d.metrics))
		defer d.logStats()
	}
	dec := mqttwire.NewDecoder(in, opts...)

	count := 0
	for {
		offset := dec.Offset()
		pkt, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, fmt.Errorf("offset %d: %w", offset, err)
		}

		if err := d.write(newRecord(offset, pkt)); err != nil {
			return count, err
		}
		count++
	}
}

// stats summarizes what the decoder counted so far.
type stats struct {
	Packets      int
	Bytes        int64
	DecodeErrors int
	ByType       map[string]int
}

func (d *dumper) stats() stats {
	snap := d.metrics.Snapshot()

	s := stats{
		Packets:      int(snap.Total(mqttwire.MetricPacketsDecoded)),
		Bytes:        int64(snap.Total(mqttwire.MetricBytesDecoded)),
		DecodeErrors: int(snap.Total(mqttwire.MetricDecodeErrors)),
		ByType:       make(map[string]int),
	}
	for t, n := range snap.SumBy(mqttwire.MetricPacketsDecoded, mqttwire.LabelPacketType) {
		s.ByType[t] = int(n)
	}
	return s
}

func (d *dumper) logStats() {
	s := d.stats()
	for _, t := range slices.Sorted(maps.Keys(s.ByType)) {
		d.logger.Info("packet type total", mqttwire.LogFields{
			mqttwire.LogFieldPacketType: t,
			"count":                     s.ByType[t],
		})
	}
	d.logger.Info("decode stats", mqttwire.LogFields{
		"packets":       s.Packets,
		"bytes":         s.Bytes,
		"decode_errors": s.DecodeErrors,
	})
}

func (d *dumper) write(rec record) error {
	if d.enc != nil {
		return d.enc.Encode(&rec)
	}
	_, err := fmt.Fprintln(d.out, rec.text())
	return err
}
