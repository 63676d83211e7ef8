package mqttwire_test

import (
	"bytes"
	"fmt"

	"github.com/vitalvas/mqttwire"
)

func ExampleEncode() {
	p := &mqttwire.PublishPacket{
		FixedHeader: mqttwire.FixedHeader{PacketType: mqttwire.PacketPUBLISH, QoS: mqttwire.QoS1},
		PacketID:    10,
		Topic:       "a/b",
		Payload:     []byte("hi"),
	}

	data, err := mqttwire.Encode(p)
	if err != nil {
		panic(err)
	}

	fmt.Printf("% x\n", data)
	// Output: 32 09 00 03 61 2f 62 00 0a 68 69
}

func ExampleDecode() {
	data := []byte{0x32, 0x09, 0x00, 0x03, 'a', '/', 'b', 0x00, 0x0A, 'h', 'i'}

	h, err := mqttwire.ParseFixedHeader(data[0])
	if err != nil {
		panic(err)
	}
	length, n, err := mqttwire.DecodeRemainingLength(data[1:])
	if err != nil {
		panic(err)
	}

	p, err := mqttwire.Decode(h, length, data[1+n:])
	if err != nil {
		panic(err)
	}

	publish := p.(*mqttwire.PublishPacket)
	fmt.Println(publish.Type(), publish.QoS, publish.PacketID, publish.Topic, string(publish.Payload))
	// Output: PUBLISH 1 10 a/b hi
}

func ExampleDecoder() {
	var stream bytes.Buffer

	enc := mqttwire.NewEncoder(&stream)
	_ = enc.Encode(&mqttwire.PingreqPacket{})
	_ = enc.Encode(&mqttwire.DisconnectPacket{})

	dec := mqttwire.NewDecoder(&stream)
	for {
		p, err := dec.Decode()
		if err != nil {
			break
		}
		fmt.Println(p.Type())
	}
	// Output:
	// PINGREQ
	// DISCONNECT
}

func ExampleNewAck() {
	ack, err := mqttwire.NewAck(mqttwire.PubrelByte, 7)
	if err != nil {
		panic(err)
	}

	data, err := mqttwire.Encode(ack)
	if err != nil {
		panic(err)
	}

	fmt.Printf("% x\n", data)
	// Output: 62 02 00 07
}
