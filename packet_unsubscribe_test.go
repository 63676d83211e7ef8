package mqttwire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsubscribePacketType(t *testing.T) {
	p := &UnsubscribePacket{}
	assert.Equal(t, PacketUNSUBSCRIBE, p.Type())
	assert.Equal(t, byte(0xA2), p.Header().Byte())
}

func TestUnsubscribePacketEncodeDecode(t *testing.T) {
	tests := []struct {
		name   string
		topics []string
	}{
		{"single topic", []string{"a/b"}},
		{"multiple topics", []string{"a", "b/+", "c/#"}},
		{"empty topic filter", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &UnsubscribePacket{PacketID: 9, Topics: tt.topics}

			data, err := Encode(p)
			require.NoError(t, err)

			decoded, _, err := Unpack(data)
			require.NoError(t, err)

			got := decoded.(*UnsubscribePacket)
			assert.Equal(t, uint16(9), got.PacketID)
			assert.Equal(t, tt.topics, got.Topics)
		})
	}
}

func TestUnsubscribePacketWireFormat(t *testing.T) {
	p := &UnsubscribePacket{PacketID: 2, Topics: []string{"x", "yz"}}

	data, err := Encode(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xA2, 0x09, 0x00, 0x02, 0x00, 0x01, 'x', 0x00, 0x02, 'y', 'z'}, data)
}

func TestUnsubscribePacketDecodeErrors(t *testing.T) {
	h := FixedHeader{PacketType: PacketUNSUBSCRIBE, QoS: 1}

	_, err := Decode(h, 2, []byte{0x00, 0x01})
	assert.ErrorIs(t, err, ErrMalformedPacket)

	_, err = Decode(h, 5, []byte{0x00, 0x01, 0x00, 0x04, 'a'})
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestUnsubscribePacketValidate(t *testing.T) {
	assert.NoError(t, (&UnsubscribePacket{PacketID: 1, Topics: []string{"a"}}).Validate())
	assert.ErrorIs(t, (&UnsubscribePacket{Topics: []string{"a"}}).Validate(), ErrPacketIDRequired)
	assert.ErrorIs(t, (&UnsubscribePacket{PacketID: 1}).Validate(), ErrMalformedPacket)
}
