package mqttwire

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectPacketType(t *testing.T) {
	p := &ConnectPacket{}
	assert.Equal(t, PacketCONNECT, p.Type())
	assert.Equal(t, FixedHeader{PacketType: PacketCONNECT}, p.Header())
}

func TestConnectFlags(t *testing.T) {
	var f ConnectFlags
	f.SetCleanSession(true)
	f.SetWill(true)
	f.SetWillQoS(2)
	f.SetWillRetain(true)
	f.SetUsername(true)
	f.SetPassword(true)

	assert.Equal(t, ConnectFlags(0xF6), f)
	assert.True(t, f.CleanSession())
	assert.True(t, f.Will())
	assert.Equal(t, byte(2), f.WillQoS())
	assert.True(t, f.WillRetain())
	assert.True(t, f.Username())
	assert.True(t, f.Password())
	assert.False(t, f.Reserved())

	f.SetWillQoS(1)
	assert.Equal(t, byte(1), f.WillQoS())

	f.SetWill(false)
	f.SetWillQoS(0)
	f.SetWillRetain(false)
	assert.Equal(t, ConnectFlags(0xC2), f)
}

func TestConnectFlagsValidate(t *testing.T) {
	tests := []struct {
		name  string
		flags ConnectFlags
		err   error
	}{
		{"clean session", 0x02, nil},
		{"all set", 0xF6, nil},
		{"reserved bit", 0x01, ErrMalformedPacket},
		{"will QoS 3", 0x1C, ErrInvalidQoS},
		{"will QoS without will", 0x08, ErrMalformedPacket},
		{"will retain without will", 0x20, ErrMalformedPacket},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.flags.validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestConnectPacketCleanSessionOnly(t *testing.T) {
	var flags ConnectFlags
	flags.SetCleanSession(true)

	p := &ConnectPacket{Flags: flags, KeepAlive: 60, ClientID: "c1"}

	data, err := Encode(p)
	require.NoError(t, err)

	want := []byte{
		0x10, 0x0E,
		0x00, 0x04, 'M', 'Q', 'T', 'T',
		0x04,
		0x02,
		0x00, 0x3C,
		0x00, 0x02, 'c', '1',
	}
	assert.Equal(t, want, data)

	decoded, n, err := Unpack(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)

	c, ok := decoded.(*ConnectPacket)
	require.True(t, ok)
	assert.True(t, c.Flags.CleanSession())
	assert.Equal(t, uint16(60), c.KeepAlive)
	assert.Equal(t, "c1", c.ClientID)
	assert.Empty(t, c.WillTopic)
	assert.Nil(t, c.WillMessage)
	assert.Empty(t, c.Username)
	assert.Nil(t, c.Password)
}

func TestConnectPacketOptionalFields(t *testing.T) {
	userPass := ConnectFlags(connectFlagUsername | connectFlagPassword | connectFlagClean)
	withWill := userPass | ConnectFlags(connectFlagWill|connectFlagWillRetain) | ConnectFlags(QoS1<<connectFlagWillQoSPos)

	tests := []struct {
		name   string
		packet ConnectPacket
	}{
		{
			name: "username and password",
			packet: ConnectPacket{
				Flags:    userPass,
				ClientID: "client",
				Username: "user",
				Password: []byte("secret"),
			},
		},
		{
			name: "will username and password",
			packet: ConnectPacket{
				Flags:       withWill,
				KeepAlive:   30,
				ClientID:    "client",
				WillTopic:   "last/will",
				WillMessage: []byte("gone"),
				Username:    "user",
				Password:    []byte("secret"),
			},
		},
		{
			name: "will only",
			packet: ConnectPacket{
				Flags:       ConnectFlags(connectFlagWill),
				ClientID:    "client",
				WillTopic:   "t",
				WillMessage: []byte{0x00, 0xFF},
			},
		},
		{
			name: "empty client id",
			packet: ConnectPacket{
				Flags: ConnectFlags(connectFlagClean),
			},
		},
		{
			name: "MQTT 3.1",
			packet: ConnectPacket{
				ProtocolName:  ProtocolNameMQIsdp,
				ProtocolLevel: ProtocolLevel31,
				ClientID:      "legacy",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Encode(&tt.packet)
			require.NoError(t, err)

			decoded, _, err := Unpack(data)
			require.NoError(t, err)

			want := tt.packet
			want.FixedHeader = FixedHeader{PacketType: PacketCONNECT}
			want.ProtocolName, want.ProtocolLevel = want.protocol()
			assert.Equal(t, &want, decoded)
		})
	}
}

func TestConnectPacketIgnoresUnflaggedFields(t *testing.T) {
	p := &ConnectPacket{
		ClientID:  "c",
		WillTopic: "ignored",
		Username:  "ignored",
		Password:  []byte("ignored"),
	}

	data, err := Encode(p)
	require.NoError(t, err)

	decoded, _, err := Unpack(data)
	require.NoError(t, err)

	c := decoded.(*ConnectPacket)
	assert.Equal(t, "c", c.ClientID)
	assert.Empty(t, c.WillTopic)
	assert.Empty(t, c.Username)
	assert.Nil(t, c.Password)
}

func TestConnectPacketDecodeErrors(t *testing.T) {
	h := FixedHeader{PacketType: PacketCONNECT}

	tests := []struct {
		name string
		body []byte
		err  error
	}{
		{
			name: "unknown protocol name",
			body: []byte{0x00, 0x04, 'M', 'Q', 'T', 'X', 0x04, 0x00, 0x00, 0x00, 0x00, 0x00},
			err:  ErrProtocolName,
		},
		{
			name: "MQTT 5 level",
			body: []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x05, 0x00, 0x00, 0x00, 0x00, 0x00},
			err:  ErrProtocolName,
		},
		{
			name: "reserved flag",
			body: []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x01, 0x00, 0x00, 0x00, 0x00},
			err:  ErrMalformedPacket,
		},
		{
			name: "will QoS 3",
			body: []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x1C, 0x00, 0x00, 0x00, 0x00},
			err:  ErrInvalidQoS,
		},
		{
			name: "username flag without username",
			body: []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x80, 0x00, 0x00, 0x00, 0x00},
			err:  ErrTruncated,
		},
		{
			name: "missing client id",
			body: []byte{0x00, 0x04, 'M', 'Q', 'T', 'T', 0x04, 0x00, 0x00, 0x00},
			err:  ErrTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(h, uint32(len(tt.body)), tt.body)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestConnectPacketValidate(t *testing.T) {
	tests := []struct {
		name   string
		packet ConnectPacket
		err    error
	}{
		{"valid", ConnectPacket{ClientID: "c"}, nil},
		{"wrong header type", ConnectPacket{FixedHeader: FixedHeader{PacketType: PacketPUBLISH}}, ErrInvalidPacketType},
		{"wrong level", ConnectPacket{ProtocolLevel: 5}, ErrProtocolName},
		{"reserved flag", ConnectPacket{Flags: 0x01}, ErrMalformedPacket},
		{"client id too long", ConnectPacket{ClientID: strings.Repeat("c", 65536)}, ErrStringTooLong},
		{"password too long", ConnectPacket{Flags: 0x40, Password: make([]byte, 65536)}, ErrStringTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.packet.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
