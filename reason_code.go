package mqttwire

// ConnackCode is a CONNACK return code. Zero accepts the connection, any
// other value is the refusal reason.
type ConnackCode byte

// CONNACK return codes defined by MQTT 3.1.1.
const (
	ConnackAccepted                    ConnackCode = 0x00
	ConnackUnacceptableProtocolVersion ConnackCode = 0x01
	ConnackIdentifierRejected          ConnackCode = 0x02
	ConnackServerUnavailable           ConnackCode = 0x03
	ConnackBadUsernameOrPassword       ConnackCode = 0x04
	ConnackNotAuthorized               ConnackCode = 0x05
)

// String returns the string representation of the return code.
func (c ConnackCode) String() string {
	switch c {
	case ConnackAccepted:
		return "Connection Accepted"
	case ConnackUnacceptableProtocolVersion:
		return "Unacceptable Protocol Version"
	case ConnackIdentifierRejected:
		return "Identifier Rejected"
	case ConnackServerUnavailable:
		return "Server Unavailable"
	case ConnackBadUsernameOrPassword:
		return "Bad User Name or Password"
	case ConnackNotAuthorized:
		return "Not Authorized"
	default:
		return "Unknown"
	}
}

// Accepted reports whether the connection was accepted.
func (c ConnackCode) Accepted() bool {
	return c == ConnackAccepted
}

// SubackCode is a per-subscription SUBACK return code.
type SubackCode byte

// SUBACK return codes.
const (
	SubackGrantedQoS0 SubackCode = 0x00
	SubackGrantedQoS1 SubackCode = 0x01
	SubackGrantedQoS2 SubackCode = 0x02
	SubackFailure     SubackCode = 0x80
)

// String returns the string representation of the return code.
func (c SubackCode) String() string {
	switch c {
	case SubackGrantedQoS0:
		return "Granted QoS 0"
	case SubackGrantedQoS1:
		return "Granted QoS 1"
	case SubackGrantedQoS2:
		return "Granted QoS 2"
	case SubackFailure:
		return "Failure"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is one of the four codes SUBACK may carry.
func (c SubackCode) Valid() bool {
	return c <= SubackGrantedQoS2 || c == SubackFailure
}

// GrantedQoS returns the granted QoS and false for the failure code.
func (c SubackCode) GrantedQoS() (byte, bool) {
	if c > SubackGrantedQoS2 {
		return 0, false
	}
	return byte(c), true
}
