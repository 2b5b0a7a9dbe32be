// Package icmp decodes ICMP messages carried by an IPv4 datagram.
package icmp

import (
	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
	"github.com/frozenpine/pia4go/ip"
)

const (
	HeaderSize     = pia4go.ICMPHeaderSize
	EchoHeaderSize = pia4go.ICMPEchoHeaderSize
)

// Type icmp message type
type Type uint8

const (
	TypeEchoReply              Type = 0
	TypeDestinationUnreachable Type = 3
	TypeRedirect               Type = 5
	TypeEchoRequest            Type = 8
	TypeTimeExceeded           Type = 11
)

// destination unreachable codes
const (
	CodeNetUnreachable uint8 = iota
	CodeHostUnreachable
	CodeProtocolUnreachable
	CodePortUnreachable
	CodeFragmentationNeeded
	CodeSourceRouteFailed
	CodeNetUnknown
	CodeHostUnknown
	CodeSourceHostIsolated
	CodeNetAdminProhibited
	CodeHostAdminProhibited
	CodeNetUnreachableForTOS
	CodeHostUnreachableForTOS
	CodeCommAdminProhibited
	CodeHostPrecedenceViolation
	CodePrecedenceCutoff
)

// redirect codes
const (
	CodeRedirectNet uint8 = iota
	CodeRedirectHost
	CodeRedirectTOSNet
	CodeRedirectTOSHost
)

// time exceeded codes
const (
	CodeTTLExceeded uint8 = iota
	CodeFragmentReassemblyExceeded
)

// Class message classification derived from type
type Class uint8

const (
	ClassUnclassified Class = iota
	ClassEcho
	ClassDestinationUnreachable
	ClassRedirect
	ClassTimeExceeded
)

func (c Class) String() string {
	switch c {
	case ClassEcho:
		return "echo"
	case ClassDestinationUnreachable:
		return "destination unreachable"
	case ClassRedirect:
		return "redirect"
	case ClassTimeExceeded:
		return "time exceeded"
	default:
		return "unclassified"
	}
}

// Message icmp message view, starting at the icmp header. Type, Code and
// Checksum expect a view returned by Parse or FromIPv4.
type Message []byte

// Parse returns a message view over buff
func Parse(buff []byte) (Message, error) {
	if len(buff) < HeaderSize {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"icmp header needs %d bytes, got %d", HeaderSize, len(buff),
		)
	}

	return Message(buff), nil
}

// FromIPv4 returns the icmp message carried in the ipv4 payload
func FromIPv4(hdr ip.Header) (Message, error) {
	if len(hdr) < ip.MinHeaderSize {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort, "invalid ipv4 header[%d]", len(hdr),
		)
	}

	if p := hdr.Protocol(); p != pia4go.ICMP {
		return nil, errors.Wrapf(
			piaerrors.ErrProtocolMismatch, "ipv4 carries %s(0x%02x)", p, uint8(p),
		)
	}

	payload, err := hdr.Payload()
	if err != nil {
		return nil, err
	}

	return Parse(payload)
}

func (m Message) valid() error {
	if len(m) < HeaderSize {
		return errors.Wrapf(
			piaerrors.ErrBufferTooShort, "invalid icmp message[%d]", len(m),
		)
	}

	return nil
}

func (m Message) Type() Type {
	return Type(m[0])
}

func (m Message) Code() uint8 {
	return m[1]
}

func (m Message) Checksum() uint16 {
	return pia4go.N2HShort(m[2:], nil)
}

func (m Message) SetType(t Type) {
	m[0] = byte(t)
}

func (m Message) SetCode(code uint8) {
	m[1] = code
}

func (m Message) SetChecksum(v uint16) {
	pia4go.H2NShort(m[2:], nil, v)
}

// IsEcho reports whether message is an echo request or reply
func (m Message) IsEcho() bool {
	if len(m) < 1 {
		return false
	}

	switch m.Type() {
	case TypeEchoReply, TypeEchoRequest:
		return true
	default:
		return false
	}
}

// Classify maps message type onto its class
func Classify(m Message) Class {
	if len(m) < 1 {
		return ClassUnclassified
	}

	switch m.Type() {
	case TypeEchoReply, TypeEchoRequest:
		return ClassEcho
	case TypeDestinationUnreachable:
		return ClassDestinationUnreachable
	case TypeRedirect:
		return ClassRedirect
	case TypeTimeExceeded:
		return ClassTimeExceeded
	default:
		return ClassUnclassified
	}
}

// Echo echo sub header view: identifier, sequence, then data
type Echo []byte

// Echo returns the echo sub header following the icmp header
func (m Message) Echo() (Echo, error) {
	if err := m.valid(); err != nil {
		return nil, err
	}

	if !m.IsEcho() {
		return nil, errors.Wrapf(piaerrors.ErrNotEcho, "type %d", m.Type())
	}

	if len(m) < HeaderSize+EchoHeaderSize {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"echo message needs %d bytes, got %d",
			HeaderSize+EchoHeaderSize, len(m),
		)
	}

	return Echo(m[HeaderSize:]), nil
}

func (e Echo) Identifier() uint16 {
	return pia4go.N2HShort(e, nil)
}

func (e Echo) Sequence() uint16 {
	return pia4go.N2HShort(e[2:], nil)
}

// Data trailing echo data, as much as the view holds
func (e Echo) Data() []byte {
	return e[EchoHeaderSize:]
}

func (e Echo) SetIdentifier(id uint16) {
	pia4go.H2NShort(e, nil, id)
}

func (e Echo) SetSequence(seq uint16) {
	pia4go.H2NShort(e[2:], nil, seq)
}
