package pia4go

import (
	"fmt"
	"time"

	"github.com/google/gopacket/layers"
)

// FrameHandler captured frame handler, frame is only valid during the call
type FrameHandler func(ts time.Time, frame []byte) error

const (
	MACAddrSize  = 6
	IPv4AddrSize = 4

	EtherHeaderSize    = 2*MACAddrSize + 2
	IPv4HeaderBaseSize = 20
	ICMPHeaderSize     = 4
	ICMPEchoHeaderSize = 4
)

// MACAddr ethernet mac address
type MACAddr [MACAddrSize]byte

func (addr MACAddr) String() string {
	return fmt.Sprintf(
		"%02x-%02x-%02x-%02x-%02x-%02x",
		addr[0], addr[1], addr[2],
		addr[3], addr[4], addr[5],
	)
}

// EtherType ethernet payload type, host order
type EtherType uint16

const (
	EtherTypeIPv4 EtherType = 0x0800
	EtherTypeARP  EtherType = 0x0806
	EtherTypeIPv6 EtherType = 0x86dd
)

func (t EtherType) String() string {
	return layers.EthernetType(t).String()
}

// IPv4Addr ip v4 address
type IPv4Addr [IPv4AddrSize]byte

func (addr IPv4Addr) String() string {
	return fmt.Sprintf(
		"%d.%d.%d.%d",
		addr[0], addr[1], addr[2], addr[3],
	)
}

// TransProto ipv4 payload protocol
type TransProto byte

const (
	ICMP TransProto = 0x01 // icmp
	TCP  TransProto = 0x06 // tcp
	// UDP keeps the historical 0x17 discriminant used by the header templates
	// of this library, it is NOT the IANA value 0x11.
	UDP TransProto = 0x17 // udp
)

func (p TransProto) String() string {
	switch p {
	case ICMP:
		return "icmp"
	case TCP:
		return "tcp"
	case UDP:
		return "udp"
	default:
		return "unknown"
	}
}

// TOSMode selects how the type of service byte is decomposed
type TOSMode int

const (
	TOSPrecedence TOSMode = 0x10 // ip precedence
	TOSDSCP       TOSMode = 0x11 // dscp

	DefaultTOSMode = TOSPrecedence
)

func (m TOSMode) String() string {
	switch m {
	case TOSPrecedence:
		return "precedence"
	case TOSDSCP:
		return "dscp"
	default:
		return fmt.Sprintf("TOSMode(%d)", int(m))
	}
}
