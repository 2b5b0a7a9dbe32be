package dump_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pia4go"
	"github.com/frozenpine/pia4go/dump"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

func serialize(t *testing.T, ls ...gopacket.SerializableLayer) []byte {
	t.Helper()

	buff := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(
		buff, gopacket.SerializeOptions{FixLengths: true}, ls...,
	))

	return buff.Bytes()
}

func ethernet(ethType layers.EthernetType) *layers.Ethernet {
	return &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x1b, 0x21, 0x0a, 0x0b, 0x0c},
		DstMAC:       net.HardwareAddr{0xff, 0xee, 0xdd, 0xcc, 0xbb, 0xaa},
		EthernetType: ethType,
	}
}

func ipv4(proto layers.IPProtocol) *layers.IPv4 {
	return &layers.IPv4{
		Version:  4,
		TOS:      0xb8,
		Id:       0x1234,
		TTL:      64,
		Protocol: proto,
		SrcIP:    net.IPv4(192, 168, 1, 1),
		DstIP:    net.IPv4(192, 168, 1, 2),
	}
}

func echoRequest() *layers.ICMPv4 {
	return &layers.ICMPv4{
		TypeCode: layers.CreateICMPv4TypeCode(layers.ICMPv4TypeEchoRequest, 0),
		Id:       0x1234,
		Seq:      7,
	}
}

func TestFrameSummary(t *testing.T) {
	data := serialize(t,
		ethernet(layers.EthernetTypeIPv4), ipv4(layers.IPProtocolICMPv4), echoRequest(),
	)

	var out bytes.Buffer
	require.NoError(t, dump.Frame(&out, data, dump.Options{}))

	expect := "ether 00-1b-21-0a-0b-0c >> ff-ee-dd-cc-bb-aa\n" +
		"ipv4 192.168.1.1 >> 192.168.1.2 icmp\n" +
		"icmp echo request id=4660 seq=7\n"
	assert.Equal(t, expect, out.String())
}

func TestFrameDetail(t *testing.T) {
	data := serialize(t,
		ethernet(layers.EthernetTypeIPv4), ipv4(layers.IPProtocolICMPv4), echoRequest(),
		gopacket.Payload{0xde, 0xad},
	)

	var out bytes.Buffer
	require.NoError(t, dump.Frame(&out, data, dump.Options{Detail: true, TOS: pia4go.TOSDSCP}))

	text := out.String()
	assert.Contains(t, text, "Ether Header\n")
	assert.Contains(t, text, "ether type : 2048(0x800)\n")
	assert.Contains(t, text, "IPv4 Header\n")
	assert.Contains(t, text, "tos        : 0xb8 (dscp=46 ecn=0)\n")
	assert.Contains(t, text, "ICMP message\n")
	assert.Contains(t, text, "data     : (2 byte)\n           dead\n")
}

func TestFrameDefaultTOS(t *testing.T) {
	data := serialize(t, ipv4(layers.IPProtocolICMPv4), echoRequest())

	var out bytes.Buffer
	require.NoError(t, dump.Datagram(&out, data, dump.Options{Detail: true}))
	assert.Contains(t, out.String(), "tos        : 0xb8 (precedence=5 'critical')\n")
}

func TestFrameNotIPv4(t *testing.T) {
	data := serialize(t, ethernet(layers.EthernetTypeARP), gopacket.Payload(make([]byte, 28)))

	var out bytes.Buffer
	require.NoError(t, dump.Frame(&out, data, dump.Options{}))
	assert.Equal(t, "ether 00-1b-21-0a-0b-0c >> ff-ee-dd-cc-bb-aa\n", out.String())
}

func TestDatagramOtherProtocol(t *testing.T) {
	data := serialize(t, ipv4(layers.IPProtocolTCP), gopacket.Payload(make([]byte, 20)))

	var out bytes.Buffer
	require.NoError(t, dump.Datagram(&out, data, dump.Options{}))
	assert.Equal(t, "ipv4 192.168.1.1 >> 192.168.1.2 tcp\n", out.String())
}

func TestFrameErrors(t *testing.T) {
	var out bytes.Buffer

	assert.ErrorIs(t, dump.Frame(&out, make([]byte, 10), dump.Options{}), piaerrors.ErrBufferTooShort)

	unreachable := serialize(t,
		ipv4(layers.IPProtocolICMPv4),
		&layers.ICMPv4{TypeCode: layers.CreateICMPv4TypeCode(3, 16)},
	)
	assert.ErrorIs(t, dump.Datagram(&out, unreachable, dump.Options{}), piaerrors.ErrUnknownCode)

	v6 := make([]byte, 40)
	v6[0] = 0x60
	assert.ErrorIs(t, dump.Datagram(&out, v6, dump.Options{}), piaerrors.ErrVersionMismatch)
}
