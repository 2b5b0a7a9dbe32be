package icmp_test

import (
	"net"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pia4go/ip"
)

func serializeICMP(t *testing.T, typ, code uint8, id, seq uint16, data []byte) ip.Header {
	t.Helper()

	buff := gopacket.NewSerializeBuffer()
	require.NoError(t, gopacket.SerializeLayers(
		buff, gopacket.SerializeOptions{FixLengths: true},
		&layers.IPv4{
			Version:  4,
			TTL:      64,
			Protocol: layers.IPProtocolICMPv4,
			SrcIP:    net.IPv4(192, 168, 1, 1),
			DstIP:    net.IPv4(192, 168, 1, 2),
		},
		&layers.ICMPv4{
			TypeCode: layers.CreateICMPv4TypeCode(typ, code),
			Checksum: 0xf7f7,
			Id:       id,
			Seq:      seq,
		},
		gopacket.Payload(data),
	))

	hdr, err := ip.ParseICMP(buff.Bytes())
	require.NoError(t, err)

	return hdr
}
