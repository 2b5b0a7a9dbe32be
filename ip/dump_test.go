package ip_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
	"github.com/frozenpine/pia4go/ip"
)

func parsedReference(t *testing.T) ip.Header {
	t.Helper()

	hdr, err := ip.Parse(serializeIPv4(t, referenceHeader(), make([]byte, 8)))
	require.NoError(t, err)

	return hdr
}

func TestDump(t *testing.T) {
	hdr := parsedReference(t)
	hdr.SetChecksum(0xbeef)

	var out bytes.Buffer
	require.NoError(t, ip.Dump(&out, hdr, pia4go.TOSPrecedence))

	expect := "IPv4 Header\n" +
		"==============================\n" +
		"version    : 4\n" +
		"hdr length : 20 byte (5)\n" +
		"tos        : 0xb8 (precedence=5 'critical')\n" +
		"total len  : 28\n" +
		"id         : 4660(0x1234)\n" +
		"flags      : 0x2 (df=1 mf=0)\n" +
		"frag off   : 0\n" +
		"ttl        : 64\n" +
		"protocol   : icmp(0x01)\n" +
		"checksum   : 0xbeef\n" +
		"src ip     : 192.168.1.1\n" +
		"dest ip    : 192.168.1.2\n" +
		"\n"
	assert.Equal(t, expect, out.String())
}

func TestDumpTOSModes(t *testing.T) {
	hdr := parsedReference(t)

	var prec, dscp bytes.Buffer
	require.NoError(t, ip.DumpTOS(&prec, hdr, pia4go.TOSPrecedence))
	require.NoError(t, ip.DumpTOS(&dscp, hdr, pia4go.TOSDSCP))

	assert.Equal(t, "tos        : 0xb8 (precedence=5 'critical')\n", prec.String())
	assert.Equal(t, "tos        : 0xb8 (dscp=46 ecn=0)\n", dscp.String())
	assert.NotEqual(t, prec.String(), dscp.String())

	err := ip.DumpTOS(&prec, hdr, pia4go.TOSMode(0))
	assert.ErrorIs(t, err, piaerrors.ErrUnknownTOSMode)
}

func TestDumpSummary(t *testing.T) {
	hdr := parsedReference(t)

	var out bytes.Buffer
	require.NoError(t, ip.DumpSummary(&out, hdr))
	assert.Equal(t, "ipv4 192.168.1.1 >> 192.168.1.2 icmp\n", out.String())
}

func TestDumpFragment(t *testing.T) {
	ref := referenceHeader()
	ref.Flags = layers.IPv4MoreFragments
	ref.FragOffset = 185
	ref.Protocol = layers.IPProtocolTCP

	hdr, err := ip.Parse(serializeIPv4(t, ref, make([]byte, 8)))
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, ip.DumpFlagsFragmentOffset(&out, hdr))
	require.NoError(t, ip.DumpProtocol(&out, hdr))

	assert.Equal(t,
		"flags      : 0x1 (df=0 mf=1)\nfrag off   : 185\nprotocol   : tcp(0x06)\n",
		out.String(),
	)
}

func TestDumpVersions(t *testing.T) {
	var out bytes.Buffer

	v6 := ip.Header(make([]byte, 40))
	v6.SetVersion(6)
	assert.ErrorIs(t, ip.Dump(&out, v6, pia4go.DefaultTOSMode), piaerrors.ErrNotSupported)

	v5 := ip.Header(make([]byte, 20))
	v5.SetVersion(5)
	assert.ErrorIs(t, ip.Dump(&out, v5, pia4go.DefaultTOSMode), piaerrors.ErrVersionMismatch)

	assert.Zero(t, out.Len())
}

func TestDumpInvalid(t *testing.T) {
	var out bytes.Buffer
	short := ip.Header{0x45}

	for name, fn := range map[string]func() error{
		"dump":     func() error { return ip.Dump(&out, short, pia4go.TOSDSCP) },
		"summary":  func() error { return ip.DumpSummary(&out, short) },
		"version":  func() error { return ip.DumpVersion(&out, nil) },
		"hlen":     func() error { return ip.DumpHeaderLength(&out, short) },
		"tos":      func() error { return ip.DumpTOS(&out, short, pia4go.TOSPrecedence) },
		"total":    func() error { return ip.DumpTotalLength(&out, short) },
		"id":       func() error { return ip.DumpIdentification(&out, short) },
		"flags":    func() error { return ip.DumpFlagsFragmentOffset(&out, short) },
		"ttl":      func() error { return ip.DumpTTL(&out, short) },
		"protocol": func() error { return ip.DumpProtocol(&out, short) },
		"checksum": func() error { return ip.DumpChecksum(&out, short) },
		"address":  func() error { return ip.DumpAddresses(&out, short) },
	} {
		assert.ErrorIs(t, fn(), piaerrors.ErrBufferTooShort, name)
	}

	assert.Zero(t, out.Len())
}

func TestDumpUnknownTOSWritesNothing(t *testing.T) {
	hdr := parsedReference(t)

	var out bytes.Buffer
	err := ip.Dump(&out, hdr, pia4go.TOSMode(-1))
	require.ErrorIs(t, err, piaerrors.ErrUnknownTOSMode)
	assert.False(t, strings.Contains(out.String(), "IPv4 Header"))
}
