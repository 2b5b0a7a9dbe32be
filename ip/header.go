// Package ip decodes and encodes IPv4 headers stored in caller owned bytes.
//
// Every field is reached through shift/mask accessors over the wire bytes,
// multi-byte fields are converted from network order on read and back on
// write. A Header never copies or owns the buffer it views.
package ip

import (
	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

const (
	Version4 = 4
	Version6 = 6

	MinHeaderSize  = pia4go.IPv4HeaderBaseSize
	MaxTotalLength = 0xffff
)

// header field offsets
const (
	offVerIHL   = 0
	offTOS      = 1
	offTotalLen = 2
	offID       = 4
	offFlagsFO  = 6
	offTTL      = 8
	offProtocol = 9
	offChecksum = 10
	offSrcAddr  = 12
	offDstAddr  = 16
)

const (
	FlagMoreFragments = 1 << 0
	FlagDontFragment  = 1 << 1

	fragOffsetMask = 0x1fff
)

// Header ipv4 header view, the slice may extend past the header to cover
// the payload. Field accessors expect a view returned by Parse.
type Header []byte

// Parse validates buff holds an ipv4 header and returns a view over it.
//
// A header length nibble below 5 is accepted as is.
func Parse(buff []byte) (Header, error) {
	if len(buff) < MinHeaderSize {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"ipv4 header needs %d bytes, got %d", MinHeaderSize, len(buff),
		)
	}

	hdr := Header(buff)

	if v := hdr.Version(); v != Version4 {
		return nil, errors.Wrapf(piaerrors.ErrVersionMismatch, "version %d", v)
	}

	if hdr.HeaderBytes() > len(buff) {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"declared header length %d exceeds buffer[%d]",
			hdr.HeaderBytes(), len(buff),
		)
	}

	return hdr, nil
}

func parseProto(buff []byte, proto pia4go.TransProto) (Header, error) {
	hdr, err := Parse(buff)
	if err != nil {
		return nil, err
	}

	if p := hdr.Protocol(); p != proto {
		return nil, errors.Wrapf(
			piaerrors.ErrProtocolMismatch, "expect %s, got %s(0x%02x)",
			proto, p, uint8(p),
		)
	}

	if off := hdr.PayloadOffset(); off >= len(buff) {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"%s payload offset %d outside buffer[%d]", proto, off, len(buff),
		)
	}

	return hdr, nil
}

// ParseTCP parses a header which must carry a tcp payload
func ParseTCP(buff []byte) (Header, error) {
	return parseProto(buff, pia4go.TCP)
}

// ParseUDP parses a header which must carry a udp payload
func ParseUDP(buff []byte) (Header, error) {
	return parseProto(buff, pia4go.UDP)
}

// ParseICMP parses a header which must carry an icmp payload
func ParseICMP(buff []byte) (Header, error) {
	return parseProto(buff, pia4go.ICMP)
}

func (h Header) valid() error {
	if len(h) < MinHeaderSize {
		return errors.Wrapf(
			piaerrors.ErrBufferTooShort, "invalid ipv4 header[%d]", len(h),
		)
	}

	return nil
}

func (h Header) Version() uint8 {
	return h[offVerIHL] >> 4
}

// HeaderLength header length in 32-bit words
func (h Header) HeaderLength() uint8 {
	return h[offVerIHL] & 0x0f
}

// HeaderBytes header length in bytes
func (h Header) HeaderBytes() int {
	return int(h.HeaderLength()) * 4
}

func (h Header) TOS() uint8 {
	return h[offTOS]
}

// Precedence top 3 bits of tos
func (h Header) Precedence() uint8 {
	return h[offTOS] >> 5
}

// DSCP top 6 bits of tos
func (h Header) DSCP() uint8 {
	return h[offTOS] >> 2
}

// ECN low 2 bits of tos
func (h Header) ECN() uint8 {
	return h[offTOS] & 0x03
}

func (h Header) TotalLength() uint16 {
	return pia4go.N2HShort(h[offTotalLen:], nil)
}

func (h Header) Identification() uint16 {
	return pia4go.N2HShort(h[offID:], nil)
}

// FlagsFragmentOffset raw flags (3 bits) + fragment offset (13 bits)
func (h Header) FlagsFragmentOffset() uint16 {
	return pia4go.N2HShort(h[offFlagsFO:], nil)
}

func (h Header) Flags() uint8 {
	return uint8(h.FlagsFragmentOffset() >> 13)
}

func (h Header) DontFragment() bool {
	return h.Flags()&FlagDontFragment != 0
}

func (h Header) MoreFragments() bool {
	return h.Flags()&FlagMoreFragments != 0
}

// FragmentOffset in 8 byte units
func (h Header) FragmentOffset() uint16 {
	return h.FlagsFragmentOffset() & fragOffsetMask
}

func (h Header) TTL() uint8 {
	return h[offTTL]
}

func (h Header) Protocol() pia4go.TransProto {
	return pia4go.TransProto(h[offProtocol])
}

func (h Header) Checksum() uint16 {
	return pia4go.N2HShort(h[offChecksum:], nil)
}

func (h Header) Source() (addr pia4go.IPv4Addr) {
	copy(addr[:], h[offSrcAddr:])
	return
}

func (h Header) Destination() (addr pia4go.IPv4Addr) {
	copy(addr[:], h[offDstAddr:])
	return
}

// IsV4 reports whether the version nibble is 4
func (h Header) IsV4() bool {
	return len(h) > 0 && h.Version() == Version4
}

// IsV6 reports whether the version nibble is 6
func (h Header) IsV6() bool {
	return len(h) > 0 && h.Version() == Version6
}

// PayloadOffset byte offset of the payload from header start, 0 for an
// empty view
func (h Header) PayloadOffset() int {
	if len(h) == 0 {
		return 0
	}

	return h.HeaderBytes()
}

// PayloadSize payload length declared by total length
func (h Header) PayloadSize() (int, error) {
	if err := h.valid(); err != nil {
		return 0, err
	}

	total, hdrLen := int(h.TotalLength()), h.HeaderBytes()

	if total < hdrLen {
		return 0, errors.Wrapf(
			piaerrors.ErrInconsistent,
			"total length %d smaller than header length %d", total, hdrLen,
		)
	}

	return total - hdrLen, nil
}

// Payload bounds checked view of the payload region, trailing bytes beyond
// total length such as link layer padding are excluded.
func (h Header) Payload() ([]byte, error) {
	size, err := h.PayloadSize()
	if err != nil {
		return nil, err
	}

	return pia4go.SubView(h, h.PayloadOffset(), size)
}

func (h Header) SetVersion(v uint8) {
	h[offVerIHL] = v<<4 | h[offVerIHL]&0x0f
}

// SetHeaderLength sets header length in 32-bit words
func (h Header) SetHeaderLength(words uint8) {
	h[offVerIHL] = h[offVerIHL]&0xf0 | words&0x0f
}

func (h Header) SetTOS(tos uint8) {
	h[offTOS] = tos
}

func (h Header) SetTotalLength(v uint16) {
	pia4go.H2NShort(h[offTotalLen:], nil, v)
}

func (h Header) SetIdentification(v uint16) {
	pia4go.H2NShort(h[offID:], nil, v)
}

func (h Header) SetFlagsFragmentOffset(v uint16) {
	pia4go.H2NShort(h[offFlagsFO:], nil, v)
}

// SetFlags replaces the 3 flag bits keeping fragment offset
func (h Header) SetFlags(flags uint8) {
	h.SetFlagsFragmentOffset(uint16(flags&0x07)<<13 | h.FragmentOffset())
}

// SetFragmentOffset replaces fragment offset keeping the flag bits
func (h Header) SetFragmentOffset(off uint16) {
	h.SetFlagsFragmentOffset(uint16(h.Flags())<<13 | off&fragOffsetMask)
}

func (h Header) SetTTL(ttl uint8) {
	h[offTTL] = ttl
}

func (h Header) SetProtocol(p pia4go.TransProto) {
	h[offProtocol] = byte(p)
}

func (h Header) SetChecksum(v uint16) {
	pia4go.H2NShort(h[offChecksum:], nil, v)
}

// SetAddresses copies both addresses into header, no address class check.
func (h Header) SetAddresses(src, dst pia4go.IPv4Addr) {
	copy(h[offSrcAddr:], src[:])
	copy(h[offDstAddr:], dst[:])
}
