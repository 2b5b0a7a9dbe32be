// Package eth is a borrowed view over an ethernet II frame header.
package eth

import (
	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

// header field offsets
const (
	dstMAC  = 0
	srcMAC  = dstMAC + pia4go.MACAddrSize
	ethType = srcMAC + pia4go.MACAddrSize

	HeaderSize = pia4go.EtherHeaderSize
)

// Frame ethernet frame stored in caller owned bytes
type Frame []byte

// Parse checks buff can hold an ethernet header and returns a view over it.
func Parse(buff []byte) (Frame, error) {
	if len(buff) < HeaderSize {
		return nil, errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"ether frame needs %d bytes, got %d", HeaderSize, len(buff),
		)
	}

	return Frame(buff), nil
}

func (f Frame) valid() error {
	if len(f) < HeaderSize {
		return errors.Wrapf(
			piaerrors.ErrBufferTooShort, "invalid ether frame[%d]", len(f),
		)
	}

	return nil
}

// Destination destination mac address
func (f Frame) Destination() (addr pia4go.MACAddr) {
	copy(addr[:], f[dstMAC:])
	return
}

// Source source mac address
func (f Frame) Source() (addr pia4go.MACAddr) {
	copy(addr[:], f[srcMAC:])
	return
}

// Type payload ether type in host order
func (f Frame) Type() pia4go.EtherType {
	return pia4go.EtherType(pia4go.N2HShort(f[ethType:], nil))
}

// Payload bytes following the header
func (f Frame) Payload() []byte {
	return f[HeaderSize:]
}

func (f Frame) SetDestination(addr pia4go.MACAddr) {
	copy(f[dstMAC:], addr[:])
}

func (f Frame) SetSource(addr pia4go.MACAddr) {
	copy(f[srcMAC:], addr[:])
}

func (f Frame) SetType(t pia4go.EtherType) {
	pia4go.H2NShort(f[ethType:], nil, uint16(t))
}
