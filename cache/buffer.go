package cache

import (
	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

// Buffer fixed size wire buffer with a shared read/write cursor, it never
// grows beyond the slice it was created with. Every read or write past the
// end fails with ErrBufferTooShort and leaves the cursor in place.
type Buffer struct {
	data   []byte
	offset int
}

func NewBuffer(data []byte) *Buffer {
	return &Buffer{data: data}
}

func (buff *Buffer) ensure(size int) error {
	if buff.offset+size > len(buff.data) {
		return errors.Wrapf(
			piaerrors.ErrBufferTooShort,
			"need %d bytes at offset %d of buffer[%d]",
			size, buff.offset, len(buff.data),
		)
	}

	return nil
}

// Offset current cursor position
func (buff *Buffer) Offset() int {
	return buff.offset
}

// Len bytes remaining after cursor
func (buff *Buffer) Len() int {
	return len(buff.data) - buff.offset
}

// Bytes bytes remaining after cursor
func (buff *Buffer) Bytes() []byte {
	return buff.data[buff.offset:]
}

func (buff *Buffer) ReadByte() (byte, error) {
	if err := buff.ensure(1); err != nil {
		return 0, err
	}

	return pia4go.NByte(buff.data, &buff.offset), nil
}

func (buff *Buffer) ReadNShort() (uint16, error) {
	if err := buff.ensure(2); err != nil {
		return 0, err
	}

	return pia4go.N2HShort(buff.data, &buff.offset), nil
}

func (buff *Buffer) WriteByte(c byte) error {
	if err := buff.ensure(1); err != nil {
		return err
	}

	buff.data[buff.offset] = c
	buff.offset++

	return nil
}

func (buff *Buffer) WriteNShort(v uint16) error {
	if err := buff.ensure(2); err != nil {
		return err
	}

	pia4go.H2NShort(buff.data, &buff.offset, v)

	return nil
}

// Write copies all of p or nothing
func (buff *Buffer) Write(p []byte) (int, error) {
	if err := buff.ensure(len(p)); err != nil {
		return 0, err
	}

	n := copy(buff.data[buff.offset:], p)
	buff.offset += n

	return n, nil
}
