package pia4go

import (
	"encoding/binary"

	"github.com/pkg/errors"

	piaerrors "github.com/frozenpine/pia4go/errors"
)

func NByte(buffer []byte, offset *int) uint8 {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset)++
	}

	result := buffer[idx]

	return result
}

func N2HShort(buffer []byte, offset *int) uint16 {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 2
	}

	result := binary.BigEndian.Uint16(buffer[idx:])

	return result
}

func N2HLong(buffer []byte, offset *int) uint32 {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 4
	}

	result := binary.BigEndian.Uint32(buffer[idx:])

	return result
}

func H2NShort(buffer []byte, offset *int, v uint16) {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 2
	}

	binary.BigEndian.PutUint16(buffer[idx:], v)
}

func H2NLong(buffer []byte, offset *int, v uint32) {
	idx := 0

	if offset != nil {
		idx = *offset
		(*offset) += 4
	}

	binary.BigEndian.PutUint32(buffer[idx:], v)
}

func ReadBytes(dst []byte, buffer []byte, offset *int) error {
	idx := 0

	if offset != nil {
		idx = *offset
	}
	if idx < 0 || idx > len(buffer) {
		return errors.Wrapf(piaerrors.ErrBufferTooShort,
			"offset %d out of buffer[%d]", idx, len(buffer))
	}
	buffer = buffer[idx:]

	if len(buffer) < len(dst) {
		return errors.Wrapf(piaerrors.ErrBufferTooShort,
			"need %d bytes, remain %d", len(dst), len(buffer))
	}

	if copyLen := copy(dst, buffer); offset != nil {
		*offset += copyLen
	}

	return nil
}

// SubView returns buffer[offset:offset+size] after checking the region lies
// inside the buffer. The view shares memory with buffer.
func SubView(buffer []byte, offset, size int) ([]byte, error) {
	if offset < 0 || size < 0 || offset > len(buffer) || len(buffer)-offset < size {
		return nil, errors.Wrapf(piaerrors.ErrBufferTooShort,
			"view [%d:+%d] out of buffer[%d]", offset, size, len(buffer))
	}

	return buffer[offset : offset+size : offset+size], nil
}
