package utils

import (
	"encoding/hex"
	"io"
)

const (
	hexDumpLineBytes  = 8
	hexDumpGroupBytes = 2
)

// HexDump writes data as lowercase hex, two bytes per group and eight bytes
// per line, every line prefixed with indent:
//
//	0001 0203 0405 0607
//	0809
func HexDump(w io.Writer, data []byte, indent string) error {
	line := make([]byte, 0, len(indent)+hexDumpLineBytes*3)
	digits := make([]byte, 2)

	for idx, b := range data {
		pos := idx % hexDumpLineBytes

		if pos == 0 {
			line = append(line[:0], indent...)
		} else if pos%hexDumpGroupBytes == 0 {
			line = append(line, ' ')
		}

		hex.Encode(digits, []byte{b})
		line = append(line, digits...)

		if pos == hexDumpLineBytes-1 || idx == len(data)-1 {
			line = append(line, '\n')

			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}

	return nil
}
