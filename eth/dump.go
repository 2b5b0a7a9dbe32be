package eth

import (
	"fmt"
	"io"

	"github.com/valyala/bytebufferpool"
)

// DumpSummary writes the frame as one line: ether <src> >> <dst>
func DumpSummary(w io.Writer, f Frame) error {
	if err := f.valid(); err != nil {
		return err
	}

	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	buff.WriteString("ether ")
	buff.WriteString(f.Source().String())
	buff.WriteString(" >> ")
	buff.WriteString(f.Destination().String())
	buff.WriteByte('\n')

	_, err := w.Write(buff.B)
	return err
}

// DumpDetail writes every header field, one per line
func DumpDetail(w io.Writer, f Frame) error {
	if err := f.valid(); err != nil {
		return err
	}

	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	ethType := uint16(f.Type())

	buff.WriteString("Ether Header\n")
	buff.WriteString("==============================\n")
	fmt.Fprintf(buff, "dest mac   : %s\n", f.Destination())
	fmt.Fprintf(buff, "src mac    : %s\n", f.Source())
	fmt.Fprintf(buff, "ether type : %d(0x%x)\n", ethType, ethType)
	buff.WriteByte('\n')

	_, err := w.Write(buff.B)
	return err
}
