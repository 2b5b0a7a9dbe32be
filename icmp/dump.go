package icmp

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/frozenpine/pia4go/cache"
	"github.com/frozenpine/pia4go/ip"
	"github.com/frozenpine/pia4go/utils"
)

const dataIndent = "           "

// DumpSummary writes the message as one line:
//
//	icmp echo request id=4660 seq=7
//	icmp destination unreachable code='port unreachable' (0x3)
func DumpSummary(w io.Writer, m Message) error {
	typeLabel, err := TypeLabel(m)
	if err != nil {
		return err
	}

	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	fmt.Fprintf(buff, "icmp %s ", typeLabel)

	if m.IsEcho() {
		echo, err := m.Echo()
		if err != nil {
			return err
		}

		fmt.Fprintf(buff, "id=%d seq=%d\n", echo.Identifier(), echo.Sequence())
	} else {
		codeLabel, err := CodeLabel(m)
		if err != nil {
			return err
		}

		fmt.Fprintf(buff, "code='%s' (0x%x)\n", codeLabel, m.Code())
	}

	_, err = w.Write(buff.B)
	return err
}

// DumpDetail writes the icmp message carried by hdr field by field, echo
// data is hex dumped with its size taken from the ipv4 total length.
func DumpDetail(w io.Writer, hdr ip.Header) error {
	m, err := FromIPv4(hdr)
	if err != nil {
		return err
	}

	typeLabel, err := TypeLabel(m)
	if err != nil {
		return err
	}

	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	buff.WriteString("ICMP message\n")
	buff.WriteString("==========================\n")
	fmt.Fprintf(buff, "type     : %s\n", typeLabel)

	if m.IsEcho() {
		if err := dumpEcho(buff, m); err != nil {
			return err
		}
	} else {
		codeLabel, err := CodeLabel(m)
		if err != nil {
			return err
		}

		fmt.Fprintf(buff, "code     : '%s' (0x%x)\n", codeLabel, m.Code())
		fmt.Fprintf(buff, "checksum : 0x%04x\n", m.Checksum())
	}

	_, err = w.Write(buff.B)
	return err
}

// dumpEcho walks the message after its type byte, m spans exactly the ipv4
// payload so the data left after the echo header is the echo data.
func dumpEcho(w io.Writer, m Message) error {
	cur := cache.NewBuffer(m[1:])

	code, err := cur.ReadByte()
	if err != nil {
		return err
	}

	checksum, err := cur.ReadNShort()
	if err != nil {
		return err
	}

	id, err := cur.ReadNShort()
	if err != nil {
		return errors.WithMessage(err, "icmp echo identifier")
	}

	seq, err := cur.ReadNShort()
	if err != nil {
		return errors.WithMessage(err, "icmp echo sequence")
	}

	data := cur.Bytes()

	fmt.Fprintf(w, "code     : 0x%02x\n", code)
	fmt.Fprintf(w, "checksum : 0x%04x\n", checksum)
	fmt.Fprintf(w, "id       : %d\n", id)
	fmt.Fprintf(w, "sequence : %d\n", seq)
	fmt.Fprintf(w, "data     : (%d byte)\n", len(data))

	return utils.HexDump(w, data, dataIndent)
}
