package ip

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

var precedenceNames = [8]string{
	"routine",
	"priority",
	"immediate",
	"flash",
	"flash override",
	"critical",
	"internetwork control",
	"network control",
}

// Dump writes every header field, tos decomposed according to mode.
func Dump(w io.Writer, h Header, mode pia4go.TOSMode) error {
	if err := h.valid(); err != nil {
		return err
	}

	switch {
	case h.IsV4():
	case h.IsV6():
		return errors.Wrap(piaerrors.ErrNotSupported, "ipv6 header dump")
	default:
		return errors.Wrapf(piaerrors.ErrVersionMismatch, "version %d", h.Version())
	}

	buff := bytebufferpool.Get()
	defer bytebufferpool.Put(buff)

	buff.WriteString("IPv4 Header\n")
	buff.WriteString("==============================\n")

	for _, fn := range []func(io.Writer, Header) error{
		DumpVersion,
		DumpHeaderLength,
		func(w io.Writer, h Header) error { return DumpTOS(w, h, mode) },
		DumpTotalLength,
		DumpIdentification,
		DumpFlagsFragmentOffset,
		DumpTTL,
		DumpProtocol,
		DumpChecksum,
		DumpAddresses,
	} {
		if err := fn(buff, h); err != nil {
			return err
		}
	}
	buff.WriteByte('\n')

	_, err := w.Write(buff.B)
	return err
}

// DumpSummary writes one line: ipv4 <src> >> <dst> <protocol>
func DumpSummary(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(
		w, "ipv4 %s >> %s %s\n", h.Source(), h.Destination(), h.Protocol(),
	)
	return err
}

func dumpLine(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func DumpVersion(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	return dumpLine(w, "version    : %d\n", h.Version())
}

func DumpHeaderLength(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	return dumpLine(
		w, "hdr length : %d byte (%d)\n", h.HeaderBytes(), h.HeaderLength(),
	)
}

// DumpTOS writes tos either as ip precedence or as dscp + ecn, the header
// does not tell which one applies.
func DumpTOS(w io.Writer, h Header, mode pia4go.TOSMode) error {
	if err := h.valid(); err != nil {
		return err
	}

	switch mode {
	case pia4go.TOSPrecedence:
		return dumpLine(
			w, "tos        : 0x%02x (precedence=%d '%s')\n",
			h.TOS(), h.Precedence(), precedenceNames[h.Precedence()],
		)
	case pia4go.TOSDSCP:
		return dumpLine(
			w, "tos        : 0x%02x (dscp=%d ecn=%d)\n",
			h.TOS(), h.DSCP(), h.ECN(),
		)
	default:
		return errors.Wrapf(piaerrors.ErrUnknownTOSMode, "%s", mode)
	}
}

func DumpTotalLength(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	return dumpLine(w, "total len  : %d\n", h.TotalLength())
}

func DumpIdentification(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	id := h.Identification()

	return dumpLine(w, "id         : %d(0x%04x)\n", id, id)
}

func DumpFlagsFragmentOffset(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	df, mf := 0, 0
	if h.DontFragment() {
		df = 1
	}
	if h.MoreFragments() {
		mf = 1
	}

	return dumpLine(
		w, "flags      : 0x%x (df=%d mf=%d)\nfrag off   : %d\n",
		h.Flags(), df, mf, h.FragmentOffset(),
	)
}

func DumpTTL(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	return dumpLine(w, "ttl        : %d\n", h.TTL())
}

func DumpProtocol(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	p := h.Protocol()

	return dumpLine(w, "protocol   : %s(0x%02x)\n", p, uint8(p))
}

func DumpChecksum(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	return dumpLine(w, "checksum   : 0x%04x\n", h.Checksum())
}

func DumpAddresses(w io.Writer, h Header) error {
	if err := h.valid(); err != nil {
		return err
	}

	return dumpLine(
		w, "src ip     : %s\ndest ip    : %s\n", h.Source(), h.Destination(),
	)
}
