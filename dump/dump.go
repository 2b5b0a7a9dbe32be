// Package dump renders a header tree, ethernet -> ipv4 -> icmp, as text.
package dump

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/frozenpine/pia4go"
	"github.com/frozenpine/pia4go/eth"
	"github.com/frozenpine/pia4go/icmp"
	"github.com/frozenpine/pia4go/ip"
)

// Options controls dump output
type Options struct {
	// Detail selects the multi-line field dump instead of summary lines
	Detail bool
	// TOS type of service interpretation used by detail dumps
	TOS pia4go.TOSMode
}

func (opts Options) tosMode() pia4go.TOSMode {
	if opts.TOS == 0 {
		return pia4go.DefaultTOSMode
	}

	return opts.TOS
}

// Frame dumps an ethernet frame and every layer inside it that this module
// understands.
func Frame(w io.Writer, buff []byte, opts Options) error {
	frame, err := eth.Parse(buff)
	if err != nil {
		return err
	}

	if opts.Detail {
		err = eth.DumpDetail(w, frame)
	} else {
		err = eth.DumpSummary(w, frame)
	}
	if err != nil {
		return err
	}

	if ethType := frame.Type(); ethType != pia4go.EtherTypeIPv4 {
		pia4go.Logger().WithField("ether_type", ethType).Debug("payload not decoded")
		return nil
	}

	return Datagram(w, frame.Payload(), opts)
}

// Datagram dumps an ipv4 datagram and its icmp payload.
func Datagram(w io.Writer, buff []byte, opts Options) error {
	hdr, err := ip.Parse(buff)
	if err != nil {
		return err
	}

	if opts.Detail {
		err = ip.Dump(w, hdr, opts.tosMode())
	} else {
		err = ip.DumpSummary(w, hdr)
	}
	if err != nil {
		return err
	}

	switch proto := hdr.Protocol(); proto {
	case pia4go.ICMP:
		if opts.Detail {
			return icmp.DumpDetail(w, hdr)
		}

		msg, err := icmp.FromIPv4(hdr)
		if err != nil {
			return err
		}

		return icmp.DumpSummary(w, msg)
	default:
		pia4go.Logger().WithFields(logrus.Fields{
			"protocol": proto,
			"src":      hdr.Source(),
			"dst":      hdr.Destination(),
		}).Debug("payload not decoded")

		return nil
	}
}
