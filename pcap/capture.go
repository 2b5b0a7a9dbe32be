// Package pcap feeds frames recorded in pcap / pcapng files to a handler.
package pcap

import (
	"context"
	"io"
	"os"
	"regexp"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	"github.com/frozenpine/pia4go/cache"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

var (
	dataSourcePattern = regexp.MustCompile(`^(?P<proto>[a-z]+)://(?P<source>.+)$`)
)

type packetReader interface {
	ZeroCopyReadPacketData() ([]byte, gopacket.CaptureInfo, error)
	LinkType() layers.LinkType
}

// Handle opened capture source
type Handle struct {
	source string
	file   *os.File
	reader packetReader
	pool   *cache.BytesPool
}

// CreateHandler opens data source in form of file://<path>, classic pcap
// is tried first then pcapng.
func CreateHandler(dataSrc string) (*Handle, error) {
	srcMatch := dataSourcePattern.FindStringSubmatch(dataSrc)
	if srcMatch == nil {
		return nil, errors.Wrap(piaerrors.ErrUnknownSource, dataSrc)
	}

	var proto, source string

	for idx, name := range dataSourcePattern.SubexpNames() {
		switch name {
		case "proto":
			proto = srcMatch[idx]
		case "source":
			source = srcMatch[idx]
		}
	}

	switch proto {
	case "file":
		return openFile(source)
	default:
		return nil, errors.Wrap(piaerrors.ErrUnknownSource, "unknown pcap protocol: "+proto)
	}
}

func openFile(path string) (*Handle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	handle := Handle{
		source: path,
		file:   file,
		pool:   cache.NewBytesPool(0),
	}

	if handle.reader, err = pcapgo.NewReader(file); err == nil {
		return &handle, nil
	}

	pia4go.Logger().WithError(err).WithField("source", path).Debug(
		"not a classic pcap file, try pcapng",
	)

	if _, err = file.Seek(0, io.SeekStart); err != nil {
		file.Close()
		return nil, errors.WithStack(err)
	}

	if handle.reader, err = pcapgo.NewNgReader(file, pcapgo.DefaultNgReaderOptions); err != nil {
		file.Close()
		return nil, errors.Wrapf(err, "open capture file %s", path)
	}

	return &handle, nil
}

// LinkType link layer of captured frames
func (h *Handle) LinkType() layers.LinkType {
	return h.reader.LinkType()
}

func (h *Handle) Close() error {
	return h.file.Close()
}

// StartCapture hands every frame to fn until source exhausted or ctx done.
// A handler failure is logged and capture goes on, except io.EOF which ends
// the capture without error.
func StartCapture(ctx context.Context, h *Handle, fn pia4go.FrameHandler) error {
	if h == nil {
		return errors.New("nil capture handle")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	log := pia4go.Logger().WithField("source", h.source)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		data, ci, err := h.reader.ZeroCopyReadPacketData()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", h.source)
		}

		if fn == nil {
			continue
		}

		frame := h.pool.Clone(data)
		err = fn(ci.Timestamp, frame)
		h.pool.PutSlice(frame)

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			log.WithError(err).WithField("ts", ci.Timestamp).Warn("frame handler failed")
		}
	}
}
