package icmp

import (
	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	"github.com/frozenpine/pia4go/cache"
	piaerrors "github.com/frozenpine/pia4go/errors"
	"github.com/frozenpine/pia4go/ip"
)

// NewEchoRequest builds an ipv4 datagram carrying an echo request from the
// context template. The icmp checksum is left zero for the sender to fill.
func NewEchoRequest(
	ctx *ip.Context, src, dst pia4go.IPv4Addr, id, seq uint16, data []byte,
) (ip.Header, error) {
	if ctx == nil {
		return nil, errors.New("nil ip context")
	}

	hdr, err := ctx.NewHeader(src, dst, HeaderSize+EchoHeaderSize+len(data))
	if err != nil {
		return nil, err
	}
	hdr.SetProtocol(pia4go.ICMP)

	payload, err := hdr.Payload()
	if err != nil {
		return nil, err
	}

	msg := Message(payload)
	msg.SetType(TypeEchoRequest)
	msg.SetCode(0)
	msg.SetChecksum(0)

	cur := cache.NewBuffer(payload[HeaderSize:])

	if err := piaerrors.Join(cur.WriteNShort(id), cur.WriteNShort(seq)); err != nil {
		return nil, errors.WithMessage(err, "build echo request")
	}

	if _, err := cur.Write(data); err != nil {
		return nil, errors.WithMessage(err, "build echo request")
	}

	return hdr, nil
}
