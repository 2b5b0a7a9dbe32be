package ip

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/frozenpine/pia4go"
	piaerrors "github.com/frozenpine/pia4go/errors"
)

const (
	DefaultTTL = 64
)

// Option adjusts the header template of a Context
type Option func(ctx *Context)

func WithTTL(ttl uint8) Option {
	return func(ctx *Context) {
		ctx.template().SetTTL(ttl)
	}
}

func WithTOS(tos uint8) Option {
	return func(ctx *Context) {
		ctx.template().SetTOS(tos)
	}
}

func WithProtocol(p pia4go.TransProto) Option {
	return func(ctx *Context) {
		ctx.template().SetProtocol(p)
	}
}

func WithDontFragment() Option {
	return func(ctx *Context) {
		hdr := ctx.template()
		hdr.SetFlags(hdr.Flags() | FlagDontFragment)
	}
}

// WithIdentification first identification issued by the context
func WithIdentification(start uint16) Option {
	return func(ctx *Context) {
		ctx.seq = start
	}
}

// Context owns the header template new datagrams are cloned from and the
// identification counter. It is safe for concurrent use.
type Context struct {
	mu   sync.Mutex
	tmpl [MinHeaderSize]byte
	seq  uint16
}

func NewContext(opts ...Option) *Context {
	ctx := Context{}

	tmpl := ctx.template()
	tmpl.SetVersion(Version4)
	tmpl.SetHeaderLength(MinHeaderSize / 4)
	tmpl.SetTotalLength(MinHeaderSize)
	tmpl.SetTTL(DefaultTTL)
	tmpl.SetProtocol(pia4go.ICMP)

	for _, opt := range opts {
		if opt != nil {
			opt(&ctx)
		}
	}

	return &ctx
}

func (ctx *Context) template() Header {
	return Header(ctx.tmpl[:])
}

// Template returns a working copy of the template header.
func (ctx *Context) Template() Header {
	hdr := make(Header, MinHeaderSize)

	ctx.mu.Lock()
	copy(hdr, ctx.tmpl[:])
	ctx.mu.Unlock()

	return hdr
}

// NextIdentification returns the current identification and advances the
// counter, wrapping at 65536.
func (ctx *Context) NextIdentification() uint16 {
	ctx.mu.Lock()
	defer ctx.mu.Unlock()

	id := ctx.seq
	ctx.seq++

	return id
}

// NewHeader clones the template into a buffer with room for payloadLen
// bytes of payload, then fills in addresses, identification and total
// length. The payload region is zeroed.
func (ctx *Context) NewHeader(src, dst pia4go.IPv4Addr, payloadLen int) (Header, error) {
	if payloadLen < 0 || payloadLen > MaxTotalLength-MinHeaderSize {
		return nil, errors.Wrapf(
			piaerrors.ErrInconsistent, "payload length %d out of range", payloadLen,
		)
	}

	total := MinHeaderSize + payloadLen
	hdr := make(Header, total)

	ctx.mu.Lock()
	copy(hdr, ctx.tmpl[:])
	id := ctx.seq
	ctx.seq++
	ctx.mu.Unlock()

	hdr.SetAddresses(src, dst)
	hdr.SetIdentification(id)
	hdr.SetTotalLength(uint16(total))

	return hdr, nil
}
