package cbor

// Load repeatedly calls Decode over an input buffer, feeding each event to
// a Builder, and translates the outcome into one LoadError. This mirrors
// libcbor's cbor_load driver loop: the same NO_DATA / NOT_ENOUGH_DATA /
// MALFORMED / MEMORY_ERROR / SYNTAX_ERROR outcomes, and the same
// "no leaks on error" guarantee, reached here by never handing the caller a
// partially built tree -- Decref walks it back to nothing on any failure
// path.

// Option configures a Load call, using a functional-options style.
type Option func(*loadConfig)

type loadConfig struct {
	alloc      Allocator
	maxDepth   int
	strictUTF8 bool
}

// defaultMaxDepth bounds container nesting depth absent an explicit
// WithMaxDepth, guarding against stack exhaustion from adversarial input.
const defaultMaxDepth = 1024

func defaultLoadConfig() loadConfig {
	return loadConfig{alloc: globalAllocator, maxDepth: defaultMaxDepth, strictUTF8: false}
}

// WithAllocator overrides the storage allocator used for string payloads
// and definite array/map storage for this Load call only, without touching
// the process-wide allocator SetAllocs installs.
func WithAllocator(a Allocator) Option {
	return func(c *loadConfig) { c.alloc = a }
}

// WithMaxDepth overrides the maximum container nesting depth. A value <= 0
// is treated as "no limit", matching an explicit opt-out.
func WithMaxDepth(depth int) Option {
	return func(c *loadConfig) {
		if depth <= 0 {
			depth = int(^uint(0) >> 1) // math.MaxInt, without importing math here
		}
		c.maxDepth = depth
	}
}

// WithStrictUTF8 makes Load reject STRING (major type 3) payloads that are
// not well-formed UTF-8 with a SYNTAX_ERROR, rather than passing the raw
// bytes through uninterpreted.
func WithStrictUTF8(strict bool) Option {
	return func(c *loadConfig) { c.strictUTF8 = strict }
}

// Load decodes exactly one top-level CBOR data item from buf. On success it
// returns the item (refcount 1) and a zero LoadError. On failure it returns
// nil and a LoadError identifying the Code and the byte offset into buf
// where decoding stopped; any partially built tree is released before
// Load returns, so a failed Load leaks nothing.
func Load(buf []byte, opts ...Option) (*Item, LoadError) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	b := newBuilder(cfg.alloc, cfg.maxDepth, cfg.strictUTF8)
	cb := b.callbacks()

	offset := 0
	for {
		if b.done() {
			return b.root, LoadError{}
		}

		n, status := Decode(buf[offset:], cb, b)
		switch status {
		case StatusFinished:
			offset += n
			if b.creationFailed {
				b.release()
				return nil, LoadError{Code: ErrMemory, Position: offset}
			}
			if b.syntaxError {
				b.release()
				return nil, LoadError{Code: ErrSyntax, Position: offset}
			}
			if b.done() {
				return b.root, LoadError{}
			}
		case StatusNotEnoughData:
			b.release()
			if offset == 0 && len(buf) == 0 {
				return nil, LoadError{Code: ErrNoData, Position: offset}
			}
			return nil, LoadError{Code: ErrNotEnoughData, Position: offset}
		case StatusError:
			b.release()
			return nil, LoadError{Code: ErrMalformed, Position: offset}
		}
	}
}

// release discards everything the builder has built so far: the root, if
// assembled, and every still-open frame's container (which transitively
// owns whatever had already been attached to it). This is what guarantees
// Load never hands back a partially-built tree on any error path.
func (b *Builder) release() {
	if b.root != nil {
		Decref(&b.root)
	}
	for i := len(b.stack) - 1; i >= 0; i-- {
		it := b.stack[i].item
		DecrefIntermediate(it)
	}
	b.stack = nil
}
