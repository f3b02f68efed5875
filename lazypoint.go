package eckey

import (
	"sync"

	"github.com/GIMICI/eckey/group"
)

// lazyPoint stores a public point either as raw SEC1 bytes or as an
// already-decoded point (or both, once decoding has happened). Decoding a
// compressed point requires a modular square root, which is expensive
// enough that a keypair built from trusted (d, Q) bytes shouldn't pay for
// it until something actually needs y. The decode happens at most once,
// behind a sync.Once, so the result is safely published to every later
// reader regardless of which goroutine triggers it.
type lazyPoint struct {
	once       sync.Once
	raw        []byte
	compressed bool
	point      *group.Point
	decodeErr  error
}

// newLazyPointFromBytes stores b for later decoding, checking only the
// cheap structural property (length and prefix byte) up front so bad input
// is rejected early without paying for a square root.
func newLazyPointFromBytes(b []byte) (*lazyPoint, error) {
	switch len(b) {
	case 33:
		if b[0] != 0x02 && b[0] != 0x03 {
			return nil, group.ErrInvalidPointEncoding
		}
		return &lazyPoint{raw: b, compressed: true}, nil
	case 65:
		if b[0] != 0x04 {
			return nil, group.ErrInvalidPointEncoding
		}
		return &lazyPoint{raw: b, compressed: false}, nil
	default:
		return nil, group.ErrInvalidPointEncoding
	}
}

// newLazyPointFromPoint wraps an already-computed point, skipping the
// decode step entirely since the caller already has affine coordinates.
func newLazyPointFromPoint(p *group.Point, compressed bool) *lazyPoint {
	lp := &lazyPoint{point: p, compressed: compressed}
	lp.once.Do(func() {}) // mark decoded; Point() never re-decodes
	return lp
}

func (lp *lazyPoint) decode() {
	lp.once.Do(func() {
		if lp.point != nil {
			return
		}
		lp.point, lp.decodeErr = group.DecodeSEC1(lp.raw)
	})
}

// Point returns the decoded point, decoding from raw bytes on first call.
func (lp *lazyPoint) Point() (*group.Point, error) {
	lp.decode()
	return lp.point, lp.decodeErr
}

// Bytes returns the SEC1 encoding at this lazyPoint's compression flag:
// the raw bytes if they were supplied directly, otherwise a fresh encoding
// of the decoded point (e.g. after WithCompressed flips the flag). The
// fresh encoding is not stored, so Bytes never writes to lp.
func (lp *lazyPoint) Bytes() ([]byte, error) {
	if lp.raw != nil {
		return lp.raw, nil
	}
	p, err := lp.Point()
	if err != nil {
		return nil, err
	}
	var b []byte
	if lp.compressed {
		b, err = group.EncodeCompressed(p)
	} else {
		b, err = group.EncodeUncompressed(p)
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// WithCompressed returns a new lazyPoint for the same mathematical point
// but with the requested compression flag. The underlying decode, if it
// already happened, is shared rather than repeated.
func (lp *lazyPoint) WithCompressed(compressed bool) *lazyPoint {
	if lp.compressed == compressed {
		return lp
	}
	lp.decode()
	if lp.decodeErr != nil {
		return &lazyPoint{compressed: compressed, decodeErr: lp.decodeErr}
	}
	return newLazyPointFromPoint(lp.point, compressed)
}

// Equal compares two lazy points by decoded affine coordinates; it
// deliberately ignores the compression flag, which affects encoding only,
// never the mathematical identity of the point (spec.md §3).
func (lp *lazyPoint) Equal(other *lazyPoint) bool {
	if lp == nil || other == nil {
		return lp == other
	}
	p1, err1 := lp.Point()
	p2, err2 := other.Point()
	if err1 != nil || err2 != nil {
		return false
	}
	return p1.Equal(p2)
}
