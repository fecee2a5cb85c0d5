package needle

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrShortBuffer is returned by Decode when fewer bytes than the kind's
	// width are available.
	ErrShortBuffer = errors.New("needle: buffer shorter than kind width")
	// ErrNotNumeric is returned by Decode for Bytes and Str kinds.
	ErrNotNumeric = errors.New("needle: kind is not numeric")
)

// Owned is an encoded needle: an immutable byte pattern that owns its memory.
type Owned struct {
	b []byte
}

// FromBytes copies b into a new Owned pattern.
func FromBytes(b []byte) Owned {
	return Owned{b: append([]byte(nil), b...)}
}

// Bytes returns the pattern. The slice must not be modified.
func (o Owned) Bytes() []byte { return o.b }

func (o Owned) Len() int { return len(o.b) }

// String renders the pattern as space separated upper-case hex.
func (o Owned) String() string {
	if len(o.b) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.Grow(len(o.b) * 3)
	for i, c := range o.b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

// Encode converts n into its byte pattern. Encoding is total: every Needle
// has exactly one encoding.
func Encode(n Needle) Owned {
	switch n.kind {
	case KindBytes:
		return FromBytes(n.data)
	case KindStr:
		return Owned{b: []byte(n.text)}
	}

	w := n.kind.Width()
	b := make([]byte, 0, w)
	order := byteOrder(n.order)
	switch w {
	case 1:
		b = append(b, byte(n.bits))
	case 2:
		b = order.AppendUint16(b, uint16(n.bits))
	case 4:
		b = order.AppendUint32(b, uint32(n.bits))
	case 8:
		b = order.AppendUint64(b, n.bits)
	}
	return Owned{b: b}
}

// Decode reads a numeric needle of the given kind from the start of b.
// It is the inverse of Encode for numeric kinds.
func Decode(kind Kind, order Endianness, b []byte) (Needle, error) {
	w := kind.Width()
	if w == 0 {
		return Needle{}, ErrNotNumeric
	}
	if len(b) < w {
		return Needle{}, fmt.Errorf("%w: %s needs %d bytes, have %d", ErrShortBuffer, kind, w, len(b))
	}

	bo := byteOrder(order)
	var bits uint64
	switch w {
	case 1:
		bits = uint64(b[0])
	case 2:
		bits = uint64(bo.Uint16(b))
	case 4:
		bits = uint64(bo.Uint32(b))
	case 8:
		bits = bo.Uint64(b)
	}

	switch kind {
	case KindU8:
		return U8(uint8(bits)), nil
	case KindI8:
		return I8(int8(bits)), nil
	case KindU16:
		return U16(order, uint16(bits)), nil
	case KindI16:
		return I16(order, int16(bits)), nil
	case KindU32:
		return U32(order, uint32(bits)), nil
	case KindI32:
		return I32(order, int32(bits)), nil
	case KindU64:
		return U64(order, bits), nil
	default:
		return I64(order, int64(bits)), nil
	}
}

type byteOrderer interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func byteOrder(e Endianness) byteOrderer {
	if e == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
