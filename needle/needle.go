// Package needle turns typed search values into byte patterns.
//
// A Needle is the caller's search intent: an integer of a given width and
// signedness, raw bytes or text. Encode converts it into an Owned pattern
// that no longer references the caller's memory and can be handed to a
// background search.
package needle

import "fmt"

// Kind identifies the variant held by a Needle.
type Kind uint8

const (
	KindU8 Kind = iota
	KindI8
	KindU16
	KindI16
	KindU32
	KindI32
	KindU64
	KindI64
	KindBytes
	KindStr
)

var kindNames = [...]string{
	KindU8:    "u8",
	KindI8:    "i8",
	KindU16:   "u16",
	KindI16:   "i16",
	KindU32:   "u32",
	KindI32:   "i32",
	KindU64:   "u64",
	KindI64:   "i64",
	KindBytes: "bytes",
	KindStr:   "str",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Width returns the encoded size of numeric kinds and 0 for Bytes and Str.
func (k Kind) Width() int {
	switch k {
	case KindU8, KindI8:
		return 1
	case KindU16, KindI16:
		return 2
	case KindU32, KindI32:
		return 4
	case KindU64, KindI64:
		return 8
	}
	return 0
}

// Signed reports whether k is a two's-complement integer kind.
func (k Kind) Signed() bool {
	switch k {
	case KindI8, KindI16, KindI32, KindI64:
		return true
	}
	return false
}

// Numeric reports whether k is one of the integer kinds.
func (k Kind) Numeric() bool {
	return k.Width() > 0
}

// Needle is a typed search value. The zero value is U8(0).
//
// Needles borrow the slice or string given to Bytes and Str; Encode copies
// them, so the borrowed data may change once Encode has returned.
type Needle struct {
	kind  Kind
	order Endianness
	bits  uint64 // numeric value, sign-extended for signed kinds
	data  []byte
	text  string
}

// U8 searches for the single byte v.
func U8(v uint8) Needle { return Needle{kind: KindU8, bits: uint64(v)} }

// I8 searches for the two's-complement byte of v.
func I8(v int8) Needle { return Needle{kind: KindI8, bits: uint64(v)} }

// U16 searches for v encoded in order.
func U16(order Endianness, v uint16) Needle {
	return Needle{kind: KindU16, order: order, bits: uint64(v)}
}

// I16 searches for the two's-complement encoding of v in order.
func I16(order Endianness, v int16) Needle {
	return Needle{kind: KindI16, order: order, bits: uint64(v)}
}

// U32 searches for v encoded in order.
func U32(order Endianness, v uint32) Needle {
	return Needle{kind: KindU32, order: order, bits: uint64(v)}
}

// I32 is the signed form of U32.
func I32(order Endianness, v int32) Needle {
	return Needle{kind: KindI32, order: order, bits: uint64(v)}
}

// U64 searches for v as 8 bytes in order.
func U64(order Endianness, v uint64) Needle {
	return Needle{kind: KindU64, order: order, bits: v}
}

// I64 is the signed form of U64.
func I64(order Endianness, v int64) Needle {
	return Needle{kind: KindI64, order: order, bits: uint64(v)}
}

// Bytes searches for b verbatim.
func Bytes(b []byte) Needle { return Needle{kind: KindBytes, data: b} }

// Str searches for the UTF-8 bytes of s verbatim. No normalization is done.
func Str(s string) Needle { return Needle{kind: KindStr, text: s} }

// Kind reports which constructor built n.
func (n Needle) Kind() Kind { return n.kind }

// Order is the byte order used for 16, 32 and 64 bit kinds.
func (n Needle) Order() Endianness { return n.order }

// Width is the encoded length of numeric needles, 0 for Bytes and Str.
func (n Needle) Width() int { return n.kind.Width() }

// Uint64 returns the numeric value zero-extended to 64 bits.
// Signed kinds are reinterpreted at their own width first.
func (n Needle) Uint64() uint64 {
	switch n.kind.Width() {
	case 1:
		return n.bits & 0xff
	case 2:
		return n.bits & 0xffff
	case 4:
		return n.bits & 0xffffffff
	}
	return n.bits
}

// Int64 returns the numeric value sign-extended from its own width for
// signed kinds, or zero-extended for unsigned ones.
func (n Needle) Int64() int64 {
	if !n.kind.Signed() {
		return int64(n.Uint64())
	}
	switch n.kind.Width() {
	case 1:
		return int64(int8(n.bits))
	case 2:
		return int64(int16(n.bits))
	case 4:
		return int64(int32(n.bits))
	}
	return int64(n.bits)
}

func (n Needle) String() string {
	switch {
	case n.kind == KindBytes:
		return fmt.Sprintf("bytes(% X)", n.data)
	case n.kind == KindStr:
		return fmt.Sprintf("str(%q)", n.text)
	case n.kind.Width() == 1 && n.kind.Signed():
		return fmt.Sprintf("%s(%d)", n.kind, n.Int64())
	case n.kind.Width() == 1:
		return fmt.Sprintf("%s(%d)", n.kind, n.Uint64())
	case n.kind.Signed():
		return fmt.Sprintf("%s(%s, %d)", n.kind, n.order, n.Int64())
	default:
		return fmt.Sprintf("%s(%s, %d)", n.kind, n.order, n.Uint64())
	}
}
