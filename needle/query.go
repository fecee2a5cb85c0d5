package needle

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/segmentio/asm/utf8"
	"golang.org/x/text/encoding/unicode"

	"github.com/mhr3/hexseek/intparse"
)

// SearchType is the kind of value a user asks to search for.
type SearchType uint8

const (
	Bit8 SearchType = iota
	Bit16
	Bit32
	Bit64
	HexBytes
	Text
)

var searchTypeNames = [...]string{
	Bit8:     "8-Bit",
	Bit16:    "16-Bit",
	Bit32:    "32-Bit",
	Bit64:    "64-Bit",
	HexBytes: "Bytes",
	Text:     "String",
}

func (t SearchType) String() string {
	if int(t) < len(searchTypeNames) {
		return searchTypeNames[t]
	}
	return fmt.Sprintf("SearchType(%d)", uint8(t))
}

// ParseSearchType accepts u8/u16/u32/u64 (or 8/16/32/64), bytes and string.
func ParseSearchType(s string) (SearchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "u8", "i8", "8", "8-bit":
		return Bit8, nil
	case "u16", "i16", "16", "16-bit":
		return Bit16, nil
	case "u32", "i32", "32", "32-bit":
		return Bit32, nil
	case "u64", "i64", "64", "64-bit":
		return Bit64, nil
	case "bytes", "hex":
		return HexBytes, nil
	case "string", "str", "text":
		return Text, nil
	}
	return 0, fmt.Errorf("needle: unknown search type %q", s)
}

// EndiannessEnabled reports whether byte order affects the encoding.
func (t SearchType) EndiannessEnabled() bool {
	return t == Bit16 || t == Bit32 || t == Bit64
}

// SignednessEnabled reports whether the signed flag is meaningful.
func (t SearchType) SignednessEnabled() bool {
	return t <= Bit64
}

// EncodingEnabled reports whether a text encoding applies.
func (t SearchType) EncodingEnabled() bool {
	return t == Text
}

// TextEncoding selects how Text queries are turned into bytes.
type TextEncoding uint8

const (
	UTF8 TextEncoding = iota
	UTF16LE
	UTF16BE
)

func (e TextEncoding) String() string {
	switch e {
	case UTF8:
		return "UTF8"
	case UTF16LE:
		return "UTF16LE"
	case UTF16BE:
		return "UTF16BE"
	}
	return fmt.Sprintf("TextEncoding(%d)", uint8(e))
}

func ParseTextEncoding(s string) (TextEncoding, error) {
	switch strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "-", "")) {
	case "utf8", "":
		return UTF8, nil
	case "utf16le", "utf16":
		return UTF16LE, nil
	case "utf16be":
		return UTF16BE, nil
	}
	return 0, fmt.Errorf("needle: unknown text encoding %q", s)
}

var (
	ErrEmptyQuery  = errors.New("needle: empty search input")
	ErrOddHex      = errors.New("needle: hex string must have an even number of characters")
	ErrInvalidHex  = errors.New("needle: invalid hex byte")
	ErrInvalidUTF8 = errors.New("needle: input is not valid UTF-8")
)

// Query is raw user input plus the options that decide how to interpret it.
type Query struct {
	Type     SearchType
	Signed   bool
	Order    Endianness
	Encoding TextEncoding
	Input    string
}

// Needle parses the input into a typed needle. HexBytes and non-UTF-8 text
// queries have no typed form and go through Owned directly.
func (q Query) Needle() (Needle, error) {
	if q.Input == "" {
		return Needle{}, ErrEmptyQuery
	}
	switch q.Type {
	case Bit8:
		if q.Signed {
			v, err := intparse.ParseI8(q.Input)
			return I8(v), err
		}
		v, err := intparse.ParseU8(q.Input)
		return U8(v), err
	case Bit16:
		if q.Signed {
			v, err := intparse.ParseI16(q.Input)
			return I16(q.Order, v), err
		}
		v, err := intparse.ParseU16(q.Input)
		return U16(q.Order, v), err
	case Bit32:
		if q.Signed {
			v, err := intparse.ParseI32(q.Input)
			return I32(q.Order, v), err
		}
		v, err := intparse.ParseU32(q.Input)
		return U32(q.Order, v), err
	case Bit64:
		if q.Signed {
			v, err := intparse.ParseI64(q.Input)
			return I64(q.Order, v), err
		}
		v, err := intparse.ParseU64(q.Input)
		return U64(q.Order, v), err
	case Text:
		if q.Encoding != UTF8 {
			return Needle{}, fmt.Errorf("needle: %s text has no typed form", q.Encoding)
		}
		if !utf8.Valid([]byte(q.Input)) {
			return Needle{}, ErrInvalidUTF8
		}
		return Str(q.Input), nil
	}
	return Needle{}, fmt.Errorf("needle: %s has no typed form", q.Type)
}

// Owned parses and encodes the query in one step.
func (q Query) Owned() (Owned, error) {
	if q.Input == "" {
		return Owned{}, ErrEmptyQuery
	}
	switch {
	case q.Type == HexBytes:
		b, err := ParseHex(q.Input)
		if err != nil {
			return Owned{}, err
		}
		return Owned{b: b}, nil
	case q.Type == Text && q.Encoding != UTF8:
		return encodeUTF16(q.Input, q.Encoding)
	}
	n, err := q.Needle()
	if err != nil {
		return Owned{}, err
	}
	return Encode(n), nil
}

// ParseHex reads hex byte pairs such as "41 42 43", "414243" or
// "0x41 0x42". Spaces and 0x markers are ignored.
func ParseHex(s string) ([]byte, error) {
	cleaned := strings.ReplaceAll(s, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "0x", "")
	cleaned = strings.ReplaceAll(cleaned, "0X", "")
	if len(cleaned)%2 != 0 {
		return nil, ErrOddHex
	}
	b, err := hex.DecodeString(cleaned)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	return b, nil
}

func encodeUTF16(s string, enc TextEncoding) (Owned, error) {
	if !utf8.Valid([]byte(s)) {
		return Owned{}, ErrInvalidUTF8
	}
	order := unicode.LittleEndian
	if enc == UTF16BE {
		order = unicode.BigEndian
	}
	b, err := unicode.UTF16(order, unicode.IgnoreBOM).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return Owned{}, fmt.Errorf("needle: encode %s: %w", enc, err)
	}
	return Owned{b: b}, nil
}
