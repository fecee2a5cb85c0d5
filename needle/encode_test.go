package needle

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name string
		in   Needle
		exp  []byte
	}{
		{"u8", U8(0x7f), []byte{0x7f}},
		{"i8 -1", I8(-1), []byte{0xff}},
		{"i8 min", I8(math.MinInt8), []byte{0x80}},
		{"u16 le", U16(LittleEndian, 0x1234), []byte{0x34, 0x12}},
		{"u16 be", U16(BigEndian, 0x1234), []byte{0x12, 0x34}},
		{"i16 le -2", I16(LittleEndian, -2), []byte{0xfe, 0xff}},
		{"i16 be -2", I16(BigEndian, -2), []byte{0xff, 0xfe}},
		{"u32 le", U32(LittleEndian, 0xdeadbeef), []byte{0xef, 0xbe, 0xad, 0xde}},
		{"u32 be", U32(BigEndian, 0xdeadbeef), []byte{0xde, 0xad, 0xbe, 0xef}},
		{"i32 be -1", I32(BigEndian, -1), []byte{0xff, 0xff, 0xff, 0xff}},
		{"u64 le", U64(LittleEndian, 0x0102030405060708), []byte{8, 7, 6, 5, 4, 3, 2, 1}},
		{"u64 be", U64(BigEndian, 0x0102030405060708), []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{"i64 le min", I64(LittleEndian, math.MinInt64), []byte{0, 0, 0, 0, 0, 0, 0, 0x80}},
		{"bytes", Bytes([]byte{0xca, 0xfe}), []byte{0xca, 0xfe}},
		{"str", Str("héllo"), []byte("héllo")},
		{"empty bytes", Bytes(nil), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Encode(tt.in)
			assert.Equal(t, len(tt.exp), got.Len())
			if len(tt.exp) > 0 {
				assert.Equal(t, tt.exp, got.Bytes())
			}
			if w := tt.in.Width(); w > 0 {
				assert.Equal(t, w, got.Len())
			}
		})
	}
}

func TestEncodeCopiesInput(t *testing.T) {
	src := []byte{1, 2, 3}
	o := Encode(Bytes(src))
	src[0] = 0xff
	assert.Equal(t, []byte{1, 2, 3}, o.Bytes())

	raw := []byte{9, 9}
	f := FromBytes(raw)
	raw[1] = 0
	assert.Equal(t, []byte{9, 9}, f.Bytes())
}

func TestOwnedString(t *testing.T) {
	assert.Equal(t, "34 12", Encode(U16(LittleEndian, 0x1234)).String())
	assert.Equal(t, "", Owned{}.String())
}

func TestDecodeRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	orders := []Endianness{LittleEndian, BigEndian}

	for i := 0; i < 500; i++ {
		v := rng.Uint64()
		for _, order := range orders {
			needles := []Needle{
				U8(uint8(v)), I8(int8(v)),
				U16(order, uint16(v)), I16(order, int16(v)),
				U32(order, uint32(v)), I32(order, int32(v)),
				U64(order, v), I64(order, int64(v)),
			}
			for _, n := range needles {
				got, err := Decode(n.Kind(), order, Encode(n).Bytes())
				require.NoError(t, err)
				if got.Kind() != n.Kind() || got.Uint64() != n.Uint64() || got.Int64() != n.Int64() {
					t.Fatalf("Decode(Encode(%v)) = %v", n, got)
				}
			}
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	_, err := Decode(KindU32, LittleEndian, []byte{1, 2})
	assert.ErrorIs(t, err, ErrShortBuffer)

	_, err = Decode(KindStr, LittleEndian, []byte("abc"))
	assert.ErrorIs(t, err, ErrNotNumeric)
}

func TestNeedleValues(t *testing.T) {
	assert.Equal(t, int64(-1), I8(-1).Int64())
	assert.Equal(t, uint64(0xff), I8(-1).Uint64())
	assert.Equal(t, int64(-300), I16(BigEndian, -300).Int64())
	assert.Equal(t, int64(40000), U16(BigEndian, 40000).Int64())
	assert.Equal(t, "i16(BE, -300)", I16(BigEndian, -300).String())
	assert.Equal(t, "u8(16)", U8(16).String())
	assert.True(t, KindI32.Signed())
	assert.False(t, KindBytes.Numeric())
}

func TestConstructorKinds(t *testing.T) {
	tests := []struct {
		n     Needle
		kind  Kind
		width int
	}{
		{U8(1), KindU8, 1},
		{I8(-1), KindI8, 1},
		{U16(BigEndian, 1), KindU16, 2},
		{I16(LittleEndian, -1), KindI16, 2},
		{U32(BigEndian, 1), KindU32, 4},
		{I32(LittleEndian, -1), KindI32, 4},
		{U64(BigEndian, 1), KindU64, 8},
		{I64(LittleEndian, -1), KindI64, 8},
		{Bytes([]byte{1}), KindBytes, 0},
		{Str("a"), KindStr, 0},
	}
	for _, tt := range tests {
		if got := tt.n.Kind(); got != tt.kind {
			t.Errorf("%v.Kind() = %v; want %v", tt.n, got, tt.kind)
		}
		if got := tt.n.Width(); got != tt.width {
			t.Errorf("%v.Width() = %d; want %d", tt.n, got, tt.width)
		}
	}
	assert.Equal(t, BigEndian, U32(BigEndian, 1).Order())
}

func TestParseEndianness(t *testing.T) {
	for in, exp := range map[string]Endianness{"le": LittleEndian, "BE": BigEndian, " little ": LittleEndian, "big": BigEndian} {
		got, err := ParseEndianness(in)
		require.NoError(t, err, in)
		assert.Equal(t, exp, got, in)
	}
	_, err := ParseEndianness("middle")
	assert.Error(t, err)
}
