package needle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mhr3/hexseek/intparse"
)

func TestQueryOwned(t *testing.T) {
	tests := []struct {
		q   Query
		exp []byte
	}{
		{Query{Type: Bit8, Input: "0x10"}, []byte{0x10}},
		{Query{Type: Bit8, Signed: true, Input: "-1"}, []byte{0xff}},
		{Query{Type: Bit16, Order: LittleEndian, Input: "0x1234"}, []byte{0x34, 0x12}},
		{Query{Type: Bit16, Order: BigEndian, Input: "4660"}, []byte{0x12, 0x34}},
		{Query{Type: Bit32, Signed: true, Order: BigEndian, Input: "-2"}, []byte{0xff, 0xff, 0xff, 0xfe}},
		{Query{Type: Bit64, Order: LittleEndian, Input: "0b1"}, []byte{1, 0, 0, 0, 0, 0, 0, 0}},
		{Query{Type: HexBytes, Input: "41 42 43"}, []byte("ABC")},
		{Query{Type: HexBytes, Input: "0x410x42"}, []byte("AB")},
		{Query{Type: HexBytes, Input: "dead BEEF"}, []byte{0xde, 0xad, 0xbe, 0xef}},
		{Query{Type: Text, Input: "hello"}, []byte("hello")},
		{Query{Type: Text, Encoding: UTF16LE, Input: "hi"}, []byte{'h', 0, 'i', 0}},
		{Query{Type: Text, Encoding: UTF16BE, Input: "hi"}, []byte{0, 'h', 0, 'i'}},
	}

	for _, tt := range tests {
		got, err := tt.q.Owned()
		require.NoError(t, err, "%+v", tt.q)
		assert.Equal(t, tt.exp, got.Bytes(), "%+v", tt.q)
	}
}

func TestQueryErrors(t *testing.T) {
	_, err := Query{Type: Bit8, Input: ""}.Owned()
	assert.ErrorIs(t, err, ErrEmptyQuery)

	_, err = Query{Type: Bit8, Input: "256"}.Owned()
	assert.ErrorIs(t, err, &intparse.Error{Kind: intparse.Overflow})

	_, err = Query{Type: Bit16, Input: "0xZZ"}.Owned()
	assert.ErrorIs(t, err, &intparse.Error{Kind: intparse.Invalid})

	_, err = Query{Type: HexBytes, Input: "414"}.Owned()
	assert.ErrorIs(t, err, ErrOddHex)

	_, err = Query{Type: HexBytes, Input: "4G"}.Owned()
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = Query{Type: Text, Input: "a\xffb"}.Owned()
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestSearchTypeRules(t *testing.T) {
	assert.False(t, Bit8.EndiannessEnabled())
	assert.True(t, Bit16.EndiannessEnabled())
	assert.True(t, Bit64.SignednessEnabled())
	assert.False(t, HexBytes.SignednessEnabled())
	assert.True(t, Text.EncodingEnabled())
	assert.False(t, Bit32.EncodingEnabled())

	st, err := ParseSearchType("U32")
	require.NoError(t, err)
	assert.Equal(t, Bit32, st)
	assert.Equal(t, "32-Bit", st.String())

	enc, err := ParseTextEncoding("utf-16be")
	require.NoError(t, err)
	assert.Equal(t, UTF16BE, enc)
}
