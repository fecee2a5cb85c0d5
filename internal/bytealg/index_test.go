package bytealg

import (
	"bytes"
	"math/rand"
	"testing"
)

func TestIndex(t *testing.T) {
	indexTests := []struct {
		str, substr string
	}{
		{"abc", "bc"},
		{"abc", "bcd"},
		{"abc", ""},
		{"", "a"},
		{"0123abcd", "3"},
		// 2-byte needle
		{"xxxxxx", "01"},
		{"01xxxx", "01"},
		{"xx01xx", "01"},
		{"xxxx01", "01"},
		{"01xxxxx"[1:], "01"},
		{"xxxxx01"[:6], "01"},
		// 3-byte needle
		{"xxxxxxx", "012"},
		{"012xxxx", "012"},
		{"xx012xx", "012"},
		{"xxxx012", "012"},
		{"012xxxxx"[1:], "012"},
		{"xxxxx012"[:7], "012"},
		// 8-byte needle
		{"xxxxxxxxxxxx", "01234567"},
		{"xx01234567xx", "01234567"},
		{"xxxx01234567", "01234567"},
		{"xxxxx01234567"[:12], "01234567"},
		// partial matches
		{"xx01x", "012"},
		{"xx0123x", "01234"},
		{"0101x340123401234xxxx", "01234"},
		// binary
		{"\x00\x00\x00\x00\x34\x12\x00", "\x34\x12"},
		{"\xff\xff\xff\xfe", "\xff\xfe"},
		{"\x00\x00\x00", "\x00\x00\x00\x00"},
		{"\x00\x00\x00\x00", "\x00\x00"},
		// fuzzed cases
		{"000", "0\x00"},
		{"00000000000000000", "0`"},
		{"0000", "\x00\x00\x00"},
	}

	for _, tt := range indexTests {
		want := bytes.Index([]byte(tt.str), []byte(tt.substr))
		if got := Compile([]byte(tt.substr)).Index([]byte(tt.str)); got != want {
			t.Errorf("Index(%q, %q) = %d; want %d", tt.str, tt.substr, got, want)
		}
	}
}

func TestIndexRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	// Small alphabets force many partial matches and exercise both stages.
	for _, alphabet := range []int{2, 4, 256} {
		for i := 0; i < 2000; i++ {
			hay := make([]byte, rng.Intn(300))
			for j := range hay {
				hay[j] = byte(rng.Intn(alphabet))
			}
			var pat []byte
			if len(hay) > 0 && rng.Intn(2) == 0 {
				start := rng.Intn(len(hay))
				end := start + 1 + rng.Intn(10)
				if end > len(hay) {
					end = len(hay)
				}
				pat = append(pat, hay[start:end]...)
			} else {
				pat = make([]byte, 1+rng.Intn(6))
				for j := range pat {
					pat[j] = byte(rng.Intn(alphabet))
				}
			}
			want := bytes.Index(hay, pat)
			if got := Compile(pat).Index(hay); got != want {
				t.Fatalf("Index(%x, %x) = %d; want %d", hay, pat, got, want)
			}
		}
	}
}

func TestIndexFallsBackToHorspool(t *testing.T) {
	// Every byte of the haystack is a filter hit; only the tail matches.
	hay := bytes.Repeat([]byte{'Q'}, 1<<16)
	hay[len(hay)-1] = 'A'
	pat := []byte("QQQA")

	p := Compile(pat)
	resume, done := p.indexRare(hay)
	if done {
		t.Fatalf("indexRare finished early at %d; want fallback", resume)
	}
	if got, want := p.Index(hay), len(hay)-4; got != want {
		t.Errorf("Index = %d; want %d", got, want)
	}
}

func TestRarest(t *testing.T) {
	tests := []struct {
		pat string
		off int
	}{
		{"a", 0},
		{"\x00\x00Q\x00", 2},
		{"ee", 1},
		{"\xff\x00\x7f", 2},
	}
	for _, tt := range tests {
		if got := rarest([]byte(tt.pat)); got != tt.off {
			t.Errorf("rarest(%q) = %d; want %d", tt.pat, got, tt.off)
		}
	}
	if byteRank[0x00] <= byteRank['Q'] {
		t.Errorf("byteRank[0x00] = %d should exceed byteRank['Q'] = %d", byteRank[0x00], byteRank['Q'])
	}
}
