package needle

import (
	"fmt"
	"strings"
)

// Endianness selects the byte order of multi-byte numeric needles.
type Endianness uint8

const (
	LittleEndian Endianness = iota
	BigEndian
)

func (e Endianness) String() string {
	switch e {
	case BigEndian:
		return "BE"
	case LittleEndian:
		return "LE"
	default:
		return fmt.Sprintf("Endianness(%d)", uint8(e))
	}
}

// ParseEndianness accepts "le", "little", "be" and "big" in any case.
func ParseEndianness(s string) (Endianness, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "le", "little", "little-endian":
		return LittleEndian, nil
	case "be", "big", "big-endian":
		return BigEndian, nil
	}
	return 0, fmt.Errorf("needle: unknown endianness %q", s)
}
