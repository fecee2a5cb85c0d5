package bytealg

// byteRank estimates how common each byte value is in binary files.
// Lower rank = rarer byte = better candidate for the prefilter.
// Text bytes follow the usual English/source-code frequencies; zero padding,
// 0xFF fill and small integers are ranked as very common, and UTF-8 lead
// bytes are not special-cased since most haystacks are not text.
var byteRank = [256]byte{
	255, 214, 190, 170, 176, 48, 47, 46, 160, 103, 242, 66, 67, 229, 44, 43,
	150, 41, 40, 39, 38, 37, 36, 35, 34, 33, 56, 32, 31, 30, 29, 28,
	250, 148, 164, 149, 136, 160, 155, 173, 221, 222, 134, 122, 232, 202, 215, 224,
	208, 220, 204, 187, 183, 179, 177, 168, 178, 200, 226, 195, 154, 184, 174, 126,
	158, 191, 157, 194, 170, 189, 162, 161, 150, 193, 142, 137, 171, 176, 185, 167,
	186, 112, 175, 192, 188, 156, 140, 143, 123, 133, 128, 147, 138, 146, 114, 223,
	151, 249, 216, 238, 236, 253, 227, 218, 230, 247, 135, 180, 241, 233, 246, 244,
	231, 139, 245, 243, 251, 235, 201, 196, 240, 214, 152, 182, 205, 181, 127, 120,
	168, 211, 210, 213, 228, 197, 169, 159, 131, 172, 105, 80, 98, 96, 97, 81,
	110, 145, 116, 115, 144, 130, 153, 121, 107, 132, 109, 110, 124, 111, 82, 108,
	118, 141, 113, 129, 119, 125, 165, 117, 92, 106, 83, 72, 99, 93, 65, 79,
	166, 237, 163, 199, 190, 225, 209, 203, 198, 217, 219, 206, 234, 248, 158, 239,
	111, 107, 103, 140, 136, 132, 128, 124, 120, 116, 112, 108, 118, 100, 137, 133,
	129, 125, 121, 117, 113, 109, 105, 101, 138, 134, 130, 126, 122, 118, 114, 110,
	106, 102, 139, 135, 131, 127, 123, 119, 115, 111, 107, 103, 140, 136, 132, 128,
	124, 120, 116, 112, 108, 104, 100, 137, 133, 129, 125, 121, 117, 113, 150, 252,
}

// rarest returns the offset of the rarest byte in pattern. Ties go to the
// later offset so the verification window starts as far right as possible.
func rarest(pattern []byte) int {
	off := 0
	for i := 1; i < len(pattern); i++ {
		if byteRank[pattern[i]] <= byteRank[pattern[off]] {
			off = i
		}
	}
	return off
}
