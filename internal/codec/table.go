package codec

// table maps every supported character to its prefix-free codeword.
// Frequent characters in move notation get the shortest codes.
var table = map[byte]string{
	'\n': "11000",
	' ':  "0",
	'+':  "1101011",
	'-':  "11001",
	'0':  "111110000",
	'1':  "11010100",
	'2':  "111110001",
	'3':  "11111001",
	'4':  "11100",
	'5':  "10111",
	'6':  "10100",
	'7':  "110100",
	'8':  "10110100",
	':':  "101100",
	'?':  "11111010",
	'B':  "111100",
	'K':  "1011011110",
	'N':  "11011",
	'O':  "10110101",
	'Q':  "111111",
	'R':  "10110110",
	'a':  "11111011",
	'b':  "111101",
	'c':  "10101",
	'd':  "1000",
	'e':  "11101",
	'f':  "11010101",
	'g':  "1011011111",
	'h':  "101101110",
	'x':  "1001",
}

var reverse = func() map[string]byte {
	m := make(map[string]byte, len(table))
	for c, code := range table {
		m[code] = c
	}
	return m
}()

// Supported reports whether c can be encoded.
func Supported(c byte) bool {
	_, ok := table[c]
	return ok
}

// Unsupported returns the distinct characters of text that Encode drops,
// in order of first appearance.
func Unsupported(text string) []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range text {
		if r < 0x80 && Supported(byte(r)) {
			continue
		}
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
