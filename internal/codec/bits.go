package codec

import "strings"

// Bits is a bit string packed most significant bit first.
type Bits struct {
	data []byte
	n    int
}

// BitsFromBytes views the first n bits of data.
func BitsFromBytes(data []byte, n int) Bits {
	if n > len(data)*8 {
		n = len(data) * 8
	}
	if n < 0 {
		n = 0
	}
	return Bits{data: data, n: n}
}

// ParseBits reads a string of '0' and '1'; any other character is skipped.
func ParseBits(s string) Bits {
	var b Bits
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			b.push(0)
		case '1':
			b.push(1)
		}
	}
	return b
}

func (b *Bits) push(bit byte) {
	if b.n%8 == 0 {
		b.data = append(b.data, 0)
	}
	if bit != 0 {
		b.data[b.n/8] |= 0x80 >> (b.n % 8)
	}
	b.n++
}

func (b *Bits) appendCode(code string) {
	for i := 0; i < len(code); i++ {
		b.push(code[i] - '0')
	}
}

func (b Bits) Len() int { return b.n }

func (b Bits) At(i int) byte {
	return (b.data[i/8] >> (7 - i%8)) & 1
}

// Bytes returns the bits right padded with zeros to a whole byte.
func (b Bits) Bytes() []byte {
	out := make([]byte, (b.n+7)/8)
	copy(out, b.data)
	if rem := b.n % 8; rem != 0 {
		out[len(out)-1] &= 0xFF << (8 - rem)
	}
	return out
}

// Padding is the number of zero bits Bytes appends.
func (b Bits) Padding() int {
	return (8 - b.n%8) % 8
}

func (b Bits) String() string {
	var sb strings.Builder
	sb.Grow(b.n)
	for i := 0; i < b.n; i++ {
		sb.WriteByte('0' + b.At(i))
	}
	return sb.String()
}
