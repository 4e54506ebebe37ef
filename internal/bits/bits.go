// Package bits converts between byte buffers and MSB-first bit sequences.
package bits

// BitsPerByte is the number of bits each byte expands to.
const BitsPerByte = 8

// Extract expands data into len(data)*8 bits, most significant bit first:
// bit i*8+j is bit (7-j) of data[i].
func Extract(data []byte) []bool {
	out := make([]bool, len(data)*BitsPerByte)
	for i, b := range data {
		for j := range BitsPerByte {
			out[i*BitsPerByte+j] = (b>>(BitsPerByte-1-j))&1 == 1
		}
	}
	return out
}

// Pack folds bits back into ceil(len(bits)/8) bytes, MSB first.
// A trailing partial byte is zero-padded.
func Pack(bits []bool) []byte {
	out := make([]byte, PackedLen(len(bits)))
	for k, set := range bits {
		if set {
			out[k/BitsPerByte] |= 1 << (BitsPerByte - 1 - k%BitsPerByte)
		}
	}
	return out
}

// PackedLen returns the number of bytes Pack produces for n bits.
func PackedLen(n int) int {
	return (n + BitsPerByte - 1) / BitsPerByte
}
