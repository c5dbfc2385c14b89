package consensus

import "encoding/binary"

type cursor struct {
	b   []byte
	pos int
}

func newCursor(b []byte) *cursor {
	return &cursor{b: b, pos: 0}
}

func (c *cursor) remaining() int {
	if c.pos >= len(c.b) {
		return 0
	}
	return len(c.b) - c.pos
}

func (c *cursor) readExact(n int) ([]byte, error) {
	if n < 0 || c.remaining() < n {
		return nil, Errf(ENT_ERR_PARSE, "truncated")
	}
	start := c.pos
	c.pos += n
	return c.b[start:c.pos], nil
}

func (c *cursor) readHash() ([32]byte, error) {
	var h [32]byte
	b, err := c.readExact(32)
	if err != nil {
		return h, err
	}
	copy(h[:], b)
	return h, nil
}

func (c *cursor) readU32LE() (uint32, error) {
	b, err := c.readExact(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (c *cursor) readU64LE() (uint64, error) {
	b, err := c.readExact(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (c *cursor) readCompactSize() (uint64, error) {
	n, used, err := decodeCompactSize(c.b[c.pos:])
	if err != nil {
		return 0, err
	}
	c.pos += used
	return n, nil
}

// readVarBytes reads a compactsize length followed by that many bytes,
// copying them out of the backing buffer.
func (c *cursor) readVarBytes(maxLen int) ([]byte, error) {
	n, err := c.readCompactSize()
	if err != nil {
		return nil, err
	}
	ln, err := toIntLen(n, "byte length")
	if err != nil {
		return nil, err
	}
	if ln > maxLen {
		return nil, Errf(ENT_ERR_PARSE, "byte string exceeds limit")
	}
	raw, err := c.readExact(ln)
	if err != nil {
		return nil, err
	}
	out := make([]byte, ln)
	copy(out, raw)
	return out, nil
}

func maxIntAsUint64() uint64 {
	return uint64(^uint(0) >> 1)
}

func toIntLen(v uint64, name string) (int, error) {
	if v > maxIntAsUint64() {
		return 0, Errf(ENT_ERR_PARSE, "%s overflows usize", name)
	}
	return int(v), nil
}

func appendU32le(dst []byte, v uint32) []byte {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	return append(dst, buf[:]...)
}

func appendU64le(dst []byte, v uint64) []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	return append(dst, buf[:]...)
}

func appendVarBytes(dst []byte, b []byte) []byte {
	dst = appendCompactSize(dst, uint64(len(b)))
	return append(dst, b...)
}
