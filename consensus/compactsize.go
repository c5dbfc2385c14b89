package consensus

import "encoding/binary"

// appendCompactSize appends n as a Bitcoin-style CompactSize varint.
func appendCompactSize(dst []byte, n uint64) []byte {
	switch {
	case n < 0xfd:
		return append(dst, byte(n))
	case n <= 0xffff:
		var b2 [2]byte
		binary.LittleEndian.PutUint16(b2[:], uint16(n))
		return append(dst, 0xfd, b2[0], b2[1])
	case n <= 0xffffffff:
		var b4 [4]byte
		binary.LittleEndian.PutUint32(b4[:], uint32(n))
		return append(append(dst, 0xfe), b4[:]...)
	default:
		var b8 [8]byte
		binary.LittleEndian.PutUint64(b8[:], n)
		return append(append(dst, 0xff), b8[:]...)
	}
}

// decodeCompactSize decodes one CompactSize value from the front of b,
// returning the value and the number of bytes consumed. Non-minimal
// encodings are rejected.
func decodeCompactSize(b []byte) (uint64, int, error) {
	if len(b) < 1 {
		return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: empty")
	}
	tag := b[0]
	switch {
	case tag < 0xfd:
		return uint64(tag), 1, nil
	case tag == 0xfd:
		if len(b) < 3 {
			return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: truncated u16")
		}
		n := uint64(binary.LittleEndian.Uint16(b[1:3]))
		if n < 0xfd {
			return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: non-minimal u16")
		}
		return n, 3, nil
	case tag == 0xfe:
		if len(b) < 5 {
			return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: truncated u32")
		}
		n := uint64(binary.LittleEndian.Uint32(b[1:5]))
		if n < 0x1_0000 {
			return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: non-minimal u32")
		}
		return n, 5, nil
	default: // 0xff
		if len(b) < 9 {
			return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: truncated u64")
		}
		n := binary.LittleEndian.Uint64(b[1:9])
		if n < 0x1_0000_0000 {
			return 0, 0, Errf(ENT_ERR_PARSE, "compactsize: non-minimal u64")
		}
		return n, 9, nil
	}
}
