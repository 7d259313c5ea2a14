package vm

import "encoding/binary"

// byteBuf is an append-only binary writer used by the bytecode encoder,
// grounded on the original's bb.h ByteBuf: a doubling-growth byte buffer
// with typed append helpers. Go's append() already gives us the doubling
// growth for free, so this wraps a plain []byte rather than reimplementing
// bb_reserve's manual capacity doubling.
type byteBuf struct {
	data []byte
}

func newByteBuf() *byteBuf {
	return &byteBuf{data: make([]byte, 0, 64)}
}

func (b *byteBuf) byte(v byte) {
	b.data = append(b.data, v)
}

func (b *byteBuf) bytes(v []byte) {
	b.data = append(b.data, v...)
}

func (b *byteBuf) u32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *byteBuf) u64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.data = append(b.data, tmp[:]...)
}

func (b *byteBuf) str(s string) {
	b.u32(uint32(len(s)))
	b.data = append(b.data, s...)
}

func (b *byteBuf) bytesOut() []byte { return b.data }

// byteReader walks a []byte left to right, the reading counterpart to
// byteBuf, used by the bytecode decoder.
type byteReader struct {
	data []byte
	pos  int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

func (r *byteReader) remaining() int { return len(r.data) - r.pos }

func (r *byteReader) readByte() (byte, bool) {
	if r.remaining() < 1 {
		return 0, false
	}
	v := r.data[r.pos]
	r.pos++
	return v, true
}

func (r *byteReader) readBytes(n int) ([]byte, bool) {
	if r.remaining() < n {
		return nil, false
	}
	v := r.data[r.pos : r.pos+n]
	r.pos += n
	return v, true
}

func (r *byteReader) readU32() (uint32, bool) {
	b, ok := r.readBytes(4)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint32(b), true
}

func (r *byteReader) readU64() (uint64, bool) {
	b, ok := r.readBytes(8)
	if !ok {
		return 0, false
	}
	return binary.LittleEndian.Uint64(b), true
}

func (r *byteReader) readStr() (string, bool) {
	n, ok := r.readU32()
	if !ok {
		return "", false
	}
	b, ok := r.readBytes(int(n))
	if !ok {
		return "", false
	}
	return string(b), true
}
