package vm

import "fmt"

// bytecodeMagic is the fixed 6-byte header: "PROST" followed by a NUL,
// matching the original format exactly.
var bytecodeMagic = [6]byte{'P', 'R', 'O', 'S', 'T', 0}

// bytecodeVersion is the only version this package writes or accepts.
// An older, unversioned sibling format exists but is out of scope here;
// this package targets the versioned wire format exclusively, so
// bytecodeVersion 1 is the sole supported value.
const bytecodeVersion byte = 1

// valueEncodedSize is the fixed width of a raw (non-string) Value
// encoding: 1 kind byte + 1 flags byte + 8 payload bytes.
const valueEncodedSize = 10

// encodeValue writes v's raw 10-byte form. This form does not attempt to
// preserve string contents or pointer identity across a save/load cycle
// for generic Values (memory cells, Push literals) - only the four
// name-addressed opcodes (Call, CallExtern, DerefMemory, AssignMemory)
// carry their payload as a string. A generic string-flagged Value
// serialized this way round-trips its flags and kind but not its
// contents - a known, accepted limitation of the fixed-width encoding
// rather than a bug to fix.
func encodeValue(b *byteBuf, v Value) {
	b.byte(byte(v.kind))
	b.byte(byte(v.flags))
	switch v.kind {
	case KindInt:
		b.u64(uint64(v.i))
	case KindFloat:
		b.u64(floatBits(v.f))
	case KindChar:
		var payload [8]byte
		payload[0] = v.c
		b.bytes(payload[:])
	case KindPointer:
		b.u64(uint64(v.ptr))
	default:
		b.u64(0)
	}
}

func decodeValue(r *byteReader) (Value, bool) {
	kindByte, ok := r.readByte()
	if !ok {
		return Value{}, false
	}
	flagsByte, ok := r.readByte()
	if !ok {
		return Value{}, false
	}
	payload, ok := r.readU64()
	if !ok {
		return Value{}, false
	}
	v := Value{kind: Kind(kindByte), flags: Flags(flagsByte)}
	switch v.kind {
	case KindInt:
		v.i = int64(payload)
	case KindFloat:
		v.f = bitsToFloat(payload)
	case KindChar:
		v.c = byte(payload)
	case KindPointer:
		v.ptr = uintptr(payload)
	}
	return v, true
}

// Serialize encodes p into the versioned binary bytecode format:
// magic+version, a memory section, a functions section (each function's
// instructions and label table), and a trailing zero sentinel byte.
func Serialize(p *Program) []byte {
	b := newByteBuf()
	b.bytes(bytecodeMagic[:])
	b.byte(bytecodeVersion)

	b.u32(uint32(len(p.MemoryOrder)))
	for _, name := range p.MemoryOrder {
		b.str(name)
		encodeValue(b, p.Memory[name])
	}

	b.u32(uint32(len(p.FunctionOrder)))
	for _, name := range p.FunctionOrder {
		fn := p.Functions[name]
		b.str(fn.Name)
		b.u32(uint32(len(fn.Instructions)))
		b.u32(uint32(len(fn.Labels)))
		for _, inst := range fn.Instructions {
			b.byte(byte(inst.Op))
			if inst.Op.takesStringArg() {
				b.str(inst.Name)
			} else {
				encodeValue(b, inst.Arg)
			}
		}
		for _, label := range fn.Labels {
			encodeValue(b, OfInt(int64(label)))
		}
	}

	b.byte(0)
	return b.bytesOut()
}

// Deserialize decodes bytecode produced by Serialize, returning
// StatusInvalidBytecode on any structural error: bad magic, unsupported
// version, or a section that runs past the end of the buffer.
func Deserialize(data []byte) (*Program, error) {
	r := newByteReader(data)

	magic, ok := r.readBytes(6)
	if !ok || string(magic) != string(bytecodeMagic[:]) {
		return nil, newFault(StatusInvalidBytecode, "", 0)
	}
	version, ok := r.readByte()
	if !ok || version != bytecodeVersion {
		return nil, newFault(StatusInvalidBytecode, "", 0)
	}

	p := NewProgram()

	memCount, ok := r.readU32()
	if !ok {
		return nil, newFault(StatusInvalidBytecode, "", 0)
	}
	for i := uint32(0); i < memCount; i++ {
		name, ok := r.readStr()
		if !ok {
			return nil, newFault(StatusInvalidBytecode, "", 0)
		}
		val, ok := decodeValue(r)
		if !ok {
			return nil, newFault(StatusInvalidBytecode, "", 0)
		}
		p.SetMemory(name, val)
	}

	fnCount, ok := r.readU32()
	if !ok {
		return nil, newFault(StatusInvalidBytecode, "", 0)
	}
	for i := uint32(0); i < fnCount; i++ {
		name, ok := r.readStr()
		if !ok {
			return nil, newFault(StatusInvalidBytecode, "", 0)
		}
		instCount, ok := r.readU32()
		if !ok {
			return nil, newFault(StatusInvalidBytecode, "", 0)
		}
		labelCount, ok := r.readU32()
		if !ok {
			return nil, newFault(StatusInvalidBytecode, "", 0)
		}
		fn := &Function{Name: name}
		for j := uint32(0); j < instCount; j++ {
			opByte, ok := r.readByte()
			if !ok {
				return nil, newFault(StatusInvalidBytecode, "", 0)
			}
			op := Opcode(opByte)
			if _, known := opcodeNames[op]; !known {
				return nil, newFault(StatusInvalidBytecode, "", 0)
			}
			inst := Instruction{Op: op}
			if op.takesStringArg() {
				s, ok := r.readStr()
				if !ok {
					return nil, newFault(StatusInvalidBytecode, "", 0)
				}
				inst.Name = s
			} else {
				v, ok := decodeValue(r)
				if !ok {
					return nil, newFault(StatusInvalidBytecode, "", 0)
				}
				inst.Arg = v
			}
			fn.Instructions = append(fn.Instructions, inst)
		}
		for j := uint32(0); j < labelCount; j++ {
			v, ok := decodeValue(r)
			if !ok {
				return nil, newFault(StatusInvalidBytecode, "", 0)
			}
			fn.Labels = append(fn.Labels, int(v.Int()))
		}
		p.AddFunction(fn)
	}

	trailing, ok := r.readByte()
	if !ok || trailing != 0 {
		return nil, newFault(StatusInvalidBytecode, "", 0)
	}
	if r.remaining() != 0 {
		return nil, newFault(StatusInvalidBytecode, "", 0)
	}

	return p, nil
}

// errInvalidBytecode is a plain sentinel for StatusInvalidBytecode.
// Deserialize does not return it: every rejection there, header
// validation included, is a *Fault with an empty function name.
var errInvalidBytecode = fmt.Errorf("prostvm: %s", StatusInvalidBytecode)
