package vm

import (
	"fmt"
	"math"
	"strconv"
)

// Kind is the tag of a Value's payload.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindChar
	KindPointer
)

var kindNames = map[Kind]string{
	KindInt:     "WINT",
	KindFloat:   "WFLOAT",
	KindPointer: "WPOINTER",
	KindChar:    "WCHAR_",
}

// String returns the printable tag name for the kind, e.g. "WINT".
func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "?unknown?"
}

// Flags are the bit flags carried alongside a Value's kind.
type Flags uint8

const (
	FlagNone       Flags = 0
	FlagIsString   Flags = 1 << 0
	FlagIsUnsigned Flags = 1 << 1
	FlagOwnsMemory Flags = 1 << 2
)

// Value is the tagged dynamic word manipulated uniformly by the VM: on the
// operand stack, in registers, in memory cells, and across the host
// function boundary.
//
// A Value is a plain bitwise-copyable struct - copying one does not
// duplicate an owned string. The holder that wants an independent copy of
// an owning string must call Duplicate explicitly: copying a Value is a
// bitwise copy, ownership does not auto-duplicate.
type Value struct {
	kind  Kind
	flags Flags

	i   int64   // KindInt payload, signed or unsigned bit pattern
	f   float64 // KindFloat payload
	c   byte    // KindChar payload
	str string  // KindPointer payload when flags&FlagIsString != 0
	ptr uintptr // KindPointer payload when not a string (opaque host handle)
}

// OfInt returns a signed 64-bit integer Value.
func OfInt(i int64) Value {
	return Value{kind: KindInt, i: i}
}

// OfUint returns an integer Value with the unsigned flag set. The bit
// pattern is stored in the same 64-bit payload as OfInt.
func OfUint(u uint64) Value {
	return Value{kind: KindInt, i: int64(u), flags: FlagIsUnsigned}
}

// OfFloat returns a double-precision float Value.
func OfFloat(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// OfChar returns a single-byte char Value.
func OfChar(c byte) Value {
	return Value{kind: KindChar, c: c}
}

// OfPointer returns an opaque pointer Value. owns marks whether the holder
// is responsible for releasing the referenced allocation.
func OfPointer(ptr uintptr, owns bool) Value {
	v := Value{kind: KindPointer, ptr: ptr}
	if owns {
		v.flags |= FlagOwnsMemory
	}
	return v
}

// OfString duplicates s into a new owned string Value.
func OfString(s string) Value {
	dup := string([]byte(s))
	return Value{kind: KindPointer, str: dup, flags: FlagIsString | FlagOwnsMemory}
}

// NullPointer returns a non-string, non-owning null pointer Value - the
// zero value for the pointer kind.
func NullPointer() Value {
	return Value{kind: KindPointer}
}

// Kind returns the value's type tag.
func (v Value) Kind() Kind { return v.kind }

// IsString reports whether v is a string-flagged pointer.
func (v Value) IsString() bool { return v.flags&FlagIsString != 0 }

// IsUnsigned reports whether v's integer payload should be formatted as
// unsigned.
func (v Value) IsUnsigned() bool { return v.flags&FlagIsUnsigned != 0 }

// OwnsMemory reports whether the holder of v is responsible for releasing
// its pointed-to allocation.
func (v Value) OwnsMemory() bool { return v.flags&FlagOwnsMemory != 0 }

// Int returns the signed interpretation of an int-kind payload.
func (v Value) Int() int64 { return v.i }

// Uint returns the unsigned interpretation of an int-kind payload.
func (v Value) Uint() uint64 { return uint64(v.i) }

// Float returns the float-kind payload.
func (v Value) Float() float64 { return v.f }

// Char returns the char-kind payload.
func (v Value) Char() byte { return v.c }

// Pointer returns the raw pointer-kind payload (meaningless for a string
// Value - use Str for that).
func (v Value) Pointer() uintptr { return v.ptr }

// Str returns the string payload of a string-flagged pointer Value, or ""
// for anything else.
func (v Value) Str() string {
	if v.IsString() {
		return v.str
	}
	return ""
}

// TypeName returns the tag's printable name, matching the C original's
// word_type_to_str: WINT, WFLOAT, WPOINTER, WCHAR_.
func (v Value) TypeName() string {
	return v.kind.String()
}

// Duplicate returns an independent copy of an owning string Value. For
// any other Value it behaves like a plain copy (Values are otherwise
// bitwise-copyable already).
func (v Value) Duplicate() Value {
	if v.IsString() {
		return OfString(v.str)
	}
	return v
}

// Display renders v the way the engine's print-style host functions and
// diagnostics do: decimal for ints (signed or unsigned per flag), the
// shortest round-trippable form for floats, the single byte for chars,
// the string contents for string pointers, empty for a null pointer, and
// a hex address form for any other pointer.
func (v Value) Display() string {
	switch v.kind {
	case KindInt:
		if v.IsUnsigned() {
			return strconv.FormatUint(v.Uint(), 10)
		}
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindChar:
		return string(v.c)
	case KindPointer:
		if v.IsString() {
			return v.str
		}
		if v.ptr == 0 {
			return ""
		}
		return fmt.Sprintf("%#x", v.ptr)
	default:
		return ""
	}
}

// registerName reports the register index named by s ("r0".."r31"), if
// any.
func registerName(s string) (int, bool) {
	if len(s) < 2 || s[0] != 'r' {
		return 0, false
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n >= numRegisters {
		return 0, false
	}
	return n, true
}

// valuesEqual reports whether a and b compare equal under the kind-aware
// rules shared by Eq/Lt/Lte/Gt/Gte: strings compare by content, same-kind
// non-string pointers by address, same-kind ints/floats numerically,
// mismatched kinds never equal.
func valuesEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInt:
		return a.i == b.i
	case KindFloat:
		return a.f == b.f
	case KindChar:
		return a.c == b.c
	case KindPointer:
		if a.IsString() && b.IsString() {
			return a.str == b.str
		}
		if a.IsString() != b.IsString() {
			return false
		}
		return a.ptr == b.ptr
	default:
		return false
	}
}

// compareOrder returns -1, 0 or 1 for a versus b under the same kind-aware
// rules as valuesEqual, extended with a total order: strings
// lexicographically, pointers by raw address, ints/floats numerically.
// ok is false for mismatched kinds (callers treat that as "not less/not
// greater", i.e. false).
func compareOrder(a, b Value) (order int, ok bool) {
	if a.kind != b.kind {
		return 0, false
	}
	switch a.kind {
	case KindInt:
		if a.IsUnsigned() || b.IsUnsigned() {
			au, bu := a.Uint(), b.Uint()
			switch {
			case au < bu:
				return -1, true
			case au > bu:
				return 1, true
			default:
				return 0, true
			}
		}
		switch {
		case a.i < b.i:
			return -1, true
		case a.i > b.i:
			return 1, true
		default:
			return 0, true
		}
	case KindFloat:
		switch {
		case a.f < b.f:
			return -1, true
		case a.f > b.f:
			return 1, true
		default:
			return 0, true
		}
	case KindChar:
		switch {
		case a.c < b.c:
			return -1, true
		case a.c > b.c:
			return 1, true
		default:
			return 0, true
		}
	case KindPointer:
		if a.IsString() && b.IsString() {
			switch {
			case a.str < b.str:
				return -1, true
			case a.str > b.str:
				return 1, true
			default:
				return 0, true
			}
		}
		if a.IsString() != b.IsString() {
			return 0, false
		}
		switch {
		case a.ptr < b.ptr:
			return -1, true
		case a.ptr > b.ptr:
			return 1, true
		default:
			return 0, true
		}
	default:
		return 0, false
	}
}

// floatBits round-trips a float64 through its bit pattern, used by the
// bytecode codec's fixed-width Value encoding.
func floatBits(f float64) uint64 { return math.Float64bits(f) }
func bitsToFloat(u uint64) float64 { return math.Float64frombits(u) }
