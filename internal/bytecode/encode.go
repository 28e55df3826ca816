// Package bytecode serializes a codegen.Instruction stream into the
// wire format a separate virtual machine reads: a format tag, a fixed
// header, a function pool, a string pool, and the 8-byte-per-slot
// instruction stream, with an optional run-length compression pass.
package bytecode

import (
	"encoding/binary"
	"fmt"

	"github.com/livy-lang/livy/internal/codegen"
)

const stringEncoding = "UTF-8"

var separator = []byte{0xFF, 0xFF, 0xFF}

// Encode turns a top-level instruction stream into the full wire format,
// applying run-length compression when compress is true.
func Encode(instrs []codegen.Instruction, compress bool) ([]byte, error) {
	var funcPool, stringPool [][]byte
	stream, funcPool, stringPool, err := encodeInstructions(instrs, funcPool, stringPool)
	if err != nil {
		return nil, err
	}

	funcs := encodePool(funcPool)
	strings := encodePool(stringPool)
	header := generateHeader(len(stream), len(funcs), len(strings))

	body := make([]byte, 0, len(header)+len(separator)+len(funcs)+len(strings)+len(stream))
	body = append(body, header...)
	body = append(body, separator...)
	body = append(body, funcs...)
	body = append(body, strings...)
	body = append(body, stream...)

	if !compress {
		return append([]byte{'C', 0x00}, body...), nil
	}
	compressed := RunLengthEncode(body)
	if len(compressed) >= len(body) {
		return append([]byte{'C', 0x00}, body...), nil
	}
	return append([]byte{'C', 0xFF}, compressed...), nil
}

func encodePool(pool [][]byte) []byte {
	var out []byte
	for _, item := range pool {
		var lenBuf [4]byte
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(item)))
		out = append(out, lenBuf[:]...)
		out = append(out, item...)
	}
	return out
}

// generateHeader builds the fixed 32-byte header: "F:" u32 "S:" u32
// "C:" u32 "E:" 12-byte NUL-padded encoding name.
func generateHeader(streamSize, funcPoolSize, stringPoolSize int) []byte {
	header := make([]byte, 0, 16)
	header = append(header, 'F', ':')
	header = appendU32(header, uint32(funcPoolSize))
	header = append(header, 'S', ':')
	header = appendU32(header, uint32(stringPoolSize))
	header = append(header, 'C', ':')
	header = appendU32(header, uint32(streamSize))
	header = append(header, 'E', ':')
	name := make([]byte, 12)
	copy(name, stringEncoding)
	header = append(header, name...)
	return header
}

func appendU32(b []byte, v uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	return append(b, buf[:]...)
}

// encodeInstructions encodes a sequence of instructions as a stream of
// 8-byte slots, appending any function/string literals it encounters
// to the shared pools.
func encodeInstructions(instrs []codegen.Instruction, funcPool, stringPool [][]byte) ([]byte, [][]byte, [][]byte, error) {
	stream := make([]byte, len(instrs)*8)
	for i, instruction := range instrs {
		slot := stream[i*8 : i*8+8]
		slot[0] = byte(instruction.OpCode)
		operandBytes, newFuncPool, newStringPool, err := encodeOperands(instruction, funcPool, stringPool)
		if err != nil {
			return nil, nil, nil, err
		}
		funcPool, stringPool = newFuncPool, newStringPool
		copy(slot[1:], operandBytes)
	}
	return stream, funcPool, stringPool, nil
}

func encodeOperands(instruction codegen.Instruction, funcPool, stringPool [][]byte) ([]byte, [][]byte, [][]byte, error) {
	ops := instruction.Operands
	switch instruction.OpCode {
	case codegen.LoadBool:
		if ops[0].(bool) {
			return []byte{0xFF}, funcPool, stringPool, nil
		}
		return []byte{0x00}, funcPool, stringPool, nil

	case codegen.LoadString:
		stringPool = append(stringPool, []byte(ops[0].(string)))
		idx := len(stringPool) - 1
		return encodeUint(idx, 7), funcPool, stringPool, nil

	case codegen.LoadInt:
		b, err := encodeInt(ops[0].(int64))
		return b, funcPool, stringPool, err

	case codegen.LoadFloat:
		b, err := encodeFloat(ops[0].(float64))
		return b, funcPool, stringPool, err

	case codegen.LoadName:
		depth, position := ops[0].(int), ops[1].(int)
		out := encodeUint(depth, 3)
		return append(out, encodeUint(position, 4)...), funcPool, stringPool, nil

	case codegen.LoadFunc:
		body := ops[0].([]codegen.Instruction)
		bodyCode, newFuncPool, newStringPool, err := encodeInstructions(body, funcPool, stringPool)
		if err != nil {
			return nil, nil, nil, err
		}
		newFuncPool = append(newFuncPool, bodyCode)
		idx := len(newFuncPool) - 1
		return encodeUint(idx, 7), newFuncPool, newStringPool, nil

	case codegen.StoreName:
		return encodeUint(ops[0].(int), 4), funcPool, stringPool, nil

	case codegen.Native:
		return encodeUint(ops[0].(int), 1), funcPool, stringPool, nil

	case codegen.Branch, codegen.Jump, codegen.BuildList:
		return encodeUint(ops[0].(int), 7), funcPool, stringPool, nil

	default:
		return nil, funcPool, stringPool, nil
	}
}

func encodeUint(v, width int) []byte {
	out := make([]byte, width)
	u := uint64(v)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(u)
		u >>= 8
	}
	return out
}

func encodeInt(v int64) ([]byte, error) {
	const width = 7
	if v >= 1<<(width*8-1) || v < -(1<<(width*8-1)) {
		return nil, fmt.Errorf("bytecode: int %d overflows %d-byte slot", v, width)
	}
	return encodeSignedInt(v, width), nil
}
