package main

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"smartSheet/contracts"
)

var SerializerError = errors.New("invalid serialized data")

const serializerVersion = byte(1)

const (
	styleBold = byte(1 << iota)
	styleItalic
	stylePresent
)

/**
 * Layout (little endian):
 *   version u8
 *   address  u16 length + bytes
 *   rawValue u32 length + bytes
 *   computed kind u8, then number f64 or text u32 length + bytes
 *   style flags u8, color u16 length + bytes, background u16 length + bytes
 */
type CellBinarySerializer struct {
}

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(address string, cell contracts.Cell) []byte {
	data := make([]byte, 0, 16+len(address)+len(cell.RawValue)+len(cell.ComputedValue.Text))

	data = append(data, serializerVersion)
	data = appendString16(data, address)
	data = appendString32(data, cell.RawValue)

	data = append(data, byte(cell.ComputedValue.Kind))
	switch cell.ComputedValue.Kind {
	case contracts.ValueNumber:
		data = binary.LittleEndian.AppendUint64(data, math.Float64bits(cell.ComputedValue.Number))
	case contracts.ValueText, contracts.ValueError:
		data = appendString32(data, cell.ComputedValue.Text)
	}

	var flags byte
	var color, background string
	if cell.Style != nil {
		flags |= stylePresent
		if cell.Style.Bold {
			flags |= styleBold
		}
		if cell.Style.Italic {
			flags |= styleItalic
		}
		color, background = cell.Style.Color, cell.Style.BackgroundColor
	}
	data = append(data, flags)
	data = appendString16(data, color)
	data = appendString16(data, background)

	return data
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (address string, cell contracts.Cell, err error) {
	r := &byteReader{data: data}

	version := r.readByte()
	if r.err == nil && version != serializerVersion {
		return "", cell, fmt.Errorf("%w: unknown version %d", SerializerError, version)
	}

	address = r.readString16()
	cell.RawValue = r.readString32()

	kind := contracts.ValueKind(r.readByte())
	switch kind {
	case contracts.ValueEmpty:
		cell.ComputedValue = contracts.EmptyValue()
	case contracts.ValueNumber:
		cell.ComputedValue = contracts.NumberValue(math.Float64frombits(r.readUint64()))
	case contracts.ValueText:
		cell.ComputedValue = contracts.TextValue(r.readString32())
	case contracts.ValueError:
		cell.ComputedValue = contracts.ErrorValue(r.readString32())
	default:
		if r.err == nil {
			r.err = fmt.Errorf("%w: unknown value kind %d", SerializerError, kind)
		}
	}

	flags := r.readByte()
	color := r.readString16()
	background := r.readString16()
	if flags&stylePresent != 0 {
		cell.Style = &contracts.CellStyle{
			Bold:            flags&styleBold != 0,
			Italic:          flags&styleItalic != 0,
			Color:           color,
			BackgroundColor: background,
		}
	}

	if r.err != nil {
		return "", contracts.Cell{}, r.err
	}
	return address, cell, nil
}

func appendString16(data []byte, value string) []byte {
	data = binary.LittleEndian.AppendUint16(data, uint16(len(value)))
	return append(data, value...)
}

func appendString32(data []byte, value string) []byte {
	data = binary.LittleEndian.AppendUint32(data, uint32(len(value)))
	return append(data, value...)
}

// byteReader remembers the first short read so Unmarshal checks once at the end
type byteReader struct {
	data []byte
	pos  int
	err  error
}

func (r *byteReader) take(size int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.data)-r.pos < size {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d, have %d", SerializerError, size, r.pos, len(r.data)-r.pos)
		return nil
	}

	chunk := r.data[r.pos : r.pos+size]
	r.pos += size
	return chunk
}

func (r *byteReader) readByte() byte {
	if chunk := r.take(1); chunk != nil {
		return chunk[0]
	}
	return 0
}

func (r *byteReader) readUint64() uint64 {
	if chunk := r.take(8); chunk != nil {
		return binary.LittleEndian.Uint64(chunk)
	}
	return 0
}

func (r *byteReader) readString16() string {
	chunk := r.take(2)
	if chunk == nil {
		return ""
	}
	return string(r.take(int(binary.LittleEndian.Uint16(chunk))))
}

func (r *byteReader) readString32() string {
	chunk := r.take(4)
	if chunk == nil {
		return ""
	}
	return string(r.take(int(binary.LittleEndian.Uint32(chunk))))
}
