package storage

import (
	"encoding/binary"
	"math"
)

// EncodeRecord packs row into the schema's length-prefixed binary wire
// format: one null-flag byte per column (0 = NULL, 1 = present), then for
// present values: int64 as 8 bytes big-endian, float64 as 8 bytes
// big-endian IEEE-754, text as a 2-byte big-endian length followed by the
// UTF-8 bytes.
func EncodeRecord(schema *TableSchema, row []Value) ([]byte, error) {
	if len(row) != len(schema.Columns) {
		return nil, newSchemaError("expected %d values, got %d", len(schema.Columns), len(row))
	}
	buf := make([]byte, 0, len(row)*9)
	for i, v := range row {
		col := schema.Columns[i]
		if v == nil {
			buf = append(buf, 0)
			continue
		}
		buf = append(buf, 1)
		switch col.Dtype {
		case DTypeInt:
			iv, ok := v.(int64)
			if !ok {
				return nil, newSchemaError("column %q: expected int64, got %T", col.Name, v)
			}
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], uint64(iv))
			buf = append(buf, b[:]...)
		case DTypeFloat:
			fv, ok := v.(float64)
			if !ok {
				return nil, newSchemaError("column %q: expected float64, got %T", col.Name, v)
			}
			var b [8]byte
			binary.BigEndian.PutUint64(b[:], math.Float64bits(fv))
			buf = append(buf, b[:]...)
		case DTypeText:
			sv, ok := v.(string)
			if !ok {
				return nil, newSchemaError("column %q: expected string, got %T", col.Name, v)
			}
			if len(sv) > math.MaxUint16 {
				return nil, newSchemaError("column %q: text value too long (%d bytes)", col.Name, len(sv))
			}
			var lb [2]byte
			binary.BigEndian.PutUint16(lb[:], uint16(len(sv)))
			buf = append(buf, lb[:]...)
			buf = append(buf, sv...)
		default:
			return nil, newSchemaError("column %q: unsupported dtype %v", col.Name, col.Dtype)
		}
	}
	return buf, nil
}

// DecodeRecord unpacks data into a row matching schema's column order and
// types, positionally.
func DecodeRecord(schema *TableSchema, data []byte) ([]Value, error) {
	row := make([]Value, len(schema.Columns))
	idx := 0
	for i, col := range schema.Columns {
		if idx >= len(data) {
			return nil, newSchemaError("record too short to decode column %q", col.Name)
		}
		nullFlag := data[idx]
		idx++
		if nullFlag == 0 {
			row[i] = nil
			continue
		}
		switch col.Dtype {
		case DTypeInt:
			if idx+8 > len(data) {
				return nil, newSchemaError("record truncated decoding int column %q", col.Name)
			}
			row[i] = int64(binary.BigEndian.Uint64(data[idx : idx+8]))
			idx += 8
		case DTypeFloat:
			if idx+8 > len(data) {
				return nil, newSchemaError("record truncated decoding float column %q", col.Name)
			}
			row[i] = math.Float64frombits(binary.BigEndian.Uint64(data[idx : idx+8]))
			idx += 8
		case DTypeText:
			if idx+2 > len(data) {
				return nil, newSchemaError("record truncated decoding text length for column %q", col.Name)
			}
			length := int(binary.BigEndian.Uint16(data[idx : idx+2]))
			idx += 2
			if idx+length > len(data) {
				return nil, newSchemaError("record truncated decoding text column %q", col.Name)
			}
			row[i] = string(data[idx : idx+length])
			idx += length
		default:
			return nil, newSchemaError("column %q: unsupported dtype %v", col.Name, col.Dtype)
		}
	}
	return row, nil
}
