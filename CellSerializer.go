package main

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"campaignSheets/contracts"
)

var SerializerError = errors.New("invalid serialized cell record")

// CellBinarySerializer encodes a cell record as
// [u32 rawLen][raw input][type tag][u32 payloadLen][payload].
// The payload is the decimal string for numbers, the rendered string for
// text and booleans and the error code for errors.
type CellBinarySerializer struct {
}

const (
	tagNumber  = byte('N')
	tagString  = byte('S')
	tagBoolean = byte('B')
	tagError   = byte('E')
)

func NewCellBinarySerializer() *CellBinarySerializer {
	return &CellBinarySerializer{}
}

func (s *CellBinarySerializer) Marshal(cell *contracts.Cell) []byte {
	rawInput := []byte(cell.RawInput)
	payload := []byte(s.payload(cell))

	serializedData := make([]byte, 0, 9+len(rawInput)+len(payload))
	serializedData = binary.LittleEndian.AppendUint32(serializedData, uint32(len(rawInput)))
	serializedData = append(serializedData, rawInput...)
	serializedData = append(serializedData, s.typeTag(cell.ComputedType))
	serializedData = binary.LittleEndian.AppendUint32(serializedData, uint32(len(payload)))
	serializedData = append(serializedData, payload...)
	return serializedData
}

func (s *CellBinarySerializer) Unmarshal(data []byte) (*contracts.Cell, error) {
	if len(data) < 9 {
		return nil, fmt.Errorf("%w: should be at least 9 bytes (data: %v)", SerializerError, data)
	}

	rawLength := int(binary.LittleEndian.Uint32(data))
	if rawLength < 0 || len(data) < rawLength+9 {
		return nil, fmt.Errorf("%w: raw input size exceeds record (rawSize: %d)", SerializerError, rawLength)
	}

	cell := &contracts.Cell{RawInput: string(data[4 : rawLength+4])}
	tag := data[rawLength+4]

	payloadLength := int(binary.LittleEndian.Uint32(data[rawLength+5:]))
	if payloadLength < 0 || len(data) != rawLength+9+payloadLength {
		return nil, fmt.Errorf("%w: payload size mismatch (payloadSize: %d)", SerializerError, payloadLength)
	}
	payload := string(data[rawLength+9:])

	switch tag {
	case tagNumber:
		number, err := decimal.NewFromString(payload)
		if err != nil {
			return nil, fmt.Errorf("%w: bad number payload %q", SerializerError, payload)
		}
		cell.ComputedType = contracts.CellTypeNumber
		cell.ComputedNumber = &number
	case tagString:
		cell.ComputedType = contracts.CellTypeString
		cell.ComputedString = &payload
	case tagBoolean:
		cell.ComputedType = contracts.CellTypeBoolean
		cell.ComputedString = &payload
	case tagError:
		cell.ComputedType = contracts.CellTypeError
		cell.ErrorCode = contracts.ErrorCode(payload)
	default:
		return nil, fmt.Errorf("%w: unknown type tag %q", SerializerError, tag)
	}

	return cell, nil
}

func (s *CellBinarySerializer) payload(cell *contracts.Cell) string {
	switch cell.ComputedType {
	case contracts.CellTypeNumber:
		if cell.ComputedNumber == nil {
			return "0"
		}
		return cell.ComputedNumber.String()
	case contracts.CellTypeError:
		return string(cell.ErrorCode)
	default:
		if cell.ComputedString == nil {
			return ""
		}
		return *cell.ComputedString
	}
}

func (s *CellBinarySerializer) typeTag(cellType contracts.CellType) byte {
	switch cellType {
	case contracts.CellTypeNumber:
		return tagNumber
	case contracts.CellTypeBoolean:
		return tagBoolean
	case contracts.CellTypeError:
		return tagError
	default:
		return tagString
	}
}
