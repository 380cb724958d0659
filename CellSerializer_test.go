package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"smartSheet/contracts"
)

func TestCellBinarySerializer_Marshal(t *testing.T) {
	serializer := &CellBinarySerializer{}
	serialized := serializer.Marshal("A1", contracts.Cell{RawValue: "value1"})
	assert.NotNil(t, serialized)
	assert.Greater(t, len(serialized), 8)
}

func TestCellBinarySerializer_Unmarshal(t *testing.T) {
	serializer := NewCellBinarySerializer()

	t.Run("valid_data", func(t *testing.T) {
		assertMarshalAndUnmarshal := func(expectedAddress string, expectedCell contracts.Cell) {
			serialized := serializer.Marshal(expectedAddress, expectedCell)
			actualAddress, actualCell, err := serializer.Unmarshal(serialized)

			assert.NoError(t, err)
			assert.Equal(t, expectedAddress, actualAddress)
			assert.Equal(t, expectedCell, actualCell)
		}

		assertMarshalAndUnmarshal("A1", contracts.Cell{RawValue: "", ComputedValue: contracts.EmptyValue()})
		assertMarshalAndUnmarshal("B2", contracts.Cell{RawValue: "42", ComputedValue: contracts.NumberValue(42)})
		assertMarshalAndUnmarshal("C3", contracts.Cell{RawValue: "=1/3", ComputedValue: contracts.NumberValue(1.0 / 3)})
		assertMarshalAndUnmarshal("D4", contracts.Cell{RawValue: "Staff Name", ComputedValue: contracts.TextValue("Staff Name")})
		assertMarshalAndUnmarshal("E5", contracts.Cell{
			RawValue:      "=1/0",
			ComputedValue: contracts.ErrorValue(contracts.EvaluationErrorMarker),
			Style:         &contracts.CellStyle{Bold: true, BackgroundColor: "#e5e7eb"},
		})
		assertMarshalAndUnmarshal("AA100", contracts.Cell{
			RawValue:      "Data should be persisted and available between restarts",
			ComputedValue: contracts.TextValue("Data should be persisted and available between restarts"),
			Style:         &contracts.CellStyle{Italic: true, Color: "#1f2937"},
		})
		assertMarshalAndUnmarshal("F6", contracts.Cell{Style: &contracts.CellStyle{}})
	})

	t.Run("empty_data", func(t *testing.T) {
		address, cell, err := serializer.Unmarshal([]byte{})

		assert.ErrorIs(t, err, SerializerError)
		assert.Equal(t, "", address)
		assert.Equal(t, contracts.Cell{}, cell)
	})

	t.Run("invalid_data", func(t *testing.T) {
		address, cell, err := serializer.Unmarshal([]byte{' ', 'q', 'r'})

		assert.ErrorIs(t, err, SerializerError)
		assert.Equal(t, "", address)
		assert.Equal(t, contracts.Cell{}, cell)
	})

	t.Run("truncated_data", func(t *testing.T) {
		serialized := serializer.Marshal("B2", contracts.Cell{RawValue: "42", ComputedValue: contracts.NumberValue(42)})

		_, _, err := serializer.Unmarshal(serialized[:len(serialized)-3])
		assert.ErrorIs(t, err, SerializerError)
	})

	t.Run("unknown_value_kind", func(t *testing.T) {
		serialized := serializer.Marshal("A1", contracts.Cell{})
		// version, address (2+2), raw (4+0), then kind
		serialized[1+4+4] = 99

		_, _, err := serializer.Unmarshal(serialized)
		assert.ErrorIs(t, err, SerializerError)
	})
}
