package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CatalogIdentifiers(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		input   interface{}
		wantErr bool
	}{
		{"known crop", PlantRequest{Crop: "pumpkin"}, false},
		{"unknown crop", PlantRequest{Crop: "mango"}, true},
		{"crop ids are case sensitive", PlantRequest{Crop: "Corn"}, true},
		{"missing crop", PlantRequest{}, true},
		{"known animal", BuyAnimalRequest{Animal: "sheep"}, false},
		{"unknown animal", BuyAnimalRequest{Animal: "goat"}, true},
		{"product good", SellRequest{Good: "milk", Quantity: 1}, false},
		{"crop good", SellRequest{Good: "wheat", Quantity: 10000}, false},
		{"quantity above max", SellRequest{Good: "wheat", Quantity: 10001}, true},
		{"known upgrade", UpgradeRequest{Upgrade: "auto_feeder"}, false},
		{"unknown upgrade", UpgradeRequest{Upgrade: "tractor"}, true},
		{"empty difficulty allowed", CreateFarmRequest{}, false},
		{"easy difficulty", CreateFarmRequest{Difficulty: "easy"}, false},
		{"advance lower bound", AdvanceRequest{Ticks: 0}, true},
		{"advance upper bound", AdvanceRequest{Ticks: 100000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatValidationError(t *testing.T) {
	err := GetValidator().ValidateStruct(SellRequest{Good: "gold", Quantity: 0})
	require.Error(t, err)

	fields := FormatValidationError(err)
	assert.Equal(t, "Unknown good", fields["good"])
	assert.Equal(t, "Must be at least 1", fields["quantity"])

	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(assert.AnError))
}
