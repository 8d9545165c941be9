package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestGenerateUUIDWithSuffix(t *testing.T) {
	id := GenerateUUIDWithSuffix("evt")
	assert.Contains(t, id, "evt_")
	assert.NotEqual(t, id, GenerateUUIDWithSuffix("evt"))
}

func TestIsValidReferenceCode(t *testing.T) {
	tests := []struct {
		code  string
		valid bool
	}{
		{"QGH7XJ9K2L", true},
		{"BNK9988771", true},
		{"qgh7xj9k2l", false},
		{"SHORT", false},
		{"TOOLONGCODE1", false},
		{"QGH7XJ9K2 ", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, IsValidReferenceCode(tt.code), tt.code)
	}
}

func TestMoneyEventValidate(t *testing.T) {
	evt := MoneyEvent{
		ReferenceCode: "QGH7XJ9K2L",
		Amount:        decimal.RequireFromString("1200.00"),
		Channel:       ChannelMobileMoney,
	}
	assert.NoError(t, evt.Validate())

	evt.Amount = decimal.Zero
	assert.Error(t, evt.Validate())

	evt.Amount = decimal.RequireFromString("50.00")
	evt.ReferenceCode = "BADCODE"
	assert.Error(t, evt.Validate())
}

func TestChannelMatchesMethod(t *testing.T) {
	assert.True(t, ChannelMobileMoney.MatchesMethod(MethodMobileMoney))
	assert.True(t, ChannelGeneric.MatchesMethod(MethodMobileMoney))
	assert.True(t, ChannelBank.MatchesMethod(MethodBank))
	assert.False(t, ChannelBank.MatchesMethod(MethodMobileMoney))
	assert.False(t, ChannelMobileMoney.MatchesMethod(MethodBank))
	assert.False(t, ChannelMobileMoney.MatchesMethod(MethodCash))
}
