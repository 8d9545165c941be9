package parser

import (
	"testing"

	"github.com/dukahq/dukarecon/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIsDeterministic(t *testing.T) {
	body := "QGH7XJ9K2L Confirmed. Ksh1,200.00 received from JOHN KAMAU 0712345678 on 3/1/24"

	first := Parse(body, "MPESA")
	second := Parse(body, "MPESA")
	require.NotNil(t, first)
	require.NotNil(t, second)

	assert.Equal(t, first.ReferenceCode, second.ReferenceCode)
	assert.True(t, first.Amount.Equal(second.Amount))
	assert.Equal(t, first.Counterparty, second.Counterparty)
	assert.Equal(t, first.Channel, second.Channel)
}

// A body that the fallback extractor would also accept must be claimed by the
// primary extractor first, keeping the richer sender field.
func TestParseCascadeFirstMatchWins(t *testing.T) {
	body := "QGH7XJ9K2L Confirmed. Ksh1,200.00 received from JOHN KAMAU 0712345678 on 3/1/24"

	// Sanity: the fallback on its own does accept this text.
	fallback := parseGeneric(collapseWhitespace(body))
	require.NotNil(t, fallback)
	assert.Equal(t, UnknownCounterparty, fallback.Counterparty)

	event := Parse(body, "MPESA")
	require.NotNil(t, event)
	assert.Equal(t, model.ChannelMobileMoney, event.Channel)
	assert.Equal(t, "JOHN KAMAU", event.Counterparty)
}

func TestParseAmountPrecision(t *testing.T) {
	body := "ABC1DEF2GH Confirmed. Ksh12,345.67 received from SARAH ATIENO on 6/1/24"
	event := Parse(body, "MPESA")
	require.NotNil(t, event)
	assert.True(t, event.Amount.Equal(decimal.RequireFromString("12345.67")),
		"amount = %s", event.Amount)
	assert.Equal(t, int32(2), -event.Amount.Exponent())
}

func TestParseNonFinancialText(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"otp message", "Your OTP is 483920, do not share."},
		{"plain chat", "Hey, are we still meeting at 6?"},
		{"empty body", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Parse(tt.body, "UNKNOWN"))
		})
	}
}

func TestParseRetainsRawTextAndSource(t *testing.T) {
	body := "QGH7XJ9K2L Confirmed.\nKsh1,200.00 received from JOHN KAMAU on 3/1/24"
	event := Parse(body, "mpesa")
	require.NotNil(t, event)
	assert.Equal(t, body, event.RawText, "raw body kept for audit, unmodified")
	assert.Equal(t, "MPESA", event.SourceLabel)
	assert.False(t, event.ReceivedAt.IsZero())
}

func TestParseBankAlertThroughCascade(t *testing.T) {
	body := "Dear Customer, Confirmed. KES. 50.00 from MARY WANJIKU Phone 0722xxxxxx received. Ref. BNK9988771 on 4/1/24."
	event := Parse(body, "EQUITY")
	require.NotNil(t, event)
	assert.Equal(t, "BNK9988771", event.ReferenceCode)
	assert.Equal(t, model.ChannelBank, event.Channel)
	assert.Equal(t, "EQUITY", event.SourceLabel)
}
