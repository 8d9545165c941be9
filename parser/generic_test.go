package parser

import (
	"testing"

	"github.com/dukahq/dukarecon/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGeneric(t *testing.T) {
	body := "Confirmed. Ksh750.00 received at your till. TLL7Y2M9QX. Thank you for banking with us."
	event := parseGeneric(collapseWhitespace(body))
	require.NotNil(t, event)
	assert.Equal(t, "TLL7Y2M9QX", event.ReferenceCode)
	assert.True(t, event.Amount.Equal(decimal.RequireFromString("750.00")))
	assert.Equal(t, UnknownCounterparty, event.Counterparty)
	assert.Equal(t, model.ChannelGeneric, event.Channel)
}

func TestParseGenericRequiresConfirmationKeyword(t *testing.T) {
	// Amount and a plausible code, but no "Confirmed"/"received" anywhere.
	body := "Promo alert: win Ksh10,000.00 today! Use code PRM0MO2024 before midnight."
	assert.Nil(t, parseGeneric(collapseWhitespace(body)))
}

func TestParseGenericSkipsFalsePositiveTokens(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{
			name: "brand name in caps is not a reference",
			body: "EQUITYBANK Confirmed. KES 100.00 received at agent outlet.",
		},
		{
			name: "no uppercase token at all",
			body: "Confirmed. Ksh200.00 received, thank you.",
		},
		{
			name: "lowercase token is not a reference",
			body: "Confirmed. Ksh200.00 received, ref qgh7xj9k2l.",
		},
		{
			name: "outgoing transfer is not income",
			body: "QWE8RT6Y2U Confirmed. Ksh2,500.00 sent to JANE WAMBUI on 3/1/24",
		},
		{
			name: "withdrawal is not income",
			body: "QWE8RT6Y5X Confirmed. You have withdrawn Ksh300.00 from agent 123456 on 3/1/24",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, parseGeneric(collapseWhitespace(tt.body)))
		})
	}
}

func TestParseGenericSkipsExcludedTokenButFindsRealCode(t *testing.T) {
	body := "EQUITYBANK Confirmed. KES 100.00 received. Ref TLL7Y2M9QX issued."
	event := parseGeneric(collapseWhitespace(body))
	require.NotNil(t, event)
	assert.Equal(t, "TLL7Y2M9QX", event.ReferenceCode)
}
