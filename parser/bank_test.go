package parser

import (
	"testing"

	"github.com/dukahq/dukarecon/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBankReverse(t *testing.T) {
	body := "Dear Customer, Confirmed. KES. 50.00 from MARY WANJIKU Phone 0722xxxxxx received. Ref. BNK9988771 on 4/1/24."
	event := parseBankReverse(collapseWhitespace(body))
	require.NotNil(t, event)
	assert.Equal(t, "BNK9988771", event.ReferenceCode)
	assert.True(t, event.Amount.Equal(decimal.RequireFromString("50.00")))
	assert.Equal(t, "MARY WANJIKU", event.Counterparty)
	assert.Equal(t, model.ChannelBank, event.Channel)
}

func TestParseBankReverseRejectsPartialMatch(t *testing.T) {
	// Amount present but the reference is truncated to nine characters.
	body := "Confirmed. KES. 50.00 from MARY WANJIKU Phone 0722xxxxxx received. Ref. BNK998877 on 4/1/24."
	assert.Nil(t, parseBankReverse(collapseWhitespace(body)))
}

func TestParseSacco(t *testing.T) {
	body := "Confirmed. You have received KES 250.00 in your account from Joseph Mwangi through Unaitas Sacco. Reference no UAA8XP01QZ."
	event := parseSacco(collapseWhitespace(body))
	require.NotNil(t, event)
	assert.Equal(t, "UAA8XP01QZ", event.ReferenceCode)
	assert.True(t, event.Amount.Equal(decimal.RequireFromString("250.00")))
	assert.Equal(t, "Joseph Mwangi", event.Counterparty)
	assert.Equal(t, model.ChannelBank, event.Channel)
}

func TestParseBankGeneric(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantCode    string
		wantAmount  string
		wantSender  string
		wantNoMatch bool
	}{
		{
			name:       "tran id label with named sender",
			body:       "Tran Id: EQT5544332 Credited with KES 3,500.00 by PETER KARIUKI on 5/1/24",
			wantCode:   "EQT5544332",
			wantAmount: "3500.00",
			wantSender: "PETER KARIUKI",
		},
		{
			name:       "ref label without sender falls back to placeholder",
			body:       "Ref: QWE1234567 Credited KES 1,000.00 to your account 5/1/24",
			wantCode:   "QWE1234567",
			wantAmount: "1000.00",
			wantSender: bankFallbackCounterparty,
		},
		{
			name:        "amount without reference rejected",
			body:        "Credited with KES 3,500.00 by PETER KARIUKI via mobile",
			wantNoMatch: true,
		},
		{
			name:        "reference without amount rejected",
			body:        "Tran Id: EQT5544332 transaction processed successfully",
			wantNoMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := parseBankGeneric(collapseWhitespace(tt.body))
			if tt.wantNoMatch {
				assert.Nil(t, event)
				return
			}
			require.NotNil(t, event)
			assert.Equal(t, tt.wantCode, event.ReferenceCode)
			assert.True(t, event.Amount.Equal(decimal.RequireFromString(tt.wantAmount)))
			assert.Equal(t, tt.wantSender, event.Counterparty)
			assert.Equal(t, model.ChannelBank, event.Channel)
		})
	}
}
