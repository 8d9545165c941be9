package parser

import (
	"regexp"
	"strings"

	"github.com/dukahq/dukarecon/model"
)

// The generic fallback is the last resort of the income cascade: any message
// that mentions a confirmation keyword and carries both a currency amount and
// a bare 10-character uppercase token is treated as money received. It cannot
// recover the sender, so events it produces get the low-confidence generic
// channel and a placeholder counterparty.

var (
	confirmationKeywords = regexp.MustCompile(`(?i)Confirmed|received`)
	genericAmountPattern = regexp.MustCompile(`(?i)(?:Ksh|KES|KSH)[.\s]*([\d,]+\.\d{2})`)

	// Texts describing money leaving the account also say "Confirmed" and
	// carry a code, so the fallback must refuse them. The expense parser
	// claims them instead.
	outgoingPattern = regexp.MustCompile(`(?i)sent\s*to|paid\s*to|You\s*bought|withdraw`)

	// Deliberately case-sensitive: a real transaction code is printed in
	// uppercase, and matching lowercase runs here would flood the ledger
	// with false positives.
	genericCodePattern = regexp.MustCompile(`\b([A-Z0-9]{10})\b`)
)

// knownFalsePositives are common words and brand names that show up in caps
// inside payment texts and could be mistaken for a reference code. The list
// is best-effort, which is part of why fallback events carry lower confidence.
var knownFalsePositives = map[string]struct{}{
	"CONFIRMED":  {},
	"RECEIVED":   {},
	"MPESA":      {},
	"BALANCE":    {},
	"ACCOUNT":    {},
	"EQUITYBANK": {},
	"SAFARICOM":  {},
	"PAYBILL":    {},
}

// UnknownCounterparty is the sentinel name for fallback-parsed events.
const UnknownCounterparty = "Unknown"

func parseGeneric(clean string) *model.MoneyEvent {
	if !confirmationKeywords.MatchString(clean) {
		return nil
	}
	if outgoingPattern.MatchString(clean) {
		return nil
	}

	amountMatch := genericAmountPattern.FindStringSubmatch(clean)
	if amountMatch == nil {
		return nil
	}

	code := findGenericCode(clean)
	if code == "" {
		return nil
	}

	amount, ok := parseAmount(amountMatch[1])
	if !ok {
		return nil
	}

	return &model.MoneyEvent{
		ReferenceCode: code,
		Amount:        amount,
		Counterparty:  UnknownCounterparty,
		Channel:       model.ChannelGeneric,
	}
}

// findGenericCode returns the first 10-character uppercase token that is not
// a known false positive, or "" when none qualifies.
func findGenericCode(clean string) string {
	for _, m := range genericCodePattern.FindAllStringSubmatch(clean, -1) {
		code := strings.ToUpper(m[1])
		if _, excluded := knownFalsePositives[code]; excluded {
			continue
		}
		return code
	}
	return ""
}
