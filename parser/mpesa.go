package parser

import (
	"regexp"
	"strings"

	"github.com/dukahq/dukarecon/model"
)

// mobileMoneyPattern matches the primary mobile-money confirmation shape:
// "<code> Confirmed. ... Ksh<amount> received from <name> on <date> ...".
// The terminator group after the name stops the capture before the date,
// phone number or balance text that follows it.
var mobileMoneyPattern = regexp.MustCompile(
	`(?i)([A-Z0-9]{10})\s*Confirmed\..*?(?:Ksh|KES|KSH)\s?([\d,]+\.\d{2})\s*received\s*from\s*(.*?)(?:\s+(?:on|at|New|Balance|Account|Buy|07\d+|254\d+)|$|\.$)`)

func parseMobileMoney(clean string) *model.MoneyEvent {
	m := mobileMoneyPattern.FindStringSubmatch(clean)
	if m == nil {
		return nil
	}
	amount, ok := parseAmount(m[2])
	if !ok {
		return nil
	}
	return &model.MoneyEvent{
		ReferenceCode: strings.ToUpper(m[1]),
		Amount:        amount,
		Counterparty:  cleanCounterparty(m[3]),
		Channel:       model.ChannelMobileMoney,
	}
}
