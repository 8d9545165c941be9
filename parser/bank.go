package parser

import (
	"regexp"
	"strings"

	"github.com/dukahq/dukarecon/model"
)

// Bank and sacco alerts come in three sub-shapes, tried strictest first. All
// three demand a 2-decimal amount and a 10-character code before reporting
// success; an amount without a code (or the reverse) falls through.

// bankReversePattern handles the "reverse" layout where the amount precedes
// the reference: "Confirmed. KES. 50.00 from MARY ... Ref. BNK9988771 on ...".
// The trailing (?:\s|$) stops the code capture at the space before "on".
var bankReversePattern = regexp.MustCompile(
	`(?i)Confirmed\.\s*(?:KES|Ksh|KSH)[.\s]*([\d,]+\.\d{2})\s*from\s*(.*?)\s*(?:Phone|received).*?Ref\.?\s*([A-Z0-9]{10})(?:\s|$)`)

// saccoPattern handles sacco notifications: "Confirmed. You have received
// KES 10.00 ... from Joseph through ... Reference no UAA8XP01QZ".
var saccoPattern = regexp.MustCompile(
	`(?i)Confirmed\..*?(?:KES|Ksh|KSH)\s?([\d,]+\.\d{2}).*?from\s+(.*?)\s+through.*?Reference\s+no\s+([A-Z0-9]{10})`)

// bankGeneric* cover the remaining bank layouts: a reference label anywhere
// in the text plus a currency amount, with an optional "by/from NAME" clause.
var (
	bankCodePattern   = regexp.MustCompile(`(?i)(?:Ref|Mpesa|PMT|Tran Id)\s*[:.]?\s*([A-Z0-9]{10})`)
	bankAmountPattern = regexp.MustCompile(`(?i)(?:KES|Ksh|KSH)[.\s]*([\d,]+\.\d{2})`)
	bankNamePattern   = regexp.MustCompile(`(?i)(?:by|from)\s+([A-Z\s]+)(?:\s+on|\s+via|\.$)`)
)

// bankFallbackCounterparty is used when a bank alert carries no sender name.
const bankFallbackCounterparty = "Client (Via Bank)"

func parseBankReverse(clean string) *model.MoneyEvent {
	m := bankReversePattern.FindStringSubmatch(clean)
	if m == nil {
		return nil
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return nil
	}
	return &model.MoneyEvent{
		ReferenceCode: strings.ToUpper(m[3]),
		Amount:        amount,
		Counterparty:  cleanCounterparty(m[2]),
		Channel:       model.ChannelBank,
	}
}

func parseSacco(clean string) *model.MoneyEvent {
	m := saccoPattern.FindStringSubmatch(clean)
	if m == nil {
		return nil
	}
	amount, ok := parseAmount(m[1])
	if !ok {
		return nil
	}
	return &model.MoneyEvent{
		ReferenceCode: strings.ToUpper(m[3]),
		Amount:        amount,
		Counterparty:  cleanCounterparty(m[2]),
		Channel:       model.ChannelBank,
	}
}

func parseBankGeneric(clean string) *model.MoneyEvent {
	codeMatch := bankCodePattern.FindStringSubmatch(clean)
	amountMatch := bankAmountPattern.FindStringSubmatch(clean)
	if codeMatch == nil || amountMatch == nil {
		return nil
	}
	amount, ok := parseAmount(amountMatch[1])
	if !ok {
		return nil
	}

	counterparty := bankFallbackCounterparty
	if nameMatch := bankNamePattern.FindStringSubmatch(clean); nameMatch != nil {
		counterparty = cleanCounterparty(nameMatch[1])
	}

	return &model.MoneyEvent{
		ReferenceCode: strings.ToUpper(codeMatch[1]),
		Amount:        amount,
		Counterparty:  counterparty,
		Channel:       model.ChannelBank,
	}
}
