package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dukahq/dukarecon/model"
)

// The expense parser handles outgoing-money confirmations. It is not part of
// the income cascade: the expense-recording flow calls it directly, and an
// outgoing "sent to" text must never be logged as money received.

var (
	expenseCodePattern   = regexp.MustCompile(`(?i)^([A-Z0-9]{10})\s*Confirmed\.`)
	expenseAmountPattern = regexp.MustCompile(`(?i)(?:Ksh|KES|KSH)\s?([\d,]+\.\d{2})`)

	sentToPattern = regexp.MustCompile(`(?i)sent\s*to\s*(.*?)\s+(?:on|for)`)
	paidToPattern = regexp.MustCompile(`(?i)paid\s*to\s*(.*?)\s+(?:on|for)`)
	boughtPattern = regexp.MustCompile(`(?i)You\s*bought\s*(.*?)(?:\s+on|\.$)`)
)

// ParseExpense extracts an outgoing payment from a confirmation text. The
// description classifies the spend by the verb phrase present: "sent to X",
// "paid to Y" or "bought Z". Unrecognizable input yields nil.
func ParseExpense(body string) *model.ExpenseEvent {
	if body == "" {
		return nil
	}
	clean := collapseWhitespace(body)

	codeMatch := expenseCodePattern.FindStringSubmatch(clean)
	if codeMatch == nil {
		return nil
	}
	amountMatch := expenseAmountPattern.FindStringSubmatch(clean)
	if amountMatch == nil {
		return nil
	}
	amount, ok := parseAmount(amountMatch[1])
	if !ok {
		return nil
	}

	description := "Expense"
	if m := sentToPattern.FindStringSubmatch(clean); m != nil {
		description = fmt.Sprintf("Sent to %s", strings.TrimSpace(m[1]))
	} else if m := paidToPattern.FindStringSubmatch(clean); m != nil {
		description = fmt.Sprintf("Paid to %s", strings.TrimSpace(m[1]))
	} else if m := boughtPattern.FindStringSubmatch(clean); m != nil {
		description = fmt.Sprintf("Bought %s", strings.TrimSpace(m[1]))
	}

	return &model.ExpenseEvent{
		ReferenceCode: strings.ToUpper(codeMatch[1]),
		Amount:        amount,
		Description:   description,
		RawText:       body,
		ReceivedAt:    time.Now(),
	}
}
