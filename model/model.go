package model

import (
	"fmt"
	"regexp"

	"github.com/google/uuid"
)

// referenceCodePattern is the shape of a full-confidence transaction code:
// exactly ten uppercase alphanumerics.
var referenceCodePattern = regexp.MustCompile(`^[A-Z0-9]{10}$`)

// GenerateUUIDWithSuffix generates a UUID with a given module name as a prefix.
// This is useful for creating unique identifiers with context-specific prefixes.
func GenerateUUIDWithSuffix(module string) string {
	id := uuid.New()
	return fmt.Sprintf("%s_%s", module, id.String())
}

// IsValidReferenceCode reports whether code is a well-formed 10-character
// transaction code.
func IsValidReferenceCode(code string) bool {
	return referenceCodePattern.MatchString(code)
}

// Validate checks the invariants a money event must hold before ingestion.
// Fallback-channel events may carry a malformed code; those are rejected here
// because a malformed code cannot serve as a ledger uniqueness key.
func (e *MoneyEvent) Validate() error {
	if !e.Amount.IsPositive() {
		return fmt.Errorf("money event amount must be positive, got %s", e.Amount)
	}
	if !IsValidReferenceCode(e.ReferenceCode) {
		return fmt.Errorf("malformed reference code %q", e.ReferenceCode)
	}
	return nil
}

// MatchesMethod reports whether an event on this channel can evidence a
// payment recorded with the given method. Generic-channel events default to
// the mobile-money rail: the fallback parser cannot tell which rail carried
// the money, and nearly all of its catches are paybill/till traffic.
func (c Channel) MatchesMethod(method PaymentMethod) bool {
	switch c {
	case ChannelMobileMoney, ChannelGeneric:
		return method == MethodMobileMoney
	case ChannelBank:
		return method == MethodBank
	}
	return false
}
