/*
Copyright 2025 DukaRecon Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package parser extracts structured payment events from raw transaction
// notification texts. Carriers wrap, reorder and reformat these messages
// freely, so extraction runs as an ordered cascade of format-specific
// extractors with a deliberately loose fallback at the end. Order matters:
// the fallback would happily misread a message the primary format parses
// with richer fields.
package parser

import (
	"regexp"
	"strings"
	"time"

	"github.com/dukahq/dukarecon/model"
)

// extractor attempts one message format against a whitespace-collapsed body.
// A nil return means "not this format"; the cascade moves on.
type extractor func(clean string) *model.MoneyEvent

// cascade is tried in order, first match wins.
var cascade = []extractor{
	parseMobileMoney,
	parseBankReverse,
	parseSacco,
	parseBankGeneric,
	parseGeneric,
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// Parse extracts a money-received event from a raw notification body. It
// returns nil for anything that is not a recognizable payment confirmation;
// that is the common case, not an error, since the listener feeding this
// function also sees ordinary text messages.
func Parse(body, senderLabel string) *model.MoneyEvent {
	if body == "" {
		return nil
	}
	clean := collapseWhitespace(body)

	for _, extract := range cascade {
		if event := extract(clean); event != nil {
			event.RawText = body
			event.SourceLabel = strings.ToUpper(strings.TrimSpace(senderLabel))
			event.ReceivedAt = time.Now()
			return event
		}
	}
	return nil
}

// collapseWhitespace folds newlines and runs of spaces into single spaces so
// the format patterns survive carrier line-wrapping.
func collapseWhitespace(body string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(body, " "))
}

// cleanCounterparty trims a captured sender name and drops the stray trailing
// dash some carriers leave before the truncated phone number.
func cleanCounterparty(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), " -")
	return strings.TrimSpace(name)
}
