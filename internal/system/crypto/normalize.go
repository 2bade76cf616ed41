/*
 * Copyright (c) 2025, OpenCaseWork (https://opencasework.org).
 *
 * OpenCaseWork licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package crypto

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// dobLayouts are the date shapes accepted from survey payloads.
var dobLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006/01/02",
	"02/01/2006",
	"02-01-2006",
	"02.01.2006",
}

// internationalAccessPrefix is the dialing prefix stripped before phone
// comparison, alongside the country code used by the field offices.
const (
	internationalAccessPrefix = "00"
	defaultCountryCode        = "383"
)

var diacriticsStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeName lowercases, trims, collapses internal whitespace and strips
// diacritics. Two names a human considers the same after case, spacing or
// accent differences normalize identically. Empty input stays empty.
func NormalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}
	if stripped, _, err := transform.String(diacriticsStripper, s); err == nil {
		s = stripped
	}
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeDOB parses a date-like string into canonical YYYY-MM-DD form.
// Unparseable or missing input degrades to the empty string instead of
// failing the submission.
func NormalizeDOB(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// NormalizePhone reduces a phone value to a canonical digit string:
// non-digits are dropped, then the international access prefix, the
// country code and the trunk zero.
func NormalizePhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if digits == "" {
		return ""
	}

	if strings.HasPrefix(digits, internationalAccessPrefix) {
		digits = digits[len(internationalAccessPrefix):]
	}
	if strings.HasPrefix(digits, defaultCountryCode) {
		digits = digits[len(defaultCountryCode):]
	}
	digits = strings.TrimPrefix(digits, "0")
	return digits
}
