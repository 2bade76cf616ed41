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

package service

import (
	"strings"

	"github.com/opencasework/case-management-service/internal/resolution/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

// NormalizedFields holds the identity values a strategy can match on,
// already normalized. National ID is deliberately carried verbatim: its
// comparison is exact, not case- or whitespace-insensitive.
type NormalizedFields struct {
	FullName   string
	DOB        string
	Phone      string
	NationalID string
}

// ExtractIdentityValues walks the mapping's dotted paths into the raw
// response payload. Missing path segments yield absent entries, never an
// error.
func ExtractIdentityValues(fields map[string]string, data map[string]interface{}) map[string]string {

	values := map[string]string{}
	for attribute, path := range fields {
		if value := utils.GetStringByPath(data, path); value != "" {
			values[attribute] = value
		}
	}
	return values
}

// NormalizeExtracted derives the matchable field set from the raw extracted
// values.
func NormalizeExtracted(raw map[string]string) NormalizedFields {

	var nameParts []string
	if first := crypto.NormalizeName(raw[constants.AttrFirstName]); first != "" {
		nameParts = append(nameParts, first)
	}
	if last := crypto.NormalizeName(raw[constants.AttrLastName]); last != "" {
		nameParts = append(nameParts, last)
	}

	return NormalizedFields{
		FullName:   strings.Join(nameParts, " "),
		DOB:        crypto.NormalizeDOB(raw[constants.AttrDateOfBirth]),
		Phone:      crypto.NormalizePhone(raw[constants.AttrPhone]),
		NationalID: raw[constants.AttrNationalID],
	}
}

// RequiredInputsPresent reports whether all inputs a strategy needs are
// available. A strategy with missing inputs is silently skipped; it does
// not fail the submission.
func RequiredInputsPresent(strategy string, fields NormalizedFields) bool {

	switch strategy {
	case constants.StrategyNationalID:
		return fields.NationalID != ""
	case constants.StrategyPhoneDOB:
		return fields.Phone != "" && fields.DOB != ""
	case constants.StrategyNameDOB:
		return fields.FullName != "" && fields.DOB != ""
	default:
		return false
	}
}

// compositeValue builds the plaintext composite a strategy hashes over.
// Only call after RequiredInputsPresent.
func compositeValue(strategy string, fields NormalizedFields) string {

	switch strategy {
	case constants.StrategyNationalID:
		return fields.NationalID
	case constants.StrategyPhoneDOB:
		return fields.Phone + "|" + fields.DOB
	case constants.StrategyNameDOB:
		return fields.FullName + "|" + fields.DOB
	default:
		return ""
	}
}

// BuildCandidateKeys computes a candidate match key for every enabled
// strategy whose required inputs are present, in precedence order.
func BuildCandidateKeys(strategies []string, fields NormalizedFields, hash func(string) string) []model.CandidateKey {

	var candidates []model.CandidateKey
	for _, strategy := range strategies {
		if !RequiredInputsPresent(strategy, fields) {
			continue
		}
		candidates = append(candidates, model.CandidateKey{
			KeyType: strategy,
			KeyHash: hash(compositeValue(strategy, fields)),
		})
	}
	return candidates
}
