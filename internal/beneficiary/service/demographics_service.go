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
	"net/http"
	"strings"
	"time"

	"github.com/opencasework/case-management-service/internal/beneficiary/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const demographicsPageSize = 500

const bucketUnknown = "unknown"

// Demographics computes bucketed counts across the organization's active
// beneficiaries. Disclosure-for-computation is still disclosure: only
// privileged callers may request it, only date of birth and gender are
// decrypted, the plaintext is discarded after bucketing, and the whole
// aggregation is covered by a single audit row.
func (s *BeneficiaryService) Demographics(orgHandle, userID string, privileged bool) (*model.DemographicsReport, error) {

	if !privileged {
		return nil, errors2.NewClientError(errors2.FORBIDDEN, http.StatusForbidden)
	}

	report := &model.DemographicsReport{
		AgeBuckets: map[string]int{},
		Genders:    map[string]int{},
	}
	now := time.Now().UTC()

	offset := 0
	for {
		page, err := s.store.GetByOrg(s.db.DB(), orgHandle, demographicsPageSize, offset)
		if err != nil {
			return nil, err
		}
		for _, beneficiary := range page {
			if beneficiary.Status != constants.BeneficiaryStatusActive {
				continue
			}
			report.Total++
			report.AgeBuckets[s.ageBucket(beneficiary.PII[constants.AttrDateOfBirth], now)]++
			report.Genders[s.genderLabel(beneficiary.PII[constants.AttrGender])]++
		}
		if len(page) < demographicsPageSize {
			break
		}
		offset += demographicsPageSize
	}

	s.audit.Record(orgHandle, userID, constants.AuditActionPIIAggregate,
		"Demographics aggregate computed over decrypted fields",
		map[string]interface{}{"total": report.Total})
	return report, nil
}

func (s *BeneficiaryService) ageBucket(encrypted *crypto.EncryptedField, now time.Time) string {

	if encrypted == nil {
		return bucketUnknown
	}
	plaintext, err := s.crypto.DecryptField(encrypted)
	if err != nil || plaintext == nil {
		return bucketUnknown
	}

	normalized := crypto.NormalizeDOB(*plaintext)
	if normalized == "" {
		return bucketUnknown
	}
	dob, err := time.Parse("2006-01-02", normalized)
	if err != nil {
		return bucketUnknown
	}

	age := now.Year() - dob.Year()
	if now.YearDay() < dob.YearDay() {
		age--
	}
	switch {
	case age < 0:
		return bucketUnknown
	case age <= 5:
		return "0-5"
	case age <= 12:
		return "6-12"
	case age <= 17:
		return "13-17"
	case age <= 29:
		return "18-29"
	case age <= 44:
		return "30-44"
	case age <= 59:
		return "45-59"
	default:
		return "60+"
	}
}

func (s *BeneficiaryService) genderLabel(encrypted *crypto.EncryptedField) string {

	if encrypted == nil {
		return bucketUnknown
	}
	plaintext, err := s.crypto.DecryptField(encrypted)
	if err != nil || plaintext == nil {
		return bucketUnknown
	}

	label := strings.ToLower(strings.TrimSpace(*plaintext))
	if label == "" {
		return bucketUnknown
	}
	return label
}
