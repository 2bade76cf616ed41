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
	"sort"

	"github.com/opencasework/case-management-service/internal/beneficiary/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// ProjectForCaller shapes a beneficiary record for the wire. Safe fields
// and ciphertext always go out; plaintext only for privileged callers. A
// field whose ciphertext fails authentication is omitted from the
// plaintext map rather than failing the whole read.
func (s *BeneficiaryService) ProjectForCaller(beneficiary model.Beneficiary, privileged bool) model.BeneficiaryProjection {

	projection := model.BeneficiaryProjection{
		BeneficiaryID:   beneficiary.BeneficiaryID,
		Pseudonym:       beneficiary.Pseudonym,
		Status:          beneficiary.Status,
		CreatedAt:       beneficiary.CreatedAt,
		UpdatedAt:       beneficiary.UpdatedAt,
		EncryptedFields: beneficiary.PII,
	}
	if !privileged {
		return projection
	}

	projection.PII = s.decryptAvailable(beneficiary)
	return projection
}

// GetBeneficiary returns one record through the disclosure gate. A
// privileged read is audited.
func (s *BeneficiaryService) GetBeneficiary(orgHandle, userID, beneficiaryID string,
	privileged bool) (*model.BeneficiaryProjection, error) {

	beneficiary, err := s.store.GetByID(s.db.DB(), orgHandle, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if beneficiary == nil {
		return nil, errors2.NewClientError(errors2.BENEFICIARY_NOT_FOUND, http.StatusNotFound)
	}

	projection := s.ProjectForCaller(*beneficiary, privileged)
	if privileged {
		s.audit.Record(orgHandle, userID, constants.AuditActionPIIRead,
			"Decrypted PII disclosed for beneficiary read",
			map[string]interface{}{
				"beneficiary_id": beneficiaryID,
				"fields":         disclosedFields(projection.PII),
			})
	}
	return &projection, nil
}

// GetBeneficiaries lists records through the disclosure gate. A privileged
// listing produces exactly one audit row covering the whole batch.
func (s *BeneficiaryService) GetBeneficiaries(orgHandle, userID string, privileged bool,
	limit, offset int) ([]model.BeneficiaryProjection, error) {

	beneficiaries, err := s.store.GetByOrg(s.db.DB(), orgHandle, limit, offset)
	if err != nil {
		return nil, err
	}

	projections := make([]model.BeneficiaryProjection, 0, len(beneficiaries))
	for _, beneficiary := range beneficiaries {
		projections = append(projections, s.ProjectForCaller(beneficiary, privileged))
	}

	if privileged && len(projections) > 0 {
		fields := map[string]bool{}
		for _, projection := range projections {
			for attribute := range projection.PII {
				fields[attribute] = true
			}
		}
		s.audit.Record(orgHandle, userID, constants.AuditActionPIIListRead,
			"Decrypted PII disclosed for beneficiary listing",
			map[string]interface{}{
				"count":  len(projections),
				"fields": sortedKeys(fields),
			})
	}
	return projections, nil
}

// GetBeneficiaryPII returns the full decrypted identity of one record.
// Unprivileged callers are refused outright.
func (s *BeneficiaryService) GetBeneficiaryPII(orgHandle, userID, beneficiaryID string,
	privileged bool) (map[string]string, error) {

	if !privileged {
		return nil, errors2.NewClientError(errors2.FORBIDDEN, http.StatusForbidden)
	}

	beneficiary, err := s.store.GetByID(s.db.DB(), orgHandle, beneficiaryID)
	if err != nil {
		return nil, err
	}
	if beneficiary == nil {
		return nil, errors2.NewClientError(errors2.BENEFICIARY_NOT_FOUND, http.StatusNotFound)
	}

	pii := s.decryptAvailable(*beneficiary)
	s.audit.Record(orgHandle, userID, constants.AuditActionPIIRead,
		"Full decrypted PII disclosed",
		map[string]interface{}{
			"beneficiary_id": beneficiaryID,
			"fields":         disclosedFields(pii),
		})
	return pii, nil
}

// disclosedFields lists the attribute names whose plaintext actually went
// out, so the audit trail records which fields were disclosed, not just that
// a disclosure happened.
func disclosedFields(pii map[string]string) []string {

	fields := map[string]bool{}
	for attribute := range pii {
		fields[attribute] = true
	}
	return sortedKeys(fields)
}

func sortedKeys(set map[string]bool) []string {

	keys := make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func (s *BeneficiaryService) decryptAvailable(beneficiary model.Beneficiary) map[string]string {

	pii := map[string]string{}
	for attribute, encrypted := range beneficiary.PII {
		plaintext, err := s.crypto.DecryptField(encrypted)
		if err != nil {
			log.GetLogger().Warn("Omitting undecryptable field from disclosure",
				log.String("beneficiary_id", beneficiary.BeneficiaryID),
				log.String("attribute", attribute), log.Error(err))
			continue
		}
		if plaintext != nil {
			pii[attribute] = *plaintext
		}
	}
	return pii
}
