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
	"time"

	"github.com/google/uuid"

	"github.com/opencasework/case-management-service/internal/beneficiary/model"
	resolutionModel "github.com/opencasework/case-management-service/internal/resolution/model"
	resolutionService "github.com/opencasework/case-management-service/internal/resolution/service"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// BeneficiaryRepository abstracts beneficiary persistence.
type BeneficiaryRepository interface {
	Insert(q client.Querier, beneficiary model.Beneficiary) error
	GetByID(q client.Querier, orgHandle, beneficiaryID string) (*model.Beneficiary, error)
	GetByOrg(q client.Querier, orgHandle string, limit, offset int) ([]model.Beneficiary, error)
	UpdatePII(q client.Querier, orgHandle, beneficiaryID string, pii map[string]*crypto.EncryptedField, updatedAt int64) error
	UpdateStatus(q client.Querier, orgHandle, beneficiaryID, status string, updatedAt int64) error
}

// MatchKeyWriter is the slice of the deduplication index this service
// needs for key re-derivation.
type MatchKeyWriter interface {
	InsertIgnoreDuplicate(q client.Querier, key resolutionModel.MatchKey) error
}

// AuditWriter records disclosure and mutation events, best-effort.
type AuditWriter interface {
	Record(orgHandle, userID, action, description string, details map[string]interface{})
}

// BeneficiaryService implements beneficiary record management and the
// disclosure gate.
type BeneficiaryService struct {
	db        client.DBClientInterface
	store     BeneficiaryRepository
	matchKeys MatchKeyWriter
	crypto    *crypto.Service
	audit     AuditWriter
}

// NewBeneficiaryService creates a new BeneficiaryService.
func NewBeneficiaryService(db client.DBClientInterface, store BeneficiaryRepository,
	matchKeys MatchKeyWriter, cryptoSvc *crypto.Service, audit AuditWriter) *BeneficiaryService {

	return &BeneficiaryService{
		db:        db,
		store:     store,
		matchKeys: matchKeys,
		crypto:    cryptoSvc,
		audit:     audit,
	}
}

// AddBeneficiary creates a beneficiary record directly, outside the
// submission flow. Supplied identity values are encrypted and the match-key
// index is populated in the same transaction.
func (s *BeneficiaryService) AddBeneficiary(orgHandle, userID string,
	request model.BeneficiaryAPIRequest) (*model.BeneficiaryProjection, error) {

	fields := filterIdentityAttributes(request.Fields)
	if len(fields) == 0 {
		return nil, errors2.NewClientError(errors2.BAD_REQUEST, http.StatusBadRequest)
	}

	pii := map[string]*crypto.EncryptedField{}
	for attribute, value := range fields {
		encrypted, err := s.crypto.EncryptField(&value)
		if err != nil {
			return nil, errors2.NewServerError(errors2.ENCRYPT_FIELD, err)
		}
		pii[attribute] = encrypted
	}

	pseudonym, err := crypto.NewPseudonym()
	if err != nil {
		return nil, errors2.NewServerError(errors2.ENCRYPT_FIELD, err)
	}

	now := time.Now().UTC().Unix()
	beneficiary := model.Beneficiary{
		BeneficiaryID: uuid.New().String(),
		OrgHandle:     orgHandle,
		Pseudonym:     pseudonym,
		Status:        constants.BeneficiaryStatusActive,
		PII:           pii,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	tx, err := s.db.BeginTx()
	if err != nil {
		return nil, errors2.NewServerError(errors2.BEGIN_TRANSACTION, err)
	}
	if err := s.store.Insert(tx, beneficiary); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := s.deriveMatchKeys(tx, orgHandle, beneficiary.BeneficiaryID, fields, now); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, errors2.NewServerError(errors2.COMMIT_TRANSACTION, err)
	}

	s.audit.Record(orgHandle, userID, constants.AuditActionBeneficiaryCreate,
		"Beneficiary created via API",
		map[string]interface{}{"beneficiary_id": beneficiary.BeneficiaryID})

	projection := s.ProjectForCaller(beneficiary, false)
	return &projection, nil
}

// UpdateBeneficiary overwrites the supplied identity values of an existing
// record, leaves absent values untouched, and re-derives match keys from
// the merged identity.
func (s *BeneficiaryService) UpdateBeneficiary(orgHandle, userID, beneficiaryID string,
	request model.BeneficiaryAPIRequest) (*model.BeneficiaryProjection, error) {

	fields := filterIdentityAttributes(request.Fields)
	if len(fields) == 0 {
		return nil, errors2.NewClientError(errors2.BAD_REQUEST, http.StatusBadRequest)
	}

	tx, err := s.db.BeginTx()
	if err != nil {
		return nil, errors2.NewServerError(errors2.BEGIN_TRANSACTION, err)
	}

	beneficiary, err := s.store.GetByID(tx, orgHandle, beneficiaryID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if beneficiary == nil {
		tx.Rollback()
		return nil, errors2.NewClientError(errors2.BENEFICIARY_NOT_FOUND, http.StatusNotFound)
	}

	for attribute, value := range fields {
		encrypted, err := s.crypto.EncryptField(&value)
		if err != nil {
			tx.Rollback()
			return nil, errors2.NewServerError(errors2.ENCRYPT_FIELD, err)
		}
		beneficiary.PII[attribute] = encrypted
	}

	now := time.Now().UTC().Unix()
	if err := s.store.UpdatePII(tx, orgHandle, beneficiaryID, beneficiary.PII, now); err != nil {
		tx.Rollback()
		return nil, err
	}

	merged := s.mergedIdentityPlaintext(beneficiary, fields)
	if err := s.deriveMatchKeys(tx, orgHandle, beneficiaryID, merged, now); err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, errors2.NewServerError(errors2.COMMIT_TRANSACTION, err)
	}

	s.audit.Record(orgHandle, userID, constants.AuditActionBeneficiaryUpdate,
		"Beneficiary identity fields updated",
		map[string]interface{}{"beneficiary_id": beneficiaryID})

	beneficiary.UpdatedAt = now
	projection := s.ProjectForCaller(*beneficiary, false)
	return &projection, nil
}

// ChangeStatus flips the soft-delete flag. Records are never hard-deleted.
func (s *BeneficiaryService) ChangeStatus(orgHandle, userID, beneficiaryID, status string) error {

	if !constants.AllowedBeneficiaryStatuses[status] {
		return errors2.NewClientError(errors2.INVALID_STATUS, http.StatusBadRequest)
	}

	beneficiary, err := s.store.GetByID(s.db.DB(), orgHandle, beneficiaryID)
	if err != nil {
		return err
	}
	if beneficiary == nil {
		return errors2.NewClientError(errors2.BENEFICIARY_NOT_FOUND, http.StatusNotFound)
	}

	now := time.Now().UTC().Unix()
	if err := s.store.UpdateStatus(s.db.DB(), orgHandle, beneficiaryID, status, now); err != nil {
		return err
	}

	s.audit.Record(orgHandle, userID, constants.AuditActionStatusChange,
		"Beneficiary status changed",
		map[string]interface{}{"beneficiary_id": beneficiaryID, "status": status})
	return nil
}

// deriveMatchKeys rebuilds candidate keys from the plaintext identity and
// ensures them in the index. Existing keys are never removed; historical
// identities keep resolving.
func (s *BeneficiaryService) deriveMatchKeys(tx client.Querier, orgHandle, beneficiaryID string,
	plain map[string]string, now int64) error {

	normalized := resolutionService.NormalizeExtracted(plain)
	candidates := resolutionService.BuildCandidateKeys(constants.RecognizedStrategies, normalized, s.crypto.HashKey)

	for _, candidate := range candidates {
		key := resolutionModel.MatchKey{
			OrgHandle:     orgHandle,
			KeyType:       candidate.KeyType,
			KeyHash:       candidate.KeyHash,
			BeneficiaryID: beneficiaryID,
			CreatedAt:     now,
		}
		if err := s.matchKeys.InsertIgnoreDuplicate(tx, key); err != nil {
			return err
		}
	}
	return nil
}

// mergedIdentityPlaintext assembles the plaintext view of the attributes
// the strategies match on: supplied values win, everything else is
// decrypted from the stored record. An undecryptable stored value is
// skipped; it simply contributes no candidate key.
func (s *BeneficiaryService) mergedIdentityPlaintext(beneficiary *model.Beneficiary,
	supplied map[string]string) map[string]string {

	matchAttributes := []string{
		constants.AttrFirstName,
		constants.AttrLastName,
		constants.AttrDateOfBirth,
		constants.AttrPhone,
		constants.AttrNationalID,
	}

	merged := map[string]string{}
	for _, attribute := range matchAttributes {
		if value, ok := supplied[attribute]; ok {
			merged[attribute] = value
			continue
		}
		encrypted, ok := beneficiary.PII[attribute]
		if !ok {
			continue
		}
		plaintext, err := s.crypto.DecryptField(encrypted)
		if err != nil {
			log.GetLogger().Warn("Skipping undecryptable attribute during match key derivation",
				log.String("beneficiary_id", beneficiary.BeneficiaryID),
				log.String("attribute", attribute), log.Error(err))
			continue
		}
		if plaintext != nil {
			merged[attribute] = *plaintext
		}
	}
	return merged
}

func filterIdentityAttributes(fields map[string]string) map[string]string {

	filtered := map[string]string{}
	for _, attribute := range constants.IdentityAttributes {
		if value, ok := fields[attribute]; ok && value != "" {
			filtered[attribute] = value
		}
	}
	return filtered
}
