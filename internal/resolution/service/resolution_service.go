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
	"fmt"
	"time"

	"github.com/google/uuid"

	beneficiaryModel "github.com/opencasework/case-management-service/internal/beneficiary/model"
	mappingModel "github.com/opencasework/case-management-service/internal/mapping/model"
	mappingService "github.com/opencasework/case-management-service/internal/mapping/service"
	"github.com/opencasework/case-management-service/internal/resolution/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// MappingReader fetches the mapping configuration for a form template.
type MappingReader interface {
	GetByFormTemplate(q client.Querier, orgHandle, formTemplateID string) (*mappingModel.BeneficiaryMapping, error)
}

// MatchKeyRepository abstracts the deduplication index.
type MatchKeyRepository interface {
	InsertIgnoreDuplicate(q client.Querier, key model.MatchKey) error
	Lookup(q client.Querier, orgHandle string, candidates []model.CandidateKey) ([]model.MatchKey, error)
}

// BeneficiaryRepository abstracts the beneficiary record store.
type BeneficiaryRepository interface {
	Insert(q client.Querier, beneficiary beneficiaryModel.Beneficiary) error
	GetByID(q client.Querier, orgHandle, beneficiaryID string) (*beneficiaryModel.Beneficiary, error)
	UpdatePII(q client.Querier, orgHandle, beneficiaryID string, pii map[string]*crypto.EncryptedField, updatedAt int64) error
}

// Resolver decides whether an incoming form response refers to an existing
// beneficiary or a new one.
type Resolver struct {
	crypto        *crypto.Service
	mappings      MappingReader
	matchKeys     MatchKeyRepository
	beneficiaries BeneficiaryRepository
}

// NewResolver creates a new identity Resolver.
func NewResolver(cryptoSvc *crypto.Service, mappings MappingReader, matchKeys MatchKeyRepository,
	beneficiaries BeneficiaryRepository) *Resolver {

	return &Resolver{
		crypto:        cryptoSvc,
		mappings:      mappings,
		matchKeys:     matchKeys,
		beneficiaries: beneficiaries,
	}
}

// ResolveOrCreate attaches a submission to an existing beneficiary or
// creates a new one. It runs entirely on the caller's transaction: either
// every write lands or none does. A form template without a mapping does
// not participate in deduplication and resolves to an empty result.
// Project linkage is the caller's concern; resolution only ever matches on
// identity.
func (r *Resolver) ResolveOrCreate(tx client.Querier, orgHandle, formTemplateID string,
	data map[string]interface{}) (model.Resolution, error) {

	logger := log.GetLogger()

	mapping, err := r.mappings.GetByFormTemplate(tx, orgHandle, formTemplateID)
	if err != nil {
		return model.Resolution{}, err
	}
	if mapping == nil {
		logger.Debug("No beneficiary mapping for form template, skipping resolution",
			log.String("form_template_id", formTemplateID))
		return model.Resolution{Created: false}, nil
	}

	raw := ExtractIdentityValues(mapping.Fields, data)
	normalized := NormalizeExtracted(raw)

	strategies := mappingService.FilterStrategies(mapping.Strategies)
	candidates := BuildCandidateKeys(strategies, normalized, r.crypto.HashKey)

	now := time.Now().UTC().Unix()

	if len(candidates) > 0 {
		matches, err := r.matchKeys.Lookup(tx, orgHandle, candidates)
		if err != nil {
			return model.Resolution{}, err
		}
		if winner := pickWinner(candidates, matches); winner != "" {
			if err := r.updateExisting(tx, orgHandle, winner, raw, candidates, now); err != nil {
				return model.Resolution{}, err
			}
			return model.Resolution{BeneficiaryID: winner, Created: false}, nil
		}
	}

	beneficiaryID, err := r.createNew(tx, orgHandle, raw, candidates, now)
	if err != nil {
		return model.Resolution{}, err
	}
	return model.Resolution{BeneficiaryID: beneficiaryID, Created: true}, nil
}

// pickWinner resolves candidate matches to a single beneficiary. When
// different strategies point at different beneficiaries the most specific
// strategy wins; candidates arrive in precedence order, so the first
// candidate with an index row decides.
func pickWinner(candidates []model.CandidateKey, matches []model.MatchKey) string {

	if len(matches) == 0 {
		return ""
	}

	byKey := map[string]string{}
	for _, match := range matches {
		byKey[match.KeyType+"\x00"+match.KeyHash] = match.BeneficiaryID
	}

	for _, candidate := range candidates {
		if beneficiaryID, ok := byKey[candidate.KeyType+"\x00"+candidate.KeyHash]; ok {
			return beneficiaryID
		}
	}
	return ""
}

// updateExisting merges newly supplied identity values into the matched
// beneficiary. Supplied values overwrite; absent values leave the prior
// ciphertext untouched. All of this submission's candidate keys are ensured
// in the index so future submissions keep resolving.
func (r *Resolver) updateExisting(tx client.Querier, orgHandle, beneficiaryID string,
	raw map[string]string, candidates []model.CandidateKey, now int64) error {

	beneficiary, err := r.beneficiaries.GetByID(tx, orgHandle, beneficiaryID)
	if err != nil {
		return err
	}
	if beneficiary == nil {
		return errors2.NewServerError(errors2.RESOLVE_BENEFICIARY,
			fmt.Errorf("match key points at unknown beneficiary %s", beneficiaryID))
	}

	pii := beneficiary.PII
	if pii == nil {
		pii = map[string]*crypto.EncryptedField{}
	}
	if len(raw) > 0 {
		for attribute, value := range raw {
			encrypted, err := r.crypto.EncryptField(&value)
			if err != nil {
				return errors2.NewServerError(errors2.ENCRYPT_FIELD, err)
			}
			pii[attribute] = encrypted
		}
		if err := r.beneficiaries.UpdatePII(tx, orgHandle, beneficiaryID, pii, now); err != nil {
			return err
		}
	}

	return r.ensureKeys(tx, orgHandle, beneficiaryID, candidates, now)
}

// createNew persists a fresh beneficiary with whatever identity values the
// submission supplied, plus its candidate keys. Encryption failure aborts
// the whole operation; a partially encrypted record is never acceptable.
func (r *Resolver) createNew(tx client.Querier, orgHandle string, raw map[string]string,
	candidates []model.CandidateKey, now int64) (string, error) {

	pseudonym, err := crypto.NewPseudonym()
	if err != nil {
		return "", errors2.NewServerError(errors2.RESOLVE_BENEFICIARY, err)
	}

	pii := map[string]*crypto.EncryptedField{}
	for attribute, value := range raw {
		encrypted, err := r.crypto.EncryptField(&value)
		if err != nil {
			return "", errors2.NewServerError(errors2.ENCRYPT_FIELD, err)
		}
		pii[attribute] = encrypted
	}

	beneficiary := beneficiaryModel.Beneficiary{
		BeneficiaryID: uuid.New().String(),
		OrgHandle:     orgHandle,
		Pseudonym:     pseudonym,
		Status:        constants.BeneficiaryStatusActive,
		PII:           pii,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := r.beneficiaries.Insert(tx, beneficiary); err != nil {
		return "", err
	}
	if err := r.ensureKeys(tx, orgHandle, beneficiary.BeneficiaryID, candidates, now); err != nil {
		return "", err
	}

	log.GetLogger().Debug("Created new beneficiary from submission",
		log.String("beneficiary_id", beneficiary.BeneficiaryID),
		log.Int("match_keys", len(candidates)))
	return beneficiary.BeneficiaryID, nil
}

func (r *Resolver) ensureKeys(tx client.Querier, orgHandle, beneficiaryID string,
	candidates []model.CandidateKey, now int64) error {

	for _, candidate := range candidates {
		key := model.MatchKey{
			OrgHandle:     orgHandle,
			KeyType:       candidate.KeyType,
			KeyHash:       candidate.KeyHash,
			BeneficiaryID: beneficiaryID,
			CreatedAt:     now,
		}
		if err := r.matchKeys.InsertIgnoreDuplicate(tx, key); err != nil {
			return err
		}
	}
	return nil
}
