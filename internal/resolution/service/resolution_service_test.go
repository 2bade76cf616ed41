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
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	beneficiaryModel "github.com/opencasework/case-management-service/internal/beneficiary/model"
	mappingModel "github.com/opencasework/case-management-service/internal/mapping/model"
	"github.com/opencasework/case-management-service/internal/resolution/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// In-memory fakes
// ---------------------------------------------------------------------------

type fakeMappings struct {
	mappings map[string]*mappingModel.BeneficiaryMapping
}

func (f *fakeMappings) GetByFormTemplate(_ client.Querier, orgHandle, formTemplateID string) (*mappingModel.BeneficiaryMapping, error) {
	return f.mappings[orgHandle+"/"+formTemplateID], nil
}

type fakeMatchKeys struct {
	rows    map[string]model.MatchKey
	inserts int
}

func keyOf(key model.MatchKey) string {
	return key.OrgHandle + "/" + key.KeyType + "/" + key.KeyHash
}

func (f *fakeMatchKeys) InsertIgnoreDuplicate(_ client.Querier, key model.MatchKey) error {
	f.inserts++
	if _, exists := f.rows[keyOf(key)]; exists {
		return nil
	}
	f.rows[keyOf(key)] = key
	return nil
}

func (f *fakeMatchKeys) Lookup(_ client.Querier, orgHandle string, candidates []model.CandidateKey) ([]model.MatchKey, error) {
	var matches []model.MatchKey
	for _, candidate := range candidates {
		if row, ok := f.rows[orgHandle+"/"+candidate.KeyType+"/"+candidate.KeyHash]; ok {
			matches = append(matches, row)
		}
	}
	return matches, nil
}

type fakeBeneficiaries struct {
	records map[string]*beneficiaryModel.Beneficiary
}

func (f *fakeBeneficiaries) Insert(_ client.Querier, beneficiary beneficiaryModel.Beneficiary) error {
	copied := beneficiary
	f.records[beneficiary.BeneficiaryID] = &copied
	return nil
}

func (f *fakeBeneficiaries) GetByID(_ client.Querier, _, beneficiaryID string) (*beneficiaryModel.Beneficiary, error) {
	return f.records[beneficiaryID], nil
}

func (f *fakeBeneficiaries) UpdatePII(_ client.Querier, _, beneficiaryID string, pii map[string]*crypto.EncryptedField, updatedAt int64) error {
	record := f.records[beneficiaryID]
	record.PII = pii
	record.UpdatedAt = updatedAt
	return nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type resolverHarness struct {
	resolver      *Resolver
	mappings      *fakeMappings
	matchKeys     *fakeMatchKeys
	beneficiaries *fakeBeneficiaries
	crypto        *crypto.Service
}

func newHarness(t *testing.T) *resolverHarness {
	t.Helper()
	cryptoSvc, err := crypto.New(crypto.Keys{
		HMACKey: bytes.Repeat([]byte{0x42}, 32),
		AESKey:  bytes.Repeat([]byte{0x17}, 32),
	})
	require.NoError(t, err)

	mappings := &fakeMappings{mappings: map[string]*mappingModel.BeneficiaryMapping{}}
	matchKeys := &fakeMatchKeys{rows: map[string]model.MatchKey{}}
	beneficiaries := &fakeBeneficiaries{records: map[string]*beneficiaryModel.Beneficiary{}}

	return &resolverHarness{
		resolver:      NewResolver(cryptoSvc, mappings, matchKeys, beneficiaries),
		mappings:      mappings,
		matchKeys:     matchKeys,
		beneficiaries: beneficiaries,
		crypto:        cryptoSvc,
	}
}

func (h *resolverHarness) withMapping(orgHandle, formTemplateID string, fields map[string]string, strategies []string) {
	h.mappings.mappings[orgHandle+"/"+formTemplateID] = &mappingModel.BeneficiaryMapping{
		MappingID:      "m1",
		OrgHandle:      orgHandle,
		FormTemplateID: formTemplateID,
		Fields:         fields,
		Strategies:     strategies,
	}
}

var standardFields = map[string]string{
	constants.AttrFirstName:   "respondent.first_name",
	constants.AttrLastName:    "respondent.last_name",
	constants.AttrDateOfBirth: "respondent.dob",
	constants.AttrPhone:       "respondent.phone",
	constants.AttrNationalID:  "respondent.national_id",
}

func payload(first, last, dob, phone, nationalID string) map[string]interface{} {
	respondent := map[string]interface{}{}
	if first != "" {
		respondent["first_name"] = first
	}
	if last != "" {
		respondent["last_name"] = last
	}
	if dob != "" {
		respondent["dob"] = dob
	}
	if phone != "" {
		respondent["phone"] = phone
	}
	if nationalID != "" {
		respondent["national_id"] = nationalID
	}
	return map[string]interface{}{"respondent": respondent}
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestResolveOrCreate_NoMappingIsNoOp(t *testing.T) {
	h := newHarness(t)

	resolution, err := h.resolver.ResolveOrCreate(nil, "org1", "unmapped-form",
		payload("Fatmire", "Berisha", "1990-04-12", "", ""))
	require.NoError(t, err)

	assert.False(t, resolution.Created)
	assert.Empty(t, resolution.BeneficiaryID)
	assert.Empty(t, h.beneficiaries.records)
	assert.Empty(t, h.matchKeys.rows)
}

func TestResolveOrCreate_CreatesThenMatches(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields,
		[]string{constants.StrategyNationalID, constants.StrategyPhoneDOB, constants.StrategyNameDOB})

	first, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("Fatmire", "Berisha", "1990-04-12", "044 123 456", ""))
	require.NoError(t, err)
	assert.True(t, first.Created)
	require.NotEmpty(t, first.BeneficiaryID)

	// Same person, different formatting.
	second, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("FATMIRE", "  Berisha ", "12/04/1990", "+383 44 123 456", ""))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.BeneficiaryID, second.BeneficiaryID)
	assert.Len(t, h.beneficiaries.records, 1)
}

func TestResolveOrCreate_PartialIdentityBuildsNoKeys(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields,
		[]string{constants.StrategyNationalID, constants.StrategyPhoneDOB, constants.StrategyNameDOB})

	// Name without date of birth satisfies no strategy.
	first, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("Fatmire", "Berisha", "", "", ""))
	require.NoError(t, err)
	assert.True(t, first.Created)
	assert.Empty(t, h.matchKeys.rows)

	second, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("Fatmire", "Berisha", "", "", ""))
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.BeneficiaryID, second.BeneficiaryID)
}

func TestResolveOrCreate_NationalIDComparedVerbatim(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields, []string{constants.StrategyNationalID})

	first, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("", "", "", "", "ID-12345"))
	require.NoError(t, err)
	assert.True(t, first.Created)

	// Case differs, so the identifier is a different one.
	second, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("", "", "", "", "id-12345"))
	require.NoError(t, err)
	assert.True(t, second.Created)
	assert.NotEqual(t, first.BeneficiaryID, second.BeneficiaryID)

	third, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("", "", "", "", "ID-12345"))
	require.NoError(t, err)
	assert.False(t, third.Created)
	assert.Equal(t, first.BeneficiaryID, third.BeneficiaryID)
}

func TestResolveOrCreate_NameDOBInsensitiveToCaseSpacingAccents(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields, []string{constants.StrategyNameDOB})

	first, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("Çlirim", "Hoxha", "1985-01-30", "", ""))
	require.NoError(t, err)
	assert.True(t, first.Created)

	second, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("  CLIRIM ", "HOXHA", "30.01.1985", "", ""))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.BeneficiaryID, second.BeneficiaryID)
}

func TestResolveOrCreate_PrecedencePicksMostSpecificStrategy(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields,
		[]string{constants.StrategyNationalID, constants.StrategyPhoneDOB})

	// Two pre-existing beneficiaries: A known by national ID, B by phone+dob.
	h.beneficiaries.records["A"] = &beneficiaryModel.Beneficiary{BeneficiaryID: "A", OrgHandle: "org1"}
	h.beneficiaries.records["B"] = &beneficiaryModel.Beneficiary{BeneficiaryID: "B", OrgHandle: "org1"}

	idHash := h.crypto.HashKey("ID-999")
	phoneHash := h.crypto.HashKey("44123456|1990-04-12")
	h.matchKeys.rows["org1/"+constants.StrategyNationalID+"/"+idHash] = model.MatchKey{
		OrgHandle: "org1", KeyType: constants.StrategyNationalID, KeyHash: idHash, BeneficiaryID: "A",
	}
	h.matchKeys.rows["org1/"+constants.StrategyPhoneDOB+"/"+phoneHash] = model.MatchKey{
		OrgHandle: "org1", KeyType: constants.StrategyPhoneDOB, KeyHash: phoneHash, BeneficiaryID: "B",
	}

	resolution, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("", "", "1990-04-12", "044123456", "ID-999"))
	require.NoError(t, err)
	assert.False(t, resolution.Created)
	assert.Equal(t, "A", resolution.BeneficiaryID)
}

func TestResolveOrCreate_MatchMergesNewFields(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields, []string{constants.StrategyNationalID})

	first, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("", "", "", "", "ID-777"))
	require.NoError(t, err)

	_, err = h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("Fatmire", "Berisha", "", "044123456", "ID-777"))
	require.NoError(t, err)

	record := h.beneficiaries.records[first.BeneficiaryID]
	require.NotNil(t, record)

	firstName, err := h.crypto.DecryptField(record.PII[constants.AttrFirstName])
	require.NoError(t, err)
	require.NotNil(t, firstName)
	assert.Equal(t, "Fatmire", *firstName)

	phone, err := h.crypto.DecryptField(record.PII[constants.AttrPhone])
	require.NoError(t, err)
	require.NotNil(t, phone)
	assert.Equal(t, "044123456", *phone)
}

func TestResolveOrCreate_RepeatSubmissionKeepsKeySetStable(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields,
		[]string{constants.StrategyNationalID, constants.StrategyPhoneDOB, constants.StrategyNameDOB})

	body := payload("Fatmire", "Berisha", "1990-04-12", "044123456", "ID-1")
	_, err := h.resolver.ResolveOrCreate(nil, "org1", "intake", body)
	require.NoError(t, err)
	keysAfterFirst := len(h.matchKeys.rows)

	_, err = h.resolver.ResolveOrCreate(nil, "org1", "intake", body)
	require.NoError(t, err)

	assert.Equal(t, keysAfterFirst, len(h.matchKeys.rows))
	assert.Equal(t, 3, keysAfterFirst)
}

func TestResolveOrCreate_TenantsDoNotCrossMatch(t *testing.T) {
	h := newHarness(t)
	h.withMapping("org1", "intake", standardFields, []string{constants.StrategyNationalID})
	h.withMapping("org2", "intake", standardFields, []string{constants.StrategyNationalID})

	first, err := h.resolver.ResolveOrCreate(nil, "org1", "intake",
		payload("", "", "", "", "ID-5"))
	require.NoError(t, err)

	second, err := h.resolver.ResolveOrCreate(nil, "org2", "intake",
		payload("", "", "", "", "ID-5"))
	require.NoError(t, err)

	assert.True(t, second.Created)
	assert.NotEqual(t, first.BeneficiaryID, second.BeneficiaryID)
}
