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
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	resolutionModel "github.com/opencasework/case-management-service/internal/resolution/model"
	"github.com/opencasework/case-management-service/internal/submission/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// Fakes
// ---------------------------------------------------------------------------

type fakeDBClient struct {
	db *sql.DB
}

func (f *fakeDBClient) ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {
	return nil, nil
}

func (f *fakeDBClient) BeginTx() (*sql.Tx, error) {
	return f.db.Begin()
}

func (f *fakeDBClient) DB() *sql.DB {
	return f.db
}

func (f *fakeDBClient) Close() error {
	return nil
}

type fakeResolver struct {
	resolution resolutionModel.Resolution
	err        error
	calls      int
}

func (f *fakeResolver) ResolveOrCreate(_ client.Querier, _, _ string,
	_ map[string]interface{}) (resolutionModel.Resolution, error) {
	f.calls++
	return f.resolution, f.err
}

type fakeSubmissionStore struct {
	responses  map[string]*model.FormResponse
	deliveries []model.ServiceDelivery
}

func (f *fakeSubmissionStore) InsertResponse(_ client.Querier, response model.FormResponse) error {
	copied := response
	f.responses[response.ResponseID] = &copied
	return nil
}

func (f *fakeSubmissionStore) GetResponseByID(_ client.Querier, _, responseID string) (*model.FormResponse, error) {
	return f.responses[responseID], nil
}

func (f *fakeSubmissionStore) InsertDelivery(_ client.Querier, delivery model.ServiceDelivery) error {
	f.deliveries = append(f.deliveries, delivery)
	return nil
}

type fakeArchiver struct {
	archived map[string]*crypto.EncryptedField
	err      error
}

func (f *fakeArchiver) Archive(_ context.Context, _, responseID string, payload *crypto.EncryptedField) error {
	if f.err != nil {
		return f.err
	}
	f.archived[responseID] = payload
	return nil
}

type recordedAudit struct {
	Action  string
	Details map[string]interface{}
}

type fakeAuditWriter struct {
	events []recordedAudit
}

func (f *fakeAuditWriter) Record(_, _, action, _ string, details map[string]interface{}) {
	f.events = append(f.events, recordedAudit{Action: action, Details: details})
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type submissionHarness struct {
	service  *SubmissionService
	resolver *fakeResolver
	store    *fakeSubmissionStore
	archive  *fakeArchiver
	audit    *fakeAuditWriter
	crypto   *crypto.Service
	mock     sqlmock.Sqlmock
}

func newSubmissionHarness(t *testing.T) *submissionHarness {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cryptoSvc, err := crypto.New(crypto.Keys{
		HMACKey: bytes.Repeat([]byte{0x42}, 32),
		AESKey:  bytes.Repeat([]byte{0x17}, 32),
	})
	require.NoError(t, err)

	resolver := &fakeResolver{resolution: resolutionModel.Resolution{BeneficiaryID: "b1", Created: false}}
	store := &fakeSubmissionStore{responses: map[string]*model.FormResponse{}}
	archive := &fakeArchiver{archived: map[string]*crypto.EncryptedField{}}
	audit := &fakeAuditWriter{}

	return &submissionHarness{
		service:  NewSubmissionService(&fakeDBClient{db: db}, store, resolver, archive, cryptoSvc, audit),
		resolver: resolver,
		store:    store,
		archive:  archive,
		audit:    audit,
		crypto:   cryptoSvc,
		mock:     mock,
	}
}

func sampleRequest() model.SubmissionAPIRequest {
	return model.SubmissionAPIRequest{
		FormTemplateID: "intake-form",
		ProjectID:      "p1",
		Data: map[string]interface{}{
			"respondent": map[string]interface{}{"first_name": "Fatmire"},
		},
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestSubmit(t *testing.T) {
	h := newSubmissionHarness(t)
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()

	response, err := h.service.Submit(context.Background(), "org1", "user1", sampleRequest())
	require.NoError(t, err)

	assert.Equal(t, "b1", response.BeneficiaryID)
	assert.False(t, response.BeneficiaryCreated)
	assert.Equal(t, 1, h.resolver.calls)

	stored := h.store.responses[response.ResponseID]
	require.NotNil(t, stored)
	assert.Equal(t, "intake-form", stored.FormTemplateID)
	assert.Equal(t, "p1", stored.ProjectID)
	assert.Equal(t, "b1", stored.BeneficiaryID)

	assert.Empty(t, h.store.deliveries, "no service type, no delivery row")
	assert.Contains(t, h.archive.archived, response.ResponseID)
	assert.Empty(t, h.audit.events, "matching an existing beneficiary is not a create")
	require.NoError(t, h.mock.ExpectationsWereMet())
}

func TestSubmit_ArchivedPayloadIsEncrypted(t *testing.T) {
	h := newSubmissionHarness(t)
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()

	request := sampleRequest()
	request.Data = map[string]interface{}{
		"respondent": map[string]interface{}{
			"first_name":  "Fatmire",
			"national_id": "ID-12345",
		},
	}

	response, err := h.service.Submit(context.Background(), "org1", "user1", request)
	require.NoError(t, err)

	envelope := h.archive.archived[response.ResponseID]
	require.NotNil(t, envelope)
	assert.Equal(t, "AES-256-GCM", envelope.Algorithm)

	// No identity value may appear anywhere in the archived document.
	for _, part := range []string{envelope.Nonce, envelope.Ciphertext, envelope.Tag} {
		assert.NotContains(t, part, "Fatmire")
		assert.NotContains(t, part, "ID-12345")
	}

	// The envelope still round-trips to the original payload.
	plaintext, err := h.crypto.DecryptField(envelope)
	require.NoError(t, err)
	require.NotNil(t, plaintext)
	assert.True(t, strings.Contains(*plaintext, "Fatmire"))

	var recovered map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(*plaintext), &recovered))
	respondent := recovered["respondent"].(map[string]interface{})
	assert.Equal(t, "ID-12345", respondent["national_id"])
}

func TestSubmit_NewBeneficiaryAudited(t *testing.T) {
	h := newSubmissionHarness(t)
	h.resolver.resolution = resolutionModel.Resolution{BeneficiaryID: "b-new", Created: true}
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()

	response, err := h.service.Submit(context.Background(), "org1", "user1", sampleRequest())
	require.NoError(t, err)
	assert.True(t, response.BeneficiaryCreated)

	require.Len(t, h.audit.events, 1)
	assert.Equal(t, constants.AuditActionBeneficiaryCreate, h.audit.events[0].Action)
	assert.Equal(t, "b-new", h.audit.events[0].Details["beneficiary_id"])
}

func TestSubmit_ServiceTypeAddsDelivery(t *testing.T) {
	h := newSubmissionHarness(t)
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()

	request := sampleRequest()
	request.ServiceType = "food_distribution"

	response, err := h.service.Submit(context.Background(), "org1", "user1", request)
	require.NoError(t, err)

	require.Len(t, h.store.deliveries, 1)
	delivery := h.store.deliveries[0]
	assert.Equal(t, response.ResponseID, delivery.ResponseID)
	assert.Equal(t, "b1", delivery.BeneficiaryID)
	assert.Equal(t, "food_distribution", delivery.ServiceType)
}

func TestSubmit_Validation(t *testing.T) {
	h := newSubmissionHarness(t)

	cases := []struct {
		name    string
		request model.SubmissionAPIRequest
	}{
		{"missing form template", model.SubmissionAPIRequest{Data: map[string]interface{}{}}},
		{"missing data", model.SubmissionAPIRequest{FormTemplateID: "f1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.service.Submit(context.Background(), "org1", "user1", tc.request)
			var clientErr *errors2.ClientError
			require.ErrorAs(t, err, &clientErr)
			assert.Equal(t, 400, clientErr.StatusCode)
		})
	}
	assert.Zero(t, h.resolver.calls)
}

func TestSubmit_ResolverFailureRollsBack(t *testing.T) {
	h := newSubmissionHarness(t)
	h.resolver.err = errors2.NewServerError(errors2.RESOLVE_BENEFICIARY, errors.New("boom"))
	h.mock.ExpectBegin()
	h.mock.ExpectRollback()

	_, err := h.service.Submit(context.Background(), "org1", "user1", sampleRequest())
	require.Error(t, err)
	assert.Empty(t, h.store.responses)
	require.NoError(t, h.mock.ExpectationsWereMet())
}

func TestSubmit_ArchiveFailureDoesNotFailIntake(t *testing.T) {
	h := newSubmissionHarness(t)
	h.archive.err = errors.New("document store unavailable")
	h.mock.ExpectBegin()
	h.mock.ExpectCommit()

	response, err := h.service.Submit(context.Background(), "org1", "user1", sampleRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, response.ResponseID)
	assert.NotNil(t, h.store.responses[response.ResponseID])
}

func TestGetSubmission_NotFound(t *testing.T) {
	h := newSubmissionHarness(t)

	_, err := h.service.GetSubmission("org1", "missing")
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, 404, clientErr.StatusCode)
}
