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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencasework/case-management-service/internal/mapping/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeMappingStore struct {
	mappings map[string]*model.BeneficiaryMapping
}

func newFakeMappingStore() *fakeMappingStore {
	return &fakeMappingStore{mappings: map[string]*model.BeneficiaryMapping{}}
}

func (f *fakeMappingStore) key(orgHandle, formTemplateID string) string {
	return orgHandle + "/" + formTemplateID
}

func (f *fakeMappingStore) Insert(_ client.Querier, mapping model.BeneficiaryMapping) error {
	copied := mapping
	f.mappings[f.key(mapping.OrgHandle, mapping.FormTemplateID)] = &copied
	return nil
}

func (f *fakeMappingStore) GetByFormTemplate(_ client.Querier, orgHandle, formTemplateID string) (*model.BeneficiaryMapping, error) {
	return f.mappings[f.key(orgHandle, formTemplateID)], nil
}

func (f *fakeMappingStore) GetByOrg(_ client.Querier, orgHandle string) ([]model.BeneficiaryMapping, error) {
	var result []model.BeneficiaryMapping
	for _, mapping := range f.mappings {
		if mapping.OrgHandle == orgHandle {
			result = append(result, *mapping)
		}
	}
	return result, nil
}

func (f *fakeMappingStore) Update(_ client.Querier, mapping model.BeneficiaryMapping) error {
	copied := mapping
	f.mappings[f.key(mapping.OrgHandle, mapping.FormTemplateID)] = &copied
	return nil
}

func (f *fakeMappingStore) Delete(_ client.Querier, orgHandle, formTemplateID string) error {
	delete(f.mappings, f.key(orgHandle, formTemplateID))
	return nil
}

func newTestService() (*MappingService, *fakeMappingStore) {
	store := newFakeMappingStore()
	return NewMappingService(nil, store), store
}

func validRequest() model.BeneficiaryMappingAPIRequest {
	return model.BeneficiaryMappingAPIRequest{
		FormTemplateID: "intake-form",
		Fields: map[string]string{
			constants.AttrFirstName: "respondent.first_name",
			constants.AttrLastName:  "respondent.last_name",
		},
		Strategies: []string{constants.StrategyNameDOB},
	}
}

func TestAddMapping(t *testing.T) {
	service, store := newTestService()

	mapping, err := service.AddMapping("org1", validRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, mapping.MappingID)
	assert.Equal(t, "org1", mapping.OrgHandle)
	assert.Len(t, store.mappings, 1)
}

func TestAddMapping_ConflictOnDuplicateFormTemplate(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddMapping("org1", validRequest())
	require.NoError(t, err)

	_, err = service.AddMapping("org1", validRequest())
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusConflict, clientErr.StatusCode)
}

func TestAddMapping_SameFormTemplateDifferentOrg(t *testing.T) {
	service, store := newTestService()

	_, err := service.AddMapping("org1", validRequest())
	require.NoError(t, err)
	_, err = service.AddMapping("org2", validRequest())
	require.NoError(t, err)
	assert.Len(t, store.mappings, 2)
}

func TestAddMapping_Validation(t *testing.T) {
	service, _ := newTestService()

	cases := []struct {
		name    string
		request model.BeneficiaryMappingAPIRequest
	}{
		{"missing form template", model.BeneficiaryMappingAPIRequest{Fields: map[string]string{}}},
		{"nil fields", model.BeneficiaryMappingAPIRequest{FormTemplateID: "f1"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.AddMapping("org1", tc.request)
			var clientErr *errors2.ClientError
			require.ErrorAs(t, err, &clientErr)
			assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
		})
	}
}

func TestGetMapping_NotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.GetMapping("org1", "missing")
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestUpdateMapping(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddMapping("org1", validRequest())
	require.NoError(t, err)

	updated := validRequest()
	updated.Fields[constants.AttrPhone] = "respondent.phone"
	updated.Strategies = []string{constants.StrategyPhoneDOB, constants.StrategyNameDOB}

	mapping, err := service.UpdateMapping("org1", "intake-form", updated)
	require.NoError(t, err)
	assert.Contains(t, mapping.Fields, constants.AttrPhone)
	assert.Equal(t, []string{constants.StrategyPhoneDOB, constants.StrategyNameDOB}, mapping.Strategies)
}

func TestUpdateMapping_NotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.UpdateMapping("org1", "missing", validRequest())
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestDeleteMapping(t *testing.T) {
	service, store := newTestService()

	_, err := service.AddMapping("org1", validRequest())
	require.NoError(t, err)

	require.NoError(t, service.DeleteMapping("org1", "intake-form"))
	assert.Empty(t, store.mappings)
}

func TestFilterStrategies(t *testing.T) {
	cases := []struct {
		name      string
		requested []string
		want      []string
	}{
		{
			"unknown strategies dropped",
			[]string{"fingerprint", constants.StrategyNameDOB, "iris_scan"},
			[]string{constants.StrategyNameDOB},
		},
		{
			"precedence order restored",
			[]string{constants.StrategyNameDOB, constants.StrategyNationalID, constants.StrategyPhoneDOB},
			[]string{constants.StrategyNationalID, constants.StrategyPhoneDOB, constants.StrategyNameDOB},
		},
		{
			"empty input",
			nil,
			[]string{},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FilterStrategies(tc.requested))
		})
	}
}
