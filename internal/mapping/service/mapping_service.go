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
	"net/http"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/opencasework/case-management-service/internal/mapping/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

// MappingRepository abstracts mapping persistence so the service can be
// exercised without a database.
type MappingRepository interface {
	Insert(q client.Querier, mapping model.BeneficiaryMapping) error
	GetByFormTemplate(q client.Querier, orgHandle, formTemplateID string) (*model.BeneficiaryMapping, error)
	GetByOrg(q client.Querier, orgHandle string) ([]model.BeneficiaryMapping, error)
	Update(q client.Querier, mapping model.BeneficiaryMapping) error
	Delete(q client.Querier, orgHandle, formTemplateID string) error
}

// MappingService manages beneficiary mapping configurations.
type MappingService struct {
	db    client.Querier
	store MappingRepository
}

// NewMappingService creates a new MappingService.
func NewMappingService(db client.Querier, store MappingRepository) *MappingService {
	return &MappingService{db: db, store: store}
}

// AddMapping validates and persists a new mapping. A form template carries
// at most one mapping.
func (ms *MappingService) AddMapping(orgHandle string, request model.BeneficiaryMappingAPIRequest) (*model.BeneficiaryMapping, error) {

	if err := validateRequest(request); err != nil {
		return nil, err
	}

	existing, err := ms.store.GetByFormTemplate(ms.db, orgHandle, request.FormTemplateID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MAPPING_ALREADY_EXISTS.Code,
			Message:     errors2.MAPPING_ALREADY_EXISTS.Message,
			Description: fmt.Sprintf("A mapping already exists for form template %s", request.FormTemplateID),
		}, http.StatusConflict)
	}

	now := time.Now().UTC().Unix()
	mapping := model.BeneficiaryMapping{
		MappingID:      uuid.New().String(),
		OrgHandle:      orgHandle,
		FormTemplateID: request.FormTemplateID,
		Fields:         request.Fields,
		Strategies:     FilterStrategies(request.Strategies),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := ms.store.Insert(ms.db, mapping); err != nil {
		return nil, err
	}
	return &mapping, nil
}

// GetMapping fetches the mapping for a form template.
func (ms *MappingService) GetMapping(orgHandle, formTemplateID string) (*model.BeneficiaryMapping, error) {

	mapping, err := ms.store.GetByFormTemplate(ms.db, orgHandle, formTemplateID)
	if err != nil {
		return nil, err
	}
	if mapping == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MAPPING_NOT_FOUND.Code,
			Message:     errors2.MAPPING_NOT_FOUND.Message,
			Description: errors2.MAPPING_NOT_FOUND.Description,
		}, http.StatusNotFound)
	}
	return mapping, nil
}

// GetMappings fetches all mappings for an organization.
func (ms *MappingService) GetMappings(orgHandle string) ([]model.BeneficiaryMapping, error) {

	return ms.store.GetByOrg(ms.db, orgHandle)
}

// UpdateMapping replaces the fields and strategies of an existing mapping.
func (ms *MappingService) UpdateMapping(orgHandle, formTemplateID string, request model.BeneficiaryMappingAPIRequest) (*model.BeneficiaryMapping, error) {

	if err := validateRequest(request); err != nil {
		return nil, err
	}

	existing, err := ms.store.GetByFormTemplate(ms.db, orgHandle, formTemplateID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MAPPING_NOT_FOUND.Code,
			Message:     errors2.MAPPING_NOT_FOUND.Message,
			Description: errors2.MAPPING_NOT_FOUND.Description,
		}, http.StatusNotFound)
	}

	existing.Fields = request.Fields
	existing.Strategies = FilterStrategies(request.Strategies)
	existing.UpdatedAt = time.Now().UTC().Unix()

	if err := ms.store.Update(ms.db, *existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteMapping removes the mapping for a form template.
func (ms *MappingService) DeleteMapping(orgHandle, formTemplateID string) error {

	return ms.store.Delete(ms.db, orgHandle, formTemplateID)
}

// FilterStrategies narrows the requested strategies to the fixed recognized
// set, preserving precedence order. Unrecognized values are dropped rather
// than rejected.
func FilterStrategies(requested []string) []string {

	filtered := make([]string, 0, len(requested))
	for _, strategy := range constants.RecognizedStrategies {
		if slices.Contains(requested, strategy) {
			filtered = append(filtered, strategy)
		}
	}
	return filtered
}

func validateRequest(request model.BeneficiaryMappingAPIRequest) error {

	if request.FormTemplateID == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MAPPING_VALIDATION.Code,
			Message:     errors2.MAPPING_VALIDATION.Message,
			Description: "form_template_id is required",
		}, http.StatusBadRequest)
	}
	if request.Fields == nil {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.MAPPING_VALIDATION.Code,
			Message:     errors2.MAPPING_VALIDATION.Message,
			Description: "mapping fields must be an object",
		}, http.StatusBadRequest)
	}
	return nil
}
