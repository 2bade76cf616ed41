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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/opencasework/case-management-service/internal/mapping/model"
	"github.com/opencasework/case-management-service/internal/mapping/provider"
	"github.com/opencasework/case-management-service/internal/system/authn"
	"github.com/opencasework/case-management-service/internal/system/constants"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
	"github.com/opencasework/case-management-service/internal/system/security"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

type MappingHandler struct{}

func NewMappingHandler() *MappingHandler {
	return &MappingHandler{}
}

// AddMapping handles creating a mapping configuration.
func (mh *MappingHandler) AddMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "mappings:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	request, ok := decodeMappingRequest(w, r)
	if !ok {
		return
	}

	mappingService, err := provider.NewMappingProvider().GetMappingService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	mapping, err := mappingService.AddMapping(orgHandle, request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      mapping.MappingID,
		TargetType:    log.TargetTypeMapping,
		ActionID:      log.ActionAddMapping,
		Data: map[string]string{
			"org_handle":       orgHandle,
			"form_template_id": mapping.FormTemplateID,
		},
	})

	utils.RespondJSON(w, http.StatusCreated, toMappingResponse(mapping))
}

// GetMappings handles listing all mapping configurations.
func (mh *MappingHandler) GetMappings(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "mappings:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService, err := provider.NewMappingProvider().GetMappingService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	mappings, err := mappingService.GetMappings(utils.ExtractOrgHandleFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	responses := make([]model.BeneficiaryMappingAPIResponse, 0, len(mappings))
	for i := range mappings {
		responses = append(responses, *toMappingResponse(&mappings[i]))
	}
	utils.RespondJSON(w, http.StatusOK, responses)
}

// GetMapping handles fetching the mapping for one form template.
func (mh *MappingHandler) GetMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "mappings:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService, err := provider.NewMappingProvider().GetMappingService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	mapping, err := mappingService.GetMapping(utils.ExtractOrgHandleFromPath(r), formTemplateIDFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, toMappingResponse(mapping))
}

// UpdateMapping handles replacing the fields and strategies of a mapping.
func (mh *MappingHandler) UpdateMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "mappings:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	request, ok := decodeMappingRequest(w, r)
	if !ok {
		return
	}

	mappingService, err := provider.NewMappingProvider().GetMappingService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	formTemplateID := formTemplateIDFromPath(r)
	mapping, err := mappingService.UpdateMapping(orgHandle, formTemplateID, request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      mapping.MappingID,
		TargetType:    log.TargetTypeMapping,
		ActionID:      log.ActionUpdateMapping,
		Data: map[string]string{
			"org_handle":       orgHandle,
			"form_template_id": formTemplateID,
		},
	})

	utils.RespondJSON(w, http.StatusOK, toMappingResponse(mapping))
}

// DeleteMapping handles removing a mapping configuration.
func (mh *MappingHandler) DeleteMapping(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "mappings:delete"); err != nil {
		utils.HandleError(w, err)
		return
	}

	mappingService, err := provider.NewMappingProvider().GetMappingService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	formTemplateID := formTemplateIDFromPath(r)
	if err := mappingService.DeleteMapping(orgHandle, formTemplateID); err != nil {
		utils.HandleError(w, err)
		return
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   authn.GetUserIDFromRequest(r),
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      formTemplateID,
		TargetType:    log.TargetTypeMapping,
		ActionID:      log.ActionDeleteMapping,
		Data:          map[string]string{"org_handle": orgHandle},
	})

	utils.RespondJSON(w, http.StatusNoContent, nil)
}

func decodeMappingRequest(w http.ResponseWriter, r *http.Request) (model.BeneficiaryMappingAPIRequest, bool) {

	var request model.BeneficiaryMappingAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "beneficiary mapping"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return request, false
	}
	return request, true
}

func toMappingResponse(mapping *model.BeneficiaryMapping) *model.BeneficiaryMappingAPIResponse {

	return &model.BeneficiaryMappingAPIResponse{
		MappingID:      mapping.MappingID,
		FormTemplateID: mapping.FormTemplateID,
		Fields:         mapping.Fields,
		Strategies:     mapping.Strategies,
	}
}

// formTemplateIDFromPath extracts the template ID from
// /beneficiary-mappings/{form_template_id}.
func formTemplateIDFromPath(r *http.Request) string {
	return strings.TrimPrefix(r.URL.Path, "/"+constants.MappingApiPath+"/")
}
