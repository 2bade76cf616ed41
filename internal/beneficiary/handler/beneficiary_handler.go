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
	"strconv"
	"strings"

	"github.com/opencasework/case-management-service/internal/beneficiary/model"
	"github.com/opencasework/case-management-service/internal/beneficiary/provider"
	"github.com/opencasework/case-management-service/internal/system/authn"
	"github.com/opencasework/case-management-service/internal/system/authz"
	"github.com/opencasework/case-management-service/internal/system/constants"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/security"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

const defaultPageSize = 100
const maxPageSize = 500

type BeneficiaryHandler struct{}

func NewBeneficiaryHandler() *BeneficiaryHandler {
	return &BeneficiaryHandler{}
}

// GetBeneficiaries handles listing beneficiaries through the disclosure gate.
func (bh *BeneficiaryHandler) GetBeneficiaries(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	privileged := authz.IsPrivilegedForPII(authn.GetRolesFromRequest(r))
	limit, offset := pagination(r)

	projections, err := beneficiaryService.GetBeneficiaries(orgHandle,
		authn.GetUserIDFromRequest(r), privileged, limit, offset)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	setDisclosureHeaders(w, privileged)
	utils.RespondJSON(w, http.StatusOK, projections)
}

// GetBeneficiary handles fetching a single beneficiary through the
// disclosure gate.
func (bh *BeneficiaryHandler) GetBeneficiary(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	privileged := authz.IsPrivilegedForPII(authn.GetRolesFromRequest(r))

	projection, err := beneficiaryService.GetBeneficiary(orgHandle,
		authn.GetUserIDFromRequest(r), beneficiaryIDFromPath(r), privileged)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	setDisclosureHeaders(w, privileged)
	utils.RespondJSON(w, http.StatusOK, projection)
}

// GetBeneficiaryPII handles the privileged full-identity read.
func (bh *BeneficiaryHandler) GetBeneficiaryPII(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:view_pii"); err != nil {
		utils.HandleError(w, err)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	privileged := authz.IsPrivilegedForPII(authn.GetRolesFromRequest(r))

	pii, err := beneficiaryService.GetBeneficiaryPII(orgHandle,
		authn.GetUserIDFromRequest(r), beneficiaryIDFromPath(r), privileged)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	setDisclosureHeaders(w, true)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{"pii": pii})
}

// GetDemographics handles the aggregate report.
func (bh *BeneficiaryHandler) GetDemographics(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:view_pii"); err != nil {
		utils.HandleError(w, err)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	privileged := authz.IsPrivilegedForPII(authn.GetRolesFromRequest(r))

	report, err := beneficiaryService.Demographics(orgHandle, authn.GetUserIDFromRequest(r), privileged)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	setDisclosureHeaders(w, true)
	utils.RespondJSON(w, http.StatusOK, report)
}

// AddBeneficiary handles direct beneficiary creation.
func (bh *BeneficiaryHandler) AddBeneficiary(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.BeneficiaryAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "beneficiary"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	projection, err := beneficiaryService.AddBeneficiary(orgHandle, authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	setDisclosureHeaders(w, false)
	utils.RespondJSON(w, http.StatusCreated, projection)
}

// UpdateBeneficiary handles overwriting identity fields of a record.
func (bh *BeneficiaryHandler) UpdateBeneficiary(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.BeneficiaryAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "beneficiary"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	projection, err := beneficiaryService.UpdateBeneficiary(orgHandle,
		authn.GetUserIDFromRequest(r), beneficiaryIDFromPath(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	setDisclosureHeaders(w, false)
	utils.RespondJSON(w, http.StatusOK, projection)
}

// ChangeBeneficiaryStatus handles the soft-delete flag.
func (bh *BeneficiaryHandler) ChangeBeneficiaryStatus(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "beneficiaries:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.BeneficiaryStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "beneficiary status"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	beneficiaryService, err := provider.NewBeneficiaryProvider().GetBeneficiaryService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	if err := beneficiaryService.ChangeStatus(orgHandle, authn.GetUserIDFromRequest(r),
		beneficiaryIDFromPath(r), request.Status); err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": request.Status})
}

// setDisclosureHeaders marks how identity data left the service and keeps
// decrypted responses out of shared caches.
func setDisclosureHeaders(w http.ResponseWriter, decrypted bool) {

	if decrypted {
		w.Header().Set("Cache-Control", "no-store, no-cache")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set(constants.HeaderPIIAccess, constants.PIIAccessDecrypted)
		return
	}
	w.Header().Set(constants.HeaderPIIAccess, constants.PIIAccessEncryptedOnly)
}

// beneficiaryIDFromPath extracts the record ID from
// /beneficiaries/{id}[/...].
func beneficiaryIDFromPath(r *http.Request) string {

	path := strings.TrimPrefix(r.URL.Path, "/"+constants.BeneficiaryApiPath+"/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		path = path[:idx]
	}
	return path
}

func pagination(r *http.Request) (int, int) {

	limit := defaultPageSize
	offset := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
