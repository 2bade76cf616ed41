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

	"github.com/opencasework/case-management-service/internal/submission/model"
	"github.com/opencasework/case-management-service/internal/submission/provider"
	"github.com/opencasework/case-management-service/internal/system/authn"
	"github.com/opencasework/case-management-service/internal/system/constants"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/security"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

type SubmissionHandler struct{}

func NewSubmissionHandler() *SubmissionHandler {
	return &SubmissionHandler{}
}

// SubmitResponse handles form response intake.
func (sh *SubmissionHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "submissions:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.SubmissionAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		clientError := errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "submission"),
		}, http.StatusBadRequest)
		utils.WriteErrorResponse(w, clientError)
		return
	}

	submissionService, err := provider.NewSubmissionProvider().GetSubmissionService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	response, err := submissionService.Submit(r.Context(), orgHandle, authn.GetUserIDFromRequest(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, response)
}

// GetSubmission handles fetching one form response record.
func (sh *SubmissionHandler) GetSubmission(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "submissions:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	submissionService, err := provider.NewSubmissionProvider().GetSubmissionService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	orgHandle := utils.ExtractOrgHandleFromPath(r)
	responseID := strings.TrimPrefix(r.URL.Path, "/"+constants.SubmissionApiPath+"/")
	response, err := submissionService.GetSubmission(orgHandle, responseID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, response)
}
