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
	"net/http"
	"strconv"

	"github.com/opencasework/case-management-service/internal/audit/provider"
	"github.com/opencasework/case-management-service/internal/system/security"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

const defaultPageSize = 100

const maxPageSize = 500

type AuditHandler struct{}

func NewAuditHandler() *AuditHandler {
	return &AuditHandler{}
}

// GetAuditLogs handles listing the organization's audit trail.
func (ah *AuditHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "audit:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	recorder, err := provider.NewAuditProvider().GetRecorder()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	limit, offset := pagination(r)
	entries, err := recorder.List(utils.ExtractOrgHandleFromPath(r), limit, offset)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, entries)
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
