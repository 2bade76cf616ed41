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

package managers

import (
	"net/http"
	"strings"

	"github.com/opencasework/case-management-service/internal/system/services"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

const defaultTenant = "default"

type ServiceManagerInterface interface {
	RegisterServices(apiBasePath string) error
}

type ServiceManager struct {
	mux *http.ServeMux
}

// NewServiceManager creates a new instance of ServiceManager.
func NewServiceManager(mux *http.ServeMux) ServiceManagerInterface {

	return &ServiceManager{
		mux: mux,
	}
}

func (sm *ServiceManager) RegisterServices(apiBasePath string) error {

	utils.RewriteToDefaultTenant(apiBasePath, sm.mux, defaultTenant)

	beneficiaryService := services.NewBeneficiaryService()
	mappingService := services.NewMappingService()
	submissionService := services.NewSubmissionService()
	projectService := services.NewProjectService()
	auditService := services.NewAuditService()
	healthService := services.NewHealthService()

	// Single tenant dispatcher for all services
	utils.MountTenantDispatcher(sm.mux, apiBasePath, func(w http.ResponseWriter, r *http.Request) {
		// Internal path after tenant and base path stripping
		path := strings.TrimSuffix(r.URL.Path, "/")

		// Dispatch to correct service based on path
		switch {
		case strings.HasPrefix(path, "/beneficiary-mappings"):
			mappingService.Route(w, r)
		case strings.HasPrefix(path, "/beneficiaries"):
			beneficiaryService.Route(w, r)
		case strings.HasPrefix(path, "/submissions"):
			submissionService.Route(w, r)
		case strings.HasPrefix(path, "/projects"):
			projectService.Route(w, r)
		case strings.HasPrefix(path, "/audit-logs"):
			auditService.Route(w, r)
		case strings.HasPrefix(path, "/health"), strings.HasPrefix(path, "/ready"):
			healthService.Route(w, r)
		default:
			http.NotFound(w, r)
		}
	})
	return nil
}
