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

package provider

import (
	"sync"

	auditProvider "github.com/opencasework/case-management-service/internal/audit/provider"
	beneficiaryStore "github.com/opencasework/case-management-service/internal/beneficiary/store"
	mappingStore "github.com/opencasework/case-management-service/internal/mapping/store"
	resolutionService "github.com/opencasework/case-management-service/internal/resolution/service"
	resolutionStore "github.com/opencasework/case-management-service/internal/resolution/store"
	"github.com/opencasework/case-management-service/internal/submission/service"
	"github.com/opencasework/case-management-service/internal/submission/store"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/document"
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
)

var (
	serviceInstance *service.SubmissionService
	serviceErr      error
	serviceOnce     sync.Once
)

// SubmissionProviderInterface defines the interface for the submission provider.
type SubmissionProviderInterface interface {
	GetSubmissionService() (*service.SubmissionService, error)
}

// SubmissionProvider is the default implementation of SubmissionProviderInterface.
type SubmissionProvider struct{}

// NewSubmissionProvider creates a new instance of SubmissionProvider.
func NewSubmissionProvider() SubmissionProviderInterface {
	return &SubmissionProvider{}
}

// GetSubmissionService returns the shared submission service with the
// identity resolver wired in.
func (p *SubmissionProvider) GetSubmissionService() (*service.SubmissionService, error) {
	serviceOnce.Do(func() {
		dbClient, err := dbprovider.NewDBProvider().GetDBClient()
		if err != nil {
			serviceErr = err
			return
		}
		cryptoSvc, err := crypto.GetService()
		if err != nil {
			serviceErr = err
			return
		}
		recorder, err := auditProvider.NewAuditProvider().GetRecorder()
		if err != nil {
			serviceErr = err
			return
		}

		resolver := resolutionService.NewResolver(cryptoSvc,
			mappingStore.NewMappingStore(),
			resolutionStore.NewMatchKeyStore(),
			beneficiaryStore.NewBeneficiaryStore())
		archive := store.NewArchiveStore(document.GetInstance())

		serviceInstance = service.NewSubmissionService(dbClient, store.NewSubmissionStore(),
			resolver, archive, cryptoSvc, recorder)
	})
	return serviceInstance, serviceErr
}

// OverrideSubmissionService replaces the shared service. Intended for tests.
func OverrideSubmissionService(s *service.SubmissionService) {
	serviceOnce.Do(func() {})
	serviceInstance = s
	serviceErr = nil
}
