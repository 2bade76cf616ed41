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
	"github.com/opencasework/case-management-service/internal/beneficiary/service"
	"github.com/opencasework/case-management-service/internal/beneficiary/store"
	resolutionStore "github.com/opencasework/case-management-service/internal/resolution/store"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
)

var (
	serviceInstance *service.BeneficiaryService
	serviceErr      error
	serviceOnce     sync.Once
)

// BeneficiaryProviderInterface defines the interface for the beneficiary provider.
type BeneficiaryProviderInterface interface {
	GetBeneficiaryService() (*service.BeneficiaryService, error)
}

// BeneficiaryProvider is the default implementation of BeneficiaryProviderInterface.
type BeneficiaryProvider struct{}

// NewBeneficiaryProvider creates a new instance of BeneficiaryProvider.
func NewBeneficiaryProvider() BeneficiaryProviderInterface {
	return &BeneficiaryProvider{}
}

// GetBeneficiaryService returns the shared beneficiary service.
func (p *BeneficiaryProvider) GetBeneficiaryService() (*service.BeneficiaryService, error) {
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
		serviceInstance = service.NewBeneficiaryService(dbClient, store.NewBeneficiaryStore(),
			resolutionStore.NewMatchKeyStore(), cryptoSvc, recorder)
	})
	return serviceInstance, serviceErr
}

// OverrideBeneficiaryService replaces the shared service. Intended for tests.
func OverrideBeneficiaryService(s *service.BeneficiaryService) {
	serviceOnce.Do(func() {})
	serviceInstance = s
	serviceErr = nil
}
