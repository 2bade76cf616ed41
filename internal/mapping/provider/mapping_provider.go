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

	"github.com/opencasework/case-management-service/internal/mapping/service"
	"github.com/opencasework/case-management-service/internal/mapping/store"
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
)

var (
	serviceInstance *service.MappingService
	serviceErr      error
	serviceOnce     sync.Once
)

// MappingProviderInterface defines the interface for the mapping provider.
type MappingProviderInterface interface {
	GetMappingService() (*service.MappingService, error)
}

// MappingProvider is the default implementation of MappingProviderInterface.
type MappingProvider struct{}

// NewMappingProvider creates a new instance of MappingProvider.
func NewMappingProvider() MappingProviderInterface {
	return &MappingProvider{}
}

// GetMappingService returns the shared mapping service.
func (p *MappingProvider) GetMappingService() (*service.MappingService, error) {
	serviceOnce.Do(func() {
		dbClient, err := dbprovider.NewDBProvider().GetDBClient()
		if err != nil {
			serviceErr = err
			return
		}
		serviceInstance = service.NewMappingService(dbClient.DB(), store.NewMappingStore())
	})
	return serviceInstance, serviceErr
}

// OverrideMappingService replaces the shared service. Intended for tests.
func OverrideMappingService(s *service.MappingService) {
	serviceOnce.Do(func() {})
	serviceInstance = s
	serviceErr = nil
}
