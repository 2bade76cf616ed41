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

	"github.com/opencasework/case-management-service/internal/project/service"
	"github.com/opencasework/case-management-service/internal/project/store"
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
)

var (
	serviceInstance *service.ProjectService
	serviceErr      error
	serviceOnce     sync.Once
)

// ProjectProviderInterface defines the interface for the project provider.
type ProjectProviderInterface interface {
	GetProjectService() (*service.ProjectService, error)
}

// ProjectProvider is the default implementation of ProjectProviderInterface.
type ProjectProvider struct{}

// NewProjectProvider creates a new instance of ProjectProvider.
func NewProjectProvider() ProjectProviderInterface {
	return &ProjectProvider{}
}

// GetProjectService returns the shared project service.
func (p *ProjectProvider) GetProjectService() (*service.ProjectService, error) {
	serviceOnce.Do(func() {
		dbClient, err := dbprovider.NewDBProvider().GetDBClient()
		if err != nil {
			serviceErr = err
			return
		}
		serviceInstance = service.NewProjectService(dbClient, store.NewProjectStore())
	})
	return serviceInstance, serviceErr
}

// OverrideProjectService replaces the shared service. Intended for tests.
func OverrideProjectService(s *service.ProjectService) {
	serviceOnce.Do(func() {})
	serviceInstance = s
	serviceErr = nil
}
