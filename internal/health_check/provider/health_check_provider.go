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
	"github.com/opencasework/case-management-service/internal/health_check/service"
)

// HealthCheckProviderInterface defines the interface for the health check provider.
type HealthCheckProviderInterface interface {
	GetHealthCheckService() *service.HealthCheckService
}

// HealthCheckProvider is the default implementation of HealthCheckProviderInterface.
type HealthCheckProvider struct{}

// NewHealthCheckProvider creates a new instance of HealthCheckProvider.
func NewHealthCheckProvider() HealthCheckProviderInterface {
	return &HealthCheckProvider{}
}

// GetHealthCheckService returns the health check service instance.
func (p *HealthCheckProvider) GetHealthCheckService() *service.HealthCheckService {
	return service.NewHealthCheckService()
}
