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

package service

import (
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
)

// HealthCheckService reports readiness of the service's dependencies.
type HealthCheckService struct{}

// NewHealthCheckService creates a new HealthCheckService.
func NewHealthCheckService() *HealthCheckService {
	return &HealthCheckService{}
}

// CheckReadiness verifies the relational database is reachable. The
// document archive is best-effort at runtime, so it does not gate
// readiness.
func (s *HealthCheckService) CheckReadiness() error {

	dbClient, err := dbprovider.NewDBProvider().GetDBClient()
	if err != nil {
		return err
	}
	return dbClient.DB().Ping()
}
