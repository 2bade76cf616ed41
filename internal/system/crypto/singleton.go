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

package crypto

import (
	"sync"

	"github.com/opencasework/case-management-service/internal/system/config"
)

var (
	instance *Service
	initErr  error
	once     sync.Once
)

// GetService returns the process-wide crypto service, built from the
// privacy configuration on first use.
func GetService() (*Service, error) {
	once.Do(func() {
		instance, initErr = NewFromConfig(config.GetCMSRuntime().Config.Privacy)
	})
	return instance, initErr
}

// OverrideService replaces the shared crypto service. Intended for tests.
func OverrideService(s *Service) {
	once.Do(func() {})
	instance = s
	initErr = nil
}
