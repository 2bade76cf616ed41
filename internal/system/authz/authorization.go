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

package authz

import (
	"fmt"
	"slices"
	"strings"

	"github.com/opencasework/case-management-service/internal/system/config"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// ValidatePermission checks if the provided scopes match the expected scopes for an operation
func ValidatePermission(scopeStr string, operation string) bool {

	logger := log.GetLogger()
	if scopeStr == "" {
		logger.Debug(fmt.Sprintf("No scopes provided for operation: %s", operation))
		return false
	}

	requiredScopes := config.GetCMSRuntime().Config.AuthServer.RequiredScopes
	if requiredScopes == nil {
		logger.Debug(fmt.Sprintf("No scopes available for operation: %s", operation))
		return false
	}

	grantedScopes := strings.Split(scopeStr, " ")
	expectedScopes, ok := requiredScopes[operation]
	if !ok {
		return false
	}

	for _, expected := range expectedScopes {
		if !slices.Contains(grantedScopes, expected) {
			return false
		}
	}
	return true
}

// IsPrivilegedForPII reports whether any of the caller's roles belongs to
// the configured privileged set. Only privileged callers receive decrypted
// identity fields.
func IsPrivilegedForPII(roles []string) bool {

	privileged := config.GetCMSRuntime().Config.Privacy.PrivilegedPIIRoles
	for _, role := range roles {
		if slices.Contains(privileged, role) {
			return true
		}
	}
	return false
}
