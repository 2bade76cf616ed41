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

package authn

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/opencasework/case-management-service/internal/system/config"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// ValidateAuthenticationAndReturnClaims validates an Authorization: Bearer
// token against the expected organization and audience.
func ValidateAuthenticationAndReturnClaims(token, orgHandle string) (map[string]interface{}, error) {

	logger := log.GetLogger()

	// Detect if token is JWT or opaque
	if strings.Count(token, ".") != 2 {
		logger.Debug("Expecting a JWT token but received an opaque token.")
		return nil, unauthorizedError()
	}

	claims, err := ParseJWTClaims(token)
	if err != nil {
		return nil, unauthorizedError()
	}

	if !validateClaims(orgHandle, claims) {
		return nil, unauthorizedError()
	}

	return claims, nil
}

// ParseJWTClaims parses claims from a JWT without verifying the signature.
// Signature verification happens at the gateway; the service only consumes
// the already-vetted claim set.
func ParseJWTClaims(tokenString string) (map[string]interface{}, error) {

	logger := log.GetLogger()
	claims := jwt.MapClaims{}
	_, _, err := new(jwt.Parser).ParseUnverified(tokenString, claims)
	if err != nil {
		errMsg := "Error occurred when parsing claims from JWT token."
		logger.Debug(errMsg, log.Error(err))
		serverError := errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.PARSING_ERROR.Code,
			Message:     errors2.PARSING_ERROR.Message,
			Description: errMsg,
		}, err)
		return nil, serverError
	}
	return claims, nil
}

// GetUserIDFromRequest extracts the subject claim from the bearer token, or
// an empty string when unavailable.
func GetUserIDFromRequest(r *http.Request) string {

	claims := claimsFromRequest(r)
	if claims == nil {
		return ""
	}
	if sub, ok := claims["sub"].(string); ok {
		return sub
	}
	return ""
}

// GetRolesFromRequest extracts the resolved role names from the bearer
// token's roles claim.
func GetRolesFromRequest(r *http.Request) []string {

	claims := claimsFromRequest(r)
	if claims == nil {
		return nil
	}

	var roles []string
	switch raw := claims["roles"].(type) {
	case []interface{}:
		for _, v := range raw {
			if s, ok := v.(string); ok {
				roles = append(roles, s)
			}
		}
	case []string:
		roles = raw
	case string:
		roles = strings.Fields(raw)
	}
	return roles
}

func claimsFromRequest(r *http.Request) map[string]interface{} {

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return nil
	}
	claims, err := ParseJWTClaims(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		return nil
	}
	return claims
}

// validateClaims ensures the token carries the expected org_handle, is not
// expired and targets the expected audience.
func validateClaims(orgHandle string, claims map[string]interface{}) bool {

	logger := log.GetLogger()
	orgHandleInClaim, ok := claims["org_handle"].(string)
	if !ok || orgHandleInClaim != orgHandle {
		logger.Debug("Token does not have the expected org_handle claim.")
		return false
	}

	expRaw, ok := claims["exp"]
	if !ok {
		logger.Debug("Token does not have an expiration time.")
		return false
	}
	expFloat, ok := expRaw.(float64)
	if !ok {
		logger.Debug("Token does not have a valid expiration time.", log.Any("exp", expRaw))
		return false
	}
	if int64(expFloat) < time.Now().Unix() {
		logger.Debug("Token has expired.")
		return false
	}

	audRaw, ok := claims["aud"]
	if !ok {
		logger.Debug("Token does not have an audience claim.")
		return false
	}

	var audList []string
	switch aud := audRaw.(type) {
	case []interface{}:
		for _, a := range aud {
			if s, ok := a.(string); ok {
				audList = append(audList, s)
			}
		}
	case string:
		audList = append(audList, aud)
	}

	expectedAudience := config.GetCMSRuntime().Config.AuthServer.Audience
	for _, aud := range audList {
		if aud == expectedAudience {
			return true
		}
	}
	logger.Debug("Token audience does not match expected audience.")
	return false
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: errors2.UN_AUTHORIZED.Description,
	}, http.StatusUnauthorized)
}
