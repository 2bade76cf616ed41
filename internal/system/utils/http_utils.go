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

package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/opencasework/case-management-service/internal/system/constants"
	cmscontext "github.com/opencasework/case-management-service/internal/system/context"
	customerrors "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// HandleError sends an HTTP error response based on the provided error
func HandleError(w http.ResponseWriter, err error) {
	var clientError *customerrors.ClientError
	w.Header().Set("Content-Type", "application/json")
	if ok := errors.As(err, &clientError); ok {
		w.WriteHeader(clientError.StatusCode)
		_ = json.NewEncoder(w).Encode(struct {
			Code        string `json:"code"`
			Message     string `json:"message"`
			Description string `json:"description"`
		}{
			Code:        clientError.ErrorMessage.Code,
			Message:     clientError.ErrorMessage.Message,
			Description: clientError.ErrorMessage.Description,
		})
		return
	}

	log.GetLogger().Error(err.Error())
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": "Internal server error",
	})
}

// RespondJSON writes the payload as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.GetLogger().Error("Failed to encode response payload", log.Error(err))
	}
}

// WriteErrorResponse writes a client error as-is.
func WriteErrorResponse(w http.ResponseWriter, err *customerrors.ClientError) {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.StatusCode)

	_ = json.NewEncoder(w).Encode(err.ErrorMessage)
}

// HandleDecodeError turns a JSON decode failure into a readable description.
func HandleDecodeError(err error, entity string) string {

	var unmarshalErr *json.UnmarshalTypeError
	if errors.As(err, &unmarshalErr) {
		return fmt.Sprintf("Invalid value for field '%s' in %s request", unmarshalErr.Field, entity)
	}
	return fmt.Sprintf("Malformed %s request body", entity)
}

// ExtractOrgHandleFromPath returns the organization injected by the tenant
// dispatcher.
func ExtractOrgHandleFromPath(r *http.Request) string {
	org, _ := r.Context().Value(constants.TenantContextKey).(string)
	return org
}

// RewriteToDefaultTenant redirects bare `/api/v1/...` calls to the default
// organization path.
func RewriteToDefaultTenant(apiBasePath string, mux *http.ServeMux, defaultTenant string) {
	mux.HandleFunc(apiBasePath+"/", func(w http.ResponseWriter, r *http.Request) {
		newPath := "/t/" + defaultTenant + r.URL.Path
		http.Redirect(w, r, newPath, http.StatusTemporaryRedirect)
	})
}

// MountTenantDispatcher strips the `/t/{org}` prefix, injects the org and a
// trace ID into the request context and forwards to the handler.
func MountTenantDispatcher(mux *http.ServeMux, apiBasePath string, handlerFunc http.HandlerFunc) {
	mux.HandleFunc("/t/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimSuffix(r.URL.Path, "/")

		if !strings.HasPrefix(path, "/t/") {
			http.NotFound(w, r)
			return
		}

		// Split: /t/{org}/api/v1/...
		parts := strings.SplitN(path[len("/t/"):], "/", 2)
		if len(parts) != 2 {
			http.Error(w, "Invalid tenant path format", http.StatusBadRequest)
			return
		}

		orgHandle := parts[0]
		remainingPath := "/" + parts[1]

		if !strings.HasPrefix(remainingPath, apiBasePath) {
			http.Error(w, "Path must start with "+apiBasePath, http.StatusNotFound)
			return
		}

		relativePath := strings.TrimPrefix(remainingPath, apiBasePath)

		ctx := context.WithValue(r.Context(), constants.TenantContextKey, orgHandle)
		ctx = cmscontext.WithTraceID(ctx, cmscontext.GetOrGenerateTraceID(ctx))
		r = r.WithContext(ctx)
		r.URL.Path = relativePath

		handlerFunc(w, r)
	})
}
