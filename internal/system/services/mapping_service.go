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

package services

import (
	"net/http"
	"strings"

	"github.com/opencasework/case-management-service/internal/mapping/handler"
)

type MappingService struct {
	mappingHandler *handler.MappingHandler
}

func NewMappingService() *MappingService {
	return &MappingService{
		mappingHandler: handler.NewMappingHandler(),
	}
}

// Route handles all tenant-aware beneficiary mapping endpoints
func (s *MappingService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/beneficiary-mappings":
		s.mappingHandler.AddMapping(w, r)

	case method == http.MethodGet && path == "/beneficiary-mappings":
		s.mappingHandler.GetMappings(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/beneficiary-mappings/"):
		s.mappingHandler.GetMapping(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/beneficiary-mappings/"):
		s.mappingHandler.UpdateMapping(w, r)

	case method == http.MethodDelete && strings.HasPrefix(path, "/beneficiary-mappings/"):
		s.mappingHandler.DeleteMapping(w, r)

	default:
		http.NotFound(w, r)
	}
}
