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

	"github.com/opencasework/case-management-service/internal/project/handler"
)

type ProjectService struct {
	projectHandler *handler.ProjectHandler
}

func NewProjectService() *ProjectService {
	return &ProjectService{
		projectHandler: handler.NewProjectHandler(),
	}
}

// Route handles all tenant-aware project endpoints
func (s *ProjectService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodPost && path == "/projects":
		s.projectHandler.AddProject(w, r)

	case method == http.MethodGet && path == "/projects":
		s.projectHandler.GetProjects(w, r)

	case method == http.MethodPost && strings.HasPrefix(path, "/projects/") && strings.HasSuffix(path, "/subprojects"):
		s.projectHandler.AddSubproject(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/projects/") && strings.HasSuffix(path, "/subprojects"):
		s.projectHandler.GetSubprojects(w, r)

	case method == http.MethodPatch && strings.HasPrefix(path, "/projects/") && strings.HasSuffix(path, "/status"):
		s.projectHandler.ChangeProjectStatus(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/projects/"):
		s.projectHandler.GetProject(w, r)

	default:
		http.NotFound(w, r)
	}
}
