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

package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/opencasework/case-management-service/internal/project/model"
	"github.com/opencasework/case-management-service/internal/project/provider"
	"github.com/opencasework/case-management-service/internal/system/constants"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/security"
	"github.com/opencasework/case-management-service/internal/system/utils"
)

type ProjectHandler struct{}

func NewProjectHandler() *ProjectHandler {
	return &ProjectHandler{}
}

// AddProject handles project creation.
func (ph *ProjectHandler) AddProject(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "projects:create"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.ProjectAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "project"),
		}, http.StatusBadRequest))
		return
	}

	projectService, err := provider.NewProjectProvider().GetProjectService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	project, err := projectService.AddProject(utils.ExtractOrgHandleFromPath(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, project)
}

// GetProjects handles listing projects.
func (ph *ProjectHandler) GetProjects(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "projects:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	projectService, err := provider.NewProjectProvider().GetProjectService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	projects, err := projectService.GetProjects(utils.ExtractOrgHandleFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, projects)
}

// GetProject handles fetching one project.
func (ph *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "projects:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	projectService, err := provider.NewProjectProvider().GetProjectService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	project, err := projectService.GetProject(utils.ExtractOrgHandleFromPath(r), projectIDFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, project)
}

// ChangeProjectStatus handles archiving and reactivating projects.
func (ph *ProjectHandler) ChangeProjectStatus(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "projects:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.ProjectStatusRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "project status"),
		}, http.StatusBadRequest))
		return
	}

	projectService, err := provider.NewProjectProvider().GetProjectService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	if err := projectService.ChangeStatus(utils.ExtractOrgHandleFromPath(r),
		projectIDFromPath(r), request.Status); err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, map[string]string{"status": request.Status})
}

// AddSubproject handles nested subproject creation.
func (ph *ProjectHandler) AddSubproject(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "projects:update"); err != nil {
		utils.HandleError(w, err)
		return
	}

	var request model.SubprojectAPIRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&request); err != nil {
		utils.WriteErrorResponse(w, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "subproject"),
		}, http.StatusBadRequest))
		return
	}

	projectService, err := provider.NewProjectProvider().GetProjectService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	subproject, err := projectService.AddSubproject(utils.ExtractOrgHandleFromPath(r),
		projectIDFromPath(r), request)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, subproject)
}

// GetSubprojects handles listing a project's subprojects.
func (ph *ProjectHandler) GetSubprojects(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, "projects:view"); err != nil {
		utils.HandleError(w, err)
		return
	}

	projectService, err := provider.NewProjectProvider().GetProjectService()
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	subprojects, err := projectService.GetSubprojects(utils.ExtractOrgHandleFromPath(r), projectIDFromPath(r))
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, subprojects)
}

// projectIDFromPath extracts the project ID from
// /projects/{id}[/subprojects...].
func projectIDFromPath(r *http.Request) string {

	path := strings.TrimPrefix(r.URL.Path, "/"+constants.ProjectApiPath+"/")
	if idx := strings.Index(path, "/"); idx >= 0 {
		path = path[:idx]
	}
	return path
}
