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
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/opencasework/case-management-service/internal/project/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

// ProjectRepository abstracts project persistence.
type ProjectRepository interface {
	Insert(q client.Querier, project model.Project) error
	GetByOrg(q client.Querier, orgHandle string) ([]model.Project, error)
	GetByID(q client.Querier, orgHandle, projectID string) (*model.Project, error)
	UpdateStatus(q client.Querier, orgHandle, projectID, status string, updatedAt int64) error
	InsertSubproject(q client.Querier, subproject model.Subproject) error
	GetSubprojects(q client.Querier, projectID string) ([]model.Subproject, error)
}

// ProjectService manages projects and subprojects.
type ProjectService struct {
	db    client.DBClientInterface
	store ProjectRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(db client.DBClientInterface, store ProjectRepository) *ProjectService {
	return &ProjectService{db: db, store: store}
}

// AddProject creates a project.
func (s *ProjectService) AddProject(orgHandle string, request model.ProjectAPIRequest) (*model.Project, error) {

	if request.Name == "" {
		return nil, errors2.NewClientError(errors2.BAD_REQUEST, http.StatusBadRequest)
	}

	now := time.Now().UTC().Unix()
	project := model.Project{
		ProjectID:   uuid.New().String(),
		OrgHandle:   orgHandle,
		Name:        request.Name,
		Description: request.Description,
		Status:      constants.ProjectStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.Insert(s.db.DB(), project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetProjects lists the organization's projects.
func (s *ProjectService) GetProjects(orgHandle string) ([]model.Project, error) {
	return s.store.GetByOrg(s.db.DB(), orgHandle)
}

// GetProject returns one project.
func (s *ProjectService) GetProject(orgHandle, projectID string) (*model.Project, error) {

	project, err := s.store.GetByID(s.db.DB(), orgHandle, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors2.NewClientError(errors2.PROJECT_NOT_FOUND, http.StatusNotFound)
	}
	return project, nil
}

// ChangeStatus moves a project between active and archived.
func (s *ProjectService) ChangeStatus(orgHandle, projectID, status string) error {

	if status != constants.ProjectStatusActive && status != constants.ProjectStatusArchived {
		return errors2.NewClientError(errors2.INVALID_STATUS, http.StatusBadRequest)
	}

	project, err := s.store.GetByID(s.db.DB(), orgHandle, projectID)
	if err != nil {
		return err
	}
	if project == nil {
		return errors2.NewClientError(errors2.PROJECT_NOT_FOUND, http.StatusNotFound)
	}

	return s.store.UpdateStatus(s.db.DB(), orgHandle, projectID, status, time.Now().UTC().Unix())
}

// AddSubproject creates a subproject under an existing project.
func (s *ProjectService) AddSubproject(orgHandle, projectID string,
	request model.SubprojectAPIRequest) (*model.Subproject, error) {

	if request.Name == "" {
		return nil, errors2.NewClientError(errors2.BAD_REQUEST, http.StatusBadRequest)
	}

	project, err := s.store.GetByID(s.db.DB(), orgHandle, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors2.NewClientError(errors2.PROJECT_NOT_FOUND, http.StatusNotFound)
	}

	now := time.Now().UTC().Unix()
	subproject := model.Subproject{
		SubprojectID: uuid.New().String(),
		ProjectID:    projectID,
		Name:         request.Name,
		Status:       constants.ProjectStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertSubproject(s.db.DB(), subproject); err != nil {
		return nil, err
	}
	return &subproject, nil
}

// GetSubprojects lists a project's subprojects.
func (s *ProjectService) GetSubprojects(orgHandle, projectID string) ([]model.Subproject, error) {

	project, err := s.store.GetByID(s.db.DB(), orgHandle, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, errors2.NewClientError(errors2.PROJECT_NOT_FOUND, http.StatusNotFound)
	}
	return s.store.GetSubprojects(s.db.DB(), projectID)
}
