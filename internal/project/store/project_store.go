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

package store

import (
	"database/sql"

	"github.com/opencasework/case-management-service/internal/project/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/database/scripts"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const dbType = "postgres"

// ProjectStore persists projects and subprojects.
type ProjectStore struct{}

// NewProjectStore creates a new ProjectStore.
func NewProjectStore() *ProjectStore {
	return &ProjectStore{}
}

// Insert adds a project row.
func (s *ProjectStore) Insert(q client.Querier, project model.Project) error {

	_, err := q.Exec(scripts.InsertProject[dbType],
		project.ProjectID, project.OrgHandle, project.Name, project.Description,
		project.Status, project.CreatedAt, project.UpdatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// GetByOrg lists projects for an organization, newest first.
func (s *ProjectStore) GetByOrg(q client.Querier, orgHandle string) ([]model.Project, error) {

	rows, err := q.Query(scripts.GetProjectsByOrg[dbType], orgHandle)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var project model.Project
		if err := rows.Scan(&project.ProjectID, &project.OrgHandle, &project.Name,
			&project.Description, &project.Status, &project.CreatedAt, &project.UpdatedAt); err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return projects, nil
}

// GetByID fetches one project, or nil when unknown.
func (s *ProjectStore) GetByID(q client.Querier, orgHandle, projectID string) (*model.Project, error) {

	var project model.Project
	err := q.QueryRow(scripts.GetProjectByID[dbType], orgHandle, projectID).Scan(
		&project.ProjectID, &project.OrgHandle, &project.Name, &project.Description,
		&project.Status, &project.CreatedAt, &project.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return &project, nil
}

// UpdateStatus changes a project's status.
func (s *ProjectStore) UpdateStatus(q client.Querier, orgHandle, projectID, status string, updatedAt int64) error {

	_, err := q.Exec(scripts.UpdateProjectStatus[dbType], status, updatedAt, orgHandle, projectID)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// InsertSubproject adds a subproject row.
func (s *ProjectStore) InsertSubproject(q client.Querier, subproject model.Subproject) error {

	_, err := q.Exec(scripts.InsertSubproject[dbType],
		subproject.SubprojectID, subproject.ProjectID, subproject.Name,
		subproject.Status, subproject.CreatedAt, subproject.UpdatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// GetSubprojects lists subprojects of a project, newest first.
func (s *ProjectStore) GetSubprojects(q client.Querier, projectID string) ([]model.Subproject, error) {

	rows, err := q.Query(scripts.GetSubprojectsByProject[dbType], projectID)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var subprojects []model.Subproject
	for rows.Next() {
		var subproject model.Subproject
		if err := rows.Scan(&subproject.SubprojectID, &subproject.ProjectID, &subproject.Name,
			&subproject.Status, &subproject.CreatedAt, &subproject.UpdatedAt); err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		subprojects = append(subprojects, subproject)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return subprojects, nil
}
