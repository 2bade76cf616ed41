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
	"database/sql"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencasework/case-management-service/internal/project/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeDBClient struct{}

func (f *fakeDBClient) ExecuteQuery(query string, args ...interface{}) ([]map[string]interface{}, error) {
	return nil, nil
}

func (f *fakeDBClient) BeginTx() (*sql.Tx, error) { return nil, nil }

func (f *fakeDBClient) DB() *sql.DB { return nil }

func (f *fakeDBClient) Close() error { return nil }

type fakeProjectStore struct {
	projects    map[string]*model.Project
	subprojects map[string][]model.Subproject
}

func newFakeProjectStore() *fakeProjectStore {
	return &fakeProjectStore{
		projects:    map[string]*model.Project{},
		subprojects: map[string][]model.Subproject{},
	}
}

func (f *fakeProjectStore) Insert(_ client.Querier, project model.Project) error {
	copied := project
	f.projects[project.ProjectID] = &copied
	return nil
}

func (f *fakeProjectStore) GetByOrg(_ client.Querier, orgHandle string) ([]model.Project, error) {
	var result []model.Project
	for _, project := range f.projects {
		if project.OrgHandle == orgHandle {
			result = append(result, *project)
		}
	}
	return result, nil
}

func (f *fakeProjectStore) GetByID(_ client.Querier, orgHandle, projectID string) (*model.Project, error) {
	project := f.projects[projectID]
	if project == nil || project.OrgHandle != orgHandle {
		return nil, nil
	}
	return project, nil
}

func (f *fakeProjectStore) UpdateStatus(_ client.Querier, _, projectID, status string, updatedAt int64) error {
	project := f.projects[projectID]
	project.Status = status
	project.UpdatedAt = updatedAt
	return nil
}

func (f *fakeProjectStore) InsertSubproject(_ client.Querier, subproject model.Subproject) error {
	f.subprojects[subproject.ProjectID] = append(f.subprojects[subproject.ProjectID], subproject)
	return nil
}

func (f *fakeProjectStore) GetSubprojects(_ client.Querier, projectID string) ([]model.Subproject, error) {
	return f.subprojects[projectID], nil
}

func newTestService() (*ProjectService, *fakeProjectStore) {
	store := newFakeProjectStore()
	return NewProjectService(&fakeDBClient{}, store), store
}

func TestAddProject(t *testing.T) {
	service, store := newTestService()

	project, err := service.AddProject("org1", model.ProjectAPIRequest{
		Name:        "Winter relief",
		Description: "Seasonal distribution programme",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, project.ProjectID)
	assert.Equal(t, constants.ProjectStatusActive, project.Status)
	assert.Len(t, store.projects, 1)
}

func TestAddProject_RequiresName(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddProject("org1", model.ProjectAPIRequest{})
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestGetProject_NotFound(t *testing.T) {
	service, _ := newTestService()

	_, err := service.GetProject("org1", "missing")
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestGetProject_OtherTenantHidden(t *testing.T) {
	service, _ := newTestService()

	project, err := service.AddProject("org1", model.ProjectAPIRequest{Name: "p"})
	require.NoError(t, err)

	_, err = service.GetProject("org2", project.ProjectID)
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}

func TestChangeStatus(t *testing.T) {
	service, store := newTestService()

	project, err := service.AddProject("org1", model.ProjectAPIRequest{Name: "p"})
	require.NoError(t, err)

	require.NoError(t, service.ChangeStatus("org1", project.ProjectID, constants.ProjectStatusArchived))
	assert.Equal(t, constants.ProjectStatusArchived, store.projects[project.ProjectID].Status)

	err = service.ChangeStatus("org1", project.ProjectID, "paused")
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestAddSubproject(t *testing.T) {
	service, _ := newTestService()

	project, err := service.AddProject("org1", model.ProjectAPIRequest{Name: "p"})
	require.NoError(t, err)

	subproject, err := service.AddSubproject("org1", project.ProjectID,
		model.SubprojectAPIRequest{Name: "North district"})
	require.NoError(t, err)
	assert.Equal(t, project.ProjectID, subproject.ProjectID)

	subprojects, err := service.GetSubprojects("org1", project.ProjectID)
	require.NoError(t, err)
	require.Len(t, subprojects, 1)
	assert.Equal(t, "North district", subprojects[0].Name)
}

func TestAddSubproject_ParentMustExist(t *testing.T) {
	service, _ := newTestService()

	_, err := service.AddSubproject("org1", "missing", model.SubprojectAPIRequest{Name: "s"})
	var clientErr *errors2.ClientError
	require.ErrorAs(t, err, &clientErr)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
}
