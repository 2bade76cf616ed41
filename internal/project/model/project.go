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

package model

// Project groups submissions and service deliveries under one programme.
type Project struct {
	ProjectID   string `json:"project_id"`
	OrgHandle   string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CreatedAt   int64  `json:"created_at"`
	UpdatedAt   int64  `json:"updated_at"`
}

// Subproject is a nested activity under a project.
type Subproject struct {
	SubprojectID string `json:"subproject_id"`
	ProjectID    string `json:"project_id"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

// ProjectAPIRequest is the create body.
type ProjectAPIRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProjectStatusRequest changes the project status.
type ProjectStatusRequest struct {
	Status string `json:"status"`
}

// SubprojectAPIRequest is the nested create body.
type SubprojectAPIRequest struct {
	Name string `json:"name"`
}
