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

	"github.com/opencasework/case-management-service/internal/submission/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/database/scripts"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const dbType = "postgres"

// SubmissionStore persists form responses and service deliveries.
type SubmissionStore struct{}

// NewSubmissionStore creates a new SubmissionStore.
func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{}
}

// InsertResponse adds a form response row. Beneficiary, project and
// subproject links are nullable.
func (s *SubmissionStore) InsertResponse(q client.Querier, response model.FormResponse) error {

	_, err := q.Exec(scripts.InsertFormResponse[dbType],
		response.ResponseID, response.OrgHandle, response.FormTemplateID,
		nullable(response.ProjectID), nullable(response.SubprojectID),
		nullable(response.BeneficiaryID), response.CreatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// GetResponseByID fetches one form response, or nil when unknown.
func (s *SubmissionStore) GetResponseByID(q client.Querier, orgHandle, responseID string) (*model.FormResponse, error) {

	var response model.FormResponse
	var projectID, subprojectID, beneficiaryID sql.NullString
	err := q.QueryRow(scripts.GetFormResponseByID[dbType], orgHandle, responseID).Scan(
		&response.ResponseID, &response.OrgHandle, &response.FormTemplateID,
		&projectID, &subprojectID, &beneficiaryID, &response.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}

	response.ProjectID = projectID.String
	response.SubprojectID = subprojectID.String
	response.BeneficiaryID = beneficiaryID.String
	return &response, nil
}

// InsertDelivery adds a service delivery row.
func (s *SubmissionStore) InsertDelivery(q client.Querier, delivery model.ServiceDelivery) error {

	_, err := q.Exec(scripts.InsertServiceDelivery[dbType],
		delivery.DeliveryID, delivery.OrgHandle, delivery.ResponseID,
		nullable(delivery.BeneficiaryID), nullable(delivery.ProjectID),
		delivery.ServiceType, delivery.DeliveredAt)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

func nullable(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
