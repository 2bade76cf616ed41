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
	"encoding/json"

	"github.com/opencasework/case-management-service/internal/mapping/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/database/scripts"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const dbType = "postgres"

// MappingStore persists beneficiary mapping configurations.
type MappingStore struct{}

// NewMappingStore creates a new MappingStore.
func NewMappingStore() *MappingStore {
	return &MappingStore{}
}

// Insert adds a new mapping row.
func (s *MappingStore) Insert(q client.Querier, mapping model.BeneficiaryMapping) error {

	fieldsJSON, err := json.Marshal(mapping.Fields)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	strategiesJSON, err := json.Marshal(mapping.Strategies)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	_, err = q.Exec(scripts.InsertBeneficiaryMapping[dbType],
		mapping.MappingID, mapping.OrgHandle, mapping.FormTemplateID,
		fieldsJSON, strategiesJSON, mapping.CreatedAt, mapping.UpdatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// GetByFormTemplate fetches the mapping for a form template, or nil when
// the template does not participate in deduplication.
func (s *MappingStore) GetByFormTemplate(q client.Querier, orgHandle, formTemplateID string) (*model.BeneficiaryMapping, error) {

	row := q.QueryRow(scripts.GetMappingByFormTemplate[dbType], orgHandle, formTemplateID)
	mapping, err := scanMapping(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return mapping, nil
}

// GetByOrg fetches all mappings for an organization.
func (s *MappingStore) GetByOrg(q client.Querier, orgHandle string) ([]model.BeneficiaryMapping, error) {

	rows, err := q.Query(scripts.GetMappingsByOrg[dbType], orgHandle)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var mappings []model.BeneficiaryMapping
	for rows.Next() {
		mapping, err := scanMapping(rows)
		if err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		mappings = append(mappings, *mapping)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return mappings, nil
}

// Update replaces the fields and strategies of an existing mapping.
func (s *MappingStore) Update(q client.Querier, mapping model.BeneficiaryMapping) error {

	fieldsJSON, err := json.Marshal(mapping.Fields)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	strategiesJSON, err := json.Marshal(mapping.Strategies)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	_, err = q.Exec(scripts.UpdateBeneficiaryMapping[dbType],
		fieldsJSON, strategiesJSON, mapping.UpdatedAt, mapping.OrgHandle, mapping.FormTemplateID)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// Delete removes the mapping for a form template.
func (s *MappingStore) Delete(q client.Querier, orgHandle, formTemplateID string) error {

	_, err := q.Exec(scripts.DeleteBeneficiaryMapping[dbType], orgHandle, formTemplateID)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanMapping(row rowScanner) (*model.BeneficiaryMapping, error) {

	var mapping model.BeneficiaryMapping
	var fieldsJSON, strategiesJSON string
	err := row.Scan(&mapping.MappingID, &mapping.OrgHandle, &mapping.FormTemplateID,
		&fieldsJSON, &strategiesJSON, &mapping.CreatedAt, &mapping.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fieldsJSON), &mapping.Fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(strategiesJSON), &mapping.Strategies); err != nil {
		return nil, err
	}
	return &mapping, nil
}
