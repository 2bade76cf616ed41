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
	"encoding/json"

	"github.com/opencasework/case-management-service/internal/audit/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/database/scripts"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const dbType = "postgres"

// AuditStore persists audit trail entries.
type AuditStore struct{}

// NewAuditStore creates a new AuditStore.
func NewAuditStore() *AuditStore {
	return &AuditStore{}
}

// Insert appends an audit entry. There is no update or delete path.
func (s *AuditStore) Insert(q client.Querier, entry model.AuditEntry) error {

	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	_, err = q.Exec(scripts.InsertAuditLog[dbType],
		entry.AuditID, entry.OrgHandle, entry.UserID, entry.Action,
		entry.Description, detailsJSON, entry.CreatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.ADD_AUDIT_LOG, err)
	}
	return nil
}

// GetByOrg lists audit entries for an organization, newest first.
func (s *AuditStore) GetByOrg(q client.Querier, orgHandle string, limit, offset int) ([]model.AuditEntry, error) {

	rows, err := q.Query(scripts.GetAuditLogsByOrg[dbType], orgHandle, limit, offset)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var entries []model.AuditEntry
	for rows.Next() {
		var entry model.AuditEntry
		var detailsJSON string
		if err := rows.Scan(&entry.AuditID, &entry.OrgHandle, &entry.UserID, &entry.Action,
			&entry.Description, &detailsJSON, &entry.CreatedAt); err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		if detailsJSON != "" && detailsJSON != "null" {
			if err := json.Unmarshal([]byte(detailsJSON), &entry.Details); err != nil {
				return nil, errors2.NewServerError(errors2.UNMARSHAL_JSON, err)
			}
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return entries, nil
}
