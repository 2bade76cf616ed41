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

	"github.com/opencasework/case-management-service/internal/beneficiary/model"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/database/scripts"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const dbType = "postgres"

// BeneficiaryStore persists beneficiary records.
type BeneficiaryStore struct{}

// NewBeneficiaryStore creates a new BeneficiaryStore.
func NewBeneficiaryStore() *BeneficiaryStore {
	return &BeneficiaryStore{}
}

// Insert adds a new beneficiary row.
func (s *BeneficiaryStore) Insert(q client.Querier, beneficiary model.Beneficiary) error {

	piiJSON, err := json.Marshal(beneficiary.PII)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	_, err = q.Exec(scripts.InsertBeneficiary[dbType],
		beneficiary.BeneficiaryID, beneficiary.OrgHandle, beneficiary.Pseudonym,
		beneficiary.Status, piiJSON, beneficiary.CreatedAt, beneficiary.UpdatedAt)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// GetByID fetches one beneficiary, or nil when unknown.
func (s *BeneficiaryStore) GetByID(q client.Querier, orgHandle, beneficiaryID string) (*model.Beneficiary, error) {

	row := q.QueryRow(scripts.GetBeneficiaryByID[dbType], orgHandle, beneficiaryID)
	beneficiary, err := scanBeneficiary(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return beneficiary, nil
}

// GetByOrg lists beneficiaries for an organization, newest first.
func (s *BeneficiaryStore) GetByOrg(q client.Querier, orgHandle string, limit, offset int) ([]model.Beneficiary, error) {

	rows, err := q.Query(scripts.GetBeneficiariesByOrg[dbType], orgHandle, limit, offset)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var beneficiaries []model.Beneficiary
	for rows.Next() {
		beneficiary, err := scanBeneficiary(rows)
		if err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		beneficiaries = append(beneficiaries, *beneficiary)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return beneficiaries, nil
}

// UpdatePII replaces the encrypted field set of a beneficiary.
func (s *BeneficiaryStore) UpdatePII(q client.Querier, orgHandle, beneficiaryID string, pii map[string]*crypto.EncryptedField, updatedAt int64) error {

	piiJSON, err := json.Marshal(pii)
	if err != nil {
		return errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}

	_, err = q.Exec(scripts.UpdateBeneficiaryPII[dbType], piiJSON, updatedAt, orgHandle, beneficiaryID)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

// UpdateStatus flips the soft-delete flag.
func (s *BeneficiaryStore) UpdateStatus(q client.Querier, orgHandle, beneficiaryID, status string, updatedAt int64) error {

	_, err := q.Exec(scripts.UpdateBeneficiaryStatus[dbType], status, updatedAt, orgHandle, beneficiaryID)
	if err != nil {
		return errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBeneficiary(row rowScanner) (*model.Beneficiary, error) {

	var beneficiary model.Beneficiary
	var piiJSON string
	err := row.Scan(&beneficiary.BeneficiaryID, &beneficiary.OrgHandle, &beneficiary.Pseudonym,
		&beneficiary.Status, &piiJSON, &beneficiary.CreatedAt, &beneficiary.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(piiJSON), &beneficiary.PII); err != nil {
		return nil, err
	}
	if beneficiary.PII == nil {
		beneficiary.PII = map[string]*crypto.EncryptedField{}
	}
	return &beneficiary, nil
}
