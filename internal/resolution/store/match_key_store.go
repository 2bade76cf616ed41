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
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/opencasework/case-management-service/internal/resolution/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/database/scripts"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

const dbType = "postgres"

// uniqueViolation is the PostgreSQL error code raised when the
// (org_handle, key_type, key_hash) constraint is hit.
const uniqueViolation = "23505"

// MatchKeyStore persists the deduplication index.
type MatchKeyStore struct{}

// NewMatchKeyStore creates a new MatchKeyStore.
func NewMatchKeyStore() *MatchKeyStore {
	return &MatchKeyStore{}
}

// InsertIgnoreDuplicate adds a match key row. A unique-constraint conflict
// is swallowed: the correctness property is that the key exists, not that
// this call created it. Concurrent submissions racing on the same identity
// degrade to a benign no-op here.
func (s *MatchKeyStore) InsertIgnoreDuplicate(q client.Querier, key model.MatchKey) error {

	_, err := q.Exec(scripts.InsertMatchKey[dbType],
		key.OrgHandle, key.KeyType, key.KeyHash, key.BeneficiaryID, key.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			log.GetLogger().Debug("Match key already present, treating insert as success",
				log.String("key_type", key.KeyType))
			return nil
		}
		return errors2.NewServerError(errors2.ADD_MATCH_KEY, err)
	}
	return nil
}

// Lookup returns all index rows matching any of the candidate keys for the
// organization.
func (s *MatchKeyStore) Lookup(q client.Querier, orgHandle string, candidates []model.CandidateKey) ([]model.MatchKey, error) {

	if len(candidates) == 0 {
		return nil, nil
	}

	conditions := make([]string, 0, len(candidates))
	args := []interface{}{orgHandle}
	argIndex := 2
	for _, candidate := range candidates {
		conditions = append(conditions,
			"(key_type = $"+strconv.Itoa(argIndex)+" AND key_hash = $"+strconv.Itoa(argIndex+1)+")")
		args = append(args, candidate.KeyType, candidate.KeyHash)
		argIndex += 2
	}

	query := `SELECT org_handle, key_type, key_hash, beneficiary_id, created_at FROM match_keys
        WHERE org_handle = $1 AND (` + strings.Join(conditions, " OR ") + `)`

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var keys []model.MatchKey
	for rows.Next() {
		var key model.MatchKey
		if err := rows.Scan(&key.OrgHandle, &key.KeyType, &key.KeyHash, &key.BeneficiaryID, &key.CreatedAt); err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return keys, nil
}

// GetByBeneficiary returns the index rows pointing at a beneficiary.
func (s *MatchKeyStore) GetByBeneficiary(q client.Querier, orgHandle, beneficiaryID string) ([]model.MatchKey, error) {

	rows, err := q.Query(scripts.GetMatchKeysByBeneficiary[dbType], orgHandle, beneficiaryID)
	if err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	defer rows.Close()

	var keys []model.MatchKey
	for rows.Next() {
		var key model.MatchKey
		key.OrgHandle = orgHandle
		if err := rows.Scan(&key.KeyType, &key.KeyHash, &key.BeneficiaryID); err != nil {
			return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, errors2.NewServerError(errors2.EXECUTE_QUERY, err)
	}
	return keys, nil
}
