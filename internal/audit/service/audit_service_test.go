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
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencasework/case-management-service/internal/audit/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type fakeAuditStore struct {
	entries   []model.AuditEntry
	insertErr error
}

func (f *fakeAuditStore) Insert(_ client.Querier, entry model.AuditEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) GetByOrg(_ client.Querier, orgHandle string, limit, offset int) ([]model.AuditEntry, error) {
	var result []model.AuditEntry
	for _, entry := range f.entries {
		if entry.OrgHandle == orgHandle {
			result = append(result, entry)
		}
	}
	if offset >= len(result) {
		return nil, nil
	}
	end := offset + limit
	if end > len(result) {
		end = len(result)
	}
	return result[offset:end], nil
}

func TestRecord(t *testing.T) {
	store := &fakeAuditStore{}
	recorder := NewRecorder(nil, store)

	recorder.Record("org1", "user1", "PII_READ", "Decrypted PII disclosed",
		map[string]interface{}{"beneficiary_id": "b1"})

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.NotEmpty(t, entry.AuditID)
	assert.Equal(t, "org1", entry.OrgHandle)
	assert.Equal(t, "user1", entry.UserID)
	assert.Equal(t, "PII_READ", entry.Action)
	assert.Equal(t, "b1", entry.Details["beneficiary_id"])
	assert.NotZero(t, entry.CreatedAt)
}

func TestRecord_InsertFailureIsSwallowed(t *testing.T) {
	store := &fakeAuditStore{insertErr: errors.New("disk full")}
	recorder := NewRecorder(nil, store)

	assert.NotPanics(t, func() {
		recorder.Record("org1", "user1", "PII_READ", "Decrypted PII disclosed", nil)
	})
	assert.Empty(t, store.entries)
}

func TestList(t *testing.T) {
	store := &fakeAuditStore{}
	recorder := NewRecorder(nil, store)

	recorder.Record("org1", "user1", "PII_READ", "first", nil)
	recorder.Record("org1", "user1", "PII_LIST_READ", "second", nil)
	recorder.Record("org2", "user2", "PII_READ", "other org", nil)

	entries, err := recorder.List("org1", 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "PII_READ", entries[0].Action)

	paged, err := recorder.List("org1", 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "PII_LIST_READ", paged[0].Action)
}
