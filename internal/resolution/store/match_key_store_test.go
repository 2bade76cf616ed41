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
	"errors"
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencasework/case-management-service/internal/resolution/model"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func sampleKey() model.MatchKey {
	return model.MatchKey{
		OrgHandle:     "org1",
		KeyType:       "national_id",
		KeyHash:       "abc123",
		BeneficiaryID: "b1",
		CreatedAt:     1700000000,
	}
}

func TestInsertIgnoreDuplicate(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO match_keys").
		WithArgs("org1", "national_id", "abc123", "b1", int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewMatchKeyStore().InsertIgnoreDuplicate(db, sampleKey()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertIgnoreDuplicate_UniqueViolationSwallowed(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO match_keys").
		WillReturnError(&pq.Error{Code: "23505"})

	require.NoError(t, NewMatchKeyStore().InsertIgnoreDuplicate(db, sampleKey()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInsertIgnoreDuplicate_OtherErrorPropagates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("INSERT INTO match_keys").
		WillReturnError(errors.New("connection reset"))

	err = NewMatchKeyStore().InsertIgnoreDuplicate(db, sampleKey())
	var serverErr *errors2.ServerError
	require.ErrorAs(t, err, &serverErr)
}

func TestLookup(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	candidates := []model.CandidateKey{
		{KeyType: "national_id", KeyHash: "h1"},
		{KeyType: "name_dob", KeyHash: "h2"},
	}

	rows := sqlmock.NewRows([]string{"org_handle", "key_type", "key_hash", "beneficiary_id", "created_at"}).
		AddRow("org1", "national_id", "h1", "b1", int64(1700000000))

	mock.ExpectQuery("SELECT (.+) FROM match_keys").
		WithArgs("org1", "national_id", "h1", "name_dob", "h2").
		WillReturnRows(rows)

	keys, err := NewMatchKeyStore().Lookup(db, "org1", candidates)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Equal(t, "b1", keys[0].BeneficiaryID)
	assert.Equal(t, "national_id", keys[0].KeyType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLookup_NoCandidatesSkipsQuery(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	keys, err := NewMatchKeyStore().Lookup(db, "org1", nil)
	require.NoError(t, err)
	assert.Empty(t, keys)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByBeneficiary(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"key_type", "key_hash", "beneficiary_id"}).
		AddRow("national_id", "h1", "b1").
		AddRow("name_dob", "h2", "b1")

	mock.ExpectQuery("SELECT (.+) FROM match_keys").
		WithArgs("org1", "b1").
		WillReturnRows(rows)

	keys, err := NewMatchKeyStore().GetByBeneficiary(db, "org1", "b1")
	require.NoError(t, err)
	require.Len(t, keys, 2)
	assert.Equal(t, "org1", keys[0].OrgHandle)
	require.NoError(t, mock.ExpectationsWereMet())
}
