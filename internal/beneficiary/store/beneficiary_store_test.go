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
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencasework/case-management-service/internal/beneficiary/model"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func samplePII(t *testing.T) (map[string]*crypto.EncryptedField, string) {
	t.Helper()
	pii := map[string]*crypto.EncryptedField{
		"first_name": {
			Algorithm:  "AES-256-GCM",
			Nonce:      "bm9uY2U=",
			Ciphertext: "Y2lwaGVy",
			Tag:        "dGFn",
		},
	}
	piiJSON, err := json.Marshal(pii)
	require.NoError(t, err)
	return pii, string(piiJSON)
}

func TestInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pii, piiJSON := samplePII(t)
	beneficiary := model.Beneficiary{
		BeneficiaryID: "b1",
		OrgHandle:     "org1",
		Pseudonym:     "BEN-ABCD2345",
		Status:        "active",
		PII:           pii,
		CreatedAt:     1700000000,
		UpdatedAt:     1700000000,
	}

	mock.ExpectExec("INSERT INTO beneficiaries").
		WithArgs("b1", "org1", "BEN-ABCD2345", "active", []byte(piiJSON),
			int64(1700000000), int64(1700000000)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewBeneficiaryStore().Insert(db, beneficiary))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, piiJSON := samplePII(t)
	rows := sqlmock.NewRows([]string{
		"beneficiary_id", "org_handle", "pseudonym", "status", "pii", "created_at", "updated_at",
	}).AddRow("b1", "org1", "BEN-ABCD2345", "active", piiJSON, int64(1700000000), int64(1700000000))

	mock.ExpectQuery("SELECT (.+) FROM beneficiaries").
		WithArgs("org1", "b1").
		WillReturnRows(rows)

	beneficiary, err := NewBeneficiaryStore().GetByID(db, "org1", "b1")
	require.NoError(t, err)
	require.NotNil(t, beneficiary)
	assert.Equal(t, "BEN-ABCD2345", beneficiary.Pseudonym)
	require.Contains(t, beneficiary.PII, "first_name")
	assert.Equal(t, "AES-256-GCM", beneficiary.PII["first_name"].Algorithm)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_UnknownReturnsNil(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM beneficiaries").
		WithArgs("org1", "missing").
		WillReturnRows(sqlmock.NewRows([]string{
			"beneficiary_id", "org_handle", "pseudonym", "status", "pii", "created_at", "updated_at",
		}))

	beneficiary, err := NewBeneficiaryStore().GetByID(db, "org1", "missing")
	require.NoError(t, err)
	assert.Nil(t, beneficiary)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByOrg(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, piiJSON := samplePII(t)
	rows := sqlmock.NewRows([]string{
		"beneficiary_id", "org_handle", "pseudonym", "status", "pii", "created_at", "updated_at",
	}).
		AddRow("b1", "org1", "BEN-AAAA2345", "active", piiJSON, int64(1700000002), int64(1700000002)).
		AddRow("b2", "org1", "BEN-BBBB2345", "inactive", "{}", int64(1700000001), int64(1700000001))

	mock.ExpectQuery("SELECT (.+) FROM beneficiaries").
		WithArgs("org1", 100, 0).
		WillReturnRows(rows)

	beneficiaries, err := NewBeneficiaryStore().GetByOrg(db, "org1", 100, 0)
	require.NoError(t, err)
	require.Len(t, beneficiaries, 2)
	assert.Equal(t, "b1", beneficiaries[0].BeneficiaryID)
	assert.NotNil(t, beneficiaries[1].PII, "empty pii unmarshals to an empty map")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePII(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	pii, piiJSON := samplePII(t)

	mock.ExpectExec("UPDATE beneficiaries").
		WithArgs([]byte(piiJSON), int64(1700000005), "org1", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewBeneficiaryStore().UpdatePII(db, "org1", "b1", pii, 1700000005))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE beneficiaries").
		WithArgs("inactive", int64(1700000005), "org1", "b1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewBeneficiaryStore().UpdateStatus(db, "org1", "b1", "inactive", 1700000005))
	require.NoError(t, mock.ExpectationsWereMet())
}
