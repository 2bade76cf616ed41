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

import (
	"github.com/opencasework/case-management-service/internal/system/crypto"
)

// Beneficiary is one unique person known to the organization. It always
// carries exactly one pseudonym and one status; any subset of identity
// fields may be absent. Records are never hard-deleted.
type Beneficiary struct {
	BeneficiaryID string                            `json:"beneficiary_id"`
	OrgHandle     string                            `json:"-"`
	Pseudonym     string                            `json:"pseudonym"`
	Status        string                            `json:"status"`
	PII           map[string]*crypto.EncryptedField `json:"-"`
	CreatedAt     int64                             `json:"created_at"`
	UpdatedAt     int64                             `json:"updated_at"`
}

// BeneficiaryAPIRequest is the request body for direct create and update
// operations. Identity values arrive as plaintext and are encrypted before
// persistence.
type BeneficiaryAPIRequest struct {
	Fields map[string]string `json:"fields"`
}

// BeneficiaryStatusRequest changes the soft-delete flag.
type BeneficiaryStatusRequest struct {
	Status string `json:"status"`
}

// BeneficiaryProjection is the wire shape produced by the disclosure gate.
// Safe fields and ciphertext are always present; PII only appears for
// privileged callers.
type BeneficiaryProjection struct {
	BeneficiaryID   string                            `json:"beneficiary_id"`
	Pseudonym       string                            `json:"pseudonym"`
	Status          string                            `json:"status"`
	CreatedAt       int64                             `json:"created_at"`
	UpdatedAt       int64                             `json:"updated_at"`
	EncryptedFields map[string]*crypto.EncryptedField `json:"encrypted_fields"`
	PII             map[string]string                 `json:"pii,omitempty"`
}

// DemographicsReport carries bucketed counts only; individual plaintext is
// decrypted for computation and discarded.
type DemographicsReport struct {
	Total      int            `json:"total"`
	AgeBuckets map[string]int `json:"age_buckets"`
	Genders    map[string]int `json:"genders"`
}
