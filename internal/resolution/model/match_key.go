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

// MatchKey is one row of the deduplication index. The pair
// (key_type, key_hash) is unique within an organization; two submissions
// normalizing to the same key under the same strategy resolve to the same
// beneficiary. Rows are never deleted, even for deactivated beneficiaries,
// so historical identities keep resolving.
type MatchKey struct {
	OrgHandle     string
	KeyType       string
	KeyHash       string
	BeneficiaryID string
	CreatedAt     int64
}

// CandidateKey is a match key computed from an incoming submission before
// it is known whether the index already contains it.
type CandidateKey struct {
	KeyType string
	KeyHash string
}

// Resolution is the outcome of ResolveOrCreate. BeneficiaryID is empty when
// the form template carries no mapping.
type Resolution struct {
	BeneficiaryID string `json:"beneficiary_id"`
	Created       bool   `json:"created"`
}
