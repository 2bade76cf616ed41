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

// AuditEntry is one immutable row in the audit trail. Entries are only
// ever appended.
type AuditEntry struct {
	AuditID     string                 `json:"audit_id"`
	OrgHandle   string                 `json:"-"`
	UserID      string                 `json:"user_id"`
	Action      string                 `json:"action"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details,omitempty"`
	CreatedAt   int64                  `json:"created_at"`
}
