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
	"time"

	"github.com/google/uuid"

	"github.com/opencasework/case-management-service/internal/audit/model"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// AuditRepository abstracts audit trail persistence.
type AuditRepository interface {
	Insert(q client.Querier, entry model.AuditEntry) error
	GetByOrg(q client.Querier, orgHandle string, limit, offset int) ([]model.AuditEntry, error)
}

// Recorder writes the audit trail. Every write is best-effort: a failed
// audit insert is logged and swallowed so it can never fail the request
// that triggered it.
type Recorder struct {
	db    client.Querier
	store AuditRepository
}

// NewRecorder creates a new audit Recorder over the given database handle.
func NewRecorder(db client.Querier, store AuditRepository) *Recorder {
	return &Recorder{db: db, store: store}
}

// Record appends an audit entry and mirrors it to the structured audit
// channel.
func (r *Recorder) Record(orgHandle, userID, action, description string, details map[string]interface{}) {

	logger := log.GetLogger()

	entry := model.AuditEntry{
		AuditID:     uuid.New().String(),
		OrgHandle:   orgHandle,
		UserID:      userID,
		Action:      action,
		Description: description,
		Details:     details,
		CreatedAt:   time.Now().UTC().Unix(),
	}

	if err := r.store.Insert(r.db, entry); err != nil {
		logger.Warn("Failed to persist audit entry",
			log.String("action", action), log.Error(err))
	}

	logger.Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      orgHandle,
		TargetType:    log.TargetTypeBeneficiary,
		ActionID:      action,
		Data:          details,
	})
}

// List returns the persisted audit trail for an organization.
func (r *Recorder) List(orgHandle string, limit, offset int) ([]model.AuditEntry, error) {
	return r.store.GetByOrg(r.db, orgHandle, limit, offset)
}
