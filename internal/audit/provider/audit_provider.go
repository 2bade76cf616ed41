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

package provider

import (
	"sync"

	"github.com/opencasework/case-management-service/internal/audit/service"
	"github.com/opencasework/case-management-service/internal/audit/store"
	dbprovider "github.com/opencasework/case-management-service/internal/system/database/provider"
)

var (
	recorderInstance *service.Recorder
	recorderErr      error
	recorderOnce     sync.Once
)

// AuditProviderInterface defines the interface for the audit provider.
type AuditProviderInterface interface {
	GetRecorder() (*service.Recorder, error)
}

// AuditProvider is the default implementation of AuditProviderInterface.
type AuditProvider struct{}

// NewAuditProvider creates a new instance of AuditProvider.
func NewAuditProvider() AuditProviderInterface {
	return &AuditProvider{}
}

// GetRecorder returns the shared audit recorder.
func (p *AuditProvider) GetRecorder() (*service.Recorder, error) {
	recorderOnce.Do(func() {
		dbClient, err := dbprovider.NewDBProvider().GetDBClient()
		if err != nil {
			recorderErr = err
			return
		}
		recorderInstance = service.NewRecorder(dbClient.DB(), store.NewAuditStore())
	})
	return recorderInstance, recorderErr
}

// OverrideRecorder replaces the shared recorder. Intended for tests.
func OverrideRecorder(r *service.Recorder) {
	recorderOnce.Do(func() {})
	recorderInstance = r
	recorderErr = nil
}
