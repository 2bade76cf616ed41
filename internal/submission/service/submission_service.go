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
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	resolutionModel "github.com/opencasework/case-management-service/internal/resolution/model"
	"github.com/opencasework/case-management-service/internal/submission/model"
	"github.com/opencasework/case-management-service/internal/system/constants"
	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// IdentityResolver resolves a submission payload to a beneficiary.
type IdentityResolver interface {
	ResolveOrCreate(tx client.Querier, orgHandle, formTemplateID string,
		data map[string]interface{}) (resolutionModel.Resolution, error)
}

// SubmissionRepository abstracts form response persistence.
type SubmissionRepository interface {
	InsertResponse(q client.Querier, response model.FormResponse) error
	GetResponseByID(q client.Querier, orgHandle, responseID string) (*model.FormResponse, error)
	InsertDelivery(q client.Querier, delivery model.ServiceDelivery) error
}

// Archiver keeps the sealed payload envelope in the document store.
type Archiver interface {
	Archive(ctx context.Context, orgHandle, responseID string, payload *crypto.EncryptedField) error
}

// AuditWriter records submission events, best-effort.
type AuditWriter interface {
	Record(orgHandle, userID, action, description string, details map[string]interface{})
}

// SubmissionService handles form response intake.
type SubmissionService struct {
	db       client.DBClientInterface
	store    SubmissionRepository
	resolver IdentityResolver
	archive  Archiver
	crypto   *crypto.Service
	audit    AuditWriter
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(db client.DBClientInterface, store SubmissionRepository,
	resolver IdentityResolver, archive Archiver, cryptoSvc *crypto.Service,
	audit AuditWriter) *SubmissionService {

	return &SubmissionService{
		db:       db,
		store:    store,
		resolver: resolver,
		archive:  archive,
		crypto:   cryptoSvc,
		audit:    audit,
	}
}

// Submit ingests one form response. Identity resolution, the response row
// and any service delivery commit atomically; the raw payload archive is
// best-effort and never fails the intake.
func (s *SubmissionService) Submit(ctx context.Context, orgHandle, userID string,
	request model.SubmissionAPIRequest) (*model.SubmissionAPIResponse, error) {

	if request.FormTemplateID == "" || request.Data == nil {
		return nil, errors2.NewClientError(errors2.BAD_REQUEST, http.StatusBadRequest)
	}

	logger := log.GetLogger()
	now := time.Now().UTC().Unix()

	tx, err := s.db.BeginTx()
	if err != nil {
		return nil, errors2.NewServerError(errors2.BEGIN_TRANSACTION, err)
	}

	resolution, err := s.resolver.ResolveOrCreate(tx, orgHandle, request.FormTemplateID, request.Data)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	response := model.FormResponse{
		ResponseID:     uuid.New().String(),
		OrgHandle:      orgHandle,
		FormTemplateID: request.FormTemplateID,
		ProjectID:      request.ProjectID,
		SubprojectID:   request.SubprojectID,
		BeneficiaryID:  resolution.BeneficiaryID,
		CreatedAt:      now,
	}
	if err := s.store.InsertResponse(tx, response); err != nil {
		tx.Rollback()
		return nil, err
	}

	if request.ServiceType != "" {
		delivery := model.ServiceDelivery{
			DeliveryID:    uuid.New().String(),
			OrgHandle:     orgHandle,
			ResponseID:    response.ResponseID,
			BeneficiaryID: resolution.BeneficiaryID,
			ProjectID:     request.ProjectID,
			ServiceType:   request.ServiceType,
			DeliveredAt:   now,
		}
		if err := s.store.InsertDelivery(tx, delivery); err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, errors2.NewServerError(errors2.COMMIT_TRANSACTION, err)
	}

	if envelope, err := s.sealPayload(request.Data); err != nil {
		logger.Warn("Failed to seal submission payload for archiving",
			log.String("response_id", response.ResponseID), log.Error(err))
	} else if err := s.archive.Archive(ctx, orgHandle, response.ResponseID, envelope); err != nil {
		logger.Warn("Failed to archive submission payload",
			log.String("response_id", response.ResponseID), log.Error(err))
	}

	if resolution.Created {
		s.audit.Record(orgHandle, userID, constants.AuditActionBeneficiaryCreate,
			"Beneficiary created by submission resolution",
			map[string]interface{}{
				"beneficiary_id": resolution.BeneficiaryID,
				"response_id":    response.ResponseID,
			})
	}
	logger.Audit(log.AuditEvent{
		InitiatorID:   userID,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      response.ResponseID,
		TargetType:    log.TargetTypeSubmission,
		ActionID:      log.ActionSubmitResponse,
	})

	return &model.SubmissionAPIResponse{
		ResponseID:         response.ResponseID,
		BeneficiaryID:      resolution.BeneficiaryID,
		BeneficiaryCreated: resolution.Created,
		CreatedAt:          now,
	}, nil
}

// sealPayload encrypts the full payload before it leaves for the archive.
// Submissions carry plaintext identity values, so the archived document gets
// the same at-rest protection as the beneficiary record.
func (s *SubmissionService) sealPayload(data map[string]interface{}) (*crypto.EncryptedField, error) {

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, errors2.NewServerError(errors2.MARSHAL_JSON, err)
	}
	plaintext := string(raw)
	envelope, err := s.crypto.EncryptField(&plaintext)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ENCRYPT_FIELD, err)
	}
	return envelope, nil
}

// GetSubmission returns one form response record.
func (s *SubmissionService) GetSubmission(orgHandle, responseID string) (*model.FormResponse, error) {

	response, err := s.store.GetResponseByID(s.db.DB(), orgHandle, responseID)
	if err != nil {
		return nil, err
	}
	if response == nil {
		return nil, errors2.NewClientError(errors2.SUBMISSION_NOT_FOUND, http.StatusNotFound)
	}
	return response, nil
}
