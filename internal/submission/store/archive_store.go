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
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/opencasework/case-management-service/internal/system/crypto"
	"github.com/opencasework/case-management-service/internal/system/database/document"
	errors2 "github.com/opencasework/case-management-service/internal/system/errors"
)

const archiveCollection = "form_response_archive"

// ArchiveStore keeps submission payloads in the document store for
// reprocessing. Payloads arrive as a sealed ciphertext envelope; the raw
// plaintext never reaches this store.
type ArchiveStore struct {
	db *document.MongoDB
}

// NewArchiveStore creates an ArchiveStore. A nil document connection means
// archiving is disabled and every write reports an error for the caller to
// swallow.
func NewArchiveStore(db *document.MongoDB) *ArchiveStore {
	return &ArchiveStore{db: db}
}

// Archive stores one encrypted payload document.
func (s *ArchiveStore) Archive(ctx context.Context, orgHandle, responseID string, payload *crypto.EncryptedField) error {

	if s.db == nil {
		return errors2.NewServerError(errors2.ARCHIVE_SUBMISSION, nil)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := s.db.Database.Collection(archiveCollection).InsertOne(ctx, bson.M{
		"org_handle":  orgHandle,
		"response_id": responseID,
		"payload": bson.M{
			"algorithm":  payload.Algorithm,
			"nonce":      payload.Nonce,
			"ciphertext": payload.Ciphertext,
			"tag":        payload.Tag,
		},
		"archived_at": time.Now().UTC().Unix(),
	})
	if err != nil {
		return errors2.NewServerError(errors2.ARCHIVE_SUBMISSION, err)
	}
	return nil
}
