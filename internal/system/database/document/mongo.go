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

package document

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/opencasework/case-management-service/internal/system/config"
	"github.com/opencasework/case-management-service/internal/system/log"
)

// MongoDB holds the document database connection used for the raw
// submission archive.
type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

var (
	mongoInstance *MongoDB
	mongoOnce     sync.Once
)

// Connect initializes the global document store connection.
func Connect(cfg config.DocumentStoreConfig) (*MongoDB, error) {
	var initErr error
	mongoOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
		if err != nil {
			initErr = errors.Wrap(err, "failed to create document store client")
			return
		}
		if err := mongoClient.Ping(ctx, nil); err != nil {
			initErr = errors.Wrap(err, "failed to reach document store")
			return
		}

		log.GetLogger().Info("Connected to document store")
		mongoInstance = &MongoDB{
			Client:   mongoClient,
			Database: mongoClient.Database(cfg.Database),
		}
	})
	if initErr != nil {
		return nil, initErr
	}
	return mongoInstance, nil
}

// GetInstance returns the document store connection, or nil when archiving
// is not configured.
func GetInstance() *MongoDB {
	return mongoInstance
}
