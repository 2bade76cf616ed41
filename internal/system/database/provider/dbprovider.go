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
	"database/sql"
	"fmt"
	"sync"

	"github.com/opencasework/case-management-service/internal/system/config"
	"github.com/opencasework/case-management-service/internal/system/database/client"
	"github.com/opencasework/case-management-service/internal/system/log"
)

var (
	dbInstance client.DBClientInterface
	dbOnce     sync.Once
)

// DBProviderInterface defines the interface for getting database clients.
type DBProviderInterface interface {
	GetDBClient() (client.DBClientInterface, error)
	GetDBType() string
}

// DBProvider is the implementation of DBProviderInterface.
type DBProvider struct{}

// NewDBProvider creates a new instance of DBProvider.
func NewDBProvider() DBProviderInterface {

	return &DBProvider{}
}

// GetDBClient returns the shared database client, opening the connection on
// first use.
func (d *DBProvider) GetDBClient() (client.DBClientInterface, error) {

	var initErr error
	dbOnce.Do(func() {
		dataSource := config.GetCMSRuntime().Config.DataSource
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			dataSource.Hostname, dataSource.Port, dataSource.Username, dataSource.Password,
			dataSource.Name, dataSource.SSLMode)

		db, err := sql.Open(d.GetDBType(), dsn)
		if err != nil {
			initErr = fmt.Errorf("failed to connect to database: %v", err)
			return
		}
		if err := db.Ping(); err != nil {
			initErr = fmt.Errorf("failed to ping database: %v", err)
			return
		}

		log.GetLogger().Info("Connected to PostgreSQL")
		dbInstance = client.NewDBClient(db)
	})
	if initErr != nil {
		return nil, initErr
	}
	if dbInstance == nil {
		return nil, fmt.Errorf("database client is not initialized")
	}
	return dbInstance, nil
}

// GetDBType returns the configured database backend.
func (d *DBProvider) GetDBType() string {
	return "postgres"
}

// OverrideDBClient replaces the shared client. Intended for tests.
func OverrideDBClient(c client.DBClientInterface) {
	dbOnce.Do(func() {})
	dbInstance = c
}
