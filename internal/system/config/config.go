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

package config

type AddrConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

type LogConfig struct {
	LogLevel string `yaml:"log_level"`
}

type AuthConfig struct {
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
}

// AuthServerConfig carries the token validation settings and the scope map
// required per operation.
type AuthServerConfig struct {
	Audience       string              `yaml:"audience"`
	RequiredScopes map[string][]string `yaml:"required_scopes"`
}

// PrivacyConfig holds the key material for PII protection and the roles that
// are allowed to see decrypted identity fields. Keys are hex encoded in the
// deployment file and expanded from the environment.
type PrivacyConfig struct {
	HMACKeyHex         string   `yaml:"hmac_key"`
	AESKeyHex          string   `yaml:"aes_key"`
	PrivilegedPIIRoles []string `yaml:"pii_privileged_roles"`
}

type DataSourceConfig struct {
	Hostname string `yaml:"hostname"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// DocumentStoreConfig holds the connection settings for the raw submission
// archive.
type DocumentStoreConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type Config struct {
	Addr          AddrConfig          `yaml:"addr"`
	Log           LogConfig           `yaml:"log"`
	Auth          AuthConfig          `yaml:"auth"`
	AuthServer    AuthServerConfig    `yaml:"auth_server"`
	Privacy       PrivacyConfig       `yaml:"privacy"`
	DataSource    DataSourceConfig    `yaml:"datasource"`
	DocumentStore DocumentStoreConfig `yaml:"document_store"`
}
