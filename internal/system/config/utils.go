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

import (
	"os"
	"path"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the deployment file, expands environment references and
// unmarshals it into a Config.
func LoadConfig(cmsHome, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(cmsHome, filePath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read deployment configuration")
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse deployment configuration")
	}
	return &cfg, nil
}

// OverrideCMSRuntime replaces the runtime configuration. Intended for tests.
func OverrideCMSRuntime(conf Config) {
	runtimeConfig = &CMSRuntime{
		Config: conf,
	}
}
