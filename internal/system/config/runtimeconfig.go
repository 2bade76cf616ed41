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

import "sync"

// CMSRuntime holds the runtime configuration for the case management server.
type CMSRuntime struct {
	CMSHome string `yaml:"cms_home"`
	Config  Config `yaml:"config"`
}

var (
	runtimeConfig *CMSRuntime
	once          sync.Once
)

// InitializeCMSRuntime initializes the CMSRuntime configuration.
func InitializeCMSRuntime(cmsHome string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &CMSRuntime{
			CMSHome: cmsHome,
			Config:  *config,
		}
	})

	return nil
}

// GetCMSRuntime returns the CMSRuntime configuration.
func GetCMSRuntime() *CMSRuntime {

	if runtimeConfig == nil {
		panic("CMSRuntime is not initialized")
	}
	return runtimeConfig
}
