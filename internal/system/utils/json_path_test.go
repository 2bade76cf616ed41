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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func samplePayload() map[string]interface{} {
	return map[string]interface{}{
		"respondent": map[string]interface{}{
			"name": map[string]interface{}{
				"first": "Fatmire",
				"last":  "Berisha",
			},
			"age":    float64(34),
			"minor":  false,
			"height": 1.68,
		},
		"phone": "044123456",
	}
}

func TestGetByPath(t *testing.T) {
	data := samplePayload()

	value, ok := GetByPath(data, "respondent.name.first")
	assert.True(t, ok)
	assert.Equal(t, "Fatmire", value)

	value, ok = GetByPath(data, "phone")
	assert.True(t, ok)
	assert.Equal(t, "044123456", value)
}

func TestGetByPath_MissingSegments(t *testing.T) {
	data := samplePayload()

	_, ok := GetByPath(data, "respondent.name.middle")
	assert.False(t, ok)

	_, ok = GetByPath(data, "respondent.age.unit")
	assert.False(t, ok)

	_, ok = GetByPath(data, "household.size")
	assert.False(t, ok)

	_, ok = GetByPath(nil, "anything")
	assert.False(t, ok)

	_, ok = GetByPath(data, "")
	assert.False(t, ok)
}

func TestGetStringByPath(t *testing.T) {
	data := samplePayload()

	assert.Equal(t, "Fatmire", GetStringByPath(data, "respondent.name.first"))
	assert.Equal(t, "34", GetStringByPath(data, "respondent.age"))
	assert.Equal(t, "1.68", GetStringByPath(data, "respondent.height"))
	assert.Equal(t, "false", GetStringByPath(data, "respondent.minor"))
	assert.Equal(t, "", GetStringByPath(data, "respondent.name"))
	assert.Equal(t, "", GetStringByPath(data, "missing.path"))
}
