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
	"fmt"
	"strings"
)

// GetByPath walks a dot-separated path into arbitrarily nested JSON data.
// A missing segment yields (nil, false), never an error. It is a narrow
// lookup helper, not a JSON-path engine.
func GetByPath(data map[string]interface{}, dottedPath string) (interface{}, bool) {

	if data == nil || dottedPath == "" {
		return nil, false
	}

	segments := strings.Split(dottedPath, ".")
	var current interface{} = data
	for _, segment := range segments {
		node, ok := current.(map[string]interface{})
		if !ok {
			return nil, false
		}
		current, ok = node[segment]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

// GetStringByPath resolves a path and renders scalar values as strings.
// Missing paths and nil values yield the empty string.
func GetStringByPath(data map[string]interface{}, dottedPath string) string {

	value, ok := GetByPath(data, dottedPath)
	if !ok || value == nil {
		return ""
	}
	switch v := value.(type) {
	case string:
		return v
	case float64:
		// JSON numbers decode as float64; render integers without a
		// trailing fraction.
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%v", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return ""
	}
}
