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

package model

// BeneficiaryMapping describes, for one form template, which response
// fields carry which identity attributes and which match strategies are
// enabled. At most one mapping exists per form template.
type BeneficiaryMapping struct {
	MappingID      string            `json:"mapping_id"`
	OrgHandle      string            `json:"-"`
	FormTemplateID string            `json:"form_template_id"`
	Fields         map[string]string `json:"fields"`
	Strategies     []string          `json:"strategies"`
	CreatedAt      int64             `json:"created_at"`
	UpdatedAt      int64             `json:"updated_at"`
}

// BeneficiaryMappingAPIRequest is the request body for creating or
// replacing a mapping.
type BeneficiaryMappingAPIRequest struct {
	FormTemplateID string            `json:"form_template_id"`
	Fields         map[string]string `json:"fields"`
	Strategies     []string          `json:"strategies"`
}

// BeneficiaryMappingAPIResponse is the wire shape returned to clients.
type BeneficiaryMappingAPIResponse struct {
	MappingID      string            `json:"mapping_id"`
	FormTemplateID string            `json:"form_template_id"`
	Fields         map[string]string `json:"fields"`
	Strategies     []string          `json:"strategies"`
}
