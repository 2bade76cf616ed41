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

// FormResponse links one submitted form payload to its resolved
// beneficiary and entity context. The raw payload itself lives in the
// document archive, not here.
type FormResponse struct {
	ResponseID     string `json:"response_id"`
	OrgHandle      string `json:"-"`
	FormTemplateID string `json:"form_template_id"`
	ProjectID      string `json:"project_id,omitempty"`
	SubprojectID   string `json:"subproject_id,omitempty"`
	BeneficiaryID  string `json:"beneficiary_id,omitempty"`
	CreatedAt      int64  `json:"created_at"`
}

// ServiceDelivery records one service rendered to a beneficiary through a
// submission.
type ServiceDelivery struct {
	DeliveryID    string `json:"delivery_id"`
	OrgHandle     string `json:"-"`
	ResponseID    string `json:"response_id"`
	BeneficiaryID string `json:"beneficiary_id,omitempty"`
	ProjectID     string `json:"project_id,omitempty"`
	ServiceType   string `json:"service_type"`
	DeliveredAt   int64  `json:"delivered_at"`
}

// SubmissionAPIRequest is the intake body.
type SubmissionAPIRequest struct {
	FormTemplateID string                 `json:"form_template_id"`
	ProjectID      string                 `json:"project_id,omitempty"`
	SubprojectID   string                 `json:"subproject_id,omitempty"`
	ServiceType    string                 `json:"service_type,omitempty"`
	Data           map[string]interface{} `json:"data"`
}

// SubmissionAPIResponse reports the outcome of intake. It exposes whether
// resolution created a new beneficiary but never any identity values.
type SubmissionAPIResponse struct {
	ResponseID         string `json:"response_id"`
	BeneficiaryID      string `json:"beneficiary_id,omitempty"`
	BeneficiaryCreated bool   `json:"beneficiary_created"`
	CreatedAt          int64  `json:"created_at"`
}
