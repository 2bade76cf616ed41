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

package scripts

var InsertBeneficiary = map[string]string{
	"postgres": `INSERT INTO beneficiaries (beneficiary_id, org_handle, pseudonym, status, pii, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetBeneficiaryByID = map[string]string{
	"postgres": `SELECT beneficiary_id, org_handle, pseudonym, status, pii::text, created_at, updated_at
        FROM beneficiaries WHERE org_handle = $1 AND beneficiary_id = $2`,
}

var GetBeneficiariesByOrg = map[string]string{
	"postgres": `SELECT beneficiary_id, org_handle, pseudonym, status, pii::text, created_at, updated_at
        FROM beneficiaries WHERE org_handle = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
}

var UpdateBeneficiaryPII = map[string]string{
	"postgres": `UPDATE beneficiaries SET pii = $1, updated_at = $2
        WHERE org_handle = $3 AND beneficiary_id = $4`,
}

var UpdateBeneficiaryStatus = map[string]string{
	"postgres": `UPDATE beneficiaries SET status = $1, updated_at = $2
        WHERE org_handle = $3 AND beneficiary_id = $4`,
}

var InsertMatchKey = map[string]string{
	"postgres": `INSERT INTO match_keys (org_handle, key_type, key_hash, beneficiary_id, created_at)
        VALUES ($1, $2, $3, $4, $5)`,
}

var GetMatchKeysByBeneficiary = map[string]string{
	"postgres": `SELECT key_type, key_hash, beneficiary_id FROM match_keys
        WHERE org_handle = $1 AND beneficiary_id = $2`,
}

var InsertBeneficiaryMapping = map[string]string{
	"postgres": `INSERT INTO beneficiary_mappings (mapping_id, org_handle, form_template_id, fields, strategies, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetMappingByFormTemplate = map[string]string{
	"postgres": `SELECT mapping_id, org_handle, form_template_id, fields::text, strategies::text, created_at, updated_at
        FROM beneficiary_mappings WHERE org_handle = $1 AND form_template_id = $2`,
}

var GetMappingsByOrg = map[string]string{
	"postgres": `SELECT mapping_id, org_handle, form_template_id, fields::text, strategies::text, created_at, updated_at
        FROM beneficiary_mappings WHERE org_handle = $1 ORDER BY created_at DESC`,
}

var UpdateBeneficiaryMapping = map[string]string{
	"postgres": `UPDATE beneficiary_mappings SET fields = $1, strategies = $2, updated_at = $3
        WHERE org_handle = $4 AND form_template_id = $5`,
}

var DeleteBeneficiaryMapping = map[string]string{
	"postgres": `DELETE FROM beneficiary_mappings WHERE org_handle = $1 AND form_template_id = $2`,
}

var InsertAuditLog = map[string]string{
	"postgres": `INSERT INTO audit_logs (audit_id, org_handle, user_id, action, description, details, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetAuditLogsByOrg = map[string]string{
	"postgres": `SELECT audit_id, org_handle, user_id, action, description, details::text, created_at
        FROM audit_logs WHERE org_handle = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
}

var InsertFormResponse = map[string]string{
	"postgres": `INSERT INTO form_responses (response_id, org_handle, form_template_id, project_id, subproject_id, beneficiary_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetFormResponseByID = map[string]string{
	"postgres": `SELECT response_id, org_handle, form_template_id, project_id, subproject_id, beneficiary_id, created_at
        FROM form_responses WHERE org_handle = $1 AND response_id = $2`,
}

var InsertServiceDelivery = map[string]string{
	"postgres": `INSERT INTO service_deliveries (delivery_id, org_handle, response_id, beneficiary_id, project_id, service_type, delivered_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var InsertProject = map[string]string{
	"postgres": `INSERT INTO projects (project_id, org_handle, name, description, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`,
}

var GetProjectsByOrg = map[string]string{
	"postgres": `SELECT project_id, org_handle, name, description, status, created_at, updated_at
        FROM projects WHERE org_handle = $1 ORDER BY created_at DESC`,
}

var GetProjectByID = map[string]string{
	"postgres": `SELECT project_id, org_handle, name, description, status, created_at, updated_at
        FROM projects WHERE org_handle = $1 AND project_id = $2`,
}

var UpdateProjectStatus = map[string]string{
	"postgres": `UPDATE projects SET status = $1, updated_at = $2 WHERE org_handle = $3 AND project_id = $4`,
}

var InsertSubproject = map[string]string{
	"postgres": `INSERT INTO subprojects (subproject_id, project_id, name, status, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6)`,
}

var GetSubprojectsByProject = map[string]string{
	"postgres": `SELECT subproject_id, project_id, name, status, created_at, updated_at
        FROM subprojects WHERE project_id = $1 ORDER BY created_at DESC`,
}
