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

package errors

const errorPrefix = "CMS-"

var (
	// Server error codes

	DB_CLIENT_INIT = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Unable to initialize database client.",
	}

	EXECUTE_QUERY = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while executing database query.",
	}

	BEGIN_TRANSACTION = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while starting database transaction.",
	}

	COMMIT_TRANSACTION = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while committing database transaction.",
	}

	ENCRYPT_FIELD = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while encrypting identity field.",
	}

	DECRYPT_FIELD = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while decrypting identity field.",
	}

	RESOLVE_BENEFICIARY = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while resolving beneficiary identity.",
	}

	ADD_MATCH_KEY = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while adding match key.",
	}

	ADD_AUDIT_LOG = ErrorMessage{
		Code:    errorPrefix + "15009",
		Message: "Error while writing audit log entry.",
	}

	MARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15010",
		Message: "Error while marshalling JSON.",
	}

	UNMARSHAL_JSON = ErrorMessage{
		Code:    errorPrefix + "15011",
		Message: "Error while un-marshalling JSON.",
	}

	PARSING_ERROR = ErrorMessage{
		Code:    errorPrefix + "15012",
		Message: "Parsing token failed.",
	}

	ARCHIVE_SUBMISSION = ErrorMessage{
		Code:    errorPrefix + "15013",
		Message: "Error while archiving raw submission payload.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid body format.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:        errorPrefix + "11002",
		Message:     "Unauthorized",
		Description: "Authorization failure. Authorization information was invalid or missing from your request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:        errorPrefix + "11003",
		Message:     "Forbidden",
		Description: "You do not have permission to access this resource.",
	}

	BENEFICIARY_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11004",
		Message:     "Beneficiary not found.",
		Description: "No beneficiary record found for the given beneficiary_id.",
	}

	MAPPING_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11005",
		Message:     "Beneficiary mapping not found.",
		Description: "No beneficiary mapping defined for the provided form template.",
	}

	MAPPING_ALREADY_EXISTS = ErrorMessage{
		Code:        errorPrefix + "11006",
		Message:     "Beneficiary mapping already exists.",
		Description: "A beneficiary mapping is already defined for this form template.",
	}

	MAPPING_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Beneficiary mapping validation failed.",
	}

	PROJECT_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11008",
		Message:     "Project not found.",
		Description: "No project record found for the given project_id.",
	}

	SUBMISSION_NOT_FOUND = ErrorMessage{
		Code:        errorPrefix + "11009",
		Message:     "Form response not found.",
		Description: "No form response record found for the given response_id.",
	}

	INVALID_STATUS = ErrorMessage{
		Code:        errorPrefix + "11010",
		Message:     "Invalid status value.",
		Description: "Beneficiary status must be either 'active' or 'inactive'.",
	}
)
