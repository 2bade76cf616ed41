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

package services

import (
	"net/http"
	"strings"

	"github.com/opencasework/case-management-service/internal/beneficiary/handler"
)

type BeneficiaryService struct {
	beneficiaryHandler *handler.BeneficiaryHandler
}

func NewBeneficiaryService() *BeneficiaryService {
	return &BeneficiaryService{
		beneficiaryHandler: handler.NewBeneficiaryHandler(),
	}
}

// Route handles all tenant-aware beneficiary endpoints
func (s *BeneficiaryService) Route(w http.ResponseWriter, r *http.Request) {

	path := strings.TrimSuffix(r.URL.Path, "/")
	method := r.Method

	switch {
	case method == http.MethodGet && path == "/beneficiaries":
		s.beneficiaryHandler.GetBeneficiaries(w, r)

	case method == http.MethodGet && path == "/beneficiaries/demographics":
		s.beneficiaryHandler.GetDemographics(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/beneficiaries/") && strings.HasSuffix(path, "/pii"):
		s.beneficiaryHandler.GetBeneficiaryPII(w, r)

	case method == http.MethodGet && strings.HasPrefix(path, "/beneficiaries/"):
		s.beneficiaryHandler.GetBeneficiary(w, r)

	case method == http.MethodPost && path == "/beneficiaries":
		s.beneficiaryHandler.AddBeneficiary(w, r)

	case method == http.MethodPut && strings.HasPrefix(path, "/beneficiaries/"):
		s.beneficiaryHandler.UpdateBeneficiary(w, r)

	case method == http.MethodPatch && strings.HasPrefix(path, "/beneficiaries/") && strings.HasSuffix(path, "/status"):
		s.beneficiaryHandler.ChangeBeneficiaryStatus(w, r)

	default:
		http.NotFound(w, r)
	}
}
