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

package crypto

import "crypto/rand"

// pseudonymAlphabet avoids visually ambiguous characters so pseudonyms can
// be read back over the phone.
const pseudonymAlphabet = "ABCDEFGHJKMNPQRSTVWXYZ23456789"

const pseudonymLength = 8

// NewPseudonym generates a random display token for a beneficiary. It is
// not derived from any identity value.
func NewPseudonym() (string, error) {
	buf := make([]byte, pseudonymLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := make([]byte, pseudonymLength)
	for i, b := range buf {
		token[i] = pseudonymAlphabet[int(b)%len(pseudonymAlphabet)]
	}
	return "BEN-" + string(token), nil
}
