// Copyright 2026 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "strconv"

// EmptyFingerprint is the fixed fingerprint of empty text.
const EmptyFingerprint = "0"

// Fingerprint returns a cheap deterministic digest of thread text, used to
// detect content changes between runs. It is a polynomial rolling hash
// truncated to a signed 32-bit accumulator at every step; collisions are
// tolerated and integrity is not a goal, only change detection.
func Fingerprint(text string) string {
	if text == "" {
		return EmptyFingerprint
	}
	var h int32
	for _, r := range text {
		h = (h << 5) - h + int32(r) // h*31 + r, wrapping at 32 bits
	}
	return strconv.FormatInt(int64(h), 10)
}
