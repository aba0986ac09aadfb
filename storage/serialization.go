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


package storage

import (
	"fmt"

	"github.com/poiesic/mailidx/core"
)

// MarshalRunState serializes a RunState to bytes.
func MarshalRunState(state *core.RunState) []byte {
	buf := make([]byte, core.RunStateMUS.Size(*state))
	core.RunStateMUS.Marshal(*state, buf)
	return buf
}

// UnmarshalRunState deserializes a RunState from bytes.
func UnmarshalRunState(data []byte) (*core.RunState, error) {
	state, _, err := core.RunStateMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSerializationFailed, err)
	}
	return &state, nil
}
