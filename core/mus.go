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

import (
	"github.com/mus-format/mus-go/varint"
)

// RunStateMUS serializes RunState with the MUS format.
// Fields are encoded in declaration order as varints.
var RunStateMUS = runStateMUS{}

type runStateMUS struct{}

func (s runStateMUS) Marshal(v RunState, bs []byte) (n int) {
	n = varint.Int64.Marshal(v.Watermark, bs)
	n += varint.Int64.Marshal(v.Processed, bs[n:])
	n += varint.Int64.Marshal(v.Errored, bs[n:])
	n += varint.Int64.Marshal(v.Total, bs[n:])
	n += varint.Int64.Marshal(v.CompletedAt, bs[n:])
	return n
}

func (s runStateMUS) Unmarshal(bs []byte) (v RunState, n int, err error) {
	var n1 int
	v.Watermark, n, err = varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Processed, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Errored, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Total, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CompletedAt, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s runStateMUS) Size(v RunState) (size int) {
	size = varint.Int64.Size(v.Watermark)
	size += varint.Int64.Size(v.Processed)
	size += varint.Int64.Size(v.Errored)
	size += varint.Int64.Size(v.Total)
	size += varint.Int64.Size(v.CompletedAt)
	return size
}
