package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateVectorRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *VectorRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &VectorRecord{
				ID:     "thread-1",
				Values: []float32{0.1, 0.2},
			},
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidVectorRecord,
		},
		{
			name: "missing id",
			record: &VectorRecord{
				Values: []float32{0.1},
			},
			wantErr: ErrEmptyRecordID,
		},
		{
			name: "missing values",
			record: &VectorRecord{
				ID: "thread-1",
			},
			wantErr: ErrEmptyVector,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVectorRecord(tt.record)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
