package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransferOptions_WithDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   TransferOptions
		want TransferOptions
	}{
		{
			name: "zero value gets all defaults",
			in:   TransferOptions{},
			want: TransferOptions{
				Parallelism:  DefaultParallelism,
				Deduplicator: DefaultDeduplicator,
				Validators:   []string{DefaultValidator},
			},
		},
		{
			name: "parallelism clamped to minimum",
			in:   TransferOptions{Parallelism: -5},
			want: TransferOptions{
				Parallelism:  MinParallelism,
				Deduplicator: DefaultDeduplicator,
				Validators:   []string{DefaultValidator},
			},
		},
		{
			name: "parallelism clamped to maximum",
			in:   TransferOptions{Parallelism: 64},
			want: TransferOptions{
				Parallelism:  MaxParallelism,
				Deduplicator: DefaultDeduplicator,
				Validators:   []string{DefaultValidator},
			},
		},
		{
			name: "explicit choices kept",
			in:   TransferOptions{Parallelism: 5, Deduplicator: "fuzzy", Validators: []string{"integrity"}},
			want: TransferOptions{Parallelism: 5, Deduplicator: "fuzzy", Validators: []string{"integrity"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.WithDefaults())
		})
	}
}
