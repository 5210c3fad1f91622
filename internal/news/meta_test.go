// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package news

import "testing"

func TestNewPageMeta(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		total         int
		wantPageCount int
		wantHasNext   bool
	}{
		{"last partial page", 2, 10, 15, 2, false},
		{"first of two", 1, 10, 15, 2, true},
		{"empty result", 1, 10, 0, 0, false},
		{"exact fit", 2, 5, 10, 2, false},
		{"single item", 1, 20, 1, 1, false},
		{"page beyond range", 9, 10, 15, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewPageMeta(tt.page, tt.limit, tt.total)
			if m.PageCount != tt.wantPageCount {
				t.Errorf("pageCount: got %d, want %d", m.PageCount, tt.wantPageCount)
			}
			if m.HasNext != tt.wantHasNext {
				t.Errorf("hasNext: got %v, want %v", m.HasNext, tt.wantHasNext)
			}
			if m.Page != tt.page || m.Limit != tt.limit || m.Total != tt.total {
				t.Error("inputs must be echoed unchanged")
			}
		})
	}
}
