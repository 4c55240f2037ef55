package pagination

import "testing"

func TestPageRequest_DefaultsAndOffset(t *testing.T) {
	var p PageRequest
	p.Defaults()
	if p.Page != 1 || p.PageSize != 20 {
		t.Fatalf("unexpected defaults %+v", p)
	}
	if p.Offset() != 0 {
		t.Errorf("expected offset 0, got %d", p.Offset())
	}

	p = PageRequest{Page: 3, PageSize: 10}
	p.Defaults()
	if p.Offset() != 20 {
		t.Errorf("expected offset 20, got %d", p.Offset())
	}
}

func TestNewPageResponse(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		pageSize  int
		wantPages int
	}{
		{"empty", 0, 20, 0},
		{"exact", 40, 20, 2},
		{"partial", 41, 20, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPageResponse[string](nil, 1, tt.pageSize, tt.total)
			if resp.TotalPages != tt.wantPages {
				t.Errorf("expected %d pages, got %d", tt.wantPages, resp.TotalPages)
			}
			if resp.Data == nil {
				t.Error("nil data should become an empty slice")
			}
		})
	}
}
