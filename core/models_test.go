package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "Product Dimensions",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "long content",
			content:  "A much longer token that should still hash to the same ID every time",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("ProductDimensions")
	id2 := IDFromContent("ShippingWeight")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestProductRecord_ProductID(t *testing.T) {
	tests := []struct {
		name   string
		record ProductRecord
		want   string
	}{
		{
			name:   "first row",
			record: ProductRecord{Index: 0, Name: "Widget"},
			want:   "product_0",
		},
		{
			name:   "later row",
			record: ProductRecord{Index: 1042, Name: "Gadget"},
			want:   "product_1042",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.record.ProductID()
			if got != tt.want {
				t.Errorf("ProductRecord.ProductID() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProductRecord_ProductID_StableAcrossRuns(t *testing.T) {
	r := ProductRecord{Index: 7, Name: "Widget"}
	first := r.ProductID()

	// Mutating everything except the index must not change the identity.
	r.Name = "Renamed"
	r.Categories = []string{"Toys"}
	r.Specs = map[string]string{"color": "red"}

	if r.ProductID() != first {
		t.Errorf("ProductRecord.ProductID() changed after attribute updates: %v vs %v", r.ProductID(), first)
	}
}

func TestRequiredColumns(t *testing.T) {
	cols := RequiredColumns()

	if len(cols) != 2 {
		t.Fatalf("RequiredColumns() returned %d columns, want 2", len(cols))
	}
	if cols[0] != ColumnName {
		t.Errorf("RequiredColumns()[0] = %v, want %v", cols[0], ColumnName)
	}
	if cols[1] != ColumnParsedSpecs {
		t.Errorf("RequiredColumns()[1] = %v, want %v", cols[1], ColumnParsedSpecs)
	}
}
