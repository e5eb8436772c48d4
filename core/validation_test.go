package core

import (
	"errors"
	"testing"
)

func TestValidateColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		wantErr error
	}{
		{
			name:    "all required columns present",
			columns: []string{"Product Name", "Description", "Selling Price", "Category", "Parsed Specifications"},
			wantErr: nil,
		},
		{
			name:    "only required columns",
			columns: []string{"Product Name", "Parsed Specifications"},
			wantErr: nil,
		},
		{
			name:    "missing name column",
			columns: []string{"Description", "Parsed Specifications"},
			wantErr: ErrMissingColumns,
		},
		{
			name:    "missing specifications column",
			columns: []string{"Product Name", "Category"},
			wantErr: ErrMissingColumns,
		},
		{
			name:    "empty header",
			columns: nil,
			wantErr: ErrMissingColumns,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateColumns(tt.columns)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateColumns() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateColumns() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateColumns() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateColumns_ListsEveryMissingColumn(t *testing.T) {
	err := ValidateColumns([]string{"Category"})
	if err == nil {
		t.Fatal("ValidateColumns() error = nil, want error")
	}

	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("ValidateColumns() error type = %T, want *MissingColumnsError", err)
	}

	if len(missing.Columns) != 2 {
		t.Errorf("MissingColumnsError.Columns = %v, want both required columns", missing.Columns)
	}
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  *ProductRecord
		wantErr error
	}{
		{
			name: "valid record",
			record: &ProductRecord{
				Index: 0,
				Name:  "Widget",
				Specs: map[string]string{"color": "red"},
			},
			wantErr: nil,
		},
		{
			name: "valid record with empty specs",
			record: &ProductRecord{
				Index: 1,
				Name:  "Widget",
				Specs: map[string]string{},
			},
			wantErr: nil,
		},
		{
			name: "valid record with no categories",
			record: &ProductRecord{
				Index:      2,
				Name:       "Widget",
				Categories: nil,
				Specs:      map[string]string{},
			},
			wantErr: nil,
		},
		{
			name:    "nil record",
			record:  nil,
			wantErr: ErrInvalidRecord,
		},
		{
			name: "empty name",
			record: &ProductRecord{
				Index: 3,
				Name:  "",
				Specs: map[string]string{},
			},
			wantErr: ErrEmptyName,
		},
		{
			name: "nil specs",
			record: &ProductRecord{
				Index: 4,
				Name:  "Widget",
				Specs: nil,
			},
			wantErr: ErrNilSpecs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRecord(tt.record)

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateRecord() error = %v, want nil", err)
				}
				return
			}

			if err == nil {
				t.Errorf("ValidateRecord() error = nil, want %v", tt.wantErr)
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateRecord() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateRecords(t *testing.T) {
	valid := &ProductRecord{Name: "Widget", Specs: map[string]string{}}
	broken := &ProductRecord{Name: "", Specs: map[string]string{}}

	t.Run("all valid", func(t *testing.T) {
		err := ValidateRecords([]*ProductRecord{valid, valid, valid})
		if err != nil {
			t.Errorf("ValidateRecords() error = %v, want nil", err)
		}
	})

	t.Run("empty batch", func(t *testing.T) {
		err := ValidateRecords(nil)
		if err != nil {
			t.Errorf("ValidateRecords() error = %v, want nil", err)
		}
	})

	t.Run("reports failing index", func(t *testing.T) {
		err := ValidateRecords([]*ProductRecord{valid, broken, valid})
		if err == nil {
			t.Fatal("ValidateRecords() error = nil, want error")
		}
		if !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("ValidateRecords() error = %v, want %v", err, ErrInvalidRecord)
		}
		if got := err.Error(); got[:9] != "record 1:" {
			t.Errorf("ValidateRecords() error = %q, want index 1 reported", got)
		}
	})
}
