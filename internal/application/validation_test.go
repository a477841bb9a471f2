package application

import (
	"errors"
	"strings"
	"testing"

	"rapbook/internal/domain"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "name",
			value:     "Verses",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "name",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "name",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
				if !errors.Is(err, ErrValidation) {
					t.Error("expected error to match ErrValidation")
				}
			}
		})
	}
}

func TestValidateIDKind(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		id        string
		expected  domain.IDKind
		wantErr   bool
	}{
		{
			name:      "valid rap ID",
			fieldName: "rapID",
			id:        "rap_123",
			expected:  domain.IDKindRap,
		},
		{
			name:      "valid folder ID",
			fieldName: "folderID",
			id:        "folder_123",
			expected:  domain.IDKindFolder,
		},
		{
			name:      "folder ID where rap expected",
			fieldName: "rapID",
			id:        "folder_123",
			expected:  domain.IDKindRap,
			wantErr:   true,
		},
		{
			name:      "invalid ID format",
			fieldName: "folderID",
			id:        "invalid",
			expected:  domain.IDKindFolder,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIDKind(tt.fieldName, tt.id, tt.expected)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateIDKind() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestToValidationError(t *testing.T) {
	err := toValidationError(domain.Folder{ID: "folder_1", Name: strings.Repeat("x", 60)}.Validate())

	var valErr *ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if valErr.Field != "name" {
		t.Errorf("expected field name, got %s", valErr.Field)
	}
	if !strings.Contains(valErr.Message, "folder name") {
		t.Errorf("expected readable message, got %q", valErr.Message)
	}

	if toValidationError(nil) != nil {
		t.Error("expected nil for nil input")
	}

	plain := errors.New("boom")
	if toValidationError(plain) != plain {
		t.Error("expected non-validation errors to pass through")
	}
}

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
	}{
		{"not found", &NotFoundError{Kind: "rap", ID: "rap_1"}, ErrNotFound},
		{"not empty", &NotEmptyError{FolderID: "folder_1", Raps: 1}, ErrNotEmpty},
		{"invalid move", &MoveError{SourceID: "folder_1", DestID: "folder_2", Reason: "cycle"}, ErrInvalidMove},
		{"invalid move is a validation error", &MoveError{SourceID: "folder_1", Reason: "cycle"}, ErrValidation},
		{"storage", &StorageError{Op: "set", Key: "k", Err: errors.New("disk full")}, ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.target) {
				t.Errorf("expected %v to match %v", tt.err, tt.target)
			}
		})
	}

	cause := errors.New("disk full")
	if !errors.Is(&StorageError{Op: "set", Key: "k", Err: cause}, cause) {
		t.Error("expected StorageError to unwrap its cause")
	}
	if got := (&MoveError{SourceID: "folder_1"}).Error(); !strings.Contains(got, "root") {
		t.Errorf("expected empty destination to read as root, got %q", got)
	}
}
