package model_test

import (
	"strings"
	"testing"

	"github.com/openhlxgo/hlx/internal/model"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"empty", "", true},
		{"ok", "Living Room", false},
		{"exactly16", "0123456789abcdef", false},
		{"tooLong", "0123456789abcdefg", true},
		{"controlByte", "bad\x01name", true},
		{"del", "bad\x7fname", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := model.ValidateName(tc.input)
			if tc.wantErr && err == nil {
				t.Fatalf("ValidateName(%q) = nil, want error", tc.input)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("ValidateName(%q) = %v, want nil", tc.input, err)
			}
		})
	}
}

func TestValidateNameInvalidUTF8(t *testing.T) {
	bad := string([]byte{0xff, 0xfe})
	if err := model.ValidateName(bad); err == nil {
		t.Fatal("ValidateName with invalid UTF-8 = nil, want error")
	}
}

func TestValidateNameBoundary(t *testing.T) {
	name := strings.Repeat("a", model.MaxNameBytes)
	if err := model.ValidateName(name); err != nil {
		t.Fatalf("ValidateName at exact boundary: unexpected err %v", err)
	}
}
