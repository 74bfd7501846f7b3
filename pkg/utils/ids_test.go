package utils

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateUUIDv7(t *testing.T) {
	id := GenerateUUIDv7()
	if id == uuid.Nil {
		t.Fatal("expected non-nil uuid")
	}
	if id.Version() != 7 {
		t.Fatalf("expected version 7, got %d", id.Version())
	}
}

func TestPublicIDPrefixes(t *testing.T) {
	cases := []struct {
		gen    func() string
		prefix string
	}{
		{NewTransactionID, "FP"},
		{NewCustomerID, "CU"},
		{NewMerchantID, "MC"},
		{NewAgentID, "AG"},
	}
	for _, tc := range cases {
		id := tc.gen()
		if !strings.HasPrefix(id, tc.prefix) {
			t.Fatalf("expected prefix %s, got %s", tc.prefix, id)
		}
		if len(id) <= len(tc.prefix) {
			t.Fatalf("expected id body after prefix, got %s", id)
		}
	}
}
