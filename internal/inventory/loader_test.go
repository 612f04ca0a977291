package inventory

import (
	"context"
	"testing"
)

func TestLoader_Load_RejectsNonDecimalUserID(t *testing.T) {
	l := NewLoader(nil)

	_, err := l.Load(context.Background(), "not-a-number", 1000)
	if err == nil {
		t.Fatal("expected error for non-decimal user_id")
	}
}
