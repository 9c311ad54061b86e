package tool

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestReadAllWithContextLimit(t *testing.T) {
	ctx := context.Background()

	data, err := ReadAllWithContext(ctx, strings.NewReader("12345"), 5)
	if err != nil || string(data) != "12345" {
		t.Fatalf("exact limit: %q, %v", data, err)
	}
	if _, err := ReadAllWithContext(ctx, strings.NewReader("123456"), 5); !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}
	if data, err := ReadAllWithContext(ctx, strings.NewReader("123456"), 0); err != nil || len(data) != 6 {
		t.Fatalf("unlimited read: %q, %v", data, err)
	}
}

func TestReadAllWithContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ReadAllWithContext(ctx, strings.NewReader("abc"), 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
