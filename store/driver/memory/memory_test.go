package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skygeario/skygear-go/store"
	"github.com/skygeario/skygear-go/store/driver/memory"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if _, err := s.Get(ctx); !errors.Is(err, store.ErrTokenNotFound) {
		t.Errorf("Get() on empty store error = %v, want ErrTokenNotFound", err)
	}

	if err := s.Set(ctx, "tok1", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := s.Get(ctx)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "tok1" {
		t.Errorf("Get() = %v, want tok1", got)
	}

	if err := s.Delete(ctx); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx); !errors.Is(err, store.ErrTokenNotFound) {
		t.Errorf("Get() after Delete error = %v, want ErrTokenNotFound", err)
	}
}

func TestTokenStoreTTL(t *testing.T) {
	ctx := context.Background()
	s := memory.New()

	if err := s.Set(ctx, "tok1", time.Millisecond); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := s.Get(ctx); !errors.Is(err, store.ErrTokenNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrTokenNotFound", err)
	}
}
