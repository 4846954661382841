package favorites

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/desertthunder/friendbook/internal/shared"
	"github.com/desertthunder/friendbook/internal/storage"
	tu "github.com/desertthunder/friendbook/internal/testing"
)

func newTestStore(b storage.Bridge) *Store {
	return NewStore(b, shared.NewLogger(&bytes.Buffer{}))
}

func TestKeyForUser(t *testing.T) {
	tc := []struct {
		id   int64
		want string
	}{
		{1, "favorites_v1_user_1"},
		{0, "favorites_v1_user_0"},
		{-4, "favorites_v1_user_-4"},
	}

	for _, tt := range tc {
		if got := KeyForUser(tt.id); got != tt.want {
			t.Errorf("KeyForUser(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestGetFavoriteIDs(t *testing.T) {
	ctx := context.Background()

	t.Run("untouched user", func(t *testing.T) {
		s := newTestStore(storage.NewMemoryBridge())
		got := s.GetFavoriteIDs(ctx, 1)
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	tc := []struct {
		name string
		raw  string
		want []int64
	}{
		{"not json", "not-json", []int64{}},
		{"object", `{"ids":[1]}`, []int64{}},
		{"number", "42", []int64{}},
		{"null", "null", []int64{}},
		{"empty array", "[]", []int64{}},
		{"integers", "[3,1,2]", []int64{3, 1, 2}},
		{"mixed", `[1,"2",3.5,true,null,{},4]`, []int64{1, 4}},
		{"whole-valued floats", "[1.0,2e0,3,-4.00]", []int64{1, 2, 3, -4}},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			b := storage.NewMemoryBridge()
			b.Set(ctx, KeyForUser(1), tt.raw)

			got := newTestStore(b).GetFavoriteIDs(ctx, 1)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("GetFavoriteIDs with %q = %#v, want %#v", tt.raw, got, tt.want)
			}
		})
	}

	t.Run("read error", func(t *testing.T) {
		b := tu.NewFlakyBridge()
		b.GetErr = errors.New("locked")

		got := newTestStore(b).GetFavoriteIDs(ctx, 1)
		if len(got) != 0 {
			t.Errorf("expected empty favorites, got %v", got)
		}
	})

	t.Run("users are isolated", func(t *testing.T) {
		s := newTestStore(storage.NewMemoryBridge())
		s.ToggleFavoriteID(ctx, 1, 10)
		s.ToggleFavoriteID(ctx, 2, 20)

		if got := s.GetFavoriteIDs(ctx, 1); !reflect.DeepEqual(got, []int64{10}) {
			t.Errorf("expected user 1 favorites [10], got %v", got)
		}
		if got := s.GetFavoriteIDs(ctx, 2); !reflect.DeepEqual(got, []int64{20}) {
			t.Errorf("expected user 2 favorites [20], got %v", got)
		}
	})
}

func TestToggleFavoriteID(t *testing.T) {
	ctx := context.Background()

	t.Run("add then remove", func(t *testing.T) {
		b := storage.NewMemoryBridge()
		s := newTestStore(b)

		res1, err := s.ToggleFavoriteID(ctx, 1, 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(res1, []int64{42}) {
			t.Errorf("expected [42], got %v", res1)
		}
		if raw, _, _ := b.Get(ctx, KeyForUser(1)); raw != "[42]" {
			t.Errorf("expected stored [42], got %q", raw)
		}

		res2, err := s.ToggleFavoriteID(ctx, 1, 42)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(res2, []int64{}) {
			t.Errorf("expected [], got %v", res2)
		}
		if raw, _, _ := b.Get(ctx, KeyForUser(1)); raw != "[]" {
			t.Errorf("expected stored [], got %q", raw)
		}
	})

	t.Run("double toggle restores membership", func(t *testing.T) {
		b := storage.NewMemoryBridge()
		b.Set(ctx, KeyForUser(5), "[7,8,9]")
		s := newTestStore(b)

		before := s.GetFavoriteIDs(ctx, 5)
		for _, id := range []int64{8, 100} {
			s.ToggleFavoriteID(ctx, 5, id)
			s.ToggleFavoriteID(ctx, 5, id)

			after := s.GetFavoriteIDs(ctx, 5)
			slices.Sort(before)
			slices.Sort(after)
			if !reflect.DeepEqual(before, after) {
				t.Errorf("toggling %d twice changed membership: %v -> %v", id, before, after)
			}
		}
	})

	t.Run("removes exactly one occurrence", func(t *testing.T) {
		b := storage.NewMemoryBridge()
		b.Set(ctx, KeyForUser(1), "[4,4,5]")

		got, err := newTestStore(b).ToggleFavoriteID(ctx, 1, 4)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(got, []int64{4, 5}) {
			t.Errorf("expected [4 5], got %v", got)
		}
	})

	t.Run("recovers from corrupt data", func(t *testing.T) {
		b := storage.NewMemoryBridge()
		b.Set(ctx, KeyForUser(1), "not-json")

		got, err := newTestStore(b).ToggleFavoriteID(ctx, 1, 3)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(got, []int64{3}) {
			t.Errorf("expected [3], got %v", got)
		}
	})

	t.Run("zero and negative ids", func(t *testing.T) {
		s := newTestStore(storage.NewMemoryBridge())

		got, err := s.ToggleFavoriteID(ctx, 0, -1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !reflect.DeepEqual(got, []int64{-1}) {
			t.Errorf("expected [-1], got %v", got)
		}
	})

	t.Run("read error leaves stored favorites alone", func(t *testing.T) {
		b := tu.NewFlakyBridge()
		b.Values[KeyForUser(1)] = "[1,2,3]"
		b.GetErr = errors.New("connection reset")

		got, err := newTestStore(b).ToggleFavoriteID(ctx, 1, 9)
		if err == nil || !strings.Contains(err.Error(), "failed to read favorites") {
			t.Fatalf("expected read error, got %v", err)
		}
		if !errors.Is(err, b.GetErr) {
			t.Errorf("expected the bridge error to be wrapped, got %v", err)
		}
		if got != nil {
			t.Errorf("expected no ids, got %v", got)
		}
		if b.Values[KeyForUser(1)] != "[1,2,3]" {
			t.Errorf("expected stored favorites untouched, got %q", b.Values[KeyForUser(1)])
		}
		if b.Sets != 0 {
			t.Errorf("expected no writes, got %d", b.Sets)
		}
	})

	t.Run("write error", func(t *testing.T) {
		b := tu.NewFlakyBridge()
		b.SetErr = errors.New("quota exceeded")

		if _, err := newTestStore(b).ToggleFavoriteID(ctx, 1, 1); err == nil {
			t.Error("expected error when the write fails")
		}
	})

	t.Run("concurrent toggles keep every id", func(t *testing.T) {
		s := newTestStore(storage.NewMemoryBridge())

		done := make(chan struct{})
		for i := range 20 {
			go func() {
				s.ToggleFavoriteID(ctx, 1, int64(i))
				done <- struct{}{}
			}()
		}
		for range 20 {
			<-done
		}

		if got := s.GetFavoriteIDs(ctx, 1); len(got) != 20 {
			t.Errorf("expected 20 favorites, got %d: %v", len(got), got)
		}
	})
}
