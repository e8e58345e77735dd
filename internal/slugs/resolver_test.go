package slugs

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"
)

func takenSet(slugs ...string) ExistsFunc {
	set := make(map[string]bool, len(slugs))
	for _, s := range slugs {
		set[s] = true
	}
	return func(ctx context.Context, slug string) (bool, error) {
		return set[slug], nil
	}
}

func TestResolveAcceptsFreeBase(t *testing.T) {
	got, err := Resolve(context.Background(), "Acme Shop", takenSet())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != "acme-shop" {
		t.Fatalf("expected base slug, got %q", got)
	}
}

func TestResolveSuffixOnCollision(t *testing.T) {
	got, err := Resolve(context.Background(), "Acme Shop", takenSet("acme-shop"))
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	pattern := regexp.MustCompile(`^acme-shop-[a-z0-9]{4}$`)
	if !pattern.MatchString(got) {
		t.Fatalf("expected suffixed slug, got %q", got)
	}
}

func TestResolveDistinctUnderCollision(t *testing.T) {
	taken := map[string]bool{"blue-mug": true}
	exists := func(ctx context.Context, slug string) (bool, error) {
		return taken[slug], nil
	}

	seen := map[string]bool{"blue-mug": true}
	for i := 0; i < 3; i++ {
		got, err := Resolve(context.Background(), "Blue Mug", exists)
		if err != nil {
			t.Fatalf("resolve %d: %v", i, err)
		}
		if seen[got] {
			t.Fatalf("resolver returned duplicate slug %q", got)
		}
		seen[got] = true
		taken[got] = true
	}
}

func TestResolveExhaustion(t *testing.T) {
	calls := 0
	everythingTaken := func(ctx context.Context, slug string) (bool, error) {
		calls++
		return true, nil
	}

	_, err := Resolve(context.Background(), "Acme Shop", everythingTaken)
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("expected ErrExhausted, got %v", err)
	}
	if calls != maxAttempts {
		t.Fatalf("expected %d existence checks, got %d", maxAttempts, calls)
	}
}

func TestResolveEmptyName(t *testing.T) {
	checked := false
	exists := func(ctx context.Context, slug string) (bool, error) {
		checked = true
		return false, nil
	}

	for _, name := range []string{"", "   ", "!!!", "日本語"} {
		_, err := Resolve(context.Background(), name, exists)
		if !errors.Is(err, ErrEmptySlug) {
			t.Fatalf("Resolve(%q): expected ErrEmptySlug, got %v", name, err)
		}
	}
	if checked {
		t.Fatal("existence check must not run for an empty slug")
	}
}

func TestResolvePropagatesScopeError(t *testing.T) {
	boom := errors.New("scope query failed")
	_, err := Resolve(context.Background(), "Acme Shop", func(ctx context.Context, slug string) (bool, error) {
		return false, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected scope error, got %v", err)
	}
}

func TestRandomSuffixShape(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := randomSuffix()
		if len(s) != suffixLen {
			t.Fatalf("suffix %q has length %d", s, len(s))
		}
		if s != strings.ToLower(s) {
			t.Fatalf("suffix %q not lowercase", s)
		}
	}
}
