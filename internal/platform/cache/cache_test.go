// internal/platform/cache/cache_test.go
package cache

import "testing"

func TestCache(t *testing.T) {
	c := New()

	if _, ok := c.Get(ProductsListKey); ok {
		t.Fatal("empty cache must miss")
	}

	c.Set(ProductsListKey, []string{"a"})
	v, ok := c.Get(ProductsListKey)
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if list := v.([]string); len(list) != 1 || list[0] != "a" {
		t.Fatalf("wrong cached value: %v", v)
	}

	c.Invalidate(ProductsListKey)
	if _, ok := c.Get(ProductsListKey); ok {
		t.Fatal("expected miss after Invalidate")
	}

	// 存在しないキーの invalidate は no-op
	c.Invalidate("nope", ProductsListKey)
}
