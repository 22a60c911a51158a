package cache

import (
	"testing"
)

func strPtr(s string) *string { return &s }

func TestSerializeKey(t *testing.T) {
	s := NewDefaultKeySerializer()

	tests := []struct {
		name     string
		resource string
		params   []any
		want     string
	}{
		{
			name:     "no params",
			resource: "Categories",
			params:   nil,
			want:     "Categories",
		},
		{
			name:     "string params",
			resource: "Products",
			params:   []any{"desk", "available"},
			want:     "Products::desk::available",
		},
		{
			name:     "nil interface param",
			resource: "Products",
			params:   []any{nil, nil},
			want:     "Products::nil::nil",
		},
		{
			name:     "nil pointer param",
			resource: "Products",
			params:   []any{(*string)(nil), (*string)(nil)},
			want:     "Products::nil::nil",
		},
		{
			name:     "pointer param dereferenced",
			resource: "Products",
			params:   []any{strPtr("desk"), (*string)(nil)},
			want:     "Products::desk::nil",
		},
		{
			name:     "numeric params",
			resource: "Metrics",
			params:   []any{int64(7), true},
			want:     "Metrics::7::true",
		},
		{
			name:     "slice param",
			resource: "ProductDetails",
			params:   []any{[]string{"a", "b"}},
			want:     "ProductDetails::slice[2]:{a,b}",
		},
		{
			name:     "nil slice param",
			resource: "ProductDetails",
			params:   []any{[]string(nil)},
			want:     "ProductDetails::slice:nil",
		},
		{
			name:     "empty slice param",
			resource: "ProductDetails",
			params:   []any{[]string{}},
			want:     "ProductDetails::slice[0]:{}",
		},
		{
			name:     "struct falls back to json",
			resource: "Products",
			params:   []any{struct{ Search string }{Search: "desk"}},
			want:     `Products::json:{"Search":"desk"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.SerializeKey(tt.resource, tt.params...); got != tt.want {
				t.Fatalf("SerializeKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

// Unset filters must address the same entry regardless of how the caller
// spelled the nil.
func TestSerializeKeyNilSpellingsCollapse(t *testing.T) {
	s := NewDefaultKeySerializer()

	viaInterface := s.SerializeKey("Products", nil, nil)
	viaTypedNil := s.SerializeKey("Products", (*string)(nil), (*string)(nil))

	if viaInterface != viaTypedNil {
		t.Fatalf("nil spellings diverge: %q vs %q", viaInterface, viaTypedNil)
	}
}

func TestSerializeKeyIsStable(t *testing.T) {
	s := NewDefaultKeySerializer()

	first := s.SerializeKey("Products", strPtr("desk"), []string{"a", "b"})
	for i := 0; i < 100; i++ {
		if got := s.SerializeKey("Products", strPtr("desk"), []string{"a", "b"}); got != first {
			t.Fatalf("iteration %d produced %q, want %q", i, got, first)
		}
	}
}

func BenchmarkSerializeKey(b *testing.B) {
	s := NewDefaultKeySerializer()
	search := strPtr("desk")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.SerializeKey("Products", search, nil)
	}
}
