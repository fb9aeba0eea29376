package config

import (
	"testing"
)

func TestSplitQuotedFields(t *testing.T) {
	in := `field'A' 'fieldB' fie'l\'d'C fieldD 'another field' fieldE`
	tgt := []string{"fieldA", "fieldB", "fiel'dC", "fieldD", "another field", "fieldE"}
	out := SplitQuotedFields(in, '\'')

	if len(tgt) != len(out) {
		t.Fatalf("expected %#v, got %#v (len mismatch)", tgt, out)
	}

	for i := range tgt {
		if tgt[i] != out[i] {
			t.Fatalf("expected %#v, got %#v (mismatch at %d)", tgt, out, i)
		}
	}
}

func TestSplitDoubleQuotedFields(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		expected []string
	}{
		{
			name:     "generic test case",
			in:       `field"A" "fieldB" fie"l'd"C "field\"D" "yet another field"`,
			expected: []string{"fieldA", "fieldB", "fiel'dC", "field\"D", "yet another field"},
		},
		{
			name:     "write command payload",
			in:       `"some bytes to write"`,
			expected: []string{"some bytes to write"},
		},
		{
			name:     "lots of spaces",
			in:       `    field"A"   `,
			expected: []string{"fieldA"},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := SplitQuotedFields(test.in, '"')
			if len(test.expected) != len(out) {
				t.Fatalf("expected %#v, got %#v (len mismatch)", test.expected, out)
			}
			for i := range test.expected {
				if test.expected[i] != out[i] {
					t.Fatalf("expected %#v, got %#v (mismatch at %d)", test.expected, out, i)
				}
			}
		})
	}
}
