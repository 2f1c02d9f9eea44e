package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"a", "b", 1},
		{"ab", "abc", 1},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"Hello", "hello", 1},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b))
			assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "symmetry")
		})
	}
}

func TestNormalizeIdent(t *testing.T) {
	for in, want := range map[string]string{
		"OrderID":       "orderid",
		"order_id":      "orderid",
		"order-id":      "orderid",
		"XMLParser":     "xmlparser",
		"order_item-ID": "orderitemid",
		"":              "",
	} {
		assert.Equal(t, want, NormalizeIdent(in), in)
	}
}

func TestTokenizeIdent(t *testing.T) {
	assert.Equal(t, []string{"get", "http", "response"}, TokenizeIdent("getHTTPResponse"))
	assert.Equal(t, []string{"xml", "parser"}, TokenizeIdent("XMLParser"))
	assert.Equal(t, []string{"order", "id"}, TokenizeIdent("order_ID"))
	assert.Nil(t, TokenizeIdent(""))
}

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("OrderID", "order_id"), 1e-9)
	assert.InDelta(t, 0.75, Similarity("Size", "Sise"), 1e-9)
	assert.InDelta(t, 1.0, Similarity("", ""), 1e-9)
}

func TestSuggest(t *testing.T) {
	fields := []string{"Name", "Size", "Tags", "Sizes", "Origin"}

	got := Suggest("Sise", fields)
	if assert.NotEmpty(t, got) {
		assert.Equal(t, "Size", got[0])
	}

	assert.Equal(t, []string{"Tags"}, Suggest("tags", fields))
	assert.Empty(t, Suggest("Completely", fields))
	assert.Empty(t, Suggest("Name", []string{"Name"}))
}
