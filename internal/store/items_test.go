package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemsCodec(t *testing.T) {
	t.Parallel()
	cases := map[string][]string{
		"":                 {},
		"apple":            {"apple"},
		"apple,banana":     {"apple", "banana"},
		`mac\, cheese,tea`: {"mac, cheese", "tea"},
		`c:\\temp,x`:       {`c:\temp`, "x"},
		"apple,,banana":    {"apple", "", "banana"},
	}
	for encoded, items := range cases {
		assert.Equal(t, items, DecodeItems(encoded), "decode %q", encoded)
		if len(items) > 0 {
			assert.Equal(t, encoded, EncodeItems(items), "encode %v", items)
		}
	}
}

func TestItemsCodecRoundTripsArbitraryNames(t *testing.T) {
	t.Parallel()
	items := []string{"a,b", `\`, `\,`, "plain", "émincé de veau"}
	assert.Equal(t, items, DecodeItems(EncodeItems(items)))
}
