package cursor_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandkit/brandkit/pkg/cursor"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	t.Run("round trip preserves every field", func(t *testing.T) {
		t.Parallel()

		original := cursor.Cursor{
			SortField: "created_at",
			SortValue: "2026-03-01T10:00:00Z",
			ID:        "a1f8c9e2-5b4d-4f3a-9c8b-7e6d5a4b3c2d",
			Direction: cursor.Desc,
			Timestamp: 1767225600000,
		}

		token, err := cursor.Encode(original)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		decoded, err := cursor.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, original, decoded)
	})

	t.Run("stamps timestamp when unset", func(t *testing.T) {
		t.Parallel()

		token, err := cursor.Encode(cursor.Cursor{
			SortField: "name",
			SortValue: "Alpha Jacket",
			ID:        "some-id",
			Direction: cursor.Asc,
		})
		require.NoError(t, err)

		decoded, err := cursor.Decode(token)
		require.NoError(t, err)
		assert.Positive(t, decoded.Timestamp)
	})

	t.Run("empty sort value is encodable", func(t *testing.T) {
		t.Parallel()

		token, err := cursor.Encode(cursor.Cursor{
			SortField: "category",
			ID:        "some-id",
			Direction: cursor.Asc,
		})
		require.NoError(t, err)

		decoded, err := cursor.Decode(token)
		require.NoError(t, err)
		assert.Empty(t, decoded.SortValue)
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name string
			c    cursor.Cursor
		}{
			{"no sort field", cursor.Cursor{ID: "x", Direction: cursor.Asc}},
			{"no id", cursor.Cursor{SortField: "name", Direction: cursor.Asc}},
			{"no direction", cursor.Cursor{SortField: "name", ID: "x"}},
			{"bad direction", cursor.Cursor{SortField: "name", ID: "x", Direction: "sideways"}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := cursor.Encode(tc.c)
				assert.ErrorIs(t, err, cursor.ErrNotEncodable)
			})
		}
	})
}

func TestDecode(t *testing.T) {
	t.Parallel()

	t.Run("rejects malformed tokens", func(t *testing.T) {
		t.Parallel()

		notJSON := base64.URLEncoding.EncodeToString([]byte("not json"))
		missingFields := base64.URLEncoding.EncodeToString([]byte(`{"sortField":"name"}`))

		cases := []struct {
			name  string
			token string
		}{
			{"empty string", ""},
			{"not base64", "!!!not-base64!!!"},
			{"not json", notJSON},
			{"missing fields", missingFields},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				_, err := cursor.Decode(tc.token)
				assert.ErrorIs(t, err, cursor.ErrInvalidCursor)
			})
		}
	})
}

func TestDirection(t *testing.T) {
	t.Parallel()

	t.Run("reverse flips", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, cursor.Desc, cursor.Asc.Reverse())
		assert.Equal(t, cursor.Asc, cursor.Desc.Reverse())
	})

	t.Run("valid accepts only asc and desc", func(t *testing.T) {
		t.Parallel()

		assert.True(t, cursor.Asc.Valid())
		assert.True(t, cursor.Desc.Valid())
		assert.False(t, cursor.Direction("").Valid())
		assert.False(t, cursor.Direction("ASC").Valid())
	})
}
