package article

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Time
	}{
		{"milliseconds", `1764580500000`, time.UnixMilli(1764580500000)},
		{"seconds", `1764580500`, time.Unix(1764580500, 0)},
		{"numeric string", `"1764580500000"`, time.UnixMilli(1764580500000)},
		{"rfc3339", `"2025-12-01T09:15:00Z"`, time.Date(2025, 12, 1, 9, 15, 0, 0, time.UTC)},
		{"flask rfc1123", `"Mon, 01 Dec 2025 09:15:00 GMT"`, time.Date(2025, 12, 1, 9, 15, 0, 0, time.UTC)},
		{"plain date", `"2025-12-01"`, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)},
		{"seconds object", `{"seconds": 1764580500, "nanoseconds": 0}`, time.UnixMilli(1764580500 * 1000)},
		{"underscore seconds object", `{"_seconds": 1764580500}`, time.UnixMilli(1764580500 * 1000)},
		{"epoch", `0`, time.Unix(0, 0)},
		{"epoch string", `"0"`, time.Unix(0, 0)},
		{"before epoch", `-86400`, time.Unix(-86400, 0)},
		{"null", `null`, time.Time{}},
		{"garbage string", `"yesterday-ish"`, time.Time{}},
		{"empty object", `{}`, time.Time{}},
		{"boolean", `true`, time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d PublishDate
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &d))
			assert.True(t, tt.want.Equal(d.Time), "want %v, got %v", tt.want, d.Time)
		})
	}
}

func TestArticle_DecodesMissingPublishDate(t *testing.T) {
	var a Article
	require.NoError(t, json.Unmarshal([]byte(`{"article_id":"a1","title":"T"}`), &a))

	assert.Equal(t, "a1", a.ArticleID)
	assert.True(t, a.PublishDate.IsZero())
}

func TestFeed_MissingArticlesIsNil(t *testing.T) {
	var f Feed
	require.NoError(t, json.Unmarshal([]byte(`{"count":0}`), &f))
	assert.Nil(t, f.Articles)

	require.NoError(t, json.Unmarshal([]byte(`{"articles":[]}`), &f))
	require.NotNil(t, f.Articles)
	assert.Empty(t, *f.Articles)
}

func TestPublishDate_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(PublishDate{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))

	data, err = json.Marshal(PublishDate{time.Date(2025, 12, 1, 9, 15, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2025-12-01T09:15:00Z"`, string(data))
}
