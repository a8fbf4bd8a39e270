package weibo

import "encoding/json"

// FeedResponse is the JSON envelope returned by the container feed endpoint
type FeedResponse struct {
	Ok   int      `json:"ok"`
	Data FeedData `json:"data"`
}

type FeedData struct {
	Cards []Card `json:"cards"`
}

// Card pairs a post with the deep-link used to render it in a browser
type Card struct {
	Scheme string `json:"scheme"`
	Mblog  Mblog  `json:"mblog"`
}

// Mblog is a raw, loosely-typed post record as the feed returns it.
// CreatedAt stays a string here; parsing happens in the normalizer.
// RetweetedStatus is kept opaque: its presence is the only thing the
// pipeline cares about.
type Mblog struct {
	ID              string          `json:"id"`
	Text            string          `json:"text"`
	RepostsCount    int             `json:"reposts_count"`
	CommentsCount   int             `json:"comments_count"`
	ReprintCmtCount int             `json:"reprint_cmt_count"`
	AttitudesCount  int             `json:"attitudes_count"`
	CreatedAt       string          `json:"created_at"`
	RetweetedStatus json.RawMessage `json:"retweeted_status,omitempty"`
}

// IsRetweet reports whether the record carries a non-null retweeted_status
func (m *Mblog) IsRetweet() bool {
	return len(m.RetweetedStatus) > 0 && string(m.RetweetedStatus) != "null"
}
