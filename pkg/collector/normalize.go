package collector

import (
	"fmt"
	"time"

	errs "wbharvest/pkg/errors"
	"wbharvest/pkg/weibo"
)

// CreatedAtLayout is the fixed textual timestamp format the feed uses,
// e.g. "Tue Jan 02 10:00:00 +0800 2024".
const CreatedAtLayout = "Mon Jan 02 15:04:05 -0700 2006"

// Normalize converts a raw feed card into a validated domain Card.
// A record whose created_at string does not match the upstream layout
// is invalid and must not enter the pipeline.
func Normalize(raw weibo.Card) (Card, error) {
	createdAt, err := time.Parse(CreatedAtLayout, raw.Mblog.CreatedAt)
	if err != nil {
		return Card{}, errs.Wrap(errs.ErrorTypeTimestampParse,
			fmt.Sprintf("post %s: cannot parse created_at %q", raw.Mblog.ID, raw.Mblog.CreatedAt), err)
	}

	return Card{
		Scheme: raw.Scheme,
		Post: Post{
			ID:              raw.Mblog.ID,
			Text:            raw.Mblog.Text,
			RepostsCount:    raw.Mblog.RepostsCount,
			CommentsCount:   raw.Mblog.CommentsCount,
			ReprintCmtCount: raw.Mblog.ReprintCmtCount,
			AttitudesCount:  raw.Mblog.AttitudesCount,
			CreatedAt:       createdAt,
			IsRetweet:       raw.Mblog.IsRetweet(),
		},
	}, nil
}
