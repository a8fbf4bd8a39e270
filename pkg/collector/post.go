package collector

import "time"

// Post is a validated, immutable post record
type Post struct {
	ID              string
	Text            string
	RepostsCount    int
	CommentsCount   int
	ReprintCmtCount int
	AttitudesCount  int
	CreatedAt       time.Time
	IsRetweet       bool
}

// Card pairs a Post with the deep-link used to render it in a browser
type Card struct {
	Scheme string
	Post   Post
}
