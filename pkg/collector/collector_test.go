package collector

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "wbharvest/pkg/errors"
	"wbharvest/pkg/retry"
	"wbharvest/pkg/weibo"
)

// stubFeed replays canned pages and records how often it was called
type stubFeed struct {
	pages   [][]weibo.Card
	errs    []error
	calls   int
	maxPage int
}

func (s *stubFeed) FetchPage(ctx context.Context, page int) ([]weibo.Card, error) {
	s.calls++
	if page > s.maxPage {
		s.maxPage = page
	}
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return nil, err
		}
	}
	if page-1 < len(s.pages) {
		return s.pages[page-1], nil
	}
	return nil, nil
}

var testNow = time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC)

func rawCard(id string, createdAt time.Time, retweet bool) weibo.Card {
	mblog := weibo.Mblog{
		ID:        id,
		CreatedAt: createdAt.Format(CreatedAtLayout),
	}
	if retweet {
		mblog.RetweetedStatus = []byte(`{"id":"orig"}`)
	}
	return weibo.Card{
		Scheme: "https://m.weibo.cn/status/" + id,
		Mblog:  mblog,
	}
}

func newTestCollector(client FeedClient, limit int) *Collector {
	window := NewWindow(testNow, 3, 7, time.UTC)
	return New(client, window, limit, 0, nil, nil)
}

func inWindow(day int) time.Time {
	return time.Date(2024, 1, day, 9, 0, 0, 0, time.UTC)
}

func TestCollectStopsMidPageOnCutoff(t *testing.T) {
	// Cutoff boundary is Jan 10; the third post crosses it and the
	// fourth must never be processed.
	feed := &stubFeed{pages: [][]weibo.Card{{
		rawCard("1", inWindow(16), false),
		rawCard("2", inWindow(14), false),
		rawCard("3", inWindow(5), false),
		rawCard("4", inWindow(15), false),
	}}}

	cards, err := newTestCollector(feed, 100).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(cards) != 3 {
		t.Fatalf("Expected 3 cards, got %d", len(cards))
	}
	if cards[2].Post.ID != "3" {
		t.Errorf("Expected cutoff post to be included, got %s", cards[2].Post.ID)
	}
	if feed.calls != 1 {
		t.Errorf("Expected a single page fetch, got %d", feed.calls)
	}
}

func TestCollectHonorsLimit(t *testing.T) {
	page := make([]weibo.Card, 0, 5)
	for i := 0; i < 5; i++ {
		page = append(page, rawCard(string(rune('a'+i)), inWindow(14), false))
	}
	feed := &stubFeed{pages: [][]weibo.Card{page}}

	cards, err := newTestCollector(feed, 2).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(cards) != 2 {
		t.Errorf("Expected collection capped at 2, got %d", len(cards))
	}
}

func TestCollectTwoPageScenario(t *testing.T) {
	// Page 1 holds two includable posts; page 2 opens with an old
	// retweet past the cutoff. Result: exactly the two posts from
	// page 1 and nothing from page 2.
	feed := &stubFeed{pages: [][]weibo.Card{
		{
			rawCard("1", inWindow(16), false),
			rawCard("2", inWindow(14), false),
		},
		{
			rawCard("3", inWindow(5), true),
			rawCard("4", inWindow(15), false),
		},
	}}

	cards, err := newTestCollector(feed, 100).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Post.ID != "1" || cards[1].Post.ID != "2" {
		t.Errorf("Expected cards in feed order, got %s, %s", cards[0].Post.ID, cards[1].Post.ID)
	}
	if feed.maxPage != 2 {
		t.Errorf("Expected collection to reach page 2, got %d", feed.maxPage)
	}
}

func TestCollectSkipsRecentAndRetweets(t *testing.T) {
	feed := &stubFeed{pages: [][]weibo.Card{{
		rawCard("fresh", inWindow(19), false),
		rawCard("retweet", inWindow(14), true),
		rawCard("keep", inWindow(14), false),
		rawCard("old", inWindow(5), false),
	}}}

	cards, err := newTestCollector(feed, 100).Collect(context.Background())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	if len(cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(cards))
	}
	if cards[0].Post.ID != "keep" || cards[1].Post.ID != "old" {
		t.Errorf("Unexpected cards: %s, %s", cards[0].Post.ID, cards[1].Post.ID)
	}
}

func TestCollectEmptyPageIsFatal(t *testing.T) {
	feed := &stubFeed{pages: [][]weibo.Card{{
		rawCard("1", inWindow(16), false),
	}, {}}}

	_, err := newTestCollector(feed, 100).Collect(context.Background())
	if !errors.Is(err, ErrFeedExhausted) {
		t.Fatalf("Expected ErrFeedExhausted, got %v", err)
	}
}

func TestCollectTransportErrorIsFatal(t *testing.T) {
	feed := &stubFeed{errs: []error{errs.New(errs.ErrorTypeTransport, "connection refused")}}

	_, err := newTestCollector(feed, 100).Collect(context.Background())
	if err == nil {
		t.Fatal("Expected transport error to propagate")
	}

	var harvestErr *errs.Error
	if !errors.As(err, &harvestErr) || harvestErr.Type != errs.ErrorTypeTransport {
		t.Errorf("Expected transport error, got %v", err)
	}
}

func TestCollectNormalizationErrorIsFatal(t *testing.T) {
	bad := rawCard("bad", inWindow(14), false)
	bad.Mblog.CreatedAt = "not a timestamp"
	feed := &stubFeed{pages: [][]weibo.Card{{bad}}}

	_, err := newTestCollector(feed, 100).Collect(context.Background())
	var harvestErr *errs.Error
	if !errors.As(err, &harvestErr) || harvestErr.Type != errs.ErrorTypeTimestampParse {
		t.Fatalf("Expected timestamp_parse error, got %v", err)
	}
}

func TestCollectRetriesTransportErrors(t *testing.T) {
	feed := &stubFeed{
		errs: []error{
			errs.New(errs.ErrorTypeTransport, "flaky"),
			errs.New(errs.ErrorTypeTransport, "flaky"),
			nil,
		},
		pages: [][]weibo.Card{{rawCard("1", inWindow(5), false)}},
	}

	window := NewWindow(testNow, 3, 7, time.UTC)
	retryCfg := &retry.Config{
		MaxAttempts: 3,
		Backoff:     &retry.ConstantBackoff{Delay: 0},
		RetryIf:     retry.DefaultRetryIf,
	}
	coll := New(feed, window, 100, 0, retryCfg, nil)

	cards, err := coll.Collect(context.Background())
	if err != nil {
		t.Fatalf("Expected retries to recover, got %v", err)
	}
	if len(cards) != 1 {
		t.Errorf("Expected 1 card, got %d", len(cards))
	}
	if feed.calls != 3 {
		t.Errorf("Expected 3 fetch attempts, got %d", feed.calls)
	}
}
