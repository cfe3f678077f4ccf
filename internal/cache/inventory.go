package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	GroupKeyPrefix = "group:%s"
	UserKeyPrefix  = "user:%s"
	PageKeyPrefix  = "page:%s"
)

const (
	// HomeFeedTTL is how long a rendered home-feed response is served from
	// the page cache. Writes do not invalidate it: readers can see a feed up
	// to this much out of date, a deliberate freshness/throughput trade-off.
	HomeFeedTTL = 20 * time.Second

	GroupTTL = 10 * time.Minute
	UserTTL  = 5 * time.Minute
)

// GroupKey returns the cache key for a group looked up by slug.
func GroupKey(slug string) string {
	return fmt.Sprintf(GroupKeyPrefix, slug)
}

// UserKey returns the cache key for a user looked up by username.
func UserKey(username string) string {
	return fmt.Sprintf(UserKeyPrefix, username)
}

// PageKey returns the page-cache key for a full request URL (path + query).
func PageKey(url string) string {
	return fmt.Sprintf(PageKeyPrefix, url)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateGroup(ctx context.Context, slug string) {
	Invalidate(ctx, GroupKey(slug))
}

func InvalidateUser(ctx context.Context, username string) {
	Invalidate(ctx, UserKey(username))
}
