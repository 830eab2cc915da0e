package statistic

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/forumix/backend/internal/entity"
	"github.com/forumix/backend/pkg/dateutil"
	"github.com/forumix/backend/pkg/xredis"
)

// Trending keeps a weekly interaction leaderboard of content records in a
// redis sorted set. It is advisory: a failed bump never fails the
// interaction that caused it.
type Trending struct {
	redisClient xredis.Client
}

func NewTrending(redisClient xredis.Client) *Trending {
	return &Trending{redisClient: redisClient}
}

type TrendingEntry struct {
	Ref   entity.ContentRef
	Score int64
}

// Bump adds weight to a content record in this week's leaderboard.
func (t *Trending) Bump(ctx context.Context, ref entity.ContentRef, weight int64) error {
	return t.redisClient.ZIncrBy(ctx, t.key(time.Now()), weight, member(ref))
}

// Get returns this week's leaderboard slice in descending score order.
func (t *Trending) Get(ctx context.Context, offset, limit int) ([]TrendingEntry, error) {
	results, err := t.redisClient.ZRevRangeWithScores(ctx, t.key(time.Now()), offset, limit)
	if err != nil {
		return nil, err
	}

	entries := []TrendingEntry{}
	for _, z := range results {
		ref, err := parseMember(z.Member.(string))
		if err != nil {
			continue
		}

		entries = append(entries, TrendingEntry{Ref: ref, Score: int64(z.Score)})
	}

	return entries, nil
}

func (t *Trending) key(now time.Time) string {
	return fmt.Sprintf("trending:%s", dateutil.WeekKey(now))
}

func member(ref entity.ContentRef) string {
	return fmt.Sprintf("%s:%d", ref.Origin, ref.TargetID)
}

func parseMember(s string) (entity.ContentRef, error) {
	origin, id, found := strings.Cut(s, ":")
	if !found {
		return entity.ContentRef{}, fmt.Errorf("invalid trending member %s", s)
	}

	targetID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return entity.ContentRef{}, err
	}

	return entity.ContentRef{Origin: entity.Origin(origin), TargetID: targetID}, nil
}
