package admission

import (
	"context"
	"strconv"
	"sync"
	"time"

	"showtime-booking/internal/infra"
	"showtime-booking/internal/infra/db"
	inredis "showtime-booking/internal/infra/redis"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// MemoryCounter keeps attempts in process. It is the test and single-node backend.
type MemoryCounter struct {
	mu       sync.Mutex
	attempts map[string][]time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{attempts: make(map[string][]time.Time)}
}

func (c *MemoryCounter) Record(_ context.Context, identifier, action string, at time.Time, window time.Duration) (int, time.Time, error) {
	key := action + "|" + identifier
	cutoff := at.Add(-window)

	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.attempts[key][:0]
	for _, t := range c.attempts[key] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	kept = append(kept, at)
	c.attempts[key] = kept
	return len(kept), kept[0], nil
}

// PostgresCounter stores attempts in admission_attempts.
type PostgresCounter struct {
	db db.DBTX
}

func NewPostgresCounter(dbtx db.DBTX) *PostgresCounter {
	return &PostgresCounter{db: dbtx}
}

func (c *PostgresCounter) Record(ctx context.Context, identifier, action string, at time.Time, window time.Duration) (int, time.Time, error) {
	cutoff := at.Add(-window)

	insert, args, err := db.Builder.
		Insert("admission_attempts").
		Columns("identifier", "action", "attempted_at").
		Values(identifier, action, at).
		ToSql()
	if err != nil {
		return 0, time.Time{}, infra.WrapRepoErr("failed to build attempt insert", err, infra.KindDBFailure)
	}
	if _, err := c.db.Exec(ctx, insert, args...); err != nil {
		return 0, time.Time{}, infra.WrapRepoErr("failed to record admission attempt", err)
	}

	prune, args, err := db.Builder.
		Delete("admission_attempts").
		Where(sq.Eq{"identifier": identifier, "action": action}).
		Where(sq.LtOrEq{"attempted_at": cutoff}).
		ToSql()
	if err != nil {
		return 0, time.Time{}, infra.WrapRepoErr("failed to build attempt prune", err, infra.KindDBFailure)
	}
	if _, err := c.db.Exec(ctx, prune, args...); err != nil {
		return 0, time.Time{}, infra.WrapRepoErr("failed to prune admission attempts", err)
	}

	count, args, err := db.Builder.
		Select("count(*)", "min(attempted_at)").
		From("admission_attempts").
		Where(sq.Eq{"identifier": identifier, "action": action}).
		Where(sq.Gt{"attempted_at": cutoff}).
		Where(sq.LtOrEq{"attempted_at": at}).
		ToSql()
	if err != nil {
		return 0, time.Time{}, infra.WrapRepoErr("failed to build attempt count", err, infra.KindDBFailure)
	}

	var n int
	var oldest *time.Time
	if err := c.db.QueryRow(ctx, count, args...).Scan(&n, &oldest); err != nil {
		return 0, time.Time{}, infra.WrapRepoErr("failed to count admission attempts", err)
	}
	if oldest == nil {
		return n, at, nil
	}
	return n, *oldest, nil
}

// RedisCounter keeps one sorted set per (action, identifier), scored by
// attempt time in nanoseconds.
type RedisCounter struct {
	client *inredis.Client
	prefix string
}

func NewRedisCounter(client *inredis.Client) *RedisCounter {
	return &RedisCounter{client: client, prefix: "admission:"}
}

func (c *RedisCounter) Record(ctx context.Context, identifier, action string, at time.Time, window time.Duration) (int, time.Time, error) {
	key := c.prefix + action + ":" + identifier
	cutoff := at.Add(-window).UnixNano()

	var card *redis.IntCmd
	var first *redis.ZSliceCmd
	_, err := c.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.ZAdd(ctx, key, redis.Z{Score: float64(at.UnixNano()), Member: uuid.NewString()})
		p.ZRemRangeByScore(ctx, key, "-inf", strconv.FormatInt(cutoff, 10))
		card = p.ZCard(ctx, key)
		first = p.ZRangeWithScores(ctx, key, 0, 0)
		p.Expire(ctx, key, window)
		return nil
	})
	if err != nil {
		return 0, time.Time{}, err
	}

	oldest := at
	if zs := first.Val(); len(zs) > 0 {
		oldest = time.Unix(0, int64(zs[0].Score))
	}
	return int(card.Val()), oldest, nil
}
