package play

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	defaultSessionTTL = 2 * time.Hour
	defaultKeyPrefix  = "trivia:quiz:session:"
)

// ErrInvalidSession is returned for session ids that are not UUIDs.
var ErrInvalidSession = errors.New("invalid quiz session id")

// setStore is the subset of *redis.Client the tracker uses.
type setStore interface {
	SAdd(ctx context.Context, key string, members ...interface{}) *redis.IntCmd
	SMembers(ctx context.Context, key string) *redis.StringSliceCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// TrackerOptions configures the session tracker.
type TrackerOptions struct {
	TTL       time.Duration
	KeyPrefix string
}

// Tracker remembers which question ids a quiz session has been served so
// clients that lose their local history still get no repeats. The catalog
// engine stays stateless: the tracker only widens the asked set the caller
// passes in.
type Tracker struct {
	store  setStore
	ttl    time.Duration
	prefix string
	logger zerolog.Logger
}

// NewTracker builds a tracker over a Redis client.
func NewTracker(store setStore, opts TrackerOptions, logger zerolog.Logger) *Tracker {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	prefix := opts.KeyPrefix
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &Tracker{
		store:  store,
		ttl:    ttl,
		prefix: prefix,
		logger: logger.With().Str("component", "quiz_tracker").Logger(),
	}
}

// NewSessionID returns a fresh session id.
func NewSessionID() string {
	return uuid.NewString()
}

// Asked returns the ids recorded for session. Unknown sessions are empty.
func (t *Tracker) Asked(ctx context.Context, session string) ([]int64, error) {
	key, err := t.key(session)
	if err != nil {
		return nil, err
	}

	members, err := t.store.SMembers(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("read quiz session: %w", err)
	}

	ids := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			t.logger.Warn().Str("session_id", session).Str("member", m).Msg("skipping malformed session member")
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Record adds id to the session and refreshes its expiry.
func (t *Tracker) Record(ctx context.Context, session string, id int64) error {
	key, err := t.key(session)
	if err != nil {
		return err
	}

	if err := t.store.SAdd(ctx, key, strconv.FormatInt(id, 10)).Err(); err != nil {
		return fmt.Errorf("record quiz question: %w", err)
	}
	if err := t.store.Expire(ctx, key, t.ttl).Err(); err != nil {
		return fmt.Errorf("refresh quiz session ttl: %w", err)
	}
	return nil
}

// Reset forgets a session.
func (t *Tracker) Reset(ctx context.Context, session string) error {
	key, err := t.key(session)
	if err != nil {
		return err
	}
	if err := t.store.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("reset quiz session: %w", err)
	}
	return nil
}

func (t *Tracker) key(session string) (string, error) {
	if _, err := uuid.Parse(session); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidSession, session)
	}
	return t.prefix + session, nil
}

// Merge unions the client-supplied ids with the tracked ones, preserving the
// order of first appearance.
func Merge(client, tracked []int64) []int64 {
	seen := make(map[int64]struct{}, len(client)+len(tracked))
	out := make([]int64, 0, len(client)+len(tracked))
	for _, list := range [][]int64{client, tracked} {
		for _, id := range list {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
