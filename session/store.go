package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/room4-2/OpenReserve/config"
	"github.com/room4-2/OpenReserve/logging"
)

// Store owns all session records. Session IDs are caller-supplied: every
// conversational identity must bring its own key.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	redis    *redis.Client
	config   *config.Config
	log      *logging.Logger
}

// NewStore creates a session store with an optional Redis mirror.
func NewStore(cfg *config.Config, log *logging.Logger) *Store {
	l := log.Sub("session")

	// Try to connect to Redis, but don't fail if unavailable
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := redisClient.Ping(ctx).Err(); err != nil {
		l.Warn().Err(err).Msg("redis unavailable, running memory-only")
		redisClient = nil
	}

	return &Store{
		sessions: make(map[string]*Session),
		redis:    redisClient,
		config:   cfg,
		log:      l,
	}
}

// NewMemoryStore creates a store with no Redis mirror, for in-process
// embedding and tests.
func NewMemoryStore(cfg *config.Config, log *logging.Logger) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		config:   cfg,
		log:      log.Sub("session"),
	}
}

// GetOrCreate returns the session for id, creating it lazily on first
// contact. Creation fails once the session cap is reached.
func (st *Store) GetOrCreate(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}

	st.mu.Lock()
	defer st.mu.Unlock()

	if s, ok := st.sessions[id]; ok {
		return s, nil
	}

	if len(st.sessions) >= st.config.MaxSessions {
		return nil, fmt.Errorf("maximum sessions reached")
	}

	s := New(id)
	st.sessions[id] = s
	st.mirror(ctx, s)
	st.log.Info().Str("session", id).Msg("session created")
	return s, nil
}

// Get returns a session without creating one.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[id]
	return s, ok
}

// Touch refreshes activity and the Redis TTL after a turn.
func (st *Store) Touch(ctx context.Context, s *Session) {
	s.Touch()
	if st.redis != nil {
		st.redis.HSet(ctx, "session:"+s.ID, map[string]any{
			"last_activity": s.LastSeen().Format(time.RFC3339),
			"flow":          s.Flow.String(),
		})
		st.redis.Expire(ctx, "session:"+s.ID, st.config.SessionTimeout)
	}
}

// Remove deletes a session.
func (st *Store) Remove(ctx context.Context, id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.drop(ctx, id)
}

// ActiveCount returns the current session count.
func (st *Store) ActiveCount() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CleanupInactive evicts sessions idle past the configured timeout.
func (st *Store) CleanupInactive(ctx context.Context) {
	st.mu.Lock()
	defer st.mu.Unlock()

	now := time.Now()
	for id, s := range st.sessions {
		if now.Sub(s.LastSeen()) > st.config.SessionTimeout {
			st.drop(ctx, id)
			st.log.Info().Str("session", id).Msg("session evicted")
		}
	}
}

// StartCleanupRoutine runs periodic eviction until the context is cancelled.
func (st *Store) StartCleanupRoutine(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.CleanupInactive(ctx)
		}
	}
}

// Shutdown drops all sessions and closes the Redis connection.
func (st *Store) Shutdown() {
	st.mu.Lock()
	defer st.mu.Unlock()

	ctx := context.Background()
	for id := range st.sessions {
		st.drop(ctx, id)
	}
	if st.redis != nil {
		st.redis.Close()
	}
}

// mirror writes session metadata to Redis. Callers hold the store lock.
func (st *Store) mirror(ctx context.Context, s *Session) {
	if st.redis == nil {
		return
	}
	st.redis.HSet(ctx, "session:"+s.ID, map[string]any{
		"created_at":    s.CreatedAt.Format(time.RFC3339),
		"last_activity": s.LastSeen().Format(time.RFC3339),
		"flow":          s.Flow.String(),
	})
	st.redis.SAdd(ctx, "active_sessions", s.ID)
	st.redis.Expire(ctx, "session:"+s.ID, st.config.SessionTimeout)
}

// drop removes one session. Callers hold the store lock.
func (st *Store) drop(ctx context.Context, id string) {
	delete(st.sessions, id)
	if st.redis != nil {
		st.redis.Del(ctx, "session:"+id)
		st.redis.SRem(ctx, "active_sessions", id)
	}
}
