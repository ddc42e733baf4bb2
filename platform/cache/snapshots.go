package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/donlinch/archdon-sub001/platform/game"
	"github.com/gomodule/redigo/redis"
)

// SnapshotStore keeps the latest game snapshot of each room and whose turn it
// is, so reconnecting clients and the HTTP API can read state without touching
// the live controller.
type SnapshotStore struct {
	pool *redis.Pool
	ttl  time.Duration
}

func NewSnapshotStore(pool *redis.Pool, ttl time.Duration) *SnapshotStore {
	return &SnapshotStore{pool: pool, ttl: ttl}
}

func stateKey(code string) string { return fmt.Sprintf("%s.state", code) }

// turnKey holds the user id of the seat that must act next.
func turnKey(code string) string { return code }

func (s *SnapshotStore) Save(code string, snap game.Snapshot, turnUser string) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	conn := s.pool.Get()
	defer conn.Close()

	ttl := int(s.ttl / time.Second)
	if err := Set(stateKey(code), raw, ttl, &conn); err != nil {
		return fmt.Errorf("store snapshot %s: %w", code, err)
	}
	if turnUser == "" {
		return Del(turnKey(code), &conn)
	}
	if err := Set(turnKey(code), turnUser, ttl, &conn); err != nil {
		return fmt.Errorf("store turn %s: %w", code, err)
	}
	return nil
}

func (s *SnapshotStore) Load(code string) (game.Snapshot, error) {
	conn := s.pool.Get()
	defer conn.Close()

	raw, err := GetBytes(stateKey(code), &conn)
	if err != nil {
		return game.Snapshot{}, err
	}
	var snap game.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return game.Snapshot{}, fmt.Errorf("decode snapshot %s: %w", code, err)
	}
	return snap, nil
}

func (s *SnapshotStore) CurrentTurn(code string) (string, error) {
	conn := s.pool.Get()
	defer conn.Close()
	return Get(turnKey(code), &conn)
}

func (s *SnapshotStore) Delete(code string) error {
	conn := s.pool.Get()
	defer conn.Close()

	if err := Del(stateKey(code), &conn); err != nil {
		return err
	}
	return Del(turnKey(code), &conn)
}
