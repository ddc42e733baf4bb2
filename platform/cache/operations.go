package cache

import (
	"errors"

	"github.com/gomodule/redigo/redis"
)

var ErrMiss = errors.New("cache miss")

func Get(key string, conn *redis.Conn) (string, error) {
	data, err := redis.String((*conn).Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return "", ErrMiss
	}
	return data, err
}

func GetBytes(key string, conn *redis.Conn) ([]byte, error) {
	data, err := redis.Bytes((*conn).Do("GET", key))
	if errors.Is(err, redis.ErrNil) {
		return nil, ErrMiss
	}
	return data, err
}

func Del(key string, conn *redis.Conn) error {
	_, err := (*conn).Do("DEL", key)
	return err
}

// Set stores value, expiring it after ttlSeconds when that is positive.
func Set(key string, value interface{}, ttlSeconds int, conn *redis.Conn) error {
	var (
		reply string
		err   error
	)
	if ttlSeconds > 0 {
		reply, err = redis.String((*conn).Do("SETEX", key, ttlSeconds, value))
	} else {
		reply, err = redis.String((*conn).Do("SET", key, value))
	}
	if err != nil {
		return err
	}
	if reply != "OK" {
		return errors.New("unexpected reply " + reply)
	}
	return nil
}
