package redis

import "fmt"

// Key prefix for all guestbook data
const keyPrefix = "guestbook"

// documentKey returns the Redis key holding a whole JSON document
func documentKey(name string) string {
	return fmt.Sprintf("%s:doc:%s", keyPrefix, name)
}
