package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "sosgame"

// slotKey returns the Redis key holding a saved game
func slotKey(name string) string {
	return fmt.Sprintf("%s:slot:%s", keyPrefix, name)
}
