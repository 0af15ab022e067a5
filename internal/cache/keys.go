package cache

import "fmt"

const (
	lockKeyPrefix       = "cinedex:seed:lock:%s"
	checkpointKeyPrefix = "cinedex:seed:checkpoint:%s"
)

// LockKey is the run-lock key for a database.
func LockKey(database string) string {
	return fmt.Sprintf(lockKeyPrefix, database)
}

// CheckpointKey is the last-completed-step key for a database.
func CheckpointKey(database string) string {
	return fmt.Sprintf(checkpointKeyPrefix, database)
}
