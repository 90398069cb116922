// Package session persists an advisory marker for the running tracking
// process. The tracking engine itself keeps no state on disk; the marker
// only lets `worklens status` report on a session owned by another process.
package session

import "time"

// Marker describes the session a running `track` process owns.
type Marker struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	StartTime time.Time `json:"start_time"`
	PID       int       `json:"pid"`
}
