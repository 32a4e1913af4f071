package realtime

import "log"

// notify delivers one event to one user's connection in the given namespace,
// best-effort. A missing connection or a failed write is logged and reported
// as false; it never propagates to the caller, so a durable operation that
// already succeeded (message persisted, tokens issued) cannot be failed by
// its realtime notification. Every emit site goes through this helper.
func notify(registry Registry, ns Namespace, userID int64, event any) bool {
	conn, ok := registry.Resolve(userID, ns)
	if !ok {
		return false
	}

	if err := conn.Send(event); err != nil {
		log.Printf("realtime: dropping event for user %d in %s: %v", userID, ns, err)
		return false
	}
	return true
}
