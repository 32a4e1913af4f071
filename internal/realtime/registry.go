package realtime

import "sync"

type Namespace string

const (
	// NamespaceFriends carries online/offline status between friends.
	NamespaceFriends Namespace = "friends-presence"
	// NamespacePrivateChat carries message, read-receipt and typing events.
	NamespacePrivateChat Namespace = "private-chat"
)

// Registry tracks which user is connected where. It is an injected dependency
// rather than package state so the in-memory implementation can later be
// swapped for a shared store when running more than one instance; today each
// process only sees its own connections.
type Registry interface {
	// Register stores conn for (userID, ns), replacing any previous entry
	// (last-registered-wins). Reports whether the user went from zero live
	// connections to one, i.e. came online.
	Register(userID int64, ns Namespace, conn Sender) (wentOnline bool)

	// Unregister removes the (userID, ns) entry only if it still belongs to
	// connID; a disconnect of a superseded connection must not clobber its
	// replacement. Reports whether the user's last connection went away.
	Unregister(userID int64, ns Namespace, connID string) (wentOffline bool)

	Resolve(userID int64, ns Namespace) (Sender, bool)
	IsOnline(userID int64) bool
}

type registryKey struct {
	userID int64
	ns     Namespace
}

// MemoryRegistry is the single-process Registry. One coarse mutex covers both
// maps: the read-then-write transition checks in Register/Unregister have to
// be atomic or concurrent connects could double- or skip-broadcast.
type MemoryRegistry struct {
	mu     sync.Mutex
	conns  map[registryKey]Sender
	online map[int64]int // live entry count per user across namespaces
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{
		conns:  make(map[registryKey]Sender),
		online: make(map[int64]int),
	}
}

func (r *MemoryRegistry) Register(userID int64, ns Namespace, conn Sender) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{userID: userID, ns: ns}
	_, replaced := r.conns[key]
	r.conns[key] = conn

	if replaced {
		return false
	}
	r.online[userID]++
	return r.online[userID] == 1
}

func (r *MemoryRegistry) Unregister(userID int64, ns Namespace, connID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := registryKey{userID: userID, ns: ns}
	conn, ok := r.conns[key]
	if !ok || conn.ID() != connID {
		// Stale disconnect of an already-superseded connection.
		return false
	}

	delete(r.conns, key)
	r.online[userID]--
	if r.online[userID] <= 0 {
		delete(r.online, userID)
		return true
	}
	return false
}

func (r *MemoryRegistry) Resolve(userID int64, ns Namespace) (Sender, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	conn, ok := r.conns[registryKey{userID: userID, ns: ns}]
	return conn, ok
}

func (r *MemoryRegistry) IsOnline(userID int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.online[userID] > 0
}
