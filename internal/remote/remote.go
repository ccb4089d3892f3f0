// Package remote defines the contract for alternate skill version sources.
// The sync engine consumes a Source only when a declared skill names one and
// local resolution misses; transport implementations live outside this
// module.
package remote

// Version is one fetched skill version. Hash, when set, is the lowercase
// hex-64 SHA-256 the source claims for Content; the caller re-verifies it
// before caching.
type Version struct {
	Version string
	Content []byte
	Hash    string
}

// Source serves skill versions by slug and optional constraint. A Source
// failure is treated like a local cache miss: recorded per skill, never
// fatal to a batch.
type Source interface {
	Fetch(slug, constraint string) (*Version, error)
}
