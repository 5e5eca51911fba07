// Package refcache implements the TTL-bound reference data cache used by the
// directory sync subsystem.
//
// Two independent instances exist at runtime, one for rank reference data and
// one for department reference data, both built from the same generic Cache
// type over fetch closures against the upstream HR directory API.
//
// # Behavior
//
//   - Lookups check validity first and refresh synchronously when the last
//     refresh is older than the validity window.
//   - Refresh replaces both index maps (by code, by external id) atomically
//     and stamps the refresh time.
//   - A failed refresh keeps the previous contents and timestamp: the cache
//     serves stale-but-available data indefinitely until a refresh succeeds.
//   - Concurrent refreshes are collapsed into one upstream fetch via
//     singleflight.
package refcache
