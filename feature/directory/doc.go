// Package directory implements the employee directory synchronization
// feature: the component that keeps the local employee store consistent
// with the authoritative external HR system.
//
// # Components
//
//   - Mapper: translates one upstream record into the local shape, resolving
//     rank/department enrichment via the reference caches (core/refcache)
//     when the payload references enrichment by business code only.
//   - Syncer: the sync orchestrator. Pulls the full upstream employee set,
//     pre-warms both reference caches, maps every record, and decides
//     create/update/skip per record using the change-detection heuristic in
//     decision.go. Per-record failures are isolated; the pass continues.
//   - Writer: persists the staged set. One bulk attempt; on a uniqueness
//     conflict it degrades to individual writes, skipping duplicates.
//   - Service: the query façade. Local hits are served directly; a miss or
//     forced refresh syncs synchronously, and a store past the staleness
//     window triggers a fire-and-forget background sync.
//   - Scheduler: fixed-interval unattended trigger (attempt-and-skip).
//   - Archiver: optional snapshot of each pass's upstream payload to object
//     storage.
//
// # Concurrency
//
// At most one sync pass is in flight at a time. Synchronous triggers join
// the in-progress pass via singleflight; background and scheduled triggers
// attempt-and-skip. Record processing inside a pass is sequential; the
// store's unique constraints remain the final backstop against races.
//
// # HTTP Endpoints
//
//   - GET  /employees                          : list all (refresh=true forces a sync)
//   - GET  /employees/:id                      : by internal id
//   - GET  /employees/external/:externalId     : by upstream identifier
//   - GET  /employees/number/:employeeNo       : by employee number
//   - GET  /employees/email/:email             : by email
//   - POST /employees/sync                     : manual forced sync
package directory
