// Package hris provides the client for the upstream HR directory system.
//
// The upstream exposes three simple GET endpoints returning the full employee
// set, the full rank reference set, and the full department reference set.
// There is no pagination, filtering, or delta fetch: every sync pulls
// everything. Requests carry a fixed per-call timeout.
//
// # Data Model
//
// Employee is the authoritative upstream representation, including optional
// nested rank/department/position summaries. RefEntry is one rank or
// department reference entry, looked up by business code or external id
// through core/refcache.
//
// # Testing
//
// The Client interface has a testify mock in core/hris/mocks.
package hris
