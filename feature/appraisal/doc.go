// Package appraisal implements the performance-evaluation administration
// surface: projects, work-breakdown-structure (WBS) assignment, and the
// evaluation question catalog.
//
// This is conventional CRUD plumbing over the relational store. The only
// cross-feature behavior is WBS assignment, which validates the assignee
// against the employee directory façade so evaluations cannot reference
// employees the upstream HR system does not know.
//
// Scoring semantics and report generation are outside this service.
package appraisal
