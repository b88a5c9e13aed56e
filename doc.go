// Package stepflow provides a durable, resumable multi-step form workflow
// engine.
//
// A process instance advances through an ordered sequence of form steps, each
// collecting structured data, with support for stepping back and resetting to
// the start. Workflow position is a single persisted state value gated by a
// fixed transition table; submitted form data is an append-only log with
// latest-per-step reads. Instances may pause indefinitely between requests –
// everything durable lives behind pluggable store contracts with in-memory,
// filesystem and SQLite implementations.
//
// Stepflow is designed to be embedded in host applications. End-users
// typically interact via the high-level Service façade exposed by the root
// package:
//
//	srv := stepflow.New(stepflow.WithMetaBaseURL("config"))
//	process, _ := srv.Start(ctx, "permit")
//	process, _ = srv.Submit(ctx, process.ID, "step_one", "STEP_ONE_SUBMIT", data)
//	summary, _ := srv.Summary(ctx, process.ID)
//
// Transport (HTTP, RPC, CLI) is an adapter concern outside this module.
package stepflow
