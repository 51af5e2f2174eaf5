// Package queue discovers pending prompt recordings, drives episode
// generation for each one, and keeps a SQLite ledger of processing
// history.
//
// The pending and done directories are the source of truth for what
// still needs work: a prompt moves to done only after its episode
// completes, so failed prompts stay eligible for retry on the next
// invocation. The ledger supplements that with per-stage status and
// error history for inspection via the CLI.
package queue
