// Package async provides utilities for parallel task execution with
// error collection.
//
// The [RunParallel] function executes multiple operations concurrently and
// returns the first failure. The resolver uses it to fan out per-class
// resolution work, which shares no mutable state.
package async
