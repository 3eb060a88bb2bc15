// Package pipeline provides a framework for executing check steps in sequence.
//
// The pipeline pattern is used to take a document through multiple stages:
// loading the bytes from disk, parsing them into a tree, and running the
// conformance checks. Each stage is implemented as a Step that receives the
// current run state and can advance it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running batch jobs
// 4. It lets alternate sources (stdin, editors) enter mid-pipeline
//
// The pipeline supports both individual documents and batch processing with
// concurrency control using errgroup.
package pipeline
