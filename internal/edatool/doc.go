// Package edatool provides the shared base for all tool adapters: access to
// the design's name, toplevel, parameters and per-tool options, a renderer
// rooted at the work directory, and the injected diagnostics logger.
//
// Adapters embed Tool and add their own configure logic on top.
package edatool
