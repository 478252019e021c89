// Package edam defines the data model for a design handed to a tool adapter:
// the design description itself (name, toplevel, files, parameters, per-tool
// options) and the file classification used by adapters to pick out the
// sources and constraints they understand.
//
// A Design is constructed once, either by a project loader or by a parent
// adapter for a nested configure call, and is never mutated afterwards.
package edam
