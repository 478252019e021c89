// Package registry provides the central "glue" for the tool adapter system.
//
// The Registry maps the closed set of tool tags (e.g. "yosys", "symbiflow")
// to the factory that builds the matching adapter, together with the tool's
// published option documentation. Adapter selection is a static lookup
// against this set; there is no runtime name-based instantiation.
//
// During application startup the registry is populated once from the list of
// core tools and is read-only afterwards.
package registry
