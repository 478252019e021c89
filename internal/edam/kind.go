package edam

import "strings"

// Kind is the closed classification of file type tags. The tag namespace
// itself is open: anything not recognized here maps to KindUnrecognized,
// which is always legal and silently skipped by adapters. This keeps
// project descriptions forward-compatible with file types the adapters do
// not understand yet.
type Kind int

// The file kinds recognized by the adapters.
const (
	KindUnrecognized Kind = iota
	KindVerilog
	KindSystemVerilog
	KindVHDL
	KindTCL
	KindSDC
	KindPCF
	KindXDC
	KindLPF
	KindRRGraph
	KindVPRGrid
	KindCapnpSchema
	KindUser
)

// kindNames is indexed by Kind.
var kindNames = [...]string{
	"unrecognized",
	"verilog",
	"systemVerilog",
	"vhdl",
	"tcl",
	"sdc",
	"pcf",
	"xdc",
	"lpf",
	"rrGraph",
	"vprGrid",
	"capnpSchema",
	"user",
}

// String returns a stable lower-camel name for logging.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unrecognized"
	}
	return kindNames[k]
}

// KindOf classifies a raw file type tag. Verilog, SystemVerilog and VHDL tags
// match by prefix so that dialect suffixes like "systemVerilogSource-2017" or
// "vhdlSource-2008" resolve to their family; the remaining tags match exactly.
func KindOf(tag string) Kind {
	switch {
	case strings.HasPrefix(tag, "systemVerilogSource"):
		return KindSystemVerilog
	case strings.HasPrefix(tag, "verilogSource"):
		return KindVerilog
	case strings.HasPrefix(tag, "vhdlSource"):
		return KindVHDL
	}

	switch tag {
	case "tclSource":
		return KindTCL
	case "SDC":
		return KindSDC
	case "PCF":
		return KindPCF
	case "xdc":
		return KindXDC
	case "LPF":
		return KindLPF
	case "RRGraph":
		return KindRRGraph
	case "VPRGrid":
		return KindVPRGrid
	case "capnp":
		return KindCapnpSchema
	case "user":
		return KindUser
	}
	return KindUnrecognized
}
