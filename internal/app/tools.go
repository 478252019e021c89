package app

import (
	"github.com/vk/edaflow/internal/registry"
	"github.com/vk/edaflow/tools/nextpnr"
	"github.com/vk/edaflow/tools/surelog"
	"github.com/vk/edaflow/tools/symbiflow"
	"github.com/vk/edaflow/tools/yosys"
)

// coreTools is the definitive list of tool adapters that are compiled into
// the edaflow binary.
var coreTools = []registry.Module{
	&surelog.Module{},
	&yosys.Module{},
	&nextpnr.Module{},
	&symbiflow.Module{},
}
