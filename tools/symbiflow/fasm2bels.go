package symbiflow

// fasm2bels is the reverse-annotation side flow: the routed FASM output is
// lifted back into a Vivado netlist so timing and utilization can be checked
// against the vendor tools. Both pipelines share it.

type fasm2belsInputs struct {
	Enabled bool
	DBRoot  string
	Clocks  map[string]string
}

func (a *Adapter) fasm2belsInputs() (fasm2belsInputs, error) {
	enabled, err := a.Options.Bool("fasm2bels", false)
	if err != nil {
		return fasm2belsInputs{}, err
	}
	dbRoot, err := a.Options.String("dbroot", "")
	if err != nil {
		return fasm2belsInputs{}, err
	}
	clocks, err := a.Options.StringMap("clocks")
	if err != nil {
		return fasm2belsInputs{}, err
	}
	return fasm2belsInputs{Enabled: enabled, DBRoot: dbRoot, Clocks: clocks}, nil
}

// renderFasm2bels writes the Vivado check script and its launcher. Missing
// prerequisites are reported but do not abort the flow; the build itself only
// fails once the fasm2bels make target actually runs.
func (a *Adapter) renderFasm2bels(top, partname, xdc string, aux auxFiles, in fasm2belsInputs) error {
	if aux.RRGraph == "" || aux.VPRGrid == "" || in.DBRoot == "" {
		a.Logger.Error("When using fasm2bels, the routing graph, the VPR grid map and the database root must all be provided.",
			"rr_graph", aux.RRGraph, "vpr_grid", aux.VPRGrid, "dbroot", in.DBRoot)
	}

	data := fasm2belsTclData{
		Top:    top,
		Part:   partname,
		XDC:    xdc,
		Clocks: in.Clocks,
	}
	if err := a.Renderer.Render(fasm2belsTclTpl, "fasm2bels.tcl", data); err != nil {
		return err
	}
	return a.Renderer.RenderExecutable(vivadoLauncherTpl, "vivado.sh", nil)
}
