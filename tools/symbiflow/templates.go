package symbiflow

import "text/template"

// vprMakefileData is the variable set for the native VPR flow Makefile.
type vprMakefileData struct {
	Top               string
	Sources           string
	Partname          string
	Device            string
	BitstreamDevice   string
	ToolchainPrefix   string
	SDC               string
	PCF               string
	XDC               string
	Builddir          string
	Options           string
	Seed              string
	EnvironmentScript string
	Fasm2Bels         bool
	DBRoot            string
	RRGraph           string
	VPRGrid           string
	CapnpSchema       string
}

// Every toolchain step runs inside BUILDDIR, so file inputs that live in the
// work root are passed through $(abspath ...) before the cd.
var vprMakefileTpl = template.Must(template.New("symbiflow-vpr-makefile").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Symbiflow VPR flow for "{{ .Top }}"

TOP := {{ .Top }}
VERILOG := {{ .Sources }}
PARTNAME := {{ .Partname }}
DEVICE := {{ .Device }}
BITSTREAM_DEVICE := {{ .BitstreamDevice }}
BUILDDIR := {{ .Builddir }}
{{- with .SDC }}
SDC := {{ . }}
{{- end }}
{{- with .PCF }}
PCF := {{ . }}
{{- end }}
{{- with .XDC }}
XDC := {{ . }}
{{- end }}
{{- with .Options }}
VPR_OPTIONS := {{ . }}
{{- end }}
{{- with .Seed }}
SEED := {{ . }}
{{- end }}
ENV :={{ with .EnvironmentScript }} source {{ . }} &&{{ end }}

all: ${BUILDDIR}/${TOP}.bit

${BUILDDIR}:
	mkdir -p ${BUILDDIR}

${BUILDDIR}/${TOP}.eblif: | ${BUILDDIR}
	cd ${BUILDDIR} && ${ENV} {{ .ToolchainPrefix }}synth -t ${TOP} -v $(abspath ${VERILOG}) -d ${BITSTREAM_DEVICE} -p ${PARTNAME}{{ if .XDC }} -x $(abspath ${XDC}){{ end }}

${BUILDDIR}/${TOP}.net: ${BUILDDIR}/${TOP}.eblif
	cd ${BUILDDIR} && ${ENV} {{ .ToolchainPrefix }}pack -e ${TOP}.eblif -d ${DEVICE}{{ if .SDC }} -s $(abspath ${SDC}){{ end }}{{ if .Options }} ${VPR_OPTIONS}{{ end }}

${BUILDDIR}/${TOP}.place: ${BUILDDIR}/${TOP}.net
	cd ${BUILDDIR} && ${ENV} {{ .ToolchainPrefix }}place -e ${TOP}.eblif -d ${DEVICE}{{ if .PCF }} -p $(abspath ${PCF}){{ end }} -n ${TOP}.net -P ${PARTNAME}{{ if .SDC }} -s $(abspath ${SDC}){{ end }}{{ if .Seed }} --seed ${SEED}{{ end }}

${BUILDDIR}/${TOP}.route: ${BUILDDIR}/${TOP}.place
	cd ${BUILDDIR} && ${ENV} {{ .ToolchainPrefix }}route -e ${TOP}.eblif -d ${DEVICE}{{ if .SDC }} -s $(abspath ${SDC}){{ end }}{{ with .RRGraph }} -r $(abspath {{ . }}){{ end }}

${BUILDDIR}/${TOP}.fasm: ${BUILDDIR}/${TOP}.route
	cd ${BUILDDIR} && ${ENV} {{ .ToolchainPrefix }}write_fasm -e ${TOP}.eblif -d ${DEVICE}

${BUILDDIR}/${TOP}.bit: ${BUILDDIR}/${TOP}.fasm
	cd ${BUILDDIR} && ${ENV} {{ .ToolchainPrefix }}write_bitstream -d ${BITSTREAM_DEVICE} -f ${TOP}.fasm -p ${PARTNAME} -b ${TOP}.bit
{{ if .Fasm2Bels }}
fasm2bels: ${BUILDDIR}/${TOP}.bit
	${ENV} fasm2bels ${BUILDDIR}/${TOP}.bit --db_root {{ .DBRoot }} --part ${PARTNAME}{{ with .RRGraph }} --rr_graph {{ . }}{{ end }}{{ with .VPRGrid }} --vpr_grid_map {{ . }}{{ end }}{{ with .CapnpSchema }} --capnp_schema {{ . }}{{ end }} --verilog ${TOP}_bit.v --xdc ${TOP}_bit.xdc
	${ENV} ./vivado.sh
{{ end }}
clean:
	rm -rf ${BUILDDIR}

.PHONY: all clean{{ if .Fasm2Bels }} fasm2bels{{ end }}
`))

// nextpnrMakefileData is the variable set for the driving Makefile of the
// nextpnr flow. Synthesis and place and route rules come from the included
// sub-Makefiles; this one owns the FASM to bitstream steps.
type nextpnrMakefileData struct {
	Top               string
	Partname          string
	BitstreamDevice   string
	Builddir          string
	EnvironmentScript string
	Fasm2Bels         bool
	DBRoot            string
	RRGraph           string
	VPRGrid           string
	CapnpSchema       string
}

var nextpnrMakefileTpl = template.Must(template.New("symbiflow-nextpnr-makefile").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Symbiflow nextpnr flow for "{{ .Top }}"

TOP := {{ .Top }}
PARTNAME := {{ .Partname }}
BITSTREAM_DEVICE := {{ .BitstreamDevice }}
BUILDDIR := {{ .Builddir }}
ENV :={{ with .EnvironmentScript }} source {{ . }} &&{{ end }}

all: ${BUILDDIR}/${TOP}.bit

include {{ .Top }}.mk
include {{ .Top }}-nextpnr.mk

${BUILDDIR}:
	mkdir -p ${BUILDDIR}

${BUILDDIR}/${TOP}.frames: ${TOP}.fasm | ${BUILDDIR}
	${ENV} fasm2frames --part ${PARTNAME} ${TOP}.fasm > ${BUILDDIR}/${TOP}.frames

${BUILDDIR}/${TOP}.bit: ${BUILDDIR}/${TOP}.frames
	${ENV} xc7frames2bit --part_name ${PARTNAME} --frm_file ${BUILDDIR}/${TOP}.frames --output_file ${BUILDDIR}/${TOP}.bit
{{ if .Fasm2Bels }}
fasm2bels: ${BUILDDIR}/${TOP}.bit
	${ENV} fasm2bels ${BUILDDIR}/${TOP}.bit --db_root {{ .DBRoot }} --part ${PARTNAME}{{ with .RRGraph }} --rr_graph {{ . }}{{ end }}{{ with .VPRGrid }} --vpr_grid_map {{ . }}{{ end }}{{ with .CapnpSchema }} --capnp_schema {{ . }}{{ end }} --verilog ${TOP}_bit.v --xdc ${TOP}_bit.xdc
	${ENV} ./vivado.sh
{{ end }}
clean:
	rm -rf ${BUILDDIR} ${TOP}.fasm ${TOP}.json ${TOP}-routed.json yosys.log

.PHONY: all clean{{ if .Fasm2Bels }} fasm2bels{{ end }}
`))

// fasm2belsTclData is the variable set for the Vivado check script.
type fasm2belsTclData struct {
	Top    string
	Part   string
	XDC    string
	Clocks map[string]string
}

var fasm2belsTclTpl = template.Must(template.New("fasm2bels-tcl").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Loads the fasm2bels output for "{{ .Top }}" into Vivado and re-runs the
# vendor checks against it.

create_project -force -part {{ .Part }} {{ .Top }}_fasm2bels ./{{ .Top }}_fasm2bels

read_verilog {{ .Top }}_bit.v
{{- with .XDC }}
read_xdc { {{ . }} }
{{- end }}
read_xdc {{ .Top }}_bit.xdc

synth_design -top {{ .Top }} -flatten_hierarchy none
{{- range $port, $period := .Clocks }}
create_clock -period {{ $period }} [get_ports {{ $port }}]
{{- end }}

report_utilization -hierarchical -file {{ .Top }}_utilization.rpt
report_timing_summary -file {{ .Top }}_timing.rpt
write_checkpoint -force {{ .Top }}_fasm2bels.dcp
`))

var vivadoLauncherTpl = template.Must(template.New("vivado-sh").Parse(
	`#!/usr/bin/env bash
# GENERATED FILE, DO NOT EDIT
set -e

vivado -mode batch -nojournal -nolog -source fasm2bels.tcl
`))
