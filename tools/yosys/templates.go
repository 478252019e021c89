package yosys

import "text/template"

// templateData is the shared variable set for the script and Makefile
// templates.
type templateData struct {
	Name               string
	Top                string
	UseSurelog         bool
	VerilogDefines     string // TCL list of {name value} pairs
	VerilogParams      []string
	FileTable          []string
	SynthCommand       string
	SynthOptions       string
	AdditionalCommands []string
	WriteCommand       string
	Output             string
	ScriptName         string
	SubTool            bool
}

var scriptTpl = template.Must(template.New("yosys-script").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Yosys synthesis script for "{{ .Name }}"
yosys -import
{{- if .UseSurelog }}
plugin -i systemverilog
yosys -import
{{- end }}

set defines {{ .VerilogDefines }}
foreach d $defines {
    verilog_defines -D[lindex $d 0]=[lindex $d 1]
}
{{- range .VerilogParams }}
{{ . }}
{{- end }}
{{- range .FileTable }}
{{ . }}
{{- end }}

{{ .SynthCommand }}{{ with .SynthOptions }} {{ . }}{{ end }} -top {{ .Top }}
{{- range .AdditionalCommands }}
{{ . }}
{{- end }}
{{ .WriteCommand }} {{ .Output }}
`))

var makefileTpl = template.Must(template.New("yosys-makefile").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Yosys build rules for "{{ .Name }}"
{{ if not .SubTool }}
all: {{ .Output }}
{{ end }}
{{ .Output }}: {{ .ScriptName }}
	yosys -l yosys.log -p 'tcl {{ .ScriptName }}'
{{ if not .SubTool }}
clean:
	rm -f {{ .Output }} yosys.log

.PHONY: all clean
{{ end }}`))
