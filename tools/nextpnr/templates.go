package nextpnr

import "text/template"

// makefileData is the variable set for the place and route Makefile.
type makefileData struct {
	Name           string
	Arch           string
	TargetExt      string
	Constraint     string
	ConstraintFlag string
	ImplOptions    string
	SubTool        bool
}

var makefileTpl = template.Must(template.New("nextpnr-makefile").Parse(
	`# GENERATED FILE, DO NOT EDIT
# nextpnr place and route rules for "{{ .Name }}"
{{ if not .SubTool }}
all: {{ .Name }}.{{ .TargetExt }}
{{ end }}
{{ .Name }}.{{ .TargetExt }}: {{ .Name }}.json{{ with .Constraint }} {{ . }}{{ end }}
	nextpnr-{{ .Arch }} --json {{ .Name }}.json{{ with .ConstraintFlag }} {{ . }}{{ end }}{{ with .ImplOptions }} {{ . }}{{ end }} --write {{ .Name }}-routed.json --{{ .TargetExt }} {{ .Name }}.{{ .TargetExt }}
{{ if not .SubTool }}
clean:
	rm -f {{ .Name }}.{{ .TargetExt }} {{ .Name }}-routed.json

.PHONY: all clean
{{ end }}`))
