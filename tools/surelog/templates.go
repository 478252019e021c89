package surelog

import "text/template"

// makefileData is the variable set for the surelog.mk template. The command
// fragments carry their own leading spaces so absent ones collapse cleanly.
type makefileData struct {
	Name           string
	Top            string
	Sources        string
	LibraryCommand string
	ParamsCommand  string
	DefinesCommand string
	IncludeCommand string
}

var makefileTpl = template.Must(template.New("surelog-makefile").Parse(
	`# GENERATED FILE, DO NOT EDIT
# Surelog elaboration rules for "{{ .Name }}"

all: {{ .Top }}.uhdm

{{ .Top }}.uhdm:
	surelog -top {{ .Top }} -parse{{ with .DefinesCommand }} {{ . }}{{ end }}{{ .ParamsCommand }}{{ .IncludeCommand }}{{ .LibraryCommand }} {{ .Sources }}
	cp slpp_all/surelog.uhdm {{ .Top }}.uhdm

clean:
	rm -rf slpp_all {{ .Top }}.uhdm

.PHONY: all clean
`))
