package main

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/hidconf/hidconf-go/pkg/catalog"
	"github.com/hidconf/hidconf-go/pkg/convert"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/option"
)

var funcMap = template.FuncMap{
	"hex16":     func(v uint16) string { return fmt.Sprintf("0x%04X", v) },
	"quote":     func(s string) string { return fmt.Sprintf("%q", s) },
	"moduleVar": moduleVar,
	"kindConst": kindConst,
	"rangeExpr": rangeExpr,
	"convExpr":  convExpr,
	"strSlice":  strSlice,
	"layoutsOf": layoutsOf,
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(fileTmpl))

const fileTmpl = `{{define "file" -}}
// Code generated by hidconf-gen from {{.Source}}. DO NOT EDIT.

package {{.Package}}

import (
	"github.com/hidconf/hidconf-go/pkg/convert"
	"github.com/hidconf/hidconf-go/pkg/layout"
	"github.com/hidconf/hidconf-go/pkg/option"
)
{{range .Modules}}
// {{moduleVar .Key}} is the {{.Name}} module definition {{quote .Key}}.
var {{moduleVar .Key}} = MustModule({{quote .Key}}, {{quote .Name}},
	option.MustTable(
{{- range .Options.All}}
		option.Descriptor{
			Name: {{quote .Name}},
			Kind: {{kindConst .Kind}},
{{- with rangeExpr .Range}}
			Range: {{.}},
{{- end}}
			WireTag: {{quote .WireTag}},
{{- if .Description}}
			Description: {{quote .Description}},
{{- end}}
		},
{{- end}}
	),
{{- with layoutsOf .}}
	layout.MustRegistry(
{{- range .}}
		layout.MustNew({{quote .Tag}}, {{quote .Format}}, {{strSlice .Members}}{{convExpr .Converters}}),
{{- end}}
	),
{{- else}}
	nil,
{{- end}}
)
{{end}}
func builtinDevices() []*Device {
	return []*Device{
{{- range .Devices}}
		{
			Type: {{quote .Type}},
			VID: {{hex16 .VID}},
			PID: {{hex16 .PID}},
			StreamLEDCount: {{.StreamLEDCount}},
			Modules: []*Module{ {{- range $i, $m := .Modules}}{{if $i}}, {{end}}{{moduleVar $m.Key}}{{end -}} },
		},
{{- end}}
	}
}
{{end}}`

// fileData is the input of the file template.
type fileData struct {
	Source  string
	Package string
	Modules []*catalog.Module
	Devices []*catalog.Device
}

// Generate renders the Go source for cat. The result still needs goimports.
func Generate(cat *catalog.Catalog, source, pkg string) (code string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("template: %v", r)
		}
	}()

	var b strings.Builder
	data := fileData{
		Source:  source,
		Package: pkg,
		Modules: cat.Modules(),
		Devices: cat.Devices(),
	}
	if err := templates.ExecuteTemplate(&b, "file", data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// layoutsOf returns the registered layouts of m in tag order.
func layoutsOf(m *catalog.Module) []*layout.Layout {
	var out []*layout.Layout
	for _, tag := range m.Layouts.Tags() {
		l, _ := m.Layouts.Lookup(tag)
		out = append(out, l)
	}
	return out
}

// moduleVar converts "ble_bond_device" to "moduleBleBondDevice".
func moduleVar(key string) string {
	var b strings.Builder
	b.WriteString("module")
	for _, part := range strings.FieldsFunc(key, func(r rune) bool { return r == '_' || r == '-' }) {
		b.WriteString(strings.ToUpper(part[:1]) + part[1:])
	}
	return b.String()
}

func kindConst(k option.Kind) string {
	switch k {
	case option.KindInteger:
		return "option.KindInteger"
	case option.KindString:
		return "option.KindString"
	default:
		return "option.KindNone"
	}
}

// rangeExpr returns the Go expression of r, or "" for signal options.
func rangeExpr(r option.Range) string {
	switch r.Kind {
	case option.RangeNone:
		return ""
	case option.RangeInt:
		return fmt.Sprintf("option.IntRange(%d, %d)", r.Min, r.Max)
	}
	kind := "option.RangeTextNumeric"
	if r.Kind == option.RangeTextList {
		kind = "option.RangeTextList"
	}
	return fmt.Sprintf("option.Range{Kind: %s, Min: %d, Max: %d, MinText: %q, MaxText: %q}",
		kind, r.Min, r.Max, r.MinText, r.MaxText)
}

// convExpr renders the trailing converter arguments of layout.MustNew.
func convExpr(kinds []convert.Kind) string {
	if len(kinds) == 0 {
		return ""
	}
	var b strings.Builder
	for _, k := range kinds {
		b.WriteString(", convert.")
		switch k {
		case convert.BitmaskList:
			b.WriteString("BitmaskList")
		case convert.ReversedHex:
			b.WriteString("ReversedHex")
		default:
			b.WriteString("None")
		}
	}
	return b.String()
}

func strSlice(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = fmt.Sprintf("%q", s)
	}
	return "[]string{" + strings.Join(quoted, ", ") + "}"
}
