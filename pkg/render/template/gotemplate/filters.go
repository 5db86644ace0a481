package gotemplate

import (
	"strings"

	"github.com/flosch/pongo2/v6"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func registerDefaultFilters() {
	if !pongo2.FilterExists("emit") {
		_ = pongo2.RegisterFilter("emit", filterEmit)
	}
	if !pongo2.FilterExists("alpha") {
		_ = pongo2.RegisterFilter("alpha", filterAlpha)
	}
}

// filterEmit writes a user-supplied value. With the "raw" parameter the value
// is emitted verbatim; any other parameter HTML-escapes it. Either way the
// result is marked safe so autoescape does not apply a second pass.
func filterEmit(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	value := in.String()
	if param != nil && param.String() == RawPolicy {
		return pongo2.AsSafeValue(value), nil
	}
	return pongo2.AsSafeValue(htmlEscaper.Replace(value)), nil
}

// filterAlpha appends a two-digit hex alpha suffix to a #rrggbb color, e.g.
// {{ accent|alpha:"20" }} yields #3b82f620.
func filterAlpha(in *pongo2.Value, param *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	color := strings.TrimSpace(in.String())
	if param == nil {
		return pongo2.AsSafeValue(color), nil
	}
	return pongo2.AsSafeValue(color + strings.TrimSpace(param.String())), nil
}
