package edam

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Options is one tool's open option mapping. Values are kept as cty values
// until an adapter reads them; validation is lazy and happens at read time,
// with defaults applied for absent or null entries.
type Options map[string]cty.Value

// Has reports whether the option is present and non-null.
func (o Options) Has(name string) bool {
	v, ok := o[name]
	return ok && !v.IsNull()
}

// String returns the named option converted to a string, or def when the
// option is absent or null.
func (o Options) String(name, def string) (string, error) {
	v, ok := o[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	conv, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("option %q: %w", name, err)
	}
	return conv.AsString(), nil
}

// Bool returns the named option converted to a bool, or def when the option
// is absent or null.
func (o Options) Bool(name string, def bool) (bool, error) {
	v, ok := o[name]
	if !ok || v.IsNull() {
		return def, nil
	}
	conv, err := convert.Convert(v, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("option %q: %w", name, err)
	}
	return conv.True(), nil
}

// StringList returns the named option as a list of strings. A list, tuple or
// set value converts element-wise; a single string value is tokenized on
// whitespace, so `options = "-flag1 -flag2"` and `options = ["-flag1",
// "-flag2"]` are equivalent. Absent or null options yield nil.
func (o Options) StringList(name string) ([]string, error) {
	v, ok := o[name]
	if !ok || v.IsNull() {
		return nil, nil
	}

	if v.Type() == cty.String {
		return strings.Fields(v.AsString()), nil
	}

	if !v.CanIterateElements() {
		return nil, fmt.Errorf("option %q: cannot read %s as a list of strings", name, v.Type().FriendlyName())
	}

	var out []string
	for it := v.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		conv, err := convert.Convert(ev, cty.String)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		out = append(out, conv.AsString())
	}
	return out, nil
}

// StringListVal builds the cty value for a list-of-strings option, for
// parents assembling a child design's tool options.
func StringListVal(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, s := range items {
		vals[i] = cty.StringVal(s)
	}
	return cty.ListVal(vals)
}

// StringMap returns the named option as a string-to-string mapping, with
// values converted element-wise. Absent or null options yield nil.
func (o Options) StringMap(name string) (map[string]string, error) {
	v, ok := o[name]
	if !ok || v.IsNull() {
		return nil, nil
	}
	if !v.Type().IsObjectType() && !v.Type().IsMapType() {
		return nil, fmt.Errorf("option %q: cannot read %s as a map of strings", name, v.Type().FriendlyName())
	}

	out := make(map[string]string)
	for it := v.ElementIterator(); it.Next(); {
		ek, ev := it.Element()
		conv, err := convert.Convert(ev, cty.String)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		out[ek.AsString()] = conv.AsString()
	}
	return out, nil
}
