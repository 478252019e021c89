package edam

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestOptionsString(t *testing.T) {
	t.Parallel()

	opts := Options{
		"part": cty.StringVal("xc7a35t"),
		"seed": cty.NumberIntVal(7),
		"none": cty.NullVal(cty.String),
	}

	got, err := opts.String("part", "")
	require.NoError(t, err)
	require.Equal(t, "xc7a35t", got)

	// Numbers convert to their canonical string form.
	got, err = opts.String("seed", "")
	require.NoError(t, err)
	require.Equal(t, "7", got)

	// Absent and null options fall back to the default.
	got, err = opts.String("missing", "build")
	require.NoError(t, err)
	require.Equal(t, "build", got)

	got, err = opts.String("none", "fallback")
	require.NoError(t, err)
	require.Equal(t, "fallback", got)
}

func TestOptionsString_ConversionError(t *testing.T) {
	t.Parallel()

	opts := Options{"part": cty.ListVal([]cty.Value{cty.StringVal("a")})}

	_, err := opts.String("part", "")
	require.Error(t, err)
	require.Contains(t, err.Error(), `option "part"`)
}

func TestOptionsBool(t *testing.T) {
	t.Parallel()

	opts := Options{
		"fasm2bels": cty.True,
		"as_text":   cty.StringVal("true"),
	}

	got, err := opts.Bool("fasm2bels", false)
	require.NoError(t, err)
	require.True(t, got)

	// cty converts "true" to a bool.
	got, err = opts.Bool("as_text", false)
	require.NoError(t, err)
	require.True(t, got)

	got, err = opts.Bool("missing", true)
	require.NoError(t, err)
	require.True(t, got)
}

func TestOptionsStringList(t *testing.T) {
	t.Parallel()

	opts := Options{
		"from_list":  cty.ListVal([]cty.Value{cty.StringVal("-flatten"), cty.StringVal("-retime")}),
		"from_tuple": cty.TupleVal([]cty.Value{cty.StringVal("-abc9"), cty.NumberIntVal(2)}),
		"from_str":   cty.StringVal("-flatten frontend=surelog"),
		"not_a_list": cty.True,
	}

	got, err := opts.StringList("from_list")
	require.NoError(t, err)
	require.Equal(t, []string{"-flatten", "-retime"}, got)

	got, err = opts.StringList("from_tuple")
	require.NoError(t, err)
	require.Equal(t, []string{"-abc9", "2"}, got)

	// A single string tokenizes on whitespace.
	got, err = opts.StringList("from_str")
	require.NoError(t, err)
	require.Equal(t, []string{"-flatten", "frontend=surelog"}, got)

	got, err = opts.StringList("missing")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = opts.StringList("not_a_list")
	require.Error(t, err)
}

func TestOptionsStringMap(t *testing.T) {
	t.Parallel()

	opts := Options{
		"clocks": cty.ObjectVal(map[string]cty.Value{
			"clk":     cty.NumberIntVal(10),
			"sys_clk": cty.StringVal("5.0"),
		}),
	}

	got, err := opts.StringMap("clocks")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"clk": "10", "sys_clk": "5.0"}, got)

	got, err = opts.StringMap("missing")
	require.NoError(t, err)
	require.Nil(t, got)

	_, err = Options{"clocks": cty.StringVal("clk")}.StringMap("clocks")
	require.Error(t, err)
}

func TestOptionsOnNilMap(t *testing.T) {
	t.Parallel()

	// A design with no options for a tool hands adapters a nil map; every
	// getter must still work and yield defaults.
	var opts Options

	require.False(t, opts.Has("anything"))

	s, err := opts.String("part", "default")
	require.NoError(t, err)
	require.Equal(t, "default", s)

	b, err := opts.Bool("flag", false)
	require.NoError(t, err)
	require.False(t, b)

	l, err := opts.StringList("list")
	require.NoError(t, err)
	require.Nil(t, l)
}
