package yaml

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// yamlToCty bridges one YAML value node into CTY. Sequences become tuples
// and mappings become objects so that mixed element types survive; the lazy
// option accessors convert them on read.
func yamlToCty(node *yaml.Node) (cty.Value, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarToCty(node)
	case yaml.SequenceNode:
		if len(node.Content) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, 0, len(node.Content))
		for _, c := range node.Content {
			v, err := yamlToCty(c)
			if err != nil {
				return cty.NilVal, err
			}
			elems = append(elems, v)
		}
		return cty.TupleVal(elems), nil
	case yaml.MappingNode:
		if len(node.Content) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(node.Content)/2)
		for _, p := range mappingPairs(node) {
			v, err := yamlToCty(p.value)
			if err != nil {
				return cty.NilVal, err
			}
			attrs[p.key.Value] = v
		}
		return cty.ObjectVal(attrs), nil
	case yaml.AliasNode:
		return yamlToCty(node.Alias)
	}
	return cty.NilVal, fmt.Errorf("cannot convert %s node to a value", nodeKindName(node.Kind))
}

// scalarToCty converts a scalar node according to its resolved tag, so that
// `8`, `8.5`, `true` and `"8"` keep their YAML types.
func scalarToCty(node *yaml.Node) (cty.Value, error) {
	switch node.Tag {
	case "!!null":
		return cty.NullVal(cty.DynamicPseudoType), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return cty.NilVal, fmt.Errorf("bad bool %q: %w", node.Value, err)
		}
		return cty.BoolVal(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return cty.NilVal, fmt.Errorf("bad integer %q: %w", node.Value, err)
		}
		return cty.NumberIntVal(i), nil
	case "!!float":
		var f float64
		if err := node.Decode(&f); err != nil {
			return cty.NilVal, fmt.Errorf("bad float %q: %w", node.Value, err)
		}
		return cty.NumberFloatVal(f), nil
	}
	return cty.StringVal(node.Value), nil
}
