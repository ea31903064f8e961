package strictjson

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/openhomelab/strictjson/i18n"
)

// FromYAMLBytes builds a Value from one YAML document. Mapping key order
// is preserved, duplicate and non-string mapping keys are rejected, and
// scalars are mapped onto the six JSON kinds (integers become numbers).
// Automation configs are commonly written in YAML; this converts them so
// the same parsers serve both formats.
func FromYAMLBytes(data []byte, opts ...ReadOpt) (Value, error) {
	var opt ReadOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return Value{}, &ParseError{Code: CodeParseError, Message: err.Error(), Cause: err}
	}
	node := &root
	if node.Kind == 0 {
		// Empty input leaves the node unset.
		return Null(), nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return Null(), nil
		}
		node = node.Content[0]
	}
	c := &yamlConverter{maxDepth: opt.MaxDepth, busy: map[*yaml.Node]bool{}}
	return c.value(node, Path{}, 0)
}

// yamlConverter walks the node tree. busy holds the container nodes on
// the current conversion stack, so an alias that resolves back into one
// of them is reported instead of recursing forever.
type yamlConverter struct {
	maxDepth int
	busy     map[*yaml.Node]bool
}

func (c *yamlConverter) value(n *yaml.Node, at Path, depth int) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return c.value(n.Alias, at, depth)
	case yaml.MappingNode:
		if c.busy[n] {
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "cyclic alias"}
		}
		c.busy[n] = true
		defer delete(c.busy, n)
		depth++
		if err := c.checkDepth(at, depth); err != nil {
			return Value{}, err
		}
		obj := NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if kn.Kind != yaml.ScalarNode || (kn.Tag != "!!str" && kn.Tag != "") {
				return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "mapping key is not a string"}
			}
			key := kn.Value
			if obj.Has(key) {
				return Value{}, &ParseError{
					Code:    CodeDuplicateKey,
					Path:    at.Field(key),
					Field:   key,
					Message: i18n.T(CodeDuplicateKey, map[string]string{"key": key}),
				}
			}
			v, err := c.value(vn, at.Field(key), depth)
			if err != nil {
				return Value{}, err
			}
			obj.Set(key, v)
		}
		return ObjectValue(obj), nil
	case yaml.SequenceNode:
		if c.busy[n] {
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "cyclic alias"}
		}
		c.busy[n] = true
		defer delete(c.busy, n)
		depth++
		if err := c.checkDepth(at, depth); err != nil {
			return Value{}, err
		}
		elems := make([]Value, 0, len(n.Content))
		for i, en := range n.Content {
			v, err := c.value(en, at.Index(i), depth)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, v)
		}
		return Array(elems...), nil
	case yaml.ScalarNode:
		return valueFromYAMLScalar(n, at)
	default:
		return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "unsupported YAML node"}
	}
}

func (c *yamlConverter) checkDepth(at Path, depth int) error {
	if c.maxDepth > 0 && depth > c.maxDepth {
		return &ParseError{Code: CodeMaxDepth, Path: at, Message: i18n.T(CodeMaxDepth, nil)}
	}
	return nil
}

func valueFromYAMLScalar(n *yaml.Node, at Path) (Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "invalid bool " + n.Value, Cause: err}
		}
		return Bool(b), nil
	case "!!int", "!!float":
		f, err := strconv.ParseFloat(n.Value, 64)
		if err != nil {
			return Value{}, &ParseError{Code: CodeParseError, Path: at, Message: "invalid number " + n.Value, Cause: err}
		}
		return Number(f), nil
	default:
		return String(n.Value), nil
	}
}
