package dispatcher

import (
	"sort"
	"strings"
)

// Common operation names.
const (
	OpReadResource      = "read-resource"
	OpReadAttribute     = "read-attribute"
	OpWriteAttribute    = "write-attribute"
	OpUndefineAttribute = "undefine-attribute"
	OpReadChildrenNames = "read-children-names"
	OpReload            = "reload"
	OpComposite         = "composite"
)

// Common parameter names.
const (
	ParamName      = "name"
	ParamValue     = "value"
	ParamChildType = "child-type"
)

// Address identifies a resource as an ordered list of type=name segments,
// e.g. "/core-service=management/management-interface=http-interface".
type Address string

// Root is the address of the management root.
const Root Address = "/"

// Segments returns the "type=name" parts of the address.
func (a Address) Segments() []string {
	var result []string
	for _, part := range strings.Split(string(a), "/") {
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Append returns a child address.
func (a Address) Append(kind, name string) Address {
	return Address(strings.TrimSuffix(string(a), "/") + "/" + kind + "=" + name)
}

// Operation is a single management request.
type Operation struct {
	Address Address                `json:"address"`
	Name    string                 `json:"operation"`
	Params  map[string]interface{} `json:"params,omitempty"`
	Steps   []*Operation           `json:"steps,omitempty"`
}

// NewOperation creates an operation.
func NewOperation(address Address, name string) *Operation {
	return &Operation{Address: address, Name: name}
}

// Param sets a parameter and returns the operation for chaining.
func (o *Operation) Param(name string, value interface{}) *Operation {
	if o.Params == nil {
		o.Params = map[string]interface{}{}
	}
	o.Params[name] = value
	return o
}

// String renders the operation in CLI-like form,
// e.g. "/a=b:undefine-attribute(name=ssl-context)".
func (o *Operation) String() string {
	if o.Name == OpComposite {
		parts := make([]string, len(o.Steps))
		for i, step := range o.Steps {
			parts[i] = step.String()
		}
		return OpComposite + "[" + strings.Join(parts, ", ") + "]"
	}
	address := string(o.Address)
	if address == "" {
		address = string(Root)
	}
	builder := strings.Builder{}
	builder.WriteString(address)
	builder.WriteString(":")
	builder.WriteString(o.Name)
	if len(o.Params) > 0 {
		names := make([]string, 0, len(o.Params))
		for name := range o.Params {
			names = append(names, name)
		}
		sort.Strings(names)
		builder.WriteString("(")
		for i, name := range names {
			if i > 0 {
				builder.WriteString(",")
			}
			builder.WriteString(name)
			builder.WriteString("=")
			builder.WriteString(toString(o.Params[name]))
		}
		builder.WriteString(")")
	}
	return builder.String()
}

// Composite groups ops into one operation executed atomically.
func Composite(ops ...*Operation) *Operation {
	return &Operation{Address: Root, Name: OpComposite, Steps: ops}
}
