package dispatcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperation_String(t *testing.T) {
	testCases := []struct {
		description string
		op          *Operation
		expect      string
	}{
		{
			description: "no params",
			op:          NewOperation("/subsystem=undertow", OpReadResource),
			expect:      "/subsystem=undertow:read-resource",
		},
		{
			description: "sorted params",
			op:          NewOperation("/a=b", OpWriteAttribute).Param(ParamValue, 1).Param(ParamName, "port"),
			expect:      "/a=b:write-attribute(name=port,value=1)",
		},
		{
			description: "root",
			op:          NewOperation("", OpReload),
			expect:      "/:reload",
		},
		{
			description: "composite",
			op:          Composite(NewOperation("/a=b", OpReload), NewOperation("/c=d", OpReadResource)),
			expect:      "composite[/a=b:reload, /c=d:read-resource]",
		},
	}
	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			assert.Equal(t, testCase.expect, testCase.op.String())
		})
	}
}

func TestAddress(t *testing.T) {
	address := Root.Append("socket-binding-group", "standard-sockets").Append("socket-binding", "http")
	assert.Equal(t, Address("/socket-binding-group=standard-sockets/socket-binding=http"), address)
	assert.Equal(t, []string{"socket-binding-group=standard-sockets", "socket-binding=http"}, address.Segments())
}
