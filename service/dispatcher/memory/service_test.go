package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/flow/service/dispatcher"
)

const iface dispatcher.Address = "/core-service=management/management-interface=http-interface"

func TestService_Execute(t *testing.T) {
	testCases := []struct {
		description string
		op          *dispatcher.Operation
		expect      interface{}
		expectErr   bool
	}{
		{
			description: "read attribute",
			op:          dispatcher.NewOperation(iface, dispatcher.OpReadAttribute).Param(dispatcher.ParamName, "socket-binding"),
			expect:      "management-http",
		},
		{
			description: "read resource",
			op:          dispatcher.NewOperation(iface, dispatcher.OpReadResource),
			expect:      map[string]interface{}{"socket-binding": "management-http", "ssl-context": "ctx"},
		},
		{
			description: "read children names",
			op:          dispatcher.NewOperation(dispatcher.Root, dispatcher.OpReadChildrenNames).Param(dispatcher.ParamChildType, "socket-binding-group"),
			expect:      []interface{}{"standard-sockets"},
		},
		{
			description: "missing resource",
			op:          dispatcher.NewOperation("/subsystem=missing", dispatcher.OpReadResource),
			expectErr:   true,
		},
		{
			description: "unknown operation",
			op:          dispatcher.NewOperation(iface, "explode"),
			expectErr:   true,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			srv := New().
				Define(iface, map[string]interface{}{"socket-binding": "management-http", "ssl-context": "ctx"}).
				Define("/socket-binding-group=standard-sockets", nil).
				Define("/socket-binding-group=standard-sockets/socket-binding=http", nil)
			result, err := srv.Execute(context.Background(), testCase.op)
			if testCase.expectErr {
				var resultErr *dispatcher.ResultError
				assert.True(t, errors.As(err, &resultErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, result.Value)
		})
	}
}

func TestService_CompositeIsAtomic(t *testing.T) {
	srv := New().Define(iface, map[string]interface{}{"ssl-context": "ctx", "secure-socket-binding": "https"})

	_, err := dispatcher.ExecuteComposite(context.Background(), srv,
		dispatcher.NewOperation(iface, dispatcher.OpUndefineAttribute).Param(dispatcher.ParamName, "ssl-context"),
		dispatcher.NewOperation("/missing=x", dispatcher.OpUndefineAttribute).Param(dispatcher.ParamName, "a"),
	)
	require.Error(t, err)
	attributes, _ := srv.Resource(iface)
	assert.Equal(t, "ctx", attributes["ssl-context"])

	result, err := dispatcher.ExecuteComposite(context.Background(), srv,
		dispatcher.NewOperation(iface, dispatcher.OpUndefineAttribute).Param(dispatcher.ParamName, "ssl-context"),
		dispatcher.NewOperation(iface, dispatcher.OpWriteAttribute).Param(dispatcher.ParamName, "port").Param(dispatcher.ParamValue, 9990),
		dispatcher.NewOperation(dispatcher.Root, dispatcher.OpReload),
	)
	require.NoError(t, err)
	assert.Len(t, result.Steps, 3)
	attributes, _ = srv.Resource(iface)
	assert.Equal(t, map[string]interface{}{"secure-socket-binding": "https", "port": 9990}, attributes)
	assert.Equal(t, 1, srv.Reloads())
	assert.Len(t, srv.Calls(), 2)
}

func TestService_HandlerAndListener(t *testing.T) {
	var observed []string
	boom := errors.New("boom")
	srv := New(
		WithHandler(dispatcher.OpReload, func(context.Context, *dispatcher.Operation) (*dispatcher.Result, error) {
			return nil, boom
		}),
		WithListener(func(op *dispatcher.Operation, _ *dispatcher.Result, err error) {
			observed = append(observed, op.Name)
		}),
	)
	_, err := srv.Execute(context.Background(), dispatcher.NewOperation(dispatcher.Root, dispatcher.OpReload))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{dispatcher.OpReload}, observed)
	assert.Equal(t, 0, srv.Reloads())
}

func TestService_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Execute(ctx, dispatcher.NewOperation(dispatcher.Root, dispatcher.OpReadResource))
	assert.ErrorIs(t, err, context.Canceled)
}
