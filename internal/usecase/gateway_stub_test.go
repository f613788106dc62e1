package usecase

import (
	"context"
	"errors"

	"github.com/anipesuryateja/designa-gateway/internal/core/domain"
)

// recordedCall captures one outbound backend call for assertions.
type recordedCall struct {
	operation string
	params    []domain.Param
}

// gatewayStub is a scripted RemoteGateway: replies and errors are keyed
// by operation name, and every call is recorded in order.
type gatewayStub struct {
	calls   []recordedCall
	replies map[string]domain.RemoteValue
	errs    map[string]error
}

func newGatewayStub() *gatewayStub {
	return &gatewayStub{
		replies: make(map[string]domain.RemoteValue),
		errs:    make(map[string]error),
	}
}

func (g *gatewayStub) Call(_ context.Context, operation string, params []domain.Param) (domain.RemoteValue, error) {
	g.calls = append(g.calls, recordedCall{operation: operation, params: params})
	if err, ok := g.errs[operation]; ok {
		return domain.RemoteValue{}, err
	}
	if reply, ok := g.replies[operation]; ok {
		return reply, nil
	}
	return domain.RemoteValue{}, errors.New("unexpected operation: " + operation)
}

func (g *gatewayStub) callsTo(operation string) []recordedCall {
	var out []recordedCall
	for _, c := range g.calls {
		if c.operation == operation {
			out = append(out, c)
		}
	}
	return out
}

func paramValue(params []domain.Param, name string) (string, bool) {
	for _, p := range params {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// terminalStub is a scripted TerminalGateway recording every envelope.
type terminalStub struct {
	requests []domain.TerminalRequest
	reply    map[string]string
	err      error
}

func (s *terminalStub) Send(_ context.Context, treq domain.TerminalRequest) (map[string]string, error) {
	s.requests = append(s.requests, treq)
	if s.err != nil {
		return nil, s.err
	}
	reply := make(map[string]string, len(s.reply))
	for k, v := range s.reply {
		reply[k] = v
	}
	return reply, nil
}
