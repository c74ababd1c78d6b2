package cmderr

import (
	"errors"
	"fmt"
	"net"
	"os"
	"syscall"
	"testing"
)

// TestKindOf tests classification through wrapping chains
func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantOK   bool
	}{
		{"validation", Validation("invalid cmd"), KindValidation, true},
		{"transport", Transport(errors.New("dial failed")), KindTransport, true},
		{"protocol", Protocol("GET nfvs/1", 418), KindProtocol, true},
		{"resource", Resource("no such subgraph %q", "vm1"), KindResource, true},
		{"wrapped resource", fmt.Errorf("topo: %w", Resource("missing")), KindResource, true},
		{"plain error", errors.New("boom"), 0, false},
		{"nil", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := KindOf(tt.err)
			if ok != tt.wantOK {
				t.Fatalf("KindOf() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && kind != tt.wantKind {
				t.Errorf("KindOf() = %v, want %v", kind, tt.wantKind)
			}
		})
	}
}

// TestMessage tests the operator-facing rendering of each kind
func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"transport is silent", Transport(errors.New("connection refused")), ""},
		{"protocol", Protocol("PUT nfvs/1/ports", 418), "Error: unknown response."},
		{"validation", Validation("invalid cmd"), "invalid cmd"},
		{"resource", Resource("subgraph '%s' does not exist", "vm1"), "subgraph 'vm1' does not exist"},
		{"unclassified", errors.New("boom"), "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Message(tt.err); got != tt.want {
				t.Errorf("Message() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestProtocolUnwrap tests that the status code survives in the wrapped error
func TestProtocolUnwrap(t *testing.T) {
	err := Protocol("GET primary/status", 418)
	if !Is(err, KindProtocol) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	inner := errors.Unwrap(err)
	if inner == nil || inner.Error() != "GET primary/status returned status 418" {
		t.Errorf("unexpected wrapped error: %v", inner)
	}
}

// TestIsConnectionRefused tests connection refused detection
func TestIsConnectionRefused(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}
	if !IsConnectionRefused(refused) {
		t.Error("expected connection refused to be detected")
	}
	if !IsConnectionRefused(fmt.Errorf("request failed: %w", refused)) {
		t.Error("expected wrapped connection refused to be detected")
	}
	if IsConnectionRefused(errors.New("timeout")) {
		t.Error("plain error must not be detected as connection refused")
	}
	if IsConnectionRefused(nil) {
		t.Error("nil must not be detected as connection refused")
	}
}
