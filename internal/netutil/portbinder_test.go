package netutil

import (
	"errors"
	"fmt"
	"testing"
)

// TestBindTCP tests binding an ephemeral port and detecting a conflict
func TestBindTCP(t *testing.T) {
	listener, err := BindTCP("127.0.0.1:0")
	if err != nil {
		t.Fatalf("BindTCP() error: %v", err)
	}
	defer listener.Close()

	port, err := ListenerPort(listener)
	if err != nil || port == 0 {
		t.Fatalf("ListenerPort() = %d, %v", port, err)
	}

	_, err = BindTCP(fmt.Sprintf("127.0.0.1:%d", port))
	var inUse *AddressInUseError
	if !errors.As(err, &inUse) {
		t.Fatalf("second BindTCP() error = %v, want AddressInUseError", err)
	}
	if inUse.Port != port || !IsAddressInUseError(err) {
		t.Errorf("AddressInUseError = %+v", inUse)
	}
}

// TestBindTCPInvalidAddress tests malformed addresses
func TestBindTCPInvalidAddress(t *testing.T) {
	for _, addr := range []string{"127.0.0.1", "127.0.0.1:http-alt", ""} {
		if _, err := BindTCP(addr); err == nil {
			t.Errorf("BindTCP(%q) expected error", addr)
		}
	}
}
