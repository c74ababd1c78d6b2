package validate

import (
	"fmt"
	"net"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var (
	// Global validator instance using built-in validations
	validate *validator.Validate
)

func init() {
	validate = validator.New()
}

// NetworkAddress represents a validated control API endpoint with host and port
// components. The host may be an IP address or a hostname since the control server
// is often reached by name on a management network.
type NetworkAddress struct {
	Host string `validate:"required,hostname|ip"`
	Port int    `validate:"required,min=1,max=65535"`
}

// String returns the network address in standard "host:port" format.
func (na NetworkAddress) String() string {
	return net.JoinHostPort(na.Host, strconv.Itoa(na.Port))
}

// ParseAPIAddress parses and validates a "host:port" control API address given by
// the operator on the command line or in the config file.
//
// Port 0 is rejected because a client must connect to a concrete port.
func ParseAPIAddress(addr string) (*NetworkAddress, error) {
	if addr == "" {
		return nil, fmt.Errorf("address cannot be empty")
	}

	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid address format '%s': %w", addr, err)
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid port '%s': %w", portStr, err)
	}

	netAddr := &NetworkAddress{
		Host: host,
		Port: port,
	}

	if err := validate.Struct(netAddr); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	return netAddr, nil
}

// ValidateField validates individual values against validator tags.
//
// Example: ValidateField(7777, "required,min=1,max=65535")
func ValidateField(value any, tag string) error {
	return validate.Var(value, tag)
}

// ValidateListenAddress checks a "host:port" address a server will bind to. The
// host may be empty to listen on every interface.
func ValidateListenAddress(addr string) error {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return fmt.Errorf("invalid listen address '%s': %w", addr, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("invalid listen port '%s': %w", portStr, err)
	}
	if err := ValidatePortRange(port); err != nil {
		return fmt.Errorf("listen port %d out of range 1-65535", port)
	}
	return nil
}
