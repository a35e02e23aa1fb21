// Package netutil provides network utility functions for address range checks.
package netutil

import (
	"fmt"
	"net"
)

// ValidateCIDR checks that s parses as a CIDR range.
func ValidateCIDR(s string) error {
	if _, _, err := net.ParseCIDR(s); err != nil {
		return fmt.Errorf("malformed cidr %q: %w", s, err)
	}
	return nil
}

// Contains reports whether address lies inside the cidr range. A cidr that
// does not parse or an address that is not a valid IP is an error.
func Contains(cidr, address string) (bool, error) {
	_, network, err := net.ParseCIDR(cidr)
	if err != nil {
		return false, fmt.Errorf("malformed cidr %q: %w", cidr, err)
	}
	ip := net.ParseIP(address)
	if ip == nil {
		return false, fmt.Errorf("%q is not a valid IP address", address)
	}
	return network.Contains(ip), nil
}
