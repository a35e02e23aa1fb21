package naming

import "fmt"

// Naming functions for topology resources.
// All generated names follow fixed patterns to enable easy identification
// and reconstruction by provisioning collaborators.

// Node returns the numbered node name for the nth instance past a class's
// explicit name list.
func Node(base string, n int) string {
	return fmt.Sprintf("%s-%d", base, n)
}

// Tunnel returns the default tunnel device name for a network.
func Tunnel(network string) string {
	return network
}

// Bridge returns the bridge device name fronting a tunnel device.
func Bridge(tunnel string) string {
	return fmt.Sprintf("br-%s", tunnel)
}
