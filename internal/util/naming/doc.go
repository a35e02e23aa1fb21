// Package naming provides consistent naming functions for resolved topology
// resources.
//
// Node names beyond a class's explicit list follow {base}-{n} with n counting
// from zero, and virtual network devices follow the tunnel/bridge convention
// (the tunnel device named after its network, the bridge prefixed with br-).
// Keeping the patterns in one place lets downstream provisioning layers
// reconstruct names without carrying extra state.
package naming
