package topology

import (
	"crypto/rand"
	"fmt"
	"sync"
)

// macPrefix is the locally administered OUI reserved for KVM guests. Every
// generated MAC starts with it so planned addresses never collide with
// physical hardware.
const macPrefix = "52:54:00"

// macPlanner hands out MAC addresses for node interfaces. Addresses
// configured in an interface's AF_PACKET addr_info block are honored
// positionally by instance index; the planner generates the rest, keeping
// track of what it has issued so one resolution never repeats an address.
// Safe for concurrent use by parallel per-class resolution.
type macPlanner struct {
	mu     sync.Mutex
	issued map[string]bool
}

func newMACPlanner() *macPlanner {
	return &macPlanner{issued: map[string]bool{}}
}

// macFor returns the MAC address for the given instance index, preferring a
// configured address when the AF_PACKET block covers the index.
func (p *macPlanner) macFor(layer2 AddrInfo, index int) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if index < len(layer2.Addresses) {
		mac := layer2.Addresses[index]
		p.issued[mac] = true
		return mac, nil
	}
	for {
		mac, err := randomMAC()
		if err != nil {
			return "", err
		}
		if !p.issued[mac] {
			p.issued[mac] = true
			return mac, nil
		}
	}
}

func randomMAC() (string, error) {
	var tail [3]byte
	if _, err := rand.Read(tail[:]); err != nil {
		return "", fmt.Errorf("failed to generate MAC address: %w", err)
	}
	return fmt.Sprintf("%s:%02x:%02x:%02x", macPrefix, tail[0], tail[1], tail[2]), nil
}
