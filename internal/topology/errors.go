package topology

import "errors"

// Resolution failures are configuration defects, never transient conditions.
// Each category below gets a sentinel so callers can classify a failure with
// errors.Is while the wrapped message carries the offending class, network,
// or instance name.
var (
	// ErrCircularInheritance is returned when a parent_class chain loops
	// back on itself.
	ErrCircularInheritance = errors.New("circular inheritance")

	// ErrUndefinedParent is returned when a parent_class names a node class
	// that does not exist.
	ErrUndefinedParent = errors.New("undefined parent class")

	// ErrUndefinedReference is returned when an interface, placement, or
	// DHCP selector names a network or blade class that does not resolve.
	ErrUndefinedReference = errors.New("undefined reference")

	// ErrDuplicateTunnelID is returned when two non-deleted networks share
	// a tunnel id.
	ErrDuplicateTunnelID = errors.New("duplicate tunnel id")

	// ErrDuplicateNodeName is returned when two node instances end up with
	// the same name, whether explicit or derived from a base name.
	ErrDuplicateNodeName = errors.New("duplicate node name")

	// ErrCapacityExceeded is returned when a host blade declares a
	// non-positive instance capacity.
	ErrCapacityExceeded = errors.New("blade capacity exceeded")

	// ErrAddressOutOfRange is returned when a configured address falls
	// outside its network's CIDR.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrAddressPoolExhausted is returned when a static address pool runs
	// out before every instance is covered. Reserved pools fall back to
	// dynamic addressing instead; static interfaces have no DHCP server to
	// fall back to.
	ErrAddressPoolExhausted = errors.New("static address pool exhausted")
)
