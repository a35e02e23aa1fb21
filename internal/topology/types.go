package topology

import (
	"fmt"

	"github.com/imamik/topoplan/internal/configtree"
)

// AddressFamily identifies the protocol family of an address configuration
// block, using the socket-layer family names the cluster configs use.
type AddressFamily string

const (
	// FamilyIPv4 is the IPv4 address family.
	FamilyIPv4 AddressFamily = "AF_INET"
	// FamilyIPv6 is the IPv6 address family.
	FamilyIPv6 AddressFamily = "AF_INET6"
	// FamilyLayer2 is the link-layer family carrying MAC addresses.
	FamilyLayer2 AddressFamily = "AF_PACKET"
)

// IsValid returns true if the family is one the resolver understands.
func (f AddressFamily) IsValid() bool {
	switch f {
	case FamilyIPv4, FamilyIPv6, FamilyLayer2:
		return true
	default:
		return false
	}
}

// AddressMode describes how an interface obtains an address for one family.
type AddressMode string

const (
	// ModeStatic consumes an address from the configured pool; the address
	// is written into the node's own network configuration.
	ModeStatic AddressMode = "static"
	// ModeReserved consumes an address from the configured pool but the
	// address is handed out through a DHCP reservation, so a node that
	// misses the pool can still come up with a dynamic lease.
	ModeReserved AddressMode = "reserved"
	// ModeDynamic assigns nothing; an external DHCP collaborator supplies
	// the address at deploy time.
	ModeDynamic AddressMode = "dynamic"
)

// IsValid returns true if the mode is a recognized addressing mode.
func (m AddressMode) IsValid() bool {
	switch m {
	case ModeStatic, ModeReserved, ModeDynamic:
		return true
	default:
		return false
	}
}

// NodeClass is a fully flattened node class definition: the result of folding
// a parent_class chain through the merge engine and pruning tombstoned
// interfaces, disks, and partitions.
type NodeClass struct {
	// Name is the class key in the node_classes table.
	Name string `yaml:"-" json:"name"`

	// ParentClass names the class this one inherits from. Empty for root
	// classes. Retained for diagnostics only; resolution flattens it away.
	ParentClass string `yaml:"parent_class" json:"-"`

	// PureBaseClass marks a template class that exists only to be
	// inherited from and is never instantiated.
	PureBaseClass bool `yaml:"pure_base_class" json:"-"`

	// NodeCount is the number of instances to create from this class.
	NodeCount int `yaml:"node_count" json:"node_count"`

	// HostBlade describes the blade class hosting instances of this class
	// and how many instances fit on one blade.
	HostBlade HostBlade `yaml:"host_blade" json:"host_blade"`

	// VirtualMachine is the machine shape for instances of this class.
	VirtualMachine VirtualMachine `yaml:"virtual_machine" json:"virtual_machine"`

	// NodeNaming drives node (virtual machine) naming.
	NodeNaming NodeNaming `yaml:"node_naming" json:"node_naming"`

	// HostNaming optionally drives hostname assignment separately from
	// node naming. When absent, hostnames follow node names.
	HostNaming *HostNaming `yaml:"host_naming" json:"host_naming,omitempty"`

	// NetworkInterfaces maps logical interface names to their network
	// bindings and address configuration.
	NetworkInterfaces map[string]NetworkInterface `yaml:"network_interfaces" json:"network_interfaces,omitempty"`
}

// HostBlade identifies the blade class that hosts a node class and the
// per-blade instance capacity.
type HostBlade struct {
	BladeClass string `yaml:"blade_class" json:"blade_class"`

	// InstanceCapacity is how many instances of the owning node class fit
	// on a single blade instance. Defaults to 1 when unset.
	InstanceCapacity *int `yaml:"instance_capacity" json:"instance_capacity,omitempty"`
}

// Capacity returns the effective instance capacity, defaulting to 1.
func (hb HostBlade) Capacity() int {
	if hb.InstanceCapacity == nil {
		return 1
	}
	return *hb.InstanceCapacity
}

// VirtualMachine is the machine shape of a node class.
type VirtualMachine struct {
	CPUCount      int `yaml:"cpu_count" json:"cpu_count"`
	MemorySizeMiB int `yaml:"memory_size_mib" json:"memory_size_mib"`

	BootDisk *Disk `yaml:"boot_disk" json:"boot_disk,omitempty"`

	// AdditionalDisks maps disk names to extra disk definitions.
	AdditionalDisks map[string]Disk `yaml:"additional_disks" json:"additional_disks,omitempty"`
}

// Disk is a single virtual disk definition. A disk is built either from a
// source image or from a partition table, never both.
type Disk struct {
	DiskSizeMB   int    `yaml:"disk_size_mb" json:"disk_size_mb,omitempty"`
	SourceImage  string `yaml:"source_image" json:"source_image,omitempty"`
	TargetDevice string `yaml:"target_device" json:"target_device,omitempty"`

	// Partitions is carried through opaquely for downstream provisioning;
	// the resolver only prunes tombstoned entries.
	Partitions map[string]configtree.Tree `yaml:"partitions" json:"partitions,omitempty"`
}

// NodeNaming drives the names given to node instances: explicit names first,
// then numbered names derived from the base name.
type NodeNaming struct {
	BaseName  string   `yaml:"base_name" json:"base_name"`
	NodeNames []string `yaml:"node_names" json:"node_names,omitempty"`
}

// HostNaming drives hostname assignment when it differs from node naming.
type HostNaming struct {
	BaseName  string   `yaml:"base_name" json:"base_name"`
	Hostnames []string `yaml:"hostnames" json:"hostnames,omitempty"`
}

// NetworkInterface binds a logical interface of a node class to a virtual
// network and carries its per-family address configuration.
type NetworkInterface struct {
	// ClusterNetwork names the virtual network this interface attaches to.
	ClusterNetwork string `yaml:"cluster_network" json:"cluster_network"`

	// AddrInfo maps arbitrary block names to per-family address
	// configuration. At most one block per family is allowed.
	AddrInfo map[string]AddrInfo `yaml:"addr_info" json:"addr_info,omitempty"`
}

// AddrInfo is the address configuration of one interface for one family.
type AddrInfo struct {
	Family AddressFamily `yaml:"family" json:"family"`

	// Mode defaults to dynamic when unset.
	Mode AddressMode `yaml:"mode" json:"mode,omitempty"`

	// Addresses is the positional pool consumed by static and reserved
	// modes, indexed by instance number within the class.
	Addresses []string `yaml:"addresses" json:"addresses,omitempty"`

	// HostnameSuffix is appended to instance hostnames for lookups scoped
	// to this interface's network.
	HostnameSuffix string `yaml:"hostname_suffix" json:"hostname_suffix,omitempty"`
}

// Network is a resolved virtual network definition.
type Network struct {
	// Name is the network's table key, or the explicit network_name field
	// when one is configured.
	Name string `yaml:"network_name" json:"name"`

	// Devices names the link devices realizing this network on each blade.
	Devices NetworkDevices `yaml:"devices" json:"devices"`

	// TunnelID is the VxLAN id of the overlay tunnel. Unique across all
	// resolved networks.
	TunnelID int `yaml:"tunnel_id" json:"tunnel_id"`

	// BladeInterconnect names the provider-layer interconnect the overlay
	// is tunneled over.
	BladeInterconnect string `yaml:"blade_interconnect" json:"blade_interconnect"`

	// L3Configs maps arbitrary block names to per-family layer-3
	// configuration. At most one block per family is allowed.
	L3Configs map[string]L3Config `yaml:"l3_configs" json:"l3_configs,omitempty"`
}

// NetworkDevices names the devices that realize a network on a blade.
type NetworkDevices struct {
	// Tunnel is the VxLAN tunnel device name. Defaults to the network name.
	Tunnel string `yaml:"tunnel" json:"tunnel"`

	// BridgeName is the bridge mastering the tunnel. Defaults to
	// "br-<tunnel>".
	BridgeName string `yaml:"bridge_name" json:"bridge_name"`

	// Local optionally attaches the hosting blade itself to the network
	// through a veth peer.
	Local *LocalAttachment `yaml:"local" json:"local,omitempty"`
}

// LocalAttachment describes the blade-local attachment to a network.
type LocalAttachment struct {
	Peer      string `yaml:"peer" json:"peer,omitempty"`
	Interface string `yaml:"interface" json:"interface,omitempty"`
	CIDR      string `yaml:"cidr" json:"cidr,omitempty"`
}

// L3Config is the layer-3 configuration of a network for one family.
type L3Config struct {
	Family      AddressFamily `yaml:"family" json:"family"`
	CIDR        string        `yaml:"cidr" json:"cidr"`
	Gateway     string        `yaml:"gateway" json:"gateway,omitempty"`
	NameServers []string      `yaml:"name_servers" json:"name_servers,omitempty"`
	DHCP        *DHCPConfig   `yaml:"dhcp" json:"dhcp,omitempty"`
}

// DHCPConfig configures DHCP service on one network family.
type DHCPConfig struct {
	Enabled bool `yaml:"enabled" json:"enabled"`

	// BladeHost selects the blade serving DHCP for this network by blade
	// class and instance, not by hostname.
	BladeHost BladeHostSelector `yaml:"blade_host" json:"blade_host"`

	// Pools are the dynamic lease ranges.
	Pools []AddressPool `yaml:"pools" json:"pools,omitempty"`
}

// BladeHostSelector picks a concrete blade instance by class and index.
type BladeHostSelector struct {
	BladeClass    string `yaml:"blade_class" json:"blade_class"`
	BladeInstance int    `yaml:"blade_instance" json:"blade_instance"`
}

// AddressPool is an inclusive dynamic lease range.
type AddressPool struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

// BladePlacement is the blade instance a node instance is placed on.
type BladePlacement struct {
	BladeClass    string `json:"blade_class"`
	BladeInstance int    `json:"blade_instance"`
}

// String returns the placement as "<class>/<instance>".
func (p BladePlacement) String() string {
	return fmt.Sprintf("%s/%d", p.BladeClass, p.BladeInstance)
}

// AddressAssignment is the resolved addressing of one interface for one
// family on one node instance.
type AddressAssignment struct {
	Family AddressFamily `json:"family"`

	// Mode is the effective mode after resolution: a reserved interface
	// whose pool ran out is reported as dynamic.
	Mode AddressMode `json:"mode"`

	// Address is empty for dynamic assignments.
	Address string `json:"address,omitempty"`

	// HostnameSuffix carries the configured per-network hostname suffix.
	HostnameSuffix string `json:"hostname_suffix,omitempty"`
}

// InterfaceAssignment is the resolved state of one interface on one node
// instance.
type InterfaceAssignment struct {
	// Network names the resolved virtual network the interface attaches to.
	Network string `json:"network"`

	// MACAddress is the link-layer address planned for the interface.
	MACAddress string `json:"mac_address"`

	// Addresses holds one entry per configured address family, in family
	// order (IPv4 before IPv6).
	Addresses []AddressAssignment `json:"addresses,omitempty"`
}

// NodeInstance is a concrete, post-expansion node: one virtual machine to be
// created from a node class. Instances are immutable once assembled.
type NodeInstance struct {
	// Name is the unique node name, used to name the virtual machine.
	Name string `json:"name"`

	// Hostname is the instance's hostname, which may differ from the node
	// name when the class carries a host_naming section.
	Hostname string `json:"hostname"`

	// Class is the owning node class name.
	Class string `json:"node_class"`

	// Index is the instance's creation-order index within its class. It is
	// the tie-break for positional address pools, carried explicitly so no
	// ambient iteration order matters.
	Index int `json:"index"`

	// Placement is the blade instance hosting this node.
	Placement BladePlacement `json:"placement"`

	// Interfaces maps logical interface names to their resolved state.
	Interfaces map[string]InterfaceAssignment `json:"interfaces,omitempty"`
}

// ResolvedTopology is the terminal output of the resolution pipeline: all
// resolved networks, the concrete (non-template) node classes, and every node
// instance with placement and addressing. Read-only to downstream
// collaborators.
type ResolvedTopology struct {
	Networks  map[string]*Network   `json:"networks"`
	Classes   map[string]*NodeClass `json:"node_classes"`
	Instances []*NodeInstance       `json:"node_instances"`
}
