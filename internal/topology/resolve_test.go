package topology

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/topoplan/internal/configtree"
)

// baseConfig is a small but complete cluster: a pure base template, two
// concrete classes inheriting from it, and one overlay network.
func baseConfig(t *testing.T) configtree.Tree {
	t.Helper()
	tree, err := configtree.Parse([]byte(`
node_classes:
  base:
    pure_base_class: true
    host_blade:
      blade_class: standard
      instance_capacity: 2
    virtual_machine:
      cpu_count: 2
      memory_size_mib: 4096
    network_interfaces:
      eth0:
        cluster_network: cluster
        addr_info:
          ipv4:
            family: AF_INET
            mode: reserved
            addresses:
            - 10.10.0.10
            - 10.10.0.11
  control:
    parent_class: base
    node_count: 1
    node_naming:
      base_name: control
  worker:
    parent_class: base
    node_count: 3
    node_naming:
      base_name: worker
networks:
  cluster:
    tunnel_id: 100
    blade_interconnect: base-interconnect
    l3_configs:
      ipv4:
        family: AF_INET
        cidr: 10.10.0.0/16
        gateway: 10.10.0.1
`))
	require.NoError(t, err)
	return tree
}

func TestResolveEndToEnd(t *testing.T) {
	t.Parallel()
	topo, err := New().Resolve(context.Background(), baseConfig(t))
	require.NoError(t, err)

	assert.Equal(t, []string{"cluster"}, topo.NetworkNames())
	assert.ElementsMatch(t, []string{"control", "worker"}, topo.ClassNames())
	require.Len(t, topo.Instances, 4)

	count, err := topo.NodeCount("worker")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	name, err := topo.NodeName("worker", 2)
	require.NoError(t, err)
	assert.Equal(t, "worker-2", name)

	// Capacity 2: workers fill blades first-fit.
	for i, want := range []int{0, 0, 1} {
		placement, err := topo.HostBlade("worker", i)
		require.NoError(t, err)
		assert.Equal(t, "standard", placement.BladeClass)
		assert.Equal(t, want, placement.BladeInstance)
	}

	// Reserved pool of 2 across 3 workers: positional, then dynamic.
	addr, err := topo.NodeAddress("worker", 0, "cluster", FamilyIPv4)
	require.NoError(t, err)
	assert.Equal(t, "10.10.0.10", addr)
	addr, err = topo.NodeAddress("worker", 2, "cluster", FamilyIPv4)
	require.NoError(t, err)
	assert.Empty(t, addr, "pool exhausted, instance is dynamic")

	networks, err := topo.NodeNetworks("worker")
	require.NoError(t, err)
	assert.Equal(t, []string{"cluster"}, networks)
}

func TestResolveOverlay(t *testing.T) {
	t.Parallel()
	overlay, err := configtree.Parse([]byte(`
node_classes:
  control:
    delete: true
  worker:
    node_count: 1
    virtual_machine:
      memory_size_mib: 8192
`))
	require.NoError(t, err)

	topo, err := New().Resolve(context.Background(), baseConfig(t), overlay)
	require.NoError(t, err)

	assert.Equal(t, []string{"worker"}, topo.ClassNames(), "tombstoned class dropped")
	require.Len(t, topo.Instances, 1)
	assert.Equal(t, 8192, topo.Classes["worker"].VirtualMachine.MemorySizeMiB)
	assert.Equal(t, 2, topo.Classes["worker"].VirtualMachine.CPUCount, "inherited value survives the overlay")
}

func TestResolveMissingNodeClasses(t *testing.T) {
	t.Parallel()
	_, err := New().Resolve(context.Background(), configtree.Tree{})
	assert.ErrorContains(t, err, "no node_classes section")
}

func TestResolveUndefinedNetworkReference(t *testing.T) {
	t.Parallel()
	base := baseConfig(t)
	delete(base["networks"].(configtree.Tree), "cluster")

	_, err := New().Resolve(context.Background(), base)
	assert.ErrorIs(t, err, ErrUndefinedReference)
}

func TestResolveDuplicateNodeNames(t *testing.T) {
	t.Parallel()
	overlay, err := configtree.Parse([]byte(`
node_classes:
  control:
    node_naming:
      base_name: worker
`))
	require.NoError(t, err)

	// Both classes now number from "worker", so control's "worker-0"
	// collides with the worker class's first instance.
	_, err = New().Resolve(context.Background(), baseConfig(t), overlay)
	assert.ErrorIs(t, err, ErrDuplicateNodeName)
}

func TestResolveDHCPSelectorValidation(t *testing.T) {
	t.Parallel()
	t.Run("selector hosted by a class", func(t *testing.T) {
		t.Parallel()
		overlay, err := configtree.Parse([]byte(`
networks:
  cluster:
    l3_configs:
      ipv4:
        dhcp:
          enabled: true
          blade_host:
            blade_class: standard
            blade_instance: 0
`))
		require.NoError(t, err)
		_, err = New().Resolve(context.Background(), baseConfig(t), overlay)
		assert.NoError(t, err)
	})

	t.Run("selector names an unused blade class", func(t *testing.T) {
		t.Parallel()
		overlay, err := configtree.Parse([]byte(`
networks:
  cluster:
    l3_configs:
      ipv4:
        dhcp:
          enabled: true
          blade_host:
            blade_class: ghost
`))
		require.NoError(t, err)
		_, err = New().Resolve(context.Background(), baseConfig(t), overlay)
		assert.ErrorIs(t, err, ErrUndefinedReference)
	})

	t.Run("disabled blocks are not validated", func(t *testing.T) {
		t.Parallel()
		overlay, err := configtree.Parse([]byte(`
networks:
  cluster:
    l3_configs:
      ipv4:
        dhcp:
          enabled: false
          blade_host:
            blade_class: ghost
`))
		require.NoError(t, err)
		_, err = New().Resolve(context.Background(), baseConfig(t), overlay)
		assert.NoError(t, err)
	})
}

func TestResolveHostnameSuffixLookup(t *testing.T) {
	t.Parallel()
	overlay, err := configtree.Parse([]byte(`
node_classes:
  base:
    network_interfaces:
      eth0:
        addr_info:
          ipv4:
            hostname_suffix: -cl
`))
	require.NoError(t, err)

	topo, err := New().Resolve(context.Background(), baseConfig(t), overlay)
	require.NoError(t, err)

	hostname, err := topo.Hostname("worker", 0, "cluster")
	require.NoError(t, err)
	assert.Equal(t, "worker-0-cl", hostname)

	hostname, err = topo.Hostname("worker", 0, "")
	require.NoError(t, err)
	assert.Equal(t, "worker-0", hostname, "unscoped lookup omits the suffix")
}

func TestResolveInstanceOutOfRange(t *testing.T) {
	t.Parallel()
	topo, err := New().Resolve(context.Background(), baseConfig(t))
	require.NoError(t, err)

	_, err = topo.Instance("worker", 3)
	assert.ErrorContains(t, err, "out of range")
	_, err = topo.Instance("worker", -1)
	assert.ErrorContains(t, err, "out of range")
	_, err = topo.Instance("ghost", 0)
	assert.ErrorIs(t, err, ErrUndefinedReference)
}

func TestResolveUniqueMACs(t *testing.T) {
	t.Parallel()
	topo, err := New().Resolve(context.Background(), baseConfig(t))
	require.NoError(t, err)

	seen := map[string]bool{}
	for _, instance := range topo.Instances {
		for _, iface := range instance.Interfaces {
			require.NotEmpty(t, iface.MACAddress)
			assert.False(t, seen[iface.MACAddress], "duplicate MAC %q", iface.MACAddress)
			seen[iface.MACAddress] = true
		}
	}
}
