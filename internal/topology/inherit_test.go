package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/topoplan/internal/configtree"
)

func TestResolveClassesInheritanceChain(t *testing.T) {
	t.Parallel()
	// A <- B <- C: fields unset in B and C fall back to A, and C's
	// overrides win over both.
	nodeClasses := configtree.Tree{
		"a": configtree.Tree{
			"pure_base_class": true,
			"virtual_machine": configtree.Tree{
				"cpu_count":       2,
				"memory_size_mib": 4096,
			},
			"host_blade": configtree.Tree{"blade_class": "standard"},
		},
		"b": configtree.Tree{
			"parent_class":    "a",
			"pure_base_class": true,
			"virtual_machine": configtree.Tree{"memory_size_mib": 8192},
		},
		"c": configtree.Tree{
			"parent_class": "b",
			"node_count":   1,
			"node_naming":  configtree.Tree{"base_name": "node"},
			"virtual_machine": configtree.Tree{
				"memory_size_mib": 16384,
			},
		},
	}

	classes, err := ResolveClasses(nodeClasses)
	require.NoError(t, err)
	require.Contains(t, classes, "c")

	c := classes["c"]
	assert.False(t, c.PureBaseClass)
	assert.Equal(t, 2, c.VirtualMachine.CPUCount, "unset in b and c, falls back to a")
	assert.Equal(t, 16384, c.VirtualMachine.MemorySizeMiB, "c wins over b and a")
	assert.Equal(t, "standard", c.HostBlade.BladeClass, "inherited from a")
	assert.Equal(t, 1, c.NodeCount)
}

func TestResolveClassesCycle(t *testing.T) {
	t.Parallel()
	nodeClasses := configtree.Tree{
		"a": configtree.Tree{"parent_class": "b"},
		"b": configtree.Tree{"parent_class": "a"},
	}

	_, err := ResolveClasses(nodeClasses)
	assert.ErrorIs(t, err, ErrCircularInheritance)
}

func TestResolveClassesSelfCycle(t *testing.T) {
	t.Parallel()
	nodeClasses := configtree.Tree{
		"a": configtree.Tree{"parent_class": "a"},
	}

	_, err := ResolveClasses(nodeClasses)
	assert.ErrorIs(t, err, ErrCircularInheritance)
}

func TestResolveClassesUndefinedParent(t *testing.T) {
	t.Parallel()
	nodeClasses := configtree.Tree{
		"orphan": configtree.Tree{"parent_class": "ghost"},
	}

	_, err := ResolveClasses(nodeClasses)
	assert.ErrorIs(t, err, ErrUndefinedParent)
}

func TestResolveClassesTombstonePrunesInherited(t *testing.T) {
	t.Parallel()
	// The base template pre-populates an example interface and disk with
	// delete: true placeholders; the child overrides one and leaves the
	// other deleted.
	nodeClasses := configtree.Tree{
		"base": configtree.Tree{
			"pure_base_class": true,
			"network_interfaces": configtree.Tree{
				"eth0": configtree.Tree{"delete": true, "cluster_network": "example"},
				"eth1": configtree.Tree{"delete": true},
			},
			"virtual_machine": configtree.Tree{
				"additional_disks": configtree.Tree{
					"scratch": configtree.Tree{"delete": true, "disk_size_mb": 1024},
				},
			},
		},
		"worker": configtree.Tree{
			"parent_class": "base",
			"network_interfaces": configtree.Tree{
				"eth0": configtree.Tree{"delete": false, "cluster_network": "cluster"},
			},
		},
	}

	classes, err := ResolveClasses(nodeClasses)
	require.NoError(t, err)

	worker := classes["worker"]
	require.Contains(t, worker.NetworkInterfaces, "eth0")
	assert.Equal(t, "cluster", worker.NetworkInterfaces["eth0"].ClusterNetwork)
	assert.NotContains(t, worker.NetworkInterfaces, "eth1", "placeholder stays deleted")
	assert.Empty(t, worker.VirtualMachine.AdditionalDisks, "deleted disk pruned")
}

func TestResolveClassesPureBaseRetainedButFlagged(t *testing.T) {
	t.Parallel()
	nodeClasses := configtree.Tree{
		"template": configtree.Tree{
			"pure_base_class": true,
			"node_count":      5,
		},
	}

	classes, err := ResolveClasses(nodeClasses)
	require.NoError(t, err)
	require.Contains(t, classes, "template")
	assert.True(t, classes["template"].PureBaseClass)
}

func TestResolveClassesPureFlagNotInherited(t *testing.T) {
	t.Parallel()
	// A child that does not set pure_base_class itself is concrete even
	// though its parent is a template.
	nodeClasses := configtree.Tree{
		"template": configtree.Tree{"pure_base_class": true, "node_count": 1},
		"real":     configtree.Tree{"parent_class": "template"},
	}

	classes, err := ResolveClasses(nodeClasses)
	require.NoError(t, err)
	assert.False(t, classes["real"].PureBaseClass)
	assert.Equal(t, 1, classes["real"].NodeCount, "node_count still inherited")
}

func TestResolveClassesTombstonedClassSkipped(t *testing.T) {
	t.Parallel()
	nodeClasses := configtree.Tree{
		"gone": configtree.Tree{"delete": true, "node_count": 3},
	}

	classes, err := ResolveClasses(nodeClasses)
	require.NoError(t, err)
	assert.Empty(t, classes)
}
