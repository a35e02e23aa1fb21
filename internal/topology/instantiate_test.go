package topology

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanInstancesNaming(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		class    NodeClass
		expected []string
	}{
		{
			name: "explicit names then numbered from base",
			class: NodeClass{
				Name:       "workers",
				NodeCount:  3,
				NodeNaming: NodeNaming{BaseName: "worker", NodeNames: []string{"alpha"}},
			},
			expected: []string{"alpha", "worker-0", "worker-1"},
		},
		{
			name: "all explicit",
			class: NodeClass{
				Name:       "ctl",
				NodeCount:  2,
				NodeNaming: NodeNaming{BaseName: "ctl", NodeNames: []string{"primary", "secondary"}},
			},
			expected: []string{"primary", "secondary"},
		},
		{
			name: "extra explicit names ignored",
			class: NodeClass{
				Name:       "ctl",
				NodeCount:  1,
				NodeNaming: NodeNaming{NodeNames: []string{"only", "spare"}},
			},
			expected: []string{"only"},
		},
		{
			name: "numbering starts at zero and is independent of explicit names",
			class: NodeClass{
				Name:       "workers",
				NodeCount:  3,
				NodeNaming: NodeNaming{BaseName: "worker", NodeNames: []string{"worker-1"}},
			},
			// The explicit name "worker-1" occupies slot 0; numbered names
			// still count from 0. The resulting collision is caught by the
			// assembler's global uniqueness check, not here.
			expected: []string{"worker-1", "worker-0", "worker-1"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			instances, err := planInstances(&tt.class)
			require.NoError(t, err)
			require.Len(t, instances, tt.class.NodeCount)

			names := make([]string, len(instances))
			for i, instance := range instances {
				names[i] = instance.Name
				assert.Equal(t, i, instance.Index)
				assert.Equal(t, tt.class.Name, instance.Class)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestPlanInstancesHostnames(t *testing.T) {
	t.Parallel()
	t.Run("default to node names", func(t *testing.T) {
		t.Parallel()
		class := NodeClass{
			Name:       "workers",
			NodeCount:  2,
			NodeNaming: NodeNaming{BaseName: "worker"},
		}
		instances, err := planInstances(&class)
		require.NoError(t, err)
		assert.Equal(t, "worker-0", instances[0].Hostname)
		assert.Equal(t, "worker-1", instances[1].Hostname)
	})

	t.Run("separate host naming", func(t *testing.T) {
		t.Parallel()
		class := NodeClass{
			Name:       "workers",
			NodeCount:  3,
			NodeNaming: NodeNaming{BaseName: "worker"},
			HostNaming: &HostNaming{BaseName: "host", Hostnames: []string{"gateway"}},
		}
		instances, err := planInstances(&class)
		require.NoError(t, err)
		assert.Equal(t, []string{"gateway", "host-0", "host-1"},
			[]string{instances[0].Hostname, instances[1].Hostname, instances[2].Hostname})
		assert.Equal(t, "worker-0", instances[0].Name, "node names unaffected")
	})

	t.Run("host base name falls back to node base name", func(t *testing.T) {
		t.Parallel()
		class := NodeClass{
			Name:       "workers",
			NodeCount:  1,
			NodeNaming: NodeNaming{BaseName: "worker"},
			HostNaming: &HostNaming{},
		}
		instances, err := planInstances(&class)
		require.NoError(t, err)
		assert.Equal(t, "worker-0", instances[0].Hostname)
	})
}

func TestPlanInstancesEdgeCases(t *testing.T) {
	t.Parallel()
	t.Run("zero count yields no instances", func(t *testing.T) {
		t.Parallel()
		instances, err := planInstances(&NodeClass{Name: "idle", NodeCount: 0})
		require.NoError(t, err)
		assert.Empty(t, instances)
	})

	t.Run("pure base class yields no instances", func(t *testing.T) {
		t.Parallel()
		instances, err := planInstances(&NodeClass{Name: "base", NodeCount: 4, PureBaseClass: true})
		require.NoError(t, err)
		assert.Empty(t, instances)
	})

	t.Run("missing base name with too few explicit names", func(t *testing.T) {
		t.Parallel()
		_, err := planInstances(&NodeClass{
			Name:       "workers",
			NodeCount:  2,
			NodeNaming: NodeNaming{NodeNames: []string{"solo"}},
		})
		assert.ErrorContains(t, err, "no base_name")
	})

	t.Run("empty explicit name", func(t *testing.T) {
		t.Parallel()
		_, err := planInstances(&NodeClass{
			Name:       "workers",
			NodeCount:  1,
			NodeNaming: NodeNaming{NodeNames: []string{""}},
		})
		assert.ErrorContains(t, err, "empty")
	})
}
