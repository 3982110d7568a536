package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `slurm_version: "23.02.6"
partitions:
  - name: compute
    max_nodes: 10
    cpus_per_node: 16
    mem_per_node_mb: 64000
    default_time_limit: "1-00:00:00"
  - name: gpu
    max_nodes: 2
    cpus_per_node: 32
    mem_per_node_mb: 256000
constraints: [avx2, skylake]
gpu_types: [a100]
accounts:
  "*": [research]
  alice: [physics, chem]
qos: [normal, long]
modules: [gcc/12.2.0]
`

func TestLoadFileCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cluster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleCatalog), 0644))

	fc, err := LoadFileCatalog(path)
	require.NoError(t, err)

	var _ Catalog = fc
	var _ Versioned = fc

	names, err := Partitions(fc)
	require.NoError(t, err)
	assert.Equal(t, []string{"compute", "gpu"}, names)

	p, err := fc.PartitionProfile("compute")
	require.NoError(t, err)
	assert.Equal(t, PartitionProfile{
		Name:             "compute",
		MaxNodes:         10,
		CpusPerNode:      16,
		MemPerNodeMB:     64000,
		DefaultTimeLimit: "1-00:00:00",
	}, *p)

	_, err = fc.PartitionProfile("missing")
	assert.ErrorIs(t, err, ErrUnknownPartition)

	assert.Equal(t, []string{"avx2", "skylake"}, fc.ListConstraints())
	assert.Equal(t, []string{"a100"}, fc.ListGpuTypes())
	assert.Equal(t, []string{"physics", "chem"}, fc.ListAccounts("alice"))
	assert.Equal(t, []string{"research"}, fc.ListAccounts("bob"))
	assert.Equal(t, []string{"normal", "long"}, fc.ListQosNames())
	assert.Equal(t, []string{"gcc/12.2.0"}, fc.ListModules())
	assert.Equal(t, "23.02.6", fc.SchedulerVersion())
	assert.Equal(t, path, fc.Path)
}

func TestLoadFileCatalogMissing(t *testing.T) {
	_, err := LoadFileCatalog(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, IsCatalogError(err))
}

func TestParseFileCatalogRejectsBadLimits(t *testing.T) {
	_, err := ParseFileCatalog([]byte("partitions:\n  - name: tiny\n    max_nodes: 0\n    cpus_per_node: 1\n    mem_per_node_mb: 1\n"))
	require.Error(t, err)
	assert.True(t, IsProfileError(err))

	_, err = ParseFileCatalog([]byte("partitions:\n  - max_nodes: 1\n"))
	assert.Error(t, err)

	_, err = ParseFileCatalog([]byte("partitions: [\n"))
	assert.Error(t, err)
}

func TestEmptyFileCatalogHasNoPartitions(t *testing.T) {
	fc, err := ParseFileCatalog([]byte("qos: [normal]\n"))
	require.NoError(t, err)

	_, err = Partitions(fc)
	assert.ErrorIs(t, err, ErrNoPartitions)
	assert.Empty(t, fc.ListAccounts("anyone"))
}
