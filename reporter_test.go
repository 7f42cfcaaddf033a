package efflux

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReporterCounterFormat(t *testing.T) {
	var side bytes.Buffer
	rep := NewReporter(&side)

	require.NoError(t, rep.Counter("IO", "records", 5))
	require.Equal(t, "reporter:counter:IO,records,5\n", side.String())
}

func TestReporterStatusFormat(t *testing.T) {
	var side bytes.Buffer
	rep := NewReporter(&side)

	require.NoError(t, rep.Status("processing shard 3"))
	require.Equal(t, "reporter:status:processing shard 3\n", side.String())
}

func TestReporterStatusFlattensNewlines(t *testing.T) {
	var side bytes.Buffer
	rep := NewReporter(&side)

	require.NoError(t, rep.Status("line one\nline two"))
	require.Equal(t, "reporter:status:line one line two\n", side.String())
}

func TestReporterRejectsInvalidCounterNames(t *testing.T) {
	var side bytes.Buffer
	rep := NewReporter(&side)

	require.Error(t, rep.Counter("bad,group", "records", 1))
	require.Error(t, rep.Counter("group", "bad,name", 1))
	require.Zero(t, side.Len())
}

func TestReporterConcurrentDirectivesStayWhole(t *testing.T) {
	var side bytes.Buffer
	rep := NewReporter(&side)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = rep.Counter("Group", "Name", 1)
		}()
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(side.String(), "\n"), "\n")
	require.Len(t, lines, 50)
	for _, line := range lines {
		require.Equal(t, "reporter:counter:Group,Name,1", line)
	}
}
