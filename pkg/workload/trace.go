package workload

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// TraceFile returns the trace path of client i.
func TraceFile(dir string, i int) string {
	return filepath.Join(dir, "trace", fmt.Sprintf("%d_trace.txt", i))
}

// Trace splits total accesses over clients and writes one file per client,
// each line holding "<seq> <index> <key>".
func (wlp *WorkloadProvider) Trace(dir string, clients, total int) error {
	if clients < 1 {
		return errors.Errorf("clients must be positive, got %d", clients)
	}
	if total < 0 {
		return errors.Errorf("total must not be negative, got %d", total)
	}
	if err := os.MkdirAll(filepath.Join(dir, "trace"), os.ModePerm); err != nil {
		return errors.Wrap(err, "create trace directory")
	}
	txsPerClient := total / clients
	leaves := total % clients
	for i := 0; i < clients; i++ {
		n := txsPerClient
		if i < leaves {
			n++
		}
		if err := wlp.writeTrace(TraceFile(dir, i), wlp.Stream(i), n); err != nil {
			return errors.Wrapf(err, "write trace of client %d", i)
		}
	}
	return nil
}

func (wlp *WorkloadProvider) writeTrace(path string, stream *Stream, n int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for j := 0; j < n; j++ {
		a := stream.Next()
		fmt.Fprintf(w, "%d %d %s\n", a.Seq, a.Index, a.Key)
	}
	return w.Flush()
}

// ReadTrace parses a file written by Trace.
func ReadTrace(path string) ([]Access, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open trace file")
	}
	defer f.Close()
	var res []Access
	input := bufio.NewScanner(f)
	for line := 1; input.Scan(); line++ {
		var a Access
		if _, err := fmt.Sscanf(input.Text(), "%d %d %s", &a.Seq, &a.Index, &a.Key); err != nil {
			return nil, errors.Wrapf(err, "%s:%d", path, line)
		}
		res = append(res, a)
	}
	if err := input.Err(); err != nil {
		return nil, errors.Wrap(err, "read trace file")
	}
	return res, nil
}
