package workload

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

var chs = []rune("qwertyuiopasdfghjklzxcvbnmQWERTYUIOPASDFGHJKLZXCVBNM1234567890")

// GetName returns a random name of n characters.
func GetName(rng *rand.Rand, n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = chs[rng.Intn(len(chs))]
	}
	return string(b)
}

// Keyspace maps ranks to key names. Rank 0 is the hottest key.
type Keyspace []string

// NewKeyspace draws n distinct names of the given length from seed.
func NewKeyspace(n, length int, seed uint64) (Keyspace, error) {
	rng := rand.New(rand.NewSource(seed))
	seen := make(map[string]struct{}, n)
	keys := make(Keyspace, 0, n)
	for attempts := 0; len(keys) < n; attempts++ {
		if attempts > 16*n+1024 {
			return nil, errors.Errorf("cannot draw %d distinct keys of length %d", n, length)
		}
		name := GetName(rng, length)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		keys = append(keys, name)
	}
	return keys, nil
}

func keyspaceFile(dir string) string {
	return filepath.Join(dir, "keyspace", "keyspace.txt")
}

// Save writes one key per line into <dir>/keyspace/keyspace.txt.
func (k Keyspace) Save(dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "keyspace"), os.ModePerm); err != nil {
		return errors.Wrap(err, "create keyspace directory")
	}
	f, err := os.Create(keyspaceFile(dir))
	if err != nil {
		return errors.Wrap(err, "create keyspace file")
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, key := range k {
		w.WriteString(key)
		w.WriteByte('\n')
	}
	return errors.Wrap(w.Flush(), "write keyspace file")
}

// LoadKeyspace reads a keyspace written by Save.
func LoadKeyspace(dir string) (Keyspace, error) {
	f, err := os.Open(keyspaceFile(dir))
	if err != nil {
		return nil, errors.Wrap(err, "open keyspace file")
	}
	defer f.Close()
	var keys Keyspace
	input := bufio.NewScanner(f)
	for input.Scan() {
		if line := input.Text(); line != "" {
			keys = append(keys, line)
		}
	}
	if err := input.Err(); err != nil {
		return nil, errors.Wrap(err, "read keyspace file")
	}
	return keys, nil
}
