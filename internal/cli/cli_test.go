package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/diagtree/internal/config"
	"github.com/aretw0/diagtree/internal/logging"
	"github.com/aretw0/diagtree/internal/testutils"
	"github.com/aretw0/diagtree/pkg/adapters/badger"
	"github.com/aretw0/diagtree/pkg/adapters/file"
	"github.com/aretw0/diagtree/pkg/adapters/memory"
	"github.com/aretw0/diagtree/pkg/adapters/redis"
	"github.com/aretw0/diagtree/pkg/adapters/sqlite"
	"github.com/aretw0/diagtree/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenStore(t *testing.T) {
	mr := miniredis.RunT(t)
	dir := t.TempDir()

	tests := []struct {
		location string
		check    func(t *testing.T, s Store)
	}{
		{"diagnosis_tree.txt", func(t *testing.T, s Store) {
			fs, ok := s.(nopCloser).TreeStore.(*file.Store)
			require.True(t, ok)
			assert.Equal(t, "diagnosis_tree.txt", fs.Path)
		}},
		{"file://" + dir + "/tree.txt", func(t *testing.T, s Store) {
			fs, ok := s.(nopCloser).TreeStore.(*file.Store)
			require.True(t, ok)
			assert.Equal(t, dir+"/tree.txt", fs.Path)
		}},
		{"mem://", func(t *testing.T, s Store) {
			_, ok := s.(nopCloser).TreeStore.(*memory.Store)
			assert.True(t, ok)
		}},
		{"redis://" + mr.Addr() + "/0?key=clinic:tree", func(t *testing.T, s Store) {
			rs, ok := s.(*redis.Store)
			require.True(t, ok)
			assert.Equal(t, "clinic:tree", rs.Key())
		}},
		{"badger://" + dir + "/kv", func(t *testing.T, s Store) {
			_, ok := s.(*badger.Store)
			assert.True(t, ok)
		}},
		{"sqlite://" + dir + "/trees.db?name=clinic", func(t *testing.T, s Store) {
			_, ok := s.(*sqlite.Store)
			assert.True(t, ok)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			s, err := OpenStore(tt.location, logging.NewNop())
			require.NoError(t, err)
			defer s.Close()
			tt.check(t, s)
		})
	}
}

func TestOpenStore_Errors(t *testing.T) {
	_, err := OpenStore("ftp://example.com/tree", logging.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedStore)

	_, err = OpenStore("badger://", logging.NewNop())
	assert.ErrorIs(t, err, ErrUnsupportedStore)
}

func TestCopy_AcrossStores(t *testing.T) {
	ctx := context.Background()
	src := testutils.WriteTree(t, testutils.FeverTree)
	dst := "sqlite://" + filepath.Join(t.TempDir(), "trees.db")
	var out bytes.Buffer

	require.NoError(t, Copy(ctx, src, dst, logging.NewNop(), &out))
	assert.Contains(t, out.String(), "Copied 3 nodes")

	s, err := OpenStore(dst, logging.NewNop())
	require.NoError(t, err)
	defer s.Close()
	root, err := s.Load(ctx)
	require.NoError(t, err)
	assert.True(t, domain.Equal(testutils.SampleTree(), root))
}

func TestInit(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tree.txt")
	var out bytes.Buffer

	require.NoError(t, Init(ctx, path, "  Common cold ", false, logging.NewNop(), &out))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A:Common cold\n", string(data))

	err = Init(ctx, path, "Flu", false, logging.NewNop(), &out)
	assert.ErrorIs(t, err, ErrTreeExists)

	require.NoError(t, Init(ctx, path, "Flu", true, logging.NewNop(), &out))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "A:Flu\n", string(data))

	err = Init(ctx, path, "   ", true, logging.NewNop(), &out)
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
}

func TestInit_CorruptNeedsForce(t *testing.T) {
	path := testutils.WriteTree(t, "X:bad\n")
	err := Init(context.Background(), path, "Flu", false, logging.NewNop(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrTreeExists)
	assert.ErrorIs(t, err, domain.ErrCorruptTreeFormat)
}

func TestValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Validate(context.Background(), testutils.WriteTree(t, testutils.FeverTree), logging.NewNop(), &out))
	assert.Contains(t, out.String(), "nodes:     3")
	assert.Contains(t, out.String(), "diagnoses: 2")

	err := Validate(context.Background(), testutils.WriteTree(t, "Q:Fever?\nA:Flu\n"), logging.NewNop(), &out)
	assert.ErrorIs(t, err, domain.ErrCorruptTreeFormat)
}

func TestValidate_ListsNamedTrees(t *testing.T) {
	ctx := context.Background()
	db := filepath.Join(t.TempDir(), "trees.db")
	for _, name := range []string{"adults", "children"} {
		s, err := sqlite.Open(db, name)
		require.NoError(t, err)
		require.NoError(t, s.Save(ctx, domain.NewLeaf("Flu")))
		require.NoError(t, s.Close())
	}

	var out bytes.Buffer
	require.NoError(t, Validate(ctx, "sqlite://"+db+"?name=adults", logging.NewNop(), &out))
	assert.Contains(t, out.String(), "trees:     adults, children")

	out.Reset()
	require.NoError(t, Validate(ctx, testutils.WriteTree(t, testutils.FeverTree), logging.NewNop(), &out))
	assert.NotContains(t, out.String(), "trees:")
}

func TestGraph(t *testing.T) {
	var out bytes.Buffer
	err := Graph(context.Background(), testutils.WriteTree(t, testutils.FeverTree), GraphOptions{
		Path: []domain.Answer{domain.AnswerNo},
	}, logging.NewNop(), &out)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out.String(), "graph TD\n"))
	assert.Contains(t, out.String(), "n0 -- no --> n2")
	assert.Contains(t, out.String(), "class n2 current;")
}

func TestGraph_OutFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "tree.mmd")
	err := Graph(context.Background(), testutils.WriteTree(t, testutils.FeverTree), GraphOptions{Out: outPath}, logging.NewNop(), &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `n1(["Flu"])`)
}

func TestParsePath(t *testing.T) {
	path, err := ParsePath("yes, n,Y")
	require.NoError(t, err)
	assert.Equal(t, []domain.Answer{domain.AnswerYes, domain.AnswerNo, domain.AnswerYes}, path)

	path, err = ParsePath("")
	require.NoError(t, err)
	assert.Nil(t, path)

	_, err = ParsePath("yes,maybe")
	assert.Error(t, err)
}

// syncBuffer guards a buffer written by the watcher goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatchGraph(t *testing.T) {
	path := testutils.WriteTree(t, "A:Flu\n")
	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- WatchGraph(ctx, path, GraphOptions{}, logging.NewNop(), out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `n0(["Flu"])`)
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, file.New(path).Save(context.Background(),
		domain.NewQuestion("Fever?", domain.NewLeaf("Flu"), domain.NewLeaf("Cold"))))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `n0[/"Fever?"/]`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchGraph_WaitsForFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnosis_tree.txt")
	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}

	done := make(chan error, 1)
	go func() {
		done <- WatchGraph(ctx, path, GraphOptions{}, logging.NewNop(), out)
	}()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), ">>> Waiting for "+path+" to be created.")
	}, 2*time.Second, 10*time.Millisecond)
	assert.NotContains(t, out.String(), "tree not found")

	require.NoError(t, file.New(path).Save(context.Background(), domain.NewLeaf("Flu")))

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), `n0(["Flu"])`)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}

func TestWatchGraph_NeedsFileStore(t *testing.T) {
	err := WatchGraph(context.Background(), "mem://", GraphOptions{}, logging.NewNop(), &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrUnsupportedStore)
}

func TestRunSession_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tree.txt")
	metricsPath := filepath.Join(t.TempDir(), "diagtree.prom")

	cfg := config.Default()
	cfg.Store = path
	cfg.Seed = "Flu"
	cfg.MetricsFile = metricsPath

	var out bytes.Buffer
	err := RunSession(context.Background(), RunOptions{
		Config: cfg,
		JSON:   true,
		In:     strings.NewReader("no\nyes\nCold\nFever?\nno\n"),
		Out:    &out,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Q:Fever?\nA:Flu\nA:Cold\n", string(data))
	assert.Contains(t, out.String(), `{"kind":"notice","text":"[Changes saved automatically.]"}`)

	prom, err := os.ReadFile(metricsPath)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `diagtree_diagnoses_total{outcome="incorrect"} 1`)
	assert.Contains(t, string(prom), "diagtree_learned_total 1")
	assert.Contains(t, string(prom), `diagtree_saves_total{result="success"} 1`)
}

func TestRunSession_NoTree(t *testing.T) {
	cfg := config.Default()
	cfg.Store = filepath.Join(t.TempDir(), "missing.txt")

	err := RunSession(context.Background(), RunOptions{Config: cfg, JSON: true, In: strings.NewReader(""), Out: &bytes.Buffer{}})
	assert.ErrorIs(t, err, domain.ErrTreeNotFound)
}

func TestRunSession_Text(t *testing.T) {
	cfg := config.Default()
	cfg.Store = testutils.WriteTree(t, testutils.FeverTree)

	var out bytes.Buffer
	err := RunSession(context.Background(), RunOptions{
		Config: cfg,
		In:     strings.NewReader("yes\nyes\n"),
		Out:    &out,
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Do you have a fever? (yes/no/not sure)")
	assert.Contains(t, out.String(), "The diagnosis is: Flu")
	assert.Contains(t, out.String(), "Great! I'm glad I could help.")
}
