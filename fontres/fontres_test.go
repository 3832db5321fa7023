package fontres

import (
	"errors"
	"io/fs"
	"sync"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func missing(string) ([]byte, error) { return nil, fs.ErrNotExist }

func TestResolveFallsBackToBuiltin(t *testing.T) {
	r := NewResolver([]Candidate{{Path: "/nope/a.ttf"}, {Path: "/nope/b.ttf"}}, WithReadFile(missing))
	h := r.Resolve()
	if h.Source != SourceBuiltin || h.Family != BuiltinFamily {
		t.Fatalf("Resolve = %+v, want builtin", h)
	}
	if h.UTF8 {
		t.Error("builtin handle must not be UTF-8")
	}
}

func TestResolveNoCandidates(t *testing.T) {
	h := NewResolver(nil).Resolve()
	if h.Family != BuiltinFamily {
		t.Fatalf("Family = %q, want %q", h.Family, BuiltinFamily)
	}
}

func TestResolveSkipsGarbage(t *testing.T) {
	r := NewResolver([]Candidate{{Path: "junk.ttf", Data: []byte("not a font")}})
	if h := r.Resolve(); h.Source != SourceBuiltin {
		t.Fatalf("Resolve = %+v, want builtin after unparsable candidate", h)
	}
}

func TestResolveReadsCandidatesOnce(t *testing.T) {
	var mu sync.Mutex
	calls := map[string]int{}
	read := func(p string) ([]byte, error) {
		mu.Lock()
		calls[p]++
		mu.Unlock()
		return nil, errors.New("unreadable")
	}
	r := NewResolver([]Candidate{{Path: "a.ttf"}, {Path: "b.ttf"}}, WithReadFile(read))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Resolve()
		}()
	}
	wg.Wait()

	for _, p := range []string{"a.ttf", "b.ttf"} {
		if calls[p] != 1 {
			t.Errorf("%s read %d times, want 1", p, calls[p])
		}
	}
}

func TestFixed(t *testing.T) {
	want := Handle{Family: "Test", Source: SourceFile, Path: "/fonts/test.ttf"}
	if got := Fixed(want).Resolve(); got.Family != want.Family || got.Path != want.Path {
		t.Fatalf("Fixed().Resolve() = %+v, want %+v", got, want)
	}
}

func TestInspectCoverage(t *testing.T) {
	arabic, err := inspect(goregular.TTF)
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if arabic {
		t.Error("Go Regular reported as Arabic-capable")
	}
	if _, err := inspect([]byte{0, 1, 2}); err == nil {
		t.Error("inspect accepted garbage")
	}
}

func TestCandidateFamily(t *testing.T) {
	tests := map[string]string{
		"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf": "DejaVuSans",
		"static/fonts/Amiri-Regular.ttf":                  "Amiri-Regular",
		"":                                                "Embedded",
	}
	for path, want := range tests {
		if got := (Candidate{Path: path}).family(); got != want {
			t.Errorf("family(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestDefaultCandidatesHonorEnv(t *testing.T) {
	t.Setenv(EnvFontPaths, "/custom/one.ttf")
	c := DefaultCandidates()
	if len(c) == 0 || c[0].Path != "/custom/one.ttf" {
		t.Fatalf("first candidate = %+v, want env path", c)
	}
	if last := c[len(c)-1]; last.Data == nil {
		t.Error("last candidate should be the embedded face")
	}
}
