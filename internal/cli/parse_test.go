package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/wiregraph/pkg/circuit"
	"github.com/matzehuels/wiregraph/pkg/errors"
	"github.com/matzehuels/wiregraph/pkg/graph"
)

const robot = `// line follower
component bt HC05
component uno Arduino
component m1 Motor(2)
connect bt 2 to uno 0
connect bt 3 to uno 1
connect m1 0 to uno 9
connect m1 5 to uno 10
void setup() {}
`

// newTestCLI returns a CLI reading stdin from in, with caching under a
// temporary directory.
func newTestCLI(t *testing.T, in string) (*CLI, *bytes.Buffer) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv(envPins, "")

	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.stdin = strings.NewReader(in)
	c.stdout = &out
	return c, &out
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseStdin(t *testing.T) {
	c, out := newTestCLI(t, robot)
	if err := c.runParse(context.Background(), nil, parseOpts{}); err != nil {
		t.Fatalf("runParse: %v", err)
	}

	doc, err := graph.UnmarshalDocument(out.Bytes())
	if err != nil {
		t.Fatalf("output is not a document: %v\n%s", err, out)
	}
	if doc.Applied != 3 || len(doc.Failures) != 1 || doc.Skipped != 2 {
		t.Errorf("Applied=%d Failures=%d Skipped=%d; want 3, 1, 2", doc.Applied, len(doc.Failures), doc.Skipped)
	}
	if got, _ := doc.Wiring.Peer("bt", "TXD"); got != (circuit.Peer{Component: "uno", Pin: "Digital 0"}) {
		t.Errorf("bt.TXD = %v, want uno:Digital 0", got)
	}
}

func TestParseStrict(t *testing.T) {
	c, _ := newTestCLI(t, robot)
	err := c.runParse(context.Background(), []string{stdinArg}, parseOpts{strict: true})
	if err == nil || !strings.Contains(err.Error(), "1 connection(s)") {
		t.Fatalf("runParse(strict) error = %v, want one failed connection", err)
	}
	if !errors.Is(err, errors.ErrCodePinOutOfRange) {
		t.Errorf("error %v does not carry PIN_OUT_OF_RANGE", err)
	}

	c, _ = newTestCLI(t, "component a HC05\ncomponent b HC05\nconnect a 0 to b 1")
	if err := c.runParse(context.Background(), nil, parseOpts{strict: true}); err != nil {
		t.Errorf("runParse(strict, clean input) = %v", err)
	}
}

func TestParseTableToFile(t *testing.T) {
	c, out := newTestCLI(t, "")
	in := writeFile(t, "robot.ino", robot)
	outPath := filepath.Join(t.TempDir(), "wires.txt")

	if err := c.runParse(context.Background(), []string{in}, parseOpts{table: true, output: outPath}); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("stdout written with -o: %q", out)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"bt", "TXD", "Digital 0", "PIN_OUT_OF_RANGE"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("table missing %q:\n%s", want, data)
		}
	}
}

func TestParseMissingFile(t *testing.T) {
	c, _ := newTestCLI(t, "")
	err := c.runParse(context.Background(), []string{filepath.Join(t.TempDir(), "nope.ino")}, parseOpts{})
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestParseCustomPins(t *testing.T) {
	c, out := newTestCLI(t, "component b Buzzer\ncomponent u Arduino\nconnect b 0 to u 3")
	c.pinsPath = writeFile(t, "pins.toml", "[[component]]\ntype = \"Buzzer\"\npins = [\"SIG\", \"GND\"]\n")

	if err := c.runParse(context.Background(), nil, parseOpts{noCache: true}); err != nil {
		t.Fatalf("runParse: %v", err)
	}
	doc, err := graph.UnmarshalDocument(out.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := doc.Wiring.Peer("b", "SIG"); got != (circuit.Peer{Component: "u", Pin: "Digital 3"}) {
		t.Errorf("b.SIG = %v, want u:Digital 3", got)
	}
}

func TestParseBadPins(t *testing.T) {
	c, _ := newTestCLI(t, robot)
	c.pinsPath = writeFile(t, "pins.toml", "[[component]]\ntype = \"X\"\npins = []\n")
	err := c.runParse(context.Background(), nil, parseOpts{})
	if !errors.Is(err, errors.ErrCodeInvalidPinTable) {
		t.Errorf("error = %v, want INVALID_PIN_TABLE", err)
	}
}
