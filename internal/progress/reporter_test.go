package progress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCIReporter(t *testing.T) {
	var buf bytes.Buffer
	r := &CIReporter{Task: "Importing documents", Out: &buf}

	r.Start(2)
	r.Update(1, "doc-1")
	r.Update(2, "doc-2")
	r.Finish()

	want := "Importing documents: 2 item(s)\n[1/2] doc-1\n[2/2] doc-2\nImporting documents: done\n"
	assert.Equal(t, want, buf.String())
}

func TestNewReporterInCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.IsType(t, &CIReporter{}, NewReporter("x"))
}
