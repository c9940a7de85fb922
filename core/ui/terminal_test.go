package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTableRender(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, true)

	table := w.NewTable("Plan", "Base").AlignRight(1)
	table.AddRow("Basic", "$100.00")
	table.AddRow("Premium", "$150.00")
	table.Render()

	want := "" +
		"Plan    │    Base\n" +
		"────────┼────────\n" +
		"Basic   │ $100.00\n" +
		"Premium │ $150.00\n"
	assert.Equal(t, want, out.String())
}

func TestWriterColor(t *testing.T) {
	var out bytes.Buffer

	assert.Equal(t, "total", NewWriter(&out, true).Color(Green, "total"))
	assert.Equal(t, Green+"total"+Reset, NewWriter(&out, false).Color(Green, "total"))
}

func TestWriterVerbosity(t *testing.T) {
	var out bytes.Buffer
	w := NewWriter(&out, true)

	w.Debug("hidden")
	w.SetVerbosity(0)
	w.Info("also hidden")
	w.SetVerbosity(2)
	w.Debug("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")
}
