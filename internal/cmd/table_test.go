package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"

	"github.com/petkey/petkey/keymap"
)

func TestTableText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Table{Format: "text"}).write(&buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, len(keymap.Entries())+2)
	assert.True(t, strings.HasPrefix(lines[0], "CODE"))
	assert.Contains(t, buf.String(), "CLR/HOME")
	assert.Contains(t, buf.String(), "0x20-0x7E typed as themselves")
}

func TestTableJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Table{Format: "json"}).write(&buf))

	var doc tableDoc
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Entries, len(keymap.Entries()))

	byName := map[string]tableRow{}
	for _, r := range doc.Entries {
		byName[r.Name] = r
	}
	assert.Equal(t, "0x93", byName["CLR/HOME"].Code)
	assert.Equal(t, "Shift", byName["CLR/HOME"].Modifiers)
	assert.Equal(t, "", byName["RETURN"].Modifiers)
}

func TestTableYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Table{Format: "yaml"}).write(&buf))

	var doc tableDoc
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.Entries, len(keymap.Entries()))
}

func TestTableTOML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&Table{Format: "toml"}).write(&buf))
	assert.Contains(t, buf.String(), "[[entries]]")
}
