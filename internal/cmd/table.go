package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/petkey/petkey/keymap"
)

// Table prints the explicit entries of the mapping table.
type Table struct {
	Format string `help:"Output format" enum:"text,json,yaml,toml" default:"text"`
}

type tableRow struct {
	Code      string `json:"code" yaml:"code" toml:"code"`
	Name      string `json:"name" yaml:"name" toml:"name"`
	Key       string `json:"key" yaml:"key" toml:"key"`
	Modifiers string `json:"modifiers,omitempty" yaml:"modifiers,omitempty" toml:"modifiers,omitempty"`
}

type tableDoc struct {
	Printable string     `json:"printable" yaml:"printable" toml:"printable"`
	Entries   []tableRow `json:"entries" yaml:"entries" toml:"entries"`
}

func (t *Table) Run() error {
	return t.write(os.Stdout)
}

func (t *Table) write(w io.Writer) error {
	doc := tableDoc{Printable: fmt.Sprintf("0x%02X-0x%02X typed as themselves", keymap.PrintableMin, keymap.PrintableMax)}
	for _, e := range keymap.Entries() {
		row := tableRow{Code: fmt.Sprintf("0x%02X", e.Code), Name: e.Name, Key: e.Key.String()}
		if e.Mods != 0 {
			row.Modifiers = e.Mods.String()
		}
		doc.Entries = append(doc.Entries, row)
	}

	var data []byte
	var err error
	switch t.Format {
	case "json":
		data, err = json.MarshalIndent(doc, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(doc)
	case "toml":
		data, err = toml.Marshal(doc)
	default:
		return writeTableText(w, doc)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func writeTableText(w io.Writer, doc tableDoc) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tNAME\tKEYS")
	for _, r := range doc.Entries {
		keys := r.Key
		if r.Modifiers != "" {
			keys = r.Modifiers + "+" + r.Key
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", r.Code, r.Name, keys)
	}
	fmt.Fprintf(tw, "\t%s\t\n", doc.Printable)
	return tw.Flush()
}
