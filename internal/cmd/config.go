package cmd

import (
	"encoding/json"
	"fmt"
	"maps"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/petkey/petkey/internal/configpaths"

	toml "github.com/pelletier/go-toml"
	yaml "gopkg.in/yaml.v3"
)

// ConfigCommand groups config-related subcommands.
type ConfigCommand struct {
	Init ConfigInit `cmd:"" help:"Generate a configuration template"`
}

// ConfigInit writes a config file holding every flag of run or send with its
// default value.
type ConfigInit struct {
	Command string `arg:"" name:"command" help:"Command to generate config for" enum:"run,send"`
	Format  string `help:"Output format" enum:"json,yaml,toml" default:"json"`
	Output  string `help:"Destination file path (defaults to current directory)"`
	Force   bool   `help:"Overwrite if the file already exists"`
}

var templateCommands = map[string]reflect.Type{
	"run":  reflect.TypeOf(Run{}),
	"send": reflect.TypeOf(Send{}),
}

func (c *ConfigInit) Run() error {
	t, ok := templateCommands[c.Command]
	if !ok {
		return fmt.Errorf("unknown command %q; expected run or send", c.Command)
	}
	format := strings.ToLower(c.Format)
	data, err := marshalTemplate(format, template(t))
	if err != nil {
		return err
	}

	dest := c.Output
	if dest == "" {
		dest = c.Command + "." + configpaths.Ext(format)
	}
	if !c.Force {
		if _, err := os.Stat(dest); err == nil {
			return fmt.Errorf("%s exists; use --force to overwrite", dest)
		}
	}
	if err := configpaths.EnsureDir(dest); err != nil {
		return err
	}
	return os.WriteFile(dest, data, 0o644)
}

func marshalTemplate(format string, root map[string]any) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(root, "", "  ")
	case "yaml", "yml":
		return yaml.Marshal(root)
	case "toml":
		return toml.Marshal(root)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// template maps the flags of a command struct to their defaults, keyed the way
// kong's config loaders look them up. Embedded groups with a prefix become
// nested tables. Positional arguments are left out.
func template(t reflect.Type) map[string]any {
	out := map[string]any{}
	for i := range t.NumField() {
		f := t.Field(i)
		if _, isArg := f.Tag.Lookup("arg"); isArg || !f.IsExported() {
			continue
		}
		if _, ok := f.Tag.Lookup("embed"); ok {
			sub := template(f.Type)
			if group := strings.TrimSuffix(f.Tag.Get("prefix"), "."); group != "" {
				out[group] = sub
			} else {
				maps.Copy(out, sub)
			}
			continue
		}
		key := f.Tag.Get("name")
		if key == "" {
			key = flagName(f.Name)
		}
		out[key] = defaultValue(f.Type, f.Tag.Get("default"))
	}
	return out
}

var durationType = reflect.TypeOf(time.Duration(0))

// defaultValue types a kong default tag for the template. Durations keep their
// text form; a missing default is the zero value.
func defaultValue(t reflect.Type, def string) any {
	if t == durationType {
		if def == "" {
			return "0s"
		}
		return def
	}
	switch t.Kind() {
	case reflect.Bool:
		b, _ := strconv.ParseBool(def)
		return b
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, _ := strconv.ParseInt(def, 10, 64)
		return n
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, _ := strconv.ParseUint(def, 10, 64)
		return n
	default:
		return def
	}
}

// flagName converts a field name to the kebab-case name kong derives for
// its flag.
func flagName(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i, c := range r {
		if unicode.IsUpper(c) && i > 0 && (unicode.IsLower(r[i-1]) || unicode.IsDigit(r[i-1])) {
			b.WriteByte('-')
		}
		b.WriteRune(unicode.ToLower(c))
	}
	return b.String()
}
