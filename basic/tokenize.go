// Package basic prepares BASIC listings for typing into a Commodore machine
// and sends them, one byte at a time, to the serial port the bridge reads.
package basic

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/petkey/petkey/keymap"
)

// ErrUnsupportedChar is returned for a character outside printable ASCII that
// is not part of a {token}.
var ErrUnsupportedChar = errors.New("no Commodore code for character")

// Tokens maps the names usable inside {braces} in a listing to their codes.
var Tokens = map[string]keymap.InputCode{
	"clear":       keymap.CodeClrHome,
	"clr":         keymap.CodeClrHome,
	"home":        keymap.CodeClrHome,
	"return":      keymap.CodeReturn,
	"run/stop":    keymap.CodeRunStop,
	"restore":     keymap.CodeRestore,
	"up":          keymap.CodeCrsrUp,
	"down":        keymap.CodeCrsrDown,
	"left":        keymap.CodeCrsrLeft,
	"right":       keymap.CodeCrsrRight,
	"f1":          keymap.CodeF1,
	"f2":          keymap.CodeF2,
	"f3":          keymap.CodeF3,
	"f4":          keymap.CodeF4,
	"f5":          keymap.CodeF5,
	"f6":          keymap.CodeF6,
	"f7":          keymap.CodeF7,
	"f8":          keymap.CodeF8,
	"black":       keymap.CodeBlack,
	"white":       keymap.CodeWhite,
	"red":         keymap.CodeRed,
	"cyan":        keymap.CodeCyan,
	"purple":      keymap.CodePurple,
	"green":       keymap.CodeGreen,
	"blue":        keymap.CodeBlue,
	"yellow":      keymap.CodeYellow,
	"orange":      keymap.CodeOrange,
	"brown":       keymap.CodeBrown,
	"light red":   keymap.CodeLightRed,
	"dark gray":   keymap.CodeDarkGray,
	"medium gray": keymap.CodeMediumGray,
	"light green": keymap.CodeLightGreen,
	"light blue":  keymap.CodeLightBlue,
	"light gray":  keymap.CodeLightGray,
}

// Tokenize converts one line to codes. "{name}" becomes the code of a known
// token; unknown or unterminated braces are copied. Any other character must
// be printable ASCII, a tab or a control code below 0x20.
func Tokenize(line string) ([]byte, error) {
	out := make([]byte, 0, len(line))
	for i := 0; i < len(line); {
		if line[i] == '{' {
			if end := strings.IndexByte(line[i:], '}'); end > 0 {
				if code, ok := Tokens[line[i+1:i+end]]; ok {
					out = append(out, code)
					i += end + 1
					continue
				}
			}
		}
		r, size := utf8.DecodeRuneInString(line[i:])
		if r > 0x7E {
			return nil, fmt.Errorf("%w %q at column %d", ErrUnsupportedChar, r, utf8.RuneCountInString(line[:i])+1)
		}
		out = append(out, byte(r))
		i += size
	}
	return out, nil
}

// Program reads a listing and returns the bytes that type it: every line
// lowercased (the C64 shows unshifted letters as upper case), tokenized and
// terminated with RETURN.
func Program(r io.Reader) ([]byte, error) {
	var out []byte
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		codes, err := Tokenize(lowerASCII(strings.TrimSuffix(sc.Text(), "\r")))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, codes...)
		out = append(out, keymap.CodeReturn)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read program: %w", err)
	}
	return out, nil
}

// lowerASCII folds only A-Z so that no other character can lowercase into
// ASCII.
func lowerASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= 'A' && r <= 'Z' {
			return r + 'a' - 'A'
		}
		return r
	}, s)
}
