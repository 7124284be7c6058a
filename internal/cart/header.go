package cart

import (
	"bufio"
	"bytes"
	"path/filepath"
	"strings"
)

// Kind is the loader that produced a cartridge.
type Kind string

const (
	KindBuiltin Kind = "builtin"
	KindPlugin  Kind = "plugin"
	KindLua     Kind = "lua"
)

type Header struct {
	Title  string
	Author string
	Kind   Kind
	Path   string
}

// ParseHeader reads the "-- key: value" comment block at the top of a Lua
// cartridge. Parsing stops at the first line that is not a comment. Unknown
// keys are ignored; a missing title falls back to the file name.
func ParseHeader(path string, script []byte) *Header {
	h := &Header{Kind: KindLua, Path: path}
	sc := bufio.NewScanner(bytes.NewReader(script))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		rest, ok := strings.CutPrefix(line, "--")
		if !ok {
			break
		}
		key, value, ok := strings.Cut(rest, ":")
		if !ok {
			continue
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "title":
			h.Title = strings.TrimSpace(value)
		case "author":
			h.Author = strings.TrimSpace(value)
		}
	}
	if h.Title == "" {
		h.Title = stem(path)
	}
	return h
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
