package desktop

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// Entry is the subset of a [Desktop Entry] group the launcher uses.
type Entry struct {
	Name        string
	GenericName string
	Comment     string
	Exec        string
	Icon        string
	Type        string
	Keywords    []string
	NoDisplay   bool
	Hidden      bool
}

// Launchable reports whether the entry should be offered as an app.
func (e Entry) Launchable() bool {
	return e.Type == "Application" && e.Name != "" && !e.NoDisplay && !e.Hidden
}

// Parse reads the [Desktop Entry] group of a .desktop file.
// Other groups (desktop actions) and localised keys are ignored.
func Parse(r io.Reader) (Entry, error) {
	var (
		entry   Entry
		inEntry bool
		seen    bool
	)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			inEntry = line == "[Desktop Entry]"
			seen = seen || inEntry
			continue
		}
		if !inEntry {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = unescape(strings.TrimSpace(value))

		switch key {
		case "Name":
			entry.Name = value
		case "GenericName":
			entry.GenericName = value
		case "Comment":
			entry.Comment = value
		case "Exec":
			entry.Exec = value
		case "Icon":
			entry.Icon = value
		case "Type":
			entry.Type = value
		case "Keywords":
			entry.Keywords = splitList(value)
		case "NoDisplay":
			entry.NoDisplay = value == "true"
		case "Hidden":
			entry.Hidden = value == "true"
		}
	}
	if err := scanner.Err(); err != nil {
		return Entry{}, err
	}
	if !seen {
		return Entry{}, errors.New("no [Desktop Entry] group")
	}
	return entry, nil
}

// Command strips field codes (%f, %U, ...) from an Exec value.
// A literal percent is written %%.
func Command(exec string) string {
	var b strings.Builder
	for i := 0; i < len(exec); i++ {
		if exec[i] != '%' || i+1 >= len(exec) {
			b.WriteByte(exec[i])
			continue
		}
		i++
		if exec[i] == '%' {
			b.WriteByte('%')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

var escapes = strings.NewReplacer(`\s`, " ", `\n`, "\n", `\t`, "\t", `\r`, "\r", `\\`, `\`)

func unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return escapes.Replace(value)
}
