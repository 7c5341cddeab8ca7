package vcard

import (
	"bufio"
	"io"
	"strings"

	"github.com/google/uuid"
)

// contactNamespace seeds name-based IDs for cards without a UID.
var contactNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("sercha-launcher:contacts"))

// Card is the subset of a vCard the launcher uses.
type Card struct {
	UID       string
	FullName  string
	Name      string
	Nicknames []string
	Phones    []string
	Emails    []string
	Org       string

	raw string
}

// ID returns the card UID, or a stable UUIDv5 of the card text.
func (c Card) ID() string {
	if c.UID != "" {
		return c.UID
	}
	return uuid.NewSHA1(contactNamespace, []byte(c.raw)).String()
}

// DisplayName returns FN, falling back to the structured name, then the
// first e-mail or phone.
func (c Card) DisplayName() string {
	switch {
	case c.FullName != "":
		return c.FullName
	case c.Name != "":
		return c.Name
	case len(c.Emails) > 0:
		return c.Emails[0]
	case len(c.Phones) > 0:
		return c.Phones[0]
	default:
		return ""
	}
}

// ParseAll reads every card in r. Cards without any usable name are dropped.
func ParseAll(r io.Reader) ([]Card, error) {
	var (
		cards   []Card
		current *Card
		raw     strings.Builder
	)

	for _, line := range unfold(r) {
		if line.err != nil {
			return nil, line.err
		}
		name, params, value := splitProperty(line.text)
		switch {
		case name == "BEGIN" && strings.EqualFold(value, "VCARD"):
			current = &Card{}
			raw.Reset()
		case name == "END" && strings.EqualFold(value, "VCARD"):
			if current != nil {
				current.raw = raw.String()
				if current.DisplayName() != "" {
					cards = append(cards, *current)
				}
			}
			current = nil
		case current != nil:
			raw.WriteString(line.text)
			raw.WriteByte('\n')
			current.apply(name, params, value)
		}
	}
	return cards, nil
}

func (c *Card) apply(name, _ string, value string) {
	switch name {
	case "UID":
		c.UID = strings.TrimPrefix(value, "urn:uuid:")
	case "FN":
		c.FullName = unescape(value)
	case "N":
		c.Name = structuredName(value)
	case "NICKNAME":
		for _, n := range strings.Split(value, ",") {
			if n = strings.TrimSpace(unescape(n)); n != "" {
				c.Nicknames = append(c.Nicknames, n)
			}
		}
	case "TEL":
		if v := strings.TrimPrefix(strings.TrimSpace(value), "tel:"); v != "" {
			c.Phones = append(c.Phones, v)
		}
	case "EMAIL":
		if v := strings.TrimSpace(value); v != "" {
			c.Emails = append(c.Emails, v)
		}
	case "ORG":
		c.Org = strings.TrimSpace(strings.ReplaceAll(unescape(value), ";", " "))
	}
}

// structuredName turns "Family;Given;Additional;Prefix;Suffix" into
// "Given Family".
func structuredName(value string) string {
	parts := strings.Split(value, ";")
	get := func(i int) string {
		if i < len(parts) {
			return strings.TrimSpace(unescape(parts[i]))
		}
		return ""
	}
	return strings.Join(strings.Fields(get(1)+" "+get(0)), " ")
}

// splitProperty splits "NAME;PARAMS:value", dropping any group prefix.
func splitProperty(line string) (name, params, value string) {
	head, value, _ := strings.Cut(line, ":")
	name, params, _ = strings.Cut(head, ";")
	if _, after, ok := strings.Cut(name, "."); ok {
		name = after
	}
	return strings.ToUpper(strings.TrimSpace(name)), params, value
}

type foldedLine struct {
	text string
	err  error
}

// unfold joins continuation lines (starting with a space or tab).
func unfold(r io.Reader) []foldedLine {
	var (
		lines []foldedLine
		cur   strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			lines = append(lines, foldedLine{text: cur.String()})
			cur.Reset()
		}
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			cur.WriteString(line[1:])
			continue
		}
		flush()
		cur.WriteString(line)
	}
	flush()
	if err := scanner.Err(); err != nil {
		lines = append(lines, foldedLine{err: err})
	}
	return lines
}

var escapes = strings.NewReplacer(`\,`, ",", `\;`, ";", `\n`, "\n", `\N`, "\n", `\\`, `\`)

func unescape(value string) string {
	if !strings.Contains(value, `\`) {
		return value
	}
	return escapes.Replace(value)
}
