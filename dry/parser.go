package dry

import (
	"regexp"
	"strings"

	"github.com/reoring/dryc"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// mode is the line-state of the parser. Blank lines and the first character
// of a line drive every transition.
type mode int

const (
	modeProperties   mode = iota // name: value lines
	modeFirstContent             // after the blank line that ends properties
	modeContent                  // inside a run of content lines
	modeBlankContent             // blank line(s) after content; a paragraph break is pending
	modeOptions                  // inside a hyphenated options block
	modeEnd                      // options block closed; only blanks and sections allowed
)

var (
	propRe         = regexp.MustCompile(`^([a-z-]+)\s*:\s*(.*)$`)
	optionRe       = regexp.MustCompile(`^(@[A-Za-z0-9_.-]+|#[A-Za-z0-9_-]+)(?:\s+if\s+(.+?))?(?:\s*:\s*(.+))?$`)
	continuationRe = regexp.MustCompile(`^\s+\S`)
	blankRe        = regexp.MustCompile(`^\s*$`)
)

// Names that a document or section may never declare as properties because
// the parser produces them itself.
var reservedNames = map[string]bool{
	"id":       true,
	"sections": true,
	"content":  true,
	"options":  true,
}

var reservedOptionNames = map[string]bool{
	"options": true,
}

// ParseDocument parses the DRY text of one source file into a raw document
// tree. The id (and optional type) come from the filename; every declared
// property is a dryc.Spanned[string] carrying its line.
//
// The tree has the shape:
//
//	{id, type?, <props>..., content, sections?: [Spanned[{id, <props>..., content, options?}]],
//	 options?: Spanned[{options: [Spanned[{id, viewIf?, title?}]], <props>...}]}
func ParseDocument(filename, text string) (map[string]any, error) {
	id, typ, err := SplitFilename(filename)
	if err != nil {
		return nil, err
	}
	doc := map[string]any{"id": id}
	if typ != "" {
		doc["type"] = typ
	}
	p := &parser{
		docID:      id,
		doc:        doc,
		sectionIDs: map[string]struct{}{},
		titler:     cases.Title(language.Und, cases.NoLower),
	}
	p.cur = newScope(doc, 0)
	if err := p.run(splitLines(text)); err != nil {
		return nil, err
	}
	return doc, nil
}

type parser struct {
	docID      string
	doc        map[string]any
	sectionIDs map[string]struct{}
	sections   []any
	cur        *scope
	mode       mode
	// Casers keep state, so each parse owns one.
	titler cases.Caser
}

func (p *parser) run(lines []string) error {
	for i := 0; i < len(lines); i++ {
		n := i + 1
		line := lines[i]
		if isComment(line) {
			continue
		}
		if blankRe.MatchString(line) {
			p.blank()
			continue
		}
		if line[0] == '@' {
			if err := p.startSection(n, line[1:]); err != nil {
				return err
			}
			continue
		}

		switch p.mode {
		case modeProperties:
			text, last := fold(lines, i)
			i = last
			ok, err := p.property(n, text, p.cur.obj, reservedNames)
			if err != nil {
				return err
			}
			if !ok {
				return dryc.ErrorAt(n, dryc.CodeGrammar, "Invalid property definition")
			}
		case modeFirstContent, modeBlankContent:
			if line[0] == '-' {
				text, last := fold(lines, i)
				i = last
				p.mode = modeOptions
				if err := p.option(n, text[1:]); err != nil {
					return err
				}
				continue
			}
			p.content(n, line)
		case modeContent:
			p.content(n, line)
		case modeOptions:
			if line[0] != '-' {
				return dryc.ErrorAt(n, dryc.CodeGrammar, "Hyphens are required in an options block")
			}
			text, last := fold(lines, i)
			i = last
			if err := p.option(n, text[1:]); err != nil {
				return err
			}
		case modeEnd:
			return dryc.ErrorAt(n, dryc.CodeGrammar, "Found content after an options block")
		}
	}
	p.cur.finish()
	if len(p.sections) > 0 {
		p.doc["sections"] = p.sections
	}
	return nil
}

func (p *parser) blank() {
	switch p.mode {
	case modeProperties:
		p.mode = modeFirstContent
	case modeContent:
		p.mode = modeBlankContent
	case modeOptions:
		p.mode = modeEnd
	}
}

func (p *parser) startSection(n int, rest string) error {
	id := strings.TrimSpace(rest)
	if !IsID(id) {
		return dryc.ErrorAt(n, dryc.CodeGrammar, "Malformed section id '%s'", id)
	}
	if id == p.docID {
		return dryc.ErrorAt(n, dryc.CodeDuplicateDefinition, "Section id '%s' is the same as its document id", id)
	}
	if _, seen := p.sectionIDs[id]; seen {
		return dryc.ErrorAt(n, dryc.CodeDuplicateDefinition, "Section with id '%s' already defined", id)
	}
	p.sectionIDs[id] = struct{}{}

	p.cur.finish()
	obj := map[string]any{"id": dryc.Span(id, n)}
	p.sections = append(p.sections, dryc.Span(obj, n))
	p.cur = newScope(obj, n)
	p.mode = modeProperties
	return nil
}

// property stores a name: value line on target. It reports false when text
// is not a property definition at all.
func (p *parser) property(n int, text string, target map[string]any, reserved map[string]bool) (bool, error) {
	m := propRe.FindStringSubmatch(text)
	if m == nil {
		return false, nil
	}
	name := p.camelCase(m[1])
	if reserved[name] {
		return true, dryc.ErrorAt(n, dryc.CodeReservedName, "Property '%s' is reserved", name)
	}
	if _, exists := target[name]; exists {
		return true, dryc.ErrorAt(n, dryc.CodeDuplicateDefinition, "Property '%s' is already defined", name)
	}
	target[name] = dryc.Span(strings.TrimSpace(m[2]), n)
	return true, nil
}

func (p *parser) option(n int, body string) error {
	body = strings.TrimSpace(body)
	block := p.cur.optionsBlock(n)
	if m := optionRe.FindStringSubmatch(body); m != nil {
		id := m[1]
		if _, dup := p.cur.optionIDs[id]; dup {
			return dryc.ErrorAt(n, dryc.CodeDuplicateDefinition, "Option with id/tag '%s' already specified", id)
		}
		p.cur.optionIDs[id] = struct{}{}
		opt := map[string]any{"id": dryc.Span(id, n)}
		if cond := strings.TrimSpace(m[2]); cond != "" {
			opt["viewIf"] = dryc.Span(cond, n)
		}
		if title := strings.TrimSpace(m[3]); title != "" {
			opt["title"] = dryc.Span(title, n)
		}
		p.cur.options = append(p.cur.options, dryc.Span(opt, n))
		return nil
	}
	ok, err := p.property(n, body, block, reservedOptionNames)
	if err != nil {
		return err
	}
	if !ok {
		return dryc.ErrorAt(n, dryc.CodeGrammar, "Invalid property or option definition")
	}
	return nil
}

func (p *parser) content(n int, line string) {
	p.cur.addContent(n, line, p.mode == modeBlankContent)
	p.mode = modeContent
}

// camelCase turns max-visits into maxVisits.
func (p *parser) camelCase(name string) string {
	parts := strings.Split(name, "-")
	if len(parts) == 1 {
		return name
	}
	var b strings.Builder
	b.WriteString(parts[0])
	for _, part := range parts[1:] {
		b.WriteString(p.titler.String(part))
	}
	return b.String()
}

// fold joins the continuation lines that follow lines[i] onto it with single
// spaces and returns the logical line plus the index of the last line used.
// Comment lines between continuations are skipped.
func fold(lines []string, i int) (string, int) {
	text := strings.TrimSpace(lines[i])
	last := i
	for j := i + 1; j < len(lines); j++ {
		if isComment(lines[j]) {
			continue
		}
		if !continuationRe.MatchString(lines[j]) {
			break
		}
		text += " " + strings.TrimSpace(lines[j])
		last = j
	}
	return text, last
}

func isComment(line string) bool { return strings.HasPrefix(line, "#") }

func splitLines(text string) []string {
	text = norm.NFC.String(strings.TrimPrefix(text, "\ufeff"))
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
