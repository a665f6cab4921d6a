package dry

import (
	"strings"

	"github.com/reoring/dryc"
)

// scope collects the content and options of the document or section that is
// currently open.
type scope struct {
	obj         map[string]any
	line        int
	content     []string // "" entries are paragraph breaks
	contentLine int
	block       map[string]any
	blockLine   int
	options     []any
	optionIDs   map[string]struct{}
}

func newScope(obj map[string]any, line int) *scope {
	return &scope{obj: obj, line: line, optionIDs: map[string]struct{}{}}
}

func (s *scope) addContent(n int, line string, paragraph bool) {
	if len(s.content) == 0 {
		s.contentLine = n
	} else if paragraph {
		s.content = append(s.content, "")
	}
	s.content = append(s.content, line)
}

// optionsBlock returns the options block, opening it on its first line.
func (s *scope) optionsBlock(n int) map[string]any {
	if s.block == nil {
		s.block = map[string]any{}
		s.blockLine = n
	}
	return s.block
}

// finish writes the buffered content and options onto the scope's object.
func (s *scope) finish() {
	line := s.contentLine
	if line == 0 {
		line = s.line
	}
	s.obj["content"] = dryc.Span(strings.Join(s.content, "\n"), line)
	if s.block != nil {
		s.block["options"] = s.options
		s.obj["options"] = dryc.Span(s.block, s.blockLine)
	}
}
