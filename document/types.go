// Package document declares the schemas for DRY document types and the typed
// values they normalize into.
package document

// Info is the project-wide info document (info.dry).
type Info struct {
	Title      string `json:"title"`
	Author     string `json:"author"`
	FirstScene string `json:"firstScene,omitempty"`
	Content    string `json:"content,omitempty"`
}

// Option is one choice offered at the end of a scene or section. ID keeps its
// sigil: @id for a scene (absolute or relative) or #tag for a tag query.
type Option struct {
	ID     string `json:"id"`
	ViewIf string `json:"viewIf,omitempty"`
	Title  string `json:"title,omitempty"`
}

// IsTag reports whether the option refers to a tag rather than a scene.
func (o Option) IsTag() bool { return len(o.ID) > 0 && o.ID[0] == '#' }

// OptionsBlock is the trailing hyphenated block of a scene or section.
type OptionsBlock struct {
	Options    []Option `json:"options"`
	MinChoices *int     `json:"minChoices,omitempty"`
	MaxChoices *int     `json:"maxChoices,omitempty"`
}

// Section is a named unit of a scene. Sections nest to any depth.
type Section struct {
	ID                  string        `json:"id"`
	Title               string        `json:"title,omitempty"`
	Subtitle            string        `json:"subtitle,omitempty"`
	UnavailableSubtitle string        `json:"unavailableSubtitle,omitempty"`
	Content             string        `json:"content"`
	Tags                []string      `json:"tags,omitempty"`
	Order               *int          `json:"order,omitempty"`
	Priority            *int          `json:"priority,omitempty"`
	MaxVisits           *int          `json:"maxVisits,omitempty"`
	MinChoices          *int          `json:"minChoices,omitempty"`
	MaxChoices          *int          `json:"maxChoices,omitempty"`
	GameOver            bool          `json:"gameOver,omitempty"`
	NewPage             bool          `json:"newPage,omitempty"`
	SetRoot             bool          `json:"setRoot,omitempty"`
	IsSpecial           bool          `json:"isSpecial,omitempty"`
	GoTo                string        `json:"goTo,omitempty"`
	ViewIf              string        `json:"viewIf,omitempty"`
	ChooseIf            string        `json:"chooseIf,omitempty"`
	OnArrival           string        `json:"onArrival,omitempty"`
	OnDeparture         string        `json:"onDeparture,omitempty"`
	OnDisplay           string        `json:"onDisplay,omitempty"`
	Style               string        `json:"style,omitempty"`
	Options             *OptionsBlock `json:"options,omitempty"`
	Sections            []*Section    `json:"sections,omitempty"`
}

// Scene is a top-level scene document.
type Scene struct {
	Section
	Type string `json:"type,omitempty"`
}

// HasTag reports whether the section carries tag.
func (s *Section) HasTag(tag string) bool {
	for _, t := range s.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Child returns the direct subsection with the given id.
func (s *Section) Child(id string) (*Section, bool) {
	for _, c := range s.Sections {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}
