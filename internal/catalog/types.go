package catalog

import "strings"

type Category string

const (
	CategoryPDF     Category = "PDF"
	CategoryImage   Category = "Image"
	CategoryAI      Category = "AI"
	CategoryStudent Category = "Student"
)

// CategoryAll is the home-page filter value that matches every category.
const CategoryAll Category = "All"

type CategoryInfo struct {
	ID    Category `json:"id"`
	Label string   `json:"label"`
	Color string   `json:"color"`
}

var Categories = []CategoryInfo{
	{ID: CategoryPDF, Label: "PDF Tools", Color: "#dc2626"},
	{ID: CategoryImage, Label: "Image Tools", Color: "#2563eb"},
	{ID: CategoryAI, Label: "AI Tools", Color: "#9333ea"},
	{ID: CategoryStudent, Label: "Student Tools", Color: "#16a34a"},
}

func (c Category) Valid() bool {
	for _, info := range Categories {
		if info.ID == c {
			return true
		}
	}
	return false
}

// Info returns the display metadata of the category.
func (c Category) Info() CategoryInfo {
	for _, info := range Categories {
		if info.ID == c {
			return info
		}
	}
	return CategoryInfo{ID: c, Label: string(c)}
}

// ParseCategory accepts any casing; an empty string means CategoryAll.
func ParseCategory(s string) (Category, bool) {
	if s == "" || strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, info := range Categories {
		if strings.EqualFold(string(info.ID), s) {
			return info.ID, true
		}
	}
	return "", false
}

type ActionType string

const (
	ActionAIText        ActionType = "ai-text"
	ActionAIImage       ActionType = "ai-image"
	ActionClientProcess ActionType = "client-process"
	ActionCalculation   ActionType = "calculation"
)

type InputType string

const (
	InputText     InputType = "text"
	InputTextarea InputType = "textarea"
	InputNumber   InputType = "number"
	InputFile     InputType = "file"
	InputSelect   InputType = "select"
)

func (t InputType) Valid() bool {
	switch t {
	case InputText, InputTextarea, InputNumber, InputFile, InputSelect:
		return true
	}
	return false
}

type Input struct {
	Name        string    `json:"name" yaml:"name"`
	Label       string    `json:"label" yaml:"label"`
	Type        InputType `json:"type" yaml:"type"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Accept      string    `json:"accept,omitempty" yaml:"accept,omitempty"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Descriptor describes one tool. Action and Icon are derived by Prepare when
// the tool enters the catalog and are never re-derived afterwards.
type Descriptor struct {
	ID           string     `json:"id" yaml:"id"`
	Name         string     `json:"name" yaml:"name"`
	Description  string     `json:"description" yaml:"description"`
	Category     Category   `json:"category" yaml:"category"`
	Slug         string     `json:"slug" yaml:"slug"`
	IconName     string     `json:"iconName" yaml:"icon"`
	ActionType   ActionType `json:"actionType" yaml:"action"`
	Inputs       []Input    `json:"inputs" yaml:"inputs"`
	SystemPrompt string     `json:"systemPrompt,omitempty" yaml:"system_prompt,omitempty"`

	Icon   Icon   `json:"icon" yaml:"-"`
	Action Action `json:"-" yaml:"-"`
}

// HasInput reports whether the tool declares an input with the given name.
func (d Descriptor) HasInput(name string) bool {
	for _, in := range d.Inputs {
		if in.Name == name {
			return true
		}
	}
	return false
}

func (d Descriptor) clone() Descriptor {
	c := d
	c.Inputs = make([]Input, len(d.Inputs))
	for i, in := range d.Inputs {
		c.Inputs[i] = in
		if in.Options != nil {
			c.Inputs[i].Options = append([]string(nil), in.Options...)
		}
	}
	return c
}
