package catalog

import "strings"

// Kind groups actions for permissions and metrics.
type Kind string

const (
	KindAI          Kind = "ai"
	KindImage       Kind = "image"
	KindPDF         Kind = "pdf"
	KindCalculation Kind = "calculation"
	KindNone        Kind = "none"
)

var Kinds = []Kind{KindAI, KindImage, KindPDF, KindCalculation}

// Action is the execution strategy of a tool. The set of implementations is
// closed: AIText, AIImage, ClientImage, ClientPDF and Calculation.
type Action interface {
	Kind() Kind
	// RequiredInputs lists the input names the strategy reads unconditionally.
	RequiredInputs() []string
	isAction()
}

type AIText struct {
	SystemPrompt string
}

type AIImage struct {
	SystemPrompt string
}

type ImageMode string

const (
	ModeResize   ImageMode = "resize"
	ModeCompress ImageMode = "compress"
)

type ClientImage struct {
	Mode ImageMode
}

type ClientPDF struct{}

type Calculation struct {
	Calculator string
}

const (
	CalculatorCGPA = "cgpa-percentage"
	CalculatorAge  = "age-calculator"
)

func (AIText) Kind() Kind      { return KindAI }
func (AIImage) Kind() Kind     { return KindAI }
func (ClientImage) Kind() Kind { return KindImage }
func (ClientPDF) Kind() Kind   { return KindPDF }
func (Calculation) Kind() Kind { return KindCalculation }

func (AIText) RequiredInputs() []string      { return []string{"prompt"} }
func (AIImage) RequiredInputs() []string     { return []string{"prompt"} }
func (ClientImage) RequiredInputs() []string { return []string{"file"} }
func (ClientPDF) RequiredInputs() []string   { return []string{"file"} }

func (c Calculation) RequiredInputs() []string {
	switch c.Calculator {
	case CalculatorCGPA:
		return []string{"value"}
	case CalculatorAge:
		return []string{"date"}
	}
	return nil
}

func (AIText) isAction()      {}
func (AIImage) isAction()     {}
func (ClientImage) isAction() {}
func (ClientPDF) isAction()   {}
func (Calculation) isAction() {}

// Classify maps the authoring-time fields of a descriptor to its strategy.
// A nil Action means the tool has no runnable strategy.
func Classify(d Descriptor) Action {
	switch {
	case strings.HasPrefix(string(d.ActionType), "ai-"):
		if d.ActionType == ActionAIImage {
			return AIImage{SystemPrompt: d.SystemPrompt}
		}
		return AIText{SystemPrompt: d.SystemPrompt}

	case d.ActionType == ActionClientProcess:
		if strings.Contains(d.Slug, "image") {
			mode := ModeResize
			if strings.Contains(d.Slug, "compress") {
				mode = ModeCompress
			}
			return ClientImage{Mode: mode}
		}
		if d.Category == CategoryPDF {
			return ClientPDF{}
		}
		return nil

	case d.ActionType == ActionCalculation:
		return Calculation{Calculator: d.Slug}
	}
	return nil
}

// KindOf returns the action kind, or KindNone for a tool without a strategy.
func KindOf(a Action) Kind {
	if a == nil {
		return KindNone
	}
	return a.Kind()
}
