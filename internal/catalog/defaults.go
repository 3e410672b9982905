package catalog

import "github.com/google/uuid"

func fileInput(label, accept string) Input {
	return Input{Name: "file", Label: label, Type: InputFile, Accept: accept}
}

func promptInput(label, placeholder string) Input {
	return Input{Name: "prompt", Label: label, Type: InputTextarea, Placeholder: placeholder}
}

// Defaults returns the built-in tools. Each call returns fresh, unprepared copies.
func Defaults() []Descriptor {
	return []Descriptor{
		{
			ID:          "1",
			Name:        "PDF Compressor",
			Description: "Reduce PDF file size while maintaining quality.",
			Category:    CategoryPDF,
			Slug:        "pdf-compressor",
			IconName:    string(IconFileCode),
			ActionType:  ActionClientProcess,
			Inputs:      []Input{fileInput("Upload PDF", ".pdf")},
		},
		{
			ID:          "2",
			Name:        "PDF to JPG",
			Description: "Convert PDF pages into high-quality JPG images.",
			Category:    CategoryPDF,
			Slug:        "pdf-to-jpg",
			IconName:    string(IconImage),
			ActionType:  ActionClientProcess,
			Inputs:      []Input{fileInput("Upload PDF", ".pdf")},
		},
		{
			ID:          "3",
			Name:        "Image Resize",
			Description: "Resize images to specific dimensions quickly.",
			Category:    CategoryImage,
			Slug:        "image-resize",
			IconName:    string(IconMaximize),
			ActionType:  ActionClientProcess,
			Inputs: []Input{
				fileInput("Upload Image", "image/*"),
				{Name: "width", Label: "Width (px)", Type: InputNumber, Placeholder: "800"},
				{Name: "height", Label: "Height (px)", Type: InputNumber, Placeholder: "600"},
			},
		},
		{
			ID:          "4",
			Name:        "Image Compressor",
			Description: "Optimize images for web use.",
			Category:    CategoryImage,
			Slug:        "image-compressor",
			IconName:    string(IconMinimize),
			ActionType:  ActionClientProcess,
			Inputs: []Input{
				fileInput("Upload Image", "image/*"),
				{Name: "quality", Label: "Quality (1-100)", Type: InputNumber, Placeholder: "80"},
			},
		},
		{
			ID:           "5",
			Name:         "AI Text Rewriter",
			Description:  "Rewrite text to be more professional or creative.",
			Category:     CategoryAI,
			Slug:         "ai-text-rewriter",
			IconName:     string(IconPenTool),
			ActionType:   ActionAIText,
			SystemPrompt: "Rewrite the following text to be clear, concise, and professional. Improve grammar and flow.",
			Inputs:       []Input{promptInput("Text to Rewrite", "Paste text here...")},
		},
		{
			ID:           "6",
			Name:         "AI Summarizer",
			Description:  "Summarize long articles or documents instantly.",
			Category:     CategoryAI,
			Slug:         "ai-summarizer",
			IconName:     string(IconFileText),
			ActionType:   ActionAIText,
			SystemPrompt: "Summarize the following content into key bullet points.",
			Inputs:       []Input{promptInput("Text to Summarize", "Paste long text here...")},
		},
		{
			ID:           "7",
			Name:         "AI Email Generator",
			Description:  "Generate professional emails for any purpose.",
			Category:     CategoryAI,
			Slug:         "ai-email-generator",
			IconName:     string(IconMail),
			ActionType:   ActionAIText,
			SystemPrompt: "Write a professional email based on the following requirements. Include a subject line.",
			Inputs:       []Input{promptInput("Email Description (e.g., Ask boss for leave)", "")},
		},
		{
			ID:           "8",
			Name:         "AI Resume Builder",
			Description:  "Create a resume structure based on your details.",
			Category:     CategoryAI,
			Slug:         "ai-resume-builder",
			IconName:     string(IconUserCheck),
			ActionType:   ActionAIText,
			SystemPrompt: "Create a professional resume markdown structure based on these details. Use headers and bullet points.",
			Inputs:       []Input{promptInput("My Experience & Skills", "I am a software engineer with 5 years exp in React...")},
		},
		{
			ID:          "9",
			Name:        "CGPA to Percentage",
			Description: "Convert your CGPA to standard percentage.",
			Category:    CategoryStudent,
			Slug:        CalculatorCGPA,
			IconName:    string(IconCalculator),
			ActionType:  ActionCalculation,
			Inputs:      []Input{{Name: "value", Label: "CGPA (out of 10)", Type: InputNumber}},
		},
		{
			ID:          "10",
			Name:        "Age Calculator",
			Description: "Calculate your exact age in years, months, and days.",
			Category:    CategoryStudent,
			Slug:        CalculatorAge,
			IconName:    string(IconClock),
			ActionType:  ActionCalculation,
			Inputs:      []Input{{Name: "date", Label: "Date of Birth", Type: InputText, Placeholder: "YYYY-MM-DD"}},
		},
	}
}

// IDFunc generates ids for tools added at runtime.
type IDFunc func() string

func NewUUID() string {
	return uuid.NewString()
}

// NewDashboardTool builds the "quick tool" a dashboard user adds by name.
// An empty slug is derived from the name.
func NewDashboardTool(name, slug string, newID IDFunc) Descriptor {
	if newID == nil {
		newID = NewUUID
	}
	if slug == "" {
		slug = Slugify(name)
	}
	return Descriptor{
		ID:          newID(),
		Name:        name,
		Description: "Custom added tool",
		Category:    CategoryStudent,
		Slug:        slug,
		IconName:    string(IconWrench),
		ActionType:  ActionCalculation,
		Inputs:      []Input{{Name: "val", Label: "Input", Type: InputText}},
	}
}
