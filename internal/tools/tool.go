package tools

import (
	"context"

	"github.com/taaha3244/quicktools/internal/catalog"
)

// Executor runs every tool whose action has the given kind.
type Executor interface {
	Kind() catalog.Kind
	Execute(ctx context.Context, tool catalog.Descriptor, values Values) Result
}

// InputChecker is implemented by executors that can reject a run from its
// values alone. The dispatcher calls it before the permission gate.
type InputChecker interface {
	CheckInputs(tool catalog.Descriptor, values Values) error
}

type Result struct {
	Success      bool   `json:"success"`
	Text         string `json:"data,omitempty"`
	Data         []byte `json:"-"`
	DownloadName string `json:"downloadName,omitempty"`
	MimeType     string `json:"mimeType,omitempty"`
	Error        string `json:"error,omitempty"`
}

func NewResult(text string) Result {
	return Result{
		Success: true,
		Text:    text,
	}
}

func NewFileResult(data []byte, downloadName, mimeType string) Result {
	return Result{
		Success:      true,
		Data:         data,
		DownloadName: downloadName,
		MimeType:     mimeType,
	}
}

func NewErrorResult(msg string) Result {
	return Result{
		Success: false,
		Error:   msg,
	}
}

// IsFile reports whether the result carries binary output.
func (r Result) IsFile() bool {
	return r.Data != nil
}
