package tools

import (
	"errors"
	"fmt"
	"math"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrFileRequired is reported by tools run without their file input.
var ErrFileRequired = errors.New("File required")

// RequireFile returns ErrFileRequired when values has no file under name.
func (v Values) RequireFile(name string) error {
	if v.File(name) == nil {
		return ErrFileRequired
	}
	return nil
}

type File struct {
	Name     string
	MimeType string
	Data     []byte
}

// ReadFile loads a local file as a form file value. The mime type comes from
// the extension, or from the content when the extension is unknown.
func ReadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if mediaType, _, err := mime.ParseMediaType(mimeType); err == nil {
		mimeType = mediaType
	}

	return &File{
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// Values holds the form values of one invocation. Each value is either a
// string or a *File.
type Values map[string]any

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v Values) File(name string) *File {
	f, _ := v[name].(*File)
	return f
}

// PositiveInt parses the leading integer of a value the way a browser form
// does (optional whitespace, sign, digits; trailing text ignored). Missing,
// unparsable, zero and negative values are all reported as absent.
func (v Values) PositiveInt(name string) (int, bool) {
	n, ok := parseLeadingInt(v.String(name))
	if !ok || n <= 0 {
		return 0, false
	}
	return n, true
}

func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r\f\v")

	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		if n > (math.MaxInt32-int(r-'0'))/10 {
			n = math.MaxInt32
		} else {
			n = n*10 + int(r-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0, false
	}
	if neg {
		n = -n
	}
	return n, true
}
