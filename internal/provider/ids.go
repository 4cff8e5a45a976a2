package provider

import (
	"fmt"
	"strings"

	"xview/internal/extract"
	"xview/internal/httputil"
	"xview/internal/media"
)

// ParseID accepts a bare id or a page URL and returns the content id.
// URLs must carry a numeric video id; bare ids must be a single safe path
// segment.
func ParseID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%w: empty id", media.ErrInvalidInput)
	}

	if !strings.HasPrefix(input, "http://") && !strings.HasPrefix(input, "https://") {
		if err := httputil.ValidateID(input); err != nil {
			return "", fmt.Errorf("%w: %w", media.ErrInvalidInput, err)
		}
		return input, nil
	}

	for _, p := range []*extract.Pattern{extract.VideoIDPath, extract.VideoIDLoose} {
		if m := p.Re.FindStringSubmatch(input); m != nil {
			return m[1], nil
		}
	}
	if httputil.IsNumericID(input) {
		return input, nil
	}
	return "", fmt.Errorf("%w: no video id in %q", media.ErrInvalidInput, input)
}
