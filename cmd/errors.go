package cmd

import (
	"errors"

	"xview/internal/media"
	"xview/internal/ui"
)

// errorMessage maps an error to the one-line message shown to the user.
func errorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, media.ErrInvalidInput):
		return "invalid video id or URL"
	case errors.Is(err, media.ErrNotFound):
		return "not found: the video or profile does not exist"
	case errors.Is(err, media.ErrDisabled):
		return "unavailable: the video or room has been removed or disabled"
	case errors.Is(err, media.ErrNetwork):
		return "network error: check your connection, proxy or timeout"
	case errors.Is(err, media.ErrParse):
		return "could not parse the page"
	case errors.Is(err, ui.ErrCancelled):
		return "selection cancelled"
	default:
		return "unexpected error: " + err.Error()
	}
}
