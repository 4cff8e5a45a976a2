package httputil

import (
	"testing"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid HTTPS", "https://secure.xview.tv/alice/", false},
		{"valid HTTP", "http://127.0.0.1:8080/alice/", false},
		{"javascript scheme rejected", "javascript:alert(1)", true},
		{"data scheme rejected", "data:text/html,<h1>Hi</h1>", true},
		{"FTP rejected", "ftp://example.com/file", true},
		{"empty string", "", true},
		{"no host", "https://", true},
		{"valid with query", "https://secure.xview.tv/?keywords=a&page=1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"username", "alice_99", false},
		{"dashed name", "sweet-jane", false},
		{"dotted name", "j.doe", false},
		{"numeric", "12345", false},
		{"empty", "", true},
		{"slash", "video/123", true},
		{"path traversal dots", "..", true},
		{"embedded traversal", "a..b", true},
		{"shell injection", "123; rm -rf /", true},
		{"query injection", "alice?x=1", true},
		{"newline", "alice\nbob", true},
		{"too long", string(make([]byte, 300)), true},
		{"spaces", "alice bob", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestIsNumericID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"12345", true},
		{"0", true},
		{"", false},
		{"abc", false},
		{"123abc", false},
		{"-1", false},
		{"1.5", false},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			if got := IsNumericID(tt.id); got != tt.want {
				t.Errorf("IsNumericID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"thumbnail name", "thumb_alice.jpg", "thumb_alice.jpg"},
		{"path traversal", "../../etc/passwd", "passwd"},
		{"null bytes", "thumb\x00.jpg", "thumb.jpg"},
		{"windows special chars", "a<>:\"|?*.jpg", "a_______.jpg"},
		{"empty string", "", "untitled"},
		{"just dot", ".", "untitled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeFilename(tt.input)
			if got != tt.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeDownloadPath(t *testing.T) {
	dir := t.TempDir()

	path, err := SafeDownloadPath(dir, "../../thumb.jpg")
	if err != nil {
		t.Fatalf("SafeDownloadPath() error: %v", err)
	}
	if want := dir + "/thumb.jpg"; path != want {
		t.Errorf("SafeDownloadPath() = %q, want %q", path, want)
	}
}

func TestEncodeQuery(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"red hair", "red+hair"},
		{"  extra   spaces  ", "extra+spaces"},
		{"a&b=c", "a%26b%3Dc"},
		{"singleword", "singleword"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := EncodeQuery(tt.input)
			if got != tt.expected {
				t.Errorf("EncodeQuery(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		base     string
		segments []string
		expected string
	}{
		{"search path", "https://secure.xview.tv/", []string{"search", "red hair"}, "https://secure.xview.tv/search/red%20hair"},
		{"no trailing slash", "https://secure.xview.tv", []string{"tag", "asian"}, "https://secure.xview.tv/tag/asian"},
		{"slash in segment", "https://secure.xview.tv/", []string{"category", "a/b"}, "https://secure.xview.tv/category/a%2Fb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildURL(tt.base, tt.segments...)
			if got != tt.expected {
				t.Errorf("BuildURL() = %q, want %q", got, tt.expected)
			}
		})
	}
}
