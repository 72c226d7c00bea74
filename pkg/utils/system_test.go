package utils

import (
	"reflect"
	"testing"
)

func TestBrowserCommand(t *testing.T) {
	const url = "https://landingpage1"

	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
		wantErr  bool
	}{
		{"darwin", "open", []string{url}, false},
		{"linux", "xdg-open", []string{url}, false},
		{"windows", "cmd", []string{"/c", "start", url}, false},
		{"plan9", "", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			name, args, err := BrowserCommand(tt.goos, url)
			if (err != nil) != tt.wantErr {
				t.Fatalf("BrowserCommand(%q) error = %v, wantErr %v", tt.goos, err, tt.wantErr)
			}
			if name != tt.wantName {
				t.Errorf("name: got %q, want %q", name, tt.wantName)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args: got %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestOpenBrowserEmptyURL(t *testing.T) {
	if err := OpenBrowser(""); err == nil {
		t.Error("Expected error for empty url")
	}
}
