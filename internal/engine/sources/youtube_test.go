package sources

import (
	"reflect"
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{" dQw4w9WgXcQ ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/watch?feature=share&v=dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"https://youtu.be/dQw4w9WgXcQ?t=42", "dQw4w9WgXcQ"},
		{"https://www.youtube.com/shorts/dQw4w9WgXcQ", "dQw4w9WgXcQ"},
		{"x", "x"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := ExtractVideoID(tt.in); got != tt.want {
			t.Errorf("ExtractVideoID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWatchURL(t *testing.T) {
	if got := WatchURL("abc"); got != "https://www.youtube.com/watch?v=abc" {
		t.Errorf("WatchURL() = %q", got)
	}
}

func TestParseVideoIDs(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    []string
		wantErr bool
	}{
		{"csv", "x,y", []string{"x", "y"}, false},
		{"csv with spaces and empties", " x , ,y,", []string{"x", "y"}, false},
		{"csv duplicates", "x,y,x", []string{"x", "y"}, false},
		{"json array", `["x","y"]`, []string{"x", "y"}, false},
		{"json urls", `["https://youtu.be/dQw4w9WgXcQ"]`, []string{"dQw4w9WgXcQ"}, false},
		{"malformed json", `["x",`, nil, true},
		{"json wrong type", `[1,2]`, nil, true},
		{"empty", "", []string{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVideoIDs(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVideoIDs() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseVideoIDs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
