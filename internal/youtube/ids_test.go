package youtube

import (
	"errors"
	"testing"
)

func TestAC410_ExtractVideoID_AcceptsSupportedShapes(t *testing.T) {
	testCases := []struct {
		name string
		ref  string
		want string
	}{
		{"watch url", "https://www.youtube.com/watch?v=abc123", "abc123"},
		{"watch url without www", "https://youtube.com/watch?v=abc123", "abc123"},
		{"watch url with extra params", "https://www.youtube.com/watch?v=abc123&t=42s&list=PL1", "abc123"},
		{"short link", "https://youtu.be/xyz456", "xyz456"},
		{"short link with timestamp", "https://youtu.be/xyz456?t=10", "xyz456"},
		{"short link with trailing slash", "https://youtu.be/xyz456/", "xyz456"},
		{"surrounding whitespace", "  https://youtu.be/xyz456 \n", "xyz456"},
		{"plain http", "http://www.youtube.com/watch?v=abc123", "abc123"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractVideoID(tc.ref)
			if !ok {
				t.Fatalf("ExtractVideoID(%q) reported no id", tc.ref)
			}
			if got != tc.want {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.ref, got, tc.want)
			}
		})
	}
}

func TestAC410_ExtractVideoID_SameVideoSameID(t *testing.T) {
	long, _ := ExtractVideoID("https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	short, _ := ExtractVideoID("https://youtu.be/dQw4w9WgXcQ")

	if long != short {
		t.Errorf("both shapes should yield the same id, got %q and %q", long, short)
	}
}

func TestAC411_ExtractVideoID_RejectsEverythingElse(t *testing.T) {
	refs := []string{
		"",
		"   ",
		"not-a-link",
		"https://vimeo.com/12345",
		"https://www.youtube.com/watch",
		"https://www.youtube.com/watch?v=",
		"https://youtu.be/",
		"https://m.youtube.com.evil.test/watch?v=abc",
		"youtube.com/watch?v=abc123",
		"http://[::1]:namedport",
		"%zz",
	}

	for _, ref := range refs {
		if id, ok := ExtractVideoID(ref); ok {
			t.Errorf("ExtractVideoID(%q) should report no id, got %q", ref, id)
		}
	}
}

func TestAC412_ParseDuration(t *testing.T) {
	testCases := []struct {
		code string
		want int
	}{
		{"PT1H2M3S", 3723},
		{"PT45S", 45},
		{"PT10M", 600},
		{"PT2H", 7200},
		{"PT", 0},
		{"P0D", 0},
		{"P1DT1S", 86401},
	}

	for _, tc := range testCases {
		got, err := ParseDuration(tc.code)
		if err != nil {
			t.Errorf("ParseDuration(%q) unexpected error: %v", tc.code, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseDuration(%q) = %d, want %d", tc.code, got, tc.want)
		}
	}
}

func TestAC412_ParseDuration_RejectsMalformedInput(t *testing.T) {
	for _, code := range []string{"garbage", "", "1H2M", "PT1X", "PT-5S", "pt1s", "PT1H2M3S extra"} {
		if _, err := ParseDuration(code); !errors.Is(err, ErrInvalidDuration) {
			t.Errorf("ParseDuration(%q) should fail with ErrInvalidDuration, got %v", code, err)
		}
	}
}
