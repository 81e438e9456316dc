// internal/domain/productimage/image_test.go
package productimage

import "testing"

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]struct{ in, want string }{
		"plain":           {"dog-food.png", "dog-food.png"},
		"strips path":     {"../../etc/passwd", "passwd"},
		"windows path":    {`C:\tmp\photo.jpg`, "photo.jpg"},
		"trims":           {"  banner.webp  ", "banner.webp"},
		"dot only":        {".", ""},
		"dotdot":          {"..", ""},
		"query tail":      {"a.png?x=1", ""},
		"fragment tail":   {"a.png#frag", ""},
		"empty":           {"", ""},
		"trailing slash":  {"images/", ""},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			if got := SanitizeFileName(tc.in); got != tc.want {
				t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestBuildObjectPath(t *testing.T) {
	if got := BuildObjectPath("main-images", "a.png"); got != "main-images/a.png" {
		t.Fatalf("got %q", got)
	}
	if got := BuildObjectPath("/secondary-images/", "dir/b.png"); got != "secondary-images/b.png" {
		t.Fatalf("got %q", got)
	}
}

func TestFileValid(t *testing.T) {
	if (File{}).Valid() {
		t.Fatal("empty file must be invalid")
	}
	if (File{FileName: "a.png"}).Valid() {
		t.Fatal("file without data must be invalid")
	}
	if !(File{FileName: "a.png", Data: []byte{1}}).Valid() {
		t.Fatal("file with name and data must be valid")
	}
}
