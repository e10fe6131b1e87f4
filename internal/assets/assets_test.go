package assets

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFSStore_PutGetRoundTrip(t *testing.T) {
	st, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	key := NewKey("items", "diagram.png")
	if !strings.HasPrefix(key, "items/") || !strings.HasSuffix(key, ".png") {
		t.Fatalf("unexpected key shape: %q", key)
	}

	if _, err := st.Put(key, strings.NewReader("png-bytes")); err != nil {
		t.Fatalf("put: %v", err)
	}
	rc, err := st.Get(key)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "png-bytes" {
		t.Fatalf("content mismatch: %q", data)
	}

	u, err := st.URL(key)
	if err != nil || !strings.HasPrefix(u, "file://") {
		t.Fatalf("url: %q, %v", u, err)
	}
}

func TestFSStore_RejectsEscapingKeys(t *testing.T) {
	st, err := NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	for _, key := range []string{"", "../outside", "/etc/passwd", "a/../../b"} {
		if _, err := st.Put(key, strings.NewReader("x")); !errors.Is(err, ErrBadKey) {
			t.Fatalf("key %q: expected ErrBadKey, got %v", key, err)
		}
	}
}
