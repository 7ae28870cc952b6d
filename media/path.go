package media

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// ResolveLocal maps a site-relative reference such as
// "/assets/audio/Saraswati Chalisa.mp3" to a file under root. Query strings
// and fragments are dropped; percent escapes are decoded. ".." elements
// cannot climb above root.
func ResolveLocal(root, ref string) (string, error) {
	if IsRemote(ref) {
		return "", fmt.Errorf("media: %s is remote", ref)
	}
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if unescaped, err := url.PathUnescape(ref); err == nil {
		ref = unescaped
	}

	clean := path.Clean("/" + filepath.ToSlash(ref))
	if clean == "/" {
		return "", fmt.Errorf("media: empty path %q", ref)
	}

	if root == "" {
		root = "."
	}
	return filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}
