package cardparser

import (
	"path/filepath"
	"regexp"
	"strings"
)

// mdLinkOrImage matches both `[label](dest)` and `![alt](dest)` Markdown syntax,
// capturing the destination. Destinations containing a title (`path "title"`) are
// trimmed to the path portion.
var mdLinkOrImage = regexp.MustCompile(`!?\[[^\]]*\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

var recognizedMediaExt = map[string]bool{
	// image
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".bmp": true,
	// audio
	".mp3": true, ".wav": true, ".ogg": true, ".flac": true, ".m4a": true,
	// video
	".mp4": true, ".webm": true, ".mkv": true, ".mov": true, ".avi": true,
}

// ExtractMediaRefs walks standard Markdown link/image syntax in body, resolves
// recognized media destinations relative to deckDir, and returns them in source
// order — the order in which "open the first referenced media" resolves ties.
func ExtractMediaRefs(body, deckDir string) []string {
	matches := mdLinkOrImage.FindAllStringSubmatch(body, -1)
	var refs []string
	for _, m := range matches {
		dest := strings.TrimSpace(m[1])
		ext := strings.ToLower(filepath.Ext(dest))
		if !recognizedMediaExt[ext] {
			continue
		}
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(deckDir, dest)
		}
		refs = append(refs, dest)
	}
	return refs
}
