package hub

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/dustin/go-humanize"
)

const (
	readmeName       = "README.md"
	defaultRepoName  = "repository"
	defaultDriveSlug = "drive"
)

// scpLikeRepo matches "git@github.com:user/repo.git"
var scpLikeRepo = regexp.MustCompile(`^[\w.-]+@[\w.-]+:.+$`)

// FormatContentSize renders a content payload size the way the editor does:
// length/1024 in KB with two decimals.
//
// Examples:
//   - FormatContentSize("") → "0.00 KB"
//   - FormatContentSize(2048 bytes) → "2.00 KB"
func FormatContentSize(content string) string {
	return fmt.Sprintf("%.2f KB", float64(len(content))/1024)
}

// FormatByteSize renders an uploaded byte count, e.g. 1200000 → "1.2 MB"
func FormatByteSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// RepoNameFromURL derives a display name from a clone URL's last path
// segment, dropping a trailing ".git".
//
// Examples:
//   - "https://github.com/user/my-app.git" → "my-app"
//   - "git@github.com:user/tool.git" → "tool"
//   - "https://github.com" → "repository"
func RepoNameFromURL(raw string) string {
	s := strings.TrimSpace(raw)
	if u, err := url.Parse(s); err == nil && u.Scheme != "" && u.Host != "" {
		s = u.Path
	} else if i := strings.Index(s, ":"); i >= 0 && scpLikeRepo.MatchString(s) {
		s = s[i+1:]
	}

	s = strings.TrimRight(s, "/")
	if i := strings.LastIndex(s, "/"); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(s, ".git")
	if s == "" {
		return defaultRepoName
	}
	return s
}

// IsRepoURL reports whether raw looks like something git could clone
func IsRepoURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" && u.Host != "" {
		return true
	}
	return scpLikeRepo.MatchString(raw)
}

// driveSlug lower-cases a drive name and replaces whitespace with "_",
// dropping anything that is not a letter, digit, "_" or "-".
func driveSlug(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsSpace(r):
			b.WriteRune('_')
		case r == '_' || r == '-' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))):
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return defaultDriveSlug
	}
	return b.String()
}

// backendIDFor builds a backend id from the display name and a token
// derived from the creation time.
func backendIDFor(name string, created time.Time) string {
	return driveSlug(name) + "-" + strconv.FormatInt(created.UnixNano(), 36)
}

// isReadme matches README.md case-insensitively
func isReadme(name string) bool {
	return strings.EqualFold(name, readmeName)
}
