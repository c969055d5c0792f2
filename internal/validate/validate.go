package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// College email: must end in .edu or .ac.in
	reCollegeEmail = regexp.MustCompile(`^[\w.+-]+@[\w.-]+\.(edu|ac\.in)$`)
	reUsername     = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)
	rePhone        = regexp.MustCompile(`^[0-9+ -]{7,15}$`)
	reQ            = regexp.MustCompile(`^[A-Za-z0-9 _'\-]{1,50}$`)
	reImagePath    = regexp.MustCompile(`^[A-Za-z0-9_./-]{1,200}$`)
)

// CollegeEmail lowercases and validates a campus email address.
func CollegeEmail(s string) (string, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 0 || len(s) > 120 {
		return "", false
	}
	return s, reCollegeEmail.MatchString(s)
}

// EmailDomain extracts the domain part of an already-validated email.
func EmailDomain(email string) string {
	i := strings.LastIndexByte(email, '@')
	if i < 0 {
		return ""
	}
	return strings.ToLower(email[i+1:])
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reUsername.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true // optional
	}
	return s, rePhone.MatchString(s)
}

// Q validates a search query: trims, enforces allowed characters and max length
func Q(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, reQ.MatchString(s)
}

// ID parses a numeric resource identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// Title validates a listing title.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// ImagePath validates a stored image path reference; traversal is rejected.
func ImagePath(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if !reImagePath.MatchString(s) || strings.Contains(s, "..") || strings.HasPrefix(s, "/") {
		return "", false
	}
	return s, true
}

// Password enforces a simple length window plus character classes.
func Password(s string) bool {
	l := len(s)
	if l < 8 || l > 64 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range s {
		switch {
		case 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z':
			hasLetter = true
		case '0' <= r && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
