package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// similarityThreshold mirrors the ratio above which a password counts as
// derived from a user attribute.
const similarityThreshold = 0.7

// UserAttribute is a piece of user data a password must not resemble.
type UserAttribute struct {
	Label string
	Value string
}

var attributeSplitter = regexp.MustCompile(`\W+`)

var commonPasswords = map[string]struct{}{}

func init() {
	for _, p := range strings.Fields(`
		password password1 password12 password123 password1234 passw0rd p@ssw0rd
		12345678 123456789 1234567890 87654321 11111111 00000000 12341234
		qwerty123 qwertyuiop qwerty12 1q2w3e4r 1qaz2wsx zaq12wsx asdfghjkl
		iloveyou letmein1 welcome1 welcome123 sunshine princess football
		baseball superman trustno1 starwars dragon123 monkey123 master123
		abc12345 abcd1234 admin123 administrator changeme secret123
		computer internet whatever freedom1 michael1 jennifer shadow12
		mustang1 liverpool chelsea1 charlie1 batman123 pokemon1 fitness
		gymrat123 workout1 bodybuilding`) {
		commonPasswords[p] = struct{}{}
	}
}

// ValidatePassword returns every strength rule the password breaks.
// A too short password is reported alone.
func ValidatePassword(password string, attrs ...UserAttribute) []string {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return []string{fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength)}
	}

	var msgs []string
	for _, attr := range attrs {
		if tooSimilar(password, attr.Value) {
			msgs = append(msgs, fmt.Sprintf("The password is too similar to the %s.", attr.Label))
			break
		}
	}
	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		msgs = append(msgs, "This password is too common.")
	}
	if isNumeric(password) {
		msgs = append(msgs, "This password is entirely numeric.")
	}
	return msgs
}

func tooSimilar(password, value string) bool {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return false
	}
	password = strings.ToLower(password)

	parts := append([]string{value}, attributeSplitter.Split(value, -1)...)
	for _, part := range parts {
		if utf8.RuneCountInString(part) < 3 {
			continue
		}
		if similarity(password, part) >= similarityThreshold {
			return true
		}
	}
	return false
}

// similarity is 2*L/(len(a)+len(b)) where L is the longest common substring,
// all measured in characters.
func similarity(as, bs string) float64 {
	a, b := []rune(as), []rune(bs)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	longest := 0
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				curr[j] = prev[j-1] + 1
				if curr[j] > longest {
					longest = curr[j]
				}
			} else {
				curr[j] = 0
			}
		}
		prev, curr = curr, prev
	}
	return 2 * float64(longest) / float64(len(a)+len(b))
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
