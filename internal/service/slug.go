package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// GenerateSlug lowercases the name and collapses every run of
// non-alphanumeric characters into a single hyphen.
func GenerateSlug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
		} else if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// GenerateSKU derives a variant SKU from the product name and size, with
// a timestamp suffix to keep collisions out of the unique index.
func GenerateSKU(productName, size string) string {
	prefix := strings.ToUpper(GenerateSlug(productName))
	if len(prefix) > 12 {
		prefix = prefix[:12]
	}
	sizePart := strings.ToUpper(GenerateSlug(size))
	return fmt.Sprintf("%s-%s-%d", prefix, sizePart, time.Now().UnixMilli()%1000000)
}
