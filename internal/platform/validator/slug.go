package validator

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	ErrInvalidSlugFormat = errors.New("slug must contain only lowercase letters, numbers, and hyphens")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugTooLong       = errors.New("slug is too long")
)

var (
	slugValidationRegex = regexp.MustCompile(`^[a-z0-9-]+$`)
	slugReplaceRegex    = regexp.MustCompile(`[^a-z0-9-]+`)
	slugCollapseRegex   = regexp.MustCompile(`-+`)
)

// đ has no decomposition, so it is mapped by hand before stripping marks.
var letterReplacer = strings.NewReplacer("đ", "d", "Đ", "D")

func ValidateSlugFormat(slug string, maxLength int) error {
	if slug == "" {
		return ErrSlugEmpty
	}
	if len(slug) > maxLength {
		return ErrSlugTooLong
	}
	if !slugValidationRegex.MatchString(slug) {
		return ErrInvalidSlugFormat
	}
	return nil
}

// GenerateSlug turns free text into a URL-safe slug. Accented Latin
// letters are folded to ASCII ("Kỷ niệm Đà Lạt" becomes "ky-niem-da-lat");
// anything else collapses into single hyphens. Returns "" when nothing
// usable remains.
func GenerateSlug(text string, maxLength int) string {
	slug := strings.ToLower(foldDiacritics(text))
	slug = slugReplaceRegex.ReplaceAllString(slug, "-")
	slug = slugCollapseRegex.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if len(slug) > maxLength {
		slug = strings.TrimRight(slug[:maxLength], "-")
	}
	return slug
}

// MakeSlugUniqueWithMaxLength appends "-suffix", truncating the base so the
// result fits maxLength.
func MakeSlugUniqueWithMaxLength(baseSlug string, suffix int, maxLength int) string {
	if suffix <= 1 {
		if len(baseSlug) > maxLength {
			return baseSlug[:maxLength]
		}
		return baseSlug
	}

	suffixStr := "-" + strconv.Itoa(suffix)
	if len(baseSlug)+len(suffixStr) > maxLength {
		maxBaseLength := maxLength - len(suffixStr)
		if maxBaseLength > 0 {
			baseSlug = strings.TrimRight(baseSlug[:maxBaseLength], "-")
		}
	}

	return baseSlug + suffixStr
}

func foldDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, letterReplacer.Replace(s))
	if err != nil {
		return s
	}
	return folded
}
