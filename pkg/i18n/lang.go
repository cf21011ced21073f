package i18n

import (
	"cmp"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Text directions returned by Dir.
const (
	DirLTR = "ltr"
	DirRTL = "rtl"
)

// maxLangCodeLength is the maximum allowed length for a language code
const maxLangCodeLength = 35 // RFC 5646 recommends 35 characters max

// maxAcceptLanguageLength prevents DoS attacks through oversized Accept-Language headers.
// RFC 7231 doesn't specify a limit, but 4KB is generous for legitimate headers while
// preventing memory exhaustion from malicious requests.
const maxAcceptLanguageLength = 4096

// langWithQ represents a language tag with its quality value
type langWithQ struct {
	lang string
	q    float64
}

// parseAcceptLanguageHeader parses Accept-Language headers according to RFC 7231.
// Uses quality values to prioritize user preferences, handling malformed entries gracefully.
// Truncates oversized headers to prevent DoS while preserving most user preferences.
func parseAcceptLanguageHeader(header string) []langWithQ {
	if header == "" {
		return nil
	}

	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		langAndQ := strings.Split(part, ";")
		lang := strings.TrimSpace(langAndQ[0])
		lang = strings.ToLower(lang) // Case-insensitive matching per RFC 7231
		q := 1.0

		// Parse quality value if present
		if len(langAndQ) > 1 {
			qPart := strings.TrimSpace(langAndQ[1])
			if strings.HasPrefix(qPart, "q=") {
				if qVal, err := strconv.ParseFloat(qPart[2:], 64); err == nil && qVal >= 0 && qVal <= 1 {
					q = qVal
				}
			}
		}

		// q=0 marks the language as not acceptable
		if lang != "" && q > 0 {
			languages = append(languages, langWithQ{lang: lang, q: q})
		}
	}

	// Sort by quality score descending to respect user preferences
	slices.SortFunc(languages, func(a, b langWithQ) int {
		return cmp.Compare(b.q, a.q) // Reversed for descending order
	})

	return languages
}

// ParseAcceptLanguage implements RFC 7231 Accept-Language negotiation with fallback strategy.
// First attempts exact matches (en-US), then base language matches (en-US -> en).
// This two-phase approach balances user preferences with practical language support.
func ParseAcceptLanguage(header string, supportedLangs []string, defaultLang string) string {
	if header == "" || len(supportedLangs) == 0 {
		return defaultLang
	}

	normalizedSupported := make([]string, len(supportedLangs))
	for i, lang := range supportedLangs {
		normalizedSupported[i] = strings.ToLower(lang)
	}

	languages := parseAcceptLanguageHeader(header)

	// Phase 1: Exact matches (en-US matches en-US)
	for _, lq := range languages {
		if slices.Contains(normalizedSupported, lq.lang) {
			return lq.lang
		}
	}

	// Phase 2: Base language fallback (en-US matches en)
	// Only after all exact matches are exhausted to respect quality ordering
	for _, lq := range languages {
		if idx := strings.Index(lq.lang, "-"); idx > 0 {
			baseLang := lq.lang[:idx]
			if slices.Contains(normalizedSupported, baseLang) {
				return baseLang
			}
		}
	}

	return defaultLang
}

// rtlScripts lists ISO 15924 scripts written right to left.
var rtlScripts = map[string]struct{}{
	"Adlm": {}, "Arab": {}, "Hebr": {}, "Mand": {}, "Nkoo": {},
	"Rohg": {}, "Samr": {}, "Syrc": {}, "Thaa": {}, "Yezi": {},
}

// Dir returns the text direction of a language: DirRTL for languages written
// in a right-to-left script (ar, he, fa, ur, ...), DirLTR otherwise.
// The script is inferred from the tag when not given explicitly, so "az" is
// ltr while "az-Arab" is rtl. Unparseable codes are ltr.
func Dir(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return DirLTR
	}
	script, _ := tag.Script()
	if _, ok := rtlScripts[script.String()]; ok {
		return DirRTL
	}
	return DirLTR
}

// matcher maps arbitrary language codes onto the supported set.
type matcher struct {
	supported []string
	// codes[i] is the supported code behind tags[i]; codes that fail to parse
	// as BCP 47 are only reachable through exact and base matches.
	codes []string
	tm    language.Matcher
}

func newMatcher(supported []string) *matcher {
	m := &matcher{supported: slices.Clone(supported)}
	tags := make([]language.Tag, 0, len(supported))
	for _, code := range supported {
		tag, err := language.Parse(code)
		if err != nil {
			continue
		}
		tags = append(tags, tag)
		m.codes = append(m.codes, code)
	}
	if len(tags) > 0 {
		m.tm = language.NewMatcher(tags)
	}
	return m
}

// normalizeCode lowercases a code and converts POSIX style separators.
func normalizeCode(lang string) string {
	lang = strings.TrimSpace(lang)
	if lang == "" || len(lang) > maxLangCodeLength {
		return ""
	}
	return strings.ToLower(strings.ReplaceAll(lang, "_", "-"))
}

// match returns the supported language for lang or "" when nothing fits.
// Exact matches win, then the base language (en-US -> en), then the
// x/text matcher at high confidence (e.g. nb -> no).
func (m *matcher) match(lang string) string {
	lang = normalizeCode(lang)
	if lang == "" {
		return ""
	}
	if slices.Contains(m.supported, lang) {
		return lang
	}
	if idx := strings.Index(lang, "-"); idx > 0 {
		if base := lang[:idx]; slices.Contains(m.supported, base) {
			return base
		}
	}
	if m.tm == nil {
		return ""
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return ""
	}
	if _, idx, conf := m.tm.Match(tag); conf >= language.High {
		return m.codes[idx]
	}
	return ""
}

// matchAcceptLanguage picks the best supported language for an Accept-Language header.
func (m *matcher) matchAcceptLanguage(header string) string {
	if lang := ParseAcceptLanguage(header, m.supported, ""); lang != "" {
		return lang
	}
	if m.tm == nil || len(header) > maxAcceptLanguageLength {
		return ""
	}
	tags, qs, err := language.ParseAcceptLanguage(header)
	if err != nil {
		return ""
	}
	acceptable := make([]language.Tag, 0, len(tags))
	for i, tag := range tags {
		if qs[i] > 0 {
			acceptable = append(acceptable, tag)
		}
	}
	if len(acceptable) == 0 {
		return ""
	}
	if _, idx, conf := m.tm.Match(acceptable...); conf >= language.High {
		return m.codes[idx]
	}
	return ""
}
