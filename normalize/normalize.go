// Package normalize cleans raw scraped page text before structured
// extraction. Cleaning is deterministic and does no I/O.
package normalize

import (
	"regexp"
	"strings"

	"github.com/fwojciec/skillet"
)

// Ensure Normalizer implements skillet.Normalizer at compile time.
var _ skillet.Normalizer = (*Normalizer)(nil)

// MinLineLength is the minimum length a line must have to survive
// cleaning. Shorter lines are almost always stray UI labels.
const MinLineLength = 3

// boilerplatePatterns match phrases that recipe sites inject around the
// actual content: share buttons, nutrition label chrome, cookie banners,
// newsletter prompts.
var boilerplatePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)jump to recipe`),
	regexp.MustCompile(`(?i)print recipe`),
	regexp.MustCompile(`(?i)pin recipe`),
	regexp.MustCompile(`(?i)save recipe`),
	regexp.MustCompile(`(?i)share (this|on|via)\s*\w*`),
	regexp.MustCompile(`(?i)follow (us|me) on \w+`),
	regexp.MustCompile(`(?i)(facebook|twitter|pinterest|instagram|whatsapp)\s*(share)?`),
	regexp.MustCompile(`(?i)subscribe to (our|the|my) newsletter`),
	regexp.MustCompile(`(?i)sign up for (our|the|my)( free)? newsletter`),
	regexp.MustCompile(`(?i)(we use|this (web)?site uses) cookies[^.]*\.?`),
	regexp.MustCompile(`(?i)(accept|manage) (all )?cookies`),
	regexp.MustCompile(`(?i)privacy (policy|preferences|settings)`),
	regexp.MustCompile(`(?i)terms (of (use|service)|and conditions)`),
	regexp.MustCompile(`(?i)advertisement|sponsored content`),
	regexp.MustCompile(`(?i)nutrition(al)? (facts|information|label)`),
	regexp.MustCompile(`(?i)(daily value|% dv|calories per serving)`),
	regexp.MustCompile(`(?i)leave a (comment|review|rating)`),
	regexp.MustCompile(`(?i)rate this recipe`),
	regexp.MustCompile(`(?i)skip to (main )?content`),
	regexp.MustCompile(`(?i)(log ?in|sign ?in|sign ?up|my account)`),
	regexp.MustCompile(`(?i)related (recipes|posts|articles)`),
	regexp.MustCompile(`(?i)you (may|might) also (like|enjoy)`),
	regexp.MustCompile(`(?i)affiliate links? disclosure?`),
}

// noiseChars matches characters that carry no meaning for extraction.
// Unicode letters, digits, common punctuation and fraction glyphs stay.
var noiseChars = regexp.MustCompile(`[^\p{L}\p{N}\s.,;:!?()\[\]/'"&%°½¼¾⅓⅔⅛⅜⅝⅞+*=-]`)

// spaceRuns collapses runs of spaces and tabs.
var spaceRuns = regexp.MustCompile(`[ \t]+`)

// Normalizer cleans raw text.
type Normalizer struct{}

// New creates a new Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// Clean removes boilerplate phrases and noise characters, collapses
// whitespace, drops lines shorter than MinLineLength, and deduplicates
// lines case-insensitively while preserving first-seen order.
func (n *Normalizer) Clean(text string) string {
	for _, re := range boilerplatePatterns {
		text = re.ReplaceAllString(text, " ")
	}
	text = noiseChars.ReplaceAllString(text, " ")

	seen := make(map[string]bool)
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
		if len([]rune(line)) < MinLineLength {
			continue
		}
		key := strings.ToLower(line)
		if seen[key] {
			continue
		}
		seen[key] = true
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
