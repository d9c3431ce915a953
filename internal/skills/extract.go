package skills

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenBoundary matches a character that cannot be part of a skill token.
// "+" and "#" count as token characters so "C" never matches inside "C++" or "C#".
const tokenBoundary = `[^\pL\pN_+#]`

// Term is one vocabulary entry
type Term struct {
	Name     string
	Category Category
	Aliases  []string
	// CaseSensitive applies to Name only; aliases always match case-insensitively
	CaseSensitive bool
	// AliasesOnly skips matching Name itself
	AliasesOnly bool

	pattern *regexp.Regexp
}

// Vocabulary is an immutable, precompiled set of skill terms
type Vocabulary struct {
	terms     []Term
	canonical map[string]string
}

// NewVocabulary compiles whole-word matchers for every term
func NewVocabulary(terms []Term) (*Vocabulary, error) {
	vocab := &Vocabulary{
		terms:     make([]Term, 0, len(terms)),
		canonical: make(map[string]string, len(terms)),
	}

	for _, term := range terms {
		if strings.TrimSpace(term.Name) == "" {
			return nil, fmt.Errorf("vocabulary term has empty name")
		}

		var alternatives []string
		if !term.AliasesOnly {
			alt := phrasePattern(term.Name)
			if !term.CaseSensitive {
				alt = "(?i:" + alt + ")"
			}
			alternatives = append(alternatives, alt)
		}
		for _, alias := range term.Aliases {
			alternatives = append(alternatives, "(?i:"+phrasePattern(alias)+")")
			vocab.canonical[strings.ToLower(alias)] = term.Name
		}
		vocab.canonical[strings.ToLower(term.Name)] = term.Name

		expr := `(?:^|` + tokenBoundary + `)(?:` + strings.Join(alternatives, "|") + `)(?:$|` + tokenBoundary + `)`
		pattern, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile pattern for %q: %w", term.Name, err)
		}
		term.pattern = pattern
		vocab.terms = append(vocab.terms, term)
	}

	return vocab, nil
}

// phrasePattern quotes a term and lets its words be separated by any run of spaces or hyphens
func phrasePattern(phrase string) string {
	words := strings.Fields(phrase)
	for i, word := range words {
		words[i] = regexp.QuoteMeta(word)
	}
	return strings.Join(words, `[\s\-]+`)
}

// Extract returns the vocabulary terms that occur as whole words in text, in vocabulary order
func (v *Vocabulary) Extract(text string) []string {
	found := make([]string, 0)
	if strings.TrimSpace(text) == "" {
		return found
	}

	seen := make(map[string]bool)
	for _, term := range v.terms {
		if seen[term.Name] {
			continue
		}
		if term.pattern.MatchString(text) {
			seen[term.Name] = true
			found = append(found, term.Name)
		}
	}
	return found
}

// ExtractByCategory groups the matched terms by category
func (v *Vocabulary) ExtractByCategory(text string) map[Category][]string {
	grouped := make(map[Category][]string)
	if strings.TrimSpace(text) == "" {
		return grouped
	}

	for _, term := range v.terms {
		if term.pattern.MatchString(text) {
			grouped[term.Category] = append(grouped[term.Category], term.Name)
		}
	}
	return grouped
}

// Canonical returns the vocabulary name for a term or alias, ignoring case
func (v *Vocabulary) Canonical(name string) (string, bool) {
	canonical, ok := v.canonical[strings.ToLower(strings.TrimSpace(name))]
	return canonical, ok
}

// Len returns the number of terms in the vocabulary
func (v *Vocabulary) Len() int {
	return len(v.terms)
}

// Extract matches the résumé vocabulary against text
func Extract(text string) []string {
	return candidateVocabulary.Extract(text)
}

// ExtractJob matches the job-description vocabulary against text
func ExtractJob(text string) []string {
	return jobVocabulary.Extract(text)
}
