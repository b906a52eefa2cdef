package transcription

import "regexp"

// genericPhrases biases recognition toward common technical vocabulary
// when the caller supplies no domain.
var genericPhrases = []string{
	"API", "SQL", "Python", "JavaScript", "TypeScript", "Java", "Go",
	"React", "Node.js", "Kubernetes", "Docker", "AWS", "microservices",
	"CI/CD", "REST", "GraphQL", "agile", "scrum", "stakeholder",
}

var domainPhrases = map[string][]string{
	"software-engineering": {
		"refactoring", "code review", "unit testing", "pull request",
		"technical debt", "design patterns", "load balancing", "caching",
		"distributed systems", "observability", "latency", "throughput",
	},
	"data-science": {
		"PyTorch", "TensorFlow", "pandas", "NumPy", "scikit-learn",
		"feature engineering", "cross validation", "overfitting",
		"regression", "classification", "neural network", "data pipeline",
	},
	"product-management": {
		"roadmap", "OKRs", "user research", "A/B testing", "backlog",
		"prioritization", "go to market", "churn", "retention",
		"north star metric", "customer journey", "MVP",
	},
}

// A correction is a deterministic find/replace applied to final
// transcript text. Patterns are whole-word and case-insensitive; order
// matters (longer confusions are listed before their substrings).
type correction struct {
	pattern     *regexp.Regexp
	replacement string
}

func newCorrection(phrase, replacement string) correction {
	return correction{
		pattern:     regexp.MustCompile(`(?i)\b` + phrase + `\b`),
		replacement: replacement,
	}
}

// generalCorrections fixes phonetic confusions the recognizers routinely
// make on technical speech, regardless of domain.
var generalCorrections = []correction{
	newCorrection(`java script`, "JavaScript"),
	newCorrection(`type script`, "TypeScript"),
	newCorrection(`get hub`, "GitHub"),
	newCorrection(`git hub`, "GitHub"),
	newCorrection(`my sequel`, "MySQL"),
	newCorrection(`sequel`, "SQL"),
	newCorrection(`post gress`, "Postgres"),
	newCorrection(`no js`, "Node.js"),
	newCorrection(`node js`, "Node.js"),
	newCorrection(`cooper netes`, "Kubernetes"),
	newCorrection(`sea sharp`, "C#"),
	newCorrection(`see sharp`, "C#"),
	newCorrection(`micro services`, "microservices"),
	newCorrection(`dev ops`, "DevOps"),
}

var domainCorrections = map[string][]correction{
	"data-science": {
		newCorrection(`pie torch`, "PyTorch"),
		newCorrection(`tensor flow`, "TensorFlow"),
		newCorrection(`numb pie`, "NumPy"),
		newCorrection(`psychic learn`, "scikit-learn"),
		newCorrection(`panda's`, "pandas"),
	},
	"product-management": {
		newCorrection(`road map`, "roadmap"),
		newCorrection(`okay ars`, "OKRs"),
		newCorrection(`em vp`, "MVP"),
	},
}

// Vocabulary supplies domain-biased phrase lists to recognition calls and
// applies post-hoc text corrections.
type Vocabulary struct{}

// NewVocabulary returns the built-in vocabulary tables.
func NewVocabulary() *Vocabulary { return &Vocabulary{} }

// Phrases returns the boost list for a domain, or the generic technical
// list when the domain is unknown or empty.
func (v *Vocabulary) Phrases(domainID string) []string {
	if extra, ok := domainPhrases[domainID]; ok {
		out := make([]string, 0, len(genericPhrases)+len(extra))
		out = append(out, genericPhrases...)
		out = append(out, extra...)
		return out
	}
	return genericPhrases
}

// Correct applies the general and domain correction tables to text.
// Corrections touch final text only, never per-word confidences.
func (v *Vocabulary) Correct(text, domainID string) string {
	for _, c := range generalCorrections {
		text = c.pattern.ReplaceAllString(text, c.replacement)
	}
	for _, c := range domainCorrections[domainID] {
		text = c.pattern.ReplaceAllString(text, c.replacement)
	}
	return text
}
