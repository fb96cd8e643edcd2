package signals

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category names used by the scoring formulas.
const (
	CatEscalation      = "escalation"
	CatSatisfaction    = "satisfaction"
	CatEmpathy         = "empathy"
	CatProfessionalism = "professionalism"
	CatResolution      = "resolution"
	CatResponsiveness  = "responsiveness"
	CatWaiting         = "waiting"
	CatEffort          = "effort"
	CatTangibles       = "tangibles"
	CatAssurance       = "assurance"
	CatTechnical       = "technical"
	CatSolution        = "solution"
	CatKnowledge       = "knowledge"
	CatCompliance      = "compliance"
	CatIdentification  = "identification"
	CatRootCause       = "rootCause"
	CatClarity         = "clarity"
	CatEducation       = "education"
	CatFollowUp        = "followUp"
	CatTransfer        = "transfer"
)

// KeywordTable maps a category name to an ordered keyword list.
type KeywordTable struct {
	Version    string              `yaml:"version" json:"version"`
	Categories map[string][]string `yaml:"categories" json:"categories"`
}

// DefaultKeywords returns the built-in v1 table. Each call returns a fresh copy.
func DefaultKeywords() KeywordTable {
	return KeywordTable{
		Version: "v1",
		Categories: map[string][]string{
			CatEscalation:      {"angry", "frustrated", "upset", "terrible", "awful", "unacceptable", "ridiculous", "cancel", "complaint", "supervisor", "manager", "lawyer", "worst", "disappointed"},
			CatSatisfaction:    {"thank", "thanks", "great", "excellent", "perfect", "appreciate", "helpful", "wonderful", "amazing", "satisfied", "awesome"},
			CatEmpathy:         {"understand", "sorry", "apologize", "apologies", "frustrating", "imagine", "feel", "concern", "hear"},
			CatProfessionalism: {"please", "certainly", "absolutely", "happy to help", "pleasure", "welcome", "assist", "glad"},
			CatResolution:      {"resolved", "fixed", "solved", "taken care of", "working now", "all set"},
			CatResponsiveness:  {"right away", "immediately", "let me check", "one moment", "quickly", "asap"},
			CatWaiting:         {"hold", "wait", "waiting"},
			CatEffort:          {"again", "repeat", "already told", "transferred", "still"},
			CatTangibles:       {"email", "link", "document", "confirmation", "ticket number", "reference number", "screenshot"},
			CatAssurance:       {"guarantee", "ensure", "make sure", "confident", "definitely"},
			CatTechnical:       {"error", "system", "configuration", "technical", "install", "update", "password", "setting", "bug", "login"},
			CatSolution:        {"solution", "option", "try", "recommend", "suggest", "alternative"},
			CatKnowledge:       {"policy", "procedure", "according to", "documentation", "knowledge base", "article", "guide"},
			CatCompliance:      {"verify", "verification", "confirm", "security", "consent", "recorded", "privacy"},
			CatIdentification:  {"how can i help", "what seems to be", "what is the issue", "tell me", "the problem"},
			CatRootCause:       {"because", "caused", "reason", "why", "root cause", "due to"},
			CatClarity:         {"step", "first", "next", "then", "finally", "clarify"},
			CatEducation:       {"in the future", "next time", "tip", "you can also", "how to"},
			CatFollowUp:        {"follow up", "call you back", "get back to you", "check in"},
			CatTransfer:        {"escalate", "transfer"},
		},
	}
}

// Keywords returns the list for a category, or nil.
func (t KeywordTable) Keywords(category string) []string {
	return t.Categories[category]
}

// Merge returns a table where categories present in override replace the
// receiver's lists. The override's version wins when set.
func (t KeywordTable) Merge(override KeywordTable) KeywordTable {
	out := KeywordTable{Version: t.Version, Categories: make(map[string][]string, len(t.Categories))}
	for k, v := range t.Categories {
		out.Categories[k] = append([]string(nil), v...)
	}
	for k, v := range override.Categories {
		out.Categories[k] = append([]string(nil), v...)
	}
	if override.Version != "" {
		out.Version = override.Version
	}
	return out
}

// LoadKeywordTable reads a YAML keyword file and merges it over the defaults.
func LoadKeywordTable(path string) (KeywordTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return KeywordTable{}, fmt.Errorf("read keyword table: %w", err)
	}
	var override KeywordTable
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return KeywordTable{}, fmt.Errorf("parse keyword table %s: %w", path, err)
	}
	return DefaultKeywords().Merge(override), nil
}
