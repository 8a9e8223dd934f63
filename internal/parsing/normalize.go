// Package parsing normalizes skill and degree names coming from the CV/job parsers.
package parsing

import (
	"strings"

	"github.com/jonathan/jobready/internal/types"
)

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":                      "Go",
	"go lang":                     "Go",
	"javascript":                  "JavaScript",
	"js":                          "JavaScript",
	"typescript":                  "TypeScript",
	"ts":                          "TypeScript",
	"k8s":                         "Kubernetes",
	"kubernetes":                  "Kubernetes",
	"react.js":                    "React",
	"reactjs":                     "React",
	"node.js":                     "Node.js",
	"nodejs":                      "Node.js",
	"py":                          "Python",
	"python3":                     "Python",
	"postgres":                    "PostgreSQL",
	"postgresql":                  "PostgreSQL",
	"mongo":                       "MongoDB",
	"mongodb":                     "MongoDB",
	"aws":                         "AWS",
	"amazon web services":         "AWS",
	"gcp":                         "GCP",
	"google cloud":                "GCP",
	"google cloud platform":       "GCP",
	"azure":                       "Azure",
	"microsoft azure":             "Azure",
	"sql":                         "SQL",
	"ml":                          "Machine Learning",
	"machine learning":            "Machine Learning",
	"dl":                          "Deep Learning",
	"deep learning":               "Deep Learning",
	"nlp":                         "NLP",
	"natural language processing": "NLP",
	"mlops":                       "MLOps",
	"ci/cd":                       "CI/CD",
	"cicd":                        "CI/CD",
	"tf":                          "Terraform",
	"sklearn":                     "scikit-learn",
	"scikit-learn":                "scikit-learn",
	"pytorch":                     "PyTorch",
	"tensorflow":                  "TensorFlow",
}

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// All-caps single words that aren't known acronyms: capitalize first letter only
	if normalized == strings.ToUpper(normalized) && len(normalized) > 1 && !strings.Contains(lower, " ") {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	// Mixed case is kept as-is
	if normalized != strings.ToUpper(normalized) && normalized != strings.ToLower(normalized) {
		return normalized
	}

	// All lowercase single word: capitalize first letter
	if normalized == lower && !strings.Contains(normalized, " ") {
		return strings.ToUpper(normalized[:1]) + normalized[1:]
	}

	return normalized
}

// SkillKey returns the case-insensitive comparison key for a skill name.
// Synonyms share a key ("k8s" and "Kubernetes" both map to "kubernetes").
func SkillKey(skillName string) string {
	return strings.ToLower(NormalizeSkillName(skillName))
}

// SkillSet builds a key set from skill names.
func SkillSet(names ...[]string) map[string]bool {
	set := make(map[string]bool)
	for _, list := range names {
		for _, name := range list {
			if key := SkillKey(name); key != "" {
				set[key] = true
			}
		}
	}
	return set
}

// NormalizeSkillLevels normalizes skill names and deduplicates entries.
// The first occurrence keeps its position; duplicates raise its level if higher.
func NormalizeSkillLevels(skills types.SkillLevels) types.SkillLevels {
	if len(skills) == 0 {
		return skills
	}

	normalized := make(types.SkillLevels, 0, len(skills))
	seen := make(map[string]int)

	for _, sl := range skills {
		name := NormalizeSkillName(sl.Name)
		if name == "" {
			continue
		}

		key := strings.ToLower(name)
		if idx, exists := seen[key]; exists {
			if sl.Level > normalized[idx].Level {
				normalized[idx].Level = sl.Level
			}
			continue
		}

		normalized = append(normalized, types.SkillLevel{Name: name, Level: sl.Level})
		seen[key] = len(normalized) - 1
	}

	return normalized
}
