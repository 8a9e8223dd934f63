// Package skillset maintains the categorized master skill inventory.
package skillset

import (
	"strings"

	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/types"
)

// Subgroup names a technical skill subgroup.
type Subgroup string

const (
	Programming Subgroup = "programming"
	Frameworks  Subgroup = "frameworks"
	Tools       Subgroup = "tools"
	Databases   Subgroup = "databases"
	Cloud       Subgroup = "cloud"
	Soft        Subgroup = "soft"
)

// subgroupKeywords is matched against parsing.SkillKey, exact first, then by substring.
var subgroupKeywords = []struct {
	group    Subgroup
	keywords []string
}{
	{Programming, []string{"python", "go", "java", "javascript", "typescript", "c++", "c#", "rust", "ruby", "scala", "kotlin", "swift", "php", "r", "bash", "sql"}},
	{Frameworks, []string{"react", "angular", "vue", "django", "flask", "fastapi", "spring", "node.js", "express", "pytorch", "tensorflow", "scikit-learn", "pandas", "numpy", "spark", "rails", "gin"}},
	{Databases, []string{"postgresql", "mysql", "mongodb", "redis", "sqlite", "cassandra", "dynamodb", "elasticsearch", "snowflake", "bigquery", "oracle"}},
	{Cloud, []string{"aws", "gcp", "azure", "lambda", "s3", "ec2", "cloud", "heroku", "serverless"}},
	{Tools, []string{"docker", "kubernetes", "terraform", "git", "jenkins", "ansible", "airflow", "kafka", "ci/cd", "linux", "mlflow", "grafana", "prometheus"}},
}

var softSkills = map[string]bool{
	"communication":          true,
	"leadership":             true,
	"teamwork":               true,
	"collaboration":          true,
	"problem solving":        true,
	"mentoring":              true,
	"time management":        true,
	"adaptability":           true,
	"critical thinking":      true,
	"stakeholder management": true,
}

// Categorize returns the subgroup of skill. Unknown technical skills are tools.
func Categorize(skill string) Subgroup {
	key := parsing.SkillKey(skill)
	if softSkills[key] {
		return Soft
	}
	for _, sg := range subgroupKeywords {
		for _, k := range sg.keywords {
			if key == k {
				return sg.group
			}
		}
	}
	for _, sg := range subgroupKeywords {
		for _, k := range sg.keywords {
			if len(k) > 2 && strings.Contains(key, k) {
				return sg.group
			}
		}
	}
	return Tools
}

// Add files skill into the inventory. It reports false when already present.
func Add(m *types.MasterSkillset, skill string) bool {
	name := parsing.NormalizeSkillName(skill)
	if name == "" {
		return false
	}
	var list *[]string
	switch Categorize(name) {
	case Programming:
		list = &m.Technical.Programming
	case Frameworks:
		list = &m.Technical.Frameworks
	case Databases:
		list = &m.Technical.Databases
	case Cloud:
		list = &m.Technical.Cloud
	case Soft:
		list = &m.SoftSkills
	default:
		list = &m.Technical.Tools
	}
	return appendUnique(list, name)
}

// AddCertification records a certification, case-insensitively unique.
func AddCertification(m *types.MasterSkillset, cert string) bool {
	cert = strings.TrimSpace(cert)
	if cert == "" {
		return false
	}
	return appendUnique(&m.Certifications, cert)
}

// MergeProfile adds the profile's skills, soft skills and certifications.
// It returns the number of new entries.
func MergeProfile(m *types.MasterSkillset, profile *types.CandidateProfile) int {
	if profile == nil {
		return 0
	}
	added := 0
	for _, name := range profile.Skills.Names() {
		if Add(m, name) {
			added++
		}
	}
	for _, s := range profile.SoftSkills {
		if Add(m, s) {
			added++
		}
	}
	for _, c := range profile.Certifications {
		if AddCertification(m, c) {
			added++
		}
	}
	return added
}

func appendUnique(list *[]string, value string) bool {
	for _, v := range *list {
		if strings.EqualFold(v, value) {
			return false
		}
	}
	*list = append(*list, value)
	return true
}
