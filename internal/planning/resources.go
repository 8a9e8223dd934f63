package planning

import (
	"github.com/jonathan/jobready/internal/parsing"
	"github.com/jonathan/jobready/internal/types"
)

// defaultResources is used for skills with no entry in resourceTable.
var defaultResources = types.ResourceBundle{
	Courses:       []string{"Search Coursera, Udemy or edX for a highly rated introductory course"},
	Documentation: []string{"Official documentation and getting-started guide"},
	Projects:      []string{"Build a small end-to-end project using the skill"},
}

// resourceTable is keyed by parsing.SkillKey.
var resourceTable = map[string]types.ResourceBundle{
	"python": {
		Courses:       []string{"Python for Everybody (Coursera)", "Automate the Boring Stuff with Python"},
		Documentation: []string{"https://docs.python.org/3/tutorial/"},
		Projects:      []string{"CLI data-processing tool with tests", "REST API with FastAPI"},
	},
	"docker": {
		Courses:       []string{"Docker Mastery (Udemy)"},
		Documentation: []string{"https://docs.docker.com/get-started/"},
		Projects:      []string{"Containerize an existing application with a multi-stage build"},
	},
	"kubernetes": {
		Courses:       []string{"Kubernetes for Developers (LFD259)", "Certified Kubernetes Application Developer prep"},
		Documentation: []string{"https://kubernetes.io/docs/tutorials/"},
		Projects:      []string{"Deploy a service with Helm on a local kind cluster"},
	},
	"aws": {
		Courses:       []string{"AWS Cloud Practitioner Essentials", "AWS Solutions Architect Associate prep"},
		Documentation: []string{"https://docs.aws.amazon.com/"},
		Projects:      []string{"Serverless API with Lambda and DynamoDB"},
	},
	"sql": {
		Courses:       []string{"SQL for Data Science (Coursera)"},
		Documentation: []string{"https://www.postgresql.org/docs/current/tutorial.html"},
		Projects:      []string{"Analytics queries over a public dataset"},
	},
	"machine learning": {
		Courses:       []string{"Machine Learning Specialization (Coursera)"},
		Documentation: []string{"https://scikit-learn.org/stable/user_guide.html"},
		Projects:      []string{"End-to-end model with evaluation report"},
	},
	"mlops": {
		Courses:       []string{"MLOps Zoomcamp"},
		Documentation: []string{"https://mlflow.org/docs/latest/index.html"},
		Projects:      []string{"Training pipeline with experiment tracking and model registry"},
	},
	"terraform": {
		Courses:       []string{"HashiCorp Terraform Associate prep"},
		Documentation: []string{"https://developer.hashicorp.com/terraform/tutorials"},
		Projects:      []string{"Provision a VPC and a managed database as code"},
	},
	"go": {
		Courses:       []string{"A Tour of Go", "Learn Go with Tests"},
		Documentation: []string{"https://go.dev/doc/effective_go"},
		Projects:      []string{"Concurrent HTTP service with graceful shutdown"},
	},
}

// certifiedSkills have a recognised certification track.
var certifiedSkills = map[string]bool{
	"aws":        true,
	"azure":      true,
	"gcp":        true,
	"kubernetes": true,
	"terraform":  true,
	"docker":     true,
	"postgresql": true,
	"mongodb":    true,
	"tensorflow": true,
	"security":   true,
}

// ResourcesFor returns the resource bundle for skill, or the default bundle.
func ResourcesFor(skill string) types.ResourceBundle {
	if b, ok := resourceTable[parsing.SkillKey(skill)]; ok {
		return b
	}
	return defaultResources
}

// CertificationAvailable reports whether skill has a certification track.
func CertificationAvailable(skill string) bool {
	return certifiedSkills[parsing.SkillKey(skill)]
}
