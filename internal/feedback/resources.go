package feedback

import (
	"strings"

	"github.com/abhisek/interviewer/internal/knowledge"
)

// MaxResourceGaps is how many knowledge gaps get a learning resource.
const MaxResourceGaps = 3

// topic is one row of a per-category resource table. Keywords are
// lowercase substrings looked up in the gap text.
type topic struct {
	Name        string
	Keywords    []string
	URL         string
	Description string
}

// GenericResourceURL is used when no topic matches a gap.
const GenericResourceURL = "https://learn.microsoft.com/en-us/training/"

// resourceTables are consulted in order; the first matching topic wins.
var resourceTables = map[knowledge.Category][]topic{
	knowledge.CategoryML: {
		{"Machine learning", []string{"machine", "learning", "model", "машин"}, "https://www.coursera.org/learn/machine-learning", "Andrew Ng's machine learning fundamentals course"},
		{"Neural networks", []string{"neural", "network", "deep", "нейрон"}, "https://www.deeplearning.ai/courses/neural-networks-deep-learning/", "Deep learning from deeplearning.ai"},
		{"Pandas/NumPy", []string{"pandas", "numpy", "dataframe"}, "https://pandas.pydata.org/docs/", "Official pandas documentation"},
		{"Scikit-learn", []string{"scikit", "sklearn"}, "https://scikit-learn.org/stable/documentation.html", "Scikit-learn documentation"},
		{"PyTorch", []string{"pytorch", "torch", "tensor"}, "https://pytorch.org/tutorials/", "Official PyTorch tutorials"},
	},
	knowledge.CategoryBackend: {
		{"Databases", []string{"database", "sql", "postgres", "index", "transaction", "баз"}, "https://www.postgresql.org/docs/", "PostgreSQL documentation"},
		{"REST API", []string{"rest", "api", "http"}, "https://restfulapi.net/", "REST API design guide"},
		{"Docker", []string{"docker", "container"}, "https://docs.docker.com/get-started/", "Getting started with Docker"},
		{"Microservices", []string{"microservice", "service", "микросервис"}, "https://microservices.io/", "Microservice architecture patterns"},
		{"Algorithms", []string{"algorithm", "data structure", "complexity", "алгоритм"}, "https://leetcode.com/", "Algorithm and data structure practice"},
	},
	knowledge.CategoryFrontend: {
		{"React", []string{"react", "hook", "component"}, "https://react.dev/learn", "Official React learning path"},
		{"JavaScript", []string{"javascript", "js", "event loop", "closure", "promise"}, "https://developer.mozilla.org/en-US/docs/Web/JavaScript", "MDN JavaScript documentation"},
		{"TypeScript", []string{"typescript", "type"}, "https://www.typescriptlang.org/docs/", "TypeScript documentation"},
		{"CSS", []string{"css", "layout", "flexbox", "grid", "style"}, "https://developer.mozilla.org/en-US/docs/Web/CSS", "MDN CSS documentation"},
		{"Web performance", []string{"performance", "render", "bundle", "производительн"}, "https://web.dev/learn/", "Web performance optimization"},
	},
	knowledge.CategoryQA: {
		{"Test automation", []string{"automation", "automated", "автоматиз"}, "https://www.selenium.dev/documentation/", "Selenium WebDriver documentation"},
		{"End-to-end testing", []string{"e2e", "end-to-end", "playwright", "browser"}, "https://playwright.dev/docs/intro", "Playwright getting started"},
		{"API testing", []string{"api", "rest", "postman"}, "https://learning.postman.com/docs/", "Postman learning center"},
		{"Test design", []string{"test design", "test case", "boundary", "equivalence", "coverage"}, "https://www.istqb.org/certifications/certified-tester-foundation-level", "ISTQB foundation syllabus"},
		{"Performance testing", []string{"performance", "load", "stress"}, "https://k6.io/docs/", "k6 load testing documentation"},
	},
	knowledge.CategoryDevOps: {
		{"Docker", []string{"docker", "container", "image"}, "https://docs.docker.com/get-started/", "Getting started with Docker"},
		{"Kubernetes", []string{"kubernetes", "k8s", "pod", "helm"}, "https://kubernetes.io/docs/tutorials/", "Kubernetes tutorials"},
		{"CI/CD", []string{"ci/cd", "pipeline", "continuous", "deploy"}, "https://docs.github.com/en/actions", "GitHub Actions documentation"},
		{"Infrastructure as code", []string{"terraform", "infrastructure", "iac", "ansible"}, "https://developer.hashicorp.com/terraform/tutorials", "Terraform tutorials"},
		{"Monitoring", []string{"monitoring", "observability", "metrics", "alert", "prometheus"}, "https://prometheus.io/docs/introduction/overview/", "Prometheus overview"},
	},
}

// MatchResource finds a learning resource for one gap. The table for
// category is scanned in order and the first topic with a keyword in the
// gap wins. Categories without a table use the backend table. A gap with
// no overlap gets the generic resource.
func MatchResource(category knowledge.Category, gap string) Resource {
	table, ok := resourceTables[category]
	if !ok {
		table = resourceTables[knowledge.CategoryBackend]
	}
	lower := strings.ToLower(gap)
	for _, t := range table {
		for _, kw := range t.Keywords {
			if strings.Contains(lower, kw) {
				return Resource{Topic: gap, Recommended: t.Name, URL: t.URL, Description: t.Description}
			}
		}
	}
	return Resource{
		Topic:       gap,
		Recommended: "General IT skills",
		URL:         GenericResourceURL,
		Description: "General learning materials",
	}
}
