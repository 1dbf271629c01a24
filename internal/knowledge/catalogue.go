package knowledge

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// DefaultCatalogue returns the built-in catalogue. The returned slice is a
// fresh copy.
func DefaultCatalogue() []Item {
	out := make([]Item, len(defaultCatalogue))
	copy(out, defaultCatalogue)
	return out
}

type catalogueFile struct {
	Items []Item `toml:"item"`
}

// LoadCatalogueFile reads a TOML catalogue made of [[item]] tables.
func LoadCatalogueFile(path string) ([]Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalogue: %w", err)
	}
	return ParseCatalogue(data)
}

// ParseCatalogue decodes and validates TOML catalogue data.
func ParseCatalogue(data []byte) ([]Item, error) {
	var f catalogueFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse catalogue: %w", err)
	}
	for i, it := range f.Items {
		if it.Text == "" {
			return nil, fmt.Errorf("catalogue item %d: empty text", i)
		}
		c, err := ParseCategory(string(it.Category))
		if err != nil {
			return nil, fmt.Errorf("catalogue item %d: %w", i, err)
		}
		f.Items[i].Category = c
		if it.TargetRole == "" {
			f.Items[i].TargetRole = AllRoles
		}
	}
	return f.Items, nil
}

var defaultCatalogue = []Item{
	// Backend
	{"Java Spring Framework: a framework for enterprise applications on the JVM. Core modules are Spring Core, Spring MVC and Spring Boot.", CategoryBackend, "frameworks", "Backend Developer"},
	{"Python Django: a high-level web framework for building secure and maintainable sites quickly, with an ORM, admin and migrations.", CategoryBackend, "frameworks", "Backend Developer"},
	{"Node.js: a server-side JavaScript runtime built on the V8 engine, used for scalable network applications with an event loop.", CategoryBackend, "languages", "Backend Developer"},
	{"Databases: relational (PostgreSQL, MySQL) versus NoSQL (MongoDB, Redis). Transactions, indexes, isolation levels and normalization.", CategoryBackend, "databases", "Backend Developer"},
	{"REST API versus GraphQL: REST uses HTTP methods over resources, GraphQL exposes a single endpoint where the client selects the fields it needs.", CategoryBackend, "api", "Backend Developer"},
	{"Microservice architecture: building an application as a set of small services, each running in its own process and owning its data.", CategoryBackend, "architecture", "Backend Developer"},

	// Frontend
	{"React: a JavaScript library for building user interfaces. Key concepts are components, state, props and hooks.", CategoryFrontend, "frameworks", "Frontend Developer"},
	{"Vue.js: a progressive JavaScript framework for UI. Reactivity system, directives and single-file components.", CategoryFrontend, "frameworks", "Frontend Developer"},
	{"TypeScript: a typed superset of JavaScript compiled to plain JavaScript. Static typing catches errors early and improves tooling.", CategoryFrontend, "languages", "Frontend Developer"},
	{"CSS Flexbox and Grid: modern layout techniques. Flexbox handles one-dimensional layouts, Grid handles two-dimensional ones.", CategoryFrontend, "styling", "Frontend Developer"},
	{"Web performance: load optimization, lazy loading, code splitting and caching of static assets.", CategoryFrontend, "performance", "Frontend Developer"},
	{"Accessibility (a11y): making web sites usable for people with disabilities through semantic markup, ARIA and keyboard navigation.", CategoryFrontend, "best practices", "Frontend Developer"},

	// QA
	{"Test case: a documented sequence of steps that verifies one function. It contains preconditions, steps and the expected result.", CategoryQA, "testing basics", "QA Engineer"},
	{"Testing types: functional, regression, load, usability and security testing.", CategoryQA, "testing types", "QA Engineer"},
	{"Selenium: a framework for automating web application testing, with bindings for Java, Python and C#.", CategoryQA, "automation", "QA Engineer"},
	{"API testing: verifying interaction between software components over their interfaces. Tools include Postman and SoapUI.", CategoryQA, "api testing", "QA Engineer"},
	{"Bug report: a document describing a defect with a title, reproduction steps, actual result and expected result.", CategoryQA, "bug reporting", "QA Engineer"},
	{"Mobile testing: specifics of testing on iOS and Android, emulators versus real devices.", CategoryQA, "mobile testing", "QA Engineer"},

	// DevOps
	{"Docker: a platform for containerizing applications. Key commands are docker build, docker run and docker compose.", CategoryDevOps, "containers", "DevOps Engineer"},
	{"Kubernetes: a container orchestration system. Core concepts are pods, services, deployments and namespaces.", CategoryDevOps, "orchestration", "DevOps Engineer"},
	{"CI/CD: continuous integration and continuous deployment with Jenkins, GitLab CI or GitHub Actions.", CategoryDevOps, "automation", "DevOps Engineer"},
	{"Infrastructure as code (IaC): Terraform, Ansible and CloudFormation for managing infrastructure declaratively.", CategoryDevOps, "infrastructure", "DevOps Engineer"},
	{"Monitoring: Prometheus collects metrics, Grafana visualizes them and the ELK stack aggregates logs.", CategoryDevOps, "monitoring", "DevOps Engineer"},
	{"Cloud platforms: AWS, Azure and Google Cloud. Core services cover compute, storage and networking.", CategoryDevOps, "cloud", "DevOps Engineer"},

	// ML and data
	{"Machine learning: supervised learning (classification, regression), unsupervised learning (clustering) and reinforcement learning.", CategoryML, "ml basics", "Data Scientist"},
	{"Python libraries: NumPy for numerical computing, Pandas for data analysis and scikit-learn for ML algorithms.", CategoryML, "libraries", "Data Scientist"},
	{"Neural networks: CNNs for images, RNNs and LSTMs for sequences, Transformers for NLP.", CategoryML, "neural networks", "Data Scientist"},
	{"Natural language processing (NLP): tokenization, stemming, lemmatization and word embeddings.", CategoryML, "nlp", "Data Scientist"},
	{"Data engineering: ETL pipelines, Apache Spark for large-scale processing and Airflow for orchestration.", CategoryML, "data engineering", "Data Engineer"},
	{"Data storage: data lakes versus data warehouses, SQL versus NoSQL for analytics workloads.", CategoryML, "data storage", "Data Engineer"},

	// General
	{"OOP: encapsulation, inheritance, polymorphism and abstraction. The SOLID principles.", CategoryGeneral, "programming paradigms", AllRoles},
	{"Algorithms and data structures: arrays, lists, stacks, queues, hash tables, trees and graphs.", CategoryGeneral, "algorithms", AllRoles},
	{"Algorithmic complexity: Big O notation. O(1), O(log n), O(n), O(n log n), O(n^2) and O(2^n).", CategoryGeneral, "complexity", AllRoles},
	{"Design patterns: Singleton, Factory, Observer, Strategy and Decorator.", CategoryGeneral, "design patterns", AllRoles},
	{"Git: a version control system. Key commands are clone, commit, push, pull, branch, merge and rebase.", CategoryGeneral, "version control", AllRoles},
	{"Agile methodologies: Scrum and Kanban. Sprints, daily standups and retrospectives.", CategoryGeneral, "methodologies", AllRoles},
}
