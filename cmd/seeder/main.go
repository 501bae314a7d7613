package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

// seedJob is one labeled entry of the generated evaluation dataset.
type seedJob struct {
	title       string
	description string
	labels      []seedLabel
}

type seedLabel struct {
	keyword   string
	frequency float64
	category  string
}

var jobs = []seedJob{
	{
		title: "Senior Backend Engineer",
		description: "We are hiring a senior backend engineer to design and operate " +
			"high-throughput services in Go and Python. You will own microservices " +
			"deployed on Kubernetes in AWS, tune PostgreSQL query plans, and build " +
			"event pipelines on Kafka. Experience with Docker, Terraform, and CI/CD " +
			"pipelines is expected. A bachelor's degree in computer science or " +
			"equivalent practical experience is required. Python is used daily for " +
			"tooling, and Go powers every production service.",
		labels: []seedLabel{
			{"backend engineer", 2, "role"},
			{"go", 2, "skill"},
			{"python", 2, "skill"},
			{"kubernetes", 1, "skill"},
			{"aws", 1, "skill"},
			{"postgresql", 1, "skill"},
			{"kafka", 1, "skill"},
			{"docker", 1, "skill"},
			{"terraform", 1, "skill"},
			{"bachelor's degree", 1, "qualification"},
		},
	},
	{
		title: "Frontend Developer",
		description: "Our product team needs a frontend developer fluent in React and " +
			"TypeScript. You will build accessible interfaces, collaborate with " +
			"designers on our component library, and write unit tests with Jest. " +
			"Familiarity with Next.js, GraphQL, and CSS-in-JS libraries is a strong " +
			"plus. React experience of three or more years is required, and " +
			"TypeScript is used across the entire codebase.",
		labels: []seedLabel{
			{"frontend developer", 1, "role"},
			{"react", 3, "skill"},
			{"typescript", 2, "skill"},
			{"jest", 1, "skill"},
			{"next.js", 1, "skill"},
			{"graphql", 1, "skill"},
			{"unit tests", 1, "skill"},
		},
	},
	{
		title: "Data Engineer",
		description: "Join our analytics group as a data engineer building batch and " +
			"streaming pipelines with Python, Spark, and Airflow. You will model " +
			"warehouses in Snowflake, maintain dbt projects, and keep SQL " +
			"transformations fast and correct. Python and SQL are the daily drivers; " +
			"Spark handles the heavy lifting. A master's degree in a quantitative " +
			"field is preferred but not required.",
		labels: []seedLabel{
			{"data engineer", 1, "role"},
			{"python", 2, "skill"},
			{"spark", 2, "skill"},
			{"airflow", 1, "skill"},
			{"snowflake", 1, "skill"},
			{"dbt", 1, "skill"},
			{"sql", 2, "skill"},
			{"master's degree", 1, "qualification"},
		},
	},
	{
		title: "DevOps Engineer",
		description: "We need a devops engineer to own our infrastructure as code. " +
			"The stack is AWS provisioned with Terraform, workloads on Kubernetes, " +
			"observability with Prometheus and Grafana, and delivery through GitHub " +
			"Actions. You will write automation in Python and Bash, harden our " +
			"Docker images, and keep the on-call rotation humane. AWS certification " +
			"is a plus.",
		labels: []seedLabel{
			{"devops engineer", 1, "role"},
			{"aws", 2, "skill"},
			{"terraform", 1, "skill"},
			{"kubernetes", 1, "skill"},
			{"prometheus", 1, "skill"},
			{"grafana", 1, "skill"},
			{"python", 1, "skill"},
			{"docker", 1, "skill"},
			{"aws certification", 1, "qualification"},
		},
	},
	{
		title: "Machine Learning Engineer",
		description: "As a machine learning engineer you will train and ship models " +
			"with PyTorch, serve them behind low-latency APIs, and build feature " +
			"pipelines in Python. Experience with TensorFlow, MLflow, and vector " +
			"databases is valuable. You will collaborate with data scientists on " +
			"model evaluation and run experiments on Kubernetes GPU clusters. A PhD " +
			"or master's degree in machine learning is preferred.",
		labels: []seedLabel{
			{"machine learning engineer", 1, "role"},
			{"pytorch", 1, "skill"},
			{"python", 1, "skill"},
			{"tensorflow", 1, "skill"},
			{"mlflow", 1, "skill"},
			{"kubernetes", 1, "skill"},
			{"machine learning", 2, "skill"},
			{"master's degree", 1, "qualification"},
		},
	},
	{
		title: "Site Reliability Engineer",
		description: "Our platform team is looking for a site reliability engineer. " +
			"You will define SLOs, automate toil away with Go, and debug production " +
			"incidents across Linux, Kubernetes, and AWS. Load testing, capacity " +
			"planning, and PostgreSQL performance work are all part of the job. " +
			"Strong communication skills and five years of operations experience " +
			"are required.",
		labels: []seedLabel{
			{"site reliability engineer", 1, "role"},
			{"go", 1, "skill"},
			{"linux", 1, "skill"},
			{"kubernetes", 1, "skill"},
			{"aws", 1, "skill"},
			{"postgresql", 1, "skill"},
			{"communication skills", 1, "skill"},
			{"5 years experience", 1, "qualification"},
		},
	},
	{
		title: "Mobile Developer",
		description: "We are hiring a mobile developer to build our iOS and Android " +
			"apps. The iOS app is Swift with SwiftUI, Android is Kotlin with Jetpack " +
			"Compose, and shared logic lives in a Kotlin multiplatform module. You " +
			"will profile startup time, integrate GraphQL APIs, and ship weekly. " +
			"Swift or Kotlin depth matters more than breadth.",
		labels: []seedLabel{
			{"mobile developer", 1, "role"},
			{"swift", 2, "skill"},
			{"kotlin", 3, "skill"},
			{"swiftui", 1, "skill"},
			{"jetpack compose", 1, "skill"},
			{"graphql", 1, "skill"},
			{"ios", 2, "skill"},
			{"android", 2, "skill"},
		},
	},
	{
		title: "Security Engineer",
		description: "As a security engineer you will run threat models, review code " +
			"for vulnerabilities, and build detection on our SIEM. Day to day you " +
			"will write Python tooling, audit AWS IAM policies, and drive " +
			"remediation with service teams. CISSP or OSCP certification and " +
			"penetration testing experience are strongly preferred.",
		labels: []seedLabel{
			{"security engineer", 1, "role"},
			{"python", 1, "skill"},
			{"aws", 1, "skill"},
			{"penetration testing", 1, "skill"},
			{"threat models", 1, "skill"},
			{"cissp", 1, "qualification"},
			{"oscp", 1, "qualification"},
		},
	},
	{
		title: "Product Manager",
		description: "We need a product manager for our developer platform. You will " +
			"own the roadmap, translate customer interviews into specs, and work " +
			"with engineering leadership on prioritization. Strong analytical " +
			"skills, SQL fluency for self-serve analytics, and excellent " +
			"communication skills are required. An MBA is nice to have, not a " +
			"requirement.",
		labels: []seedLabel{
			{"product manager", 1, "role"},
			{"roadmap", 1, "skill"},
			{"sql", 1, "skill"},
			{"analytical skills", 1, "skill"},
			{"communication skills", 1, "skill"},
			{"mba", 1, "qualification"},
		},
	},
	{
		title: "Full Stack Engineer",
		description: "Startup seeking a full stack engineer comfortable across the " +
			"whole product: React and TypeScript on the front, Node.js services on " +
			"the back, PostgreSQL underneath, everything deployed to AWS with " +
			"Docker. You will talk to users, ship fast, and own features end to " +
			"end. Three years of full stack experience required; Node.js and React " +
			"depth expected.",
		labels: []seedLabel{
			{"full stack engineer", 1, "role"},
			{"react", 2, "skill"},
			{"typescript", 1, "skill"},
			{"node.js", 2, "skill"},
			{"postgresql", 1, "skill"},
			{"aws", 1, "skill"},
			{"docker", 1, "skill"},
			{"3 years experience", 1, "qualification"},
		},
	},
}

var (
	outFileName = flag.String("out", "dataset.json", "output dataset file")
	count       = flag.Int("count", 0, "number of items to emit (0 means one per template)")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// datasetItem matches the JSON dataset format the evaluate command loads.
type datasetItem struct {
	Id          string           `json:"id"`
	Description string           `json:"description"`
	GroundTruth []datasetKeyword `json:"groundTruth"`
}

type datasetKeyword struct {
	Keyword   string  `json:"keyword"`
	Frequency float64 `json:"frequency"`
	Category  string  `json:"category,omitempty"`
}

// buildItems emits n dataset items, cycling through the job templates when
// n exceeds the template count.
func buildItems(n int) []datasetItem {
	items := make([]datasetItem, 0, n)
	for i := 0; i < n; i++ {
		job := jobs[i%len(jobs)]
		labels := make([]datasetKeyword, len(job.labels))
		for j, l := range job.labels {
			labels[j] = datasetKeyword{Keyword: l.keyword, Frequency: l.frequency, Category: l.category}
		}
		items = append(items, datasetItem{
			Id:          fmt.Sprintf("seed-%03d", i+1),
			Description: job.title + "\n\n" + job.description,
			GroundTruth: labels,
		})
	}
	return items
}

func main() {
	n := *count
	if n <= 0 {
		n = len(jobs)
	}

	items := buildItems(n)

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outFileName, data, 0644); err != nil {
		panic(err)
	}

	slog.Info("wrote dataset", "file", *outFileName, "items", len(items))
}
