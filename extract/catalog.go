package extract

// phraseCatalog is the curated technical and soft-skill phrase catalog used
// by the semantic strategy's first pass, grouped by domain. Matching is
// case-insensitive on word boundaries; groups only organize the catalog and
// do not affect weights.
var phraseCatalog = map[string][]string{
	"web": {
		"front end development",
		"back end development",
		"full stack development",
		"responsive design",
		"web development",
		"web services",
		"rest api",
		"restful api",
		"graphql api",
		"single page application",
		"progressive web app",
		"user interface",
		"user experience",
		"cross browser compatibility",
		"server side rendering",
		"state management",
		"component library",
	},
	"cloud": {
		"cloud computing",
		"cloud infrastructure",
		"cloud native",
		"cloud migration",
		"amazon web services",
		"google cloud platform",
		"microsoft azure",
		"infrastructure as code",
		"serverless architecture",
		"continuous integration",
		"continuous deployment",
		"continuous delivery",
		"container orchestration",
		"auto scaling",
		"load balancing",
		"site reliability engineering",
		"platform engineering",
	},
	"data": {
		"data analysis",
		"data analytics",
		"data engineering",
		"data science",
		"data pipeline",
		"data warehouse",
		"data modeling",
		"data visualization",
		"data governance",
		"big data",
		"business intelligence",
		"machine learning",
		"deep learning",
		"natural language processing",
		"computer vision",
		"predictive modeling",
		"statistical analysis",
		"feature engineering",
		"model training",
		"etl pipeline",
	},
	"architecture": {
		"software architecture",
		"system design",
		"microservices architecture",
		"event driven architecture",
		"domain driven design",
		"service oriented architecture",
		"design patterns",
		"api design",
		"distributed systems",
		"message queue",
		"technical leadership",
		"code review",
		"technical debt",
		"scalable systems",
		"high availability",
	},
	"soft-skills": {
		"problem solving",
		"critical thinking",
		"communication skills",
		"team collaboration",
		"cross functional collaboration",
		"project management",
		"product management",
		"stakeholder management",
		"time management",
		"agile methodology",
		"scrum master",
		"attention to detail",
		"mentoring junior engineers",
		"strategic planning",
		"decision making",
		"conflict resolution",
	},
	"security": {
		"information security",
		"application security",
		"network security",
		"cloud security",
		"penetration testing",
		"vulnerability assessment",
		"threat modeling",
		"incident response",
		"identity management",
		"access control",
		"security audit",
		"secure coding",
		"risk assessment",
		"compliance requirements",
	},
	"systems": {
		"operating systems",
		"embedded systems",
		"real time systems",
		"systems programming",
		"performance optimization",
		"memory management",
		"network programming",
		"database administration",
		"query optimization",
		"version control",
		"unit testing",
		"integration testing",
		"test driven development",
		"debugging skills",
		"build automation",
		"release management",
	},
	"emerging-tech": {
		"artificial intelligence",
		"generative ai",
		"large language models",
		"prompt engineering",
		"blockchain technology",
		"smart contracts",
		"internet of things",
		"edge computing",
		"augmented reality",
		"virtual reality",
		"quantum computing",
		"robotic process automation",
	},
}

// catalogPhrases returns the catalog flattened into one list. The order is
// deterministic: groups are iterated in a fixed order.
func catalogPhrases() []string {
	groups := []string{
		"web", "cloud", "data", "architecture",
		"soft-skills", "security", "systems", "emerging-tech",
	}
	var phrases []string
	for _, g := range groups {
		phrases = append(phrases, phraseCatalog[g]...)
	}
	return phrases
}
