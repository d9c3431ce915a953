// Package skills provides the curated skill vocabulary and whole-word skill matching.
package skills

// Category groups related vocabulary terms
type Category string

// Vocabulary categories
const (
	CategoryLanguages Category = "languages"
	CategoryWeb       Category = "web"
	CategoryDatabases Category = "databases"
	CategoryCloud     Category = "cloud"
	CategoryAIML      Category = "ai_ml"
	CategoryMobile    Category = "mobile"
	CategoryTools     Category = "tools"
	CategoryTesting   Category = "testing"
	CategoryOther     Category = "other"
	CategoryConcepts  Category = "concepts"
)

// Categories lists every category in display order
var Categories = []Category{
	CategoryLanguages, CategoryWeb, CategoryDatabases, CategoryCloud, CategoryAIML,
	CategoryMobile, CategoryTools, CategoryTesting, CategoryConcepts, CategoryOther,
}

// languageTerms lists programming languages.
// "C" and "Go" are case-sensitive and "R" only matches its aliases, so prose like
// "go to" or "R&D" does not register.
var languageTerms = []Term{
	{Name: "Python"},
	{Name: "Java"},
	{Name: "JavaScript"},
	{Name: "TypeScript"},
	{Name: "C++", Aliases: []string{"cpp"}},
	{Name: "C#", Aliases: []string{"csharp"}},
	{Name: "C", CaseSensitive: true},
	{Name: "Go", Aliases: []string{"Golang"}, CaseSensitive: true},
	{Name: "Rust"},
	{Name: "Kotlin"},
	{Name: "Swift"},
	{Name: "Ruby"},
	{Name: "PHP"},
	{Name: "Scala"},
	{Name: "R", Aliases: []string{"R programming", "RStudio"}, AliasesOnly: true},
	{Name: "MATLAB"},
	{Name: "Dart"},
	{Name: "Perl"},
	{Name: "Bash", Aliases: []string{"shell scripting"}},
}

var webTerms = []Term{
	{Name: "HTML", Aliases: []string{"HTML5"}},
	{Name: "CSS", Aliases: []string{"CSS3"}},
	{Name: "React", Aliases: []string{"React.js", "ReactJS"}},
	{Name: "Angular", Aliases: []string{"AngularJS"}},
	{Name: "Vue", Aliases: []string{"Vue.js", "VueJS"}},
	{Name: "Node.js", Aliases: []string{"NodeJS"}},
	{Name: "Express.js", Aliases: []string{"ExpressJS"}},
	{Name: "Next.js", Aliases: []string{"NextJS"}},
	{Name: "Django"},
	{Name: "Flask"},
	{Name: "FastAPI"},
	{Name: "Spring Boot"},
	{Name: "Bootstrap"},
	{Name: "Tailwind CSS", Aliases: []string{"Tailwind"}},
	{Name: "jQuery"},
	{Name: "GraphQL"},
	{Name: "REST API", Aliases: []string{"REST APIs", "RESTful"}},
	{Name: "ASP.NET"},
}

var databaseTerms = []Term{
	{Name: "SQL"},
	{Name: "MySQL"},
	{Name: "PostgreSQL", Aliases: []string{"Postgres"}},
	{Name: "MongoDB", Aliases: []string{"Mongo"}},
	{Name: "SQLite"},
	{Name: "Redis"},
	{Name: "Oracle"},
	{Name: "Cassandra"},
	{Name: "DynamoDB"},
	{Name: "Firebase"},
	{Name: "Elasticsearch"},
	{Name: "Supabase"},
}

var cloudTerms = []Term{
	{Name: "AWS", Aliases: []string{"Amazon Web Services"}},
	{Name: "Azure", Aliases: []string{"Microsoft Azure"}},
	{Name: "GCP", Aliases: []string{"Google Cloud", "Google Cloud Platform"}},
	{Name: "Docker"},
	{Name: "Kubernetes", Aliases: []string{"K8s"}},
	{Name: "Terraform"},
	{Name: "Heroku"},
	{Name: "Vercel"},
	{Name: "CI/CD"},
	{Name: "Jenkins"},
	{Name: "Linux"},
}

var aimlTerms = []Term{
	{Name: "Machine Learning"},
	{Name: "Deep Learning"},
	{Name: "TensorFlow"},
	{Name: "PyTorch"},
	{Name: "Scikit-learn", Aliases: []string{"sklearn"}},
	{Name: "Keras"},
	{Name: "Pandas"},
	{Name: "NumPy"},
	{Name: "NLP", Aliases: []string{"Natural Language Processing"}},
	{Name: "Computer Vision", Aliases: []string{"OpenCV"}},
	{Name: "Data Analysis"},
	{Name: "Data Science"},
	{Name: "Power BI"},
	{Name: "Tableau"},
	{Name: "LLM", Aliases: []string{"LLMs"}},
}

var mobileTerms = []Term{
	{Name: "Android"},
	{Name: "iOS"},
	{Name: "React Native"},
	{Name: "Flutter"},
	{Name: "Xamarin"},
}

var toolTerms = []Term{
	{Name: "Git"},
	{Name: "GitHub"},
	{Name: "GitLab"},
	{Name: "Jira"},
	{Name: "Figma"},
	{Name: "Postman"},
	{Name: "VS Code", Aliases: []string{"Visual Studio Code"}},
	{Name: "Excel", Aliases: []string{"MS Excel", "Microsoft Excel"}, AliasesOnly: true},
}

var testingTerms = []Term{
	{Name: "JUnit"},
	{Name: "Selenium"},
	{Name: "Jest"},
	{Name: "Pytest"},
	{Name: "Cypress"},
	{Name: "Unit Testing"},
}

var otherTerms = []Term{
	{Name: "Agile"},
	{Name: "Scrum"},
	{Name: "Microservices"},
	{Name: "Blockchain"},
	{Name: "Cybersecurity"},
	{Name: "DevOps"},
}

// conceptTerms are only looked for in job descriptions
var conceptTerms = []Term{
	{Name: "Data Structures"},
	{Name: "Algorithms"},
	{Name: "OOP", Aliases: []string{"Object-Oriented Programming", "Object Oriented Programming"}},
	{Name: "DBMS"},
	{Name: "Operating Systems"},
	{Name: "Computer Networks"},
	{Name: "System Design"},
}

// categoryTerms binds a category to its terms
type categoryTerms struct {
	category Category
	terms    []Term
}

// candidateCategories is the category order used for résumés
var candidateCategories = []categoryTerms{
	{CategoryLanguages, languageTerms},
	{CategoryWeb, webTerms},
	{CategoryDatabases, databaseTerms},
	{CategoryCloud, cloudTerms},
	{CategoryAIML, aimlTerms},
	{CategoryMobile, mobileTerms},
	{CategoryTools, toolTerms},
	{CategoryTesting, testingTerms},
	{CategoryOther, otherTerms},
}

// jobCategories is the category order used for job descriptions
var jobCategories = []categoryTerms{
	{CategoryLanguages, languageTerms},
	{CategoryWeb, webTerms},
	{CategoryDatabases, databaseTerms},
	{CategoryCloud, cloudTerms},
	{CategoryAIML, aimlTerms},
	{CategoryMobile, mobileTerms},
	{CategoryConcepts, conceptTerms},
	{CategoryTools, toolTerms},
	{CategoryTesting, testingTerms},
	{CategoryOther, otherTerms},
}

var (
	candidateVocabulary = mustBuildVocabulary(candidateCategories)
	jobVocabulary       = mustBuildVocabulary(jobCategories)
)

// CandidateVocabulary returns the vocabulary matched against résumés
func CandidateVocabulary() *Vocabulary {
	return candidateVocabulary
}

// JobVocabulary returns the vocabulary matched against job descriptions
func JobVocabulary() *Vocabulary {
	return jobVocabulary
}

func mustBuildVocabulary(categories []categoryTerms) *Vocabulary {
	var terms []Term
	for _, c := range categories {
		for _, term := range c.terms {
			term.Category = c.category
			terms = append(terms, term)
		}
	}
	vocab, err := NewVocabulary(terms)
	if err != nil {
		panic(err)
	}
	return vocab
}
