package scoring

// CuratedKeywords is the keyword set scored by the keywords category.
var CuratedKeywords = []string{
	"machine learning",
	"deep learning",
	"mlops",
	"nlp",
	"computer vision",
	"data engineering",
	"data pipeline",
	"etl",
	"distributed systems",
	"microservices",
	"ci/cd",
	"devops",
	"cloud",
	"kubernetes",
	"docker",
	"rest api",
	"graphql",
	"agile",
	"llm",
	"generative ai",
	"statistics",
	"big data",
	"observability",
	"security",
}
