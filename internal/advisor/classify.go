package advisor

import "strings"

// Category is one of the fixed recommendation buckets.
type Category string

const (
	CategoryFrontend     Category = "frontend"
	CategoryBackend      Category = "backend"
	CategoryDatabase     Category = "database"
	CategoryArchitecture Category = "architecture"
	CategoryMethodology  Category = "methodology"
	CategorySecurity     Category = "security"
	CategoryOther        Category = "other"
)

// Categories lists every bucket in classification order. The first category
// whose keyword list matches wins, so ambiguous strings resolve to the
// earliest bucket here.
var Categories = []Category{
	CategoryFrontend,
	CategoryBackend,
	CategoryDatabase,
	CategoryArchitecture,
	CategoryMethodology,
	CategorySecurity,
	CategoryOther,
}

// categoryKeywords drives classification. Matching is case-insensitive
// substring containment against the lower-cased recommendation text.
// Commerce and payment terms land in backend; their frontend/database
// counterparts arrive through the enrichment rules instead.
var categoryKeywords = map[Category][]string{
	CategoryFrontend: {
		"react", "vue", "html", "css", "spa", "webgl", "canvas", "frontend",
		"reactjs", "flutter", "ionic", "electron", "tauri",
	},
	CategoryBackend: {
		"node", "django", "flask", "spring", "java", "go ", "golang", "rust",
		".net", "backend", "serverless",
		"commerce", "e-commerce", "comercio", "shop", "stripe", "paypal", "ventas",
	},
	CategoryDatabase: {
		"sql", "mysql", "postgres", "mongodb", "firebase", "hadoop", "spark",
		"database", "db", "redis", "data lake",
	},
	CategoryArchitecture: {
		"microserv", "monolit", "arquitectura", "cloud", "kubernetes",
		"cloud-native", "cdn", "escalado", "socket",
	},
	CategoryMethodology: {
		"scrum", "kanban", "waterfall", "mvp", "metodolog", "ágil", "agil",
		"prototip",
	},
	CategorySecurity: {
		"oauth", "jwt", "ssl", "https", "cifrado", "security", "seguridad",
		"compliance", "iso", "pci",
	},
}

// Classify assigns a recommendation string to exactly one category.
// A string matching no keyword list goes to the unclassifiable bucket
// rather than a guessed default.
func Classify(text string) Category {
	low := strings.ToLower(text)
	for _, cat := range Categories {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(low, kw) {
				return cat
			}
		}
	}
	return CategoryOther
}
