package advisor

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Suggestion is a single category-tagged string an enrichment rule appends.
type Suggestion struct {
	Category Category `yaml:"category"`
	Text     string   `yaml:"text"`
}

// Rule is one row of the enrichment table. A rule fires when every entry of
// Question is contained in the lower-cased question prompt and at least one
// entry of Option is contained in the lower-cased option label. Rules are
// evaluated independently; firing appends, never replaces.
//
// Substrings are chosen accent-tolerant where the source text varies
// ("mbito" matches both "ámbito" and "ambito").
type Rule struct {
	Question []string     `yaml:"question"`
	Option   []string     `yaml:"option"`
	Adds     []Suggestion `yaml:"adds"`
}

// Matches reports whether the rule fires for the given lower-cased
// question and option texts.
func (r Rule) Matches(questionLow, optionLow string) bool {
	for _, q := range r.Question {
		if !contains(questionLow, q) {
			return false
		}
	}
	for _, o := range r.Option {
		if contains(optionLow, o) {
			return true
		}
	}
	return false
}

func contains(haystack, needle string) bool {
	return needle != "" && strings.Contains(haystack, needle)
}

// LoadRules reads an enrichment table from a YAML file. The table is data:
// extending it never touches the evaluation pass.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	var doc struct {
		Rules []Rule `yaml:"rules"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	return doc.Rules, nil
}

// DefaultRules is the built-in enrichment table, used when no external
// table is configured.
func DefaultRules() []Rule {
	return []Rule{
		// Tipo de aplicación.
		{
			Question: []string{"tipo", "aplicaci"},
			Option:   []string{"web"},
			Adds: []Suggestion{
				{CategoryFrontend, "React"},
				{CategoryFrontend, "Vue.js"},
				{CategoryFrontend, "HTML5/CSS3"},
				{CategoryBackend, "Node.js (Express)"},
				{CategoryBackend, "Django (Python)"},
				{CategoryDatabase, "PostgreSQL"},
				{CategoryArchitecture, "Monolito modulable / Microservicios según escala"},
			},
		},
		{
			Question: []string{"tipo", "aplicaci"},
			Option:   []string{"móvil", "movil"},
			Adds: []Suggestion{
				{CategoryFrontend, "React Native"},
				{CategoryFrontend, "Flutter"},
				{CategoryBackend, "Node.js / Django"},
				{CategoryDatabase, "PostgreSQL / Firebase (según necesidades)"},
				{CategoryArchitecture, "Backend escalable (Microservicios si es enterprise)"},
			},
		},
		{
			Question: []string{"tipo", "aplicaci"},
			Option:   []string{"escritorio"},
			Adds: []Suggestion{
				{CategoryFrontend, "Electron / Tauri"},
				{CategoryBackend, "Go / .NET / Java"},
			},
		},
		{
			Question: []string{"tipo", "aplicaci"},
			Option:   []string{"híbrida", "hibrida"},
			Adds: []Suggestion{
				{CategoryFrontend, "Ionic"},
				{CategoryFrontend, "Capacitor"},
				{CategoryFrontend, "React Native"},
				{CategoryBackend, "Node.js"},
			},
		},
		{
			Question: []string{"tipo", "aplicaci"},
			Option:   []string{"enterpris"},
			Adds: []Suggestion{
				{CategoryBackend, "Java (Spring)"},
				{CategoryBackend, "Go"},
				{CategoryArchitecture, "Arquitectura enterprise, alta disponibilidad"},
			},
		},

		// Ámbito principal.
		{
			Question: []string{"mbito"},
			Option:   []string{"b2c", "consumidor", "consumo", "cliente", "público", "publico"},
			Adds: []Suggestion{
				{CategoryFrontend, "SPA (React/Vue) con enfoque UX y rendimiento"},
				{CategoryBackend, "Node.js con CDN y caching"},
				{CategoryMethodology, "Ágil (Ciclos cortos, MVP)"},
			},
		},
		{
			Question: []string{"mbito"},
			Option:   []string{"b2b", "empresa", "negocio"},
			Adds: []Suggestion{
				{CategoryBackend, "Java Spring / .NET para mantenibilidad y SLAs"},
				{CategorySecurity, "OAuth2, SSO, cumplimiento de normativas"},
				{CategoryDatabase, "PostgreSQL / Oracle"},
			},
		},
		{
			Question: []string{"mbito"},
			Option:   []string{"interna", "interno", "uso interno"},
			Adds: []Suggestion{
				{CategoryBackend, "Python (Django/Flask) para rapidez de desarrollo"},
				{CategoryDatabase, "SQLite / PostgreSQL según tamaño"},
			},
		},
		{
			Question: []string{"mbito"},
			Option:   []string{"educacion", "educacional", "formacion", "formación"},
			Adds: []Suggestion{
				{CategoryFrontend, "React/Vanilla + accesibilidad (a11y)"},
				{CategoryMethodology, "MVP + feedback de usuarios"},
			},
		},
		{
			Question: []string{"mbito"},
			Option:   []string{"comercio", "e-commerce", "ventas"},
			Adds: []Suggestion{
				{CategoryFrontend, "React + librerías de comercio (o Headless CMS)"},
				{CategoryBackend, "Node.js / Django con integración de pasarelas de pago (Stripe/PayPal)"},
				{CategoryDatabase, "PostgreSQL / Managed DB con respaldo y escalado"},
				{CategoryArchitecture, "CDN, caching, búsqueda (ElasticSearch), escalado horizontal"},
				{CategorySecurity, "PCI-DSS considerations, HTTPS, protección contra fraudes"},
			},
		},

		// Característica prioritaria.
		{
			Question: []string{"caracter"},
			Option:   []string{"velocidad", "rápido", "rapido"},
			Adds: []Suggestion{
				{CategoryBackend, "Node.js / Serverless (deploy rápido)"},
				{CategoryMethodology, "Ciclos cortos, prototipado rápido"},
			},
		},
		{
			Question: []string{"caracter"},
			Option:   []string{"rendimiento"},
			Adds: []Suggestion{
				{CategoryBackend, "Go / Rust"},
				{CategoryArchitecture, "Servicios optimizados, benchmarking"},
			},
		},
		{
			Question: []string{"caracter"},
			Option:   []string{"escalabilidad"},
			Adds: []Suggestion{
				{CategoryArchitecture, "Microservicios + Kubernetes"},
			},
		},

		// Tipo de interfaz.
		{
			Question: []string{"interfaz"},
			Option:   []string{"simple"},
			Adds:     []Suggestion{{CategoryFrontend, "HTML/CSS/JS simple"}},
		},
		{
			Question: []string{"interfaz"},
			Option:   []string{"interactiva"},
			Adds:     []Suggestion{{CategoryFrontend, "SPA (React/Vue)"}},
		},
		{
			Question: []string{"interfaz"},
			Option:   []string{"rica"},
			Adds:     []Suggestion{{CategoryFrontend, "WebGL / Canvas"}},
		},
		{
			Question: []string{"interfaz"},
			Option:   []string{"tiempo real", "real"},
			Adds:     []Suggestion{{CategoryArchitecture, "Sockets / WebRTC (ej: Socket.IO)"}},
		},

		// Estructura de datos.
		{
			Question: []string{"estructura"},
			Option:   []string{"estructurada"},
			Adds:     []Suggestion{{CategoryDatabase, "RDBMS (PostgreSQL, MySQL)"}},
		},
		{
			Question: []string{"estructura"},
			Option:   []string{"semi"},
			Adds:     []Suggestion{{CategoryDatabase, "MongoDB / Firebase"}},
		},
		{
			Question: []string{"estructura"},
			Option:   []string{"no estructur"},
			Adds:     []Suggestion{{CategoryDatabase, "Data lake / almacenamiento en blob (S3)"}},
		},

		// Volumen de datos.
		{
			Question: []string{"volumen"},
			Option:   []string{"pequeño", "pequeno"},
			Adds:     []Suggestion{{CategoryDatabase, "DB local o soluciones gratuitas (SQLite, managed small DB)"}},
		},
		{
			Question: []string{"volumen"},
			Option:   []string{"grande", "masivo"},
			Adds:     []Suggestion{{CategoryArchitecture, "Escalado horizontal, shards, particionado"}},
		},

		// Integraciones y pagos.
		{
			Question: []string{"pagos"},
			Option:   []string{"pagos", "stripe", "paypal"},
			Adds:     []Suggestion{{CategoryBackend, "Integración con Stripe/PayPal SDKs"}},
		},
		{
			Question: []string{"integraciones"},
			Option:   []string{"pagos", "stripe", "paypal"},
			Adds:     []Suggestion{{CategoryBackend, "Integración con Stripe/PayPal SDKs"}},
		},

		// Seguridad.
		{
			Question: []string{"seguridad"},
			Option:   []string{"enterprise", "compliance", "iso"},
			Adds:     []Suggestion{{CategorySecurity, "Compliance ISO, SSO, auditoría y logging"}},
		},
		{
			Question: []string{"seguridad"},
			Option:   []string{"cifrado", "extremo"},
			Adds:     []Suggestion{{CategorySecurity, "Cifrado extremo a extremo, gestión de claves"}},
		},
	}
}
