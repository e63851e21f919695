package classify

import "fmt"

// categoryKeywords seeds the deterministic synthetic training corpus. Every
// keyword yields one sentence, every adjacent keyword pair a second, so
// retraining always reproduces the same model.
var categoryKeywords = map[string][]string{
	"web_development": {
		"web application", "website", "frontend", "backend", "api",
		"responsive design", "user interface", "browser", "server",
		"html", "css", "javascript", "react", "vue", "angular",
	},
	"mobile_app": {
		"mobile application", "ios", "android", "flutter", "react native",
		"smartphone", "tablet", "app store", "google play", "mobile ui",
		"cross platform", "native app", "hybrid app",
	},
	"data_science": {
		"data analysis", "data visualization", "statistics", "pandas",
		"numpy", "jupyter", "data cleaning", "exploratory analysis",
		"business intelligence", "dashboard", "reporting",
	},
	"machine_learning": {
		"machine learning", "artificial intelligence", "neural network",
		"deep learning", "tensorflow", "pytorch", "model training",
		"prediction", "classification", "regression", "clustering",
	},
	"iot": {
		"internet of things", "iot", "sensor", "smart device", "embedded",
		"arduino", "raspberry pi", "wireless", "bluetooth", "mqtt",
		"home automation", "smart home",
	},
	"blockchain": {
		"blockchain", "cryptocurrency", "smart contract", "distributed ledger",
		"ethereum", "bitcoin", "web3", "defi", "nft", "dapp",
		"consensus algorithm", "mining",
	},
	"game_development": {
		"game development", "video game", "unity", "unreal engine",
		"graphics", "3d modeling", "game engine", "game design",
		"virtual reality", "augmented reality", "game physics",
	},
	"desktop_application": {
		"desktop application", "windows app", "mac app", "linux app",
		"electron", "qt", "java swing", "c# wpf", "native desktop",
		"standalone application",
	},
	"embedded_systems": {
		"embedded system", "firmware", "microcontroller", "real-time",
		"embedded linux", "bare metal", "device driver", "hardware interface",
		"rtos", "embedded c", "assembly",
	},
	"cloud_infrastructure": {
		"cloud infrastructure", "devops", "kubernetes", "docker",
		"microservices", "containerization", "cloud native", "ci/cd",
		"infrastructure as code", "terraform", "ansible",
	},
}

// categoryOrder fixes corpus generation order.
var categoryOrder = []string{
	"web_development", "mobile_app", "data_science", "machine_learning",
	"iot", "blockchain", "game_development", "desktop_application",
	"embedded_systems", "cloud_infrastructure",
}

// Sample is one labeled training or evaluation document.
type Sample struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// TrainingCorpus generates the synthetic labeled corpus: one sentence per
// keyword plus one per adjacent keyword pair.
func TrainingCorpus() []Sample {
	var samples []Sample
	for _, category := range categoryOrder {
		keywords := categoryKeywords[category]
		for _, kw := range keywords {
			samples = append(samples, Sample{
				Text:  fmt.Sprintf("This is a %s project for %s", kw, category),
				Label: category,
			})
		}
		for i := 0; i < len(keywords)-1; i++ {
			samples = append(samples, Sample{
				Text:  fmt.Sprintf("Project involving %s and %s for %s", keywords[i], keywords[i+1], category),
				Label: category,
			})
		}
	}
	return samples
}

// Categories returns the supported labels in corpus order.
func Categories() []string {
	return append([]string(nil), categoryOrder...)
}
