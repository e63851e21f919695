package lexicon

// builtinEntry seeds the static lexicon. Popularity is a hand-assigned
// adoption estimate in [0,1]; entries on the deny-list are marked outdated.
type builtinEntry struct {
	category   string
	aliases    []string
	popularity float64
}

var builtinTech = map[string]builtinEntry{
	// languages
	"python":     {category: CategoryLanguage, aliases: []string{"py"}, popularity: 0.95},
	"javascript": {category: CategoryLanguage, aliases: []string{"js", "ecmascript"}, popularity: 0.95},
	"java":       {category: CategoryLanguage, popularity: 0.85},
	"c++":        {category: CategoryLanguage, aliases: []string{"cpp"}, popularity: 0.70},
	"c#":         {category: CategoryLanguage, aliases: []string{"csharp"}, popularity: 0.70},
	"go":         {category: CategoryLanguage, aliases: []string{"golang"}, popularity: 0.85},
	"rust":       {category: CategoryLanguage, popularity: 0.75},
	"ruby":       {category: CategoryLanguage, popularity: 0.60},
	"php":        {category: CategoryLanguage, popularity: 0.65},
	"swift":      {category: CategoryLanguage, popularity: 0.65},

	// frameworks
	"django":  {category: CategoryFramework, popularity: 0.75},
	"flask":   {category: CategoryFramework, popularity: 0.70},
	"fastapi": {category: CategoryFramework, popularity: 0.80},
	"express": {category: CategoryFramework, aliases: []string{"expressjs"}, popularity: 0.75},
	"react":   {category: CategoryFramework, aliases: []string{"reactjs"}, popularity: 0.90},
	"vue":     {category: CategoryFramework, aliases: []string{"vuejs"}, popularity: 0.80},
	"angular": {category: CategoryFramework, aliases: []string{"angularjs"}, popularity: 0.70},
	"spring":  {category: CategoryFramework, aliases: []string{"spring boot"}, popularity: 0.75},
	"laravel": {category: CategoryFramework, popularity: 0.65},

	// databases
	"postgresql":    {category: CategoryDatabase, aliases: []string{"postgres"}, popularity: 0.85},
	"mysql":         {category: CategoryDatabase, popularity: 0.80},
	"mongodb":       {category: CategoryDatabase, aliases: []string{"mongo"}, popularity: 0.75},
	"redis":         {category: CategoryDatabase, popularity: 0.80},
	"elasticsearch": {category: CategoryDatabase, aliases: []string{"es"}, popularity: 0.70},
	"cassandra":     {category: CategoryDatabase, popularity: 0.55},

	// cloud platforms
	"aws":          {category: CategoryCloud, aliases: []string{"amazon web services"}, popularity: 0.90},
	"azure":        {category: CategoryCloud, aliases: []string{"microsoft azure"}, popularity: 0.80},
	"google_cloud": {category: CategoryCloud, aliases: []string{"gcp"}, popularity: 0.75},
	"aliyun":       {category: CategoryCloud, aliases: []string{"alibaba cloud"}, popularity: 0.50},
	"heroku":       {category: CategoryCloud, popularity: 0.55},

	// tooling
	"docker":     {category: CategoryTool, popularity: 0.90},
	"kubernetes": {category: CategoryTool, aliases: []string{"k8s"}, popularity: 0.85},
	"git":        {category: CategoryTool, aliases: []string{"github", "gitlab"}, popularity: 0.95},
	"jenkins":    {category: CategoryTool, popularity: 0.60},
	"terraform":  {category: CategoryTool, popularity: 0.75},

	// legacy entries kept resolvable so stacks that still list them get flagged
	"jquery":      {category: CategoryFramework, popularity: 0.45},
	"backbone":    {category: CategoryFramework, popularity: 0.20},
	"ember":       {category: CategoryFramework, popularity: 0.25},
	"knockout":    {category: CategoryFramework, popularity: 0.15},
	"php5":        {category: CategoryLanguage, popularity: 0.20},
	"python2":     {category: CategoryLanguage, popularity: 0.30},
	"ruby1.8":     {category: CategoryLanguage, popularity: 0.10},
	"mysql4":      {category: CategoryDatabase, popularity: 0.15},
	"mongodb2":    {category: CategoryDatabase, popularity: 0.20},
	"flash":       {category: CategoryTool, popularity: 0.10},
	"silverlight": {category: CategoryTool, popularity: 0.10},
}

// outdatedTech is the static deny-list checked by exact canonical name.
var outdatedTech = map[string]bool{
	"jquery":      true,
	"backbone":    true,
	"ember":       true,
	"knockout":    true,
	"php5":        true,
	"python2":     true,
	"ruby1.8":     true,
	"mysql4":      true,
	"mongodb2":    true,
	"flash":       true,
	"silverlight": true,
}
