package lessgen

import "github.com/codr1/stylethemes/internal/models"

// Var is one LESS variable definition.
type Var struct {
	Name string
	Expr string
}

// Group is a run of variables, optionally preceded by a comment line.
type Group struct {
	Comment string
	Vars    []Var
}

// Section is a titled block of the variable sheet.
type Section struct {
	Title  string
	Groups []Group
}

// Sections is identical for every palette. Aliases reference base and
// override variables only; derived values reference aliases or the base
// foreground slots, never literal colors.
var Sections = []Section{
	{
		Title: "Semantic Mappings - Backgrounds",
		Groups: []Group{{Vars: []Var{
			{"bg-primary", "@base00"},
			{"bg-secondary", "@base01"},
			{"bg-selection", "@base02"},
			{"bg-elevated", "@base07"},
			{"bg-tertiary", "@base01"},
		}}},
	},
	{
		Title: "Semantic Mappings - Text",
		Groups: []Group{{Vars: []Var{
			{"text-muted", "@base03"},
			{"text-secondary", "@base04"},
			{"text-primary", "@base05"},
			{"text-emphasis", "@base06"},
		}}},
	},
	{
		Title: "Semantic Mappings - Status Colors",
		Groups: []Group{{Vars: []Var{
			{"color-error", "@base08"},
			{"color-warning", "@base09"},
			{"color-info", "@base0D"},
			{"color-success", "@base0C"},
		}}},
	},
	{
		Title: "Semantic Mappings - Syntax Highlighting",
		Groups: []Group{{Vars: []Var{
			{"syntax-variable", "@base08"},
			{"syntax-constant", "@base09"},
			{"syntax-class", "@base0A"},
			{"syntax-string", "@base0B"},
			{"syntax-regex", "@base0C"},
			{"syntax-function", "@base0D"},
			{"syntax-keyword", "@base0E"},
			{"syntax-comment", "@base03"},
			{"syntax-deprecated", "@base0F"},
		}}},
	},
	{
		Title: "Derived Colors (using LESS functions)",
		Groups: []Group{
			{Vars: []Var{
				{"hover-overlay", "fade(@base04, 10%)"},
				{"active-overlay", "fade(@base04, 20%)"},
				{"focus-ring", "fade(@primary, 50%)"},
				{"border-subtle", "fade(@base04, 15%)"},
				{"border-primary", "fade(@base04, 20%)"},
				{"shadow", "fade(@base05, 10%)"},
				{"selection-bg", "fade(@primary, 20%)"},
			}},
			{Comment: "Scrollbar colors", Vars: []Var{
				{"scrollbar-track", "@bg-secondary"},
				{"scrollbar-thumb", "fade(@base04, 40%)"},
				{"scrollbar-hover", "fade(@base04, 60%)"},
			}},
			{Comment: "Input colors", Vars: []Var{
				{"input-bg", "@bg-elevated"},
				{"input-border", "@border-primary"},
				{"input-focus-border", "@primary"},
				{"input-placeholder", "@text-muted"},
			}},
			{Comment: "Card colors", Vars: []Var{
				{"card-bg", "@bg-elevated"},
				{"card-border", "@border-subtle"},
				{"card-shadow", "fade(@base05, 10%)"},
			}},
			{Comment: "Code colors", Vars: []Var{
				{"code-bg", "@bg-secondary"},
				{"code-text", "@base08"},
			}},
		},
	},
}

// VariableNames lists every variable the sheet defines, in emission order.
// Site templates may reference these but must not redefine them.
func VariableNames() []string {
	names := []string{"theme-name", "theme-id", "theme-type"}
	names = append(names, models.Base16Keys...)
	names = append(names, "primary", "accent", "border-color")
	for _, section := range Sections {
		for _, group := range section.Groups {
			for _, v := range group.Vars {
				names = append(names, v.Name)
			}
		}
	}
	return names
}
