package models

// Theme is a static visual preset. Themes carry no behaviour, only data.
type Theme struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Background    string `json:"bg"`
	Card          string `json:"card"`
	Accent        string `json:"accent"`
	Text          string `json:"text"`
	SecondaryText string `json:"secondaryText"`
	Logo          string `json:"logo"`
}

// DefaultThemeID is used whenever a stored theme id does not resolve.
const DefaultThemeID = "standard"

// Themes is the static theme table.
var Themes = map[string]Theme{
	"standard":    {ID: "standard", Name: "Lancer Standard", Background: "bg-[#8a2529]", Card: "bg-white/10", Accent: "border-[#FCD450]", Text: "text-white", SecondaryText: "text-[#FCD450]", Logo: "/lancer-seal.png"},
	"anniversary": {ID: "anniversary", Name: "75th Year", Background: "bg-[#4b121e]", Card: "bg-[#d2b97b]/10", Accent: "border-[#86764e]", Text: "text-[#d2b97b]", SecondaryText: "text-[#86764e]", Logo: "/lancer-75.png"},
	"finearts":    {ID: "finearts", Name: "Fine Arts", Background: "bg-[#1a1a1a]", Card: "bg-[#0098DB]/10", Accent: "border-[#0098DB]", Text: "text-blue-50", SecondaryText: "text-[#0098DB]", Logo: "/lancer-seal.png"},
	"english":     {ID: "english", Name: "English", Background: "bg-[#373533]", Card: "bg-[#97233F]/10", Accent: "border-[#97233F]", Text: "text-rose-50", SecondaryText: "text-[#97233F]", Logo: "/lancer-seal.png"},
	"cte":         {ID: "cte", Name: "CTE", Background: "bg-[#1e1e1e]", Card: "bg-[#4C3327]/20", Accent: "border-[#4C3327]", Text: "text-orange-50", SecondaryText: "text-[#4C3327]", Logo: "/lancer-seal.png"},
	"stem":        {ID: "stem", Name: "STEM", Background: "bg-slate-950", Card: "bg-[#0098DB]/10", Accent: "border-[#0098DB]", Text: "text-sky-50", SecondaryText: "text-[#0098DB]", Logo: "/lancer-seal.png"},
	"theology":    {ID: "theology", Name: "Theology", Background: "bg-[#1a1315]", Card: "bg-[#780A1E]/10", Accent: "border-[#780A1E]", Text: "text-slate-100", SecondaryText: "text-[#780A1E]", Logo: "/lancer-seal.png"},
	"spanish":     {ID: "spanish", Name: "Spanish", Background: "bg-[#1a1a1a]", Card: "bg-[#FBBF39]/10", Accent: "border-[#FBBF39]", Text: "text-yellow-50", SecondaryText: "text-[#FBBF39]", Logo: "/lancer-seal.png"},
}

// ResolveTheme returns the theme for id, falling back to the default theme
// when the id is unknown or blank.
func ResolveTheme(id string) Theme {
	if theme, ok := Themes[id]; ok {
		return theme
	}
	return Themes[DefaultThemeID]
}
