package config

import "sort"

type Preset struct {
	Description string
	Segments    []string
	Palette     []string
}

var Presets = map[string]*Preset{
	"roster": {
		Description: "class roster, 26 names",
		Segments: []string{
			"Anton", "Miroslava", "Fedya", "Masha", "Boris", "Egor", "Sofya", "Messi",
			"Liza", "Danik K.", "Sergey", "Ivan Zolo", "Olympiad", "Kiril M.", "Roman", "Sanechka",
			"Anya", "Matvey S.", "Danik S.", "Kiril S.", "Matvey F.", "Pasha", "Arina",
			"Vlad", "Gleb", "Ivan B.",
		},
	},
	"letters": {
		Description: "four letters",
		Segments:    []string{"A", "B", "C", "D"},
	},
	"yesno": {
		Description: "yes or no",
		Segments:    []string{"Yes", "No"},
		Palette:     []string{"#2E8B57", "#B22222"},
	},
	"dice": {
		Description: "six-sided die",
		Segments:    []string{"1", "2", "3", "4", "5", "6"},
		Palette:     []string{"#1F3A93", "#F5F5F5"},
	},
	"lunch": {
		Description: "where to eat",
		Segments:    []string{"Pizza", "Ramen", "Tacos", "Salad", "Burgers", "Pho", "Curry", "Sushi"},
		Palette:     []string{"#E67E22", "#FDF2E9"},
	},
}

func GetPreset(name string) *Preset {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	return p
}

// ListPresets returns preset names in sorted order.
func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
