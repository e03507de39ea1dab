// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package palette

// Group names used by the default palette.
const (
	GroupSpecial = "special"
	GroupGrays   = "grays"
	GroupReds    = "reds"
	GroupOranges = "oranges"
	GroupYellows = "yellows"
	GroupGreens  = "greens"
	GroupTeals   = "teals"
	GroupBlues   = "blues"
	GroupPurples = "purples"
	GroupBrowns  = "browns"
)

// defaultEntries is the built-in table. Order is the index order.
var defaultEntries = [Size]Entry{
	{0, "Transparent", GroupSpecial, Transparent},

	{1, "Black", GroupGrays, "#000000"},
	{2, "Charcoal", GroupGrays, "#222034"},
	{3, "Dark Gray", GroupGrays, "#45444f"},
	{4, "Gray", GroupGrays, "#696a6a"},
	{5, "Silver", GroupGrays, "#9badb7"},
	{6, "Light Gray", GroupGrays, "#cbdbfc"},
	{7, "White", GroupGrays, "#ffffff"},

	{8, "Maroon", GroupReds, "#3f0f1a"},
	{9, "Crimson", GroupReds, "#7a1124"},
	{10, "Dark Red", GroupReds, "#ac3232"},
	{11, "Red", GroupReds, "#d9302b"},
	{12, "Scarlet", GroupReds, "#ff4040"},
	{13, "Salmon", GroupReds, "#ff7f7f"},
	{14, "Rose", GroupReds, "#ffb3b3"},

	{15, "Rust", GroupOranges, "#8a3a12"},
	{16, "Burnt Orange", GroupOranges, "#b5541a"},
	{17, "Dark Orange", GroupOranges, "#df7126"},
	{18, "Orange", GroupOranges, "#ff8c1a"},
	{19, "Tangerine", GroupOranges, "#ffa541"},
	{20, "Apricot", GroupOranges, "#ffc27a"},
	{21, "Peach", GroupOranges, "#ffdcb0"},

	{22, "Olive", GroupYellows, "#6b6a10"},
	{23, "Mustard", GroupYellows, "#a39020"},
	{24, "Gold", GroupYellows, "#d9a826"},
	{25, "Yellow", GroupYellows, "#fbf236"},
	{26, "Lemon", GroupYellows, "#fff46b"},
	{27, "Butter", GroupYellows, "#fff59e"},
	{28, "Cream", GroupYellows, "#fffad2"},

	{29, "Forest", GroupGreens, "#1e3d1a"},
	{30, "Dark Green", GroupGreens, "#37602c"},
	{31, "Green", GroupGreens, "#4b8a2a"},
	{32, "Grass", GroupGreens, "#6abe30"},
	{33, "Lime", GroupGreens, "#99e550"},
	{34, "Mint", GroupGreens, "#b8f08a"},
	{35, "Pale Green", GroupGreens, "#dcfcc4"},

	{36, "Deep Teal", GroupTeals, "#0f3b3a"},
	{37, "Dark Teal", GroupTeals, "#1b5e5b"},
	{38, "Teal", GroupTeals, "#2a8a85"},
	{39, "Turquoise", GroupTeals, "#37b8ae"},
	{40, "Aqua", GroupTeals, "#5fe0d2"},
	{41, "Seafoam", GroupTeals, "#97f0e5"},
	{42, "Ice", GroupTeals, "#cffaf4"},

	{43, "Navy", GroupBlues, "#121a4a"},
	{44, "Dark Blue", GroupBlues, "#222f7a"},
	{45, "Royal Blue", GroupBlues, "#3f3fa8"},
	{46, "Blue", GroupBlues, "#306082"},
	{47, "Sky Blue", GroupBlues, "#639bff"},
	{48, "Cornflower", GroupBlues, "#5fcde4"},
	{49, "Baby Blue", GroupBlues, "#b5dcff"},

	{50, "Indigo", GroupPurples, "#2b1550"},
	{51, "Plum", GroupPurples, "#45283c"},
	{52, "Purple", GroupPurples, "#76428a"},
	{53, "Violet", GroupPurples, "#9b59d0"},
	{54, "Magenta", GroupPurples, "#d77bba"},
	{55, "Orchid", GroupPurples, "#e8a5e0"},
	{56, "Lavender", GroupPurples, "#e6d0fa"},

	{57, "Dark Brown", GroupBrowns, "#2b1a10"},
	{58, "Chocolate", GroupBrowns, "#4a2e1c"},
	{59, "Brown", GroupBrowns, "#663931"},
	{60, "Sienna", GroupBrowns, "#8f563b"},
	{61, "Tan", GroupBrowns, "#b8865a"},
	{62, "Sand", GroupBrowns, "#d9a066"},
	{63, "Beige", GroupBrowns, "#eec39a"},
}
