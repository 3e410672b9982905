package catalog

type Icon string

const (
	IconFileCode   Icon = "FileCode"
	IconImage      Icon = "Image"
	IconMaximize   Icon = "Maximize"
	IconMinimize   Icon = "Minimize"
	IconPenTool    Icon = "PenTool"
	IconFileText   Icon = "FileText"
	IconMail       Icon = "Mail"
	IconUserCheck  Icon = "UserCheck"
	IconCalculator Icon = "Calculator"
	IconClock      Icon = "Clock"
	IconWrench     Icon = "Wrench"
	IconBox        Icon = "Box"
)

// IconFallback is used for any name outside the known set.
const IconFallback = IconBox

var iconGlyphs = map[Icon]string{
	IconFileCode:   "📄",
	IconImage:      "🖼",
	IconMaximize:   "⤢",
	IconMinimize:   "⤡",
	IconPenTool:    "✒",
	IconFileText:   "📝",
	IconMail:       "✉",
	IconUserCheck:  "👤",
	IconCalculator: "🧮",
	IconClock:      "⏱",
	IconWrench:     "🔧",
	IconBox:        "📦",
}

func ResolveIcon(name string) Icon {
	if _, ok := iconGlyphs[Icon(name)]; ok {
		return Icon(name)
	}
	return IconFallback
}

func (i Icon) Glyph() string {
	if g, ok := iconGlyphs[i]; ok {
		return g
	}
	return iconGlyphs[IconFallback]
}
