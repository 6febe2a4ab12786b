package gocarousel

// PaletteColors is a palette's color set. Background may be a gradient.
type PaletteColors struct {
	Background string `json:"background" yaml:"background"`
	Text       string `json:"text" yaml:"text"`
	Accent     string `json:"accent" yaml:"accent"`
	Secondary  string `json:"secondary" yaml:"secondary"`
}

// PaletteDescriptor is a named, immutable color set that overrides a
// template's default colors.
type PaletteDescriptor struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Colors PaletteColors `json:"colors" yaml:"colors"`
}

func (p PaletteDescriptor) validate() []string {
	var errs []string
	if p.ID == "" {
		errs = append(errs, "palette id is empty")
	}
	if _, err := BackgroundPaint(p.Colors.Background, 1, 1); err != nil {
		errs = append(errs, err.Error())
	}
	for _, c := range []string{p.Colors.Text, p.Colors.Accent, p.Colors.Secondary} {
		if _, err := ParseColor(c); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

func pal(id, name, bg, text, accent, secondary string) PaletteDescriptor {
	return PaletteDescriptor{ID: id, Name: name, Colors: PaletteColors{bg, text, accent, secondary}}
}

// builtinPalettes is the static palette library; the first entry is the
// registry default.
var builtinPalettes = []PaletteDescriptor{
	pal("dark-purple", "Roxo Escuro", "#0a0a0a", "#ffffff", "#8b5cf6", "#a78bfa"),
	pal("dark-green", "Verde Escuro", "#0a0a0a", "#ffffff", "#10b981", "#34d399"),
	pal("dark-blue", "Azul Escuro", "#0f172a", "#ffffff", "#3b82f6", "#60a5fa"),
	pal("dark-red", "Vermelho Escuro", "#0a0a0a", "#ffffff", "#ef4444", "#f87171"),
	pal("dark-orange", "Laranja Escuro", "#0c0c0c", "#ffffff", "#f97316", "#fb923c"),
	pal("dark-pink", "Rosa Escuro", "#0a0a0a", "#ffffff", "#ec4899", "#f472b6"),
	pal("dark-cyan", "Ciano Escuro", "#0a0a0a", "#ffffff", "#06b6d4", "#22d3ee"),
	pal("dark-gold", "Dourado Escuro", "#0a0a0a", "#ffffff", "#d4af37", "#fbbf24"),
	pal("light-blue", "Azul Claro", "#ffffff", "#1e293b", "#2563eb", "#3b82f6"),
	pal("light-green", "Verde Claro", "#fafafa", "#166534", "#16a34a", "#22c55e"),
	pal("light-red", "Vermelho Claro", "#fafaf9", "#1c1917", "#dc2626", "#ef4444"),
	pal("neon-green", "Neon Verde", "#0a0a0a", "#ffffff", "#00ff88", "#39ff14"),
	pal("neon-pink", "Neon Rosa", "#0a0a0a", "#ffffff", "#ff00ff", "#ff69b4"),
	pal("neon-blue", "Neon Azul", "#0a0a0a", "#ffffff", "#00f5ff", "#00bfff"),
	pal("gradient-purple", "Gradiente Roxo", "linear-gradient(135deg, #667eea 0%, #764ba2 100%)", "#ffffff", "#fbbf24", "#f59e0b"),
	pal("gradient-sunset", "Gradiente Pôr do Sol", "linear-gradient(135deg, #f093fb 0%, #f5576c 100%)", "#ffffff", "#fbbf24", "#ffffff"),
}
