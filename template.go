package gocarousel

// Category groups templates by layout family.
type Category string

const (
	CategorySplit     Category = "split"
	CategoryCard      Category = "card"
	CategoryFullbleed Category = "fullbleed"
	CategoryMinimal   Category = "minimal"
	CategoryBold      Category = "bold"
	CategoryEditorial Category = "editorial"
)

// ImagePosition names where a template places the primary image.
type ImagePosition string

const (
	ImageTop    ImagePosition = "top"
	ImageBottom ImagePosition = "bottom"
	ImageLeft   ImagePosition = "left"
	ImageRight  ImagePosition = "right"
	ImageCenter ImagePosition = "center"
	ImageFull   ImagePosition = "full"
	ImageNone   ImagePosition = "none"
)

// TextPosition names the text anchor of a template.
type TextPosition string

const (
	TextTop           TextPosition = "top"
	TextBottom        TextPosition = "bottom"
	TextLeft          TextPosition = "left"
	TextRight         TextPosition = "right"
	TextCenter        TextPosition = "center"
	TextOverlayTop    TextPosition = "overlay-top"
	TextOverlayBottom TextPosition = "overlay-bottom"
	TextOverlayCenter TextPosition = "overlay-center"
)

// LogoPosition names the corner or edge center where the logo goes.
type LogoPosition string

const (
	LogoTopLeft      LogoPosition = "top-left"
	LogoTopRight     LogoPosition = "top-right"
	LogoTopCenter    LogoPosition = "top-center"
	LogoBottomLeft   LogoPosition = "bottom-left"
	LogoBottomRight  LogoPosition = "bottom-right"
	LogoBottomCenter LogoPosition = "bottom-center"
	LogoNone         LogoPosition = "none"
)

// SizeClass is a symbolic size.
type SizeClass string

const (
	SizeSmall  SizeClass = "small"
	SizeMedium SizeClass = "medium"
	SizeLarge  SizeClass = "large"
	SizeXLarge SizeClass = "xlarge"
)

// DecorationType names a structural decoration.
type DecorationType string

const (
	DecorationNone            DecorationType = "none"
	DecorationLine            DecorationType = "line"
	DecorationBorder          DecorationType = "border"
	DecorationGradientOverlay DecorationType = "gradient-overlay"
	DecorationShape           DecorationType = "shape"
	DecorationDots            DecorationType = "dots"
	DecorationGrid            DecorationType = "grid"
)

// ImageSlot describes the template's primary image area.
type ImageSlot struct {
	Position     ImagePosition `json:"position" yaml:"position"`
	Width        Percent       `json:"width" yaml:"width"`
	Height       Percent       `json:"height" yaml:"height"`
	CornerRadius Percent       `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
}

// TextSlot describes the template's text area.
type TextSlot struct {
	Position  TextPosition `json:"position" yaml:"position"`
	Alignment Alignment    `json:"alignment" yaml:"alignment"`
	MaxWidth  Percent      `json:"maxWidth" yaml:"maxWidth"`
}

// LogoSlot describes the template's logo placement.
type LogoSlot struct {
	Position LogoPosition `json:"position" yaml:"position"`
	Size     SizeClass    `json:"size" yaml:"size"`
}

// Decoration is a decoration type plus its variant (line edge, shape kind).
type Decoration struct {
	Type     DecorationType `json:"type" yaml:"type"`
	Position string         `json:"position,omitempty" yaml:"position,omitempty"`
}

// TemplateStyle holds a template's default colors and type scale.
type TemplateStyle struct {
	BackgroundColor string     `json:"backgroundColor" yaml:"backgroundColor"`
	TextColor       string     `json:"textColor" yaml:"textColor"`
	AccentColor     string     `json:"accentColor" yaml:"accentColor"`
	FontWeight      FontWeight `json:"fontWeight" yaml:"fontWeight"`
	FontSize        SizeClass  `json:"fontSize" yaml:"fontSize"`
}

// TemplateDescriptor is an immutable layout archetype.
type TemplateDescriptor struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Category     Category      `json:"category" yaml:"category"`
	Description  string        `json:"description" yaml:"description"`
	Image        ImageSlot     `json:"image" yaml:"image"`
	Text         TextSlot      `json:"text" yaml:"text"`
	Logo         LogoSlot      `json:"logo" yaml:"logo"`
	Decoration   Decoration    `json:"decorations" yaml:"decorations"`
	DefaultStyle TemplateStyle `json:"defaultStyle" yaml:"defaultStyle"`
}

// HasOverlay reports whether the template darkens the image under the text.
func (t TemplateDescriptor) HasOverlay() bool {
	return t.Category == CategoryFullbleed || t.Decoration.Type == DecorationGradientOverlay
}

// ImageRect returns the image destination for a w x h surface.
func (s ImageSlot) ImageRect(w, h float64) Rect {
	fw, fh := s.Width.Fraction(), s.Height.Fraction()
	switch s.Position {
	case ImageTop:
		return Rect{W: w, H: h * fh}
	case ImageBottom:
		return Rect{Y: h * (1 - fh), W: w, H: h * fh}
	case ImageLeft:
		return Rect{W: w * fw, H: h}
	case ImageRight:
		return Rect{X: w * (1 - fw), W: w * fw, H: h}
	case ImageCenter:
		return Rect{X: w * (1 - fw) / 2, Y: h * (1 - fh) / 2, W: w * fw, H: h * fh}
	case ImageNone:
		return Rect{}
	}
	return Rect{W: w, H: h}
}

func (t TemplateDescriptor) validate() []string {
	var errs []string
	if t.ID == "" {
		errs = append(errs, "template id is empty")
	}
	switch t.Category {
	case CategorySplit, CategoryCard, CategoryFullbleed, CategoryMinimal, CategoryBold, CategoryEditorial:
	default:
		errs = append(errs, "unknown category "+string(t.Category))
	}
	switch t.Image.Position {
	case ImageTop, ImageBottom, ImageLeft, ImageRight, ImageCenter, ImageFull, ImageNone:
	default:
		errs = append(errs, "unknown image position "+string(t.Image.Position))
	}
	if t.Image.Position != ImageNone && t.Image.Position != ImageFull &&
		(t.Image.Width <= 0 || t.Image.Height <= 0) {
		errs = append(errs, "image slot needs positive width and height")
	}
	switch t.Text.Position {
	case TextTop, TextBottom, TextLeft, TextRight, TextCenter,
		TextOverlayTop, TextOverlayBottom, TextOverlayCenter:
	default:
		errs = append(errs, "unknown text position "+string(t.Text.Position))
	}
	if !t.Text.Alignment.valid() {
		errs = append(errs, "unknown text alignment "+string(t.Text.Alignment))
	}
	if t.Text.MaxWidth <= 0 || t.Text.MaxWidth > 100 {
		errs = append(errs, "text maxWidth must be within (0, 100]")
	}
	switch t.Logo.Position {
	case LogoTopLeft, LogoTopRight, LogoTopCenter, LogoBottomLeft, LogoBottomRight, LogoBottomCenter, LogoNone:
	default:
		errs = append(errs, "unknown logo position "+string(t.Logo.Position))
	}
	switch t.Decoration.Type {
	case "", DecorationNone, DecorationLine, DecorationBorder, DecorationGradientOverlay,
		DecorationShape, DecorationDots, DecorationGrid:
	default:
		errs = append(errs, "unknown decoration "+string(t.Decoration.Type))
	}
	for _, c := range []string{t.DefaultStyle.TextColor, t.DefaultStyle.AccentColor} {
		if _, err := ParseColor(c); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if !IsGradient(t.DefaultStyle.BackgroundColor) {
		if _, err := ParseColor(t.DefaultStyle.BackgroundColor); err != nil {
			errs = append(errs, err.Error())
		}
	} else if _, err := ParseGradient(t.DefaultStyle.BackgroundColor); err != nil {
		errs = append(errs, err.Error())
	}
	return errs
}

func tpl(id, name string, cat Category, desc string, img ImageSlot, txt TextSlot, logo LogoSlot, deco Decoration, st TemplateStyle) TemplateDescriptor {
	return TemplateDescriptor{
		ID: id, Name: name, Category: cat, Description: desc,
		Image: img, Text: txt, Logo: logo, Decoration: deco, DefaultStyle: st,
	}
}

var noImage = ImageSlot{Position: ImageNone}

// builtinTemplates is the static template library; the first entry is the
// registry default.
var builtinTemplates = []TemplateDescriptor{
	tpl("split-top-image", "Imagem Topo", CategorySplit, "Imagem ocupa metade superior, texto na metade inferior",
		ImageSlot{Position: ImageTop, Width: 100, Height: 50},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 90},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationNone},
		TemplateStyle{"#0a0a0a", "#ffffff", "#8b5cf6", WeightBold, SizeLarge}),
	tpl("split-bottom-image", "Imagem Base", CategorySplit, "Texto na metade superior, imagem na metade inferior",
		ImageSlot{Position: ImageBottom, Width: 100, Height: 50},
		TextSlot{Position: TextTop, Alignment: AlignCenter, MaxWidth: 90},
		LogoSlot{Position: LogoTopLeft, Size: SizeSmall},
		Decoration{Type: DecorationNone},
		TemplateStyle{"#0a0a0a", "#ffffff", "#10b981", WeightBold, SizeLarge}),
	tpl("split-60-40", "Split 60/40", CategorySplit, "Imagem 60% topo, texto 40% base com destaque",
		ImageSlot{Position: ImageTop, Width: 100, Height: 60},
		TextSlot{Position: TextBottom, Alignment: AlignLeft, MaxWidth: 85},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationLine, Position: "left"},
		TemplateStyle{"#1a1a2e", "#ffffff", "#f59e0b", WeightBold, SizeLarge}),
	tpl("split-30-70", "Texto Destaque", CategorySplit, "Pequena imagem topo, grande área de texto",
		ImageSlot{Position: ImageTop, Width: 100, Height: 30},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 90},
		LogoSlot{Position: LogoBottomCenter, Size: SizeMedium},
		Decoration{Type: DecorationGradientOverlay},
		TemplateStyle{"#0f172a", "#ffffff", "#3b82f6", WeightBlack, SizeXLarge}),
	tpl("split-left-image", "Imagem Esquerda", CategorySplit, "Imagem à esquerda, texto à direita",
		ImageSlot{Position: ImageLeft, Width: 50, Height: 100},
		TextSlot{Position: TextRight, Alignment: AlignLeft, MaxWidth: 90},
		LogoSlot{Position: LogoTopRight, Size: SizeSmall},
		Decoration{Type: DecorationNone},
		TemplateStyle{"#18181b", "#ffffff", "#ec4899", WeightBold, SizeLarge}),
	tpl("split-right-image", "Imagem Direita", CategorySplit, "Texto à esquerda, imagem à direita",
		ImageSlot{Position: ImageRight, Width: 50, Height: 100},
		TextSlot{Position: TextLeft, Alignment: AlignLeft, MaxWidth: 90},
		LogoSlot{Position: LogoTopLeft, Size: SizeSmall},
		Decoration{Type: DecorationLine, Position: "bottom"},
		TemplateStyle{"#1e1e1e", "#ffffff", "#22c55e", WeightBold, SizeLarge}),
	tpl("split-diagonal", "Diagonal", CategorySplit, "Divisão diagonal entre imagem e texto",
		ImageSlot{Position: ImageLeft, Width: 55, Height: 100},
		TextSlot{Position: TextRight, Alignment: AlignLeft, MaxWidth: 85},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationShape, Position: "diagonal"},
		TemplateStyle{"#0c0c0c", "#ffffff", "#f97316", WeightBold, SizeLarge}),

	tpl("card-centered", "Card Central", CategoryCard, "Card centralizado com borda e sombra",
		ImageSlot{Position: ImageCenter, Width: 85, Height: 50},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 85},
		LogoSlot{Position: LogoTopCenter, Size: SizeMedium},
		Decoration{Type: DecorationBorder},
		TemplateStyle{"#0a0a0a", "#ffffff", "#a855f7", WeightMedium, SizeMedium}),
	tpl("card-rounded", "Card Arredondado", CategoryCard, "Card com cantos muito arredondados",
		ImageSlot{Position: ImageTop, Width: 90, Height: 55},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 85},
		LogoSlot{Position: LogoBottomCenter, Size: SizeSmall},
		Decoration{Type: DecorationBorder},
		TemplateStyle{"#1a1a1a", "#ffffff", "#06b6d4", WeightBold, SizeLarge}),
	tpl("card-polaroid", "Polaroid", CategoryCard, "Estilo polaroid com margem branca",
		ImageSlot{Position: ImageTop, Width: 85, Height: 60},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 80},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationBorder},
		TemplateStyle{"#fafafa", "#1a1a1a", "#ef4444", WeightMedium, SizeMedium}),
	tpl("card-neon", "Card Neon", CategoryCard, "Card com borda neon brilhante",
		ImageSlot{Position: ImageCenter, Width: 80, Height: 50},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 85},
		LogoSlot{Position: LogoTopLeft, Size: SizeSmall},
		Decoration{Type: DecorationBorder},
		TemplateStyle{"#0a0a0a", "#ffffff", "#00ff88", WeightBold, SizeLarge}),

	tpl("fullbleed-overlay-bottom", "Texto Sobreposto Base", CategoryFullbleed, "Imagem full, texto sobreposto na base com gradiente",
		ImageSlot{Position: ImageFull, Width: 100, Height: 100},
		TextSlot{Position: TextOverlayBottom, Alignment: AlignLeft, MaxWidth: 90},
		LogoSlot{Position: LogoTopRight, Size: SizeSmall},
		Decoration{Type: DecorationGradientOverlay},
		TemplateStyle{"#000000", "#ffffff", "#fbbf24", WeightBlack, SizeXLarge}),
	tpl("fullbleed-overlay-center", "Texto Central", CategoryFullbleed, "Imagem full, texto centralizado com overlay escuro",
		ImageSlot{Position: ImageFull, Width: 100, Height: 100},
		TextSlot{Position: TextOverlayCenter, Alignment: AlignCenter, MaxWidth: 85},
		LogoSlot{Position: LogoBottomCenter, Size: SizeMedium},
		Decoration{Type: DecorationGradientOverlay},
		TemplateStyle{"#000000", "#ffffff", "#f43f5e", WeightBlack, SizeXLarge}),
	tpl("fullbleed-overlay-top", "Texto Sobreposto Topo", CategoryFullbleed, "Imagem full, texto sobreposto no topo",
		ImageSlot{Position: ImageFull, Width: 100, Height: 100},
		TextSlot{Position: TextOverlayTop, Alignment: AlignLeft, MaxWidth: 90},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationGradientOverlay},
		TemplateStyle{"#000000", "#ffffff", "#14b8a6", WeightBold, SizeLarge}),

	tpl("minimal-text-only", "Só Texto", CategoryMinimal, "Apenas texto centralizado, sem imagem",
		noImage,
		TextSlot{Position: TextCenter, Alignment: AlignCenter, MaxWidth: 80},
		LogoSlot{Position: LogoBottomCenter, Size: SizeSmall},
		Decoration{Type: DecorationNone},
		TemplateStyle{"#0a0a0a", "#ffffff", "#8b5cf6", WeightBlack, SizeXLarge}),
	tpl("minimal-quote", "Citação", CategoryMinimal, "Texto estilo citação com aspas grandes",
		noImage,
		TextSlot{Position: TextCenter, Alignment: AlignCenter, MaxWidth: 75},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationShape, Position: "quotes"},
		TemplateStyle{"#18181b", "#ffffff", "#d946ef", WeightMedium, SizeLarge}),
	tpl("minimal-left-align", "Alinhado Esquerda", CategoryMinimal, "Texto alinhado à esquerda com linha de destaque",
		noImage,
		TextSlot{Position: TextCenter, Alignment: AlignLeft, MaxWidth: 85},
		LogoSlot{Position: LogoTopLeft, Size: SizeMedium},
		Decoration{Type: DecorationLine, Position: "left"},
		TemplateStyle{"#0c0c0c", "#ffffff", "#22c55e", WeightBold, SizeLarge}),
	tpl("minimal-gradient-bg", "Gradiente", CategoryMinimal, "Texto sobre fundo gradiente",
		noImage,
		TextSlot{Position: TextCenter, Alignment: AlignCenter, MaxWidth: 80},
		LogoSlot{Position: LogoBottomCenter, Size: SizeMedium},
		Decoration{Type: DecorationGradientOverlay},
		TemplateStyle{"linear-gradient(135deg, #667eea 0%, #764ba2 100%)", "#ffffff", "#fbbf24", WeightBlack, SizeXLarge}),

	tpl("bold-big-number", "Número Grande", CategoryBold, "Destaque para números/estatísticas",
		noImage,
		TextSlot{Position: TextCenter, Alignment: AlignCenter, MaxWidth: 90},
		LogoSlot{Position: LogoBottomRight, Size: SizeSmall},
		Decoration{Type: DecorationShape, Position: "circle"},
		TemplateStyle{"#0a0a0a", "#ffffff", "#ef4444", WeightBlack, SizeXLarge}),
	tpl("bold-breaking", "Breaking News", CategoryBold, "Estilo urgente/notícia",
		ImageSlot{Position: ImageBottom, Width: 100, Height: 40},
		TextSlot{Position: TextTop, Alignment: AlignLeft, MaxWidth: 95},
		LogoSlot{Position: LogoTopRight, Size: SizeSmall},
		Decoration{Type: DecorationLine, Position: "top"},
		TemplateStyle{"#1a0a0a", "#ffffff", "#dc2626", WeightBlack, SizeXLarge}),
	tpl("bold-checklist", "Checklist", CategoryBold, "Lista com checkmarks",
		noImage,
		TextSlot{Position: TextCenter, Alignment: AlignLeft, MaxWidth: 85},
		LogoSlot{Position: LogoTopLeft, Size: SizeSmall},
		Decoration{Type: DecorationDots},
		TemplateStyle{"#0f172a", "#ffffff", "#10b981", WeightMedium, SizeMedium}),

	tpl("editorial-magazine", "Magazine", CategoryEditorial, "Estilo revista com tipografia elegante",
		ImageSlot{Position: ImageTop, Width: 100, Height: 55},
		TextSlot{Position: TextBottom, Alignment: AlignLeft, MaxWidth: 90},
		LogoSlot{Position: LogoTopLeft, Size: SizeSmall},
		Decoration{Type: DecorationLine, Position: "bottom"},
		TemplateStyle{"#fafaf9", "#1c1917", "#b91c1c", WeightMedium, SizeLarge}),
	tpl("editorial-luxury", "Luxo", CategoryEditorial, "Estilo luxuoso com dourado",
		ImageSlot{Position: ImageCenter, Width: 75, Height: 55},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 80},
		LogoSlot{Position: LogoTopCenter, Size: SizeMedium},
		Decoration{Type: DecorationBorder},
		TemplateStyle{"#0a0a0a", "#fafafa", "#d4af37", WeightMedium, SizeLarge}),
	tpl("editorial-clean", "Clean", CategoryEditorial, "Design limpo e profissional",
		ImageSlot{Position: ImageTop, Width: 100, Height: 45},
		TextSlot{Position: TextBottom, Alignment: AlignCenter, MaxWidth: 85},
		LogoSlot{Position: LogoBottomCenter, Size: SizeSmall},
		Decoration{Type: DecorationNone},
		TemplateStyle{"#ffffff", "#171717", "#2563eb", WeightBold, SizeLarge}),
}
