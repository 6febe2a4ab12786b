package gocarousel

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// fontKey identifies a sized face by family, weight class and size.
type fontKey struct {
	family string
	weight weightClass
	size   float64
}

type weightClass int

const (
	classRegular weightClass = iota
	classMedium
	classBold
)

func classOf(weight int) weightClass {
	switch {
	case weight >= 600:
		return classBold
	case weight >= 500:
		return classMedium
	}
	return classRegular
}

// weightSuffixes are the family-name suffixes tried for each weight class
// before falling back to the bare family name.
var weightSuffixes = map[weightClass][]string{
	classBold:   {" bold", "-bold", "bd", " black", "-black", " heavy", " extrabold", " semibold"},
	classMedium: {" medium", "-medium", " semibold", "-semibold"},
}

// genericFamilies always resolve to the embedded fallback faces.
var genericFamilies = map[string]bool{
	"":           true,
	"sans-serif": true,
	"serif":      true,
	"system-ui":  true,
	"monospace":  true,
}

// FontCache resolves font families to gg text faces. It scans system and
// user font directories for .ttf/.otf files, registers each file under its
// file name and its family and full names, loads sources lazily and caches
// sized faces. Families that cannot be found use the embedded Go fonts.
type FontCache struct {
	mu      sync.RWMutex
	dirs    []string
	paths   map[string]string            // lowercase name -> file path
	sources map[string]*text.FontSource // file path or registered name -> source
	faces   map[fontKey]text.Face
	scanned bool

	fallback map[weightClass]*text.FontSource
}

// NewFontCache creates a FontCache that searches the given directories plus
// the OS default font directories.
func NewFontCache(extraDirs ...string) *FontCache {
	dirs := append(systemFontDirs(), extraDirs...)
	return &FontCache{
		dirs:    dirs,
		paths:   make(map[string]string),
		sources: make(map[string]*text.FontSource),
		faces:   make(map[fontKey]text.Face),
	}
}

// NewEmbeddedFontCache returns a cache that never touches the file system
// and always uses the embedded Go fonts.
func NewEmbeddedFontCache() *FontCache {
	fc := &FontCache{
		paths:   make(map[string]string),
		sources: make(map[string]*text.FontSource),
		faces:   make(map[fontKey]text.Face),
		scanned: true,
	}
	return fc
}

// Face returns a face for family at the given weight and pixel size. It
// never returns nil unless the embedded fonts fail to parse.
func (fc *FontCache) Face(family string, weight int, size float64) text.Face {
	fc.ensureScanned()

	key := fontKey{family: strings.ToLower(strings.TrimSpace(family)), weight: classOf(weight), size: size}

	fc.mu.RLock()
	if face, ok := fc.faces[key]; ok {
		fc.mu.RUnlock()
		return face
	}
	fc.mu.RUnlock()

	src := fc.findSource(key.family, key.weight)
	if src == nil {
		src = fc.fallbackSource(key.weight)
	}
	if src == nil {
		return nil
	}
	face := src.Face(size)

	fc.mu.Lock()
	fc.faces[key] = face
	fc.mu.Unlock()
	return face
}

// findSource looks up a family, trying weight-specific names first. The
// first CSS family of a list ("Inter, sans-serif") that resolves wins.
func (fc *FontCache) findSource(family string, class weightClass) *text.FontSource {
	for _, name := range strings.Split(family, ",") {
		name = strings.Trim(strings.TrimSpace(name), `"'`)
		if genericFamilies[name] {
			continue
		}
		for _, suffix := range weightSuffixes[class] {
			if src := fc.sourceFor(name + suffix); src != nil {
				return src
			}
		}
		if src := fc.sourceFor(name); src != nil {
			return src
		}
	}
	return nil
}

func (fc *FontCache) sourceFor(name string) *text.FontSource {
	fc.mu.RLock()
	src, ok := fc.sources[name]
	path, hasPath := fc.paths[name]
	if !ok && hasPath {
		src, ok = fc.sources[path]
	}
	fc.mu.RUnlock()
	if ok {
		return src
	}
	if !hasPath {
		return nil
	}

	loaded, err := text.NewFontSourceFromFile(path)
	if err != nil {
		logger().Debug("font load failed", "path", path, "err", err)
		return nil
	}
	fc.mu.Lock()
	if existing, ok := fc.sources[path]; ok {
		loaded = existing
	} else {
		fc.sources[path] = loaded
	}
	fc.mu.Unlock()
	return loaded
}

func (fc *FontCache) fallbackSource(class weightClass) *text.FontSource {
	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.fallback == nil {
		fc.fallback = make(map[weightClass]*text.FontSource, 3)
		for c, data := range map[weightClass][]byte{
			classRegular: goregular.TTF,
			classMedium:  gomedium.TTF,
			classBold:    gobold.TTF,
		} {
			src, err := text.NewFontSource(data)
			if err != nil {
				logger().Error("embedded font parse failed", "err", err)
				continue
			}
			fc.fallback[c] = src
		}
	}
	if src, ok := fc.fallback[class]; ok {
		return src
	}
	return fc.fallback[classRegular]
}

// LoadFont registers a TrueType/OpenType file under name.
func (fc *FontCache) LoadFont(name string, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() > maxFontFileSize {
		return fmt.Errorf("font file too large: %d bytes (max %d)", info.Size(), maxFontFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return fc.LoadFontData(name, data)
}

// LoadFontData registers a TrueType/OpenType font from raw bytes under name.
func (fc *FontCache) LoadFontData(name string, data []byte) error {
	src, err := text.NewFontSource(data)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", name, err)
	}
	fc.mu.Lock()
	fc.sources[strings.ToLower(name)] = src
	for k := range fc.faces {
		if k.family == strings.ToLower(name) {
			delete(fc.faces, k)
		}
	}
	fc.mu.Unlock()
	return nil
}

func (fc *FontCache) ensureScanned() {
	fc.mu.RLock()
	scanned := fc.scanned
	fc.mu.RUnlock()
	if scanned {
		return
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if fc.scanned {
		return
	}
	fc.scanned = true

	for _, dir := range fc.dirs {
		fc.scanDirDepth(dir, 0)
	}
	logger().Debug("font scan complete", "dirs", len(fc.dirs), "names", len(fc.paths))
}

// maxFontScanDepth limits recursive directory traversal when scanning for fonts.
const maxFontScanDepth = 3

// maxFontFileSize limits the size of individual font files loaded into memory.
const maxFontFileSize = 20 << 20 // 20 MB

func (fc *FontCache) scanDirDepth(dir string, depth int) {
	if depth > maxFontScanDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			fc.scanDirDepth(filepath.Join(dir, entry.Name()), depth+1)
			continue
		}
		lower := strings.ToLower(entry.Name())
		// Collections (.ttc/.otc) are not supported by text.FontSource.
		if !strings.HasSuffix(lower, ".ttf") && !strings.HasSuffix(lower, ".otf") {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Size() > maxFontFileSize {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		fc.registerFile(path, strings.TrimSuffix(lower, filepath.Ext(lower)))
	}
}

// registerFile maps the file's base name and its internal family and full
// names to path. Only the name table is read; glyph data loads on demand.
func (fc *FontCache) registerFile(path, baseName string) {
	if _, ok := fc.paths[baseName]; !ok {
		fc.paths[baseName] = path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	f, err := sfnt.Parse(data)
	if err != nil {
		return
	}
	var buf sfnt.Buffer
	family, _ := f.Name(&buf, sfnt.NameIDFamily)
	sub, _ := f.Name(&buf, sfnt.NameIDSubfamily)
	full, _ := f.Name(&buf, sfnt.NameIDFull)
	family, sub = strings.ToLower(family), strings.ToLower(sub)
	if family != "" {
		if sub == "" || sub == "regular" {
			fc.paths[family] = path
		} else if _, ok := fc.paths[family+" "+sub]; !ok {
			fc.paths[family+" "+sub] = path
		}
	}
	if full != "" {
		if _, ok := fc.paths[strings.ToLower(full)]; !ok {
			fc.paths[strings.ToLower(full)] = path
		}
	}
}

// systemFontDirs returns OS-specific font directories.
func systemFontDirs() []string {
	switch runtime.GOOS {
	case "windows":
		windir := os.Getenv("WINDIR")
		if windir == "" {
			windir = `C:\Windows`
		}
		dirs := []string{filepath.Join(windir, "Fonts")}
		if local := os.Getenv("LOCALAPPDATA"); local != "" {
			dirs = append(dirs, filepath.Join(local, "Microsoft", "Windows", "Fonts"))
		}
		return dirs
	case "darwin":
		dirs := []string{"/System/Library/Fonts", "/Library/Fonts"}
		if home, _ := os.UserHomeDir(); home != "" {
			dirs = append(dirs, filepath.Join(home, "Library", "Fonts"))
		}
		return dirs
	default:
		dirs := []string{"/usr/share/fonts", "/usr/local/share/fonts"}
		if home, _ := os.UserHomeDir(); home != "" {
			dirs = append(dirs, filepath.Join(home, ".local", "share", "fonts"), filepath.Join(home, ".fonts"))
		}
		return dirs
	}
}
