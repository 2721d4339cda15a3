package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"sync"
	"text/template"
	"unicode"
	"unicode/utf8"

	"github.com/Masterminds/sprig/v3"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex
}

// NewRenderer creates a renderer with sprig's text functions plus the
// handlergen helpers.
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderFS renders a template read from fsys (usually an embed.FS).
func (r *Renderer) RenderFS(fsys fs.FS, path string, data any) ([]byte, error) {
	tmpl, err := r.lookup("fs:"+path, func() (string, error) {
		b, err := fs.ReadFile(fsys, path)
		if err != nil {
			return "", fmt.Errorf("failed to read template from fs '%s': %w", path, err)
		}
		return string(b), nil
	}, path)
	if err != nil {
		return nil, err
	}
	return r.executeTemplate(tmpl, data)
}

// lookup returns the cached template for key, parsing source on a miss.
func (r *Renderer) lookup(key string, source func() (string, error), name string) (*template.Template, error) {
	r.mu.RLock()
	tmpl, ok := r.cache[key]
	r.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	text, err := source()
	if err != nil {
		return nil, err
	}

	tmpl, err = template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[key] = tmpl
	r.mu.Unlock()

	return tmpl, nil
}

func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	funcs := sprig.TxtFuncMap()
	// unlike sprig's title, capitalize changes the first rune only
	funcs["capitalize"] = Capitalize
	return funcs
}

// Capitalize uppercases the first rune of s and leaves the rest untouched.
// Examples: user → User, userProfile → UserProfile, uSER → USER,
// user_profile → User_profile.
//
// Invalid UTF-8 is kept byte for byte. sprig's lower (strings.ToLower)
// replaces it with U+FFFD instead, so for such input the lowered form, and
// with it the file name, no longer carries the original bytes.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError && size == 1 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
