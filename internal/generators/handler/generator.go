// Package handler renders the gin handler boilerplate for one entity.
//
// Rendering never touches the file system: Render maps an entity name to a
// file name and its content, and Generate wraps that result in a
// generator.Operation for the caller to execute.
package handler

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/nhattientran/handlergen/internal/generator"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const templatePath = "templates/handler.go.tmpl"

// templateData is what the handler template sees. The template derives
// both name forms itself with capitalize and lower.
type templateData struct {
	Name string
}

// Names holds the two forms of an entity name, matching what the template
// derives from the raw name.
type Names struct {
	Cased   string // first rune uppercased, used in identifiers
	Lowered string // fully lowercased, used in the file name and messages
}

// NamesFor derives both forms from entityName. Nothing else is normalised:
// "user_profile" yields Cased "User_profile".
//
// Lowered uses strings.ToLower, the function behind the template's lower,
// so invalid UTF-8 in entityName turns into U+FFFD in the file name while
// Cased keeps the original bytes.
func NamesFor(entityName string) Names {
	return Names{
		Cased:   generator.Capitalize(entityName),
		Lowered: strings.ToLower(entityName),
	}
}

// Filename returns the output file name for names.
func (n Names) Filename() string {
	return n.Lowered + "_handler.go"
}

// Result is a rendered handler file.
type Result struct {
	Filename string
	Content  []byte
}

// Generator generates handler files
type Generator struct {
	outputDir string
	renderer  *generator.Renderer
}

// New creates a handler generator writing into outputDir.
// An empty outputDir means the current working directory.
func New(outputDir string) *Generator {
	if outputDir == "" {
		outputDir = "."
	}
	return &Generator{
		outputDir: outputDir,
		renderer:  generator.NewRenderer(),
	}
}

// Render fills the handler template for entityName. Any string is
// accepted, including "".
func (g *Generator) Render(entityName string) (Result, error) {
	content, err := g.renderer.RenderFS(templatesFS, templatePath, templateData{Name: entityName})
	if err != nil {
		return Result{}, fmt.Errorf("rendering handler for %q: %w", entityName, err)
	}

	return Result{
		Filename: NamesFor(entityName).Filename(),
		Content:  content,
	}, nil
}

// Path returns where the file for result is written.
func (g *Generator) Path(result Result) string {
	return filepath.Join(g.outputDir, result.Filename)
}

// Operations returns what writing result takes: creating the output
// directory when it is not the working directory, then the write itself.
// The file is replaced when it exists and the operations run with force.
// Only the output directory is created; a name that points into a
// missing subdirectory makes the write fail.
func (g *Generator) Operations(result Result) []generator.Operation {
	var ops []generator.Operation
	if filepath.Clean(g.outputDir) != "." {
		ops = append(ops, &generator.MkdirOp{Path: g.outputDir})
	}
	return append(ops, &generator.WriteFileOp{
		Path:    g.Path(result),
		Content: result.Content,
		Mode:    0644,
	})
}
