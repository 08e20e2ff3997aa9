package scaffold

import (
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("scaffold").ParseFS(templateFS, "templates/*.tmpl"))

// Template names, one per kind of generated output.
const (
	tmplRootCMake      = "root.cmake.tmpl"
	tmplFindSFML       = "find_sfml.cmake.tmpl"
	tmplSubdirectory   = "subdirectory.cmake.tmpl"
	tmplRunBuild       = "run_build.sh.tmpl"
	tmplExecutable     = "executable.cmake.tmpl"
	tmplLibraryCMake   = "library.cmake.tmpl"
	tmplLibraryHeader  = "library.hpp.tmpl"
	tmplLibrarySource  = "library.cpp.tmpl"
	tmplMainPlain      = "main_plain.cpp.tmpl"
	tmplMainWithLib    = "main_library.cpp.tmpl"
	tmplMainSFMLWindow = "main_sfml.cpp.tmpl"
)

// templateData holds every value a template may substitute.
type templateData struct {
	Project      string
	CMakeMinimum string
	CXXStandard  string
	SFMLVersion  string
	ExeTarget    string
	Links        []string
	Library      string
	LibraryIdent string
}

func render(name string, data interface{}) (string, error) {
	var buf strings.Builder
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}

func renderRootCMake(d *templateData, sfml bool) (string, error) {
	out, err := render(tmplRootCMake, d)
	if err != nil {
		return "", err
	}
	if !sfml {
		return out, nil
	}
	find, err := render(tmplFindSFML, d)
	if err != nil {
		return "", err
	}
	return out + find, nil
}

func renderSubdirectory(dir string) (string, error) {
	return render(tmplSubdirectory, dir)
}

func renderRunBuild() (string, error) {
	return render(tmplRunBuild, nil)
}

func renderExecutableCMake(d *templateData) (string, error) {
	return render(tmplExecutable, d)
}

// renderMain picks the main.cpp body: the SFML window loop for the sfml
// flavor, otherwise the library-calling or plain hello world.
func renderMain(d *templateData, flavor Flavor) (string, error) {
	switch {
	case flavor == FlavorSFML:
		return render(tmplMainSFMLWindow, d)
	case d.Library != "":
		return render(tmplMainWithLib, d)
	default:
		return render(tmplMainPlain, d)
	}
}

func renderLibraryCMake(d *templateData) (string, error) {
	return render(tmplLibraryCMake, d)
}

func renderLibraryHeader(d *templateData) (string, error) {
	return render(tmplLibraryHeader, d)
}

func renderLibrarySource(d *templateData) (string, error) {
	return render(tmplLibrarySource, d)
}

// cppIdentifier turns a CMake target name into a valid C++ identifier by
// replacing anything outside [A-Za-z0-9_] with '_' and prefixing a leading
// digit.
func cppIdentifier(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	ident := b.String()
	if ident == "" {
		return "_"
	}
	if ident[0] >= '0' && ident[0] <= '9' {
		return "_" + ident
	}
	return ident
}
