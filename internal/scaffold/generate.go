package scaffold

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/cmake-init/cmake-init/internal/schema"
)

const (
	rootCMakeLists = "CMakeLists.txt"
	buildScript    = "run_build"
	mainSource     = "main.cpp"
	sfmlGraphics   = "sfml-graphics"
)

// ErrNameCollision is returned when two generated targets or folders
// would share a name.
var ErrNameCollision = errors.New("name collision")

// resolved is a Config with every default applied. Its json tags match
// the embedded scaffold schema.
type resolved struct {
	Destination      string `json:"destination"`
	Project          string `json:"project"`
	ExecutableDir    string `json:"executable_dir"`
	ExecutableTarget string `json:"executable_target"`
	Library          string `json:"library,omitempty"`
	Flavor           Flavor `json:"flavor"`
	CMakeMinimum     string `json:"cmake_minimum"`
	CXXStandard      string `json:"cxx_standard"`
	SFMLVersion      string `json:"sfml_version,omitempty"`
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// resolve applies defaults: the project is named after the destination's
// final path segment, the executable lives in "src" unless named, and the
// executable target takes the executable name or else the project name.
func resolve(cfg Config) (*resolved, error) {
	flavor, err := ParseFlavor(string(cfg.Flavor))
	if err != nil {
		return nil, err
	}

	r := &resolved{
		Destination:  cfg.Destination,
		Project:      cfg.ProjectName,
		Library:      cfg.LibraryName,
		Flavor:       flavor,
		CMakeMinimum: orDefault(cfg.CMakeMinimum, DefaultCMakeMinimum),
		CXXStandard:  orDefault(cfg.CXXStandard, DefaultCXXStandard),
	}
	if flavor == FlavorSFML {
		r.SFMLVersion = orDefault(cfg.SFMLVersion, DefaultSFMLVersion)
	}
	if r.Project == "" && cfg.Destination != "" {
		r.Project = filepath.Base(filepath.Clean(cfg.Destination))
	}
	r.ExecutableDir = orDefault(cfg.ExecutableName, DefaultExecutableDir)
	r.ExecutableTarget = orDefault(cfg.ExecutableName, r.Project)

	result, err := schema.Validate(schema.Scaffold, r)
	if err != nil {
		return nil, fmt.Errorf("validating project config: %w", err)
	}
	if err := result.Err("project config"); err != nil {
		return nil, err
	}

	if r.Library != "" {
		if r.Library == r.ExecutableDir {
			return nil, fmt.Errorf("%w: library %q and executable folder share a directory", ErrNameCollision, r.Library)
		}
		if r.Library == r.ExecutableTarget {
			return nil, fmt.Errorf("%w: library %q and executable target share a CMake target name; pass --exe", ErrNameCollision, r.Library)
		}
	}

	if err := checkToolchain(r); err != nil {
		return nil, err
	}
	return r, nil
}

// Generate builds the plan for cfg. It performs no I/O and returns the same
// plan for the same config.
func Generate(cfg Config) (*Plan, error) {
	r, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	data := &templateData{
		Project:      r.Project,
		CMakeMinimum: r.CMakeMinimum,
		CXXStandard:  r.CXXStandard,
		SFMLVersion:  r.SFMLVersion,
		ExeTarget:    r.ExecutableTarget,
	}
	if r.Library != "" {
		data.Library = r.Library
		data.LibraryIdent = cppIdentifier(r.Library)
		data.Links = append(data.Links, r.Library)
	}
	if r.Flavor == FlavorSFML {
		data.Links = append(data.Links, sfmlGraphics)
	}

	b := &planBuilder{plan: &Plan{Root: r.Destination, Project: r.Project}}

	rootCMake, err := renderRootCMake(data, r.Flavor == FlavorSFML)
	if err != nil {
		return nil, err
	}
	b.write(rootCMakeLists, rootCMake, false)

	script, err := renderRunBuild()
	if err != nil {
		return nil, err
	}
	b.write(buildScript, script, true)

	if err := b.executable(r.ExecutableDir, data, r.Flavor); err != nil {
		return nil, err
	}
	if r.Library != "" {
		if err := b.library(r.Library, data); err != nil {
			return nil, err
		}
	}

	if err := b.plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan: %w", err)
	}
	return b.plan, nil
}

type planBuilder struct {
	plan *Plan
}

func (b *planBuilder) dir(p string) {
	b.plan.Dirs = append(b.plan.Dirs, p)
}

func (b *planBuilder) write(p, content string, executable bool) {
	b.plan.Files = append(b.plan.Files, FileEntry{Path: p, Content: content, Executable: executable})
}

func (b *planBuilder) appendTo(p, content string) {
	b.plan.Files = append(b.plan.Files, FileEntry{Path: p, Content: content, Append: true})
}

// subdirectory registers dir with the root CMakeLists.txt.
func (b *planBuilder) subdirectory(dir string) error {
	line, err := renderSubdirectory(dir)
	if err != nil {
		return err
	}
	b.appendTo(rootCMakeLists, line)
	return nil
}

func (b *planBuilder) executable(dir string, data *templateData, flavor Flavor) error {
	b.dir(dir)
	if err := b.subdirectory(dir); err != nil {
		return err
	}

	cmake, err := renderExecutableCMake(data)
	if err != nil {
		return err
	}
	b.write(path.Join(dir, rootCMakeLists), cmake, false)

	mainCpp, err := renderMain(data, flavor)
	if err != nil {
		return err
	}
	b.write(path.Join(dir, mainSource), mainCpp, false)
	return nil
}

func (b *planBuilder) library(lib string, data *templateData) error {
	include := path.Join(lib, "include")
	src := path.Join(lib, "src")
	b.dir(lib)
	b.dir(include)
	b.dir(src)

	if err := b.subdirectory(lib); err != nil {
		return err
	}

	cmake, err := renderLibraryCMake(data)
	if err != nil {
		return err
	}
	b.write(path.Join(lib, rootCMakeLists), cmake, false)

	header, err := renderLibraryHeader(data)
	if err != nil {
		return err
	}
	b.write(path.Join(include, lib+".hpp"), header, false)

	source, err := renderLibrarySource(data)
	if err != nil {
		return err
	}
	b.write(path.Join(src, lib+".cpp"), source, false)
	return nil
}
