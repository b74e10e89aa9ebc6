package java

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/option"
	"golang.org/x/mod/modfile"
)

// ProjectDetector locates the root of the source tree a Java-like file
// belongs to, independent of archive/container layout -- the frontend's
// own concern, outside the Program Graph itself.
type ProjectDetector struct {
	markers []string
	fs      afs.Service
}

// NewProjectDetector creates a detector recognising the common Java build
// descriptors, plus go.mod for polyglot repositories that embed a Java
// source tree alongside Go tooling.
func NewProjectDetector() *ProjectDetector {
	return &ProjectDetector{
		markers: []string{"pom.xml", "build.gradle", "build.gradle.kts", "go.mod", ".git"},
		fs:      afs.New(),
	}
}

// Project describes a detected source root.
type Project struct {
	RootPath string
	Name     string
	Kind     string // maven, gradle, go, git, unknown
	Origin   string // git remote "origin" URL, if RootPath is a git checkout
}

// Detect walks up from filePath looking for a recognised marker.
func (d *ProjectDetector) Detect(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, fmt.Errorf("frontend/java: resolving %s: %w", filePath, err)
	}
	startDir := absPath
	if fi, err := os.Stat(absPath); err == nil && !fi.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return &Project{
					RootPath: dir,
					Kind:     kindOf(marker),
					Name:     d.projectName(dir, marker),
				}, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return &Project{RootPath: startDir, Kind: "unknown", Name: filepath.Base(startDir)}, nil
}

func kindOf(marker string) string {
	switch marker {
	case "pom.xml":
		return "maven"
	case "build.gradle", "build.gradle.kts":
		return "gradle"
	case "go.mod":
		return "go"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}

func (d *ProjectDetector) projectName(root, marker string) string {
	switch marker {
	case "pom.xml":
		return d.mavenArtifactID(filepath.Join(root, marker))
	case "go.mod":
		return d.goModuleName(filepath.Join(root, marker))
	default:
		return filepath.Base(root)
	}
}

var artifactIDRegex = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)

func (d *ProjectDetector) mavenArtifactID(pomPath string) string {
	data, err := d.fs.DownloadWithURL(context.Background(), pomPath)
	if err != nil || len(data) == 0 {
		return filepath.Base(filepath.Dir(pomPath))
	}
	m := artifactIDRegex.FindSubmatch(data)
	if len(m) < 2 {
		return filepath.Base(filepath.Dir(pomPath))
	}
	return string(m[1])
}

func (d *ProjectDetector) goModuleName(goModPath string) string {
	data, err := d.fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(data) == 0 {
		return filepath.Base(filepath.Dir(goModPath))
	}
	if mod, err := modfile.Parse(goModPath, data, nil); err == nil && mod.Module != nil {
		return mod.Module.Mod.Path
	}
	return filepath.Base(filepath.Dir(goModPath))
}

// IngestProject detects the project root owning rootURL (a local
// directory), tags fe with it via SetProject, then walks every ".java"
// file found under rootURL into fe through IngestSource. rootURL is
// handed to afs.Service.List unchanged, so an archive-backed URL (e.g.
// "zip:///path/to/app.jar!") is walked through the same code path as a
// loose directory -- afs resolves the scheme, this function never
// special-cases one over the other.
func (d *ProjectDetector) IngestProject(ctx context.Context, fe *Frontend, rootURL string) (*Project, error) {
	project, err := d.Detect(rootURL)
	if err != nil {
		project = &Project{RootPath: rootURL, Kind: "unknown", Name: filepath.Base(rootURL)}
	}
	project.Origin = GitOrigin(project.RootPath)
	fe.SetProject(project)

	objects, err := d.fs.List(ctx, rootURL, option.NewRecursive(true))
	if err != nil {
		return project, fmt.Errorf("frontend/java: listing %s: %w", rootURL, err)
	}
	for _, obj := range objects {
		if obj.IsDir() || !strings.HasSuffix(obj.Name(), ".java") {
			continue
		}
		data, err := d.fs.DownloadWithURL(ctx, obj.URL())
		if err != nil {
			fe.cfg.Log("frontend/java: downloading %s: %v", obj.URL(), err)
			continue
		}
		if err := fe.IngestSource(data); err != nil {
			return project, err
		}
	}
	return project, nil
}

// GitOrigin returns the origin remote URL recorded in RootPath/.git/config,
// or "" if none is configured.
func GitOrigin(rootPath string) string {
	configPath := filepath.Join(rootPath, ".git", "config")
	f, err := os.Open(configPath)
	if err != nil {
		return ""
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	inOrigin := false
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.Contains(line, `[remote "origin"]`) {
			inOrigin = true
			continue
		}
		if inOrigin && strings.HasPrefix(line, "url = ") {
			return strings.TrimPrefix(line, "url = ")
		}
	}
	return ""
}
