package java

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/vmgraph/config"
	"github.com/viant/vmgraph/graph"
)

// TestProjectDetector_Detect verifies a pom.xml marker is recognised and
// its artifactId is recovered as the project name.
func TestProjectDetector_Detect(t *testing.T) {
	root := t.TempDir()
	pom := `<project><artifactId>widget-service</artifactId></project>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "pom.xml"), []byte(pom), 0o644))

	srcDir := filepath.Join(root, "src", "main", "java", "com", "acme")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	classFile := filepath.Join(srcDir, "Widget.java")
	require.NoError(t, os.WriteFile(classFile, []byte("package com.acme; class Widget {}"), 0o644))

	d := NewProjectDetector()
	project, err := d.Detect(classFile)
	require.NoError(t, err)
	assert.Equal(t, root, project.RootPath)
	assert.Equal(t, "maven", project.Kind)
	assert.Equal(t, "widget-service", project.Name)
}

// TestProjectDetector_DetectUnknownFallsBackToDirName verifies a tree with
// no recognised marker reports "unknown" and the directory's own name.
func TestProjectDetector_DetectUnknownFallsBackToDirName(t *testing.T) {
	root := t.TempDir()
	d := NewProjectDetector()
	project, err := d.Detect(root)
	require.NoError(t, err)
	assert.Equal(t, "unknown", project.Kind)
	assert.Equal(t, filepath.Base(root), project.Name)
}

// TestIngestProject_TagsIngestedClassesWithModuleName verifies
// IngestProject walks every .java file under a detected project root and
// tags each ingested class with a Module annotation naming the project.
func TestIngestProject_TagsIngestedClassesWithModuleName(t *testing.T) {
	root := t.TempDir()
	pom := `<project><artifactId>widget-service</artifactId></project>`
	require.NoError(t, os.WriteFile(filepath.Join(root, "pom.xml"), []byte(pom), 0o644))

	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	gitConfig := "[remote \"origin\"]\n\turl = git@example.com:acme/widget-service.git\n"
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "config"), []byte(gitConfig), 0o644))

	srcDir := filepath.Join(root, "src")
	require.NoError(t, os.MkdirAll(srcDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(srcDir, "Widget.java"),
		[]byte("package com.acme; class Widget { void run() { getOption(1); } }"), 0o644))

	store := graph.NewStore()
	fe := New(store, config.Default())
	d := NewProjectDetector()

	project, err := d.IngestProject(context.Background(), fe, root)
	require.NoError(t, err)
	assert.Equal(t, "widget-service", project.Name)
	assert.Equal(t, "git@example.com:acme/widget-service.git", project.Origin)

	anns := store.ClassAnnotations("com.acme.Widget")
	require.NotEmpty(t, anns)
	found := false
	for _, a := range anns {
		if a.ClassName == "Module" {
			found = true
			assert.Equal(t, "widget-service", a.Values["name"])
			assert.Equal(t, "git@example.com:acme/widget-service.git", a.Values["origin"])
		}
	}
	assert.True(t, found, "expected a Module annotation tagging the ingested class")

	sites := callSitesNamed(store, "getOption")
	assert.Len(t, sites, 1)
}

func TestGitOrigin_ReadsRemoteURLFromConfig(t *testing.T) {
	root := t.TempDir()
	gitDir := filepath.Join(root, ".git")
	require.NoError(t, os.MkdirAll(gitDir, 0o755))
	gitConfig := "[core]\n\tbare = false\n[remote \"origin\"]\n\turl = https://example.com/acme/widget.git\n\tfetch = +refs/heads/*:refs/remotes/origin/*\n"
	require.NoError(t, os.WriteFile(filepath.Join(gitDir, "config"), []byte(gitConfig), 0o644))

	assert.Equal(t, "https://example.com/acme/widget.git", GitOrigin(root))
}

func TestGitOrigin_NoConfigReturnsEmpty(t *testing.T) {
	root := t.TempDir()
	assert.Empty(t, GitOrigin(root))
}
