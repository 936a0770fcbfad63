package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/stamp/internal/files/filesystem"
	"github.com/vvka-141/stamp/internal/files/scanner"
	"github.com/vvka-141/stamp/internal/logging"
	"github.com/vvka-141/stamp/pkg/stamp"
)

const acmeConfig = `project:
  name: Acme
  package:
    name: Acme
    name_managed: Acme-Label
`

func newMemoryService(fs *filesystem.MemoryFileSystem) *PlaceholderService {
	logger := logging.NewNullLogger()
	return NewPlaceholderService(fs, scanner.NewScannerWithFS(logger, fs), logger)
}

func TestNewPlaceholderService_NilArgs(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	sc := &mockFileScanner{}
	logger := logging.NewNullLogger()

	assert.Panics(t, func() { NewPlaceholderService(nil, sc, logger) })
	assert.Panics(t, func() { NewPlaceholderService(fs, nil, logger) })
	assert.Panics(t, func() { NewPlaceholderService(fs, sc, nil) })
}

func TestRun_AcmeExample(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("force-app/classes/__PROJECT_NAME__Controller.cls",
		"public class __PROJECT_NAME__Controller implements __PROJECT_LABEL__Interface")

	summary, err := newMemoryService(fs).Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)

	assert.False(t, fs.Exists("force-app/classes/__PROJECT_NAME__Controller.cls"))
	content, ok := fs.Content("force-app/classes/AcmeController.cls")
	require.True(t, ok, "file should be renamed to AcmeController.cls")
	assert.Equal(t, "public class AcmeController implements Acme-LabelInterface", content)

	assert.Equal(t, stamp.Summary{
		Replacements:      acme,
		ContentCandidates: 1,
		NameCandidates:    1,
		ContentUpdated:    1,
		Renamed:           1,
	}, summary)
}

func TestRun_ReplacesEveryOccurrence(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("force-app/a.xml", strings.Repeat("<n>__PROJECT_NAME__</n><l>__PROJECT_LABEL__</l>\n", 7))
	fs.AddFile("unpackaged/b.xml", "__PROJECT_LABEL____PROJECT_LABEL__")

	_, err := newMemoryService(fs).Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)

	a, _ := fs.Content("force-app/a.xml")
	assert.Zero(t, strings.Count(a, stamp.TokenProjectName))
	assert.Zero(t, strings.Count(a, stamp.TokenProjectLabel))
	assert.Equal(t, 7, strings.Count(a, "<n>Acme</n>"))
	assert.Equal(t, 7, strings.Count(a, "<l>Acme-Label</l>"))

	b, _ := fs.Content("unpackaged/b.xml")
	assert.Equal(t, "Acme-LabelAcme-Label", b)
}

func TestRun_Idempotent(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("force-app/__PROJECT_NAME__.cls", "class __PROJECT_NAME__ {}")

	svc := newMemoryService(fs)
	first, err := svc.Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ContentUpdated)
	assert.Equal(t, 1, first.Renamed)

	second, err := svc.Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)
	assert.Zero(t, second.ContentCandidates)
	assert.Zero(t, second.NameCandidates)
	assert.Zero(t, second.ContentUpdated)
	assert.Zero(t, second.Renamed)

	content, _ := fs.Content("force-app/Acme.cls")
	assert.Equal(t, "class Acme {}", content)
}

func TestRun_FilesOutsideSearchDirsUntouched(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("README.md", "# __PROJECT_NAME__")
	fs.AddFile("scripts/__PROJECT_NAME__.sh", "echo __PROJECT_LABEL__")
	fs.AddFile("force-app/a.cls", "__PROJECT_NAME__")

	_, err := newMemoryService(fs).Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)

	readme, _ := fs.Content("README.md")
	assert.Equal(t, "# __PROJECT_NAME__", readme)
	script, ok := fs.Content("scripts/__PROJECT_NAME__.sh")
	require.True(t, ok)
	assert.Equal(t, "echo __PROJECT_LABEL__", script)
}

func TestRun_BinaryFilesUnchanged(t *testing.T) {
	binary := "\x89PNG\r\n\x1a\n\x00\xff__PROJECT_NAME__\xfe"
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("force-app/staticresources/logo.png", binary)
	fs.AddFile("force-app/a.cls", "__PROJECT_NAME__")

	summary, err := newMemoryService(fs).Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)

	content, _ := fs.Content("force-app/staticresources/logo.png")
	assert.Equal(t, binary, content)
	assert.Equal(t, 1, summary.ScanSkipped)
	assert.Equal(t, 1, summary.ContentUpdated)
	assert.Zero(t, summary.Failures())
}

func TestRun_RenameHappensAfterContentRewrite(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("force-app/Foo__PROJECT_NAME__Bar.cls", "class Foo__PROJECT_NAME__Bar {}")

	summary, err := newMemoryService(fs).Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)

	// Had the rename run first, the content rewrite would have failed on the old path.
	assert.Zero(t, summary.ContentFailed)
	content, ok := fs.Content("force-app/FooAcmeBar.cls")
	require.True(t, ok)
	assert.Equal(t, "class FooAcmeBar {}", content)
}

func TestRun_ConfigErrorsAreFatal(t *testing.T) {
	tests := []struct {
		name    string
		config  string
		present bool
		want    error
	}{
		{"missing file", "", false, stamp.ErrConfigNotFound},
		{"malformed", "project: [unclosed", true, stamp.ErrConfigParse},
		{"missing label", "project:\n  package:\n    name: Acme\n", true, stamp.ErrConfigMissingField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := filesystem.NewMemoryFileSystem("/p")
			if tt.present {
				fs.AddFile("cumulusci.yml", tt.config)
			}
			fs.AddFile("force-app/__PROJECT_NAME__.cls", "__PROJECT_NAME__")
			sc := &mockFileScanner{}
			svc := NewPlaceholderService(fs, sc, logging.NewNullLogger())

			summary, err := svc.Run(stamp.RunOptions{Root: "/p"})
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "expected %v, got %v", tt.want, err)
			assert.Equal(t, stamp.ExitConfigError, stamp.ExitCodeForError(err))
			assert.Equal(t, stamp.Summary{}, summary)
			assert.Zero(t, sc.calls, "nothing may be scanned after a config error")

			content, _ := fs.Content("force-app/__PROJECT_NAME__.cls")
			assert.Equal(t, "__PROJECT_NAME__", content)
		})
	}
}

func TestRun_CustomConfigPathAndSearchDirs(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("conf/project.yml", acmeConfig)
	fs.AddFile("src/a.cls", "__PROJECT_NAME__")
	fs.AddFile("force-app/b.cls", "__PROJECT_NAME__")

	summary, err := newMemoryService(fs).Run(stamp.RunOptions{
		Root:       "/p",
		ConfigPath: "conf/project.yml",
		SearchDirs: []string{"src"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.ContentUpdated)

	a, _ := fs.Content("src/a.cls")
	assert.Equal(t, "Acme", a)
	b, _ := fs.Content("force-app/b.cls")
	assert.Equal(t, "__PROJECT_NAME__", b)
}

func TestRun_PartialFailure(t *testing.T) {
	setup := func() *filesystem.MemoryFileSystem {
		fs := filesystem.NewMemoryFileSystem("/p")
		fs.AddFile("cumulusci.yml", acmeConfig)
		fs.AddFile("force-app/__PROJECT_NAME__.cls", "x")
		fs.AddFile("force-app/Acme.cls", "already there")
		fs.AddFile("force-app/b.cls", "__PROJECT_LABEL__")
		return fs
	}

	summary, err := newMemoryService(setup()).Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err, "per-file failures are warnings by default")
	assert.Equal(t, 1, summary.RenameFailed)
	assert.Equal(t, 1, summary.ContentUpdated)

	summary, err = newMemoryService(setup()).Run(stamp.RunOptions{Root: "/p", Strict: true})
	require.Error(t, err)
	assert.True(t, errors.Is(err, stamp.ErrPartialFailure))
	assert.Equal(t, stamp.ExitPartialFailure, stamp.ExitCodeForError(err))
	assert.Equal(t, 1, summary.Failures())
}

func TestRun_ScanError(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	sc := &mockFileScanner{err: errors.New("invalid exclude pattern")}

	_, err := NewPlaceholderService(fs, sc, logging.NewNullLogger()).Run(stamp.RunOptions{Root: "/p"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scan failed")
}

func TestRun_ProgressOutput(t *testing.T) {
	fs := filesystem.NewMemoryFileSystem("/p")
	fs.AddFile("cumulusci.yml", acmeConfig)
	fs.AddFile("force-app/__PROJECT_NAME__.cls", "__PROJECT_NAME__")

	logger := &recordingLogger{}
	svc := NewPlaceholderService(fs, scanner.NewScannerWithFS(logger, fs), logger)
	_, err := svc.Run(stamp.RunOptions{Root: "/p"})
	require.NoError(t, err)

	for _, line := range []string{
		"Project Name: Acme",
		"Project Label: Acme-Label",
		"Found 1 files with placeholder content",
		"Found 1 files with placeholder names",
		"Updated content: force-app/__PROJECT_NAME__.cls",
		"Renamed: __PROJECT_NAME__.cls -> Acme.cls",
	} {
		assert.True(t, logger.infoContaining(line), "missing progress line %q", line)
	}
}
