package stamp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/stamp/pkg/stamp"
)

func TestReplacements_Apply(t *testing.T) {
	r := stamp.Replacements{Name: "Acme", Label: "Acme-Label"}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no tokens", "public class Foo {}", "public class Foo {}"},
		{"name token", "__PROJECT_NAME__Controller", "AcmeController"},
		{"label token", "<label>__PROJECT_LABEL__</label>", "<label>Acme-Label</label>"},
		{"both tokens", "public class __PROJECT_NAME__Controller implements __PROJECT_LABEL__Interface",
			"public class AcmeController implements Acme-LabelInterface"},
		{"repeated", "__PROJECT_NAME____PROJECT_NAME__", "AcmeAcme"},
		{"partial token untouched", "__PROJECT_NAME_", "__PROJECT_NAME_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Apply(tt.input))
		})
	}
}

func TestReplacements_Apply_NameBeforeLabel(t *testing.T) {
	// The name value is substituted first, so a label token it introduces
	// is substituted as well.
	r := stamp.Replacements{Name: "X__PROJECT_LABEL__", Label: "Y"}
	assert.Equal(t, "XY", r.Apply("__PROJECT_NAME__"))
}

func TestReplacements_Apply_EmptyValues(t *testing.T) {
	r := stamp.Replacements{}
	assert.Equal(t, "Controller.cls", r.Apply("__PROJECT_NAME__Controller__PROJECT_LABEL__.cls"))
}

func TestContainsToken(t *testing.T) {
	assert.True(t, stamp.ContainsToken("Foo__PROJECT_NAME__Bar.cls"))
	assert.True(t, stamp.ContainsToken("__PROJECT_LABEL__"))
	assert.False(t, stamp.ContainsToken("__PROJECT__"))
	assert.False(t, stamp.ContainsToken(""))
}

func TestDefaultSearchDirs_ReturnsCopy(t *testing.T) {
	dirs := stamp.DefaultSearchDirs()
	dirs[0] = "changed"
	assert.Equal(t, []string{"force-app", "unpackaged"}, stamp.DefaultSearchDirs())
}

func TestSummary_Failures(t *testing.T) {
	s := stamp.Summary{ContentFailed: 2, RenameFailed: 1, ScanSkipped: 5}
	assert.Equal(t, 3, s.Failures())
}
