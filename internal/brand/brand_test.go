package brand

import (
	"strings"
	"testing"
)

func TestBrandLoaded(t *testing.T) {
	if Name == "" {
		t.Fatal("brand name not loaded from brand.json")
	}
	if LowerName != strings.ToLower(LowerName) {
		t.Errorf("lowerName is not lower case: %q", LowerName)
	}
	if !strings.HasPrefix(DefaultConfigDir, "/") {
		t.Errorf("defaultConfigDir should be absolute: %q", DefaultConfigDir)
	}
}

func TestDefaultPaths(t *testing.T) {
	if got := DefaultConfigFile(); !strings.HasSuffix(got, ConfigFileName) {
		t.Errorf("DefaultConfigFile() = %q, want suffix %q", got, ConfigFileName)
	}
	if got := DefaultRulesFile(); !strings.HasPrefix(got, DefaultConfigDir) {
		t.Errorf("DefaultRulesFile() = %q, want prefix %q", got, DefaultConfigDir)
	}
	if got := DefaultAuditFile(); !strings.HasPrefix(got, DefaultLogDir) {
		t.Errorf("DefaultAuditFile() = %q, want prefix %q", got, DefaultLogDir)
	}
}
