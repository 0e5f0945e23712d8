// Package brand provides centralized branding constants for the toolkit.
// The identity is loaded from brand.json at compile time via go:embed so
// that scripts and docs generators can read the same file.
package brand

import (
	_ "embed"
	"encoding/json"
	"path/filepath"
)

//go:embed brand.json
var brandJSON []byte

// Brand holds all branding information.
type Brand struct {
	Name             string `json:"name"`
	LowerName        string `json:"lowerName"`
	Vendor           string `json:"vendor"`
	Description      string `json:"description"`
	Tagline          string `json:"tagline"`
	DefaultConfigDir string `json:"defaultConfigDir"`
	DefaultLogDir    string `json:"defaultLogDir"`
	ConfigFileName   string `json:"configFileName"`
	RulesFileName    string `json:"rulesFileName"`
	AuditFileName    string `json:"auditFileName"`
	BinaryName       string `json:"binaryName"`
}

var b Brand

func init() {
	if err := json.Unmarshal(brandJSON, &b); err != nil {
		panic("failed to parse brand.json: " + err.Error())
	}

	Name = b.Name
	LowerName = b.LowerName
	Vendor = b.Vendor
	Description = b.Description
	Tagline = b.Tagline
	DefaultConfigDir = b.DefaultConfigDir
	DefaultLogDir = b.DefaultLogDir
	ConfigFileName = b.ConfigFileName
	RulesFileName = b.RulesFileName
	AuditFileName = b.AuditFileName
	BinaryName = b.BinaryName
}

// Exported branding values, initialized from brand.json.
var (
	Name             string
	LowerName        string
	Vendor           string
	Description      string
	Tagline          string
	DefaultConfigDir string
	DefaultLogDir    string
	ConfigFileName   string
	RulesFileName    string
	AuditFileName    string
	BinaryName       string
)

// DefaultConfigFile returns the full path of the default config file.
func DefaultConfigFile() string {
	return filepath.Join(DefaultConfigDir, ConfigFileName)
}

// DefaultRulesFile returns the full path of the default rule store.
func DefaultRulesFile() string {
	return filepath.Join(DefaultConfigDir, RulesFileName)
}

// DefaultAuditFile returns the full path of the default audit trail.
func DefaultAuditFile() string {
	return filepath.Join(DefaultLogDir, AuditFileName)
}
