// Package source reads account records from the data files a production
// team keeps next to the dashboard: JSON, a data.js assignment, YAML or an
// Excel workbook.
package source

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jaakkos/prodboard/internal/domain"
)

// ErrUnsupportedFormat is returned for file extensions no decoder handles.
var ErrUnsupportedFormat = errors.New("unsupported data file format")

// Result is a decoded data file.
type Result struct {
	Path     string
	Checksum string
	Accounts []domain.RawAccount
}

// Load reads path and decodes it by extension.
func Load(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	accounts, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &Result{Path: path, Checksum: Checksum(data), Accounts: accounts}, nil
}

// Checksum returns the hex sha256 of data, used to skip reloads of unchanged files.
func Checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Decode parses data in the format named by ext (".json", ".js", ".yaml", ".yml", ".xlsx").
func Decode(ext string, data []byte) ([]domain.RawAccount, error) {
	var (
		accounts []domain.RawAccount
		err      error
	)
	switch strings.ToLower(ext) {
	case ".json":
		accounts, err = decodeJSON(data)
	case ".js":
		accounts, err = decodeScript(data)
	case ".yaml", ".yml":
		accounts, err = decodeYAML(data)
	case ".xlsx":
		accounts, err = decodeWorkbook(bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	if err := Validate(accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Validate rejects records the board cannot display: blank account names
// and negative counts. Errors name the 1-based record position.
func Validate(accounts []domain.RawAccount) error {
	for i, a := range accounts {
		pos := i + 1
		if strings.TrimSpace(a.Account) == "" {
			return fmt.Errorf("record %d: account name is required", pos)
		}
		if a.Required < 0 {
			return fmt.Errorf("record %d (%s): required must be >= 0, got %d", pos, a.Account, a.Required)
		}
		if a.Revision != nil && *a.Revision < 0 {
			return fmt.Errorf("record %d (%s): revision must be >= 0, got %d", pos, a.Account, *a.Revision)
		}
	}
	return nil
}

func decodeJSON(data []byte) ([]domain.RawAccount, error) {
	var accounts []domain.RawAccount
	if err := json.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	if accounts == nil {
		accounts = []domain.RawAccount{}
	}
	return accounts, nil
}

// assignmentRE matches the start of a productionData assignment at the
// beginning of a line, so comments above it may contain '='.
var assignmentRE = regexp.MustCompile(`(?m)^\s*(?:window\.|(?:const|let|var)\s+)?productionData\s*=`)

// decodeScript accepts `window.productionData = [...];` (optionally with
// const/let/var instead of window.) whose right-hand side is JSON.
func decodeScript(data []byte) ([]domain.RawAccount, error) {
	src := string(data)
	loc := assignmentRE.FindStringIndex(src)
	if loc == nil {
		return nil, fmt.Errorf("parse script: no productionData assignment")
	}
	payload := strings.TrimSpace(src[loc[1]:])
	payload = strings.TrimSuffix(payload, ";")
	start := strings.Index(payload, "[")
	end := strings.LastIndex(payload, "]")
	if start < 0 || end < start {
		return nil, fmt.Errorf("parse script: productionData is not an array")
	}
	accounts, err := decodeJSON([]byte(payload[start : end+1]))
	if err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	return accounts, nil
}

func decodeYAML(data []byte) ([]domain.RawAccount, error) {
	var accounts []domain.RawAccount
	if err := yaml.Unmarshal(data, &accounts); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if accounts == nil {
		accounts = []domain.RawAccount{}
	}
	return accounts, nil
}
