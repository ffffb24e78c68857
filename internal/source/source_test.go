package source

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

const sampleJSON = `[
  {"account": "Acme", "required": 10, "revision": 4, "editor": "Ramon", "category": "Shorts"},
  {"account": "Birch", "required": 6, "editor": "Duno", "category": "Long", "missing": 2}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	res, err := Load(writeFile(t, "data.json", sampleJSON))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Accounts) != 2 {
		t.Fatalf("len(Accounts) = %d, want 2", len(res.Accounts))
	}
	a := res.Accounts[0]
	if a.Account != "Acme" || a.Required != 10 || a.Revision == nil || *a.Revision != 4 || a.Missing != nil {
		t.Errorf("Accounts[0] = %+v", a)
	}
	b := res.Accounts[1]
	if b.Revision != nil {
		t.Errorf("absent revision should be nil, got %d", *b.Revision)
	}
	if b.Missing == nil || *b.Missing != 2 {
		t.Errorf("Accounts[1].Missing = %v, want 2", b.Missing)
	}
	if len(res.Checksum) != 64 {
		t.Errorf("Checksum = %q, want 64 hex chars", res.Checksum)
	}
}

func TestLoadScript(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{"window assignment", "window.productionData = " + sampleJSON + ";\n", false},
		{"const assignment", "// generated\nconst productionData = " + sampleJSON, false},
		{"comment with equals", "// updated a=b\n/* x = 1 */\nwindow.productionData = " + sampleJSON + ";", false},
		{"indented let", "  let productionData=" + sampleJSON, false},
		{"comparison only", "if (productionData == null) {}", true},
		{"no assignment", "console.log('hi');", true},
		{"not an array", "window.productionData = {};", true},
		{"unquoted keys", "window.productionData = [{account: 'x'}];", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Load(writeFile(t, "data.js", tt.content))
			if (err != nil) != tt.wantErr {
				t.Fatalf("Load error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(res.Accounts) != 2 {
				t.Errorf("len(Accounts) = %d, want 2", len(res.Accounts))
			}
		})
	}
}

func TestLoadYAML(t *testing.T) {
	content := `
- account: Acme
  required: 3
  revision: 1
  editor: Chris
  category: Shorts
- account: Cedar
  required: 0
  editor: Freddy
  category: Long
`
	res, err := Load(writeFile(t, "accounts.yml", content))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Accounts) != 2 || res.Accounts[1].Account != "Cedar" || res.Accounts[1].Revision != nil {
		t.Errorf("Accounts = %+v", res.Accounts)
	}
}

func TestLoadWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Production tracker"},
		{"Account", "Required", "Under Revision", "Missing", "Editor", "Category"},
		{"Acme", 10, 4, nil, "Ramon", "Shorts"},
		{},
		{"Birch", "1,200", "", 5, "Duno", "Long"},
	}
	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow(sheet, cellRef, &r); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	path := filepath.Join(t.TempDir(), "accounts.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}

	res, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Accounts) != 2 {
		t.Fatalf("len(Accounts) = %d, want 2: %+v", len(res.Accounts), res.Accounts)
	}
	a := res.Accounts[0]
	if a.Account != "Acme" || a.Required != 10 || a.Revision == nil || *a.Revision != 4 || a.Missing != nil {
		t.Errorf("Accounts[0] = %+v", a)
	}
	if a.Editor != "Ramon" || a.Category != "Shorts" {
		t.Errorf("Accounts[0] editor/category = %q/%q", a.Editor, a.Category)
	}
	b := res.Accounts[1]
	if b.Required != 1200 || b.Revision != nil || b.Missing == nil || *b.Missing != 5 {
		t.Errorf("Accounts[1] = %+v", b)
	}
}

func TestLoadWorkbook_NoHeader(t *testing.T) {
	f := excelize.NewFile()
	if err := f.SetCellValue(f.GetSheetName(0), "A1", "nothing here"); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for workbook without header")
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want os.ErrNotExist", err)
	}
	if _, err := Load(writeFile(t, "data.csv", "a,b")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("csv error = %v, want ErrUnsupportedFormat", err)
	}
	if _, err := Load(writeFile(t, "data.json", "{not json")); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"blank account", `[{"account": " ", "required": 1}]`, "record 1: account name is required"},
		{"negative required", `[{"account": "a", "required": 1}, {"account": "b", "required": -2}]`, "record 2 (b): required"},
		{"negative revision", `[{"account": "a", "required": 1, "revision": -1}]`, "revision must be >= 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(".json", []byte(tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("Decode error = %v, want containing %q", err, tt.errPart)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	accounts, err := Decode(".json", []byte("[]"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if accounts == nil || len(accounts) != 0 {
		t.Errorf("accounts = %v, want empty non-nil", accounts)
	}
}
