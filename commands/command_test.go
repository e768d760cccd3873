package commands

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/sheetsync/sheetsync/table"
)

const credentials = `{
  "installed": {
    "client_id": "12345.apps.googleusercontent.com",
    "client_secret": "qwerty",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "redirect_uris": ["http://localhost"]
  }
}`

func TestValidate(t *testing.T) {
	tests := []struct {
		cmd      command
		expected string
	}{
		{command{credentials: "", url: "abc"}, "--credentials is a required option"},
		{command{credentials: "credentials.json", url: " "}, "--url is a required option"},
		{command{credentials: "credentials.json", url: "https://example.com/abc"}, "invalid spreadsheet URL"},
	}

	for _, test := range tests {
		err := test.cmd.validate()
		if err == nil || !strings.Contains(err.Error(), test.expected) {
			t.Errorf("Incorrect validation error\n   expected: %v\n   got:      %v", test.expected, err)
		}
	}

	cmd := command{credentials: "credentials.json", url: "https://docs.google.com/spreadsheets/d/abc/edit#gid=0"}
	if err := cmd.validate(); err != nil {
		t.Errorf("Unexpected validation error (%v)", err)
	}
}

func TestSyncValidate(t *testing.T) {
	if err := (&sync{logRange: ""}).validate(); err != nil {
		t.Errorf("Unexpected error for blank log range (%v)", err)
	}

	if err := (&sync{logRange: "Log!A1:F"}).validate(); err != nil {
		t.Errorf("Unexpected error for valid log range (%v)", err)
	}

	if err := (&sync{logRange: "Log"}).validate(); err == nil {
		t.Errorf("Expected error for invalid log range, got nil")
	}
}

func TestTokenDir(t *testing.T) {
	cmd := command{workdir: "/var/sheetsync"}
	if dir := cmd.tokenDir(); dir != filepath.Join("/var/sheetsync", ".google") {
		t.Errorf("Incorrect token directory - expected %v, got %v", filepath.Join("/var/sheetsync", ".google"), dir)
	}

	cmd.tokens = "/tmp/tokens"
	if dir := cmd.tokenDir(); dir != "/tmp/tokens" {
		t.Errorf("Incorrect token directory - expected %v, got %v", "/tmp/tokens", dir)
	}
}

func TestTokenFile(t *testing.T) {
	expected := filepath.Join("tokens", "credentials.sheets")
	if file := tokenFile(filepath.Join("etc", "credentials.json"), SHEETS, "tokens"); file != expected {
		t.Errorf("Incorrect token file - expected %v, got %v", expected, file)
	}

	expected = filepath.Join("tokens", "credentials.tokens")
	if file := tokenFile("credentials.json", "https://www.googleapis.com/auth/drive", "tokens"); file != expected {
		t.Errorf("Incorrect token file - expected %v, got %v", expected, file)
	}
}

func TestSaveToken(t *testing.T) {
	file := filepath.Join(t.TempDir(), ".google", "credentials.sheets")
	token := oauth2.Token{
		AccessToken:  "access",
		TokenType:    "Bearer",
		RefreshToken: "refresh",
		Expiry:       time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC),
	}

	if err := saveToken(file, &token); err != nil {
		t.Fatalf("Unexpected error saving token (%v)", err)
	}

	restored, err := tokenFromFile(file)
	if err != nil {
		t.Fatalf("Unexpected error loading token (%v)", err)
	}

	if restored.AccessToken != token.AccessToken || restored.RefreshToken != token.RefreshToken || !restored.Expiry.Equal(token.Expiry) {
		t.Errorf("Incorrect token\n   expected: %+v\n   got:      %+v", token, *restored)
	}
}

func TestAuthorizeWithoutToken(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "credentials.json")

	if err := os.WriteFile(file, []byte(credentials), 0600); err != nil {
		t.Fatalf("Error creating credentials file (%v)", err)
	}

	_, err := authorize(context.Background(), file, SHEETS, filepath.Join(dir, ".google"))
	if err == nil || !strings.Contains(err.Error(), "authorise") {
		t.Errorf("Expected 'no authorisation token' error, got %v", err)
	}
}

func TestAuthorizeWithToken(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "credentials.json")

	if err := os.WriteFile(file, []byte(credentials), 0600); err != nil {
		t.Fatalf("Error creating credentials file (%v)", err)
	}

	token := oauth2.Token{AccessToken: "access", TokenType: "Bearer", Expiry: time.Now().Add(time.Hour)}
	if err := saveToken(tokenFile(file, SHEETS, filepath.Join(dir, ".google")), &token); err != nil {
		t.Fatalf("Error saving token (%v)", err)
	}

	client, err := authorize(context.Background(), file, SHEETS, filepath.Join(dir, ".google"))
	if err != nil {
		t.Fatalf("Unexpected error (%v)", err)
	} else if client == nil {
		t.Errorf("Expected HTTP client, got nil")
	}
}

func TestWrite(t *testing.T) {
	data, _ := table.MakeTable([][]string{
		{"id", "name"},
		{"1", "Alice"},
		{"2", "Bob, Jr"},
	})

	tests := []struct {
		file     string
		expected string
	}{
		{"members.tsv", "id\tname\n1\tAlice\n2\tBob, Jr\n"},
		{"members.csv", "id,name\n1,Alice\n2,\"Bob, Jr\"\n"},
	}

	for _, test := range tests {
		file := filepath.Join(t.TempDir(), "out", test.file)

		if err := write(file, data); err != nil {
			t.Fatalf("Unexpected error writing %v (%v)", test.file, err)
		}

		b, err := os.ReadFile(file)
		if err != nil {
			t.Fatalf("Error reading %v (%v)", test.file, err)
		}

		if string(b) != test.expected {
			t.Errorf("Incorrect %v\n   expected: %q\n   got:      %q", test.file, test.expected, string(b))
		}

		entries, _ := os.ReadDir(filepath.Dir(file))
		names := []string{}
		for _, e := range entries {
			names = append(names, e.Name())
		}

		if !reflect.DeepEqual(names, []string{test.file}) {
			t.Errorf("Unexpected files in output directory: %v", names)
		}
	}
}
