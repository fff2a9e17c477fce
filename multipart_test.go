package pinata

import (
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"testing"
)

func TestCollectPartsSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	parts, err := collectParts(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(parts) != 1 {
		t.Fatalf("expected 1 part, got %d", len(parts))
	}
	if parts[0].name != "data.txt" {
		t.Errorf("expected part name 'data.txt', got '%s'", parts[0].name)
	}
	if parts[0].path != path {
		t.Errorf("expected part path '%s', got '%s'", path, parts[0].path)
	}
}

func TestCollectPartsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "b.txt"), []byte("b"), 0644); err != nil {
		t.Fatal(err)
	}

	parts, err := collectParts(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Directory entries themselves produce no parts.
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}

	base := filepath.Base(dir)
	if parts[0].name != base+"/a.txt" {
		t.Errorf("expected first part '%s/a.txt', got '%s'", base, parts[0].name)
	}
	if parts[1].name != base+"/sub/b.txt" {
		t.Errorf("expected second part '%s/sub/b.txt', got '%s'", base, parts[1].name)
	}
}

func TestCollectPartsMissingPath(t *testing.T) {
	if _, err := collectParts("/does/not/exist"); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestMultipartBody(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	pin := PinByFile{
		Path:     path,
		Metadata: &Metadata{Name: "upload"},
		Options:  &PinOptions{CIDVersion: Int(1)},
	}

	body, contentType, err := pin.multipartBody()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("failed to parse content type: %v", err)
	}
	if mediaType != "multipart/form-data" {
		t.Errorf("unexpected media type: %s", mediaType)
	}

	reader := multipart.NewReader(body, params["boundary"])
	fields := map[string]string{}
	var fileNames []string
	var fileContents []string

	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}

		data, err := io.ReadAll(part)
		if err != nil {
			t.Fatalf("failed to read part body: %v", err)
		}

		if part.FormName() == "file" {
			fileNames = append(fileNames, part.FileName())
			fileContents = append(fileContents, string(data))
		} else {
			fields[part.FormName()] = string(data)
		}
	}

	if len(fileNames) != 1 || fileNames[0] != "data.txt" {
		t.Fatalf("unexpected file parts: %v", fileNames)
	}
	if fileContents[0] != "hello" {
		t.Errorf("unexpected file content: %s", fileContents[0])
	}
	if fields["pinataMetadata"] != `{"name":"upload"}` {
		t.Errorf("unexpected pinataMetadata field: %s", fields["pinataMetadata"])
	}
	if fields["pinataOptions"] != `{"cidVersion":1}` {
		t.Errorf("unexpected pinataOptions field: %s", fields["pinataOptions"])
	}
}

func TestMultipartBodyNoOptionalFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	if err := os.WriteFile(path, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	body, contentType, err := PinByFile{Path: path}.multipartBody()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		t.Fatalf("failed to parse content type: %v", err)
	}

	reader := multipart.NewReader(body, params["boundary"])
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("failed to read part: %v", err)
		}
		if part.FormName() != "file" {
			t.Errorf("unexpected form field: %s", part.FormName())
		}
	}
}
