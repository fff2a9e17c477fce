package pinata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
)

// filePart is one entry of the pinFileToIPFS form: the filename carried on
// the part and the local path its bytes are read from.
type filePart struct {
	name string
	path string
}

// collectParts expands a path into the ordered multipart parts to upload.
// A single file yields one part named after its base name. A directory
// yields one part per regular file, named "<dir-base>/<relative-path>" with
// forward slashes so the service can reconstruct the tree. Directory entries
// themselves yield no parts. The walk is sequential and lexically ordered.
func collectParts(path string) ([]filePart, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if !info.IsDir() {
		return []filePart{{name: filepath.Base(path), path: path}}, nil
	}

	base := filepath.Base(filepath.Clean(path))
	var parts []filePart
	err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(path, p)
		if err != nil {
			return fmt.Errorf("relative path for %s: %w", p, err)
		}

		parts = append(parts, filePart{
			name: base + "/" + filepath.ToSlash(rel),
			path: p,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return parts, nil
}

// multipartBody assembles the full pinFileToIPFS form: one "file" part per
// collected file plus optional pinataMetadata/pinataOptions text fields
// carrying JSON. It returns the body and its content type. The first
// unreadable file aborts the whole assembly.
func (p PinByFile) multipartBody() (io.Reader, string, error) {
	parts, err := collectParts(p.Path)
	if err != nil {
		return nil, "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for _, part := range parts {
		fw, err := writer.CreateFormFile("file", part.name)
		if err != nil {
			return nil, "", err
		}

		f, err := os.Open(part.path)
		if err != nil {
			return nil, "", fmt.Errorf("open %s: %w", part.path, err)
		}
		_, err = io.Copy(fw, f)
		f.Close()
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", part.path, err)
		}
	}

	if p.Metadata != nil {
		data, err := json.Marshal(p.Metadata)
		if err != nil {
			return nil, "", fmt.Errorf("encoding pinataMetadata: %w", err)
		}
		if err := writer.WriteField("pinataMetadata", string(data)); err != nil {
			return nil, "", err
		}
	}

	if p.Options != nil {
		data, err := json.Marshal(p.Options)
		if err != nil {
			return nil, "", fmt.Errorf("encoding pinataOptions: %w", err)
		}
		if err := writer.WriteField("pinataOptions", string(data)); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return &buf, writer.FormDataContentType(), nil
}
