package utils

import (
	"crypto/rand"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// SaveUploadedImage stores a multipart image under UPLOAD_DIR/subdir and
// returns the relative path persisted on the owning row.
func SaveUploadedImage(file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp":
	default:
		return "", fmt.Errorf("unsupported image type %q", ext)
	}

	baseDir := EnvOrDefault("UPLOAD_DIR", "./uploads")
	destDir := filepath.Join(baseDir, subdir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("mkdir failed: %w", err)
	}

	randBytes := make([]byte, 6)
	if _, err := rand.Read(randBytes); err != nil {
		randBytes = []byte(fmt.Sprintf("%d", time.Now().UnixNano()))
	}
	name := fmt.Sprintf("%d_%x%s", time.Now().UnixNano(), randBytes, ext)
	fullPath := filepath.Join(destDir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("/uploads", subdir, name)), nil
}

// DeleteUploadedFile removes a previously stored file. Cleanup is
// fire-and-forget: failures are logged as warnings and never abort the
// caller's primary operation.
func DeleteUploadedFile(storedPath string) {
	if strings.TrimSpace(storedPath) == "" {
		return
	}
	baseDir := EnvOrDefault("UPLOAD_DIR", "./uploads")
	rel := strings.TrimPrefix(storedPath, "/uploads/")
	fullPath := filepath.Join(baseDir, rel)
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: failed to delete file %s: %v", fullPath, err)
	}
}
