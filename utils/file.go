package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// EnsureUploadDir creates the local uploads tree used when R2 is not configured.
func EnsureUploadDir() error {
	return os.MkdirAll(filepath.Join("uploads", "avatars"), os.ModePerm)
}

// SaveFile writes an uploaded multipart file to destPath, creating parents.
func SaveFile(fileHeader *multipart.FileHeader, destPath string) error {
	if err := os.MkdirAll(filepath.Dir(destPath), os.ModePerm); err != nil {
		return err
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	dst, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, file)
	return err
}

// UploadPath returns the path of a file inside the uploads directory.
func UploadPath(key string) string {
	return filepath.Join("uploads", filepath.FromSlash(key))
}
