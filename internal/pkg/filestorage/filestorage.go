package filestorage

import (
	"mime/multipart"
)

// Upload subdirectories. Assignment reference documents and student
// submissions live under distinct locations, mirrored in the served URLs.
const (
	AssignmentsDir = "assignments"
	SubmissionsDir = "submissions"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file under the storage root and returns its accessible path
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileWithPath saves a file under a subdirectory of the storage root
	SaveFileWithPath(fileHeader *multipart.FileHeader, subPath string) (string, error)

	// DeleteFile removes a previously stored file; deleting a missing file is not an error
	DeleteFile(filePath string) error
}
