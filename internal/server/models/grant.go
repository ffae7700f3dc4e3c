package models

import "time"

// TransferOperation is the HTTP verb a grant authorises.
type TransferOperation string

const (
	OperationGet TransferOperation = "get"
	OperationPut TransferOperation = "put"
)

// TransferGrant is a short-lived presigned URL scoped to one object. Grants
// are handed to the caller and never stored.
type TransferGrant struct {
	URL                string
	Method             string
	SignedHeaders      map[string]string
	StorageKey         string
	Operation          TransferOperation
	ContentType        string
	ContentDisposition string
	FileName           string
	IssuedAt           time.Time
	ExpiresAt          time.Time
}

// UploadReceipt describes an object written by a direct upload.
type UploadReceipt struct {
	StorageKey  string
	ContentType string
	Size        int64
}
