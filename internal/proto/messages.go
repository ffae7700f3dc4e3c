package proto

import "google.golang.org/protobuf/types/known/timestamppb"

type Principal struct {
	SubjectId   string `json:"subject_id"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

type LoginRequest struct {
	Handle string `json:"handle"`
	Secret []byte `json:"secret"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	Principal *Principal `json:"principal"`
}

type CurrentUserRequest struct{}

type CurrentUserResponse struct {
	Principal *Principal `json:"principal"`
}

type TransferGrant struct {
	Url                string                 `json:"url"`
	Method             string                 `json:"method"`
	SignedHeaders      map[string]string      `json:"signed_headers,omitempty"`
	StorageKey         string                 `json:"storage_key"`
	Operation          string                 `json:"operation"`
	ContentType        string                 `json:"content_type,omitempty"`
	ContentDisposition string                 `json:"content_disposition,omitempty"`
	FileName           string                 `json:"file_name,omitempty"`
	IssuedAt           *timestamppb.Timestamp `json:"issued_at"`
	ExpiresAt          *timestamppb.Timestamp `json:"expires_at"`
}

type IssueUploadGrantRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
}

type IssueUploadGrantResponse struct {
	Grant *TransferGrant `json:"grant"`
}

type UploadResourceRequest struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Data        []byte `json:"data"`
}

type UploadResourceResponse struct {
	StorageKey  string `json:"storage_key"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

type IssueDownloadGrantRequest struct {
	ResourceId string `json:"resource_id"`
}

type IssueDownloadGrantResponse struct {
	Grant *TransferGrant `json:"grant"`
}

type Resource struct {
	Id         string                 `json:"id"`
	Title      string                 `json:"title"`
	StorageKey string                 `json:"storage_key,omitempty"`
	CreatedBy  string                 `json:"created_by,omitempty"`
	CreatedAt  *timestamppb.Timestamp `json:"created_at"`
}

type CreateResourceRequest struct {
	Title      string `json:"title"`
	StorageKey string `json:"storage_key"`
}

type CreateResourceResponse struct {
	Resource *Resource `json:"resource"`
}

type ListResourcesRequest struct{}

type ListResourcesResponse struct {
	Resources []*Resource `json:"resources"`
}
