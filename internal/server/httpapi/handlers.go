package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/aura/internal/common"
	"github.com/dmitrijs2005/aura/internal/server/models"
	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Handle   string `json:"handle"`
	Password string `json:"password"`
}

type principalResponse struct {
	SubjectID   string `json:"subjectId"`
	DisplayName string `json:"displayName"`
	Handle      string `json:"handle"`
	Role        string `json:"role"`
	Active      bool   `json:"active"`
}

type uploadURLRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

type createResourceRequest struct {
	Title      string `json:"title"`
	StorageKey string `json:"storageKey"`
}

type resourceResponse struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	StorageKey string    `json:"storageKey,omitempty"`
	CreatedBy  string    `json:"createdBy,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "aura"})
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: malformed body", common.ErrorInvalidInput))
		return
	}

	res, err := s.users.Login(c.Request.Context(), req.Handle, []byte(req.Password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": res.Token, "user": toPrincipalResponse(res.Principal)})
}

func (s *Server) currentUser(c *gin.Context) {
	p, err := s.users.CurrentPrincipal(c.Request.Context(), principalFrom(c).SubjectID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": toPrincipalResponse(p)})
}

func (s *Server) issueUploadGrant(c *gin.Context) {
	if err := s.broker.CheckUpload(principalFrom(c)); err != nil {
		abortWithError(c, err)
		return
	}

	var req uploadURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: malformed body", common.ErrorInvalidInput))
		return
	}

	g, err := s.broker.IssueUploadGrant(c.Request.Context(), principalFrom(c), req.FileName, req.ContentType)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": g.URL,
		"s3Key":     g.StorageKey,
		"method":    g.Method,
		"headers":   g.SignedHeaders,
		"issuedAt":  g.IssuedAt,
		"expiresAt": g.ExpiresAt,
	})
}

func (s *Server) uploadDirect(c *gin.Context) {
	if err := s.broker.CheckUpload(principalFrom(c)); err != nil {
		abortWithError(c, err)
		return
	}

	if s.opts.MaxUploadSize > 0 {
		// multipart framing needs some headroom over the payload limit
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.opts.MaxUploadSize+1<<20)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			abortWithError(c, fmt.Errorf("%w: payload too large", common.ErrorInvalidInput))
			return
		}
		abortWithError(c, fmt.Errorf("%w: file is required", common.ErrorInvalidInput))
		return
	}

	f, err := fh.Open()
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer f.Close()

	limit := s.opts.MaxUploadSize
	if limit <= 0 {
		limit = fh.Size
	}
	data, err := io.ReadAll(io.LimitReader(f, limit+1))
	if err != nil {
		abortWithError(c, err)
		return
	}

	r, err := s.broker.UploadDirect(c.Request.Context(), principalFrom(c), fh.Filename, fh.Header.Get("Content-Type"), data)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"s3Key": r.StorageKey, "contentType": r.ContentType, "size": r.Size})
}

func (s *Server) issueDownloadGrant(c *gin.Context) {
	g, err := s.broker.IssueDownloadGrant(c.Request.Context(), principalFrom(c), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"downloadUrl":        g.URL,
		"fileName":           g.FileName,
		"contentDisposition": g.ContentDisposition,
		"issuedAt":           g.IssuedAt,
		"expiresAt":          g.ExpiresAt,
	})
}

func (s *Server) listResources(c *gin.Context) {
	items, err := s.resources.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		abortWithError(c, err)
		return
	}

	out := make([]resourceResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toResourceResponse(r))
	}
	c.JSON(http.StatusOK, gin.H{"resources": out})
}

func (s *Server) createResource(c *gin.Context) {
	var req createResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, fmt.Errorf("%w: malformed body", common.ErrorInvalidInput))
		return
	}

	r, err := s.resources.Create(c.Request.Context(), principalFrom(c), req.Title, req.StorageKey)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"resource": toResourceResponse(r)})
}

func toPrincipalResponse(p models.Principal) principalResponse {
	return principalResponse{
		SubjectID:   p.SubjectID,
		DisplayName: p.DisplayName,
		Handle:      p.Handle,
		Role:        string(p.Role),
		Active:      p.Active,
	}
}

func toResourceResponse(r *models.Resource) resourceResponse {
	return resourceResponse{
		ID:         r.ID,
		Title:      r.Title,
		StorageKey: r.StorageKey,
		CreatedBy:  r.CreatedBy,
		CreatedAt:  r.CreatedAt,
	}
}
