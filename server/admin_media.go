package server

import (
	"net/http"
	"path/filepath"

	"github.com/Lukiyanto/cisaroni-news/model"
	"github.com/Lukiyanto/cisaroni-news/policy"
	"github.com/Lukiyanto/cisaroni-news/utils/log"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	mediaPageSize     = 24
	maxUploadBytes    = 10 << 20 // 10MB per file
	mediaKeyDirectory = "media"
)

func (s *Server) ListMedia(c *gin.Context) {
	if !policy.Can(Actor(c), policy.ActionViewAny, &model.Media{}) {
		respondForbidden(c)
		return
	}

	query := s.DB.Model(&model.Media{}).
		Preload("User").Order("created_at desc")
	if search := c.Query("search"); search != "" {
		query = query.Where("original_name LIKE ?", "%"+search+"%")
	}
	switch c.Query("type") {
	case "image":
		query = query.Scopes(model.ImageMedia)
	case "document":
		query = query.Scopes(model.DocumentMedia)
	}

	page, perPage := pageParams(c, mediaPageSize)
	var media []*model.Media
	result, err := paginate(query, page, perPage, &media)
	if err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// UploadMedia ingests one or more multipart files: bytes to the file store,
// metadata rows to the database. This endpoint is the only place binary
// content enters the system; articles and avatars reference the resulting
// urls.
func (s *Server) UploadMedia(c *gin.Context) {
	actor := Actor(c)
	if !policy.Can(actor, policy.ActionCreate, &model.Media{}) {
		respondForbidden(c)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respondFieldError(c, "files", "at least one file is required")
		return
	}
	for _, file := range files {
		if file.Size > maxUploadBytes {
			respondFieldError(c, "files", file.Filename+" exceeds the 10MB limit")
			return
		}
	}

	uploaded := make([]*model.Media, 0, len(files))
	for _, file := range files {
		filename := uuid.New().String() + filepath.Ext(file.Filename)
		key := mediaKeyDirectory + "/" + filename

		src, err := file.Open()
		if err != nil {
			respondInternal(c, err)
			return
		}
		url, err := s.Files.Save(src, key)
		src.Close()
		if err != nil {
			respondInternal(c, err)
			return
		}

		media := model.Media{
			Filename:     filename,
			OriginalName: file.Filename,
			MimeType:     file.Header.Get("Content-Type"),
			Size:         file.Size,
			Path:         key,
			URL:          url,
			UserID:       actor.Id,
		}
		if err := s.DB.Create(&media).Error; err != nil {
			// The bytes are stored but the row is not; drop the orphan.
			if derr := s.Files.Delete(key); derr != nil {
				log.Log.WithError(derr).Warn("failed to clean up orphaned upload")
			}
			respondInternal(c, err)
			return
		}
		uploaded = append(uploaded, &media)
	}

	c.JSON(http.StatusCreated, gin.H{"media": uploaded})
}

type updateMediaRequest struct {
	AltText string `json:"alt_text" binding:"omitempty,max=255"`
	Caption string `json:"caption"`
}

func (s *Server) UpdateMedia(c *gin.Context) {
	media, ok := s.findMedia(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionUpdate, media) {
		respondForbidden(c)
		return
	}

	var req updateMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	media.AltText = req.AltText
	media.Caption = req.Caption
	if err := s.DB.Save(media).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, media)
}

// DeleteMedia removes the stored file first, then the metadata row.
func (s *Server) DeleteMedia(c *gin.Context) {
	media, ok := s.findMedia(c)
	if !ok {
		return
	}
	if !policy.Can(Actor(c), policy.ActionDelete, media) {
		respondForbidden(c)
		return
	}

	if err := s.Files.Delete(media.Path); err != nil {
		respondInternal(c, err)
		return
	}
	if err := s.DB.Delete(media).Error; err != nil {
		respondInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "media deleted successfully"})
}

func (s *Server) findMedia(c *gin.Context) (*model.Media, bool) {
	var media model.Media
	err := s.DB.Where("id = ?", c.Param("id")).First(&media).Error
	if isNotFound(err) {
		respondNotFound(c, "media")
		return nil, false
	}
	if err != nil {
		respondInternal(c, err)
		return nil, false
	}
	return &media, true
}
