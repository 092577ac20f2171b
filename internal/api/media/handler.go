package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strconv"
	"strings"

	"talent-marketplace/internal/api/reqctx"
	"talent-marketplace/internal/apperrors"
	"talent-marketplace/internal/domain/bands"
	"talent-marketplace/internal/domain/media"
	"talent-marketplace/internal/domain/users"
	"talent-marketplace/internal/infra/postgres"
	"talent-marketplace/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ObjectStore keeps uploaded files; Put returns the public URL.
type ObjectStore interface {
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

type ScoreInvalidator interface {
	Invalidate(ctx context.Context, kind string, id uint)
}

type Handler struct {
	DB      *gorm.DB
	Users   *postgres.UserStore
	Bands   bands.Store
	Storage ObjectStore
	Scores  ScoreInvalidator
}

const (
	MaxImageBytes = 10 << 20
	MaxVideoBytes = 200 << 20
)

var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"video/mp4":       ".mp4",
	"video/quicktime": ".mov",
	"video/webm":      ".webm",
}

var errNotOwner = apperrors.Forbidden("You cannot manage media for this owner.")

// Owner identifies the profile or band a media item belongs to.
type Owner struct {
	Type string
	ID   uint
}

// resolveOwner maps the request to the caller's own profile, or to a band the
// caller administers when band_id is given.
func (h *Handler) resolveOwner(ctx context.Context, u *users.User, bandID uint) (Owner, error) {
	if bandID != 0 {
		if u.IsBackground() {
			return Owner{}, errNotOwner
		}
		p, err := h.Users.TalentProfile(ctx, u.ID)
		if err != nil {
			return Owner{}, err
		}
		if p == nil {
			return Owner{}, apperrors.ErrProfileNotFound
		}
		m, err := h.Bands.GetMembership(ctx, bandID, p.ID)
		if err != nil {
			return Owner{}, err
		}
		if m == nil || !m.IsAdmin() {
			return Owner{}, apperrors.New(apperrors.CodeNotBandAdmin, "Only band admins can do this.", http.StatusForbidden)
		}
		return Owner{Type: media.OwnerBand, ID: bandID}, nil
	}

	if u.IsBackground() {
		p, err := h.Users.BackgroundProfile(ctx, u.ID)
		if err != nil {
			return Owner{}, err
		}
		if p == nil {
			return Owner{}, apperrors.ErrProfileNotFound
		}
		return Owner{Type: media.OwnerBackground, ID: p.ID}, nil
	}

	p, err := h.Users.TalentProfile(ctx, u.ID)
	if err != nil {
		return Owner{}, err
	}
	if p == nil {
		return Owner{}, apperrors.ErrProfileNotFound
	}
	return Owner{Type: media.OwnerTalent, ID: p.ID}, nil
}

func (h *Handler) currentUser(c *gin.Context) (*users.User, error) {
	if u := reqctx.User(c); u != nil {
		return u, nil
	}
	userID, err := reqctx.UserID(c)
	if err != nil {
		return nil, err
	}
	u, err := h.Users.Get(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func optionalID(raw string) (uint, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || n == 0 {
		return 0, apperrors.Validation("Invalid band_id")
	}
	return uint(n), nil
}

// CheckUpload validates a sniffed content type against the size limits and
// returns the media kind and file extension.
func CheckUpload(contentType string, size int64) (kind, ext string, err error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", "", apperrors.Validation(fmt.Sprintf("Unsupported file type %q", contentType))
	}
	kind = media.KindFromContentType(contentType)
	limit := int64(MaxImageBytes)
	if kind == media.KindVideo {
		limit = MaxVideoBytes
	}
	if size <= 0 {
		return "", "", apperrors.Validation("File is empty")
	}
	if size > limit {
		return "", "", apperrors.Validation(fmt.Sprintf("File exceeds the %d MB limit for %s uploads", limit>>20, kind))
	}
	return kind, ext, nil
}

// ObjectKey places files under their owner so a listing of the bucket mirrors ownership.
func ObjectKey(o Owner, id, ext string) string {
	return path.Join("media", o.Type, strconv.FormatUint(uint64(o.ID), 10), id+ext)
}

func sniff(r io.ReadSeeker, declared string) (string, error) {
	buf := make([]byte, 512)
	n, err := io.ReadFull(r, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	ct := http.DetectContentType(buf[:n])
	if ct == "application/octet-stream" && declared != "" {
		ct = declared
	}
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct)), nil
}

// Upload stores a multipart "file" and records it against the owner.
func (h *Handler) Upload(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	bandID, err := optionalID(c.PostForm("band_id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	owner, err := h.resolveOwner(ctx, u, bandID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	fh, err := c.FormFile("file")
	if err != nil {
		apperrors.Respond(c, apperrors.Validation("Missing file"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	defer f.Close()

	contentType, err := sniff(f, fh.Header.Get("Content-Type"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	kind, ext, err := CheckUpload(contentType, fh.Size)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	item := media.Item{
		ID:          uuid.NewString(),
		OwnerType:   owner.Type,
		OwnerID:     owner.ID,
		Kind:        kind,
		ContentType: contentType,
		SizeBytes:   fh.Size,
	}
	if kind == media.KindVideo {
		item.IsTestVideo = c.PostForm("is_test_video") == "true"
		item.IsAboutYourselfVideo = c.PostForm("is_about_yourself_video") == "true"
	}
	item.ObjectKey = ObjectKey(owner, item.ID, ext)

	url, err := h.Storage.Put(ctx, item.ObjectKey, f, fh.Size, contentType)
	if err != nil {
		apperrors.Respond(c, apperrors.Wrap(err, apperrors.CodeExternalService, "Failed to store file", http.StatusBadGateway))
		return
	}
	item.URL = url

	if err := h.DB.WithContext(ctx).Create(&item).Error; err != nil {
		// Don't leave an orphaned object behind.
		if derr := h.Storage.Delete(ctx, item.ObjectKey); derr != nil {
			logger.FromContext(ctx).Warn("failed to remove orphaned object", zap.String("key", item.ObjectKey), zap.Error(derr))
		}
		apperrors.Respond(c, err)
		return
	}

	h.Scores.Invalidate(ctx, owner.Type, owner.ID)
	c.JSON(http.StatusCreated, item)
}

// List returns the caller's media, or a band's when band_id is given.
func (h *Handler) List(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	bandID, err := optionalID(c.Query("band_id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	ctx := c.Request.Context()

	var owner Owner
	if bandID != 0 {
		owner = Owner{Type: media.OwnerBand, ID: bandID}
	} else if owner, err = h.resolveOwner(ctx, u, 0); err != nil {
		apperrors.Respond(c, err)
		return
	}

	items := []media.Item{}
	if err := h.DB.WithContext(ctx).
		Where("owner_type = ? AND owner_id = ?", owner.Type, owner.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c *gin.Context) {
	u, err := h.currentUser(c)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		apperrors.Respond(c, apperrors.Validation("Invalid id"))
		return
	}
	ctx := c.Request.Context()

	var item media.Item
	err = h.DB.WithContext(ctx).Where("id = ?", id).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		apperrors.Respond(c, apperrors.NotFound("Media"))
		return
	}
	if err != nil {
		apperrors.Respond(c, err)
		return
	}

	var bandID uint
	if item.OwnerType == media.OwnerBand {
		bandID = item.OwnerID
	}
	owner, err := h.resolveOwner(ctx, u, bandID)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	if owner.Type != item.OwnerType || owner.ID != item.OwnerID {
		apperrors.Respond(c, errNotOwner)
		return
	}

	if err := h.DB.WithContext(ctx).Delete(&item).Error; err != nil {
		apperrors.Respond(c, err)
		return
	}
	if err := h.Storage.Delete(ctx, item.ObjectKey); err != nil {
		logger.FromContext(ctx).Warn("failed to delete stored object", zap.String("key", item.ObjectKey), zap.Error(err))
	}

	h.Scores.Invalidate(ctx, owner.Type, owner.ID)
	c.Status(http.StatusNoContent)
}
