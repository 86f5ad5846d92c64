package services

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	_ "image/gif"
	_ "image/png"

	"github.com/google/uuid"

	"picvault/internal/common"
	"picvault/internal/logging"
	"picvault/internal/server/config"
	"picvault/internal/server/models"
	"picvault/internal/server/repositories/repomanager"
)

const (
	analyzePrompt      = "Describe the objects and scenes in this image in detail."
	noAnalysisFallback = "No analysis available."

	fetchTimeout = 10 * time.Second
)

// ObjectStorage is the object-store gateway used by ImageService.
type ObjectStorage interface {
	Bucket() string
	Put(ctx context.Context, key string, contentType string, body io.Reader) error
	PresignGet(ctx context.Context, key string, validity time.Duration) (string, error)
}

// Describer turns an image into a natural-language description.
type Describer interface {
	Describe(ctx context.Context, prompt string, imageData []byte, mimeType string) (string, error)
}

// ImageLink is one listing entry: a presigned download URL plus the stored
// file name.
type ImageLink struct {
	URL      string
	FileName string
}

// ImageService orchestrates the image lifecycle: scoped upload into object
// storage, listing with presigned URLs, and delegated analysis. It holds no
// mutable state of its own; all durable state lives in the stores.
type ImageService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	storage                 ObjectStorage
	describer               Describer
	fetchClient             *http.Client
	logger                  logging.Logger
	presignValidityDuration time.Duration
}

// NewImageService constructs an ImageService with its collaborators injected.
func NewImageService(db *sql.DB, m repomanager.RepositoryManager, storage ObjectStorage,
	describer Describer, logger logging.Logger, cfg *config.Config) *ImageService {
	return &ImageService{
		db:                      db,
		repomanager:             m,
		storage:                 storage,
		describer:               describer,
		fetchClient:             &http.Client{Timeout: fetchTimeout},
		logger:                  logger.With("module", "image_service"),
		presignValidityDuration: cfg.PresignValidityDuration,
	}
}

// sanitizeFileName reduces a client-supplied file name to a single URL-safe
// path element: directories are stripped, spaces become underscores, and any
// rune outside [A-Za-z0-9._-] is dropped. An empty result means the name is
// unusable.
func sanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = path.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('_')
		}
	}

	return strings.Trim(b.String(), "._")
}

// storageKeyFor namespaces a file under its owner. The per-user prefix is
// the sole isolation mechanism against cross-user key collisions; a user
// re-uploading the same name overwrites their own prior object.
func storageKeyFor(ownerID int64, fileName string) string {
	return fmt.Sprintf("user_%d/%s", ownerID, fileName)
}

// Upload stores the blob under the owner's namespace and then records the
// metadata. The blob write must succeed strictly before the metadata write:
// a failed upload leaves no row behind.
func (s *ImageService) Upload(ctx context.Context, email, fileName, contentType string, body io.Reader) (*models.Image, error) {

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	name := sanitizeFileName(fileName)
	if name == "" {
		return nil, common.ErrorInvalidInput
	}

	key := storageKeyFor(user.ID, name)

	if err := s.storage.Put(ctx, key, contentType, body); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrUploadFailed, err)
	}

	img := &models.Image{
		ID:         uuid.NewString(),
		OwnerID:    user.ID,
		StorageKey: key,
		Locator:    models.BlobLocator{Store: s.storage.Bucket(), Key: key},
	}
	if err := s.repomanager.Images(s.db).Create(ctx, img); err != nil {
		return nil, fmt.Errorf("error creating image record: %w", err)
	}

	return img, nil
}

// ListImages returns the caller's images as presigned, time-limited download
// links. A record whose URL cannot be signed is logged and skipped; one bad
// record must not take down the whole listing. A user with no images gets an
// empty slice, not an error.
func (s *ImageService) ListImages(ctx context.Context, email string) ([]ImageLink, error) {

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error resolving user: %w", err)
	}

	imgs, err := s.repomanager.Images(s.db).SelectByOwner(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("error selecting images: %w", err)
	}

	links := make([]ImageLink, 0, len(imgs))
	for _, img := range imgs {
		url, err := s.storage.PresignGet(ctx, img.StorageKey, s.presignValidityDuration)
		if err != nil {
			s.logger.Warn(ctx, "presign failed, skipping image", "key", img.StorageKey, "error", err)
			continue
		}
		links = append(links, ImageLink{URL: url, FileName: img.StorageKey})
	}

	return links, nil
}

// Analyze fetches the image at imageURL, normalizes it, and asks the
// analysis gateway for a description. The fetch is bounded by a 10 second
// timeout; an empty URL fails before any network call.
func (s *ImageService) Analyze(ctx context.Context, imageURL string) (string, error) {
	if imageURL == "" {
		return "", common.ErrorInvalidInput
	}

	data, err := s.fetchImage(ctx, imageURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrFetchFailed, err)
	}

	jpegData, err := normalizeImage(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrInvalidImage, err)
	}

	text, err := s.describer.Describe(ctx, analyzePrompt, jpegData, "image/jpeg")
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrAnalysisFailed, err)
	}

	if text == "" {
		return noAnalysisFallback, nil
	}
	return text, nil
}

func (s *ImageService) fetchImage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.fetchClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	return io.ReadAll(resp.Body)
}

// normalizeImage decodes the fetched bytes (PNG, JPEG, or GIF) and
// re-encodes them as an RGB JPEG, the one format the analysis gateway is
// fed regardless of the source encoding.
func normalizeImage(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	rgb := image.NewRGBA(src.Bounds())
	draw.Draw(rgb, src.Bounds(), src, src.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
