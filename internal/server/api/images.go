package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"picvault/internal/common"
)

// maxUploadMemory bounds the multipart parse buffer; larger files spill to
// temporary disk storage.
const maxUploadMemory = 32 << 20

type uploadResponse struct {
	Message      string `json:"message"`
	UploadedPath string `json:"uploaded_path"`
	FileURL      string `json:"file_url"`
}

type imageEntry struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type listImagesResponse struct {
	Images []imageEntry `json:"images"`
}

type analyzeRequest struct {
	ImageURL string `json:"image_url"`
}

type analyzeResponse struct {
	Analysis string `json:"analysis"`
}

// Upload accepts a multipart form with a "file" field and stores it in the
// caller's namespace.
//
// Responses:
//   - 200 OK: {uploaded_path, file_url};
//   - 400 Bad Request: missing file or unusable file name;
//   - 404 Not Found: authenticated account no longer exists;
//   - 500 Internal Server Error: blob or metadata write failed.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	img, err := h.images.Upload(r.Context(), email, header.Filename, header.Header.Get(contentTypeHeader), file)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid file name")
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error(r.Context(), "upload failed", "error", err)
			writeError(w, http.StatusInternalServerError, "upload failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{
		Message:      "Upload successful",
		UploadedPath: img.StorageKey,
		FileURL:      img.Locator.String(),
	})
}

// ListImages returns the caller's images with presigned download URLs. A
// caller with no images gets an empty list, never an error.
//
// Responses:
//   - 200 OK: {images: [{url, file_name}]};
//   - 404 Not Found: authenticated account no longer exists;
//   - 500 Internal Server Error: metadata read failed.
func (h *Handler) ListImages(w http.ResponseWriter, r *http.Request) {
	email, ok := EmailFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	links, err := h.images.ListImages(r.Context(), email)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorNotFound):
			writeError(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error(r.Context(), "listing failed", "error", err)
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return
	}

	entries := make([]imageEntry, 0, len(links))
	for _, l := range links {
		entries = append(entries, imageEntry{URL: l.URL, FileName: l.FileName})
	}
	writeJSON(w, http.StatusOK, listImagesResponse{Images: entries})
}

// Analyze fetches the image at the given URL and returns an AI-generated
// description.
//
// Responses:
//   - 200 OK: {analysis};
//   - 400 Bad Request: malformed JSON, empty URL, unfetchable URL, or
//     bytes that do not decode as an image;
//   - 500 Internal Server Error: analysis gateway failed.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	analysis, err := h.images.Analyze(r.Context(), req.ImageURL)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorInvalidInput):
			writeError(w, http.StatusBadRequest, "no image URL provided")
		case errors.Is(err, common.ErrFetchFailed):
			writeError(w, http.StatusBadRequest, "failed to fetch image")
		case errors.Is(err, common.ErrInvalidImage):
			writeError(w, http.StatusBadRequest, "invalid image")
		default:
			h.logger.Error(r.Context(), "analysis failed", "error", err)
			writeError(w, http.StatusInternalServerError, "analysis failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{Analysis: analysis})
}
