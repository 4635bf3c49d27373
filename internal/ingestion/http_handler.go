package ingestion

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Handler exposes ingestion as an HTTP endpoint. Report emails are relayed
// by automation services in three shapes: multipart form data, JSON with a
// base64 attachment, or a raw body with an X-Filename header.
type Handler struct {
	service *Service
}

// NewHTTPHandler wraps the service with a POST endpoint.
func NewHTTPHandler(service *Service) http.Handler {
	return &Handler{service: service}
}

type jsonUpload struct {
	FileName   string `json:"filename"`
	FileBase64 string `json:"file_base64"`
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	fileName, payload, err := readUpload(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result, err := h.service.Ingest(r.Context(), Request{
		FileName:     fileName,
		Data:         bytes.NewReader(payload),
		SnapshotDate: strings.TrimSpace(r.URL.Query().Get("snapshotDate")),
	})
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrUnknownReportType) || errors.Is(err, ErrUnsupportedFormat) {
			status = http.StatusBadRequest
		}
		http.Error(w, err.Error(), status)
		return
	}

	if result.Attempted == 0 {
		http.Error(w, fmt.Sprintf("no records parsed from %s", fileName), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}

func readUpload(r *http.Request) (string, []byte, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return "", nil, fmt.Errorf("invalid form data: %w", err)
		}

		if file, header, err := r.FormFile("file"); err == nil {
			defer file.Close()
			payload, readErr := io.ReadAll(file)
			if readErr != nil {
				return "", nil, fmt.Errorf("failed to read file: %w", readErr)
			}
			return header.Filename, payload, nil
		}

		// Base64 attachment field, as forwarded by email automation.
		if encoded := r.FormValue("attachment"); encoded != "" {
			payload, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				return "", nil, fmt.Errorf("invalid base64 attachment: %w", err)
			}
			fileName := r.FormValue("filename")
			if fileName == "" {
				fileName = "attachment.xlsx"
			}
			return fileName, payload, nil
		}

		return "", nil, errors.New("no file or attachment found")

	case strings.Contains(contentType, "application/json"):
		var body jsonUpload
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			return "", nil, fmt.Errorf("invalid json body: %w", err)
		}
		payload, err := base64.StdEncoding.DecodeString(body.FileBase64)
		if err != nil {
			return "", nil, fmt.Errorf("invalid base64 file: %w", err)
		}
		fileName := body.FileName
		if fileName == "" {
			fileName = "attachment.xlsx"
		}
		return fileName, payload, nil

	default:
		payload, err := io.ReadAll(r.Body)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read body: %w", err)
		}
		fileName := r.Header.Get("X-Filename")
		if fileName == "" {
			fileName = "attachment.xlsx"
		}
		return fileName, payload, nil
	}
}
