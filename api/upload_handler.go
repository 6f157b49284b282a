package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rpupo63/agency-site-backend/errs"
	"github.com/rpupo63/agency-site-backend/metrics"
	"github.com/rpupo63/agency-site-backend/storage"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	// multipartOverhead is the slack allowed on top of the file for boundaries and headers.
	multipartOverhead = 1 << 20
	// multipartMemory is how much of a form is kept in memory before spilling to disk.
	multipartMemory = 32 << 20
)

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	store     storage.Store
	maxBytes  int64
}

func newUploadHandler(store storage.Store, maxBytes int64) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		store:     store,
		maxBytes:  maxBytes,
	}
}

// uploadMedia stores one image or video file
// @Summary Upload media
// @Description Admin only. One file per request in the field named after the media kind (or "file").
// @Tags Upload
// @Accept multipart/form-data
// @Produce json
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "No file"
// @Failure 413 {object} ErrorResponse "File too large"
// @Failure 415 {object} ErrorResponse "Wrong media type"
// @Router /api/upload/image [post]
// @Router /api/upload/video [post]
func (h uploadHandler) uploadMedia(kind storage.MediaKind) http.HandlerFunc {
	label := string(kind)
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				metrics.UploadsTotal.WithLabelValues(label, "too_large").Inc()
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxBytes))
				return
			}
			metrics.UploadsTotal.WithLabelValues(label, "missing").Inc()
			h.responder.WriteError(w, errs.NewMalformedPayloadError("multipart", err))
			return
		}
		defer func() {
			if err := r.MultipartForm.RemoveAll(); err != nil {
				h.logger.Warn().Err(err).Msg("failed to remove multipart temp files")
			}
		}()

		file, header, err := formFile(r, label, "file")
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(label, "missing").Inc()
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError(label))
			return
		}
		defer file.Close()

		if header.Size > h.maxBytes {
			metrics.UploadsTotal.WithLabelValues(label, "too_large").Inc()
			h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(h.maxBytes))
			return
		}

		mime, err := storage.Sniff(file)
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(label, "error").Inc()
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("failed to read upload", err))
			return
		}
		if !kind.Accepts(mime) {
			metrics.UploadsTotal.WithLabelValues(label, "unsupported").Inc()
			h.responder.WriteError(w, errs.NewUnsupportedMediaTypeError(mime.String(), []string{label + "/*"}))
			return
		}

		obj, err := h.store.Save(r.Context(), storage.Upload{
			Filename:    storage.WithExtension(header.Filename, mime.Extension()),
			ContentType: mime.String(),
			Size:        header.Size,
			Body:        file,
		})
		if err != nil {
			metrics.UploadsTotal.WithLabelValues(label, "error").Inc()
			h.responder.WriteError(w, errs.NewStorageWriteError("upload", err))
			return
		}

		metrics.UploadsTotal.WithLabelValues(label, "stored").Inc()
		metrics.UploadBytes.WithLabelValues(label).Observe(float64(header.Size))
		h.logger.Info().Str("kind", label).Str("file", obj.Name).Int64("size", header.Size).Msg("Upload stored")

		h.responder.WriteJSON(w, UploadResponse{Success: true, URL: obj.URL, Filename: obj.Name})
	}
}

// formFile returns the first file found under any of the field names.
func formFile(r *http.Request, fields ...string) (multipart.File, *multipart.FileHeader, error) {
	for _, field := range fields {
		file, header, err := r.FormFile(field)
		if err == nil {
			return file, header, nil
		}
		if !errors.Is(err, http.ErrMissingFile) {
			return nil, nil, err
		}
	}
	return nil, nil, http.ErrMissingFile
}

// uploadsFileServer serves stored uploads without directory listings.
func uploadsFileServer(dir string) http.Handler {
	fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(dir)))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("X-Content-Type-Options", "nosniff")
		fs.ServeHTTP(w, r)
	})
}
