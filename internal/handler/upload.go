package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/ingest"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/logger"
	"github.com/BrandonCANalytics/burritoShackAnalytics/internal/storage"
)

// uploadFormField is the multipart form field carrying the CSV file.
const uploadFormField = "file"

// uploadSource labels snapshots that came in through the upload endpoint.
const uploadSource = "upload"

// UploadHandler accepts a replacement dataset as a CSV upload and swaps it
// into the store atomically on success.
type UploadHandler struct {
	store    *storage.DatasetStore
	log      logger.Logger
	maxBytes int64
}

// NewUploadHandler creates an UploadHandler with the given size cap.
func NewUploadHandler(store *storage.DatasetStore, log logger.Logger, maxBytes int64) *UploadHandler {
	return &UploadHandler{store: store, log: log, maxBytes: maxBytes}
}

type uploadResponse struct {
	Rows            int `json:"rows"`
	RejectedDates   int `json:"rejected_dates"`
	RejectedMarkets int `json:"rejected_markets"`
}

// HandleUpload parses the uploaded CSV with the standard cleaning policy
// and replaces the current snapshot. The previous snapshot stays visible to
// in-flight requests.
func (h *UploadHandler) HandleUpload(c *gin.Context) {
	// Bound intake before multipart parsing so an oversized body is cut
	// off mid-read instead of being buffered in full first.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)

	fileHeader, err := c.FormFile(uploadFormField)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "uploaded file exceeds size limit"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing multipart file field \"file\""})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable upload"})
		return
	}
	defer func() { _ = f.Close() }()

	res, err := ingest.ReadCSV(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.Replace(&storage.Snapshot{
		Records:  res.Records,
		Source:   uploadSource,
		LoadedAt: time.Now(),
	})

	h.log.Info("Dataset replaced via upload",
		logger.Int("rows", len(res.Records)),
		logger.Int("rejected", res.Rejected()),
		logger.String("filename", fileHeader.Filename),
	)

	c.JSON(http.StatusOK, uploadResponse{
		Rows:            len(res.Records),
		RejectedDates:   res.RejectedDates,
		RejectedMarkets: res.RejectedMarkets,
	})
}
