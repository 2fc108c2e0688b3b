package stub

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	storage  *BucketStorage
	username string
	password string
}

// NewHandler serves storage. Empty credentials accept any caller.
func NewHandler(storage *BucketStorage, username, password string) *Handler {
	return &Handler{
		storage:  storage,
		username: username,
		password: password,
	}
}

func (h *Handler) HandleReset(c *gin.Context) {
	h.storage.ResetAll()

	slog.Info("reset data")

	c.JSON(http.StatusOK, gin.H{
		"status": "reset complete",
	})
}

func (h *Handler) HandleSeed(c *gin.Context) {
	var req SeedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	totalVolume := 0
	for _, sb := range req.Buckets {
		if sb.LocationGroup == "" || sb.Lane == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "location_group and lane are required"})
			return
		}
		startTime, err := time.Parse(time.RFC3339, sb.StartTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time: " + sb.StartTime})
			return
		}
		endTime, err := time.Parse(time.RFC3339, sb.EndTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time: " + sb.EndTime})
			return
		}

		h.storage.AddBucket(sb.LocationGroup, &Bucket{
			Approach:  sb.Approach,
			Lane:      sb.Lane,
			StartTime: startTime,
			EndTime:   endTime,
			Volume:    sb.Volume,
		})

		totalVolume += sb.Volume
	}

	slog.Info("seeded data",
		slog.Int("bucket_count", len(req.Buckets)),
		slog.Int("total_volume", totalVolume),
	)

	c.JSON(http.StatusOK, gin.H{
		"status":       "seeded",
		"bucket_count": len(req.Buckets),
		"total_volume": totalVolume,
	})
}

// POST /api/v1/faults makes a location group answer with an error document.
// An empty message clears the fault.
func (h *Handler) HandleFault(c *gin.Context) {
	var req FaultRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.storage.SetFault(req.LocationGroup, req.Message)

	slog.Info("fault updated",
		slog.String("location_group", req.LocationGroup),
		slog.Bool("active", req.Message != ""),
	)

	c.Status(http.StatusNoContent)
}

// GET /snaps/dataservice/stats.xml?userName=...&password=...&startTime=...&period=...&locationGroup=...
func (h *Handler) HandleStats(c *gin.Context) {
	if h.username != "" && (c.Query("userName") != h.username || c.Query("password") != h.password) {
		c.String(http.StatusUnauthorized, "invalid credentials")
		return
	}

	locationGroup := c.Query("locationGroup")
	startEpoch, err := strconv.ParseInt(c.Query("startTime"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "invalid startTime")
		return
	}
	period, err := strconv.ParseInt(c.Query("period"), 10, 64)
	if err != nil || period <= 0 {
		c.String(http.StatusBadRequest, "invalid period")
		return
	}

	if message, ok := h.storage.Fault(locationGroup); ok {
		c.Data(http.StatusOK, "text/plain", []byte(message))
		return
	}

	start := time.Unix(startEpoch, 0).UTC()
	end := start.Add(time.Duration(period) * time.Second)
	doc := h.storage.Statistics(locationGroup, start, end)

	body, err := xml.Marshal(doc)
	if err != nil {
		c.String(http.StatusInternalServerError, "failed to marshal statistics")
		return
	}

	slog.Debug("get statistics",
		slog.String("location_group", locationGroup),
		slog.Time("start", start),
		slog.Time("end", end),
		slog.Int("approaches", len(doc.Approaches)),
	)

	c.Data(http.StatusOK, "application/xml", append([]byte(xml.Header), body...))
}

// Register mounts the stub routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.POST("/api/v1/reset", h.HandleReset)
	r.POST("/api/v1/seed", h.HandleSeed)
	r.POST("/api/v1/faults", h.HandleFault)
	r.GET("/snaps/dataservice/stats.xml", h.HandleStats)
}
